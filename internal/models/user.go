package models

import (
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"yogurt-cleaning/internal/utils/validator"
)

type Role string

const (
	RoleAdmin   Role = "admin"
	RoleClient  Role = "client"
	RoleCleaner Role = "cleaner"
)

// Client orders cleanings and carries an aggregate rating computed from
// cleaner-authored comments on its completed orders.
type Client struct {
	ID           primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Name         string             `json:"name" bson:"name" validate:"required"`
	Email        string             `json:"email" bson:"email" validate:"required,email"`
	Phone        string             `json:"phone" bson:"phone"`
	PasswordHash string             `json:"-" bson:"password_hash"`
	Rating       float64            `json:"rating" bson:"rating"`
	IsDeleted    bool               `json:"-" bson:"is_deleted"`
	CreatedAt    time.Time          `json:"created_at" bson:"created_at"`
}

func (c Client) Validate() error {
	validate := validator.GetValidator()
	if err := validate.Struct(c); err != nil {
		errs := validator.ParseErrors(err)
		return fmt.Errorf("%w: %s", ErrValidation, strings.Join(errs, " // "))
	}
	return nil
}

// Cleaner is a worker. Schedule holds the weekdays the cleaner works;
// Orders is the roster of assigned orders, loaded by the repository when
// availability is checked.
type Cleaner struct {
	ID           primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Name         string             `json:"name" bson:"name" validate:"required"`
	Email        string             `json:"email" bson:"email" validate:"required,email"`
	Phone        string             `json:"phone" bson:"phone"`
	PasswordHash string             `json:"-" bson:"password_hash"`
	Schedule     []time.Weekday     `json:"schedule" bson:"schedule"`
	Rating       float64            `json:"rating" bson:"rating"`
	IsDeleted    bool               `json:"-" bson:"is_deleted"`
	CreatedAt    time.Time          `json:"created_at" bson:"created_at"`

	Orders []Order `json:"-" bson:"-"`
}

func (c Cleaner) Validate() error {
	validate := validator.GetValidator()
	if err := validate.Struct(c); err != nil {
		errs := validator.ParseErrors(err)
		return fmt.Errorf("%w: %s", ErrValidation, strings.Join(errs, " // "))
	}
	return nil
}

// WorksOn reports whether the cleaner's schedule covers the given date.
// An empty schedule means the cleaner works every day.
func (c Cleaner) WorksOn(date time.Time) bool {
	if len(c.Schedule) == 0 {
		return true
	}
	for _, d := range c.Schedule {
		if d == date.Weekday() {
			return true
		}
	}
	return false
}

// Admin is a back-office account; it places no orders and holds no rating.
type Admin struct {
	ID           primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Email        string             `json:"email" bson:"email"`
	PasswordHash string             `json:"-" bson:"password_hash"`
}

// AuthenticatedUser is the typed outcome of a login: exactly one account
// kind, resolved by the Admin -> Client -> Cleaner lookup chain.
type AuthenticatedUser struct {
	ID    primitive.ObjectID `json:"id"`
	Email string             `json:"email"`
	Role  Role               `json:"role"`
}
