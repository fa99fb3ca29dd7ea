package models

import (
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"yogurt-cleaning/internal/utils/validator"
)

// Measure describes how a bundle's base price and duration scale
// against the cleaning object it is applied to.
type Measure string

const (
	MeasureRoom        Measure = "room"
	MeasureApartment   Measure = "apartment"
	MeasureSquareMeter Measure = "square_meter"
	MeasureUnit        Measure = "unit" // per window + balcony
)

// Bundle is a named package of services with a base price and duration
// scaled by its Measure.
type Bundle struct {
	ID         primitive.ObjectID   `json:"id,omitempty" bson:"_id,omitempty"`
	Name       string               `json:"name" bson:"name" validate:"required"`
	Measure    Measure              `json:"measure" bson:"measure" validate:"required,oneof=room apartment square_meter unit"`
	Price      float64              `json:"price" bson:"price" validate:"required,gt=0"`
	Duration   float64              `json:"duration" bson:"duration" validate:"required,gt=0"` // hours
	ServiceIDs []primitive.ObjectID `json:"service_ids" bson:"service_ids"`
	IsActive   bool                 `json:"isActive" bson:"isActive"`
	CreatedAt  primitive.DateTime   `json:"createdAt,omitempty" bson:"createdAt,omitempty"`
	UpdatedAt  primitive.DateTime   `json:"updatedAt,omitempty" bson:"updatedAt,omitempty"`
}

func (b Bundle) Validate() error {
	validate := validator.GetValidator()
	if err := validate.Struct(b); err != nil {
		errs := validator.ParseErrors(err)
		return fmt.Errorf("%w: %s", ErrValidation, strings.Join(errs, " // "))
	}
	return nil
}

// CleaningService is an addressable unit of work usable standalone or
// inside a bundle. Its price and duration are flat, independent of Measure.
type CleaningService struct {
	ID        primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Name      string             `json:"name" bson:"name" validate:"required"`
	Price     float64            `json:"price" bson:"price" validate:"required,gt=0"`
	Duration  float64            `json:"duration" bson:"duration" validate:"required,gt=0"` // hours
	IsActive  bool               `json:"isActive" bson:"isActive"`
	CreatedAt primitive.DateTime `json:"createdAt,omitempty" bson:"createdAt,omitempty"`
	UpdatedAt primitive.DateTime `json:"updatedAt,omitempty" bson:"updatedAt,omitempty"`
}

func (cs CleaningService) Validate() error {
	validate := validator.GetValidator()
	if err := validate.Struct(cs); err != nil {
		errs := validator.ParseErrors(err)
		return fmt.Errorf("%w: %s", ErrValidation, strings.Join(errs, " // "))
	}
	return nil
}
