package models

import (
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"yogurt-cleaning/internal/utils/validator"
)

// CleaningObject is a client's property: the physical attributes the
// measure-based pricing scales against.
type CleaningObject struct {
	ID                primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	ClientID          primitive.ObjectID `json:"client_id" bson:"client_id"`
	Address           string             `json:"address" bson:"address" validate:"required"`
	NumberOfRooms     int                `json:"number_of_rooms" bson:"number_of_rooms" validate:"min=0"`
	NumberOfBathrooms int                `json:"number_of_bathrooms" bson:"number_of_bathrooms" validate:"min=0"`
	NumberOfWindows   int                `json:"number_of_windows" bson:"number_of_windows" validate:"min=0"`
	NumberOfBalconies int                `json:"number_of_balconies" bson:"number_of_balconies" validate:"min=0"`
	Square            float64            `json:"square" bson:"square" validate:"gt=0"`
	IsDeleted         bool               `json:"-" bson:"is_deleted"`
	CreatedAt         primitive.DateTime `json:"createdAt,omitempty" bson:"createdAt,omitempty"`
	UpdatedAt         primitive.DateTime `json:"updatedAt,omitempty" bson:"updatedAt,omitempty"`
}

func (co CleaningObject) Validate() error {
	validate := validator.GetValidator()
	if err := validate.Struct(co); err != nil {
		errs := validator.ParseErrors(err)
		return fmt.Errorf("%w: %s", ErrValidation, strings.Join(errs, " // "))
	}
	return nil
}
