package models

import (
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type OrderStatus string

const (
	StatusCreated      OrderStatus = "created"
	StatusNeedsCrew    OrderStatus = "needs_crew"
	StatusCrewAssigned OrderStatus = "crew_assigned"
	StatusInProgress   OrderStatus = "in_progress"
	StatusCompleted    OrderStatus = "completed"
	StatusCancelled    OrderStatus = "cancelled"
)

// Order is one scheduled cleaning job. TotalDuration, TotalPrice,
// CleanersCount and EndTime are computed from the selected bundles and
// services against the cleaning object; they are never accepted from input.
type Order struct {
	ID               primitive.ObjectID   `json:"id,omitempty" bson:"_id,omitempty"`
	ClientID         primitive.ObjectID   `json:"client_id" bson:"client_id"`
	CleaningObjectID primitive.ObjectID   `json:"cleaning_object_id" bson:"cleaning_object_id"`
	BundleIDs        []primitive.ObjectID `json:"bundle_ids" bson:"bundle_ids"`
	ServiceIDs       []primitive.ObjectID `json:"service_ids" bson:"service_ids"`
	StartTime        time.Time            `json:"start_time" bson:"start_time"`
	EndTime          time.Time            `json:"end_time" bson:"end_time"`
	TotalDuration    float64              `json:"total_duration" bson:"total_duration"` // hours
	TotalPrice       float64              `json:"total_price" bson:"total_price"`
	CleanersCount    int                  `json:"cleaners_count" bson:"cleaners_count"`
	CleanersBand     []primitive.ObjectID `json:"cleaners_band" bson:"cleaners_band"`
	Status           OrderStatus          `json:"status" bson:"status"`
	Comment          string               `json:"comment,omitempty" bson:"comment,omitempty"`
	CreatedAt        time.Time            `json:"created_at" bson:"created_at"`
	UpdatedAt        time.Time            `json:"updated_at" bson:"updated_at"`
}

func (o *Order) Validate() error {
	if o.ClientID.IsZero() || o.CleaningObjectID.IsZero() || o.StartTime.IsZero() {
		return fmt.Errorf("%w: missing required order fields", ErrValidation)
	}
	if len(o.BundleIDs) == 0 && len(o.ServiceIDs) == 0 {
		return fmt.Errorf("%w: order must contain at least one bundle or service", ErrValidation)
	}
	return nil
}
