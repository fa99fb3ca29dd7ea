package models

import (
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"yogurt-cleaning/internal/utils/validator"
)

// CommentAuthor tags who left the comment. The role is resolved once at
// creation time; a comment is authored by either a client or a cleaner,
// never both.
type CommentAuthor struct {
	Role Role               `json:"role" bson:"role" validate:"required,oneof=client cleaner"`
	ID   primitive.ObjectID `json:"id" bson:"id"`
}

// Comment is a 1-5 rating plus free text attached to exactly one order.
// Creating or soft-deleting a comment triggers the rating cascade for the
// parties on the other side of the order.
type Comment struct {
	ID        primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	OrderID   primitive.ObjectID `json:"order_id" bson:"order_id"`
	Author    CommentAuthor      `json:"author" bson:"author"`
	Rating    int                `json:"rating" bson:"rating" validate:"required,min=1,max=5"`
	Text      string             `json:"text" bson:"text"`
	IsDeleted bool               `json:"-" bson:"is_deleted"`
	CreatedAt time.Time          `json:"created_at" bson:"created_at"`
}

func (c Comment) Validate() error {
	validate := validator.GetValidator()
	if err := validate.Struct(c); err != nil {
		errs := validator.ParseErrors(err)
		return fmt.Errorf("%w: %s", ErrValidation, strings.Join(errs, " // "))
	}
	return nil
}
