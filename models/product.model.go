package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Product is the catalog document cart line items reference.
type Product struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Name     string             `bson:"name" json:"name"`
	ImageRef string             `bson:"image_ref,omitempty" json:"image_ref,omitempty"`
	Price    float64            `bson:"price" json:"price"`
}
