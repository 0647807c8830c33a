package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Generation represents one generated listing image and its inputs.
type Generation struct {
	ID                primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID            string             `bson:"user_id" json:"user_id"`
	ProductID         string             `bson:"product_id,omitempty" json:"product_id,omitempty"` // Optional link to scraped product
	StyleIndex        int                `bson:"style_index" json:"style_index"`
	Prompt            string             `bson:"prompt" json:"-"`
	SourceImageKey    string             `bson:"source_image_key" json:"source_image_key"`
	GeneratedImageKey string             `bson:"generated_image_key" json:"generated_image_key"`
	Status            string             `bson:"status" json:"status"` // "completed", "failed"
	CreatedAt         time.Time          `bson:"created_at" json:"created_at"`
}
