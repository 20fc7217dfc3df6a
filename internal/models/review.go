package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Review struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name      string             `bson:"name" json:"name"`
	Category  string             `bson:"category" json:"category"`
	Review    string             `bson:"review" json:"review"`
	Rating    int                `bson:"rating" json:"rating"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// ValidReviewCategories is deliberately narrow: public reviews are submitted
// anonymously by site visitors.
var ValidReviewCategories = []string{"Visitor"}

func IsValidReviewCategory(category string) bool {
	for _, c := range ValidReviewCategories {
		if c == category {
			return true
		}
	}
	return false
}
