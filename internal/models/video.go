package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MaxVideoCourses caps how many course videos may exist at once. The admin
// upload route rejects new uploads once the cap is reached.
const MaxVideoCourses = 5

type VideoCourse struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title       string             `bson:"title" json:"title"`
	Description string             `bson:"description" json:"description"`
	CourseName  string             `bson:"courseName" json:"courseName"`
	MediaURL    string             `bson:"mediaUrl" json:"mediaUrl"`
	MediaID     string             `bson:"mediaId" json:"mediaId,omitempty"`
	Duration    float64            `bson:"duration" json:"duration"`
	Thumbnail   string             `bson:"thumbnail" json:"thumbnail"`
	Order       int                `bson:"order" json:"order"`
	IsActive    bool               `bson:"isActive" json:"isActive"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}
