package handlers

import (
	"context"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/maheynails/studio-api/internal/models"
)

type createReviewRequest struct {
	Name     string `json:"name"`
	Category string `json:"category"`
	Review   string `json:"review"`
	Rating   any    `json:"rating"`
}

// coerceRating accepts the rating however the form sent it, as a JSON number
// or a numeric string, and rejects fractions.
func coerceRating(v any) (int, bool) {
	var f float64
	switch n := v.(type) {
	case float64:
		f = n
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0, false
		}
		f = parsed
	default:
		return 0, false
	}
	if f != math.Trunc(f) {
		return 0, false
	}
	return int(f), true
}

// CreateReview accepts an anonymous visitor review. Rating arrives as either
// a number or a numeric string from the form, so it is coerced here.
func (h *Handler) CreateReview(c *gin.Context) {
	var req createReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}

	if req.Name == "" || req.Category == "" || req.Review == "" || req.Rating == nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "All fields are required"})
		return
	}

	if !models.IsValidReviewCategory(strings.TrimSpace(req.Category)) {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid category"})
		return
	}

	rating, ok := coerceRating(req.Rating)
	if !ok || rating < 1 || rating > 5 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Rating must be a number between 1 and 5"})
		return
	}

	now := time.Now()
	review := models.Review{
		ID:        primitive.NewObjectID(),
		Name:      strings.TrimSpace(req.Name),
		Category:  strings.TrimSpace(req.Category),
		Review:    strings.TrimSpace(req.Review),
		Rating:    rating,
		CreatedAt: now,
		UpdatedAt: now,
	}

	collection := h.DB.Collection("reviews")
	if _, err := collection.InsertOne(c.Request.Context(), review); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to save review"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Review added successfully", "review": review})
}

// GetReviews returns every review, newest first. No pagination; the site
// shows them all on one page.
func (h *Handler) GetReviews(c *gin.Context) {
	collection := h.DB.Collection("reviews")

	findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := collection.Find(c.Request.Context(), bson.M{}, findOptions)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
		return
	}
	defer cursor.Close(context.Background())

	var reviews []models.Review
	if err = cursor.All(c.Request.Context(), &reviews); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
		return
	}
	if reviews == nil {
		reviews = make([]models.Review, 0)
	}

	c.JSON(http.StatusOK, gin.H{"reviews": reviews})
}
