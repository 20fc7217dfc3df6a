package handlers

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func validReview() map[string]any {
	return map[string]any{
		"name":     "Simran",
		"category": "Visitor",
		"review":   "Loved my gel-x set, super clean studio!",
		"rating":   5,
	}
}

func TestCreateReviewMissingFields(t *testing.T) {
	r := newTestRouter(&Handler{})

	for _, field := range []string{"name", "category", "review", "rating"} {
		body := validReview()
		delete(body, field)

		w := postJSON(t, r, "/api/review", body)
		assert.Equal(t, http.StatusBadRequest, w.Code, "missing %s should be rejected", field)
		assert.Equal(t, "All fields are required", decodeBody(t, w)["message"])
	}
}

func TestCreateReviewInvalidCategory(t *testing.T) {
	r := newTestRouter(&Handler{})

	body := validReview()
	body["category"] = "Regular"

	w := postJSON(t, r, "/api/review", body)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid category", decodeBody(t, w)["message"])
}

func TestCreateReviewRatingBounds(t *testing.T) {
	r := newTestRouter(&Handler{})

	for _, rating := range []any{0, 6, -1, "abc", 4.5} {
		body := validReview()
		body["rating"] = rating

		w := postJSON(t, r, "/api/review", body)
		assert.Equal(t, http.StatusBadRequest, w.Code, "rating %v should be rejected", rating)
		assert.Equal(t, "Rating must be a number between 1 and 5", decodeBody(t, w)["message"])
	}
}

func TestCreateReviewNumericStringRating(t *testing.T) {
	// Forms submit the rating as a string; out-of-range string values must
	// hit the same rejection as numeric ones.
	r := newTestRouter(&Handler{})

	body := validReview()
	body["rating"] = "7"

	w := postJSON(t, r, "/api/review", body)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Rating must be a number between 1 and 5", decodeBody(t, w)["message"])
}
