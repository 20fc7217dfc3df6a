package handlers

import (
	"context"
	"fmt"
	"log"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/maheynails/studio-api/internal/models"
	"github.com/maheynails/studio-api/internal/services"
)

var videoSort = bson.D{
	{Key: "order", Value: 1},
	{Key: "createdAt", Value: -1},
}

// GetPublicVideos serves the course videos shown on the site: active only,
// with the media deletion key stripped.
func (h *Handler) GetPublicVideos(c *gin.Context) {
	collection := h.DB.Collection("videoCourses")

	findOptions := options.Find().
		SetSort(videoSort).
		SetProjection(bson.M{"mediaId": 0})
	cursor, err := collection.Find(c.Request.Context(), bson.M{"isActive": true}, findOptions)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}
	defer cursor.Close(context.Background())

	var videos []models.VideoCourse
	if err = cursor.All(c.Request.Context(), &videos); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}
	if videos == nil {
		videos = make([]models.VideoCourse, 0)
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": videos})
}

// ListVideos is the admin listing: every video, deletion keys included.
func (h *Handler) ListVideos(c *gin.Context) {
	collection := h.DB.Collection("videoCourses")

	cursor, err := collection.Find(c.Request.Context(), bson.M{}, options.Find().SetSort(videoSort))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": err.Error()})
		return
	}
	defer cursor.Close(context.Background())

	var videos []models.VideoCourse
	if err = cursor.All(c.Request.Context(), &videos); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": err.Error()})
		return
	}
	if videos == nil {
		videos = make([]models.VideoCourse, 0)
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "videos": videos})
}

func (h *Handler) videoCountCapped(ctx context.Context) (bool, error) {
	count, err := h.DB.Collection("videoCourses").CountDocuments(ctx, bson.M{})
	if err != nil {
		return false, err
	}
	return count >= models.MaxVideoCourses, nil
}

// CreateVideo inserts a video document whose media was uploaded elsewhere.
func (h *Handler) CreateVideo(c *gin.Context) {
	capped, err := h.videoCountCapped(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": err.Error()})
		return
	}
	if capped {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   fmt.Sprintf("Maximum limit of %d videos reached", models.MaxVideoCourses),
		})
		return
	}

	var video models.VideoCourse
	if err := c.ShouldBindJSON(&video); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid request body"})
		return
	}
	if strings.TrimSpace(video.Title) == "" || video.MediaURL == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Title and media URL are required"})
		return
	}
	if video.CourseName == "" {
		video.CourseName = "General Course"
	}

	now := time.Now()
	video.ID = primitive.NewObjectID()
	video.IsActive = true
	video.CreatedAt = now
	video.UpdatedAt = now

	if _, err := h.DB.Collection("videoCourses").InsertOne(c.Request.Context(), video); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "video": video})
}

// GetVideo returns a single video by database id.
func (h *Handler) GetVideo(c *gin.Context) {
	videoID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid video ID"})
		return
	}

	var video models.VideoCourse
	err = h.DB.Collection("videoCourses").
		FindOne(c.Request.Context(), bson.M{"_id": videoID}).Decode(&video)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Video not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "video": video})
}

// UpdateVideo handles both shapes the admin panel sends: JSON for metadata
// edits and multipart when the video file itself is replaced.
func (h *Handler) UpdateVideo(c *gin.Context) {
	videoID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid video ID"})
		return
	}

	collection := h.DB.Collection("videoCourses")

	if strings.Contains(c.ContentType(), "application/json") {
		var req struct {
			Title       *string `json:"title,omitempty"`
			Description *string `json:"description,omitempty"`
			CourseName  *string `json:"courseName,omitempty"`
			Order       *int    `json:"order,omitempty"`
			IsActive    *bool   `json:"isActive,omitempty"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid request body"})
			return
		}

		updateFields := bson.M{}
		if req.Title != nil {
			updateFields["title"] = strings.TrimSpace(*req.Title)
		}
		if req.Description != nil {
			updateFields["description"] = strings.TrimSpace(*req.Description)
		}
		if req.CourseName != nil {
			updateFields["courseName"] = strings.TrimSpace(*req.CourseName)
		}
		if req.Order != nil {
			updateFields["order"] = *req.Order
		}
		if req.IsActive != nil {
			updateFields["isActive"] = *req.IsActive
		}
		if len(updateFields) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "No fields to update"})
			return
		}
		updateFields["updatedAt"] = time.Now()

		var video models.VideoCourse
		err = collection.FindOneAndUpdate(c.Request.Context(),
			bson.M{"_id": videoID},
			bson.M{"$set": updateFields},
			options.FindOneAndUpdate().SetReturnDocument(options.After),
		).Decode(&video)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Video not found"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "video": video})
		return
	}

	// Multipart: replace the media file itself.
	file, err := c.FormFile("video")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No video file provided"})
		return
	}

	var existing models.VideoCourse
	err = collection.FindOne(c.Request.Context(), bson.M{"_id": videoID}).Decode(&existing)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Video not found"})
		return
	}

	// Best-effort delete of the previous asset; an orphaned object must not
	// block the replacement.
	if existing.MediaID != "" {
		if err := h.MediaSvc.Delete(c.Request.Context(), existing.MediaID); err != nil {
			log.Printf("video update: failed to delete old media: %v", err)
		}
	}

	mediaURL, mediaID, err := h.uploadVideoFile(c.Request.Context(), file)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	var video models.VideoCourse
	err = collection.FindOneAndUpdate(c.Request.Context(),
		bson.M{"_id": videoID},
		bson.M{"$set": bson.M{
			"mediaUrl":  mediaURL,
			"mediaId":   mediaID,
			"thumbnail": services.ThumbnailURL(mediaURL),
			"updatedAt": time.Now(),
		}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&video)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Video not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "video": video})
}

// DeleteVideo removes the document after a best-effort delete of the hosted
// media object.
func (h *Handler) DeleteVideo(c *gin.Context) {
	videoID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid video ID"})
		return
	}

	collection := h.DB.Collection("videoCourses")

	var video models.VideoCourse
	err = collection.FindOne(c.Request.Context(), bson.M{"_id": videoID}).Decode(&video)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Video not found"})
		return
	}

	if video.MediaID != "" {
		if err := h.MediaSvc.Delete(c.Request.Context(), video.MediaID); err != nil {
			log.Printf("video delete: failed to delete media: %v", err)
		}
	}

	if _, err := collection.DeleteOne(c.Request.Context(), bson.M{"_id": videoID}); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Video deleted successfully"})
}

// UploadVideo takes a multipart upload, stores the file in the media bucket
// and creates the video document. The cap is enforced before any media is
// uploaded.
func (h *Handler) UploadVideo(c *gin.Context) {
	capped, err := h.videoCountCapped(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if capped {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": fmt.Sprintf("Maximum limit of %d videos reached. Please delete existing videos to upload new ones.", models.MaxVideoCourses),
		})
		return
	}

	file, err := c.FormFile("video")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No video file provided"})
		return
	}

	title := c.PostForm("title")
	if title == "" {
		title = "Untitled Video"
	}
	courseName := c.PostForm("courseName")
	if courseName == "" {
		courseName = "General Course"
	}

	mediaURL, mediaID, err := h.uploadVideoFile(c.Request.Context(), file)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to upload video", "details": err.Error()})
		return
	}

	now := time.Now()
	video := models.VideoCourse{
		ID:          primitive.NewObjectID(),
		Title:       title,
		Description: c.PostForm("description"),
		CourseName:  courseName,
		MediaURL:    mediaURL,
		MediaID:     mediaID,
		Thumbnail:   services.ThumbnailURL(mediaURL),
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if _, err := h.DB.Collection("videoCourses").InsertOne(c.Request.Context(), video); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to upload video", "details": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "video": video})
}

func (h *Handler) uploadVideoFile(ctx context.Context, file *multipart.FileHeader) (mediaURL, mediaID string, err error) {
	src, err := file.Open()
	if err != nil {
		return "", "", fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	contentType := file.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "video/mp4"
	}
	return h.MediaSvc.UploadVideo(ctx, src, file.Size, file.Filename, contentType)
}
