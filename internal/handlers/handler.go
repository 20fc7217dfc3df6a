package handlers

import (
	"github.com/maheynails/studio-api/internal/services"
	"go.mongodb.org/mongo-driver/mongo"
)

// Handler holds every dependency the route handlers need. Built once in main
// and shared across requests; all fields are safe for concurrent use.
type Handler struct {
	DB        *mongo.Database
	EmailSvc  *services.EmailService
	MediaSvc  *services.MediaStore
	ChatSvc   *services.ChatService
	Knowledge *services.KnowledgeBase
}

func NewHandler(db *mongo.Database, emailSvc *services.EmailService, mediaSvc *services.MediaStore, chatSvc *services.ChatService, kb *services.KnowledgeBase) *Handler {
	return &Handler{
		DB:        db,
		EmailSvc:  emailSvc,
		MediaSvc:  mediaSvc,
		ChatSvc:   chatSvc,
		Knowledge: kb,
	}
}
