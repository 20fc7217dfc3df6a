package jobs

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/maheynails/studio-api/internal/models"
)

// StartScheduler runs the daily close-out at 00:05: any pending or confirmed
// appointment whose date has passed is marked done so it stops blocking its
// slot.
func StartScheduler(db *mongo.Database) *cron.Cron {
	c := cron.New()

	c.AddFunc("5 0 * * *", func() {
		log.Println("Running daily appointment close-out...")
		if err := CloseOutPastAppointments(context.Background(), db); err != nil {
			log.Printf("Appointment close-out failed: %v", err)
		}
	})

	c.Start()
	return c
}

func CloseOutPastAppointments(ctx context.Context, db *mongo.Database) error {
	today := time.Now().Truncate(24 * time.Hour)

	result, err := db.Collection("appointments").UpdateMany(ctx,
		bson.M{
			"appointmentDate": bson.M{"$lt": today},
			"bookingStatus":   bson.M{"$in": []string{models.StatusPending, models.StatusConfirmed}},
		},
		bson.M{"$set": bson.M{
			"bookingStatus": models.StatusDone,
			"updatedAt":     time.Now(),
		}},
	)
	if err != nil {
		return err
	}

	log.Printf("Appointment close-out: %d appointments marked done", result.ModifiedCount)
	return nil
}
