package feedbackRepo

import (
	"context"
	"fmt"
	"time"

	"panchakarma/database"
	"panchakarma/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// FeedbackRepository defines data access for practitioner feedback.
type FeedbackRepository interface {
	Create(feedback *models.Feedback) error
	ListByPractitioner(practitionerUID string) ([]models.Feedback, error)
}

// MongoFeedbackRepo implements FeedbackRepository using MongoDB.
type MongoFeedbackRepo struct {
	coll *mongo.Collection
}

// NewMongoFeedbackRepo creates a new instance of FeedbackRepository using MongoDB.
func NewMongoFeedbackRepo() FeedbackRepository {
	coll := database.MongoClient.Database(database.DatabaseName).Collection("feedback")
	return &MongoFeedbackRepo{coll: coll}
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

// Create inserts a feedback entry.
func (r *MongoFeedbackRepo) Create(feedback *models.Feedback) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	feedback.CreatedAt = time.Now()

	if _, err := r.coll.InsertOne(ctx, feedback); err != nil {
		return fmt.Errorf("failed to create feedback: %w", err)
	}
	return nil
}

// ListByPractitioner retrieves feedback for a practitioner, newest first.
func (r *MongoFeedbackRepo) ListByPractitioner(practitionerUID string) ([]models.Feedback, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.coll.Find(ctx, bson.M{"practitioner_uid": practitionerUID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve feedback: %w", err)
	}
	defer cursor.Close(ctx)

	var feedback []models.Feedback
	for cursor.Next(ctx) {
		var f models.Feedback
		if err := cursor.Decode(&f); err != nil {
			return nil, fmt.Errorf("failed to decode feedback: %w", err)
		}
		feedback = append(feedback, f)
	}
	return feedback, nil
}
