package notificationRepo

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

// MongoNotificationRepo implements NotificationRepository using MongoDB.
type MongoNotificationRepo struct {
	inbox *mongo.Collection
	prefs *mongo.Collection
}

// NewMongoNotificationRepo creates a new instance of NotificationRepository using MongoDB.
func NewMongoNotificationRepo() NotificationRepository {
	db := database.MongoClient.Database(database.DatabaseName)
	repo := &MongoNotificationRepo{
		inbox: db.Collection("notifications"),
		prefs: db.Collection("notification_settings"),
	}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

func (r *MongoNotificationRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "recipient_id", Value: 1}, {Key: "created_at", Value: -1}}},
	}

	if _, err := r.inbox.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// Create inserts a notification into the inbox.
func (r *MongoNotificationRepo) Create(notification *models.Notification) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	if _, err := r.inbox.InsertOne(ctx, notification); err != nil {
		return fmt.Errorf("failed to create notification: %w", err)
	}
	return nil
}

// ListByRecipient retrieves a recipient's notifications, newest first.
func (r *MongoNotificationRepo) ListByRecipient(recipientID string) ([]models.Notification, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.inbox.Find(ctx, bson.M{"recipient_id": recipientID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve notifications: %w", err)
	}
	defer cursor.Close(ctx)

	var notifications []models.Notification
	for cursor.Next(ctx) {
		var n models.Notification
		if err := cursor.Decode(&n); err != nil {
			return nil, fmt.Errorf("failed to decode notification: %w", err)
		}
		notifications = append(notifications, n)
	}
	return notifications, nil
}

// SetPreferences upserts a user's delivery preferences.
func (r *MongoNotificationRepo) SetPreferences(prefs *models.NotificationPreferences) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter := bson.M{"user_id": prefs.UserID}
	update := bson.M{"$set": prefs}
	opts := options.Update().SetUpsert(true)

	if _, err := r.prefs.UpdateOne(ctx, filter, update, opts); err != nil {
		return fmt.Errorf("failed to save notification preferences for %s: %w", prefs.UserID, err)
	}
	return nil
}

// GetPreferences retrieves a user's preferences, defaulting to in-app only.
func (r *MongoNotificationRepo) GetPreferences(userID string) (*models.NotificationPreferences, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var prefs models.NotificationPreferences
	if err := r.prefs.FindOne(ctx, bson.M{"user_id": userID}).Decode(&prefs); err != nil {
		if err == mongo.ErrNoDocuments {
			return &models.NotificationPreferences{UserID: userID, InApp: true}, nil
		}
		return nil, fmt.Errorf("failed to fetch notification preferences for %s: %w", userID, err)
	}
	return &prefs, nil
}
