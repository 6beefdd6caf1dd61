package sessionRepo

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

// MongoSessionRepo implements SessionRepository using MongoDB.
type MongoSessionRepo struct {
	coll *mongo.Collection
}

// NewMongoSessionRepo creates a new instance of SessionRepository using MongoDB.
func NewMongoSessionRepo() SessionRepository {
	coll := database.MongoClient.Database(database.DatabaseName).Collection("sessions")
	repo := &MongoSessionRepo{coll: coll}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

// ensureIndexes creates query indexes plus the partial unique index that backs
// the one-non-cancelled-session-per-slot invariant at the store level.
func (r *MongoSessionRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "patient_uid", Value: 1}, {Key: "date", Value: -1}}},
		{Keys: bson.D{{Key: "practitioner_uid", Value: 1}, {Key: "date", Value: -1}}},
		{
			Keys: bson.D{{Key: "practitioner_uid", Value: 1}, {Key: "date", Value: 1}},
			Options: options.Index().
				SetUnique(true).
				SetPartialFilterExpression(bson.M{
					"status": bson.M{"$ne": models.SessionStatusCancelled},
				}),
		},
	}

	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// GetByID retrieves a session by its unique ID. Returns (nil, nil) when missing.
func (r *MongoSessionRepo) GetByID(id string) (*models.Session, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var sess models.Session
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&sess); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch session with id %s: %w", id, err)
	}
	return &sess, nil
}

// SetStatus updates a session's status field.
func (r *MongoSessionRepo) SetStatus(id, status string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	result, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, bson.M{"$set": bson.M{"status": status}})
	if err != nil {
		return fmt.Errorf("failed to update status for session %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("session with id %s not found", id)
	}
	return nil
}

// MarkPaid records a confirmed payment: status scheduled, payment captured.
func (r *MongoSessionRepo) MarkPaid(id, paymentID string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	update := bson.M{"$set": bson.M{
		"status":         models.SessionStatusScheduled,
		"payment_status": models.PaymentStatusPaid,
		"payment_id":     paymentID,
	}}
	result, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, update)
	if err != nil {
		return fmt.Errorf("failed to mark session %s paid: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("session with id %s not found", id)
	}
	return nil
}

// ListByPatient retrieves a patient's sessions, newest first.
func (r *MongoSessionRepo) ListByPatient(patientUID string) ([]models.Session, error) {
	return r.find(bson.M{"patient_uid": patientUID})
}

// ListByPractitioner retrieves a practitioner's sessions, newest first.
func (r *MongoSessionRepo) ListByPractitioner(practitionerUID string) ([]models.Session, error) {
	return r.find(bson.M{"practitioner_uid": practitionerUID})
}

func (r *MongoSessionRepo) find(filter bson.M) ([]models.Session, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "date", Value: -1}})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve sessions: %w", err)
	}
	defer cursor.Close(ctx)

	var sessions []models.Session
	for cursor.Next(ctx) {
		var s models.Session
		if err := cursor.Decode(&s); err != nil {
			return nil, fmt.Errorf("failed to decode session: %w", err)
		}
		sessions = append(sessions, s)
	}
	return sessions, nil
}

// BookedTimesFrom collects the occupied slots for availability resolution.
func (r *MongoSessionRepo) BookedTimesFrom(practitionerUID string, from time.Time) (map[string][]string, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	filter := bson.M{
		"practitioner_uid": practitionerUID,
		"date":             bson.M{"$gte": from},
		"status":           bson.M{"$ne": models.SessionStatusCancelled},
	}
	cursor, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve booked sessions: %w", err)
	}
	defer cursor.Close(ctx)

	booked := make(map[string][]string)
	for cursor.Next(ctx) {
		var s models.Session
		if err := cursor.Decode(&s); err != nil {
			return nil, fmt.Errorf("failed to decode session: %w", err)
		}
		date := s.Date.UTC().Format("2006-01-02")
		booked[date] = append(booked[date], s.Date.UTC().Format("15:04"))
	}
	return booked, nil
}
