package availabilityRepo

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

// MongoAvailabilityRepo implements AvailabilityRepository using MongoDB.
type MongoAvailabilityRepo struct {
	coll *mongo.Collection
}

// NewMongoAvailabilityRepo creates a new instance of AvailabilityRepository using MongoDB.
func NewMongoAvailabilityRepo() AvailabilityRepository {
	coll := database.MongoClient.Database(database.DatabaseName).Collection("practitioner_availability")
	repo := &MongoAvailabilityRepo{coll: coll}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

func (r *MongoAvailabilityRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "practitioner_uid", Value: 1}}, Options: options.Index().SetUnique(true)},
	}

	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// Create inserts an availability profile. Called once at practitioner registration.
func (r *MongoAvailabilityRepo) Create(profile *models.AvailabilityProfile) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	if profile.Recurring == nil {
		profile.Recurring = map[string]models.RecurringRule{}
	}
	if profile.Overrides == nil {
		profile.Overrides = map[string][]string{}
	}

	if _, err := r.coll.InsertOne(ctx, profile); err != nil {
		return fmt.Errorf("failed to create availability profile: %w", err)
	}
	return nil
}

// GetByPractitioner retrieves a practitioner's profile. Returns (nil, nil) when missing.
func (r *MongoAvailabilityRepo) GetByPractitioner(practitionerUID string) (*models.AvailabilityProfile, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var profile models.AvailabilityProfile
	err := r.coll.FindOne(ctx, bson.M{"practitioner_uid": practitionerUID}).Decode(&profile)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch availability for %s: %w", practitionerUID, err)
	}
	return &profile, nil
}

// SetRecurring replaces the whole recurring rule map.
func (r *MongoAvailabilityRepo) SetRecurring(practitionerUID string, recurring map[string]models.RecurringRule) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter := bson.M{"practitioner_uid": practitionerUID}
	update := bson.M{"$set": bson.M{"recurring": recurring}}
	opts := options.Update().SetUpsert(true)

	if _, err := r.coll.UpdateOne(ctx, filter, update, opts); err != nil {
		return fmt.Errorf("failed to update recurring rules for %s: %w", practitionerUID, err)
	}
	return nil
}

// SetOverride replaces the override slot list for one date. An empty list is a
// valid value and means the practitioner is closed that day.
func (r *MongoAvailabilityRepo) SetOverride(practitionerUID, date string, times []string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	if times == nil {
		times = []string{}
	}
	filter := bson.M{"practitioner_uid": practitionerUID}
	update := bson.M{"$set": bson.M{"overrides." + date: times}}
	opts := options.Update().SetUpsert(true)

	if _, err := r.coll.UpdateOne(ctx, filter, update, opts); err != nil {
		return fmt.Errorf("failed to set override for %s on %s: %w", practitionerUID, date, err)
	}
	return nil
}
