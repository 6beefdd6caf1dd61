package journeyRepo

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

// MongoJourneyRepo implements JourneyRepository using MongoDB.
type MongoJourneyRepo struct {
	plans    *mongo.Collection
	journeys *mongo.Collection
}

// NewMongoJourneyRepo creates a new instance of JourneyRepository using MongoDB.
func NewMongoJourneyRepo() JourneyRepository {
	db := database.MongoClient.Database(database.DatabaseName)
	repo := &MongoJourneyRepo{
		plans:    db.Collection("therapy_plans"),
		journeys: db.Collection("patient_journeys"),
	}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

func (r *MongoJourneyRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "patient_uid", Value: 1}}},
	}

	if _, err := r.journeys.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// GetPlan retrieves a therapy plan template. Returns (nil, nil) when no plan
// exists for the therapy.
func (r *MongoJourneyRepo) GetPlan(therapy string) (*models.TherapyPlanTemplate, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var plan models.TherapyPlanTemplate
	if err := r.plans.FindOne(ctx, bson.M{"id": therapy}).Decode(&plan); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch therapy plan %s: %w", therapy, err)
	}
	return &plan, nil
}

// CreateJourney inserts an instantiated journey.
func (r *MongoJourneyRepo) CreateJourney(journey *models.PatientJourney) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	if _, err := r.journeys.InsertOne(ctx, journey); err != nil {
		return fmt.Errorf("failed to create journey: %w", err)
	}
	return nil
}

// GetJourneyByID retrieves a journey. Returns (nil, nil) when missing.
func (r *MongoJourneyRepo) GetJourneyByID(id string) (*models.PatientJourney, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var journey models.PatientJourney
	if err := r.journeys.FindOne(ctx, bson.M{"id": id}).Decode(&journey); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch journey %s: %w", id, err)
	}
	return &journey, nil
}

// ListByPatient retrieves all journeys for a patient.
func (r *MongoJourneyRepo) ListByPatient(patientUID string) ([]models.PatientJourney, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	cursor, err := r.journeys.Find(ctx, bson.M{"patient_uid": patientUID})
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve journeys: %w", err)
	}
	defer cursor.Close(ctx)

	var journeys []models.PatientJourney
	for cursor.Next(ctx) {
		var j models.PatientJourney
		if err := cursor.Decode(&j); err != nil {
			return nil, fmt.Errorf("failed to decode journey: %w", err)
		}
		journeys = append(journeys, j)
	}
	return journeys, nil
}

// SetTaskStatus updates one task's status by array index. The index is trusted
// here; the service bounds-checks against the loaded document first.
func (r *MongoJourneyRepo) SetTaskStatus(journeyID string, taskIndex int, status string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	field := fmt.Sprintf("tasks.%d.status", taskIndex)
	result, err := r.journeys.UpdateOne(ctx, bson.M{"id": journeyID}, bson.M{"$set": bson.M{field: status}})
	if err != nil {
		return fmt.Errorf("failed to update task %d of journey %s: %w", taskIndex, journeyID, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("journey with id %s not found", journeyID)
	}
	return nil
}
