package schedulerRepo

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"panchakarma/database"
	"panchakarma/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// maxTxnRetries bounds the retry loop on transient transaction errors.
const maxTxnRetries = 3

// MongoSchedulerRepo implements SchedulerRepository using MongoDB transactions.
type MongoSchedulerRepo struct {
	sessionColl      *mongo.Collection
	availabilityColl *mongo.Collection
}

// NewMongoSchedulerRepo creates a new instance of SchedulerRepository.
func NewMongoSchedulerRepo() SchedulerRepository {
	db := database.MongoClient.Database(database.DatabaseName)
	return &MongoSchedulerRepo{
		sessionColl:      db.Collection("sessions"),
		availabilityColl: db.Collection("practitioner_availability"),
	}
}

// CreateSessionIfSlotFree checks for a conflicting non-cancelled session at the
// exact (practitioner, date-time) and inserts the new session, both inside one
// transaction. Returns ErrSlotTaken when the slot is occupied.
func (repo *MongoSchedulerRepo) CreateSessionIfSlotFree(ctx context.Context, sess *models.Session) error {
	txnFn := func(sc mongo.SessionContext) error {
		filter := bson.M{
			"practitioner_uid": sess.PractitionerUID,
			"date":             sess.Date,
			"status":           bson.M{"$ne": models.SessionStatusCancelled},
		}
		count, err := repo.sessionColl.CountDocuments(sc, filter)
		if err != nil {
			return fmt.Errorf("conflict check failed: %w", err)
		}
		if count > 0 {
			return ErrSlotTaken
		}

		if _, err := repo.sessionColl.InsertOne(sc, sess); err != nil {
			// The partial unique index catches writers that raced past the count.
			if mongo.IsDuplicateKeyError(err) {
				return ErrSlotTaken
			}
			return fmt.Errorf("insert session failed: %w", err)
		}
		return nil
	}

	return repo.runInTransaction(ctx, txnFn)
}

// RescheduleSession atomically moves a session to newDate, marks it rescheduled,
// and injects the vacated time into the practitioner's override list for the old
// date so the slot is immediately re-bookable. Returns the updated session.
func (repo *MongoSchedulerRepo) RescheduleSession(ctx context.Context, sessionID string, newDate time.Time) (*models.Session, error) {
	var updated *models.Session

	txnFn := func(sc mongo.SessionContext) error {
		var sess models.Session
		if err := repo.sessionColl.FindOne(sc, bson.M{"id": sessionID}).Decode(&sess); err != nil {
			if err == mongo.ErrNoDocuments {
				return ErrSessionNotFound
			}
			return fmt.Errorf("reschedule read failed: %w", err)
		}
		oldDate := sess.Date

		update := bson.M{"$set": bson.M{"date": newDate, "rescheduled": true}}
		if _, err := repo.sessionColl.UpdateOne(sc, bson.M{"id": sessionID}, update); err != nil {
			return fmt.Errorf("reschedule session update failed: %w", err)
		}

		oldDateStr := oldDate.UTC().Format("2006-01-02")
		oldTimeStr := oldDate.UTC().Format("15:04")

		var profile models.AvailabilityProfile
		err := repo.availabilityColl.FindOne(sc, bson.M{"practitioner_uid": sess.PractitionerUID}).Decode(&profile)
		if err != nil && err != mongo.ErrNoDocuments {
			return fmt.Errorf("reschedule availability read failed: %w", err)
		}
		if err == nil {
			times := mergeOverrideTime(profile.Overrides[oldDateStr], oldTimeStr)
			availUpdate := bson.M{"$set": bson.M{"overrides." + oldDateStr: times}}
			availFilter := bson.M{"practitioner_uid": sess.PractitionerUID}
			if _, err := repo.availabilityColl.UpdateOne(sc, availFilter, availUpdate); err != nil {
				return fmt.Errorf("reschedule availability update failed: %w", err)
			}
		}

		sess.Date = newDate
		sess.Rescheduled = true
		updated = &sess
		return nil
	}

	if err := repo.runInTransaction(ctx, txnFn); err != nil {
		return nil, err
	}
	return updated, nil
}

// runInTransaction executes txnFn inside a Mongo transaction, retrying up to
// maxTxnRetries times on transient/commit-unknown labels. Sentinel errors pass
// through untouched so callers can branch on them.
func (repo *MongoSchedulerRepo) runInTransaction(ctx context.Context, txnFn func(mongo.SessionContext) error) error {
	client := repo.sessionColl.Database().Client()
	sess, err := client.StartSession()
	if err != nil {
		return fmt.Errorf("could not start mongo session: %w", err)
	}
	defer sess.EndSession(ctx)

	var lastErr error
	for attempt := 0; attempt < maxTxnRetries; attempt++ {
		lastErr = mongo.WithSession(ctx, sess, func(sc mongo.SessionContext) error {
			if err := sc.StartTransaction(); err != nil {
				return err
			}
			if err := txnFn(sc); err != nil {
				_ = sc.AbortTransaction(sc)
				return err
			}
			return sc.CommitTransaction(sc)
		})
		if lastErr == nil {
			return nil
		}
		if errors.Is(lastErr, ErrSlotTaken) || errors.Is(lastErr, ErrSessionNotFound) {
			return lastErr
		}
		if !isRetryable(lastErr) {
			break
		}
	}
	return fmt.Errorf("scheduler transaction failed: %w", lastErr)
}

// isRetryable reports whether the driver flagged the failure as safe to retry.
func isRetryable(err error) bool {
	var ce mongo.CommandError
	if errors.As(err, &ce) {
		return ce.HasErrorLabel("TransientTransactionError") ||
			ce.HasErrorLabel("UnknownTransactionCommitResult")
	}
	return false
}

// mergeOverrideTime inserts t into times keeping the list unique and sorted.
// "HH:MM" strings sort chronologically.
func mergeOverrideTime(times []string, t string) []string {
	for _, existing := range times {
		if existing == t {
			return times
		}
	}
	merged := append(append([]string{}, times...), t)
	sort.Strings(merged)
	return merged
}
