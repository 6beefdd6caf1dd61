package scheduling

import (
	"context"
	"encoding/json"
	"time"

	availabilityRepo "panchakarma/database/repository/availability"
	sessionRepo "panchakarma/database/repository/session"
	"panchakarma/utils"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// AvailabilityService resolves a practitioner's bookable slots over the
// rolling horizon.
type AvailabilityService interface {
	GetAvailability(ctx context.Context, practitionerUID string) (map[string][]string, error)
	Invalidate(ctx context.Context, practitionerUID string)
}

// DefaultAvailabilityService layers the repositories and a short-lived Redis
// cache over the pure resolver. Every slot-consuming mutation (booking,
// reschedule, availability edit) must call Invalidate.
type DefaultAvailabilityService struct {
	Profiles    availabilityRepo.AvailabilityRepository
	Sessions    sessionRepo.SessionRepository
	Cache       *redis.Client
	HorizonDays int
	CacheTTL    time.Duration
	Clock       func() time.Time
}

const availabilityCachePrefix = "availability:"

func (s *DefaultAvailabilityService) now() time.Time {
	if s.Clock != nil {
		return s.Clock()
	}
	return time.Now().UTC()
}

// GetAvailability returns the date -> times map for a practitioner. A
// practitioner with no profile simply has no slots.
func (s *DefaultAvailabilityService) GetAvailability(ctx context.Context, practitionerUID string) (map[string][]string, error) {
	logger := utils.GetLogger()

	if s.Cache != nil {
		cached, err := s.Cache.Get(ctx, availabilityCachePrefix+practitionerUID).Result()
		if err == nil {
			var slots map[string][]string
			if err := json.Unmarshal([]byte(cached), &slots); err == nil {
				return slots, nil
			}
			logger.Warn("discarding unreadable availability cache entry",
				zap.String("practitionerUID", practitionerUID))
		}
	}

	profile, err := s.Profiles.GetByPractitioner(practitionerUID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return map[string][]string{}, nil
	}

	now := s.now()
	booked, err := s.Sessions.BookedTimesFrom(practitionerUID, now)
	if err != nil {
		return nil, err
	}

	slots := Resolve(*profile, booked, now, s.HorizonDays)

	if s.Cache != nil {
		if payload, err := json.Marshal(slots); err == nil {
			if err := s.Cache.Set(ctx, availabilityCachePrefix+practitionerUID, payload, s.CacheTTL).Err(); err != nil {
				logger.Warn("failed to cache availability",
					zap.String("practitionerUID", practitionerUID), zap.Error(err))
			}
		}
	}
	return slots, nil
}

// Invalidate drops the cached resolution for a practitioner. Best-effort: a
// stale entry only lives until its TTL anyway.
func (s *DefaultAvailabilityService) Invalidate(ctx context.Context, practitionerUID string) {
	if s.Cache == nil {
		return
	}
	if err := s.Cache.Del(ctx, availabilityCachePrefix+practitionerUID).Err(); err != nil {
		utils.GetLogger().Warn("failed to invalidate availability cache",
			zap.String("practitionerUID", practitionerUID), zap.Error(err))
	}
}
