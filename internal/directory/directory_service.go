package directory

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	directoryerrors "go-agency/internal/directory/errors"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const (
	availabilityKeyPrefix = "directory:availability:"
	dayLayout             = "2006-01-02"
)

//go:generate mockgen -source=directory_service.go -destination=mock/directory_service_mock.go -package=mock
type Service interface {
	IsRoleAvailable(ctx context.Context, agencyID, roleSubstring string) (bool, error)
	Availability(ctx context.Context, agencyID, roleSubstring string) (AvailabilityResponse, error)
	Invalidate(ctx context.Context, agencyID string) error
}

type service struct {
	repo   Repository
	rdb    *redis.Client
	ttl    time.Duration
	group  singleflight.Group
	now    func() time.Time
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	return NewServiceWithCache(repo, nil, 0, logger...)
}

// NewServiceWithCache caches answers per agency in a Redis hash. A nil client
// disables caching.
func NewServiceWithCache(repo Repository, rdb *redis.Client, ttl time.Duration, logger ...*zap.Logger) Service {
	l := zap.L().Named("directory.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("directory.service")
	}
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &service{
		repo:   repo,
		rdb:    rdb,
		ttl:    ttl,
		now:    time.Now,
		logger: l,
	}
}

func GetAvailabilityKey(agencyID string) string {
	return availabilityKeyPrefix + agencyID
}

func (s *service) today() time.Time {
	now := s.now().UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

// IsRoleAvailable reports whether at least one active user whose role matches
// is at work today. Users without an employee record count as present, and a
// user is absent only while an agency-approved leave covers today.
func (s *service) IsRoleAvailable(ctx context.Context, agencyID, roleSubstring string) (bool, error) {
	if _, err := uuid.Parse(agencyID); err != nil {
		return false, directoryerrors.ErrInvalidAgencyID
	}
	roleSubstring = strings.ToLower(strings.TrimSpace(roleSubstring))
	if roleSubstring == "" {
		return false, directoryerrors.ErrRoleRequired
	}

	day := s.today()
	field := roleSubstring + ":" + day.Format(dayLayout)

	if available, ok := s.readCache(ctx, agencyID, field); ok {
		return available, nil
	}

	// Collapsed callers share this lookup, so one caller's cancellation must not reach it.
	shared := context.WithoutCancel(ctx)
	v, err, _ := s.group.Do(agencyID+"|"+field, func() (interface{}, error) {
		available, err := s.lookup(shared, agencyID, roleSubstring, day)
		if err != nil {
			return false, err
		}
		s.writeCache(shared, agencyID, field, available)
		return available, nil
	})
	if err != nil {
		s.logger.Error("role availability lookup failed",
			zap.String("agency_id", agencyID),
			zap.String("role", roleSubstring),
			zap.Error(err),
		)
		return false, err
	}
	return v.(bool), nil
}

func (s *service) lookup(ctx context.Context, agencyID, roleSubstring string, day time.Time) (bool, error) {
	users, err := s.repo.FindActiveUsersByRole(ctx, agencyID, roleSubstring)
	if err != nil {
		return false, err
	}

	for _, u := range users {
		if u.EmployeeID == nil {
			return true, nil
		}
		onLeave, err := s.repo.HasApprovedLeaveOn(ctx, agencyID, u.EmployeeID.String(), day)
		if err != nil {
			return false, err
		}
		if !onLeave {
			return true, nil
		}
	}

	s.logger.Debug("role unavailable",
		zap.String("agency_id", agencyID),
		zap.String("role", roleSubstring),
		zap.Int("matching_users", len(users)),
	)
	return false, nil
}

func (s *service) Availability(ctx context.Context, agencyID, roleSubstring string) (AvailabilityResponse, error) {
	available, err := s.IsRoleAvailable(ctx, agencyID, roleSubstring)
	if err != nil {
		return AvailabilityResponse{}, err
	}
	return AvailabilityResponse{
		Role:      strings.ToLower(strings.TrimSpace(roleSubstring)),
		Date:      s.today().Format(dayLayout),
		Available: available,
	}, nil
}

func (s *service) Invalidate(ctx context.Context, agencyID string) error {
	if s.rdb == nil {
		return nil
	}
	return s.rdb.Del(ctx, GetAvailabilityKey(agencyID)).Err()
}

// Cached values are "<0|1>:<unix seconds>"; the hash TTL is refreshed on every
// write, so each entry also carries its own age.
func (s *service) readCache(ctx context.Context, agencyID, field string) (bool, bool) {
	if s.rdb == nil {
		return false, false
	}

	val, err := s.rdb.HGet(ctx, GetAvailabilityKey(agencyID), field).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			s.logger.Warn("availability cache read failed", zap.String("agency_id", agencyID), zap.Error(err))
		}
		return false, false
	}

	flag, stamp, found := strings.Cut(val, ":")
	if !found {
		return false, false
	}
	at, err := strconv.ParseInt(stamp, 10, 64)
	if err != nil || s.now().Sub(time.Unix(at, 0)) > s.ttl {
		return false, false
	}
	return flag == "1", true
}

func (s *service) writeCache(ctx context.Context, agencyID, field string, available bool) {
	if s.rdb == nil {
		return
	}

	flag := "0"
	if available {
		flag = "1"
	}
	key := GetAvailabilityKey(agencyID)
	val := flag + ":" + strconv.FormatInt(s.now().Unix(), 10)

	if err := s.rdb.HSet(ctx, key, field, val).Err(); err != nil {
		s.logger.Warn("availability cache write failed", zap.String("key", key), zap.Error(err))
		return
	}
	if err := s.rdb.Expire(ctx, key, s.ttl).Err(); err != nil {
		s.logger.Warn("availability cache expire failed", zap.String("key", key), zap.Error(err))
	}
}
