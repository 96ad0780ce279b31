package directory

import (
	"context"
	"errors"
	"strconv"
	"testing"
	"time"

	directoryerrors "go-agency/internal/directory/errors"

	"github.com/go-redis/redismock/v9"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type fakeRepo struct {
	findActiveUsersByRoleFn func(ctx context.Context, agencyID, roleSubstring string) ([]User, error)
	hasApprovedLeaveOnFn    func(ctx context.Context, agencyID, employeeID string, day time.Time) (bool, error)
	findCalls               int
}

func (f *fakeRepo) FindActiveUsersByRole(ctx context.Context, agencyID, roleSubstring string) ([]User, error) {
	f.findCalls++
	if f.findActiveUsersByRoleFn != nil {
		return f.findActiveUsersByRoleFn(ctx, agencyID, roleSubstring)
	}
	return nil, nil
}

func (f *fakeRepo) HasApprovedLeaveOn(ctx context.Context, agencyID, employeeID string, day time.Time) (bool, error) {
	if f.hasApprovedLeaveOnFn != nil {
		return f.hasApprovedLeaveOnFn(ctx, agencyID, employeeID, day)
	}
	return false, nil
}

var fixedNow = time.Date(2024, 6, 3, 9, 30, 0, 0, time.UTC)

func newTestService(repo Repository) *service {
	svc := NewService(repo, zap.NewNop()).(*service)
	svc.now = func() time.Time { return fixedNow }
	return svc
}

func employeeUser(role string) User {
	id := uuid.New()
	return User{ID: uuid.New(), EmployeeID: &id, Role: role, IsActive: true}
}

func TestService_IsRoleAvailable(t *testing.T) {
	ctx := context.Background()
	agencyID := uuid.New().String()

	t.Run("no matching user is unavailable", func(t *testing.T) {
		repo := &fakeRepo{findActiveUsersByRoleFn: func(ctx context.Context, aid, role string) ([]User, error) {
			assert.Equal(t, agencyID, aid)
			assert.Equal(t, "hr", role)
			return nil, nil
		}}

		available, err := newTestService(repo).IsRoleAvailable(ctx, agencyID, " HR ")

		assert.NoError(t, err)
		assert.False(t, available)
	})

	t.Run("user without employee record is always present", func(t *testing.T) {
		onLeave := employeeUser("HR Officer")
		repo := &fakeRepo{
			findActiveUsersByRoleFn: func(ctx context.Context, aid, role string) ([]User, error) {
				return []User{{ID: uuid.New(), Role: "HR Director", IsActive: true}, onLeave}, nil
			},
			hasApprovedLeaveOnFn: func(ctx context.Context, aid, eid string, day time.Time) (bool, error) {
				t.Fatal("leave lookup must not run")
				return false, nil
			},
		}

		available, err := newTestService(repo).IsRoleAvailable(ctx, agencyID, "hr")

		assert.NoError(t, err)
		assert.True(t, available)
	})

	t.Run("everyone on approved leave today is unavailable", func(t *testing.T) {
		repo := &fakeRepo{
			findActiveUsersByRoleFn: func(ctx context.Context, aid, role string) ([]User, error) {
				return []User{employeeUser("Supervisor"), employeeUser("Night Supervisor")}, nil
			},
			hasApprovedLeaveOnFn: func(ctx context.Context, aid, eid string, day time.Time) (bool, error) {
				assert.Equal(t, time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC), day)
				return true, nil
			},
		}

		available, err := newTestService(repo).IsRoleAvailable(ctx, agencyID, "supervisor")

		assert.NoError(t, err)
		assert.False(t, available)
	})

	t.Run("one present user is enough", func(t *testing.T) {
		present := employeeUser("Supervisor")
		repo := &fakeRepo{
			findActiveUsersByRoleFn: func(ctx context.Context, aid, role string) ([]User, error) {
				return []User{employeeUser("Supervisor"), present}, nil
			},
			hasApprovedLeaveOnFn: func(ctx context.Context, aid, eid string, day time.Time) (bool, error) {
				return eid != present.EmployeeID.String(), nil
			},
		}

		available, err := newTestService(repo).IsRoleAvailable(ctx, agencyID, "supervisor")

		assert.NoError(t, err)
		assert.True(t, available)
	})

	t.Run("repository error is returned", func(t *testing.T) {
		repo := &fakeRepo{findActiveUsersByRoleFn: func(ctx context.Context, aid, role string) ([]User, error) {
			return nil, errors.New("db down")
		}}

		_, err := newTestService(repo).IsRoleAvailable(ctx, agencyID, "hr")

		assert.EqualError(t, err, "db down")
	})

	t.Run("invalid input", func(t *testing.T) {
		svc := newTestService(&fakeRepo{})

		_, err := svc.IsRoleAvailable(ctx, "not-a-uuid", "hr")
		assert.ErrorIs(t, err, directoryerrors.ErrInvalidAgencyID)

		_, err = svc.IsRoleAvailable(ctx, agencyID, "  ")
		assert.ErrorIs(t, err, directoryerrors.ErrRoleRequired)
	})
}

func TestService_IsRoleAvailable_Cache(t *testing.T) {
	ctx := context.Background()
	agencyID := uuid.New().String()
	key := GetAvailabilityKey(agencyID)
	field := "hr:2024-06-03"
	stamp := strconv.FormatInt(fixedNow.Unix(), 10)

	newCached := func(repo Repository) (*service, redismock.ClientMock) {
		rdb, mock := redismock.NewClientMock()
		svc := NewServiceWithCache(repo, rdb, 5*time.Minute, zap.NewNop()).(*service)
		svc.now = func() time.Time { return fixedNow }
		return svc, mock
	}

	t.Run("miss computes and stores", func(t *testing.T) {
		repo := &fakeRepo{findActiveUsersByRoleFn: func(ctx context.Context, aid, role string) ([]User, error) {
			return []User{{ID: uuid.New(), Role: "HR"}}, nil
		}}
		svc, mock := newCached(repo)
		mock.ExpectHGet(key, field).RedisNil()
		mock.ExpectHSet(key, field, "1:"+stamp).SetVal(1)
		mock.ExpectExpire(key, 5*time.Minute).SetVal(true)

		available, err := svc.IsRoleAvailable(ctx, agencyID, "hr")

		assert.NoError(t, err)
		assert.True(t, available)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("fresh hit skips repository", func(t *testing.T) {
		repo := &fakeRepo{}
		svc, mock := newCached(repo)
		fresh := strconv.FormatInt(fixedNow.Add(-time.Minute).Unix(), 10)
		mock.ExpectHGet(key, field).SetVal("0:" + fresh)

		available, err := svc.IsRoleAvailable(ctx, agencyID, "hr")

		assert.NoError(t, err)
		assert.False(t, available)
		assert.Equal(t, 0, repo.findCalls)
	})

	t.Run("stale hit is recomputed", func(t *testing.T) {
		repo := &fakeRepo{}
		svc, mock := newCached(repo)
		stale := strconv.FormatInt(fixedNow.Add(-10*time.Minute).Unix(), 10)
		mock.ExpectHGet(key, field).SetVal("1:" + stale)
		mock.ExpectHSet(key, field, "0:"+stamp).SetVal(0)
		mock.ExpectExpire(key, 5*time.Minute).SetVal(true)

		available, err := svc.IsRoleAvailable(ctx, agencyID, "hr")

		assert.NoError(t, err)
		assert.False(t, available)
		assert.Equal(t, 1, repo.findCalls)
	})

	t.Run("cache errors never fail the lookup", func(t *testing.T) {
		repo := &fakeRepo{findActiveUsersByRoleFn: func(ctx context.Context, aid, role string) ([]User, error) {
			return []User{{ID: uuid.New(), Role: "HR"}}, nil
		}}
		svc, mock := newCached(repo)
		mock.ExpectHGet(key, field).SetErr(errors.New("redis down"))
		mock.ExpectHSet(key, field, "1:"+stamp).SetErr(errors.New("redis down"))

		available, err := svc.IsRoleAvailable(ctx, agencyID, "hr")

		assert.NoError(t, err)
		assert.True(t, available)
	})

	t.Run("invalidate deletes agency hash", func(t *testing.T) {
		svc, mock := newCached(&fakeRepo{})
		mock.ExpectDel(key).SetVal(1)

		assert.NoError(t, svc.Invalidate(ctx, agencyID))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestService_Availability(t *testing.T) {
	repo := &fakeRepo{findActiveUsersByRoleFn: func(ctx context.Context, aid, role string) ([]User, error) {
		return []User{{ID: uuid.New(), Role: "Supervisor"}}, nil
	}}

	resp, err := newTestService(repo).Availability(context.Background(), uuid.New().String(), "Supervisor")

	assert.NoError(t, err)
	assert.Equal(t, AvailabilityResponse{Role: "supervisor", Date: "2024-06-03", Available: true}, resp)
}

func TestService_Invalidate_NoCache(t *testing.T) {
	assert.NoError(t, newTestService(&fakeRepo{}).Invalidate(context.Background(), "agency-1"))
}

func TestService_IsRoleAvailable_SharedLookupIgnoresCallerCancel(t *testing.T) {
	repo := &fakeRepo{findActiveUsersByRoleFn: func(ctx context.Context, aid, role string) ([]User, error) {
		assert.NoError(t, ctx.Err())
		return []User{{ID: uuid.New(), Role: "HR"}}, nil
	}}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	available, err := newTestService(repo).IsRoleAvailable(ctx, uuid.New().String(), "hr")

	assert.NoError(t, err)
	assert.True(t, available)
	assert.Equal(t, 1, repo.findCalls)
}
