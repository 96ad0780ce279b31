package rbac

import (
	"context"
	"strings"
	"sync"

	"go-agency/internal/domain"
	"go-agency/internal/role"

	"github.com/casbin/casbin/v2"
	"go.uber.org/zap"
)

//go:generate mockgen -source=rbac_service.go -destination=mock/rbac_service_mock.go -package=mock
type Service interface {
	LoadAgencyPolicy(ctx context.Context, agencyID string) error
	Enforce(ctx context.Context, req domain.EnforceRequest) (bool, error)
	Policies(ctx context.Context, agencyID string) ([]domain.PolicyResponse, error)
}

type service struct {
	repo     Repository
	enforcer *casbin.Enforcer
	mu       sync.Mutex
	logger   *zap.Logger
}

func NewService(repo Repository, enforcer *casbin.Enforcer, logger ...*zap.Logger) Service {
	l := zap.L().Named("rbac.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("rbac.service")
	}
	return &service{
		repo:     repo,
		enforcer: enforcer,
		logger:   l,
	}
}

func (s *service) LoadAgencyPolicy(ctx context.Context, agencyID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.loadAgencyPolicyUnlocked(ctx, agencyID)
}

// policyRows falls back to the default policy for unconfigured agencies.
func (s *service) policyRows(ctx context.Context, agencyID string) ([]RolePermissionRow, error) {
	rows, err := s.repo.GetRolePermissions(ctx, agencyID)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return DefaultPolicy(), nil
	}
	return rows, nil
}

func (s *service) loadAgencyPolicyUnlocked(ctx context.Context, agencyID string) error {
	rows, err := s.policyRows(ctx, agencyID)
	if err != nil {
		return err
	}

	if _, err := s.enforcer.RemoveFilteredPolicy(1, agencyID); err != nil {
		return err
	}

	seen := make(map[string]struct{}, len(rows))
	rules := make([][]string, 0, len(rows))
	for _, row := range rows {
		rule := []string{strings.ToLower(row.Role), agencyID, row.Resource, row.Action}
		key := strings.Join(rule, "|")
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		rules = append(rules, rule)
	}

	if len(rules) > 0 {
		if _, err := s.enforcer.AddPolicies(rules); err != nil {
			return err
		}
	}

	s.logger.Debug("rbac policy loaded",
		zap.String("agency_id", agencyID),
		zap.Int("rules", len(rules)),
	)
	return nil
}

// Enforce allows the request when any class held by the role name is allowed.
// Policy is reloaded on every call so role_permissions edits apply immediately.
func (s *service) Enforce(ctx context.Context, req domain.EnforceRequest) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.loadAgencyPolicyUnlocked(ctx, req.AgencyID); err != nil {
		s.logger.Error("rbac load policy failed", zap.String("agency_id", req.AgencyID), zap.Error(err))
		return false, err
	}

	classes := role.Classify(req.Role).Names()
	for _, class := range classes {
		allowed, err := s.enforcer.Enforce(class, req.AgencyID, req.Resource, req.Action)
		if err != nil {
			s.logger.Error("rbac enforce failed",
				zap.String("agency_id", req.AgencyID),
				zap.String("class", class),
				zap.Error(err),
			)
			return false, err
		}
		if allowed {
			s.logger.Debug("rbac enforce allowed",
				zap.String("agency_id", req.AgencyID),
				zap.String("role", req.Role),
				zap.String("class", class),
				zap.String("resource", req.Resource),
				zap.String("action", req.Action),
			)
			return true, nil
		}
	}

	s.logger.Info("rbac enforce denied",
		zap.String("agency_id", req.AgencyID),
		zap.String("role", req.Role),
		zap.Strings("classes", classes),
		zap.String("resource", req.Resource),
		zap.String("action", req.Action),
	)
	return false, nil
}

func (s *service) Policies(ctx context.Context, agencyID string) ([]domain.PolicyResponse, error) {
	rows, err := s.policyRows(ctx, agencyID)
	if err != nil {
		return nil, err
	}

	resp := make([]domain.PolicyResponse, len(rows))
	for i, row := range rows {
		resp[i] = domain.PolicyResponse{
			Role:     strings.ToLower(row.Role),
			Resource: row.Resource,
			Action:   row.Action,
		}
	}
	return resp, nil
}
