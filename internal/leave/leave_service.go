package leave

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"go-agency/internal/events"
	leaveerrors "go-agency/internal/leave/errors"
	"go-agency/internal/messaging/kafka"
	"go-agency/internal/role"
	"go-agency/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const dateLayout = "2006-01-02"

//go:generate mockgen -source=leave_service.go -destination=mock/leave_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, agencyID string, actor Actor, req CreateLeaveRequest) (LeaveResponse, error)
	GetAll(ctx context.Context, agencyID string, actor Actor) ([]LeaveResponse, error)
	GetByID(ctx context.Context, agencyID string, actor Actor, id string) (LeaveResponse, error)
	Approve(ctx context.Context, agencyID string, actor Actor, id string, req ApproveLeaveRequest) (LeaveResponse, error)
}

type service struct {
	db           *sql.DB
	repo         Repository
	availability AvailabilityChecker
	outbox       kafka.OutboxRepository
	logger       *zap.Logger
}

func NewService(db *sql.DB, repo Repository, availability AvailabilityChecker, logger ...*zap.Logger) Service {
	return NewServiceWithOutbox(db, repo, availability, nil, logger...)
}

func NewServiceWithOutbox(
	db *sql.DB,
	repo Repository,
	availability AvailabilityChecker,
	outboxRepo kafka.OutboxRepository,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("leave.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leave.service")
	}
	return &service{
		db:           db,
		repo:         repo,
		availability: availability,
		outbox:       outboxRepo,
		logger:       l,
	}
}

func (s *service) Create(ctx context.Context, agencyID string, actor Actor, req CreateLeaveRequest) (LeaveResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("create leave requested",
		zap.String("request_id", rid),
		zap.String("agency_id", agencyID),
		zap.String("actor_id", actor.UserID),
		zap.String("employee_id", req.EmployeeID),
		zap.String("leave_type", req.LeaveType),
	)

	input, err := validateCreateRequest(agencyID, actor.UserID, req)
	if err != nil {
		s.logger.Warn("create leave validation failed", zap.String("request_id", rid), zap.Error(err))
		return LeaveResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create leave begin tx failed", zap.String("request_id", rid), zap.Error(err))
		return LeaveResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	employee, err := qtx.FindEmployeeByIDAndAgency(ctx, agencyID, req.EmployeeID)
	if err != nil {
		s.logger.Warn("create leave employee lookup failed",
			zap.String("agency_id", agencyID),
			zap.String("employee_id", req.EmployeeID),
			zap.Error(err),
		)
		return LeaveResponse{}, mapEmployeeError(err)
	}

	// Emergency leave is always accepted, even over an existing leave.
	overlap := false
	if input.leaveType != TypeEmergency {
		overlap, err = qtx.HasOverlappingPeriod(ctx, agencyID, req.EmployeeID, input.startDate, input.endDate, nil)
		if err != nil {
			s.logger.Error("create leave overlap check failed", zap.Error(err))
			return LeaveResponse{}, mapRepositoryError(err)
		}
	}
	if overlap {
		s.logger.Warn("create leave overlap detected",
			zap.String("agency_id", agencyID),
			zap.String("employee_id", req.EmployeeID),
			zap.String("start_date", req.StartDate),
			zap.String("end_date", req.EndDate),
		)
		return LeaveResponse{}, leaveerrors.ErrLeaveOverlap
	}

	now := time.Now().UTC()
	l := &Leave{
		ID:         uuid.New(),
		AgencyID:   input.agencyID,
		EmployeeID: input.employeeID,
		LeaveType:  input.leaveType,
		StartDate:  input.startDate,
		EndDate:    input.endDate,
		TotalDays:  int(input.endDate.Sub(input.startDate).Hours()/24) + 1,
		Reason:     req.Reason,
		Status:     StatusPending,
		CreatedBy:  input.actorID,
		AppliedAt:  now,
	}
	if l.IsEmergency() {
		// Emergency leave is accepted on the spot; supervisor and HR sign afterwards.
		l.Status = StatusAgencyApproved
		l.AgencyApprovedAt = &now
		l.AgencyApprovedBy = approvedByPtr(ApprovedBySystem())
	}

	if err := qtx.Create(ctx, l); err != nil {
		s.logger.Error("create leave persist failed", zap.String("request_id", rid), zap.Error(err))
		return LeaveResponse{}, mapRepositoryError(err)
	}

	if err := s.enqueueStatusChanged(ctx, tx, events.EventLeaveCreated, "", *l, actor.UserID); err != nil {
		return LeaveResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("create leave commit failed", zap.String("request_id", rid), zap.Error(err))
		return LeaveResponse{}, err
	}

	if l.Status == StatusAgencyApproved {
		s.invalidateAvailability(ctx, agencyID)
	}

	s.logger.Info("create leave success",
		zap.String("request_id", rid),
		zap.String("leave_id", l.ID.String()),
		zap.String("agency_id", agencyID),
		zap.String("status", string(l.Status)),
	)

	l.Employee = employee
	return mapToResponse(*l), nil
}

func (s *service) GetAll(ctx context.Context, agencyID string, actor Actor) ([]LeaveResponse, error) {
	if agencyID == "" || actor.Role == "" {
		return []LeaveResponse{}, nil
	}
	if _, err := uuid.Parse(agencyID); err != nil {
		return nil, leaveerrors.ErrInvalidAgencyID
	}

	leaves, err := s.repo.FindAllByAgency(ctx, agencyID)
	if err != nil {
		s.logger.Error("list leaves failed", zap.String("agency_id", agencyID), zap.Error(err))
		return nil, mapRepositoryError(err)
	}

	class := role.Classify(actor.Role)
	if class.IsAdmin() {
		return mapToListResponse(leaves), nil
	}

	v, err := s.viewerFor(ctx, agencyID, actor, class)
	if err != nil {
		return nil, err
	}

	visible := filterVisible(v, leaves)
	s.logger.Debug("list leaves filtered",
		zap.String("agency_id", agencyID),
		zap.String("role", class.String()),
		zap.Int("total", len(leaves)),
		zap.Int("visible", len(visible)),
	)
	return mapToListResponse(visible), nil
}

func (s *service) GetByID(ctx context.Context, agencyID string, actor Actor, id string) (LeaveResponse, error) {
	if _, err := uuid.Parse(agencyID); err != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidAgencyID
	}
	if _, err := uuid.Parse(id); err != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidLeaveID
	}

	l, err := s.repo.FindByIDAndAgency(ctx, agencyID, id)
	if err != nil {
		return LeaveResponse{}, mapRepositoryError(err)
	}

	class := role.Classify(actor.Role)
	if !class.IsAdmin() {
		v, err := s.viewerFor(ctx, agencyID, actor, class)
		if err != nil {
			return LeaveResponse{}, err
		}
		if !visibleTo(v, *l) {
			return LeaveResponse{}, leaveerrors.ErrLeaveNotFound
		}
	}

	return mapToResponse(*l), nil
}

func (s *service) Approve(ctx context.Context, agencyID string, actor Actor, id string, req ApproveLeaveRequest) (LeaveResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("approve leave requested",
		zap.String("request_id", rid),
		zap.String("leave_id", id),
		zap.String("agency_id", agencyID),
		zap.String("actor_id", actor.UserID),
		zap.String("actor_role", actor.Role),
		zap.String("actor_class", role.Classify(actor.Role).Primary().String()),
		zap.String("requested_status", req.Status),
	)

	if _, err := uuid.Parse(agencyID); err != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidAgencyID
	}
	actorUUID, err := uuid.Parse(actor.UserID)
	if err != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidActorID
	}
	if _, err := uuid.Parse(id); err != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidLeaveID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("approve leave begin tx failed", zap.String("request_id", rid), zap.Error(err))
		return LeaveResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	l, err := qtx.FindByIDAndAgencyForUpdate(ctx, agencyID, id)
	if err != nil {
		return LeaveResponse{}, mapRepositoryError(err)
	}
	fromStatus := l.Status

	var update leaveUpdate
	if req.IsRejection() {
		update, err = planRejection(*l, req.RejectionReason)
	} else {
		available := func(ctx context.Context, roleSubstring string) (bool, error) {
			return s.availability.IsRoleAvailable(ctx, agencyID, roleSubstring)
		}
		update, err = planApproval(ctx, *l, role.Classify(actor.Role), actorUUID, time.Now().UTC(), available)
	}
	if err != nil {
		s.logger.Warn("approve leave rejected by routing rules",
			zap.String("request_id", rid),
			zap.String("leave_id", id),
			zap.String("status", string(fromStatus)),
			zap.String("actor_role", actor.Role),
			zap.Error(err),
		)
		return LeaveResponse{}, err
	}

	update.apply(l)
	if err := qtx.Update(ctx, l); err != nil {
		s.logger.Error("approve leave persist failed",
			zap.String("leave_id", id),
			zap.Error(err),
		)
		return LeaveResponse{}, mapRepositoryError(err)
	}

	eventType := events.EventLeaveApproved
	if l.Status == StatusRejected {
		eventType = events.EventLeaveRejected
	}
	if err := s.enqueueStatusChanged(ctx, tx, eventType, fromStatus, *l, actor.UserID); err != nil {
		return LeaveResponse{}, err
	}

	updated, err := qtx.FindByIDAndAgency(ctx, agencyID, id)
	if err != nil {
		return LeaveResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("approve leave commit failed",
			zap.String("leave_id", id),
			zap.Error(err),
		)
		return LeaveResponse{}, mapRepositoryError(err)
	}

	if fromStatus != StatusAgencyApproved && updated.Status == StatusAgencyApproved {
		s.invalidateAvailability(ctx, agencyID)
	}

	s.logger.Info("approve leave success",
		zap.String("request_id", rid),
		zap.String("leave_id", id),
		zap.String("from_status", string(fromStatus)),
		zap.String("status", string(updated.Status)),
	)

	return mapToResponse(*updated), nil
}

func (s *service) viewerFor(ctx context.Context, agencyID string, actor Actor, class role.Class) (viewer, error) {
	v := viewer{userID: actor.UserID, class: class}
	if !class.IsHR() {
		return v, nil
	}

	available, err := s.availability.IsRoleAvailable(ctx, agencyID, role.TokenSupervisor)
	if err != nil {
		s.logger.Error("supervisor availability lookup failed",
			zap.String("agency_id", agencyID),
			zap.Error(err),
		)
		return viewer{}, err
	}
	v.supervisorAvailable = available
	return v, nil
}

func (s *service) enqueueStatusChanged(ctx context.Context, tx *sql.Tx, eventType string, from Status, l Leave, actorID string) error {
	if s.outbox == nil {
		return nil
	}

	rid := contextutil.GetRequestID(ctx)
	event := events.LeaveStatusChangedEvent{
		EventType:  eventType,
		RequestID:  rid,
		LeaveID:    l.ID.String(),
		AgencyID:   l.AgencyID.String(),
		EmployeeID: l.EmployeeID.String(),
		LeaveType:  string(l.LeaveType),
		FromStatus: string(from),
		Status:     string(l.Status),
		ActorID:    actorID,
		OccurredAt: time.Now().UTC(),
	}
	payload, err := json.Marshal(event)
	if err != nil {
		s.logger.Error("marshal leave event failed", zap.String("request_id", rid), zap.Error(err))
		return err
	}

	if err := s.outbox.WithTx(tx).Create(ctx, kafka.OutboxEvent{
		ID:            uuid.NewString(),
		RequestID:     rid,
		AgencyID:      event.AgencyID,
		AggregateType: "leave",
		AggregateID:   event.LeaveID,
		EventType:     eventType,
		Topic:         events.LeaveStatusChangedTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	}); err != nil {
		s.logger.Error("leave outbox persist failed",
			zap.String("leave_id", event.LeaveID),
			zap.String("event_type", eventType),
			zap.Error(err),
		)
		return err
	}
	return nil
}

// invalidateAvailability runs after commit; a stale cache only delays
// routing by one TTL, so failures are logged and swallowed.
func (s *service) invalidateAvailability(ctx context.Context, agencyID string) {
	if err := s.availability.Invalidate(ctx, agencyID); err != nil {
		s.logger.Warn("availability cache invalidation failed",
			zap.String("agency_id", agencyID),
			zap.Error(err),
		)
	}
}

type createInput struct {
	agencyID   uuid.UUID
	employeeID uuid.UUID
	actorID    uuid.UUID
	leaveType  Type
	startDate  time.Time
	endDate    time.Time
}

func validateCreateRequest(agencyID, actorID string, req CreateLeaveRequest) (createInput, error) {
	var in createInput
	var err error

	if in.agencyID, err = uuid.Parse(agencyID); err != nil {
		return createInput{}, leaveerrors.ErrInvalidAgencyID
	}
	if in.actorID, err = uuid.Parse(actorID); err != nil {
		return createInput{}, leaveerrors.ErrInvalidActorID
	}
	if in.employeeID, err = uuid.Parse(req.EmployeeID); err != nil {
		return createInput{}, leaveerrors.ErrInvalidEmployeeID
	}

	in.leaveType = Type(req.LeaveType)
	if !in.leaveType.Valid() {
		return createInput{}, leaveerrors.ErrInvalidLeaveType
	}

	if in.startDate, err = parseDate(req.StartDate); err != nil {
		return createInput{}, err
	}
	if in.endDate, err = parseDate(req.EndDate); err != nil {
		return createInput{}, err
	}
	if in.startDate.After(in.endDate) {
		return createInput{}, leaveerrors.ErrInvalidDateRange
	}
	return in, nil
}

func parseDate(v string) (time.Time, error) {
	t, err := time.Parse(dateLayout, v)
	if err != nil {
		return time.Time{}, leaveerrors.ErrInvalidDateFormat
	}
	return t, nil
}

func formatStamp(at *time.Time, by *ApprovedBy) (*string, *string) {
	var atStr, byStr *string
	if at != nil {
		v := at.UTC().Format(time.RFC3339)
		atStr = &v
	}
	if by != nil {
		v := by.String()
		byStr = &v
	}
	return atStr, byStr
}

func mapToResponse(l Leave) LeaveResponse {
	resp := LeaveResponse{
		ID:              l.ID.String(),
		AgencyID:        l.AgencyID.String(),
		EmployeeID:      l.EmployeeID.String(),
		ApplicantRole:   l.ApplicantRole(),
		LeaveType:       string(l.LeaveType),
		StartDate:       l.StartDate.Format(dateLayout),
		EndDate:         l.EndDate.Format(dateLayout),
		TotalDays:       l.TotalDays,
		Reason:          l.Reason,
		Status:          string(l.Status),
		PendingWith:     PendingWith(l),
		CreatedBy:       l.CreatedBy.String(),
		AppliedAt:       l.AppliedAt.UTC().Format(time.RFC3339),
		RejectionReason: l.RejectionReason,
	}
	if l.Employee != nil {
		resp.EmployeeName = l.Employee.FullName
	}
	resp.SupervisorApprovedAt, resp.SupervisorApprovedBy = formatStamp(l.SupervisorApprovedAt, l.SupervisorApprovedBy)
	resp.HRApprovedAt, resp.HRApprovedBy = formatStamp(l.HRApprovedAt, l.HRApprovedBy)
	resp.AgencyApprovedAt, resp.AgencyApprovedBy = formatStamp(l.AgencyApprovedAt, l.AgencyApprovedBy)
	return resp
}

func mapToListResponse(leaves []Leave) []LeaveResponse {
	resp := make([]LeaveResponse, len(leaves))
	for i, l := range leaves {
		resp[i] = mapToResponse(l)
	}
	return resp
}
