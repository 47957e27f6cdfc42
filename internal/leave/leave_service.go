package leave

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"go-hris-leave/internal/employee"
	"go-hris-leave/internal/events"
	leaveerrors "go-hris-leave/internal/leave/errors"
	"go-hris-leave/internal/messaging/kafka"
	"go-hris-leave/internal/shared/apperror"
	"go-hris-leave/internal/shared/contextutil"
	"go-hris-leave/internal/shared/counter"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const requestNumberCounter = "leave_request_number"

type Service interface {
	Submit(ctx context.Context, tenantID, actorID string, req SubmitLeaveRequest) (LeaveRequestResponse, error)
	Decide(ctx context.Context, tenantID, actorID, id string, req DecideLeaveRequest) (LeaveRequestResponse, error)
	Remove(ctx context.Context, tenantID, actorID, id string) error
	FindAll(ctx context.Context, tenantID string, filter ListFilter) ([]LeaveRequestResponse, error)
	FindOne(ctx context.Context, tenantID, id string) (LeaveRequestResponse, error)
	GetBalances(ctx context.Context, tenantID, employeeID string) (LeaveBalanceResponse, error)
}

type service struct {
	db        *sql.DB
	repo      Repository
	employees employee.Repository
	counter   counter.Repository
	outbox    kafka.OutboxRepository
	sf        *singleflight.Group
	now       func() time.Time
	logger    *zap.Logger
}

type Option func(*service)

func WithLogger(logger *zap.Logger) Option {
	return func(s *service) {
		if logger != nil {
			s.logger = logger.Named("leave.service")
		}
	}
}

// WithClock replaces time.Now; "today" is derived from it in UTC.
func WithClock(now func() time.Time) Option {
	return func(s *service) {
		if now != nil {
			s.now = now
		}
	}
}

// WithOutbox enqueues a lifecycle event in the same transaction as every change.
func WithOutbox(outbox kafka.OutboxRepository) Option {
	return func(s *service) { s.outbox = outbox }
}

// WithCounter assigns per tenant request numbers (LR-000001) on submit.
func WithCounter(c counter.Repository) Option {
	return func(s *service) { s.counter = c }
}

func NewService(db *sql.DB, repo Repository, employees employee.Repository, opts ...Option) Service {
	s := &service{
		db:        db,
		repo:      repo,
		employees: employees,
		sf:        &singleflight.Group{},
		now:       time.Now,
		logger:    zap.L().Named("leave.service"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *service) today() time.Time {
	return truncateToDate(s.now().UTC())
}

func (s *service) Submit(ctx context.Context, tenantID, actorID string, req SubmitLeaveRequest) (LeaveRequestResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("submit leave requested",
		zap.String("request_id", rid),
		zap.String("tenant_id", tenantID),
		zap.String("actor_id", actorID),
		zap.String("employee_id", req.EmployeeID),
		zap.String("type", req.Type),
		zap.String("start_date", req.StartDate),
		zap.String("end_date", req.EndDate),
	)

	in, err := s.validateSubmit(tenantID, actorID, req)
	if err != nil {
		s.logger.Warn("submit leave validation failed", zap.String("request_id", rid), zap.Error(err))
		return LeaveRequestResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("submit leave begin tx failed", zap.String("request_id", rid), zap.Error(err))
		return LeaveRequestResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	// Serializes submissions and approvals for the same employee.
	empl, err := s.employees.WithTx(tx).FindByIDAndTenantForUpdate(ctx, tenantID, req.EmployeeID)
	if err != nil {
		s.logger.Warn("submit leave employee lookup failed",
			zap.String("tenant_id", tenantID),
			zap.String("employee_id", req.EmployeeID),
			zap.Error(err),
		)
		return LeaveRequestResponse{}, err
	}

	overlapping, err := qtx.FindActiveOverlapping(ctx, tenantID, req.EmployeeID, in.start, in.end)
	if err != nil {
		s.logger.Error("submit leave overlap check failed", zap.String("request_id", rid), zap.Error(err))
		return LeaveRequestResponse{}, err
	}
	if len(overlapping) > 0 {
		s.logger.Warn("submit leave overlap detected",
			zap.String("tenant_id", tenantID),
			zap.String("employee_id", req.EmployeeID),
			zap.String("conflicting_id", overlapping[0].ID.String()),
			zap.String("start_date", in.start.Format(dateLayout)),
			zap.String("end_date", in.end.Format(dateLayout)),
		)
		return LeaveRequestResponse{}, leaveerrors.ErrOverlapConflict
	}

	days := DurationDays(in.start, in.end)
	if days <= 0 {
		return LeaveRequestResponse{}, leaveerrors.ErrEmptyRange
	}

	available, err := Balance(empl, in.leaveType)
	if err != nil {
		return LeaveRequestResponse{}, err
	}
	if available.LessThan(decimal.NewFromInt(int64(days))) {
		s.logger.Warn("submit leave insufficient balance",
			zap.String("employee_id", req.EmployeeID),
			zap.String("type", in.leaveType.String()),
			zap.String("available", available.String()),
			zap.Int("requested", days),
		)
		return LeaveRequestResponse{}, leaveerrors.InsufficientBalance(in.leaveType.String(), available, days)
	}

	number, err := s.nextRequestNumber(ctx, tx, tenantID)
	if err != nil {
		s.logger.Error("submit leave generate number failed", zap.String("request_id", rid), zap.Error(err))
		return LeaveRequestResponse{}, err
	}

	l := &LeaveRequest{
		ID:            uuid.New(),
		TenantID:      in.tenantID,
		EmployeeID:    in.employeeID,
		RequestNumber: number,
		Type:          in.leaveType,
		StartDate:     in.start,
		EndDate:       in.end,
		DurationDays:  days,
		Reason:        strings.TrimSpace(req.Reason),
		RequestedDate: s.now().UTC(),
		Status:        StatusPending,
	}

	if err := qtx.Create(ctx, l); err != nil {
		s.logger.Error("submit leave persist failed", zap.String("request_id", rid), zap.Error(err))
		return LeaveRequestResponse{}, err
	}

	if err := s.enqueue(ctx, tx, events.LeaveRequestSubmitted, l, actorID); err != nil {
		s.logger.Error("submit leave outbox persist failed",
			zap.String("leave_request_id", l.ID.String()),
			zap.Error(err),
		)
		return LeaveRequestResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("submit leave commit failed", zap.String("request_id", rid), zap.Error(err))
		return LeaveRequestResponse{}, err
	}
	s.logger.Info("submit leave success",
		zap.String("request_id", rid),
		zap.String("leave_request_id", l.ID.String()),
		zap.String("request_number", l.RequestNumber),
		zap.String("employee_id", req.EmployeeID),
		zap.Int("duration_days", days),
	)

	return mapToResponse(*l), nil
}

type submitInput struct {
	tenantID   uuid.UUID
	employeeID uuid.UUID
	leaveType  LeaveType
	start      time.Time
	end        time.Time
}

func (s *service) validateSubmit(tenantID, actorID string, req SubmitLeaveRequest) (submitInput, error) {
	var in submitInput
	var err error

	if in.tenantID, err = uuid.Parse(tenantID); err != nil {
		return in, leaveerrors.ErrInvalidTenantID
	}
	if _, err = uuid.Parse(actorID); err != nil {
		return in, leaveerrors.ErrInvalidActorID
	}
	if in.employeeID, err = uuid.Parse(req.EmployeeID); err != nil {
		return in, leaveerrors.ErrInvalidEmployeeID
	}
	if in.leaveType, err = ParseLeaveType(req.Type); err != nil {
		return in, err
	}
	if strings.TrimSpace(req.Reason) == "" {
		return in, apperror.RequiredField("reason")
	}

	if in.start, err = ParseCalendarDate("startDate", req.StartDate); err != nil {
		return in, err
	}
	if in.end, err = ParseCalendarDate("endDate", req.EndDate); err != nil {
		return in, err
	}
	if in.end.Before(in.start) {
		return in, leaveerrors.ErrInvalidRange
	}
	if in.start.Before(s.today()) {
		return in, leaveerrors.ErrPastDate
	}
	return in, nil
}

func (s *service) nextRequestNumber(ctx context.Context, tx *sql.Tx, tenantID string) (string, error) {
	if s.counter == nil {
		return "", nil
	}
	next, err := s.counter.WithTx(tx).GetNextValue(ctx, tenantID, requestNumberCounter)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("LR-%06d", next), nil
}

func (s *service) Decide(ctx context.Context, tenantID, actorID, id string, req DecideLeaveRequest) (LeaveRequestResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("decide leave requested",
		zap.String("request_id", rid),
		zap.String("leave_request_id", id),
		zap.String("tenant_id", tenantID),
		zap.String("actor_id", actorID),
		zap.String("decision", req.Status),
	)

	if req.Status != StatusApproved && req.Status != StatusRejected {
		return LeaveRequestResponse{}, leaveerrors.ErrInvalidDecision
	}
	if _, err := uuid.Parse(tenantID); err != nil {
		return LeaveRequestResponse{}, leaveerrors.ErrInvalidTenantID
	}
	actorUUID, err := uuid.Parse(actorID)
	if err != nil {
		return LeaveRequestResponse{}, leaveerrors.ErrInvalidActorID
	}
	if _, err := uuid.Parse(id); err != nil {
		return LeaveRequestResponse{}, leaveerrors.ErrRequestNotFound
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("decide leave begin tx failed", zap.String("request_id", rid), zap.Error(err))
		return LeaveRequestResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	l, err := qtx.FindByIDAndTenantForUpdate(ctx, tenantID, id)
	if err != nil {
		s.logger.Warn("decide leave lookup failed", zap.String("leave_request_id", id), zap.Error(err))
		return LeaveRequestResponse{}, err
	}
	if !l.IsPending() {
		s.logger.Warn("decide leave already decided",
			zap.String("leave_request_id", id),
			zap.String("status", l.Status),
			zap.String("decision", req.Status),
		)
		return LeaveRequestResponse{}, leaveerrors.AlreadyDecided(l.Status)
	}

	if req.Status == StatusApproved {
		if err := s.debit(ctx, tx, tenantID, l); err != nil {
			return LeaveRequestResponse{}, err
		}
	}

	decidedAt := s.now().UTC()
	l.Status = req.Status
	l.DecidedBy = &actorUUID
	l.DecidedAt = &decidedAt

	if err := qtx.UpdateDecision(ctx, l); err != nil {
		s.logger.Error("decide leave persist failed",
			zap.String("leave_request_id", id),
			zap.String("status", l.Status),
			zap.Error(err),
		)
		return LeaveRequestResponse{}, err
	}

	eventType := events.LeaveRequestRejected
	if l.Status == StatusApproved {
		eventType = events.LeaveRequestApproved
	}
	if err := s.enqueue(ctx, tx, eventType, l, actorID); err != nil {
		s.logger.Error("decide leave outbox persist failed", zap.String("leave_request_id", id), zap.Error(err))
		return LeaveRequestResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("decide leave commit failed", zap.String("leave_request_id", id), zap.Error(err))
		return LeaveRequestResponse{}, err
	}
	s.logger.Info("decide leave success",
		zap.String("request_id", rid),
		zap.String("leave_request_id", id),
		zap.String("status", l.Status),
	)

	return mapToResponse(*l), nil
}

// debit re-checks the balance under the employee row lock and writes it back.
func (s *service) debit(ctx context.Context, tx *sql.Tx, tenantID string, l *LeaveRequest) error {
	days := DurationDays(truncateToDate(l.StartDate), truncateToDate(l.EndDate))
	if days <= 0 {
		return leaveerrors.ErrEmptyRange
	}

	etx := s.employees.WithTx(tx)
	empl, err := etx.FindByIDAndTenantForUpdate(ctx, tenantID, l.EmployeeID.String())
	if err != nil {
		s.logger.Warn("decide leave employee lookup failed",
			zap.String("employee_id", l.EmployeeID.String()),
			zap.Error(err),
		)
		return err
	}

	available, err := Balance(empl, l.Type)
	if err != nil {
		return err
	}
	requested := decimal.NewFromInt(int64(days))
	if available.LessThan(requested) {
		s.logger.Warn("decide leave insufficient balance",
			zap.String("leave_request_id", l.ID.String()),
			zap.String("type", l.Type.String()),
			zap.String("available", available.String()),
			zap.Int("requested", days),
		)
		return leaveerrors.InsufficientBalance(l.Type.String(), available, days)
	}

	if err := SetBalance(empl, l.Type, available.Sub(requested)); err != nil {
		return err
	}
	if err := etx.UpdateLeaveBalances(ctx, empl); err != nil {
		s.logger.Error("decide leave balance persist failed",
			zap.String("employee_id", l.EmployeeID.String()),
			zap.Error(err),
		)
		return err
	}

	l.DurationDays = days
	return nil
}

func (s *service) Remove(ctx context.Context, tenantID, actorID, id string) error {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("remove leave requested",
		zap.String("request_id", rid),
		zap.String("leave_request_id", id),
		zap.String("tenant_id", tenantID),
	)

	if _, err := uuid.Parse(tenantID); err != nil {
		return leaveerrors.ErrInvalidTenantID
	}
	if _, err := uuid.Parse(id); err != nil {
		return leaveerrors.ErrRequestNotFound
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("remove leave begin tx failed", zap.String("request_id", rid), zap.Error(err))
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	l, err := qtx.FindByIDAndTenantForUpdate(ctx, tenantID, id)
	if err != nil {
		return err
	}
	// Approved balances are not credited back.
	if err := qtx.Delete(ctx, tenantID, id); err != nil {
		s.logger.Error("remove leave persist failed", zap.String("leave_request_id", id), zap.Error(err))
		return err
	}
	if err := s.enqueue(ctx, tx, events.LeaveRequestRemoved, l, actorID); err != nil {
		s.logger.Error("remove leave outbox persist failed", zap.String("leave_request_id", id), zap.Error(err))
		return err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("remove leave commit failed", zap.String("leave_request_id", id), zap.Error(err))
		return err
	}
	s.logger.Info("remove leave success",
		zap.String("leave_request_id", id),
		zap.String("status", l.Status),
	)
	return nil
}

func (s *service) FindAll(ctx context.Context, tenantID string, filter ListFilter) ([]LeaveRequestResponse, error) {
	if _, err := uuid.Parse(tenantID); err != nil {
		return nil, leaveerrors.ErrInvalidTenantID
	}
	if filter.EmployeeID != "" {
		if _, err := uuid.Parse(filter.EmployeeID); err != nil {
			return nil, leaveerrors.ErrInvalidEmployeeID
		}
	}
	switch filter.Status {
	case "", StatusPending, StatusApproved, StatusRejected:
	default:
		return nil, apperror.InvalidField("status")
	}

	key := strings.Join([]string{tenantID, filter.EmployeeID, filter.Status}, "|")
	// The shared query outlives any single caller; each caller still stops on its own ctx.
	sharedCtx := context.WithoutCancel(ctx)
	ch := s.sf.DoChan(key, func() (any, error) {
		items, err := s.repo.FindAll(sharedCtx, tenantID, filter)
		if err != nil {
			return nil, err
		}
		return mapToListResponse(items), nil
	})

	var res singleflight.Result
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res = <-ch:
	}
	if res.Err != nil {
		s.logger.Error("find leave requests failed", zap.String("tenant_id", tenantID), zap.Error(res.Err))
		return nil, res.Err
	}
	if res.Shared {
		s.logger.Debug("find leave requests shared result", zap.String("tenant_id", tenantID))
	}

	// Shared results must not alias between callers.
	items := res.Val.([]LeaveRequestResponse)
	out := make([]LeaveRequestResponse, len(items))
	copy(out, items)
	return out, nil
}

func (s *service) FindOne(ctx context.Context, tenantID, id string) (LeaveRequestResponse, error) {
	if _, err := uuid.Parse(tenantID); err != nil {
		return LeaveRequestResponse{}, leaveerrors.ErrInvalidTenantID
	}
	if _, err := uuid.Parse(id); err != nil {
		return LeaveRequestResponse{}, leaveerrors.ErrRequestNotFound
	}

	l, err := s.repo.FindByIDAndTenant(ctx, tenantID, id)
	if err != nil {
		return LeaveRequestResponse{}, err
	}
	return mapToResponse(*l), nil
}

func (s *service) GetBalances(ctx context.Context, tenantID, employeeID string) (LeaveBalanceResponse, error) {
	if _, err := uuid.Parse(tenantID); err != nil {
		return LeaveBalanceResponse{}, leaveerrors.ErrInvalidTenantID
	}
	if _, err := uuid.Parse(employeeID); err != nil {
		return LeaveBalanceResponse{}, leaveerrors.ErrInvalidEmployeeID
	}

	empl, err := s.employees.FindByIDAndTenant(ctx, tenantID, employeeID)
	if err != nil {
		return LeaveBalanceResponse{}, err
	}

	resp := LeaveBalanceResponse{EmployeeID: empl.ID.String()}
	for _, t := range leaveTypes {
		v, err := Balance(empl, t)
		if err != nil {
			return LeaveBalanceResponse{}, err
		}
		switch t {
		case LeaveTypeVacation:
			resp.Vacation = v
		case LeaveTypeSick:
			resp.Sick = v
		case LeaveTypePersonal:
			resp.Personal = v
		}
	}
	return resp, nil
}

func (s *service) enqueue(ctx context.Context, tx *sql.Tx, eventType string, l *LeaveRequest, actorID string) error {
	if s.outbox == nil {
		return nil
	}

	rid := contextutil.GetRequestID(ctx)
	payload, err := json.Marshal(events.LeaveRequestEvent{
		EventType:      eventType,
		RequestID:      rid,
		LeaveRequestID: l.ID.String(),
		RequestNumber:  l.RequestNumber,
		TenantID:       l.TenantID.String(),
		EmployeeID:     l.EmployeeID.String(),
		ActorID:        actorID,
		LeaveType:      l.Type.String(),
		StartDate:      l.StartDate.Format(dateLayout),
		EndDate:        l.EndDate.Format(dateLayout),
		DurationDays:   l.DurationDays,
		Status:         l.Status,
		OccurredAt:     s.now().UTC(),
	})
	if err != nil {
		return err
	}

	return s.outbox.WithTx(tx).Create(ctx, kafka.OutboxEvent{
		ID:            uuid.NewString(),
		RequestID:     rid,
		TenantID:      l.TenantID.String(),
		AggregateType: "leave_request",
		AggregateID:   l.ID.String(),
		EventType:     eventType,
		Topic:         events.LeaveLifecycleTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	})
}

func mapToResponse(l LeaveRequest) LeaveRequestResponse {
	resp := LeaveRequestResponse{
		ID:            l.ID.String(),
		TenantID:      l.TenantID.String(),
		EmployeeID:    l.EmployeeID.String(),
		RequestNumber: l.RequestNumber,
		Type:          l.Type.String(),
		StartDate:     l.StartDate.Format(dateLayout),
		EndDate:       l.EndDate.Format(dateLayout),
		DurationDays:  l.DurationDays,
		Reason:        l.Reason,
		RequestedDate: l.RequestedDate.UTC().Format(time.RFC3339),
		Status:        l.Status,
	}
	if l.DecidedBy != nil {
		v := l.DecidedBy.String()
		resp.DecidedBy = &v
	}
	if l.DecidedAt != nil {
		v := l.DecidedAt.UTC().Format(time.RFC3339)
		resp.DecidedAt = &v
	}
	return resp
}

func mapToListResponse(items []LeaveRequest) []LeaveRequestResponse {
	resp := make([]LeaveRequestResponse, len(items))
	for i, l := range items {
		resp[i] = mapToResponse(l)
	}
	return resp
}
