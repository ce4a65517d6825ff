package extrahour

import (
	"context"
	"log/slog"
	"time"

	"github.com/cloudnative-amadeus/extrahours/internal"
	"github.com/cloudnative-amadeus/extrahours/internal/auth"
	extrahourDatamodel "github.com/cloudnative-amadeus/extrahours/internal/core/datamodel/extrahour"
	"github.com/cloudnative-amadeus/extrahours/internal/core/events"
)

// Repository is the persistence boundary for requests. Transition must be
// atomic: the status flip and the approval row commit together or not at all.
type Repository interface {
	Create(ctx context.Context, row *extrahourDatamodel.ExtraHour) error
	GetByID(ctx context.Context, id int64) (*extrahourDatamodel.ExtraHour, error)
	List(ctx context.Context, filter ListFilter) ([]*extrahourDatamodel.ExtraHour, error)
	UpdatePending(ctx context.Context, row *extrahourDatamodel.ExtraHour) error
	DeletePending(ctx context.Context, id int64) error
	Transition(ctx context.Context, id int64, status string, approverID int64, note string) (*extrahourDatamodel.ExtraHour, error)
}

// TypeChecker answers whether an extra hour type exists. Backed by the
// hourtype repository.
type TypeChecker interface {
	Exists(ctx context.Context, id int64) (bool, error)
}

// EventPublisher fans lifecycle events out to audit subscribers. Publishing
// is fire-and-forget: a failed subscriber never fails the request.
type EventPublisher interface {
	Publish(ctx context.Context, event events.Event) error
}

// Service is the approval workflow engine: it owns every transition of a
// request and the guards in front of them.
type Service struct {
	repo         Repository
	types        TypeChecker
	bus          EventPublisher
	logger       *slog.Logger
	storeTimeout time.Duration
}

func NewService(repo Repository, types TypeChecker, bus EventPublisher, logger *slog.Logger) *Service {
	return &Service{
		repo:         repo,
		types:        types,
		bus:          bus,
		logger:       logger,
		storeTimeout: internal.DefaultStoreTimeout,
	}
}

func (s *Service) publish(ctx context.Context, event events.Event) {
	if s.bus == nil {
		return
	}
	if err := s.bus.Publish(ctx, event); err != nil {
		s.logger.Error("failed to publish event", "event_type", event.EventType(), "error", err)
	}
}

// Create submits a new request. The status is forced to pending regardless
// of anything the payload claims.
func (s *Service) Create(ctx context.Context, caller *auth.User, dto ExtraHourDTO) (*ExtraHour, error) {
	date, start, end, err := dto.Parse()
	if err != nil {
		s.logger.Warn("extra hour validation failed", "error", err, "user_id", caller.ID)
		return nil, err
	}

	ctx, cancel := internal.WithStoreTimeout(ctx, s.storeTimeout)
	defer cancel()

	ok, err := s.types.Exists(ctx, dto.ExtraHourTypeID)
	if err != nil {
		return nil, internal.WrapStoreError(err)
	}
	if !ok {
		return nil, internal.ErrUnknownType
	}

	now := time.Now()
	row := &extrahourDatamodel.ExtraHour{
		UserID:          caller.ID,
		Date:            date,
		StartTime:       start,
		EndTime:         end,
		ExtraHourTypeID: dto.ExtraHourTypeID,
		Reason:          dto.Reason,
		Status:          StatusPending,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := s.repo.Create(ctx, row); err != nil {
		s.logger.Error("failed to create extra hour request", "error", err, "user_id", caller.ID)
		return nil, internal.WrapStoreError(err)
	}

	s.logger.Info("extra hour request created",
		"extra_hour_id", row.ID,
		"user_id", caller.ID,
		"type_id", dto.ExtraHourTypeID)

	created := FromDataModel(row)
	s.publish(ctx, events.NewExtraHourFiledEvent(created.ID, created.UserID, created.Hours, created.ExtraHourTypeID))

	return created, nil
}

// GetByID returns a single request, restricted to the owner unless the
// caller may view all.
func (s *Service) GetByID(ctx context.Context, caller *auth.User, id int64) (*ExtraHour, error) {
	ctx, cancel := internal.WithStoreTimeout(ctx, s.storeTimeout)
	defer cancel()

	row, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, internal.WrapStoreError(err)
	}

	if !caller.IsAdmin() && row.UserID != caller.ID {
		s.logger.Warn("access to foreign extra hour denied", "extra_hour_id", id, "user_id", caller.ID)
		return nil, internal.ErrNotOwner
	}

	return FromDataModel(row), nil
}

// List returns requests visible to the caller: employees see their own,
// administrators see everything the filter matches.
func (s *Service) List(ctx context.Context, caller *auth.User, filter ListFilter) ([]*ExtraHour, error) {
	if !caller.IsAdmin() {
		filter.UserID = caller.ID
	}

	ctx, cancel := internal.WithStoreTimeout(ctx, s.storeTimeout)
	defer cancel()

	rows, err := s.repo.List(ctx, filter)
	if err != nil {
		s.logger.Error("failed to list extra hour requests", "error", err)
		return nil, internal.WrapStoreError(err)
	}

	return FromDataModelSlice(rows), nil
}

// Update edits a request. Guard: status == pending AND caller == owner.
func (s *Service) Update(ctx context.Context, caller *auth.User, id int64, dto ExtraHourDTO) (*ExtraHour, error) {
	date, start, end, err := dto.Parse()
	if err != nil {
		return nil, err
	}

	ctx, cancel := internal.WithStoreTimeout(ctx, s.storeTimeout)
	defer cancel()

	row, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, internal.WrapStoreError(err)
	}

	if err := s.guardMutation(caller, row); err != nil {
		return nil, err
	}

	ok, err := s.types.Exists(ctx, dto.ExtraHourTypeID)
	if err != nil {
		return nil, internal.WrapStoreError(err)
	}
	if !ok {
		return nil, internal.ErrUnknownType
	}

	row.Date = date
	row.StartTime = start
	row.EndTime = end
	row.ExtraHourTypeID = dto.ExtraHourTypeID
	row.Reason = dto.Reason
	row.UpdatedAt = time.Now()

	// UpdatePending re-checks the status inside the store so a transition
	// racing this edit cannot be overwritten.
	if err := s.repo.UpdatePending(ctx, row); err != nil {
		s.logger.Warn("extra hour update rejected", "error", err, "extra_hour_id", id, "user_id", caller.ID)
		return nil, internal.WrapStoreError(err)
	}

	s.logger.Info("extra hour request updated", "extra_hour_id", id, "user_id", caller.ID)
	return FromDataModel(row), nil
}

// Delete withdraws a request. Guard: status == pending AND caller == owner.
func (s *Service) Delete(ctx context.Context, caller *auth.User, id int64) error {
	ctx, cancel := internal.WithStoreTimeout(ctx, s.storeTimeout)
	defer cancel()

	row, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return internal.WrapStoreError(err)
	}

	if err := s.guardMutation(caller, row); err != nil {
		return err
	}

	if err := s.repo.DeletePending(ctx, id); err != nil {
		s.logger.Warn("extra hour delete rejected", "error", err, "extra_hour_id", id, "user_id", caller.ID)
		return internal.WrapStoreError(err)
	}

	s.logger.Info("extra hour request withdrawn", "extra_hour_id", id, "user_id", caller.ID)
	return nil
}

// Approve moves a pending request to approved and appends the decision record.
func (s *Service) Approve(ctx context.Context, caller *auth.User, id int64, note string) (*ExtraHour, error) {
	return s.decide(ctx, caller, id, StatusApproved, note)
}

// Reject moves a pending request to rejected and appends the decision record.
func (s *Service) Reject(ctx context.Context, caller *auth.User, id int64, note string) (*ExtraHour, error) {
	return s.decide(ctx, caller, id, StatusRejected, note)
}

func (s *Service) decide(ctx context.Context, caller *auth.User, id int64, status, note string) (*ExtraHour, error) {
	if !caller.IsAdmin() {
		s.logger.Warn("decision denied: insufficient role",
			"extra_hour_id", id,
			"user_id", caller.ID,
			"role", caller.Role)
		return nil, internal.ErrInsufficientRole
	}

	ctx, cancel := internal.WithStoreTimeout(ctx, s.storeTimeout)
	defer cancel()

	// The repository applies the transition as one atomic unit guarded by
	// the pending status; the loser of a concurrent race gets NotPending.
	row, err := s.repo.Transition(ctx, id, status, caller.ID, note)
	if err != nil {
		s.logger.Warn("transition rejected",
			"error", err,
			"extra_hour_id", id,
			"approver_id", caller.ID,
			"target_status", status)
		return nil, internal.WrapStoreError(err)
	}

	s.logger.Info("extra hour request decided",
		"extra_hour_id", id,
		"approver_id", caller.ID,
		"status", status)

	decided := FromDataModel(row)
	s.publish(ctx, events.NewExtraHourDecidedEvent(decided.ID, decided.UserID, caller.ID, status, decided.Hours, note))

	return decided, nil
}

func (s *Service) guardMutation(caller *auth.User, row *extrahourDatamodel.ExtraHour) error {
	if !caller.IsAdmin() && row.UserID != caller.ID {
		return internal.ErrNotOwner
	}
	if row.Status != StatusPending {
		return internal.ErrNotPending
	}
	return nil
}
