package approval

import (
	"context"
	"log/slog"
	"time"

	"github.com/cloudnative-amadeus/extrahours/internal"
	approvalDatamodel "github.com/cloudnative-amadeus/extrahours/internal/core/datamodel/approval"
)

type Repository interface {
	GetByID(ctx context.Context, id int64) (*approvalDatamodel.Approval, error)
	GetAll(ctx context.Context) ([]*approvalDatamodel.Approval, error)
	GetByExtraHour(ctx context.Context, extraHourID int64) ([]*approvalDatamodel.Approval, error)
	GetByUser(ctx context.Context, userID int64) ([]*approvalDatamodel.Approval, error)
}

// Service exposes read access to the decision log. Writes happen only inside
// the workflow engine's transaction.
type Service struct {
	repo         Repository
	logger       *slog.Logger
	storeTimeout time.Duration
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:         repo,
		logger:       logger,
		storeTimeout: internal.DefaultStoreTimeout,
	}
}

func (s *Service) GetByID(ctx context.Context, id int64) (*ApprovalRecord, error) {
	ctx, cancel := internal.WithStoreTimeout(ctx, s.storeTimeout)
	defer cancel()

	row, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, internal.WrapStoreError(err)
	}
	return FromDataModel(row), nil
}

func (s *Service) GetAll(ctx context.Context) ([]*ApprovalRecord, error) {
	ctx, cancel := internal.WithStoreTimeout(ctx, s.storeTimeout)
	defer cancel()

	rows, err := s.repo.GetAll(ctx)
	if err != nil {
		s.logger.Error("failed to list approvals", "error", err)
		return nil, internal.WrapStoreError(err)
	}
	return FromDataModelSlice(rows), nil
}

func (s *Service) GetByExtraHour(ctx context.Context, extraHourID int64) ([]*ApprovalRecord, error) {
	ctx, cancel := internal.WithStoreTimeout(ctx, s.storeTimeout)
	defer cancel()

	rows, err := s.repo.GetByExtraHour(ctx, extraHourID)
	if err != nil {
		s.logger.Error("failed to list approvals for request", "error", err, "extra_hour_id", extraHourID)
		return nil, internal.WrapStoreError(err)
	}
	return FromDataModelSlice(rows), nil
}

func (s *Service) GetByUser(ctx context.Context, userID int64) ([]*ApprovalRecord, error) {
	ctx, cancel := internal.WithStoreTimeout(ctx, s.storeTimeout)
	defer cancel()

	rows, err := s.repo.GetByUser(ctx, userID)
	if err != nil {
		s.logger.Error("failed to list approvals by approver", "error", err, "user_id", userID)
		return nil, internal.WrapStoreError(err)
	}
	return FromDataModelSlice(rows), nil
}
