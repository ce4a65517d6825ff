package department

import (
	"context"
	"log/slog"
	"time"

	"github.com/cloudnative-amadeus/extrahours/internal"
	departmentDatamodel "github.com/cloudnative-amadeus/extrahours/internal/core/datamodel/department"
)

type Repository interface {
	GetByID(ctx context.Context, id int64) (*departmentDatamodel.Department, error)
	GetAll(ctx context.Context) ([]*departmentDatamodel.Department, error)
}

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

func (s *Service) GetByID(ctx context.Context, id int64) (*Department, error) {
	ctx, cancel := internal.WithStoreTimeout(ctx, s.storeTimeout)
	defer cancel()

	row, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, internal.WrapStoreError(err)
	}
	return FromDataModel(row), nil
}

func (s *Service) GetAll(ctx context.Context) ([]*Department, error) {
	ctx, cancel := internal.WithStoreTimeout(ctx, s.storeTimeout)
	defer cancel()

	rows, err := s.repo.GetAll(ctx)
	if err != nil {
		s.logger.Error("failed to list departments", "error", err)
		return nil, internal.WrapStoreError(err)
	}
	return FromDataModelSlice(rows), nil
}
