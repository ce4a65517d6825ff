package hourtype

import (
	"context"
	"log/slog"
	"time"

	"github.com/cloudnative-amadeus/extrahours/internal"
	hourtypeDatamodel "github.com/cloudnative-amadeus/extrahours/internal/core/datamodel/hourtype"
)

type Repository interface {
	Create(ctx context.Context, row *hourtypeDatamodel.ExtraHourType) error
	GetByID(ctx context.Context, id int64) (*hourtypeDatamodel.ExtraHourType, error)
	GetByName(ctx context.Context, name string) (*hourtypeDatamodel.ExtraHourType, error)
	GetAll(ctx context.Context) ([]*hourtypeDatamodel.ExtraHourType, error)
	Update(ctx context.Context, row *hourtypeDatamodel.ExtraHourType) error
	Delete(ctx context.Context, id int64) error
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

// Exists satisfies the workflow engine's type check.
func (s *Service) Exists(ctx context.Context, id int64) (bool, error) {
	_, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if err == internal.ErrTypeNotFound {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (s *Service) Create(ctx context.Context, dto ExtraHourTypeDTO) (*ExtraHourType, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	ctx, cancel := internal.WithStoreTimeout(ctx, s.storeTimeout)
	defer cancel()

	existing, err := s.repo.GetByName(ctx, dto.Name)
	if err != nil && err != internal.ErrTypeNotFound {
		return nil, internal.WrapStoreError(err)
	}
	if existing != nil {
		s.logger.Warn("duplicate extra hour type rejected", "name", dto.Name)
		return nil, internal.ErrDuplicateType
	}

	row := &hourtypeDatamodel.ExtraHourType{
		Name:      dto.Name,
		CreatedAt: time.Now(),
	}
	if err := s.repo.Create(ctx, row); err != nil {
		s.logger.Error("failed to create extra hour type", "error", err, "name", dto.Name)
		return nil, internal.WrapStoreError(err)
	}

	s.logger.Info("extra hour type created", "type_id", row.ID, "name", row.Name)
	return FromDataModel(row), nil
}

func (s *Service) GetByID(ctx context.Context, id int64) (*ExtraHourType, error) {
	ctx, cancel := internal.WithStoreTimeout(ctx, s.storeTimeout)
	defer cancel()

	row, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, internal.WrapStoreError(err)
	}
	return FromDataModel(row), nil
}

func (s *Service) GetAll(ctx context.Context) ([]*ExtraHourType, error) {
	ctx, cancel := internal.WithStoreTimeout(ctx, s.storeTimeout)
	defer cancel()

	rows, err := s.repo.GetAll(ctx)
	if err != nil {
		s.logger.Error("failed to list extra hour types", "error", err)
		return nil, internal.WrapStoreError(err)
	}
	return FromDataModelSlice(rows), nil
}

func (s *Service) Update(ctx context.Context, id int64, dto ExtraHourTypeDTO) (*ExtraHourType, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	ctx, cancel := internal.WithStoreTimeout(ctx, s.storeTimeout)
	defer cancel()

	row, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, internal.WrapStoreError(err)
	}

	existing, err := s.repo.GetByName(ctx, dto.Name)
	if err != nil && err != internal.ErrTypeNotFound {
		return nil, internal.WrapStoreError(err)
	}
	if existing != nil && existing.ID != id {
		return nil, internal.ErrDuplicateType
	}

	row.Name = dto.Name
	if err := s.repo.Update(ctx, row); err != nil {
		s.logger.Error("failed to update extra hour type", "error", err, "type_id", id)
		return nil, internal.WrapStoreError(err)
	}

	s.logger.Info("extra hour type updated", "type_id", id, "name", row.Name)
	return FromDataModel(row), nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	ctx, cancel := internal.WithStoreTimeout(ctx, s.storeTimeout)
	defer cancel()

	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return internal.WrapStoreError(err)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		s.logger.Error("failed to delete extra hour type", "error", err, "type_id", id)
		return internal.WrapStoreError(err)
	}

	s.logger.Info("extra hour type deleted", "type_id", id)
	return nil
}
