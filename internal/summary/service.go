package summary

import (
	"context"
	"log/slog"
	"time"

	"github.com/cloudnative-amadeus/extrahours/internal"
	"github.com/cloudnative-amadeus/extrahours/internal/auth"
	extrahourDatamodel "github.com/cloudnative-amadeus/extrahours/internal/core/datamodel/extrahour"
	"github.com/cloudnative-amadeus/extrahours/internal/extrahour"
)

// RequestSource reads the full request set the summary is computed over.
type RequestSource interface {
	List(ctx context.Context, filter extrahour.ListFilter) ([]*extrahourDatamodel.ExtraHour, error)
}

// Service recomputes the aggregate per read; nothing is cached or stored.
type Service struct {
	source       RequestSource
	logger       *slog.Logger
	storeTimeout time.Duration
}

func NewService(source RequestSource, logger *slog.Logger) *Service {
	return &Service{
		source:       source,
		logger:       logger,
		storeTimeout: internal.DefaultStoreTimeout,
	}
}

// Report aggregates every request in the store. Administrators only.
func (s *Service) Report(ctx context.Context, caller *auth.User) (Summary, error) {
	if !caller.IsAdmin() {
		s.logger.Warn("summary denied: insufficient role", "user_id", caller.ID, "role", caller.Role)
		return Summary{}, internal.ErrInsufficientRole
	}

	ctx, cancel := internal.WithStoreTimeout(ctx, s.storeTimeout)
	defer cancel()

	rows, err := s.source.List(ctx, extrahour.ListFilter{})
	if err != nil {
		s.logger.Error("failed to load requests for summary", "error", err)
		return Summary{}, internal.WrapStoreError(err)
	}

	return Aggregate(extrahour.FromDataModelSlice(rows)), nil
}
