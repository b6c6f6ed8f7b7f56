package alerts

import (
	"context"
	"time"

	"go.uber.org/zap"

	"fridgeagent/internal/config"
	"fridgeagent/internal/domain/models"
	"fridgeagent/internal/repository"
)

// Enricher adds AI-written text and suggestions to an alert. Its output is
// untrusted and its failures never break classification.
type Enricher interface {
	EnrichAlert(ctx context.Context, alert models.Alert, inventory string) (models.AlertEnrichment, error)
}

// Service derives time-sensitive alerts from the current inventory snapshot.
type Service struct {
	repo               repository.Repository
	enricher           Enricher
	logger             *zap.Logger
	now                func() time.Time
	expiringWindowDays int
	lowStockThreshold  float64
}

// NewService wires a new alerts service instance. enricher may be nil when no
// AI provider is configured.
func NewService(repo repository.Repository, enricher Enricher, cfg config.AlertsConfig, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		repo:               repo,
		enricher:           enricher,
		logger:             logger,
		now:                time.Now,
		expiringWindowDays: cfg.ExpiringWindowDays,
		lowStockThreshold:  cfg.LowStockThreshold,
	}
}

// Snapshot loads the inventory, classifies it as of now and optionally runs
// best-effort AI enrichment over the resulting alerts.
func (s *Service) Snapshot(ctx context.Context, enrich bool) ([]models.Alert, error) {
	items, err := s.repo.ListItems(ctx)
	if err != nil {
		return nil, err
	}

	found := s.Classify(items, s.now())
	if !enrich || s.enricher == nil || len(found) == 0 {
		return found, nil
	}

	snapshot := models.InventorySnapshot(items)
	for i := range found {
		enrichCtx, cancel := context.WithTimeout(ctx, 8*time.Second)
		enrichment, err := s.enricher.EnrichAlert(enrichCtx, found[i], snapshot)
		cancel()
		if err != nil {
			s.logger.Debug("alert enrichment failed", zap.String("alert", found[i].ID), zap.Error(err))
			continue
		}
		if enrichment.Message != "" {
			found[i].Message = enrichment.Message
		}
		found[i].Suggestions = enrichment.Suggestions
	}

	return found, nil
}

// Digest classifies the snapshot and aggregates per-category counts for the
// scheduled daily scan.
func (s *Service) Digest(ctx context.Context) (models.AlertDigest, error) {
	items, err := s.repo.ListItems(ctx)
	if err != nil {
		return models.AlertDigest{}, err
	}

	now := s.now().UTC()
	digest := models.AlertDigest{
		Date:       midnightUTC(now),
		TotalItems: len(items),
		CreatedAt:  now,
	}

	for _, alert := range s.Classify(items, now) {
		switch alert.Category {
		case models.AlertExpiring:
			digest.ExpiringCount++
		case models.AlertExpired:
			digest.ExpiredCount++
		case models.AlertLowStock:
			digest.LowStockCount++
		}
	}

	return digest, nil
}

// RunDigest computes today's digest and persists it.
func (s *Service) RunDigest(ctx context.Context) (models.AlertDigest, error) {
	digest, err := s.Digest(ctx)
	if err != nil {
		return models.AlertDigest{}, err
	}
	if err := s.repo.SaveAlertDigest(ctx, digest); err != nil {
		return models.AlertDigest{}, err
	}
	return digest, nil
}

