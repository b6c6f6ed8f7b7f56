package assistant

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"fridgeagent/internal/domain/models"
	"fridgeagent/internal/service/inventory"
	"fridgeagent/pkg/clients/anthropic"
)

// ErrDisabled indicates no AI provider is configured.
var ErrDisabled = errors.New("ai assistant is not configured")

// Pantry defines the inventory operations required by the assistant.
type Pantry interface {
	List(ctx context.Context) ([]models.Item, error)
	Add(ctx context.Context, draft models.ItemDraft) (models.Item, error)
	ConsumeByName(ctx context.Context, name string, amount float64) (models.ConsumeOutcome, error)
}

// ScanResult summarizes a bulk import from an AI-parsed photo.
type ScanResult struct {
	Imported []models.Item `json:"imported"`
	Skipped  int           `json:"skipped"`
}

// Service orchestrates AI conversations, photo cataloguing and recipe
// suggestions around the inventory.
type Service struct {
	pantry   Pantry
	ai       anthropic.Client
	sessions *SessionManager
	logger   *zap.Logger
}

// NewService wires a new assistant service. ai may be nil; every operation
// then fails with ErrDisabled.
func NewService(pantry Pantry, ai anthropic.Client, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		pantry:   pantry,
		ai:       ai,
		sessions: NewSessionManager(),
		logger:   logger,
	}
}

// Chat runs one assistant turn for a session. When the reply carries a
// consume directive it is forwarded to the inventory as a soft operation; a
// directive that matches nothing leaves the reply intact.
func (s *Service) Chat(ctx context.Context, sessionID, message string) (models.AssistantReply, error) {
	if s.ai == nil {
		return models.AssistantReply{}, ErrDisabled
	}

	items, err := s.pantry.List(ctx)
	if err != nil {
		return models.AssistantReply{}, err
	}

	result, err := s.ai.Chat(ctx, s.sessions.History(sessionID), message, models.InventorySnapshot(items))
	if err != nil {
		return models.AssistantReply{}, err
	}

	reply := models.AssistantReply{Reply: result.Reply}

	if result.Consume != nil {
		outcome, err := s.pantry.ConsumeByName(ctx, result.Consume.Item, result.Consume.Quantity)
		if err != nil {
			// The chat reply is still worth returning; only the side effect failed.
			s.logger.Error("consume directive failed",
				zap.String("item", result.Consume.Item),
				zap.Error(err))
		} else {
			reply.Consumed = &outcome
		}
	}

	s.sessions.AppendTurn(sessionID, message, result.Reply)
	return reply, nil
}

// ImportScan parses a fridge photo into item drafts and adds them to the
// inventory. Drafts the store rejects are skipped and counted; the AI output
// is untrusted so a partially usable scan still imports what it can.
func (s *Service) ImportScan(ctx context.Context, imageBase64, mimeType string) (ScanResult, error) {
	if s.ai == nil {
		return ScanResult{}, ErrDisabled
	}

	drafts, err := s.ai.ParseImage(ctx, imageBase64, mimeType)
	if err != nil {
		return ScanResult{}, err
	}

	result := ScanResult{Imported: []models.Item{}}
	for _, draft := range drafts {
		item, err := s.pantry.Add(ctx, draft)
		if errors.Is(err, inventory.ErrValidation) {
			s.logger.Debug("skipping unusable scan entry", zap.String("name", draft.Name), zap.Error(err))
			result.Skipped++
			continue
		}
		if err != nil {
			return result, err
		}
		result.Imported = append(result.Imported, item)
	}

	s.logger.Info("fridge scan imported",
		zap.Int("imported", len(result.Imported)),
		zap.Int("skipped", result.Skipped))

	return result, nil
}

// Recipes asks the AI for recipe ideas based on the current pantry.
func (s *Service) Recipes(ctx context.Context) ([]models.Recipe, error) {
	if s.ai == nil {
		return nil, ErrDisabled
	}

	items, err := s.pantry.List(ctx)
	if err != nil {
		return nil, err
	}

	return s.ai.SuggestRecipes(ctx, models.InventorySnapshot(items))
}
