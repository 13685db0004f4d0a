package service

import (
	"context"
	"strings"

	"github.com/dlwnsgus777/my-mandalateu/internal/model"
)

// StrategyService handles strategy cell operations
type StrategyService struct {
	strategyRepo  StrategyRepository
	mandalartRepo MandalartRepository
}

// NewStrategyService creates a new strategy service
func NewStrategyService(strategyRepo StrategyRepository, mandalartRepo MandalartRepository) *StrategyService {
	return &StrategyService{
		strategyRepo:  strategyRepo,
		mandalartRepo: mandalartRepo,
	}
}

// UpdateStrategy updates a strategy's title, color, or notes.
// Only fields present in the request are changed. The strategy must belong
// to the given mandalart.
func (s *StrategyService) UpdateStrategy(ctx context.Context, userID, mandalartID, strategyID string, req model.UpdateStrategyRequest) (*model.Strategy, error) {
	strategy, err := s.getOwnedStrategy(ctx, userID, strategyID)
	if err != nil {
		return nil, err
	}
	if strategy.MandalartID != mandalartID {
		return nil, ErrStrategyNotFound
	}

	if req.Title != nil {
		strategy.Title = strings.TrimSpace(*req.Title)
	}
	if req.Color != nil {
		strategy.Color = req.Color
	}
	if req.Notes != nil {
		strategy.Notes = req.Notes
	}

	if err := s.strategyRepo.Update(ctx, strategy); err != nil {
		return nil, err
	}
	return strategy, nil
}

// getOwnedStrategy fetches a strategy and enforces ownership of its mandalart
func (s *StrategyService) getOwnedStrategy(ctx context.Context, userID, strategyID string) (*model.Strategy, error) {
	strategy, err := s.strategyRepo.GetByID(ctx, strategyID)
	if err != nil {
		return nil, err
	}
	if strategy == nil {
		return nil, ErrStrategyNotFound
	}

	mandalart, err := s.mandalartRepo.GetByID(ctx, strategy.MandalartID)
	if err != nil {
		return nil, err
	}
	if mandalart == nil {
		return nil, ErrStrategyNotFound
	}
	if mandalart.UserID != userID {
		return nil, ErrForbidden
	}
	return strategy, nil
}
