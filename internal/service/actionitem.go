package service

import (
	"context"
	"strings"
	"time"

	"github.com/dlwnsgus777/my-mandalateu/internal/model"
)

const deadlineLayout = "2006-01-02"

// ActionItemService handles action item operations
type ActionItemService struct {
	itemRepo      ActionItemRepository
	strategyRepo  StrategyRepository
	mandalartRepo MandalartRepository
	now           func() time.Time
}

// ActionItemServiceConfig holds configuration for the action item service
type ActionItemServiceConfig struct {
	ItemRepo      ActionItemRepository
	StrategyRepo  StrategyRepository
	MandalartRepo MandalartRepository
	Now           func() time.Time // Defaults to time.Now
}

// NewActionItemService creates a new action item service
func NewActionItemService(cfg ActionItemServiceConfig) *ActionItemService {
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &ActionItemService{
		itemRepo:      cfg.ItemRepo,
		strategyRepo:  cfg.StrategyRepo,
		mandalartRepo: cfg.MandalartRepo,
		now:           cfg.Now,
	}
}

// UpdateActionItem updates an action item's fields. Only fields present in
// the request are changed. Completing an item stamps completed_at, and
// un-completing it clears the stamp. The item must belong to the given
// strategy, and the strategy to the given mandalart.
func (s *ActionItemService) UpdateActionItem(ctx context.Context, userID, mandalartID, strategyID, itemID string, req model.UpdateActionItemRequest) (*model.ActionItem, error) {
	item, err := s.getOwnedItem(ctx, userID, mandalartID, strategyID, itemID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		item.Title = strings.TrimSpace(*req.Title)
	}
	if req.Description != nil {
		item.Description = req.Description
	}
	if req.Deadline != nil {
		if *req.Deadline == "" {
			item.Deadline = nil
		} else {
			if _, err := time.Parse(deadlineLayout, *req.Deadline); err != nil {
				return nil, ErrInvalidDeadlineFormat
			}
			item.Deadline = req.Deadline
		}
	}
	if req.Priority != nil {
		if *req.Priority == "" {
			item.Priority = nil
		} else {
			priority := model.Priority(*req.Priority)
			if !priority.IsValid() {
				return nil, ErrInvalidPriority
			}
			item.Priority = &priority
		}
	}
	if req.Completed != nil {
		switch {
		case *req.Completed && !item.Completed:
			// Keep the clock's own zone so dashboard date bucketing sees
			// the same calendar day the completion happened on
			completedAt := s.now()
			item.Completed = true
			item.CompletedAt = &completedAt
		case !*req.Completed:
			item.Completed = false
			item.CompletedAt = nil
		}
	}

	if err := s.itemRepo.Update(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// getOwnedItem fetches an action item, verifies it sits under the given
// strategy and mandalart, and enforces ownership
func (s *ActionItemService) getOwnedItem(ctx context.Context, userID, mandalartID, strategyID, itemID string) (*model.ActionItem, error) {
	item, err := s.itemRepo.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if item == nil || item.StrategyID != strategyID {
		return nil, ErrActionItemNotFound
	}

	strategy, err := s.strategyRepo.GetByID(ctx, item.StrategyID)
	if err != nil {
		return nil, err
	}
	if strategy == nil || strategy.MandalartID != mandalartID {
		return nil, ErrActionItemNotFound
	}

	mandalart, err := s.mandalartRepo.GetByID(ctx, strategy.MandalartID)
	if err != nil {
		return nil, err
	}
	if mandalart == nil {
		return nil, ErrActionItemNotFound
	}
	if mandalart.UserID != userID {
		return nil, ErrForbidden
	}
	return item, nil
}
