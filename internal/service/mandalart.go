package service

import (
	"context"
	"strings"

	"github.com/dlwnsgus777/my-mandalateu/internal/model"
)

// MandalartRepository defines the interface for mandalart storage
type MandalartRepository interface {
	CreateGrid(ctx context.Context, mandalart *model.Mandalart, coreGoal string) error
	GetByID(ctx context.Context, id string) (*model.Mandalart, error)
	ListByUser(ctx context.Context, userID string) ([]*model.Mandalart, error)
	UpdateTitle(ctx context.Context, id, title string) error
	Delete(ctx context.Context, id string) error
}

// StrategyRepository defines the interface for strategy storage
type StrategyRepository interface {
	GetByID(ctx context.Context, id string) (*model.Strategy, error)
	ListByMandalart(ctx context.Context, mandalartID string) ([]*model.Strategy, error)
	Update(ctx context.Context, strategy *model.Strategy) error
}

// ActionItemRepository defines the interface for action item storage
type ActionItemRepository interface {
	GetByID(ctx context.Context, id string) (*model.ActionItem, error)
	ListByStrategy(ctx context.Context, strategyID string) ([]*model.ActionItem, error)
	ListByMandalart(ctx context.Context, mandalartID string) ([]*model.ActionItem, error)
	Update(ctx context.Context, item *model.ActionItem) error
}

// MandalartService handles mandalart grid operations
type MandalartService struct {
	mandalartRepo MandalartRepository
	strategyRepo  StrategyRepository
	itemRepo      ActionItemRepository
}

// MandalartServiceConfig holds configuration for the mandalart service
type MandalartServiceConfig struct {
	MandalartRepo MandalartRepository
	StrategyRepo  StrategyRepository
	ItemRepo      ActionItemRepository
}

// NewMandalartService creates a new mandalart service
func NewMandalartService(cfg MandalartServiceConfig) *MandalartService {
	return &MandalartService{
		mandalartRepo: cfg.MandalartRepo,
		strategyRepo:  cfg.StrategyRepo,
		itemRepo:      cfg.ItemRepo,
	}
}

// CreateMandalart creates a mandalart with its full 9x9 grid:
// 9 strategies and 81 action items, all in a single transaction.
// The center strategy carries the core goal, and each strategy's
// center action item mirrors the strategy title.
func (s *MandalartService) CreateMandalart(ctx context.Context, userID string, req model.CreateMandalartRequest) (*model.MandalartDetail, error) {
	mandalart := &model.Mandalart{
		UserID: userID,
		Title:  strings.TrimSpace(req.Title),
	}

	coreGoal := strings.TrimSpace(req.CoreGoal)
	if err := s.mandalartRepo.CreateGrid(ctx, mandalart, coreGoal); err != nil {
		return nil, err
	}

	return s.GetDetail(ctx, userID, mandalart.ID)
}

// List returns summaries of all mandalarts owned by the user, newest first
func (s *MandalartService) List(ctx context.Context, userID string) ([]*model.MandalartSummary, error) {
	mandalarts, err := s.mandalartRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	summaries := make([]*model.MandalartSummary, 0, len(mandalarts))
	for _, m := range mandalarts {
		summaries = append(summaries, m.ToSummary())
	}
	return summaries, nil
}

// GetDetail returns a mandalart with its strategies and their action items
func (s *MandalartService) GetDetail(ctx context.Context, userID, mandalartID string) (*model.MandalartDetail, error) {
	mandalart, err := s.getOwnedMandalart(ctx, userID, mandalartID)
	if err != nil {
		return nil, err
	}

	strategies, err := s.strategyRepo.ListByMandalart(ctx, mandalartID)
	if err != nil {
		return nil, err
	}

	items, err := s.itemRepo.ListByMandalart(ctx, mandalartID)
	if err != nil {
		return nil, err
	}

	itemsByStrategy := make(map[string][]*model.ActionItem, len(strategies))
	for _, item := range items {
		itemsByStrategy[item.StrategyID] = append(itemsByStrategy[item.StrategyID], item)
	}

	detail := &model.MandalartDetail{
		Mandalart:  mandalart,
		Strategies: make([]*model.StrategyWithItems, 0, len(strategies)),
	}
	for _, strategy := range strategies {
		detail.Strategies = append(detail.Strategies, &model.StrategyWithItems{
			Strategy:    strategy,
			ActionItems: itemsByStrategy[strategy.ID],
		})
	}

	return detail, nil
}

// UpdateTitle renames a mandalart
func (s *MandalartService) UpdateTitle(ctx context.Context, userID, mandalartID string, req model.UpdateMandalartRequest) (*model.Mandalart, error) {
	mandalart, err := s.getOwnedMandalart(ctx, userID, mandalartID)
	if err != nil {
		return nil, err
	}

	// An empty patch is a no-op
	if req.Title == nil {
		return mandalart, nil
	}

	title := strings.TrimSpace(*req.Title)
	if err := s.mandalartRepo.UpdateTitle(ctx, mandalartID, title); err != nil {
		return nil, err
	}

	mandalart.Title = title
	return mandalart, nil
}

// Delete removes a mandalart and its entire grid
func (s *MandalartService) Delete(ctx context.Context, userID, mandalartID string) error {
	if _, err := s.getOwnedMandalart(ctx, userID, mandalartID); err != nil {
		return err
	}
	return s.mandalartRepo.Delete(ctx, mandalartID)
}

// getOwnedMandalart fetches a mandalart and enforces ownership.
// Missing mandalarts return ErrMandalartNotFound, foreign ones ErrForbidden.
func (s *MandalartService) getOwnedMandalart(ctx context.Context, userID, mandalartID string) (*model.Mandalart, error) {
	mandalart, err := s.mandalartRepo.GetByID(ctx, mandalartID)
	if err != nil {
		return nil, err
	}
	if mandalart == nil {
		return nil, ErrMandalartNotFound
	}
	if mandalart.UserID != userID {
		return nil, ErrForbidden
	}
	return mandalart, nil
}
