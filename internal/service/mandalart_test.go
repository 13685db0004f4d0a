package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/dlwnsgus777/my-mandalateu/internal/model"
)

// ============================================================================
// Mock Repositories
// ============================================================================

type mockMandalartRepo struct {
	createGridFunc func(ctx context.Context, m *model.Mandalart, coreGoal string) error
	getByIDFunc    func(ctx context.Context, id string) (*model.Mandalart, error)
	listByUserFunc func(ctx context.Context, userID string) ([]*model.Mandalart, error)
	updateTitle    func(ctx context.Context, id, title string) error
	deleteFunc     func(ctx context.Context, id string) error
}

func (m *mockMandalartRepo) CreateGrid(ctx context.Context, mandalart *model.Mandalart, coreGoal string) error {
	if m.createGridFunc != nil {
		return m.createGridFunc(ctx, mandalart, coreGoal)
	}
	return nil
}

func (m *mockMandalartRepo) GetByID(ctx context.Context, id string) (*model.Mandalart, error) {
	if m.getByIDFunc != nil {
		return m.getByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockMandalartRepo) ListByUser(ctx context.Context, userID string) ([]*model.Mandalart, error) {
	if m.listByUserFunc != nil {
		return m.listByUserFunc(ctx, userID)
	}
	return nil, nil
}

func (m *mockMandalartRepo) UpdateTitle(ctx context.Context, id, title string) error {
	if m.updateTitle != nil {
		return m.updateTitle(ctx, id, title)
	}
	return nil
}

func (m *mockMandalartRepo) Delete(ctx context.Context, id string) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, id)
	}
	return nil
}

type mockStrategyRepo struct {
	getByIDFunc         func(ctx context.Context, id string) (*model.Strategy, error)
	listByMandalartFunc func(ctx context.Context, mandalartID string) ([]*model.Strategy, error)
	updateFunc          func(ctx context.Context, strategy *model.Strategy) error
}

func (m *mockStrategyRepo) GetByID(ctx context.Context, id string) (*model.Strategy, error) {
	if m.getByIDFunc != nil {
		return m.getByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockStrategyRepo) ListByMandalart(ctx context.Context, mandalartID string) ([]*model.Strategy, error) {
	if m.listByMandalartFunc != nil {
		return m.listByMandalartFunc(ctx, mandalartID)
	}
	return nil, nil
}

func (m *mockStrategyRepo) Update(ctx context.Context, strategy *model.Strategy) error {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, strategy)
	}
	return nil
}

type mockItemRepo struct {
	getByIDFunc         func(ctx context.Context, id string) (*model.ActionItem, error)
	listByStrategyFunc  func(ctx context.Context, strategyID string) ([]*model.ActionItem, error)
	listByMandalartFunc func(ctx context.Context, mandalartID string) ([]*model.ActionItem, error)
	updateFunc          func(ctx context.Context, item *model.ActionItem) error
}

func (m *mockItemRepo) GetByID(ctx context.Context, id string) (*model.ActionItem, error) {
	if m.getByIDFunc != nil {
		return m.getByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockItemRepo) ListByStrategy(ctx context.Context, strategyID string) ([]*model.ActionItem, error) {
	if m.listByStrategyFunc != nil {
		return m.listByStrategyFunc(ctx, strategyID)
	}
	return nil, nil
}

func (m *mockItemRepo) ListByMandalart(ctx context.Context, mandalartID string) ([]*model.ActionItem, error) {
	if m.listByMandalartFunc != nil {
		return m.listByMandalartFunc(ctx, mandalartID)
	}
	return nil, nil
}

func (m *mockItemRepo) Update(ctx context.Context, item *model.ActionItem) error {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, item)
	}
	return nil
}

// ============================================================================
// Test Fixtures
// ============================================================================

// testGrid builds a full 9-strategy, 81-item grid for a mandalart
func testGrid(mandalartID string) ([]*model.Strategy, []*model.ActionItem) {
	strategies := make([]*model.Strategy, 0, model.GridSize)
	items := make([]*model.ActionItem, 0, model.GridSize*model.GridSize)

	for pos := 0; pos < model.GridSize; pos++ {
		strategy := &model.Strategy{
			ID:          fmt.Sprintf("strategy:%d", pos),
			MandalartID: mandalartID,
			Position:    pos,
		}
		if pos == model.CenterPosition {
			strategy.Title = "core goal"
		}
		strategies = append(strategies, strategy)

		for itemPos := 0; itemPos < model.GridSize; itemPos++ {
			items = append(items, &model.ActionItem{
				ID:         fmt.Sprintf("action_item:%d-%d", pos, itemPos),
				StrategyID: strategy.ID,
				Position:   itemPos,
				IsCenter:   itemPos == model.CenterPosition,
			})
		}
	}

	return strategies, items
}

func ownedMandalart(id, userID string) *model.Mandalart {
	return &model.Mandalart{ID: id, UserID: userID, Title: "my plan"}
}

// ============================================================================
// CreateMandalart Tests
// ============================================================================

func TestMandalartService_CreateMandalart_ReturnsFullGrid(t *testing.T) {
	ctx := context.Background()

	strategies, items := testGrid("mandalart:1")
	var gotCoreGoal string

	svc := NewMandalartService(MandalartServiceConfig{
		MandalartRepo: &mockMandalartRepo{
			createGridFunc: func(ctx context.Context, m *model.Mandalart, coreGoal string) error {
				gotCoreGoal = coreGoal
				m.ID = "mandalart:1"
				return nil
			},
			getByIDFunc: func(ctx context.Context, id string) (*model.Mandalart, error) {
				return ownedMandalart("mandalart:1", "user:1"), nil
			},
		},
		StrategyRepo: &mockStrategyRepo{
			listByMandalartFunc: func(ctx context.Context, mandalartID string) ([]*model.Strategy, error) {
				return strategies, nil
			},
		},
		ItemRepo: &mockItemRepo{
			listByMandalartFunc: func(ctx context.Context, mandalartID string) ([]*model.ActionItem, error) {
				return items, nil
			},
		},
	})

	detail, err := svc.CreateMandalart(ctx, "user:1", model.CreateMandalartRequest{
		Title:    "  2026 plan  ",
		CoreGoal: " become a regular ",
	})
	if err != nil {
		t.Fatalf("CreateMandalart failed: %v", err)
	}

	if gotCoreGoal != "become a regular" {
		t.Errorf("expected trimmed core goal, got %q", gotCoreGoal)
	}
	if len(detail.Strategies) != model.GridSize {
		t.Fatalf("expected %d strategies, got %d", model.GridSize, len(detail.Strategies))
	}
	total := 0
	for _, s := range detail.Strategies {
		if len(s.ActionItems) != model.GridSize {
			t.Errorf("strategy %s has %d items, want %d", s.Strategy.ID, len(s.ActionItems), model.GridSize)
		}
		total += len(s.ActionItems)
	}
	if total != model.GridSize*model.GridSize {
		t.Errorf("expected %d action items, got %d", model.GridSize*model.GridSize, total)
	}
}

func TestMandalartService_CreateMandalart_RepoError(t *testing.T) {
	ctx := context.Background()

	svc := NewMandalartService(MandalartServiceConfig{
		MandalartRepo: &mockMandalartRepo{
			createGridFunc: func(ctx context.Context, m *model.Mandalart, coreGoal string) error {
				return errors.New("database error")
			},
		},
		StrategyRepo: &mockStrategyRepo{},
		ItemRepo:     &mockItemRepo{},
	})

	_, err := svc.CreateMandalart(ctx, "user:1", model.CreateMandalartRequest{
		Title:    "plan",
		CoreGoal: "goal",
	})
	if err == nil {
		t.Fatal("expected error")
	}
}

// ============================================================================
// GetDetail Tests
// ============================================================================

func TestMandalartService_GetDetail_GroupsItemsByStrategy(t *testing.T) {
	ctx := context.Background()

	strategies, items := testGrid("mandalart:1")

	svc := NewMandalartService(MandalartServiceConfig{
		MandalartRepo: &mockMandalartRepo{
			getByIDFunc: func(ctx context.Context, id string) (*model.Mandalart, error) {
				return ownedMandalart("mandalart:1", "user:1"), nil
			},
		},
		StrategyRepo: &mockStrategyRepo{
			listByMandalartFunc: func(ctx context.Context, mandalartID string) ([]*model.Strategy, error) {
				return strategies, nil
			},
		},
		ItemRepo: &mockItemRepo{
			listByMandalartFunc: func(ctx context.Context, mandalartID string) ([]*model.ActionItem, error) {
				return items, nil
			},
		},
	})

	detail, err := svc.GetDetail(ctx, "user:1", "mandalart:1")
	if err != nil {
		t.Fatalf("GetDetail failed: %v", err)
	}

	for _, s := range detail.Strategies {
		for _, item := range s.ActionItems {
			if item.StrategyID != s.Strategy.ID {
				t.Errorf("item %s grouped under wrong strategy %s", item.ID, s.Strategy.ID)
			}
		}
	}
}

func TestMandalartService_GetDetail_NotFound(t *testing.T) {
	ctx := context.Background()

	svc := NewMandalartService(MandalartServiceConfig{
		MandalartRepo: &mockMandalartRepo{},
		StrategyRepo:  &mockStrategyRepo{},
		ItemRepo:      &mockItemRepo{},
	})

	_, err := svc.GetDetail(ctx, "user:1", "mandalart:missing")
	if !errors.Is(err, ErrMandalartNotFound) {
		t.Errorf("expected ErrMandalartNotFound, got %v", err)
	}
}

func TestMandalartService_GetDetail_OtherUsersMandalart_Forbidden(t *testing.T) {
	ctx := context.Background()

	svc := NewMandalartService(MandalartServiceConfig{
		MandalartRepo: &mockMandalartRepo{
			getByIDFunc: func(ctx context.Context, id string) (*model.Mandalart, error) {
				return ownedMandalart("mandalart:1", "user:owner"), nil
			},
		},
		StrategyRepo: &mockStrategyRepo{},
		ItemRepo:     &mockItemRepo{},
	})

	_, err := svc.GetDetail(ctx, "user:intruder", "mandalart:1")
	if !errors.Is(err, ErrForbidden) {
		t.Errorf("expected ErrForbidden, got %v", err)
	}
}

// ============================================================================
// List Tests
// ============================================================================

func TestMandalartService_List_ReturnsSummaries(t *testing.T) {
	ctx := context.Background()

	svc := NewMandalartService(MandalartServiceConfig{
		MandalartRepo: &mockMandalartRepo{
			listByUserFunc: func(ctx context.Context, userID string) ([]*model.Mandalart, error) {
				return []*model.Mandalart{
					ownedMandalart("mandalart:2", userID),
					ownedMandalart("mandalart:1", userID),
				}, nil
			},
		},
		StrategyRepo: &mockStrategyRepo{},
		ItemRepo:     &mockItemRepo{},
	})

	summaries, err := svc.List(ctx, "user:1")
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(summaries) != 2 {
		t.Fatalf("expected 2 summaries, got %d", len(summaries))
	}
	if summaries[0].ID != "mandalart:2" {
		t.Errorf("expected repository order preserved, got %s first", summaries[0].ID)
	}
}

func TestMandalartService_List_Empty(t *testing.T) {
	ctx := context.Background()

	svc := NewMandalartService(MandalartServiceConfig{
		MandalartRepo: &mockMandalartRepo{},
		StrategyRepo:  &mockStrategyRepo{},
		ItemRepo:      &mockItemRepo{},
	})

	summaries, err := svc.List(ctx, "user:1")
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(summaries) != 0 {
		t.Errorf("expected empty list, got %d", len(summaries))
	}
}

// ============================================================================
// UpdateTitle Tests
// ============================================================================

func TestMandalartService_UpdateTitle_Success(t *testing.T) {
	ctx := context.Background()

	var gotTitle string
	svc := NewMandalartService(MandalartServiceConfig{
		MandalartRepo: &mockMandalartRepo{
			getByIDFunc: func(ctx context.Context, id string) (*model.Mandalart, error) {
				return ownedMandalart("mandalart:1", "user:1"), nil
			},
			updateTitle: func(ctx context.Context, id, title string) error {
				gotTitle = title
				return nil
			},
		},
		StrategyRepo: &mockStrategyRepo{},
		ItemRepo:     &mockItemRepo{},
	})

	title := "  renamed  "
	mandalart, err := svc.UpdateTitle(ctx, "user:1", "mandalart:1", model.UpdateMandalartRequest{Title: &title})
	if err != nil {
		t.Fatalf("UpdateTitle failed: %v", err)
	}
	if gotTitle != "renamed" {
		t.Errorf("expected trimmed title, got %q", gotTitle)
	}
	if mandalart.Title != "renamed" {
		t.Errorf("expected updated title on result, got %q", mandalart.Title)
	}
}

func TestMandalartService_UpdateTitle_NilTitle_NoOp(t *testing.T) {
	ctx := context.Background()

	updateCalled := false
	svc := NewMandalartService(MandalartServiceConfig{
		MandalartRepo: &mockMandalartRepo{
			getByIDFunc: func(ctx context.Context, id string) (*model.Mandalart, error) {
				m := ownedMandalart("mandalart:1", "user:1")
				m.Title = "unchanged"
				return m, nil
			},
			updateTitle: func(ctx context.Context, id, title string) error {
				updateCalled = true
				return nil
			},
		},
		StrategyRepo: &mockStrategyRepo{},
		ItemRepo:     &mockItemRepo{},
	})

	req := model.UpdateMandalartRequest{}
	if err := req.Validate(); err != nil {
		t.Fatalf("empty patch should validate: %v", err)
	}

	mandalart, err := svc.UpdateTitle(ctx, "user:1", "mandalart:1", req)
	if err != nil {
		t.Fatalf("UpdateTitle failed: %v", err)
	}
	if updateCalled {
		t.Error("empty patch should not hit the repository")
	}
	if mandalart.Title != "unchanged" {
		t.Errorf("expected title untouched, got %q", mandalart.Title)
	}
}

func TestMandalartService_UpdateTitle_Forbidden(t *testing.T) {
	ctx := context.Background()

	svc := NewMandalartService(MandalartServiceConfig{
		MandalartRepo: &mockMandalartRepo{
			getByIDFunc: func(ctx context.Context, id string) (*model.Mandalart, error) {
				return ownedMandalart("mandalart:1", "user:owner"), nil
			},
		},
		StrategyRepo: &mockStrategyRepo{},
		ItemRepo:     &mockItemRepo{},
	})

	title := "renamed"
	_, err := svc.UpdateTitle(ctx, "user:intruder", "mandalart:1", model.UpdateMandalartRequest{Title: &title})
	if !errors.Is(err, ErrForbidden) {
		t.Errorf("expected ErrForbidden, got %v", err)
	}
}

// ============================================================================
// Delete Tests
// ============================================================================

func TestMandalartService_Delete_Success(t *testing.T) {
	ctx := context.Background()

	deleted := false
	svc := NewMandalartService(MandalartServiceConfig{
		MandalartRepo: &mockMandalartRepo{
			getByIDFunc: func(ctx context.Context, id string) (*model.Mandalart, error) {
				return ownedMandalart("mandalart:1", "user:1"), nil
			},
			deleteFunc: func(ctx context.Context, id string) error {
				deleted = true
				return nil
			},
		},
		StrategyRepo: &mockStrategyRepo{},
		ItemRepo:     &mockItemRepo{},
	})

	if err := svc.Delete(ctx, "user:1", "mandalart:1"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if !deleted {
		t.Error("expected repository Delete to be called")
	}
}

func TestMandalartService_Delete_NotFound(t *testing.T) {
	ctx := context.Background()

	svc := NewMandalartService(MandalartServiceConfig{
		MandalartRepo: &mockMandalartRepo{},
		StrategyRepo:  &mockStrategyRepo{},
		ItemRepo:      &mockItemRepo{},
	})

	err := svc.Delete(ctx, "user:1", "mandalart:missing")
	if !errors.Is(err, ErrMandalartNotFound) {
		t.Errorf("expected ErrMandalartNotFound, got %v", err)
	}
}
