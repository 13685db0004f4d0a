package repository

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/dlwnsgus777/my-mandalateu/internal/database"
	"github.com/dlwnsgus777/my-mandalateu/internal/model"
)

// ActionItemRepository handles action item data access
type ActionItemRepository struct {
	db database.Database
}

// NewActionItemRepository creates a new action item repository
func NewActionItemRepository(db database.Database) *ActionItemRepository {
	return &ActionItemRepository{db: db}
}

// GetByID retrieves an action item by ID
func (r *ActionItemRepository) GetByID(ctx context.Context, id string) (*model.ActionItem, error) {
	query := `SELECT * FROM type::record($id)`
	vars := map[string]interface{}{"id": id}

	result, err := r.db.QueryOne(ctx, query, vars)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	item, err := parseActionItemResult(result)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return item, nil
}

// ListByStrategy retrieves all action items of a strategy ordered by position
func (r *ActionItemRepository) ListByStrategy(ctx context.Context, strategyID string) ([]*model.ActionItem, error) {
	query := `SELECT * FROM action_item WHERE strategy = type::record($strategy) ORDER BY position ASC`
	vars := map[string]interface{}{"strategy": strategyID}

	results, err := r.db.Query(ctx, query, vars)
	if err != nil {
		return nil, err
	}

	return parseActionItemsResult(results)
}

// ListByMandalart retrieves all action items under a mandalart via their
// parent strategies, ordered by strategy position then item position
func (r *ActionItemRepository) ListByMandalart(ctx context.Context, mandalartID string) ([]*model.ActionItem, error) {
	query := `
		SELECT * FROM action_item
		WHERE strategy.mandalart = type::record($mandalart)
		ORDER BY strategy.position ASC, position ASC
	`
	vars := map[string]interface{}{"mandalart": mandalartID}

	results, err := r.db.Query(ctx, query, vars)
	if err != nil {
		return nil, err
	}

	return parseActionItemsResult(results)
}

// Update updates an action item's mutable fields
func (r *ActionItemRepository) Update(ctx context.Context, item *model.ActionItem) error {
	query := `
		UPDATE type::record($id) SET
			title = $title,
			description = IF $description IS NOT NULL THEN $description ELSE NONE END,
			completed = $completed,
			completed_at = IF $completed_at IS NOT NULL THEN <datetime>$completed_at ELSE NONE END,
			deadline = IF $deadline IS NOT NULL THEN $deadline ELSE NONE END,
			priority = IF $priority IS NOT NULL THEN $priority ELSE NONE END
	`

	var completedAt interface{}
	if item.CompletedAt != nil {
		completedAt = item.CompletedAt.Format(time.RFC3339)
	}

	var priority interface{}
	if item.Priority != nil {
		priority = string(*item.Priority)
	}

	vars := map[string]interface{}{
		"id":           item.ID,
		"title":        item.Title,
		"description":  ptrToNone(item.Description),
		"completed":    item.Completed,
		"completed_at": completedAt,
		"deadline":     ptrToNone(item.Deadline),
		"priority":     priority,
	}

	return r.db.Execute(ctx, query, vars)
}

// Parse helpers

func parseActionItemResult(result interface{}) (*model.ActionItem, error) {
	if result == nil {
		return nil, database.ErrNotFound
	}

	if resp, ok := result.(map[string]interface{}); ok {
		if status, ok := resp["status"].(string); ok && status == "OK" {
			if resultData, ok := resp["result"].([]interface{}); ok {
				if len(resultData) == 0 {
					return nil, database.ErrNotFound
				}
				result = resultData[0]
			}
		}
	}

	if arr, ok := result.([]interface{}); ok {
		if len(arr) == 0 {
			return nil, database.ErrNotFound
		}
		result = arr[0]
	}

	data, ok := result.(map[string]interface{})
	if !ok {
		return nil, errors.New("unexpected result format")
	}

	return parseActionItemFromData(data)
}

func parseActionItemsResult(results []interface{}) ([]*model.ActionItem, error) {
	items := make([]*model.ActionItem, 0)

	rows, ok := extractQueryResults(results)
	if !ok {
		return items, nil
	}

	for _, row := range rows {
		data, ok := row.(map[string]interface{})
		if !ok {
			continue
		}
		item, err := parseActionItemFromData(data)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	return items, nil
}

func parseActionItemFromData(data map[string]interface{}) (*model.ActionItem, error) {
	if id, ok := data["id"]; ok {
		data["id"] = convertSurrealID(id)
	}
	if strategy, ok := data["strategy"]; ok {
		data["strategy"] = convertSurrealID(strategy)
		data["strategy_id"] = data["strategy"]
	}

	// completed_at may arrive as a SurrealDB datetime; normalize it so the
	// JSON round-trip below lands on *time.Time
	if completedAt := getTime(data, "completed_at"); completedAt != nil {
		data["completed_at"] = completedAt.Format(time.RFC3339Nano)
	} else {
		delete(data, "completed_at")
	}

	jsonBytes, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}

	var item model.ActionItem
	if err := json.Unmarshal(jsonBytes, &item); err != nil {
		return nil, err
	}

	return &item, nil
}
