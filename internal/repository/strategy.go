package repository

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/dlwnsgus777/my-mandalateu/internal/database"
	"github.com/dlwnsgus777/my-mandalateu/internal/model"
)

// StrategyRepository handles strategy data access
type StrategyRepository struct {
	db database.Database
}

// NewStrategyRepository creates a new strategy repository
func NewStrategyRepository(db database.Database) *StrategyRepository {
	return &StrategyRepository{db: db}
}

// GetByID retrieves a strategy by ID
func (r *StrategyRepository) GetByID(ctx context.Context, id string) (*model.Strategy, error) {
	query := `SELECT * FROM type::record($id)`
	vars := map[string]interface{}{"id": id}

	result, err := r.db.QueryOne(ctx, query, vars)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	strategy, err := parseStrategyResult(result)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return strategy, nil
}

// ListByMandalart retrieves all strategies of a mandalart ordered by position
func (r *StrategyRepository) ListByMandalart(ctx context.Context, mandalartID string) ([]*model.Strategy, error) {
	query := `SELECT * FROM strategy WHERE mandalart = type::record($mandalart) ORDER BY position ASC`
	vars := map[string]interface{}{"mandalart": mandalartID}

	results, err := r.db.Query(ctx, query, vars)
	if err != nil {
		return nil, err
	}

	return parseStrategiesResult(results)
}

// Update updates a strategy's mutable fields
func (r *StrategyRepository) Update(ctx context.Context, strategy *model.Strategy) error {
	query := `
		UPDATE type::record($id) SET
			title = $title,
			color = IF $color IS NOT NULL THEN $color ELSE NONE END,
			notes = IF $notes IS NOT NULL THEN $notes ELSE NONE END
	`
	vars := map[string]interface{}{
		"id":    strategy.ID,
		"title": strategy.Title,
		"color": ptrToNone(strategy.Color),
		"notes": ptrToNone(strategy.Notes),
	}

	return r.db.Execute(ctx, query, vars)
}

// Parse helpers

func parseStrategyResult(result interface{}) (*model.Strategy, error) {
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

	return parseStrategyFromData(data)
}

func parseStrategiesResult(results []interface{}) ([]*model.Strategy, error) {
	strategies := make([]*model.Strategy, 0)

	rows, ok := extractQueryResults(results)
	if !ok {
		return strategies, nil
	}

	for _, row := range rows {
		data, ok := row.(map[string]interface{})
		if !ok {
			continue
		}
		strategy, err := parseStrategyFromData(data)
		if err != nil {
			return nil, err
		}
		strategies = append(strategies, strategy)
	}

	return strategies, nil
}

func parseStrategyFromData(data map[string]interface{}) (*model.Strategy, error) {
	if id, ok := data["id"]; ok {
		data["id"] = convertSurrealID(id)
	}
	if mandalart, ok := data["mandalart"]; ok {
		data["mandalart"] = convertSurrealID(mandalart)
		data["mandalart_id"] = data["mandalart"]
	}

	jsonBytes, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}

	var strategy model.Strategy
	if err := json.Unmarshal(jsonBytes, &strategy); err != nil {
		return nil, err
	}

	return &strategy, nil
}
