package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/dlwnsgus777/my-mandalateu/internal/database"
	"github.com/dlwnsgus777/my-mandalateu/internal/model"
	"github.com/google/uuid"
)

// MandalartRepository handles mandalart data access
type MandalartRepository struct {
	db database.Database
}

// NewMandalartRepository creates a new mandalart repository
func NewMandalartRepository(db database.Database) *MandalartRepository {
	return &MandalartRepository{db: db}
}

// newRecordID generates a client-side record ID for the given table.
// IDs are generated here so the whole grid can reference its parents
// inside a single transaction.
func newRecordID(table string) string {
	return table + ":" + strings.ReplaceAll(uuid.NewString(), "-", "")
}

// CreateGrid creates a mandalart with its full 9x9 tree in one transaction:
// 9 strategies (position 4 titled with the core goal) and 9 action items per
// strategy (the position 4 center item mirrors its strategy's title).
// On success the mandalart's ID is set on m.
func (r *MandalartRepository) CreateGrid(ctx context.Context, m *model.Mandalart, coreGoal string) error {
	mandalartID := newRecordID("mandalart")

	tb := database.NewTxBuilder()
	tb.Add(`
		CREATE type::record($mid) CONTENT {
			user: type::record($user),
			title: $title,
			created_on: time::now(),
			updated_on: time::now()
		}`, map[string]interface{}{
		"mid":   mandalartID,
		"user":  m.UserID,
		"title": m.Title,
	})

	for pos := 0; pos < model.GridSize; pos++ {
		strategyID := newRecordID("strategy")

		strategyTitle := ""
		if pos == model.CenterPosition {
			strategyTitle = coreGoal
		}

		tb.Add(fmt.Sprintf(`
			CREATE type::record($sid) CONTENT {
				mandalart: type::record($mid),
				position: %d,
				title: $title
			}`, pos), map[string]interface{}{
			"sid":   strategyID,
			"mid":   mandalartID,
			"title": strategyTitle,
		})

		for itemPos := 0; itemPos < model.GridSize; itemPos++ {
			isCenter := itemPos == model.CenterPosition

			itemTitle := ""
			if isCenter {
				itemTitle = strategyTitle
			}

			tb.Add(fmt.Sprintf(`
				CREATE action_item CONTENT {
					strategy: type::record($sid),
					position: %d,
					is_center: %v,
					title: $title,
					completed: false
				}`, itemPos, isCenter), map[string]interface{}{
				"sid":   strategyID,
				"title": itemTitle,
			})
		}
	}

	if _, err := database.ExecuteTransaction(ctx, r.db, tb); err != nil {
		return err
	}

	m.ID = mandalartID
	return nil
}

// GetByID retrieves a mandalart by ID
func (r *MandalartRepository) GetByID(ctx context.Context, id string) (*model.Mandalart, error) {
	query := `SELECT * FROM type::record($id)`
	vars := map[string]interface{}{"id": id}

	result, err := r.db.QueryOne(ctx, query, vars)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	mandalart, err := parseMandalartResult(result)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return mandalart, nil
}

// ListByUser retrieves all mandalarts owned by a user, newest first
func (r *MandalartRepository) ListByUser(ctx context.Context, userID string) ([]*model.Mandalart, error) {
	query := `SELECT * FROM mandalart WHERE user = type::record($user) ORDER BY created_on DESC`
	vars := map[string]interface{}{"user": userID}

	results, err := r.db.Query(ctx, query, vars)
	if err != nil {
		return nil, err
	}

	return parseMandalartsResult(results)
}

// UpdateTitle updates a mandalart's title
func (r *MandalartRepository) UpdateTitle(ctx context.Context, id, title string) error {
	query := `UPDATE type::record($id) SET title = $title, updated_on = time::now()`
	vars := map[string]interface{}{
		"id":    id,
		"title": title,
	}

	return r.db.Execute(ctx, query, vars)
}

// Delete removes a mandalart and cascades to its strategies and action items
func (r *MandalartRepository) Delete(ctx context.Context, id string) error {
	batch := database.NewAtomicBatch()
	batch.Add(`DELETE action_item WHERE strategy.mandalart = type::record($id)`,
		map[string]interface{}{"id": id})
	batch.Add(`DELETE strategy WHERE mandalart = type::record($id)`,
		map[string]interface{}{"id": id})
	batch.Add(`DELETE type::record($id)`,
		map[string]interface{}{"id": id})

	return batch.Execute(ctx, r.db)
}

// Parse helpers

func parseMandalartResult(result interface{}) (*model.Mandalart, error) {
	if result == nil {
		return nil, database.ErrNotFound
	}

	// Navigate through SurrealDB response structure
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

	return parseMandalartFromData(data)
}

func parseMandalartsResult(results []interface{}) ([]*model.Mandalart, error) {
	mandalarts := make([]*model.Mandalart, 0)

	rows, ok := extractQueryResults(results)
	if !ok {
		return mandalarts, nil
	}

	for _, row := range rows {
		data, ok := row.(map[string]interface{})
		if !ok {
			continue
		}
		mandalart, err := parseMandalartFromData(data)
		if err != nil {
			return nil, err
		}
		mandalarts = append(mandalarts, mandalart)
	}

	return mandalarts, nil
}

func parseMandalartFromData(data map[string]interface{}) (*model.Mandalart, error) {
	if id, ok := data["id"]; ok {
		data["id"] = convertSurrealID(id)
	}
	if user, ok := data["user"]; ok {
		data["user"] = convertSurrealID(user)
		data["user_id"] = data["user"]
	}

	jsonBytes, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}

	var mandalart model.Mandalart
	if err := json.Unmarshal(jsonBytes, &mandalart); err != nil {
		return nil, err
	}

	return &mandalart, nil
}
