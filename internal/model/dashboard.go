package model

// DeadlineStatus classifies how soon an upcoming deadline falls
type DeadlineStatus string

const (
	DeadlineToday    DeadlineStatus = "TODAY"
	DeadlineTomorrow DeadlineStatus = "TOMORROW"
	DeadlineSoon     DeadlineStatus = "SOON"
)

// StrategyStat is the per-strategy completion breakdown in a summary report
type StrategyStat struct {
	StrategyID     string  `json:"strategy_id"`
	StrategyTitle  string  `json:"strategy_title"`
	TotalCount     int     `json:"total_count"`
	CompletedCount int     `json:"completed_count"`
	CompletionRate float64 `json:"completion_rate"`
}

// SummaryReport is the overall completion view of one mandalart
type SummaryReport struct {
	TotalCount     int             `json:"total_count"`
	CompletedCount int             `json:"completed_count"`
	CompletionRate float64         `json:"completion_rate"`
	StrategyStats  []*StrategyStat `json:"strategy_stats"`
}

// DailyStat is one day's completion count in a weekly report
type DailyStat struct {
	Date           string `json:"date"` // YYYY-MM-DD
	DayOfWeek      string `json:"day_of_week"`
	CompletedCount int    `json:"completed_count"`
}

// WeeklyReport compares this ISO week (Monday start) with the previous one
type WeeklyReport struct {
	WeekRange     string       `json:"week_range"`
	DailyStats    []*DailyStat `json:"daily_stats"`
	ThisWeekTotal int          `json:"this_week_total"`
	LastWeekTotal int          `json:"last_week_total"`
	ChangeRate    float64      `json:"change_rate"`
}

// StreakReport tracks consecutive days with at least one completion
type StreakReport struct {
	CurrentStreak     int     `json:"current_streak"`
	BestStreak        int     `json:"best_streak"`
	LastCompletedDate *string `json:"last_completed_date"` // YYYY-MM-DD
}

// DeadlineEntry is one upcoming incomplete action item
type DeadlineEntry struct {
	ActionItemID  string         `json:"action_item_id"`
	Title         string         `json:"title"`
	StrategyTitle string         `json:"strategy_title"`
	Deadline      string         `json:"deadline"` // YYYY-MM-DD
	Status        DeadlineStatus `json:"status"`
}
