package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/dlwnsgus777/my-mandalateu/internal/model"
)

const dateLayout = "2006-01-02"

// koreanDays maps time.Weekday to the single-character Korean day labels
// used in weekly report payloads
var koreanDays = map[time.Weekday]string{
	time.Monday:    "월",
	time.Tuesday:   "화",
	time.Wednesday: "수",
	time.Thursday:  "목",
	time.Friday:    "금",
	time.Saturday:  "토",
	time.Sunday:    "일",
}

// DashboardService computes read-only statistics over a mandalart's grid.
// The aggregation itself lives in pure package-level functions so it can be
// tested with a fixed clock; the service only fetches, checks ownership,
// and delegates.
type DashboardService struct {
	mandalartRepo MandalartRepository
	strategyRepo  StrategyRepository
	itemRepo      ActionItemRepository
	now           func() time.Time
}

// DashboardServiceConfig holds configuration for the dashboard service
type DashboardServiceConfig struct {
	MandalartRepo MandalartRepository
	StrategyRepo  StrategyRepository
	ItemRepo      ActionItemRepository
	Now           func() time.Time // Defaults to time.Now
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(cfg DashboardServiceConfig) *DashboardService {
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &DashboardService{
		mandalartRepo: cfg.MandalartRepo,
		strategyRepo:  cfg.StrategyRepo,
		itemRepo:      cfg.ItemRepo,
		now:           cfg.Now,
	}
}

// Summary returns overall and per-strategy completion counts and rates
func (s *DashboardService) Summary(ctx context.Context, userID, mandalartID string) (*model.SummaryReport, error) {
	strategies, items, err := s.fetchGrid(ctx, userID, mandalartID)
	if err != nil {
		return nil, err
	}
	return BuildSummary(strategies, items), nil
}

// Weekly returns this week's daily completion counts and the week-over-week
// trend against last week
func (s *DashboardService) Weekly(ctx context.Context, userID, mandalartID string) (*model.WeeklyReport, error) {
	_, items, err := s.fetchGrid(ctx, userID, mandalartID)
	if err != nil {
		return nil, err
	}
	return BuildWeekly(items, s.today()), nil
}

// Streak returns the current and best consecutive-day completion streaks
func (s *DashboardService) Streak(ctx context.Context, userID, mandalartID string) (*model.StreakReport, error) {
	_, items, err := s.fetchGrid(ctx, userID, mandalartID)
	if err != nil {
		return nil, err
	}
	return BuildStreak(items, s.today()), nil
}

// Deadlines returns incomplete items with upcoming deadlines, soonest first
func (s *DashboardService) Deadlines(ctx context.Context, userID, mandalartID string) ([]*model.DeadlineEntry, error) {
	strategies, items, err := s.fetchGrid(ctx, userID, mandalartID)
	if err != nil {
		return nil, err
	}
	return BuildDeadlines(strategies, items, s.today()), nil
}

// fetchGrid loads a mandalart's strategies and action items after the
// ownership check
func (s *DashboardService) fetchGrid(ctx context.Context, userID, mandalartID string) ([]*model.Strategy, []*model.ActionItem, error) {
	mandalart, err := s.mandalartRepo.GetByID(ctx, mandalartID)
	if err != nil {
		return nil, nil, err
	}
	if mandalart == nil {
		return nil, nil, ErrMandalartNotFound
	}
	if mandalart.UserID != userID {
		return nil, nil, ErrForbidden
	}

	strategies, err := s.strategyRepo.ListByMandalart(ctx, mandalartID)
	if err != nil {
		return nil, nil, err
	}

	items, err := s.itemRepo.ListByMandalart(ctx, mandalartID)
	if err != nil {
		return nil, nil, err
	}

	return strategies, items, nil
}

// today truncates the clock to a calendar date in local time
func (s *DashboardService) today() time.Time {
	return truncateToDay(s.now())
}

// ============================================================================
// Pure aggregation functions
// ============================================================================

// BuildSummary computes overall and per-strategy completion statistics.
// Strategy entries follow the order of the strategies slice.
func BuildSummary(strategies []*model.Strategy, items []*model.ActionItem) *model.SummaryReport {
	itemsByStrategy := make(map[string][]*model.ActionItem, len(strategies))
	for _, item := range items {
		itemsByStrategy[item.StrategyID] = append(itemsByStrategy[item.StrategyID], item)
	}

	report := &model.SummaryReport{
		StrategyStats: make([]*model.StrategyStat, 0, len(strategies)),
	}

	for _, strategy := range strategies {
		group := itemsByStrategy[strategy.ID]
		completed := 0
		for _, item := range group {
			if item.Completed {
				completed++
			}
		}

		report.StrategyStats = append(report.StrategyStats, &model.StrategyStat{
			StrategyID:     strategy.ID,
			StrategyTitle:  strategy.Title,
			TotalCount:     len(group),
			CompletedCount: completed,
			CompletionRate: completionRate(completed, len(group)),
		})

		report.TotalCount += len(group)
		report.CompletedCount += completed
	}

	report.CompletionRate = completionRate(report.CompletedCount, report.TotalCount)
	return report
}

// BuildWeekly buckets completions into the Monday-to-Sunday week containing
// today and compares the total against the preceding week
func BuildWeekly(items []*model.ActionItem, today time.Time) *model.WeeklyReport {
	monday := startOfWeek(today)
	sunday := monday.AddDate(0, 0, 6)
	lastMonday := monday.AddDate(0, 0, -7)

	countsByDate := make(map[string]int)
	thisWeekTotal := 0
	lastWeekTotal := 0

	for _, item := range items {
		if !item.Completed || item.CompletedAt == nil {
			continue
		}
		day := truncateToDay(item.CompletedAt.In(today.Location()))
		switch {
		case !day.Before(monday) && !day.After(sunday):
			thisWeekTotal++
			countsByDate[day.Format(dateLayout)]++
		case !day.Before(lastMonday) && day.Before(monday):
			lastWeekTotal++
		}
	}

	report := &model.WeeklyReport{
		WeekRange:     fmt.Sprintf("%s ~ %s", monday.Format(dateLayout), sunday.Format(dateLayout)),
		DailyStats:    make([]*model.DailyStat, 0, 7),
		ThisWeekTotal: thisWeekTotal,
		LastWeekTotal: lastWeekTotal,
		ChangeRate:    changeRate(thisWeekTotal, lastWeekTotal),
	}

	for i := 0; i < 7; i++ {
		day := monday.AddDate(0, 0, i)
		date := day.Format(dateLayout)
		report.DailyStats = append(report.DailyStats, &model.DailyStat{
			Date:           date,
			DayOfWeek:      koreanDays[day.Weekday()],
			CompletedCount: countsByDate[date],
		})
	}

	return report
}

// BuildStreak computes consecutive-day completion streaks. The current
// streak walks back from today and breaks on the first missing day; a day
// without completions today means the current streak is zero.
func BuildStreak(items []*model.ActionItem, today time.Time) *model.StreakReport {
	dateSet := make(map[string]bool)
	for _, item := range items {
		if item.Completed && item.CompletedAt != nil {
			dateSet[truncateToDay(item.CompletedAt.In(today.Location())).Format(dateLayout)] = true
		}
	}

	if len(dateSet) == 0 {
		return &model.StreakReport{}
	}

	dates := make([]string, 0, len(dateSet))
	for d := range dateSet {
		dates = append(dates, d)
	}
	sort.Strings(dates)

	current := 0
	for day := today; dateSet[day.Format(dateLayout)]; day = day.AddDate(0, 0, -1) {
		current++
	}

	best := 1
	run := 1
	for i := 1; i < len(dates); i++ {
		prev, _ := time.Parse(dateLayout, dates[i-1])
		if dates[i] == prev.AddDate(0, 0, 1).Format(dateLayout) {
			run++
		} else {
			run = 1
		}
		if run > best {
			best = run
		}
	}
	if current > best {
		best = current
	}

	last := dates[len(dates)-1]
	return &model.StreakReport{
		CurrentStreak:     current,
		BestStreak:        best,
		LastCompletedDate: &last,
	}
}

// BuildDeadlines lists incomplete items whose deadline is today or later,
// ascending by deadline with stable ties
func BuildDeadlines(strategies []*model.Strategy, items []*model.ActionItem, today time.Time) []*model.DeadlineEntry {
	titleByStrategy := make(map[string]string, len(strategies))
	for _, strategy := range strategies {
		titleByStrategy[strategy.ID] = strategy.Title
	}

	todayStr := today.Format(dateLayout)
	tomorrowStr := today.AddDate(0, 0, 1).Format(dateLayout)

	entries := make([]*model.DeadlineEntry, 0)
	for _, item := range items {
		if item.Completed || item.Deadline == nil {
			continue
		}
		deadline := *item.Deadline
		if deadline < todayStr {
			continue
		}

		status := model.DeadlineSoon
		switch deadline {
		case todayStr:
			status = model.DeadlineToday
		case tomorrowStr:
			status = model.DeadlineTomorrow
		}

		entries = append(entries, &model.DeadlineEntry{
			ActionItemID:  item.ID,
			Title:         item.Title,
			StrategyTitle: titleByStrategy[item.StrategyID],
			Deadline:      deadline,
			Status:        status,
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Deadline < entries[j].Deadline
	})

	return entries
}

// Date helpers

func completionRate(completed, total int) float64 {
	if total == 0 {
		return 0.0
	}
	return float64(completed) / float64(total) * 100
}

func changeRate(thisWeek, lastWeek int) float64 {
	if lastWeek == 0 {
		if thisWeek > 0 {
			return 100.0
		}
		return 0.0
	}
	return float64(thisWeek-lastWeek) / float64(lastWeek) * 100
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// startOfWeek returns the Monday of the ISO week containing the given day
func startOfWeek(day time.Time) time.Time {
	offset := int(day.Weekday()-time.Monday+7) % 7
	return day.AddDate(0, 0, -offset)
}
