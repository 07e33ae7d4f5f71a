package services

import (
	"time"

	"github.com/sekolahdata/tatatertib/internal/models"
	"github.com/sekolahdata/tatatertib/internal/scope"
	"gorm.io/gorm"
)

// StatsService aggregates scoped violation data for the dashboards. All
// category figures come from the frozen per-violation name, so a renamed or
// deleted category keeps its historical identity.
type StatsService struct {
	db *gorm.DB
}

func NewStatsService(db *gorm.DB) *StatsService {
	return &StatsService{db: db}
}

func (s *StatsService) scopedViolations(sc scope.Scope) *gorm.DB {
	query := s.db.Model(&models.Violation{}).
		Joins("JOIN students ON students.id = violations.student_id")
	return sc.WhereColumn(query, "students.school_id")
}

// CategoryDistribution returns violation counts per frozen category name
// within the resolved date range.
func (s *StatsService) CategoryDistribution(sc scope.Scope, dateRange string) (map[string]int64, error) {
	start, end := ResolveDateRange(dateRange, time.Now())
	return s.distribution(sc, start, end)
}

func (s *StatsService) distribution(sc scope.Scope, start, end *time.Time) (map[string]int64, error) {
	var rows []struct {
		CategoryName string
		Count        int64
	}
	query := applyOccurredRange(s.scopedViolations(sc), start, end)
	err := query.
		Select("violations.category_name, COUNT(*) AS count").
		Group("violations.category_name").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	dist := make(map[string]int64, len(rows))
	for _, row := range rows {
		dist[row.CategoryName] = row.Count
	}
	return dist, nil
}

const defaultTopViolatorsLimit = 5

type TopViolator struct {
	StudentID      uint   `json:"student_id"`
	StudentName    string `json:"student_name"`
	ClassroomName  string `json:"classroom_name"`
	ViolationCount int64  `json:"violation_count"`
	TotalPoints    int64  `json:"total_points"`
}

// TopViolators returns the highest-scoring students in the range, ordered by
// total points, then violation count, then student id for stable output.
func (s *StatsService) TopViolators(sc scope.Scope, dateRange string, limit int) ([]TopViolator, error) {
	if limit <= 0 {
		limit = defaultTopViolatorsLimit
	}

	start, end := ResolveDateRange(dateRange, time.Now())

	query := applyOccurredRange(s.scopedViolations(sc), start, end)
	query = query.
		Joins("LEFT JOIN classrooms ON classrooms.id = students.classroom_id").
		Select(
			"students.id AS student_id, students.name AS student_name, " +
				"classrooms.name AS classroom_name, " +
				"COUNT(*) AS violation_count, SUM(violations.points) AS total_points",
		).
		Group("students.id, students.name, classrooms.name").
		Order("total_points DESC, violation_count DESC, student_id ASC").
		Limit(limit)

	var violators []TopViolator
	if err := query.Scan(&violators).Error; err != nil {
		return nil, err
	}
	return violators, nil
}

type TrendPoint struct {
	Date  string `json:"date"`
	Count int64  `json:"count"`
}

// TrendSeries returns one point per calendar day for the trailing window
// ending today. Days without violations are zero-filled; the series never
// has gaps.
func (s *StatsService) TrendSeries(sc scope.Scope, days int) ([]TrendPoint, error) {
	if days <= 0 {
		days = 7
	}

	now := time.Now()
	today := truncateToDay(now)
	start := today.AddDate(0, 0, -(days - 1))

	query := applyOccurredRange(s.scopedViolations(sc), &start, &today)

	var violations []models.Violation
	if err := query.Select("violations.occurred_at").Find(&violations).Error; err != nil {
		return nil, err
	}

	counts := make(map[string]int64, days)
	for _, v := range violations {
		counts[v.OccurredAt.In(now.Location()).Format(isoDateLayout)]++
	}

	series := make([]TrendPoint, 0, days)
	for d := start; !d.After(today); d = d.AddDate(0, 0, 1) {
		label := d.Format(isoDateLayout)
		series = append(series, TrendPoint{Date: label, Count: counts[label]})
	}
	return series, nil
}

type TodaySummary struct {
	Total        int64            `json:"total"`
	Distribution map[string]int64 `json:"distribution"`
	TopViolators []TopViolator    `json:"top_violators"`
}

// Today returns the live dashboard widget data for the current calendar day.
func (s *StatsService) Today(sc scope.Scope) (*TodaySummary, error) {
	dist, err := s.CategoryDistribution(sc, "today")
	if err != nil {
		return nil, err
	}

	var total int64
	for _, count := range dist {
		total += count
	}

	top, err := s.TopViolators(sc, "today", defaultTopViolatorsLimit)
	if err != nil {
		return nil, err
	}

	return &TodaySummary{Total: total, Distribution: dist, TopViolators: top}, nil
}
