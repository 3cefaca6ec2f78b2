package service

import (
	"context"
	"fmt"
	"time"

	"storefront/internal/cache"
	"storefront/internal/report"
)

// --- DTOs ---

// ReportQuery carries the raw query-string filters for one report request. Days is
// ignored when both From and To are set.
type ReportQuery struct {
	Days     int
	From     string // YYYY-MM-DD, inclusive
	To       string // YYYY-MM-DD, inclusive
	Status   string
	Category string
}

type CatalogEntry struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

type CatalogGroup struct {
	Category string         `json:"category"`
	Reports  []CatalogEntry `json:"reports"`
}

type ReportExport struct {
	Filename string
	Content  string
}

// --- Interface ---

type ReportService interface {
	Catalog() []CatalogGroup
	Get(ctx context.Context, id string, q ReportQuery) (report.ReportResult, error)
	ExportCSV(ctx context.Context, id string, q ReportQuery) (ReportExport, error)
}

type reportService struct {
	engine *report.Engine
	cache  *cache.ReportCache
	now    func() time.Time
}

func NewReportService(engine *report.Engine, reportCache *cache.ReportCache) ReportService {
	return &reportService{
		engine: engine,
		cache:  reportCache,
		now:    time.Now,
	}
}

// --- Implementation ---

func (s *reportService) Catalog() []CatalogGroup {
	groups := make([]CatalogGroup, 0, 8)
	index := make(map[string]int)
	for _, def := range s.engine.Registry().Definitions() {
		i, ok := index[def.Category]
		if !ok {
			i = len(groups)
			index[def.Category] = i
			groups = append(groups, CatalogGroup{Category: def.Category})
		}
		groups[i].Reports = append(groups[i].Reports, CatalogEntry{ID: def.ID, Title: def.Title})
	}
	return groups
}

func (s *reportService) Get(ctx context.Context, id string, q ReportQuery) (report.ReportResult, error) {
	window, err := s.resolveWindow(q)
	if err != nil {
		return report.ReportResult{}, err
	}
	filters := report.Filters{Status: q.Status, Category: q.Category}

	key := cache.Key(id, window, filters)
	if cached, ok := s.cache.Get(ctx, key); ok {
		return cached, nil
	}

	result, err := s.engine.Compute(ctx, id, window, filters)
	if err != nil {
		return result, err
	}
	s.cache.Set(ctx, key, result)
	return result, nil
}

func (s *reportService) ExportCSV(ctx context.Context, id string, q ReportQuery) (ReportExport, error) {
	result, err := s.Get(ctx, id, q)
	if err != nil {
		return ReportExport{}, err
	}
	content, err := report.ToCSV(result)
	if err != nil {
		return ReportExport{}, err
	}
	return ReportExport{
		Filename: report.Filename(id, s.now()),
		Content:  content,
	}, nil
}

// --- Helpers ---

// resolveWindow turns the query into a half-open window. An explicit from/to pair wins
// over the days preset; both dates are inclusive so the upper bound extends one day.
func (s *reportService) resolveWindow(q ReportQuery) (report.Window, error) {
	if q.From != "" || q.To != "" {
		from, err := time.Parse("2006-01-02", q.From)
		if err != nil {
			return report.Window{}, fmt.Errorf("invalid from date: %w", err)
		}
		to, err := time.Parse("2006-01-02", q.To)
		if err != nil {
			return report.Window{}, fmt.Errorf("invalid to date: %w", err)
		}
		return report.Between(from, to.AddDate(0, 0, 1)), nil
	}

	days := q.Days
	if days <= 0 {
		days = 30
	}
	if days > 730 {
		days = 730
	}
	return report.LastDays(days, s.now()), nil
}
