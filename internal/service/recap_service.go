package service

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/noah-isme/greatday-recap-api/internal/models"
)

// Recap modes.
const (
	ModeDaily   = "daily"
	ModeWeekly  = "weekly"
	ModeMonthly = "monthly"
)

type attendanceFetcher interface {
	ByPeriod(ctx context.Context, startDate, endDate string) ([]models.AttendanceRecord, error)
}

type leaveFetcher interface {
	All(ctx context.Context) ([]models.LeaveRecord, error)
}

type overtimeFetcher interface {
	All(ctx context.Context) ([]models.OvertimeRecord, error)
}

type employeeFetcher interface {
	AllActive(ctx context.Context) ([]models.EmployeeRecord, error)
}

type publisher interface {
	Post(ctx context.Context, content string) error
}

type monthlyExporter interface {
	WriteMonthly(in MonthlyInput, idx *EmployeeIndex) error
}

// RunResult is what a trigger surface reports back to its caller.
type RunResult struct {
	Skipped bool   `json:"skipped"`
	Reason  string `json:"reason,omitempty"`
}

// RecapService orchestrates one recap run: window, fetch, classify,
// aggregate, render, gate, publish, record. Callers must not run two
// recaps for the same window key concurrently; the gate's read-then-
// write is only safe within a single run.
type RecapService struct {
	attendance attendanceFetcher
	leaves     leaveFetcher
	overtime   overtimeFetcher
	employees  employeeFetcher
	publisher  publisher
	exporter   monthlyExporter

	filter     *ExclusionFilter
	classifier *Classifier
	aggregator *Aggregator
	formatter  *Formatter
	gate       *IdempotencyGate
	metrics    *MetricsService
	logger     *zap.Logger
	topN       int
	now        func() time.Time
}

// RecapServiceParams groups constructor dependencies.
type RecapServiceParams struct {
	Attendance attendanceFetcher
	Leaves     leaveFetcher
	Overtime   overtimeFetcher
	Employees  employeeFetcher
	Publisher  publisher
	Exporter   monthlyExporter
	Filter     *ExclusionFilter
	Formatter  *Formatter
	Gate       *IdempotencyGate
	Metrics    *MetricsService
	Logger     *zap.Logger
	TopN       int
}

// NewRecapService constructs a RecapService with sane defaults.
func NewRecapService(params RecapServiceParams) *RecapService {
	logger := params.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	filter := params.Filter
	if filter == nil {
		filter = NewExclusionFilter(nil, nil)
	}
	formatter := params.Formatter
	if formatter == nil {
		formatter = NewFormatter(0, 0)
	}
	topN := params.TopN
	if topN <= 0 {
		topN = 5
	}

	classifier := NewClassifier(filter)
	return &RecapService{
		attendance: params.Attendance,
		leaves:     params.Leaves,
		overtime:   params.Overtime,
		employees:  params.Employees,
		publisher:  params.Publisher,
		exporter:   params.Exporter,
		filter:     filter,
		classifier: classifier,
		aggregator: NewAggregator(classifier, filter),
		formatter:  formatter,
		gate:       params.Gate,
		metrics:    params.Metrics,
		logger:     logger,
		topN:       topN,
		now:        time.Now,
	}
}

// runParallel issues independent read-only fetches concurrently and
// surfaces the first failure.
func runParallel(fns ...func() error) error {
	var wg sync.WaitGroup
	errCh := make(chan error, len(fns))
	for _, fn := range fns {
		wg.Add(1)
		go func(f func() error) {
			defer wg.Done()
			if err := f(); err != nil {
				errCh <- err
			}
		}(fn)
	}
	wg.Wait()
	close(errCh)
	return <-errCh
}

// RunDaily publishes the daily recap for yesterday, unless the window
// was already posted and force is not set.
func (s *RecapService) RunDaily(ctx context.Context, force bool) (RunResult, error) {
	return s.observe(ModeDaily, func() (RunResult, error) {
		window := DailyWindow(s.now())

		var (
			yesterdayAttendance []models.AttendanceRecord
			todayAttendance     []models.AttendanceRecord
			leaves              []models.LeaveRecord
			overtime            []models.OvertimeRecord
			employees           []models.EmployeeRecord
		)

		err := runParallel(
			func() (err error) {
				yesterdayAttendance, err = s.attendance.ByPeriod(ctx, window.Yesterday, window.Yesterday)
				return
			},
			func() (err error) {
				todayAttendance, err = s.attendance.ByPeriod(ctx, window.Today, window.Today)
				return
			},
			func() (err error) { leaves, err = s.leaves.All(ctx); return },
			func() (err error) { overtime, err = s.overtime.All(ctx); return },
			func() (err error) { employees, err = s.employees.AllActive(ctx); return },
		)
		if err != nil {
			return RunResult{}, err
		}

		summary := s.aggregator.BuildDailySummary(DailySummaryInput{
			YesterdayAttendance: yesterdayAttendance,
			TodayAttendance:     todayAttendance,
			Leaves:              leaves,
			Overtime:            overtime,
			Employees:           employees,
			Yesterday:           window.Yesterday,
			Today:               window.Today,
		})

		idx := BuildEmployeeIndex(employees, s.filter)
		content := s.formatter.Daily(summary, idx)

		return s.publish(ctx, DailyKey(window.Yesterday), content, force)
	})
}

// RunWeekly publishes the Monday-to-Friday recap of the current week.
func (s *RecapService) RunWeekly(ctx context.Context, force bool) (RunResult, error) {
	return s.observe(ModeWeekly, func() (RunResult, error) {
		window := WeeklyWindow(s.now())

		attendance, leaves, overtime, employees, err := s.fetchWindow(ctx, window.Start, window.End)
		if err != nil {
			return RunResult{}, err
		}

		aggregates := s.aggregator.BuildWindowAggregates(attendance, overtime, leaves, window.Start, window.End)

		idx := BuildEmployeeIndex(employees, s.filter)
		content := s.formatter.Weekly(aggregates, idx)

		return s.publish(ctx, WeeklyKey(window.Start, window.End), content, force)
	})
}

// RunMonthly publishes the previous-month recap with top-N rankings.
func (s *RecapService) RunMonthly(ctx context.Context, force bool) (RunResult, error) {
	return s.observe(ModeMonthly, func() (RunResult, error) {
		window := PreviousMonthWindow(s.now())

		attendance, leaves, overtime, employees, err := s.fetchWindow(ctx, window.Start, window.End)
		if err != nil {
			return RunResult{}, err
		}

		aggregates := s.aggregator.BuildWindowAggregates(attendance, overtime, leaves, window.Start, window.End)

		input := MonthlyInput{
			MonthKey:      window.MonthKey,
			TardinessTop:  RankTopN(aggregates.TardinessAgg, s.topN),
			OvertimeTop:   RankTopN(aggregates.OvertimeAgg, s.topN),
			Aggregates:    aggregates,
			EmployeeCount: len(employees),
		}

		idx := BuildEmployeeIndex(employees, s.filter)
		content := s.formatter.Monthly(input, idx)

		result, err := s.publish(ctx, MonthlyKey(window.MonthKey), content, force)
		if err != nil || result.Skipped {
			return result, err
		}

		if s.exporter != nil {
			// The artifact is a side product; a failed export must not
			// fail a recap that already reached the sink.
			if exportErr := s.exporter.WriteMonthly(input, idx); exportErr != nil {
				s.logger.Warn("monthly artifact export failed", zap.Error(exportErr))
			}
		}

		return result, nil
	})
}

func (s *RecapService) fetchWindow(ctx context.Context, startDay, endDay string) (
	[]models.AttendanceRecord, []models.LeaveRecord, []models.OvertimeRecord, []models.EmployeeRecord, error,
) {
	var (
		attendance []models.AttendanceRecord
		leaves     []models.LeaveRecord
		overtime   []models.OvertimeRecord
		employees  []models.EmployeeRecord
	)

	err := runParallel(
		func() (err error) { attendance, err = s.attendance.ByPeriod(ctx, startDay, endDay); return },
		func() (err error) { leaves, err = s.leaves.All(ctx); return },
		func() (err error) { overtime, err = s.overtime.All(ctx); return },
		func() (err error) { employees, err = s.employees.AllActive(ctx); return },
	)
	if err != nil {
		return nil, nil, nil, nil, err
	}
	return attendance, leaves, overtime, employees, nil
}

// publish runs the gate-check / post / mark-posted sequence. A failed
// post returns before MarkPosted, so a retried run re-attempts cleanly.
func (s *RecapService) publish(ctx context.Context, key, content string, force bool) (RunResult, error) {
	decision, err := s.gate.CheckAlreadyPosted(ctx, key, force)
	if err != nil {
		return RunResult{}, err
	}
	if !decision.ShouldPost {
		return RunResult{Skipped: true, Reason: decision.Reason}, nil
	}

	if err := s.publisher.Post(ctx, content); err != nil {
		return RunResult{}, err
	}

	if err := s.gate.MarkPosted(ctx, key, content, decision.State); err != nil {
		return RunResult{}, err
	}

	return RunResult{}, nil
}

// observe wraps a run with logging and metrics.
func (s *RecapService) observe(mode string, run func() (RunResult, error)) (RunResult, error) {
	runID := uuid.NewString()
	start := time.Now()
	logger := s.logger.With(zap.String("mode", mode), zap.String("run_id", runID))
	logger.Info("recap run started")

	result, err := run()
	duration := time.Since(start)

	switch {
	case err != nil:
		s.metrics.ObserveRun(mode, RunResultError, duration)
		logger.Error("recap run failed", zap.Error(err), zap.Duration("duration", duration))
	case result.Skipped:
		s.metrics.ObserveRun(mode, RunResultSkipped, duration)
		logger.Info("recap run skipped", zap.String("reason", result.Reason), zap.Duration("duration", duration))
	default:
		s.metrics.ObserveRun(mode, RunResultPosted, duration)
		logger.Info("recap run posted", zap.Duration("duration", duration))
	}

	return result, err
}
