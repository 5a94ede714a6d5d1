package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/greatday-recap-api/internal/models"
)

type attendanceStub struct {
	records []models.AttendanceRecord
	err     error
}

func (s *attendanceStub) ByPeriod(ctx context.Context, startDate, endDate string) ([]models.AttendanceRecord, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.records, nil
}

type leaveStub struct {
	records []models.LeaveRecord
}

func (s *leaveStub) All(ctx context.Context) ([]models.LeaveRecord, error) {
	return s.records, nil
}

type overtimeStub struct {
	records []models.OvertimeRecord
}

func (s *overtimeStub) All(ctx context.Context) ([]models.OvertimeRecord, error) {
	return s.records, nil
}

type employeeStub struct {
	records []models.EmployeeRecord
}

func (s *employeeStub) AllActive(ctx context.Context) ([]models.EmployeeRecord, error) {
	return s.records, nil
}

type publisherSpy struct {
	posts []string
	err   error
}

func (s *publisherSpy) Post(ctx context.Context, content string) error {
	if s.err != nil {
		return s.err
	}
	s.posts = append(s.posts, content)
	return nil
}

type exporterSpy struct {
	calls int
	err   error
}

func (s *exporterSpy) WriteMonthly(in MonthlyInput, idx *EmployeeIndex) error {
	s.calls++
	return s.err
}

type recapFixture struct {
	service   *RecapService
	store     *stateStoreStub
	publisher *publisherSpy
	exporter  *exporterSpy
}

func newRecapFixture(t *testing.T) *recapFixture {
	t.Helper()

	store := newStateStoreStub()
	pub := &publisherSpy{}
	exp := &exporterSpy{}

	svc := NewRecapService(RecapServiceParams{
		Attendance: &attendanceStub{records: []models.AttendanceRecord{
			attendance("E1", "2025-11-11T08:00:00", "2025-11-11T08:10:00"),
		}},
		Leaves:   &leaveStub{},
		Overtime: &overtimeStub{},
		Employees: &employeeStub{records: []models.EmployeeRecord{
			{Identity: models.Identity{EmpID: "E1", EmpNo: "001"}, FullName: "Sari"},
		}},
		Publisher: pub,
		Exporter:  exp,
		Gate:      NewIdempotencyGate(store),
	})
	svc.now = func() time.Time { return time.Date(2025, time.November, 12, 9, 0, 0, 0, models.WIB) }

	return &recapFixture{service: svc, store: store, publisher: pub, exporter: exp}
}

func TestRunDailyPostsOnce(t *testing.T) {
	f := newRecapFixture(t)
	ctx := context.Background()

	result, err := f.service.RunDaily(ctx, false)
	require.NoError(t, err)
	assert.False(t, result.Skipped)
	require.Len(t, f.publisher.posts, 1)
	assert.Contains(t, f.publisher.posts[0], "Rekap Final")
	assert.Contains(t, f.store.state.LastPosts, "daily:2025-11-11")

	// Second run for the same window is skipped without a new post.
	second, err := f.service.RunDaily(ctx, false)
	require.NoError(t, err)
	assert.True(t, second.Skipped)
	assert.Equal(t, "Already posted for daily:2025-11-11. Use force to override.", second.Reason)
	assert.Len(t, f.publisher.posts, 1)
}

func TestRunDailyForceRepublishes(t *testing.T) {
	f := newRecapFixture(t)
	ctx := context.Background()

	_, err := f.service.RunDaily(ctx, false)
	require.NoError(t, err)

	result, err := f.service.RunDaily(ctx, true)
	require.NoError(t, err)
	assert.False(t, result.Skipped)
	assert.Len(t, f.publisher.posts, 2)
}

func TestRunDailyFailedPostLeavesGateOpen(t *testing.T) {
	f := newRecapFixture(t)
	f.publisher.err = errors.New("webhook 500")
	ctx := context.Background()

	_, err := f.service.RunDaily(ctx, false)
	require.Error(t, err)
	assert.NotContains(t, f.store.state.LastPosts, "daily:2025-11-11")

	// The sink recovers and the retried run posts normally.
	f.publisher.err = nil
	result, err := f.service.RunDaily(ctx, false)
	require.NoError(t, err)
	assert.False(t, result.Skipped)
	assert.Len(t, f.publisher.posts, 1)
}

func TestRunDailyFetchFailure(t *testing.T) {
	f := newRecapFixture(t)
	f.service.attendance = &attendanceStub{err: errors.New("upstream down")}

	_, err := f.service.RunDaily(context.Background(), false)
	require.Error(t, err)
	assert.Empty(t, f.publisher.posts)
}

func TestRunWeeklyKeyAndContent(t *testing.T) {
	f := newRecapFixture(t)

	result, err := f.service.RunWeekly(context.Background(), false)
	require.NoError(t, err)
	assert.False(t, result.Skipped)
	require.Len(t, f.publisher.posts, 1)
	assert.True(t, strings.HasPrefix(f.publisher.posts[0], "**📌 Rekap Mingguan (2025-11-10 s/d 2025-11-14)**"))
	assert.Contains(t, f.store.state.LastPosts, "weekly:2025-11-10_to_2025-11-14")
}

func TestRunMonthlyKeyAndExport(t *testing.T) {
	f := newRecapFixture(t)
	ctx := context.Background()

	result, err := f.service.RunMonthly(ctx, false)
	require.NoError(t, err)
	assert.False(t, result.Skipped)
	require.Len(t, f.publisher.posts, 1)
	assert.Contains(t, f.publisher.posts[0], "Rekap Bulanan (Oktober 2025)")
	assert.Contains(t, f.store.state.LastPosts, "monthly:2025-10")
	assert.Equal(t, 1, f.exporter.calls)
}

func TestRunMonthlySkippedRunDoesNotExport(t *testing.T) {
	f := newRecapFixture(t)
	ctx := context.Background()

	_, err := f.service.RunMonthly(ctx, false)
	require.NoError(t, err)
	require.Equal(t, 1, f.exporter.calls)

	second, err := f.service.RunMonthly(ctx, false)
	require.NoError(t, err)
	assert.True(t, second.Skipped)
	assert.Equal(t, 1, f.exporter.calls)
}

func TestRunMonthlyExportFailureDoesNotFailRun(t *testing.T) {
	f := newRecapFixture(t)
	f.exporter.err = errors.New("disk full")

	result, err := f.service.RunMonthly(context.Background(), false)
	require.NoError(t, err)
	assert.False(t, result.Skipped)
	assert.Contains(t, f.store.state.LastPosts, "monthly:2025-10")
}
