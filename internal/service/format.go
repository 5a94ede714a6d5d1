package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/noah-isme/greatday-recap-api/internal/models"
)

// Formatter renders recap summaries into the message text handed to
// the webhook sink.
type Formatter struct {
	maxLinesPerSection int
	topN               int
}

// NewFormatter constructs a formatter. Zero values fall back to the
// historical 30-line section cap and top-5 rankings.
func NewFormatter(maxLinesPerSection, topN int) *Formatter {
	if maxLinesPerSection <= 0 {
		maxLinesPerSection = 30
	}
	if topN <= 0 {
		topN = 5
	}
	return &Formatter{maxLinesPerSection: maxLinesPerSection, topN: topN}
}

var indonesianWeekdays = map[time.Weekday]string{
	time.Sunday:    "Minggu",
	time.Monday:    "Senin",
	time.Tuesday:   "Selasa",
	time.Wednesday: "Rabu",
	time.Thursday:  "Kamis",
	time.Friday:    "Jumat",
	time.Saturday:  "Sabtu",
}

var indonesianMonths = map[time.Month]string{
	time.January:   "Januari",
	time.February:  "Februari",
	time.March:     "Maret",
	time.April:     "April",
	time.May:       "Mei",
	time.June:      "Juni",
	time.July:      "Juli",
	time.August:    "Agustus",
	time.September: "September",
	time.October:   "Oktober",
	time.November:  "November",
	time.December:  "Desember",
}

// labelDate prefixes a canonical day string with its Indonesian
// weekday name.
func labelDate(day string) string {
	t, err := time.Parse(models.DateLayout, day)
	if err != nil {
		return day
	}
	return fmt.Sprintf("%s, %s", indonesianWeekdays[t.Weekday()], day)
}

// labelMonth renders a "YYYY-MM" key as an Indonesian month name.
func labelMonth(monthKey string) string {
	t, err := time.Parse("2006-01", monthKey)
	if err != nil {
		return monthKey
	}
	return fmt.Sprintf("%s %d", indonesianMonths[t.Month()], t.Year())
}

// treeSection renders a header plus capped item lines. An empty section
// still renders with a "-" placeholder so every heading always appears.
func (f *Formatter) treeSection(header string, items []string) []string {
	lines := []string{header}

	if len(items) == 0 {
		lines = append(lines, "└─ ◦ -")
		return lines
	}

	shown := items
	remaining := 0
	if len(items) > f.maxLinesPerSection {
		shown = items[:f.maxLinesPerSection]
		remaining = len(items) - f.maxLinesPerSection
	}

	for _, item := range shown {
		lines = append(lines, "└─ "+item)
	}
	if remaining > 0 {
		lines = append(lines, fmt.Sprintf("└─ ◦ ... dan %d lainnya", remaining))
	}
	return lines
}

// lateLine renders a tardiness entry, switching to seconds for
// sub-minute lateness.
func lateLine(name string, minutesLate, secondsLate int) string {
	if secondsLate > 0 && secondsLate < 60 {
		return fmt.Sprintf("👤 %s ⏱️ %d detik", name, secondsLate)
	}
	return fmt.Sprintf("👤 %s ⏱️ %d menit", name, minutesLate)
}

// Daily renders the daily recap: yesterday's final numbers plus the
// morning monitoring block for today.
func (f *Formatter) Daily(summary models.DailySummary, idx *EmployeeIndex) string {
	var parts []string

	approvedLines := make([]string, 0, len(summary.ApprovedLeavesYesterday))
	for _, l := range summary.ApprovedLeavesYesterday {
		approvedLines = append(approvedLines, "👤 "+idx.DisplayName(l.Identity, l.FullName))
	}

	absentLines := make([]string, 0, len(summary.AbsencesYesterday))
	for _, r := range summary.AbsencesYesterday {
		absentLines = append(absentLines, "👤 "+idx.DisplayName(r.Identity, r.FullName))
	}

	lateYesterdayLines := make([]string, 0, len(summary.TardinessYesterday))
	for _, t := range summary.TardinessYesterday {
		lateYesterdayLines = append(lateYesterdayLines, lateLine(idx.DisplayName(t.Record.Identity, t.Record.FullName), t.MinutesLate, t.SecondsLate))
	}

	earlyLeaveLines := make([]string, 0, len(summary.EarlyLeavesYesterday))
	for _, e := range summary.EarlyLeavesYesterday {
		earlyLeaveLines = append(earlyLeaveLines, fmt.Sprintf("👤 %s - %dm", idx.DisplayName(e.Record.Identity, e.Record.FullName), e.MinutesEarly))
	}

	overtimeLines := make([]string, 0, len(summary.OvertimeYesterdayAgg))
	for _, o := range summary.OvertimeYesterdayAgg {
		overtimeLines = append(overtimeLines, fmt.Sprintf("👤 %s  🌙 %dm", idx.DisplayName(o.Identity, o.Name), o.TotalMinutes))
	}

	notPresentLines := make([]string, 0, len(summary.NotPresentToday))
	for _, e := range summary.NotPresentToday {
		notPresentLines = append(notPresentLines, "👤 "+idx.DisplayName(e.Identity, e.DisplayName()))
	}

	pendingLines := make([]string, 0, len(summary.PendingLeavesToday))
	for _, l := range summary.PendingLeavesToday {
		pendingLines = append(pendingLines, "👤 "+idx.DisplayName(l.Identity, l.FullName))
	}

	lateTodayLines := make([]string, 0, len(summary.TardinessToday))
	for _, t := range summary.TardinessToday {
		lateTodayLines = append(lateTodayLines, lateLine(idx.DisplayName(t.Record.Identity, t.Record.FullName), t.MinutesLate, t.SecondsLate))
	}

	parts = append(parts, fmt.Sprintf("**📌 Rekap Final (%s)**", labelDate(summary.Yesterday)))
	parts = append(parts, "────────────────────────", "")

	parts = append(parts, f.treeSection(fmt.Sprintf("✅ Approved absence (cuti/izin/sakit): %d", len(summary.ApprovedLeavesYesterday)), approvedLines)...)
	parts = append(parts, "")
	parts = append(parts, f.treeSection(fmt.Sprintf("❌ Absent/Alpha: %d", len(summary.AbsencesYesterday)), absentLines)...)
	parts = append(parts, "")
	parts = append(parts, f.treeSection(fmt.Sprintf("⏰ Telat: %d", len(summary.TardinessYesterday)), lateYesterdayLines)...)
	parts = append(parts, "")
	parts = append(parts, f.treeSection(fmt.Sprintf("🏃 Pulang awal: %d", len(summary.EarlyLeavesYesterday)), earlyLeaveLines)...)
	parts = append(parts, "")
	parts = append(parts, f.treeSection(fmt.Sprintf("🕒 Lembur (approved): %d", len(summary.OvertimeYesterdayAgg)), overtimeLines)...)
	parts = append(parts, "")

	parts = append(parts, "━━━━━━━━━━━━━━━━━━━━━━━━", "")

	parts = append(parts, fmt.Sprintf("**📌 Monitoring Pagi (%s • 09:00)**", labelDate(summary.Today)))
	parts = append(parts, "────────────────────────", "")

	parts = append(parts, f.treeSection(fmt.Sprintf("🕗 Belum hadir: %d", len(summary.NotPresentToday)), notPresentLines)...)
	parts = append(parts, "")
	parts = append(parts, f.treeSection(fmt.Sprintf("📄 Pending leave: %d", len(summary.PendingLeavesToday)), pendingLines)...)
	parts = append(parts, "")
	parts = append(parts, f.treeSection(fmt.Sprintf("⏰ Telat (hari ini): %d", len(summary.TardinessToday)), lateTodayLines)...)
	parts = append(parts, "")

	parts = append(parts, "ℹ️ Catatan: Data hari ini masih bisa berubah kalau ada approve/reject baru dari HR.")

	return strings.Join(parts, "\n")
}

// Weekly renders the Monday-to-Friday recap.
func (f *Formatter) Weekly(agg models.WindowAggregates, idx *EmployeeIndex) string {
	var parts []string

	parts = append(parts, fmt.Sprintf("**📌 Rekap Mingguan (%s s/d %s)**", agg.Start, agg.End))
	parts = append(parts, "────────────────────────", "")

	lateLines := make([]string, 0, len(agg.TardinessAgg))
	for _, t := range agg.TardinessAgg {
		lateLines = append(lateLines, fmt.Sprintf("👤 %s - %dx (%dm)", idx.DisplayName(t.Identity, t.Name), t.Count, t.TotalMinutes))
	}

	overtimeLines := make([]string, 0, len(agg.OvertimeAgg))
	for _, o := range agg.OvertimeAgg {
		overtimeLines = append(overtimeLines, fmt.Sprintf("👤 %s - %dx (%dm)", idx.DisplayName(o.Identity, o.Name), o.Count, o.TotalMinutes))
	}

	leaveLines := make([]string, 0, len(agg.LeaveAgg))
	for _, l := range agg.LeaveAgg {
		leaveLines = append(leaveLines, fmt.Sprintf("👤 %s - %dx", idx.DisplayName(l.Identity, l.Name), l.Count))
	}

	parts = append(parts, f.treeSection(fmt.Sprintf("⏰ Telat (total per orang): %d", len(agg.TardinessAgg)), lateLines)...)
	parts = append(parts, "")
	parts = append(parts, f.treeSection(fmt.Sprintf("🕒 Lembur (total per orang): %d", len(agg.OvertimeAgg)), overtimeLines)...)
	parts = append(parts, "")
	parts = append(parts, f.treeSection(fmt.Sprintf("✅ Cuti approved (per orang): %d", len(agg.LeaveAgg)), leaveLines)...)

	return strings.Join(parts, "\n")
}

// MonthlyInput carries everything the monthly recap renders.
type MonthlyInput struct {
	MonthKey      string
	TardinessTop  []models.AggregateRow
	OvertimeTop   []models.AggregateRow
	Aggregates    models.WindowAggregates
	EmployeeCount int
}

// Monthly renders the previous-month recap with totals and top-N
// rankings.
func (f *Formatter) Monthly(in MonthlyInput, idx *EmployeeIndex) string {
	var parts []string

	totalLateCount := 0
	totalLateMinutes := 0
	for _, t := range in.Aggregates.TardinessAgg {
		totalLateCount += t.Count
		totalLateMinutes += t.TotalMinutes
	}
	totalOvertimeMinutes := 0
	for _, o := range in.Aggregates.OvertimeAgg {
		totalOvertimeMinutes += o.TotalMinutes
	}
	totalOvertimeHours := float64(totalOvertimeMinutes) / 60

	parts = append(parts, fmt.Sprintf("**📌 Rekap Bulanan (%s)**", labelMonth(in.MonthKey)))
	parts = append(parts, "────────────────────────", "")

	parts = append(parts, fmt.Sprintf("👥 Total karyawan: %d", in.EmployeeCount))
	parts = append(parts, fmt.Sprintf("⏰ Telat: %d (total %dm)", totalLateCount, totalLateMinutes))
	parts = append(parts, fmt.Sprintf("❌ Absent/Alpha: %d", len(in.Aggregates.Absences)))
	parts = append(parts, fmt.Sprintf("✅ Approved absence (cuti/izin/sakit): %d hari", in.Aggregates.TotalLeaveDays))
	parts = append(parts, fmt.Sprintf("🕒 Lembur (approved): %dm (%.1f jam)", totalOvertimeMinutes, totalOvertimeHours))
	parts = append(parts, "")

	topLateLines := make([]string, 0, len(in.TardinessTop))
	for i, t := range in.TardinessTop {
		topLateLines = append(topLateLines, fmt.Sprintf("#%d %s - %dx (%dm)", i+1, idx.DisplayName(t.Identity, t.Name), t.Count, t.TotalMinutes))
	}

	topOvertimeLines := make([]string, 0, len(in.OvertimeTop))
	for i, o := range in.OvertimeTop {
		topOvertimeLines = append(topOvertimeLines, fmt.Sprintf("#%d %s - %dm (%.1f jam)", i+1, idx.DisplayName(o.Identity, o.Name), o.TotalMinutes, float64(o.TotalMinutes)/60))
	}

	parts = append(parts, f.treeSection(fmt.Sprintf("⏰ Top %d Telat", f.topN), topLateLines)...)
	parts = append(parts, "")
	parts = append(parts, f.treeSection(fmt.Sprintf("🕒 Top %d Lembur", f.topN), topOvertimeLines)...)

	return strings.Join(parts, "\n")
}
