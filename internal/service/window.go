package service

import (
	"fmt"
	"time"

	"github.com/noah-isme/greatday-recap-api/internal/models"
)

// Window calculation is pure calendar arithmetic over the reference
// instant's WIB civil date. time.Date normalises out-of-range day
// values, so month lengths and leap years come out right without any
// fixed day counts.

// DailyWindow returns yesterday and today as single-day boundaries.
func DailyWindow(now time.Time) models.DailyWindow {
	local := now.In(models.WIB)
	today := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, models.WIB)
	yesterday := today.AddDate(0, 0, -1)

	return models.DailyWindow{
		Yesterday: models.FormatDateYMD(yesterday),
		Today:     models.FormatDateYMD(today),
	}
}

// WeeklyWindow returns Monday through Friday of the current WIB week,
// whatever weekday the reference instant falls on.
func WeeklyWindow(now time.Time) models.ReportWindow {
	local := now.In(models.WIB)
	today := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, models.WIB)

	mondayOffset := (int(today.Weekday()) + 6) % 7
	monday := today.AddDate(0, 0, -mondayOffset)
	friday := monday.AddDate(0, 0, 4)

	return models.ReportWindow{
		Start: models.FormatDateYMD(monday),
		End:   models.FormatDateYMD(friday),
	}
}

// PreviousMonthWindow returns the first and last day of the month
// before the reference instant's month, plus its canonical key.
func PreviousMonthWindow(now time.Time) models.MonthWindow {
	local := now.In(models.WIB)

	firstOfThisMonth := time.Date(local.Year(), local.Month(), 1, 0, 0, 0, 0, models.WIB)
	lastOfPrevious := firstOfThisMonth.AddDate(0, 0, -1)
	firstOfPrevious := time.Date(lastOfPrevious.Year(), lastOfPrevious.Month(), 1, 0, 0, 0, 0, models.WIB)

	return models.MonthWindow{
		ReportWindow: models.ReportWindow{
			Start: models.FormatDateYMD(firstOfPrevious),
			End:   models.FormatDateYMD(lastOfPrevious),
		},
		MonthKey: fmt.Sprintf("%04d-%02d", lastOfPrevious.Year(), int(lastOfPrevious.Month())),
	}
}
