package dashboard

import (
	"testing"
	"time"
)

func TestBoundsFor_MidMonth(t *testing.T) {
	now := time.Date(2024, 1, 15, 13, 45, 0, 0, time.UTC)
	b := BoundsFor(now)

	if want := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC); !b.FirstDayThisMonth.Equal(want) {
		t.Errorf("FirstDayThisMonth = %v, want %v", b.FirstDayThisMonth, want)
	}
	if want := time.Date(2023, 12, 1, 0, 0, 0, 0, time.UTC); !b.FirstDayLastMonth.Equal(want) {
		t.Errorf("FirstDayLastMonth = %v, want %v", b.FirstDayLastMonth, want)
	}
	if !b.LastDayLastMonth.Before(b.FirstDayThisMonth) {
		t.Error("LastDayLastMonth must precede FirstDayThisMonth")
	}
	if b.LastDayLastMonth.Month() != time.December || b.LastDayLastMonth.Day() != 31 {
		t.Errorf("LastDayLastMonth = %v, want Dec 31", b.LastDayLastMonth)
	}
}

func TestBoundsFor_YearRollover(t *testing.T) {
	// January's previous month is December of the prior year.
	b := BoundsFor(time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC))
	if b.FirstDayLastMonth.Year() != 2023 {
		t.Errorf("FirstDayLastMonth year = %d, want 2023", b.FirstDayLastMonth.Year())
	}
}

func TestTrailingMonths_OrderAndBounds(t *testing.T) {
	now := time.Date(2024, 3, 20, 0, 0, 0, 0, time.UTC)
	windows := TrailingMonths(now, 3)

	if len(windows) != 3 {
		t.Fatalf("len = %d, want 3", len(windows))
	}
	wantStarts := []time.Time{
		time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
	}
	for i, w := range windows {
		if !w.Start.Equal(wantStarts[i]) {
			t.Errorf("window %d start = %v, want %v", i, w.Start, wantStarts[i])
		}
		if !w.End.Equal(w.Start.AddDate(0, 1, 0)) {
			t.Errorf("window %d end = %v, want one month after start", i, w.End)
		}
	}
}

func TestTrailingMonths_YearBoundary(t *testing.T) {
	windows := TrailingMonths(time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC), 2)
	if windows[0].Start.Year() != 2023 || windows[0].Start.Month() != time.December {
		t.Errorf("oldest window start = %v, want Dec 2023", windows[0].Start)
	}
	if windows[0].Label() != "Dec 2023" {
		t.Errorf("Label = %q, want %q", windows[0].Label(), "Dec 2023")
	}
}

func TestMonthWindow_Contains(t *testing.T) {
	w := MonthWindow{
		Start: time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
	}
	if !w.Contains(w.Start) {
		t.Error("window start is inclusive")
	}
	if w.Contains(w.End) {
		t.Error("window end is exclusive")
	}
	if !w.Contains(time.Date(2024, 2, 29, 23, 59, 59, 0, time.UTC)) {
		t.Error("leap day should fall inside February's window")
	}
}

func TestMonthWindow_Label(t *testing.T) {
	w := MonthWindow{Start: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	if w.Label() != "Jan 2024" {
		t.Errorf("Label = %q, want %q", w.Label(), "Jan 2024")
	}
}
