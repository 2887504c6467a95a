package letime

import (
	"testing"

	"github.com/go-test/deep"
)

func TestIsLeapYear(t *testing.T) {
	tests := []struct {
		year uint16 // since 1970
		want bool
	}{
		{30, true},  // 2000
		{31, false}, // 2001
		{54, true},  // 2024
		{130, false}, // 2100, century non-leap
	}
	for _, tt := range tests {
		if got := IsLeapYear(tt.year); got != tt.want {
			t.Errorf("IsLeapYear(%d) = %v, want %v", tt.year, got, tt.want)
		}
	}
}

func TestAddCarries(t *testing.T) {
	base := New(0, 0, 23, 59, 59, 999_999_999)
	got := base.Add(New(0, 0, 0, 0, 0, 2))
	want := New(0, 1, 0, 0, 0, 1)
	if diff := deep.Equal(got, want); diff != nil {
		t.Errorf("Add carry mismatch: %v", diff)
	}
}

func TestAddAcrossYearBoundary(t *testing.T) {
	// Day 364 of a non-leap year (365 days) plus one day rolls into next year.
	base := New(1, 364, 0, 0, 0, 0)
	got := base.Add(New(0, 1, 0, 0, 0, 0))
	if got.Year() != 2 || got.Day() != 0 {
		t.Errorf("Add across year boundary = year %d day %d, want year 2 day 0", got.Year(), got.Day())
	}
}

func TestSubMicroseconds(t *testing.T) {
	a := New(0, 0, 0, 0, 1, 500_000_000)
	b := New(0, 0, 0, 0, 1, 0)
	if got := a.Sub(b); got != 500_000 {
		t.Errorf("Sub = %d us, want 500000", got)
	}
	if got := b.Sub(a); got != -500_000 {
		t.Errorf("Sub (reversed) = %d us, want -500000", got)
	}
}

func TestHasElapsed(t *testing.T) {
	earlier := New(0, 0, 0, 0, 1, 0)
	later := New(0, 0, 0, 0, 2, 0)
	if !later.HasElapsed(earlier) {
		t.Error("later.HasElapsed(earlier) = false, want true")
	}
	if earlier.HasElapsed(later) {
		t.Error("earlier.HasElapsed(later) = true, want false")
	}
	if !earlier.HasElapsed(earlier) {
		t.Error("HasElapsed should be >= (reflexive)")
	}
}

func TestAlignDrift(t *testing.T) {
	tt := New(0, 0, 0, 0, 10, 0)
	drift := tt.Align(0, 11, 0, 0, 0, 0)
	if drift != 1_000_000 {
		t.Errorf("Align drift = %d, want 1000000", drift)
	}
	if tt.Second() != 11 {
		t.Errorf("Align did not set fields: second = %d, want 11", tt.Second())
	}
}

func TestPrintShortTime(t *testing.T) {
	tt := New(0, 0, 1, 2, 3, 456_000_000)
	buf := make([]byte, 32)
	n := tt.PrintShortTime(buf)
	got := string(buf[:n])
	want := "01:02:03.456000"
	if got != want {
		t.Errorf("PrintShortTime = %q, want %q", got, want)
	}
}
