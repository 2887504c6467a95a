// Package letime provides the wall-clock timestamp type shared by every
// element in the graph. A Time is a decomposed calendar instant (year
// since 1970, day of year, hour, minute, second, sub-second) rather than
// a single scalar so that elements can print human-readable timestamps
// without repeated division, while still supporting exact sub-second
// arithmetic down to a nanosecond.
package letime

import (
	"fmt"
	"time"
)

// SubSecondFraction is the number of sub-second units per second. Fixed
// for the build: a sub-second value is always expressed in nanoseconds.
const SubSecondFraction = 1_000_000_000

var daysInMonth = [12]uint8{31, 28, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}

// Time is an immutable point in time. The zero value is a valid Time
// representing 1970-01-01T00:00:00.
type Time struct {
	year      uint16 // years since 1970
	day       uint16 // day of year, 0..365
	hour      uint8
	minute    uint8
	second    uint8
	subSecond uint32 // 0..SubSecondFraction-1
}

// New builds a Time directly from its components. No validation is
// performed beyond what callers provide; Align should be used when field
// values may be out of range (e.g. decoded from an external clock).
func New(year, day uint16, hour, minute, second uint8, subSecond uint32) Time {
	return Time{year: year, day: day, hour: hour, minute: minute, second: second, subSecond: subSecond}
}

// IsLeapYear reports whether year (years since 1970, i.e. the raw field
// stored in a Time) is a leap year when interpreted as a Gregorian year.
func IsLeapYear(year uint16) bool {
	y := uint32(year) + 1970
	if y%4 != 0 {
		return false
	}
	if y%100 != 0 {
		return true
	}
	return y%400 == 0
}

// DaysInYear returns 366 for a leap year, 365 otherwise.
func DaysInYear(year uint16) uint16 {
	if IsLeapYear(year) {
		return 366
	}
	return 365
}

// DaysInMonth returns the day count for month (0=January..11=December) of
// the given year.
func DaysInMonth(year uint16, month uint8) uint8 {
	if month == 1 && IsLeapYear(year) {
		return 29
	}
	return daysInMonth[month]
}

// Year, Day, Hour, Minute, Second, and SubSecond expose the decomposed
// fields of the Time.
func (t Time) Year() uint16      { return t.year }
func (t Time) Day() uint16       { return t.day }
func (t Time) Hour() uint8       { return t.hour }
func (t Time) Minute() uint8     { return t.minute }
func (t Time) Second() uint8     { return t.second }
func (t Time) SubSecond() uint32 { return t.subSecond }

// Add returns t advanced by the calendar distance represented by other,
// carrying sub-second overflow through second, minute, hour, day, and
// year using each year's actual day count.
func (t Time) Add(other Time) Time {
	r := t

	sub := uint64(r.subSecond) + uint64(other.subSecond)
	carry := uint32(sub / SubSecondFraction)
	r.subSecond = uint32(sub % SubSecondFraction)

	sec := uint32(r.second) + uint32(other.second) + carry
	carry = sec / 60
	r.second = uint8(sec % 60)

	min := uint32(r.minute) + uint32(other.minute) + carry
	carry = min / 60
	r.minute = uint8(min % 60)

	hr := uint32(r.hour) + uint32(other.hour) + carry
	carry = hr / 24
	r.hour = uint8(hr % 24)

	day := uint32(r.day) + uint32(other.day) + carry
	year := r.year + other.year
	for {
		dim := uint32(DaysInYear(year))
		if day < dim {
			break
		}
		day -= dim
		year++
	}
	r.day = uint16(day)
	r.year = year
	return r
}

// Sub returns t-other as a signed count of whole microseconds.
func (t Time) Sub(other Time) int64 {
	return int64(t.ToNanosecondsSinceEpoch()/1000) - int64(other.ToNanosecondsSinceEpoch()/1000)
}

// Align overwrites the field values directly (e.g. from an external time
// source) and returns the drift, in microseconds, between the prior
// contents of t and the newly aligned value.
func (t *Time) Align(subSecond uint32, second, minute, hour uint8, day, year uint16) int32 {
	prior := *t
	t.subSecond = subSecond
	t.second = second
	t.minute = minute
	t.hour = hour
	t.day = day
	t.year = year
	return int32(t.Sub(prior))
}

// HasElapsed reports whether t is at or after other.
func (t Time) HasElapsed(other Time) bool {
	return t.Sub(other) >= 0
}

// ToNanosecondsSinceEpoch converts t to nanoseconds since 1970-01-01.
func (t Time) ToNanosecondsSinceEpoch() uint64 {
	var days uint64
	for y := uint16(0); y < t.year; y++ {
		days += uint64(DaysInYear(y))
	}
	days += uint64(t.day)
	secs := days*86400 + uint64(t.hour)*3600 + uint64(t.minute)*60 + uint64(t.second)
	return secs*SubSecondFraction + uint64(t.subSecond)
}

// ToMicrosecondsSinceEpoch converts t to microseconds since 1970-01-01.
func (t Time) ToMicrosecondsSinceEpoch() uint64 {
	return t.ToNanosecondsSinceEpoch() / 1000
}

// FromSeconds decomposes a (possibly large, fractional) duration given
// in seconds into a Time suitable for passing to Add as a relative
// offset — every field carries correctly regardless of how large
// seconds is, unlike constructing a Time field-by-field by hand.
func FromSeconds(seconds float64) Time {
	if seconds < 0 {
		seconds = 0
	}
	totalSub := uint64(seconds * SubSecondFraction)
	sub := uint32(totalSub % SubSecondFraction)
	totalSeconds := totalSub / SubSecondFraction
	sec := uint8(totalSeconds % 60)
	totalMinutes := totalSeconds / 60
	min := uint8(totalMinutes % 60)
	totalHours := totalMinutes / 60
	hr := uint8(totalHours % 24)
	day := uint16(totalHours / 24)
	return Time{day: day, hour: hr, minute: min, second: sec, subSecond: sub}
}

// GetTime samples the host wall clock (time.Now, in UTC) and returns the
// corresponding Time, decomposed against the Unix epoch. It does not use
// a monotonic clock reading, so a step of the wall clock shows up in the
// returned Time.
func GetTime() Time {
	return FromStdTime(time.Now().UTC())
}

// FromStdTime decomposes a standard library time.Time (interpreted in
// UTC) into a Time. Years before 1970 are clamped to the epoch.
func FromStdTime(tt time.Time) Time {
	tt = tt.UTC()
	year := tt.Year() - 1970
	if year < 0 {
		year = 0
	}
	return Time{
		year:      uint16(year),
		day:       uint16(tt.YearDay() - 1),
		hour:      uint8(tt.Hour()),
		minute:    uint8(tt.Minute()),
		second:    uint8(tt.Second()),
		subSecond: uint32(tt.Nanosecond()),
	}
}

// PrintShortTime writes "hh:mm:ss.uuuuuu" into buf, truncating to the
// buffer's length, and returns the number of bytes written.
func (t Time) PrintShortTime(buf []byte) uint16 {
	s := fmt.Sprintf("%02d:%02d:%02d.%06d", t.hour, t.minute, t.second, t.subSecond/1000)
	n := copy(buf, s)
	return uint16(n)
}

// String implements fmt.Stringer with the short time format.
func (t Time) String() string {
	buf := make([]byte, 32)
	n := t.PrintShortTime(buf)
	return string(buf[:n])
}
