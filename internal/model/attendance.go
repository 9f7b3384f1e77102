package model

import (
	"sort"
	"strconv"
	"strings"
	"time"
)

type AttendanceStatus string

const (
	StatusPresent AttendanceStatus = "Present"
	StatusAbsent  AttendanceStatus = "Absent"
	StatusHalfDay AttendanceStatus = "Half Day"
	StatusLate    AttendanceStatus = "Late"
)

// NoTime marks an unset check-in or check-out.
const NoTime = "-"

const ZeroHours = "0h"

func (s AttendanceStatus) Valid() bool {
	switch s {
	case StatusPresent, StatusAbsent, StatusHalfDay, StatusLate:
		return true
	}
	return false
}

// Attended reports whether the status counts towards the attendance rate.
func (s AttendanceStatus) Attended() bool {
	return s == StatusPresent || s == StatusLate || s == StatusHalfDay
}

type AttendanceRecord struct {
	ID        int64            `json:"id"`
	Name      string           `json:"name"`
	Role      string           `json:"role"`
	Date      string           `json:"date"`
	CheckIn   string           `json:"checkIn"`
	CheckOut  string           `json:"checkOut"`
	Status    AttendanceStatus `json:"status"`
	Hours     string           `json:"hours"`
	CreatedAt time.Time        `json:"createdAt"`
	UpdatedAt time.Time        `json:"updatedAt"`
}

// AssignRecordIDs gives every record without an id the next id after the
// day's current maximum. Ids are unique within a day only.
func AssignRecordIDs(records []AttendanceRecord) []AttendanceRecord {
	var maxID int64
	for _, rec := range records {
		if rec.ID > maxID {
			maxID = rec.ID
		}
	}

	out := make([]AttendanceRecord, len(records))
	for i, rec := range records {
		if rec.ID == 0 {
			maxID++
			rec.ID = maxID
		}
		out[i] = rec
	}
	return out
}

// Normalize enforces the Absent invariant and fills empty times with NoTime.
func (r *AttendanceRecord) Normalize() {
	if r.Status == StatusAbsent {
		r.CheckIn, r.CheckOut, r.Hours = NoTime, NoTime, ZeroHours
		return
	}
	if r.CheckIn == "" {
		r.CheckIn = NoTime
	}
	if r.CheckOut == "" {
		r.CheckOut = NoTime
	}
	if r.Hours == "" {
		r.Hours = ZeroHours
	}
}

// RecomputeHours sets Hours from the hour parts of CheckIn/CheckOut, the way
// the roster editor does: |out-in| whole hours. Absent records are reset.
func (r *AttendanceRecord) RecomputeHours() {
	if r.Status == StatusAbsent {
		r.Normalize()
		return
	}
	if r.CheckIn == NoTime || r.CheckOut == NoTime || r.CheckIn == "" || r.CheckOut == "" {
		return
	}
	in, okIn := clockHour(r.CheckIn)
	out, okOut := clockHour(r.CheckOut)
	if !okIn || !okOut {
		return
	}
	diff := out - in
	if diff < 0 {
		diff = -diff
	}
	r.Hours = strconv.Itoa(diff) + "h"
}

// ParseHours reads "<N>h". ok is false for "-" or anything unparsable.
func ParseHours(hours string) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSuffix(strings.TrimSpace(hours), "h"))
	if err != nil {
		return 0, false
	}
	return n, true
}

// ClockMinutes converts "HH:MM" to minutes after midnight.
func ClockMinutes(clock string) (int, bool) {
	parts := strings.SplitN(clock, ":", 2)
	if len(parts) != 2 {
		return 0, false
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, false
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, false
	}
	return h*60 + m, true
}

func clockHour(clock string) (int, bool) {
	h, err := strconv.Atoi(strings.SplitN(clock, ":", 2)[0])
	if err != nil {
		return 0, false
	}
	return h, true
}

// AttendanceLog groups rosters by ISO date.
type AttendanceLog map[string][]AttendanceRecord

// Dates returns the log's dates, newest first.
func (l AttendanceLog) Dates() []string {
	dates := make([]string, 0, len(l))
	for d := range l {
		dates = append(dates, d)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(dates)))
	return dates
}

// Find returns the first record for name on date.
func (l AttendanceLog) Find(date, name string) (AttendanceRecord, bool) {
	for _, r := range l[date] {
		if r.Name == name {
			return r, true
		}
	}
	return AttendanceRecord{}, false
}

type AttendanceAnalytics struct {
	TotalDays      int     `json:"totalDays"`
	PresentDays    int     `json:"presentDays"`
	AbsentDays     int     `json:"absentDays"`
	LateDays       int     `json:"lateDays"`
	HalfDays       int     `json:"halfDays"`
	AttendanceRate float64 `json:"attendanceRate"`
}

// Count tallies one status into the counters.
func (a *AttendanceAnalytics) Count(status AttendanceStatus) {
	a.TotalDays++
	switch status {
	case StatusPresent:
		a.PresentDays++
	case StatusAbsent:
		a.AbsentDays++
	case StatusLate:
		a.LateDays++
	case StatusHalfDay:
		a.HalfDays++
	}
}

// Finish computes AttendanceRate; zero days yields 0.
func (a *AttendanceAnalytics) Finish() {
	a.AttendanceRate = AttendanceRate(a.PresentDays, a.LateDays, a.HalfDays, a.TotalDays)
}

func AttendanceRate(present, late, half, total int) float64 {
	if total <= 0 {
		return 0
	}
	return float64(present+late+half) / float64(total) * 100
}

type MonthlyStats struct {
	Present int `json:"present"`
	Absent  int `json:"absent"`
	Late    int `json:"late"`
	HalfDay int `json:"halfDay"`
}

// ShiftStart is the on-time check-in cutoff.
const ShiftStart = "08:00"

// LateMinutes is how far checkIn falls after ShiftStart; never negative.
func LateMinutes(checkIn string) int {
	if checkIn == NoTime || checkIn == "" {
		return 0
	}
	m, ok := ClockMinutes(checkIn)
	if !ok {
		return 0
	}
	start, _ := ClockMinutes(ShiftStart)
	if m <= start {
		return 0
	}
	return m - start
}
