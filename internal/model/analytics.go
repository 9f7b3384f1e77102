package model

type StaffAnalytics struct {
	Name                  string             `json:"name"`
	Role                  string             `json:"role"`
	TotalDays             int                `json:"totalDays"`
	PresentDays           int                `json:"presentDays"`
	AbsentDays            int                `json:"absentDays"`
	LateDays              int                `json:"lateDays"`
	HalfDays              int                `json:"halfDays"`
	AttendanceRate        float64            `json:"attendanceRate"`
	AverageHours          float64            `json:"averageHours"`
	LateMinutes           int                `json:"lateMinutes"`
	PerfectAttendanceDays int                `json:"perfectAttendanceDays"`
	LongestAbsentStreak   int                `json:"longestAbsentStreak"`
	MonthlyBreakdown      []MonthlyBreakdown `json:"monthlyBreakdown"`
	RecentActivity        []AttendanceRecord `json:"recentActivity"`
	PerformanceGrade      string             `json:"performanceGrade"`
	Recommendations       []string           `json:"recommendations"`
}

type MonthlyBreakdown struct {
	Month          string  `json:"month"`
	Present        int     `json:"present"`
	Absent         int     `json:"absent"`
	Late           int     `json:"late"`
	HalfDay        int     `json:"halfDay"`
	TotalDays      int     `json:"totalDays"`
	AttendanceRate float64 `json:"attendanceRate"`
}

type StaffComparison struct {
	Name             string  `json:"name"`
	Role             string  `json:"role"`
	AttendanceRate   float64 `json:"attendanceRate"`
	PresentDays      int     `json:"presentDays"`
	AbsentDays       int     `json:"absentDays"`
	PerformanceGrade string  `json:"performanceGrade"`
}
