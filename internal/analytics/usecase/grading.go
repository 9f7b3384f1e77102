package usecase

const (
	RecommendAttendance = "Improve overall attendance rate - currently below acceptable standards"
	RecommendPunctual   = "Focus on punctuality - consider adjusting morning routine"
	RecommendAbsences   = "Reduce unplanned absences - consider health and wellness programs"
	RecommendSchedule   = "Consistent tardiness pattern detected - may need schedule adjustment"
	RecommendRecognise  = "Excellent attendance record - consider for recognition programs"
	RecommendMaintain   = "Good performance overall - maintain current standards"
)

type gradeStep struct {
	grade         string
	minRate       float64
	maxLate       int // exclusive; 0 means unbounded
	maxAbsentDays int // inclusive; -1 means unbounded
}

// Checked in order; the first step that matches wins.
var gradeLadder = []gradeStep{
	{"A+", 95, 30, 2},
	{"A", 90, 60, 4},
	{"B+", 85, 120, 6},
	{"B", 80, 180, 8},
	{"C+", 75, 240, 10},
	{"C", 70, 0, -1},
}

func performanceGrade(rate float64, lateMinutes, absentDays int) string {
	for _, s := range gradeLadder {
		if rate < s.minRate {
			continue
		}
		if s.maxLate > 0 && lateMinutes >= s.maxLate {
			continue
		}
		if s.maxAbsentDays >= 0 && absentDays > s.maxAbsentDays {
			continue
		}
		return s.grade
	}
	return "D"
}

func recommendations(rate float64, lateMinutes, absentDays, lateDays int) []string {
	var out []string
	if rate < 80 {
		out = append(out, RecommendAttendance)
	}
	if lateMinutes > 120 {
		out = append(out, RecommendPunctual)
	}
	if absentDays > 5 {
		out = append(out, RecommendAbsences)
	}
	if lateDays > 10 {
		out = append(out, RecommendSchedule)
	}
	if rate >= 95 {
		out = append(out, RecommendRecognise)
	}
	if len(out) == 0 {
		out = append(out, RecommendMaintain)
	}
	return out
}
