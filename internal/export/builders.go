package export

import (
	"strconv"
	"strings"
	"time"

	"github.com/bharatsutharx/radiology-center-2/internal/model"
)

const timestampLayout = "2006-01-02 15:04:05"

func stamp(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(timestampLayout)
}

// AttendanceReport lists every record dated in [startDate, endDate], newest
// day first.
func AttendanceReport(data model.AttendanceLog, startDate, endDate string) *Report {
	r := &Report{
		Title:    "Attendance Report",
		Sheet:    "Attendance Report",
		Period:   startDate + " to " + endDate,
		Basename: "attendance_" + startDate + "_to_" + endDate,
		Columns:  []string{"Date", "Staff Name", "Role", "Check In", "Check Out", "Hours Worked", "Status", "Last Updated"},
		Rows:     [][]string{},
		PDFColumns: []PDFColumn{
			{0, "Date"}, {1, "Staff Name"}, {2, "Role"}, {3, "Check In"},
			{4, "Check Out"}, {5, "Hours"}, {6, "Status"},
		},
	}

	for _, date := range data.Dates() {
		if !model.InRange(date, startDate, endDate) {
			continue
		}
		for _, rec := range data[date] {
			r.Rows = append(r.Rows, []string{
				date, rec.Name, rec.Role, rec.CheckIn, rec.CheckOut, rec.Hours, string(rec.Status), stamp(rec.UpdatedAt),
			})
		}
	}
	return r
}

func InventoryReport(items []model.InventoryItem) *Report {
	r := &Report{
		Title:    "Inventory Report",
		Sheet:    "Inventory Report",
		Basename: "inventory",
		Columns:  []string{"Item Name", "Category", "Current Quantity", "Minimum Stock", "Unit", "Status", "Last Updated", "History Count"},
		Rows:     [][]string{},
		PDFColumns: []PDFColumn{
			{0, "Item Name"}, {1, "Category"}, {2, "Quantity"},
			{3, "Min Stock"}, {4, "Unit"}, {5, "Status"},
		},
	}

	for _, item := range items {
		r.Rows = append(r.Rows, []string{
			item.Name,
			item.Category,
			strconv.Itoa(item.Quantity),
			strconv.Itoa(item.MinStock),
			item.Unit,
			model.DeriveStatus(item.Quantity, item.MinStock),
			stamp(item.LastUpdated),
			strconv.Itoa(len(item.History)),
		})
	}
	return r
}

// StaffPerformanceReport has one row per record, in the order given.
func StaffPerformanceReport(records []model.AttendanceRecord, staffName, startDate, endDate string) *Report {
	r := &Report{
		Title:    staffName + " - Performance Report",
		Sheet:    staffName + " Performance",
		Period:   startDate + " to " + endDate,
		Basename: strings.Join(strings.Fields(staffName), "-") + "-performance-" + startDate + "-to-" + endDate,
		Columns:  []string{"Date", "Day of Week", "Check In", "Check Out", "Hours Worked", "Status", "Late Minutes"},
		Rows:     [][]string{},
		PDFColumns: []PDFColumn{
			{0, "Date"}, {1, "Day"}, {2, "Check In"},
			{3, "Check Out"}, {4, "Hours"}, {5, "Status"},
		},
	}

	for _, rec := range records {
		late := 0
		if rec.Status == model.StatusLate {
			late = model.LateMinutes(rec.CheckIn)
		}
		r.Rows = append(r.Rows, []string{
			rec.Date, weekday(rec.Date), rec.CheckIn, rec.CheckOut, rec.Hours, string(rec.Status), strconv.Itoa(late),
		})
	}
	return r
}

func weekday(date string) string {
	t, err := time.Parse(model.DateLayout, date)
	if err != nil {
		return ""
	}
	return t.Weekday().String()
}
