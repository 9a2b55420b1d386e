package analytics

import "time"

// DayKeyFormat is the calendar-day granularity used for attendance and logs.
const DayKeyFormat = "2006-01-02"

// WeekDayLabels in anchor-week order, Monday first.
var WeekDayLabels = [7]string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

func DayKey(t time.Time) string {
	return t.Format(DayKeyFormat)
}

// ParseDayKey parses a calendar-day key. The zero time and false are
// returned for malformed input.
func ParseDayKey(key string) (time.Time, bool) {
	t, err := time.Parse(DayKeyFormat, key)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// AnchorWeek returns the day keys of the Monday-starting 7-day span
// containing t. Sunday is treated as day 7 of the preceding week.
func AnchorWeek(t time.Time) [7]string {
	wd := int(t.Weekday())
	if wd == 0 {
		wd = 7
	}
	monday := t.AddDate(0, 0, -(wd - 1))
	monday = time.Date(monday.Year(), monday.Month(), monday.Day(), 0, 0, 0, 0, t.Location())

	var week [7]string
	for i := 0; i < 7; i++ {
		week[i] = DayKey(monday.AddDate(0, 0, i))
	}
	return week
}

// WeekDayBucket is one derived day of the anchor week. It is never stored;
// every read recomputes it from the logs.
type WeekDayBucket struct {
	Day   string `json:"day"`
	Value int    `json:"value"`
}
