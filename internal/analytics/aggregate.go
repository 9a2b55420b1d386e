package analytics

import "crewops/internal/models"

// WeeklyTotals buckets logs into the 7 days of the anchor week, summing
// Quantity per matching day key. Days without logs yield 0.
func WeeklyTotals(logs []*models.ActivityLog, week [7]string) []WeekDayBucket {
	totals := make(map[string]int, 7)
	for _, log := range logs {
		totals[log.DateKey] += log.Quantity
	}
	buckets := make([]WeekDayBucket, 7)
	for i, key := range week {
		buckets[i] = WeekDayBucket{Day: WeekDayLabels[i], Value: totals[key]}
	}
	return buckets
}

// WriterWeekly buckets writer items by creation day, one point per item.
func WriterWeekly(items []*models.WriterItem, week [7]string) []WeekDayBucket {
	counts := make(map[string]int, 7)
	for _, item := range items {
		counts[item.DateKey]++
	}
	buckets := make([]WeekDayBucket, 7)
	for i, key := range week {
		buckets[i] = WeekDayBucket{Day: WeekDayLabels[i], Value: counts[key]}
	}
	return buckets
}

// DownDays returns the buckets at or below the threshold, in week order.
func DownDays(buckets []WeekDayBucket, threshold int) []WeekDayBucket {
	result := make([]WeekDayBucket, 0)
	for _, b := range buckets {
		if b.Value <= threshold {
			result = append(result, b)
		}
	}
	return result
}

// BestDay returns the bucket with the strictly maximal value. Ties keep
// the earliest day because the running best is only replaced on a strict
// increase. ok is false for an empty series.
func BestDay(buckets []WeekDayBucket) (WeekDayBucket, bool) {
	if len(buckets) == 0 {
		return WeekDayBucket{}, false
	}
	best := buckets[0]
	for _, b := range buckets[1:] {
		if b.Value > best.Value {
			best = b
		}
	}
	return best, true
}

// CombinedActivity sums the three role series per weekday. Short or nil
// series contribute 0 for the missing days.
func CombinedActivity(editor, shooter, writer []WeekDayBucket) []WeekDayBucket {
	buckets := make([]WeekDayBucket, 7)
	for i := 0; i < 7; i++ {
		buckets[i] = WeekDayBucket{
			Day:   WeekDayLabels[i],
			Value: valueAt(editor, i) + valueAt(shooter, i) + valueAt(writer, i),
		}
	}
	return buckets
}

func valueAt(buckets []WeekDayBucket, i int) int {
	if i >= len(buckets) {
		return 0
	}
	return buckets[i].Value
}

// RoleTotal is one role's 7-day sum, with no normalization or averaging.
type RoleTotal struct {
	Role  models.Role `json:"role"`
	Total int         `json:"total"`
}

// RoleTotals sums each producing role's weekly series independently.
func RoleTotals(editor, shooter, writer []WeekDayBucket) []RoleTotal {
	return []RoleTotal{
		{Role: models.RoleEditor, Total: sumBuckets(editor)},
		{Role: models.RoleShooter, Total: sumBuckets(shooter)},
		{Role: models.RoleWriter, Total: sumBuckets(writer)},
	}
}

func sumBuckets(buckets []WeekDayBucket) int {
	total := 0
	for _, b := range buckets {
		total += b.Value
	}
	return total
}
