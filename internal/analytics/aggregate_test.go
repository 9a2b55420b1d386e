package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"crewops/internal/models"
)

// Week of Monday 2026-08-24.
func testWeek() [7]string {
	return AnchorWeek(time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC))
}

func editorLog(dateKey string, quantity int) *models.ActivityLog {
	return &models.ActivityLog{ID: dateKey, DateKey: dateKey, Client: "acme", VideoType: "reel", Quantity: quantity}
}

func TestWeeklyTotals_Scenario(t *testing.T) {
	week := testWeek()
	logs := []*models.ActivityLog{
		editorLog("2026-08-24", 2), // Mon
		editorLog("2026-08-25", 3), // Tue
		editorLog("2026-08-27", 1), // Thu
	}

	buckets := WeeklyTotals(logs, week)

	require.Len(t, buckets, 7)
	values := make([]int, 7)
	for i, b := range buckets {
		values[i] = b.Value
		assert.Equal(t, WeekDayLabels[i], b.Day)
	}
	assert.Equal(t, []int{2, 3, 0, 1, 0, 0, 0}, values)

	best, ok := BestDay(buckets)
	require.True(t, ok)
	assert.Equal(t, "Tue", best.Day)
	assert.Equal(t, 3, best.Value)

	downDays := DownDays(buckets, 0)
	assert.Len(t, downDays, 4)
	assert.Equal(t, "Wed", downDays[0].Day)
	assert.Equal(t, "Fri", downDays[1].Day)
	assert.Equal(t, "Sat", downDays[2].Day)
	assert.Equal(t, "Sun", downDays[3].Day)
}

func TestWeeklyTotals_SumInvariant(t *testing.T) {
	week := testWeek()
	logs := []*models.ActivityLog{
		editorLog("2026-08-24", 2),
		editorLog("2026-08-24", 5), // same day accumulates
		editorLog("2026-08-28", 1),
		editorLog("2026-09-15", 9), // outside the week, ignored
	}

	buckets := WeeklyTotals(logs, week)

	total := 0
	for _, b := range buckets {
		total += b.Value
	}
	assert.Equal(t, 8, total)
}

func TestWeeklyTotals_EmptyLogs(t *testing.T) {
	buckets := WeeklyTotals(nil, testWeek())

	downDays := DownDays(buckets, 0)
	assert.Len(t, downDays, 7)

	best, ok := BestDay(buckets)
	require.True(t, ok)
	assert.Equal(t, 0, best.Value)
	assert.Equal(t, "Mon", best.Day)
}

func TestBestDay_TieKeepsFirst(t *testing.T) {
	buckets := []WeekDayBucket{
		{Day: "Mon", Value: 2},
		{Day: "Tue", Value: 5},
		{Day: "Wed", Value: 5},
		{Day: "Thu", Value: 1},
	}

	best, ok := BestDay(buckets)
	require.True(t, ok)
	assert.Equal(t, "Tue", best.Day)
}

func TestBestDay_EmptySeries(t *testing.T) {
	_, ok := BestDay(nil)
	assert.False(t, ok)
}

func TestDownDays_Threshold(t *testing.T) {
	buckets := []WeekDayBucket{
		{Day: "Mon", Value: 0},
		{Day: "Tue", Value: 2},
		{Day: "Wed", Value: 3},
	}

	assert.Len(t, DownDays(buckets, 0), 1)
	assert.Len(t, DownDays(buckets, 2), 2)
	assert.Len(t, DownDays(buckets, 5), 3)
}

func TestWriterWeekly_CountsItemsPerDay(t *testing.T) {
	week := testWeek()
	items := []*models.WriterItem{
		{ID: "a", DateKey: "2026-08-24", Status: models.ItemWritten},
		{ID: "b", DateKey: "2026-08-24", Status: models.ItemApproved},
		{ID: "c", DateKey: "2026-08-26", Status: models.ItemDropped},
	}

	buckets := WriterWeekly(items, week)

	assert.Equal(t, 2, buckets[0].Value)
	assert.Equal(t, 1, buckets[2].Value)
	assert.Equal(t, 0, buckets[1].Value)
}

func TestCombinedActivity(t *testing.T) {
	week := testWeek()
	editor := WeeklyTotals([]*models.ActivityLog{editorLog("2026-08-24", 2)}, week)
	shooter := WeeklyTotals([]*models.ActivityLog{editorLog("2026-08-24", 1), editorLog("2026-08-25", 4)}, week)
	writer := WriterWeekly([]*models.WriterItem{{ID: "a", DateKey: "2026-08-24"}}, week)

	combined := CombinedActivity(editor, shooter, writer)

	require.Len(t, combined, 7)
	assert.Equal(t, 4, combined[0].Value)
	assert.Equal(t, 4, combined[1].Value)
	assert.Equal(t, 0, combined[2].Value)
}

func TestCombinedActivity_NilSeriesContributeZero(t *testing.T) {
	combined := CombinedActivity(nil, nil, nil)

	require.Len(t, combined, 7)
	for _, b := range combined {
		assert.Equal(t, 0, b.Value)
	}
}

func TestRoleTotals(t *testing.T) {
	week := testWeek()
	editor := WeeklyTotals([]*models.ActivityLog{editorLog("2026-08-24", 2), editorLog("2026-08-27", 1)}, week)
	shooter := WeeklyTotals(nil, week)
	writer := WriterWeekly([]*models.WriterItem{{ID: "a", DateKey: "2026-08-26"}}, week)

	totals := RoleTotals(editor, shooter, writer)

	require.Len(t, totals, 3)
	assert.Equal(t, models.RoleEditor, totals[0].Role)
	assert.Equal(t, 3, totals[0].Total)
	assert.Equal(t, models.RoleShooter, totals[1].Role)
	assert.Equal(t, 0, totals[1].Total)
	assert.Equal(t, models.RoleWriter, totals[2].Role)
	assert.Equal(t, 1, totals[2].Total)
}
