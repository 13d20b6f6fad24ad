package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSalaryCycle(t *testing.T) {
	cases := []struct {
		month     string
		wantStart string
		wantEnd   string
		wantDays  int
	}{
		{"2025-03", "2025-02-26", "2025-03-25", 28},
		{"2024-03", "2024-02-26", "2024-03-25", 29},
		{"2025-01", "2024-12-26", "2025-01-25", 31},
		{"2025-05", "2025-04-26", "2025-05-25", 30},
	}

	for _, c := range cases {
		start, end, err := SalaryCycle(c.month)
		require.NoError(t, err, c.month)
		assert.Equal(t, c.wantStart, DateKey(start), c.month)
		assert.Equal(t, c.wantEnd, DateKey(end), c.month)
		assert.Equal(t, c.wantDays, DaysInclusive(start, end), c.month)
	}
}

func TestSalaryCycle_InvalidMonth(t *testing.T) {
	for _, m := range []string{"", "2025-13", "2025-1", "March"} {
		_, _, err := SalaryCycle(m)
		assert.Error(t, err, m)
	}
}

func TestSalaryMonthOf(t *testing.T) {
	assert.Equal(t, "2025-03", SalaryMonthOf(time.Date(2025, 2, 26, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "2025-03", SalaryMonthOf(time.Date(2025, 3, 25, 18, 0, 0, 0, time.UTC)))
	assert.Equal(t, "2025-04", SalaryMonthOf(time.Date(2025, 3, 26, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "2025-01", SalaryMonthOf(time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC)))
}

func TestEachDay(t *testing.T) {
	var got []string
	EachDay(time.Date(2025, 2, 27, 0, 0, 0, 0, time.UTC), time.Date(2025, 3, 2, 0, 0, 0, 0, time.UTC), func(d time.Time) {
		got = append(got, DateKey(d))
	})
	assert.Equal(t, []string{"2025-02-27", "2025-02-28", "2025-03-01", "2025-03-02"}, got)
}
