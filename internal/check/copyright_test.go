package check

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCoalesceYears_Single(t *testing.T) {
	ranges := CoalesceYears([]int{2021})
	assert.Equal(t, "2021", FormatYearRanges(ranges))
}

func TestCoalesceYears_ConsecutiveRun(t *testing.T) {
	ranges := CoalesceYears([]int{2019, 2020, 2021})
	assert.Equal(t, "2019-2021", FormatYearRanges(ranges))
}

func TestCoalesceYears_MixedRunsAndGaps(t *testing.T) {
	ranges := CoalesceYears([]int{2016, 2017, 2019, 2021, 2022, 2023})
	assert.Equal(t, "2016-2017, 2019, 2021-2023", FormatYearRanges(ranges))
}

func TestCoalesceYears_Unsorted(t *testing.T) {
	// git log yields most-recent-first; coalescing must not depend on
	// input order.
	ranges := CoalesceYears([]int{2023, 2019, 2020})
	assert.Equal(t, "2019-2020, 2023", FormatYearRanges(ranges))
}

func TestCoalesceYears_Duplicates(t *testing.T) {
	ranges := CoalesceYears([]int{2020, 2020, 2021})
	assert.Equal(t, "2020-2021", FormatYearRanges(ranges))
}

func TestCoalesceYears_Empty(t *testing.T) {
	assert.Nil(t, CoalesceYears(nil))
}

func TestYearRange_String(t *testing.T) {
	assert.Equal(t, "2020", YearRange{Start: 2020}.String())
	assert.Equal(t, "2020-2022", YearRange{Start: 2020, End: 2022}.String())
}
