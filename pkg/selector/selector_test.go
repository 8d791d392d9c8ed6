package selector

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yinyajiang/apod-gallery/model"
)

func day(s string) time.Time {
	t, err := time.Parse(model.DateLayout, s)
	if err != nil {
		panic(err)
	}
	return t
}

func january(n int, mediaType model.MediaType) []model.MediaRecord {
	out := make([]model.MediaRecord, 0, n)
	for i := 1; i <= n; i++ {
		out = append(out, model.MediaRecord{
			Date:      fmt.Sprintf("2024-01-%02d", i),
			Title:     fmt.Sprintf("pic %d", i),
			MediaType: mediaType,
			URL:       fmt.Sprintf("https://apod.example/%d.jpg", i),
		})
	}
	return out
}

func dates(records []model.MediaRecord) []string {
	out := make([]string, 0, len(records))
	for _, r := range records {
		out = append(out, r.Date)
	}
	return out
}

func TestLatestTakesNewestNine(t *testing.T) {
	in := january(20, model.MediaTypeImage)
	got := Latest(in, false)

	require.Len(t, got, WindowSize)
	assert.Equal(t, []string{
		"2024-01-20", "2024-01-19", "2024-01-18", "2024-01-17", "2024-01-16",
		"2024-01-15", "2024-01-14", "2024-01-13", "2024-01-12",
	}, dates(got))
	assert.Equal(t, "2024-01-01", in[0].Date, "input must not be reordered")
}

func TestLatestMediaTypes(t *testing.T) {
	in := []model.MediaRecord{
		{Date: "2024-02-03", MediaType: model.MediaTypeVideo},
		{Date: "2024-02-02", MediaType: model.MediaTypeImage},
		{Date: "2024-02-04", MediaType: "other"},
		{Date: "2024-02-01", MediaType: model.MediaTypeImage},
	}

	images := Latest(in, false)
	assert.Equal(t, []string{"2024-02-02", "2024-02-01"}, dates(images))
	for _, r := range images {
		assert.True(t, r.IsImage())
	}

	mixed := Latest(in, true)
	assert.Equal(t, []string{"2024-02-03", "2024-02-02", "2024-02-01"}, dates(mixed))
}

func TestLatestKeepsInputOrderForEqualDates(t *testing.T) {
	in := []model.MediaRecord{
		{Date: "2024-03-01", Title: "a", MediaType: model.MediaTypeImage},
		{Date: "2024-03-02", Title: "b", MediaType: model.MediaTypeImage},
		{Date: "2024-03-01", Title: "c", MediaType: model.MediaTypeImage},
		{Date: "2024-03-02", Title: "d", MediaType: model.MediaTypeImage},
	}
	got := Latest(in, false)
	titles := []string{}
	for _, r := range got {
		titles = append(titles, r.Title)
	}
	assert.Equal(t, []string{"b", "d", "a", "c"}, titles)
}

func TestLatestIsSortedAndBounded(t *testing.T) {
	for n := 0; n < 30; n += 7 {
		got := Latest(january(n, model.MediaTypeImage), false)
		assert.LessOrEqual(t, len(got), WindowSize)
		for i := 1; i < len(got); i++ {
			assert.GreaterOrEqual(t, got[i-1].Date, got[i].Date)
		}
	}
}

func TestDateRangeInclusiveWindow(t *testing.T) {
	in := january(20, model.MediaTypeImage)
	got := DateRange(in, day("2024-01-01"))

	require.Len(t, got, 9)
	assert.Equal(t, "2024-01-09", got[0].Date)
	assert.Equal(t, "2024-01-01", got[len(got)-1].Date)
	for _, r := range got {
		assert.GreaterOrEqual(t, r.Date, "2024-01-01")
		assert.LessOrEqual(t, r.Date, "2024-01-09")
	}
}

func TestDateRangeHasNoCap(t *testing.T) {
	in := append(january(9, model.MediaTypeImage), january(9, model.MediaTypeVideo)...)
	got := DateRange(in, day("2024-01-01"))
	assert.Len(t, got, 18)
}

func TestDateRangeSkipsUnusableRecords(t *testing.T) {
	in := []model.MediaRecord{
		{Date: "2024-01-02", MediaType: model.MediaTypeImage},
		{Date: "2024-01-03", MediaType: "other"},
		{Date: "2024-1-4", MediaType: model.MediaTypeImage},
		{Date: "2024-01-10", MediaType: model.MediaTypeImage},
	}
	got := DateRange(in, day("2024-01-01"))
	assert.Equal(t, []string{"2024-01-02"}, dates(got))
}

func TestDateRangeEmptyInput(t *testing.T) {
	got := DateRange(nil, day("2024-01-01"))
	assert.Empty(t, got)
}

func TestDefaultStartEndsToday(t *testing.T) {
	now := time.Date(2024, 3, 5, 17, 30, 0, 0, time.UTC)
	start := DefaultStart(now)
	assert.Equal(t, "2024-02-26", model.FormatDay(start))
	assert.Equal(t, "2024-03-05", model.FormatDay(RangeEnd(start)))
}

func TestSelect(t *testing.T) {
	in := january(20, model.MediaTypeImage)
	now := day("2024-01-09")

	got, err := Select(in, Options{Mode: ModeRange}, now)
	require.NoError(t, err)
	assert.Equal(t, "2024-01-09", got[0].Date)
	assert.Equal(t, "2024-01-01", got[len(got)-1].Date)

	got, err = Select(in, Options{Mode: ModeLatest, OldestFirst: true}, now)
	require.NoError(t, err)
	assert.Equal(t, "2024-01-12", got[0].Date)
	assert.Equal(t, "2024-01-20", got[len(got)-1].Date)

	_, err = Select(in, Options{Mode: "random"}, now)
	assert.ErrorIs(t, err, ErrUnknownMode)
}

func TestParseMode(t *testing.T) {
	m, err := ParseMode("")
	require.NoError(t, err)
	assert.Equal(t, ModeLatest, m)

	m, err = ParseMode(" Range ")
	require.NoError(t, err)
	assert.Equal(t, ModeRange, m)

	_, err = ParseMode("newest")
	assert.ErrorIs(t, err, ErrUnknownMode)
}

func TestParseStart(t *testing.T) {
	got, err := ParseStart("2024-01-01")
	require.NoError(t, err)
	assert.Equal(t, day("2024-01-01"), got)

	_, err = ParseStart("01/01/2024")
	assert.Error(t, err)
}
