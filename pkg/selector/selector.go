// Package selector picks the records a gallery shows: the latest window of
// records, or every record of a fixed-length date range.
package selector

import (
	"sort"
	"strings"
	"time"

	"github.com/duke-git/lancet/v2/datetime"
	"github.com/duke-git/lancet/v2/slice"
	"github.com/pkg/errors"
	"github.com/yinyajiang/apod-gallery/model"
)

const (
	// WindowSize caps the latest mode.
	WindowSize = 9
	// RangeSpanDays is added to the start date to get the inclusive end date.
	RangeSpanDays = 8
)

type Mode string

const (
	ModeLatest Mode = "latest"
	ModeRange  Mode = "range"
)

var ErrUnknownMode = errors.New("unknown selection mode")

type Options struct {
	Mode Mode
	// Start is only read in range mode; the zero value means DefaultStart(now).
	Start time.Time
	// IncludeVideo widens latest mode to image-or-video.
	IncludeVideo bool
	// OldestFirst reverses the final display order.
	OldestFirst bool
}

func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case "", ModeLatest:
		return ModeLatest, nil
	case ModeRange:
		return ModeRange, nil
	}
	return "", errors.Wrapf(ErrUnknownMode, "%q", s)
}

// ParseStart parses a date picker value.
func ParseStart(s string) (time.Time, error) {
	t, err := time.Parse(model.DateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, errors.Wrapf(err, "invalid start date %q", s)
	}
	return t, nil
}

// DefaultStart is the start of the window that ends on now's date.
func DefaultStart(now time.Time) time.Time {
	return datetime.AddDay(model.TruncateDay(now), -RangeSpanDays)
}

// RangeEnd is the last day, inclusive, of the window starting at start.
func RangeEnd(start time.Time) time.Time {
	return datetime.AddDay(model.TruncateDay(start), RangeSpanDays)
}

// Latest keeps images (or images and videos), newest first, and truncates to
// WindowSize. Records sharing a date keep their input order.
func Latest(records []model.MediaRecord, includeVideo bool) []model.MediaRecord {
	list := model.MediaRecordList(records)
	kept := list.Images()
	if includeVideo {
		kept = list.Supported()
	}
	sortNewestFirst(kept)
	if len(kept) > WindowSize {
		kept = kept[:WindowSize]
	}
	return kept
}

// DateRange keeps every supported record dated within
// [start, start+RangeSpanDays], newest first. There is no length cap.
func DateRange(records []model.MediaRecord, start time.Time) []model.MediaRecord {
	from := model.FormatDay(model.TruncateDay(start))
	to := model.FormatDay(RangeEnd(start))
	kept := slice.Filter(model.MediaRecordList(records).Supported(), func(_ int, item model.MediaRecord) bool {
		if _, err := item.Day(); err != nil {
			return false
		}
		return item.Date >= from && item.Date <= to
	})
	sortNewestFirst(kept)
	return kept
}

// Select runs the named mode. An empty result is not an error.
func Select(records []model.MediaRecord, opt Options, now time.Time) ([]model.MediaRecord, error) {
	var out []model.MediaRecord
	switch opt.Mode {
	case "", ModeLatest:
		out = Latest(records, opt.IncludeVideo)
	case ModeRange:
		start := opt.Start
		if start.IsZero() {
			start = DefaultStart(now)
		}
		out = DateRange(records, start)
	default:
		return nil, errors.Wrapf(ErrUnknownMode, "%q", opt.Mode)
	}
	if opt.OldestFirst {
		slice.Reverse(out)
	}
	return out, nil
}

// sortNewestFirst sorts in place; callers pass freshly filtered slices only.
// YYYY-MM-DD compares lexicographically in calendar order.
func sortNewestFirst(records []model.MediaRecord) {
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Date > records[j].Date
	})
}
