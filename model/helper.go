package model

import (
	"time"

	"github.com/duke-git/lancet/v2/slice"
)

// FormatDay renders t as a dataset date.
func FormatDay(t time.Time) string {
	return t.Format(DateLayout)
}

// TruncateDay drops the clock part of t, keeping its calendar date.
func TruncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func (l MediaRecordList) Supported() MediaRecordList {
	return slice.Filter(l, func(_ int, item MediaRecord) bool {
		return item.IsSupported()
	})
}

func (l MediaRecordList) Images() MediaRecordList {
	return slice.Filter(l, func(_ int, item MediaRecord) bool {
		return item.IsImage()
	})
}

func (l MediaRecordList) HasVideo() bool {
	return slice.ContainBy(l, func(item MediaRecord) bool {
		return item.IsVideo()
	})
}
