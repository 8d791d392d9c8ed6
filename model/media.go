package model

import (
	"time"
)

const DateLayout = "2006-01-02"

type MediaType string

const (
	MediaTypeImage MediaType = "image"
	MediaTypeVideo MediaType = "video"
)

// MediaRecord is one entry of the APOD dataset. Records are read-only once
// parsed; every helper works on a copy.
type MediaRecord struct {
	Date         string    `json:"date"`
	Title        string    `json:"title"`
	Explanation  string    `json:"explanation"`
	MediaType    MediaType `json:"media_type"`
	URL          string    `json:"url"`
	HDURL        string    `json:"hdurl,omitempty"`
	ThumbnailURL string    `json:"thumbnail_url,omitempty"`
	Copyright    string    `json:"copyright,omitempty"`
}

type MediaRecordList []MediaRecord

func (m MediaRecord) IsImage() bool {
	return m.MediaType == MediaTypeImage
}

func (m MediaRecord) IsVideo() bool {
	return m.MediaType == MediaTypeVideo
}

// IsSupported reports whether the gallery knows how to show the record.
func (m MediaRecord) IsSupported() bool {
	return m.IsImage() || m.IsVideo()
}

// Day parses Date as a calendar date in UTC.
func (m MediaRecord) Day() (time.Time, error) {
	return time.Parse(DateLayout, m.Date)
}

// DisplayURL is the large media source: hdurl wins for images.
func (m MediaRecord) DisplayURL() string {
	if m.IsImage() && m.HDURL != "" {
		return m.HDURL
	}
	return m.URL
}
