// Package thumbnail derives the card image of a record. Resolution never
// fails: anything that goes wrong ends at Placeholder.
package thumbnail

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/yinyajiang/apod-gallery/model"
	"github.com/yinyajiang/apod-gallery/pkg/ies"
)

const Placeholder = "https://via.placeholder.com/640x360?text=Video"

type Resolver struct {
	extractors []ies.InfoExtractor
}

// New uses the given extractors in order. Without any, links are matched
// against package ies, which builds its registered extractors on first use
// unless InitIE ran already.
func New(extractors ...ies.InfoExtractor) *Resolver {
	return &Resolver{extractors: extractors}
}

func (r *Resolver) Resolve(ctx context.Context, rec model.MediaRecord) string {
	if rec.IsImage() {
		return rec.URL
	}
	if rec.ThumbnailURL != "" {
		return rec.ThumbnailURL
	}
	thumb, err := r.fromHost(ctx, rec.URL)
	if err != nil || thumb == "" {
		logrus.WithFields(logrus.Fields{
			"date": rec.Date,
			"url":  rec.URL,
		}).WithError(err).Debug("no video thumbnail, using placeholder")
		return Placeholder
	}
	return thumb
}

func (r *Resolver) fromHost(ctx context.Context, link string) (thumb string, err error) {
	defer func() {
		if p := recover(); p != nil {
			thumb, err = "", fmt.Errorf("thumbnail extractor panicked: %v", p)
		}
	}()
	if link == "" {
		return "", ies.ErrNoMatchedIE
	}
	ie, err := r.match(link)
	if err != nil {
		return "", err
	}
	id, err := ie.ExtractID(link)
	if err != nil {
		return "", err
	}
	return ie.Thumbnail(ctx, id)
}

func (r *Resolver) match(link string) (ies.InfoExtractor, error) {
	if len(r.extractors) == 0 {
		return ies.GetIE(link)
	}
	for _, ie := range r.extractors {
		if ie.IsMatched(link) {
			return ie, nil
		}
	}
	return nil, ies.ErrNoMatchedIE
}
