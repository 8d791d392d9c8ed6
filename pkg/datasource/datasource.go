// Package datasource downloads the APOD dataset: one GET of a JSON array.
package datasource

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/tidwall/gjson"
	"github.com/yinyajiang/apod-gallery/model"
)

const DefaultURL = "https://cdn.jsdelivr.net/gh/GCA-Classroom/apod/data.json"

var (
	// ErrStatus is a transport error: the server answered with a non-2xx status.
	ErrStatus = errors.New("unexpected HTTP status")
	// ErrMalformed is a format error: the body is not JSON.
	ErrMalformed = errors.New("malformed JSON")
	// ErrNotArray is a format error: the body is JSON but not an array.
	ErrNotArray = errors.New("unexpected data format")
)

type Options struct {
	URL     string
	Proxy   string
	Timeout time.Duration
}

type Client struct {
	url string
	h   *http.Client
}

func New(opt Options) (*Client, error) {
	if opt.URL == "" {
		opt.URL = DefaultURL
	}
	h, err := newHTTPClient(opt.Proxy, opt.Timeout)
	if err != nil {
		return nil, err
	}
	return &Client{
		url: opt.URL,
		h:   h,
	}, nil
}

func (c *Client) URL() string {
	return c.url
}

// Fetch downloads and parses the whole dataset. Each call replaces nothing
// and caches nothing; the caller owns the returned slice.
func (c *Client) Fetch(ctx context.Context) ([]model.MediaRecord, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, errors.Wrap(err, "build request")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.h.Do(req)
	if err != nil {
		return nil, errors.Wrapf(err, "GET %s", c.url)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, errors.Wrapf(ErrStatus, "HTTP error: %d", resp.StatusCode)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, "read body")
	}
	records, err := Parse(body)
	if err != nil {
		return nil, err
	}
	logrus.WithFields(logrus.Fields{
		"url":   c.url,
		"count": len(records),
	}).Debug("dataset fetched")
	return records, nil
}

// Parse decodes a dataset payload. Missing fields stay empty.
func Parse(body []byte) ([]model.MediaRecord, error) {
	if !gjson.ValidBytes(body) {
		return nil, ErrMalformed
	}
	js := gjson.ParseBytes(body)
	if !js.IsArray() {
		return nil, ErrNotArray
	}
	items := js.Array()
	records := make([]model.MediaRecord, 0, len(items))
	for _, item := range items {
		records = append(records, parseRecord(item))
	}
	return records, nil
}

func parseRecord(item gjson.Result) model.MediaRecord {
	return model.MediaRecord{
		Date:         item.Get("date").String(),
		Title:        item.Get("title").String(),
		Explanation:  item.Get("explanation").String(),
		MediaType:    model.MediaType(item.Get("media_type").String()),
		URL:          item.Get("url").String(),
		HDURL:        item.Get("hdurl").String(),
		ThumbnailURL: item.Get("thumbnail_url").String(),
		Copyright:    item.Get("copyright").String(),
	}
}

// IsTransportError reports a failure talking to the server.
func IsTransportError(err error) bool {
	return err != nil && !IsFormatError(err)
}

// IsFormatError reports a payload that is not a JSON array.
func IsFormatError(err error) bool {
	return errors.Is(err, ErrMalformed) || errors.Is(err, ErrNotArray)
}
