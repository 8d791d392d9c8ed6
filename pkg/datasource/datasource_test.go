package datasource

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yinyajiang/apod-gallery/model"
)

const sample = `[
  {
    "date": "2024-01-02",
    "title": "Orion Nebula",
    "explanation": "Stars are born here.",
    "media_type": "image",
    "url": "https://apod.nasa.gov/apod/image/2401/orion.jpg",
    "hdurl": "https://apod.nasa.gov/apod/image/2401/orion_big.jpg",
    "copyright": "Jane Doe",
    "service_version": "v1"
  },
  {
    "date": "2024-01-03",
    "title": "Eclipse",
    "explanation": "A video.",
    "media_type": "video",
    "url": "https://www.youtube.com/embed/abc123XYZ"
  }
]`

func serve(t *testing.T, status int, body string) *Client {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Empty(t, r.URL.RawQuery)
		w.WriteHeader(status)
		fmt.Fprint(w, body)
	}))
	t.Cleanup(srv.Close)
	c, err := New(Options{URL: srv.URL})
	require.NoError(t, err)
	return c
}

func TestFetch(t *testing.T) {
	c := serve(t, http.StatusOK, sample)
	records, err := c.Fetch(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, model.MediaRecord{
		Date:        "2024-01-02",
		Title:       "Orion Nebula",
		Explanation: "Stars are born here.",
		MediaType:   model.MediaTypeImage,
		URL:         "https://apod.nasa.gov/apod/image/2401/orion.jpg",
		HDURL:       "https://apod.nasa.gov/apod/image/2401/orion_big.jpg",
		Copyright:   "Jane Doe",
	}, records[0])
	assert.Equal(t, model.MediaTypeVideo, records[1].MediaType)
	assert.Empty(t, records[1].HDURL)
	assert.Empty(t, records[1].ThumbnailURL)
}

func TestFetchEmptyArray(t *testing.T) {
	c := serve(t, http.StatusOK, `[]`)
	records, err := c.Fetch(context.Background())
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestFetchStatusError(t *testing.T) {
	c := serve(t, http.StatusNotFound, `not here`)
	_, err := c.Fetch(context.Background())
	assert.ErrorIs(t, err, ErrStatus)
	assert.True(t, IsTransportError(err))
	assert.False(t, IsFormatError(err))
}

func TestFetchFormatErrors(t *testing.T) {
	for body, want := range map[string]error{
		`{"date": "2024-01-02"}`: ErrNotArray,
		`"just a string"`:        ErrNotArray,
		`[{"date": `:             ErrMalformed,
		`<html></html>`:          ErrMalformed,
	} {
		c := serve(t, http.StatusOK, body)
		_, err := c.Fetch(context.Background())
		assert.ErrorIs(t, err, want, body)
		assert.True(t, IsFormatError(err), body)
	}
}

func TestFetchConnectionError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c, err := New(Options{URL: url, Timeout: time.Second})
	require.NoError(t, err)
	_, err = c.Fetch(context.Background())
	assert.Error(t, err)
	assert.True(t, IsTransportError(err))
}

func TestNewDefaults(t *testing.T) {
	c, err := New(Options{})
	require.NoError(t, err)
	assert.Equal(t, DefaultURL, c.URL())
	assert.Same(t, http.DefaultClient, c.h)

	_, err = New(Options{Proxy: "://bad"})
	assert.Error(t, err)
}
