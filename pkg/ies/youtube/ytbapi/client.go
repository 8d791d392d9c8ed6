package ytbapi

import (
	"context"

	"github.com/pkg/errors"
	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"
)

var ErrVideoNotFound = errors.New("video not found")

type Client struct {
	service *youtube.Service
}

func New(apiKey string, opts ...option.ClientOption) (*Client, error) {
	opts = append([]option.ClientOption{option.WithAPIKey(apiKey)}, opts...)
	service, err := youtube.NewService(context.Background(), opts...)
	if err != nil {
		return nil, errors.Wrap(err, "create youtube service")
	}
	return &Client{
		service: service,
	}, nil
}

// VideoThumbnail returns the largest thumbnail the API reports for videoID.
func (c *Client) VideoThumbnail(ctx context.Context, videoID string) (string, error) {
	var videoPart = []string{"snippet"}
	response, err := c.service.Videos.List(videoPart).Id(videoID).Context(ctx).Do()
	if err != nil {
		return "", errors.Wrapf(err, "list video %s", videoID)
	}
	if len(response.Items) == 0 || response.Items[0].Snippet == nil {
		return "", errors.Wrap(ErrVideoNotFound, videoID)
	}
	thumb := bestThumbnail(response.Items[0].Snippet.Thumbnails)
	if thumb == "" {
		return "", errors.Errorf("video %s has no thumbnails", videoID)
	}
	return thumb, nil
}
