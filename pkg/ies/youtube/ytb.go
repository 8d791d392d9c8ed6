package youtube

import (
	"context"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/yinyajiang/apod-gallery/pkg/ies"
	"github.com/yinyajiang/apod-gallery/pkg/ies/youtube/ytbapi"
)

// ThumbnailLookup asks a remote service for a video's thumbnail.
type ThumbnailLookup interface {
	VideoThumbnail(ctx context.Context, videoID string) (string, error)
}

type YoutubeIE struct {
	client ThumbnailLookup
}

func Name() string {
	return "youtube"
}

func init() {
	ies.RegistConstructor(Name(), func(token string) (ies.InfoExtractor, error) {
		if token == "" {
			return New(nil), nil
		}
		client, err := ytbapi.New(token)
		if err != nil {
			return nil, err
		}
		return New(client), nil
	})
}

// New builds the extractor. A nil client builds thumbnails from the video id
// alone.
func New(client ThumbnailLookup) *YoutubeIE {
	return &YoutubeIE{client: client}
}

func (y *YoutubeIE) Name() string {
	return Name()
}

func (y *YoutubeIE) IsMatched(link string) bool {
	l := strings.ToLower(link)
	return strings.Contains(l, "youtube.com") ||
		strings.Contains(l, "youtube-nocookie.com") ||
		strings.Contains(l, "youtu.be")
}

func (y *YoutubeIE) ExtractID(link string) (string, error) {
	return parseVideoID(link)
}

func (y *YoutubeIE) Thumbnail(ctx context.Context, id string) (string, error) {
	if y.client != nil {
		thumb, err := y.client.VideoThumbnail(ctx, id)
		if err == nil && thumb != "" {
			return thumb, nil
		}
		logrus.WithFields(logrus.Fields{
			"video": id,
		}).WithError(err).Debug("youtube api thumbnail lookup failed, using static thumbnail")
	}
	return thumbnailURL(id), nil
}
