package youtube

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/pkg/errors"
)

var ErrUnsupportedLink = errors.New("unsupported youtube link")

var (
	// watch?v=ID, embed/ID and youtu.be/ID
	videoIDRegexp = regexp.MustCompile(`(?:youtube(?:-nocookie)?\.com/(?:embed/|watch\?v=)|youtu\.be/)([A-Za-z0-9_-]{6,})`)
	idRegexp      = regexp.MustCompile(`^[A-Za-z0-9_-]{6,}$`)
)

func isYoutubeHost(host string) bool {
	host = strings.TrimPrefix(strings.ToLower(host), "www.")
	host = strings.TrimPrefix(host, "m.")
	switch host {
	case "youtube.com", "youtube-nocookie.com", "youtu.be":
		return true
	}
	return false
}

func parseVideoID(link string) (id string, err error) {
	if gs := videoIDRegexp.FindStringSubmatch(link); len(gs) == 2 {
		return gs[1], nil
	}

	// watch links may carry other parameters before v=
	// - https://www.youtube.com/watch?feature=share&v=rbCbho7aLYw
	if !strings.HasPrefix(link, "http") {
		link = "https://" + link
	}
	parsed, err := url.Parse(link)
	if err != nil {
		return "", errors.Wrap(err, "parse youtube link")
	}
	if !isYoutubeHost(parsed.Hostname()) {
		return "", ErrUnsupportedLink
	}
	if strings.HasPrefix(parsed.EscapedPath(), "/watch") {
		id = parsed.Query().Get("v")
		if idRegexp.MatchString(id) {
			return id, nil
		}
	}
	return "", ErrUnsupportedLink
}

func thumbnailURL(id string) string {
	return "https://img.youtube.com/vi/" + id + "/hqdefault.jpg"
}
