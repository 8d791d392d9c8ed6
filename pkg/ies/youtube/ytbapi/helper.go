package ytbapi

import (
	"google.golang.org/api/youtube/v3"
)

func bestThumbnail(details *youtube.ThumbnailDetails) string {
	if details == nil {
		return ""
	}
	for _, thumb := range []*youtube.Thumbnail{
		details.Maxres,
		details.Standard,
		details.High,
		details.Medium,
		details.Default,
	} {
		if thumb != nil && thumb.Url != "" {
			return thumb.Url
		}
	}
	return ""
}
