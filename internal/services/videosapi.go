// YouTube Data API [VideoService] implementation
package services

import (
	"context"
	"fmt"
	"time"

	"github.com/desertthunder/tasktube/internal/models"
	"github.com/desertthunder/tasktube/internal/shared"
	"google.golang.org/api/option"
	youtubeapi "google.golang.org/api/youtube/v3"
)

// YouTubeDataService implements [VideoService] against the YouTube Data API.
type YouTubeDataService struct {
	svc *youtubeapi.Service
}

// NewYouTubeDataService creates a YouTube Data API client with the given options.
func NewYouTubeDataService(ctx context.Context, opts ...option.ClientOption) (*YouTubeDataService, error) {
	svc, err := youtubeapi.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create youtube client: %w", err)
	}

	return &YouTubeDataService{svc: svc}, nil
}

// Name returns the service name.
func (y *YouTubeDataService) Name() string {
	return "YouTube Data"
}

// ListVideos fetches snippet and contentDetails for one batch of identifiers.
//
// The provider silently omits identifiers it does not recognize (deleted or
// private videos); the returned slice reflects only what it knows.
func (y *YouTubeDataService) ListVideos(ctx context.Context, ids []string) ([]models.VideoDetail, error) {
	if len(ids) == 0 {
		return []models.VideoDetail{}, nil
	}
	if len(ids) > MaxVideoBatchSize {
		return nil, fmt.Errorf("%w: at most %d video ids per call, got %d", shared.ErrInvalidArgument, MaxVideoBatchSize, len(ids))
	}

	resp, err := y.svc.Videos.List([]string{"snippet", "contentDetails"}).Id(ids...).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("%w: videos.list: %v", shared.ErrTransient, err)
	}

	details := make([]models.VideoDetail, 0, len(resp.Items))
	for _, item := range resp.Items {
		detail := models.VideoDetail{ID: item.Id}

		if item.Snippet != nil {
			detail.Title = item.Snippet.Title
			detail.Channel = item.Snippet.ChannelTitle
			detail.ChannelID = item.Snippet.ChannelId
			if item.Snippet.Thumbnails != nil && item.Snippet.Thumbnails.Medium != nil {
				detail.ThumbnailURL = item.Snippet.Thumbnails.Medium.Url
			}
			if ts, err := time.Parse(time.RFC3339, item.Snippet.PublishedAt); err == nil {
				detail.PublishedAt = ts
			}
		}
		if item.ContentDetails != nil {
			detail.Duration = item.ContentDetails.Duration
		}

		details = append(details, detail)
	}

	return details, nil
}
