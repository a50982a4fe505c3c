// package models defines the data model for the task video browser
package models

import (
	"time"

	"github.com/desertthunder/tasktube/internal/shared"
)

// Task status values as reported by the task API.
const (
	StatusNeedsAction = "needsAction"
	StatusCompleted   = "completed"
)

// VideoRef is an extracted video identifier. Not guaranteed unique within a
// task; deduplication happens at the aggregator boundary.
type VideoRef = string

// TaskListRef identifies a task list.
type TaskListRef struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// TaskItem is a single task that references at least one video.
//
// Built once per aggregation run and never mutated afterwards; VideoIDs
// holds title hits before notes hits, repeats and all.
type TaskItem struct {
	ID          string      `json:"id"`
	List        TaskListRef `json:"list"`
	Title       string      `json:"title"`
	Notes       string      `json:"notes,omitempty"`
	Status      string      `json:"status"`
	Due         *time.Time  `json:"due,omitempty"`
	WebViewLink string      `json:"web_view_link,omitempty"`
	VideoIDs    []VideoRef  `json:"video_ids"`
}

// Completed reports whether the task has been marked done upstream.
func (t TaskItem) Completed() bool {
	return t.Status == StatusCompleted
}

// VideoDetail holds the metadata resolved for one video identifier.
type VideoDetail struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Channel      string    `json:"channel"`
	ChannelID    string    `json:"channel_id,omitempty"`
	ThumbnailURL string    `json:"thumbnail_url,omitempty"`
	Duration     string    `json:"duration"` // ISO-8601 (PT#H#M#S)
	PublishedAt  time.Time `json:"published_at,omitempty"`
}

// DurationSeconds returns the parsed duration, 0 when malformed.
func (v VideoDetail) DurationSeconds() int {
	return shared.ParseDuration(v.Duration)
}

// Stats summarizes one aggregation run.
type Stats struct {
	DistinctVideos       int `json:"distinct_videos"`
	TotalDurationSeconds int `json:"total_duration_seconds"`
}

// AggregatedResult pairs the ordered tasks of a run with the video details
// resolved for them. Tasks whose every reference failed to resolve stay in
// the sequence; display layers skip unresolved references per video.
type AggregatedResult struct {
	Tasks  []TaskItem               `json:"tasks"`
	Videos map[VideoRef]VideoDetail `json:"videos"`
	Stats  Stats                    `json:"stats"`
}

// ResolvedVideos returns the VideoDetails for the task's references that
// resolved, in reference order. Unresolved references are skipped.
func (r *AggregatedResult) ResolvedVideos(task TaskItem) []VideoDetail {
	var details []VideoDetail
	for _, ref := range task.VideoIDs {
		if d, ok := r.Videos[ref]; ok {
			details = append(details, d)
		}
	}
	return details
}

// TaskDurationSeconds sums the parsed durations of the task's resolved videos.
func (r *AggregatedResult) TaskDurationSeconds(task TaskItem) int {
	total := 0
	for _, d := range r.ResolvedVideos(task) {
		total += d.DurationSeconds()
	}
	return total
}
