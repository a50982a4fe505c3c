package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/desertthunder/tasktube/internal/models"
	"github.com/desertthunder/tasktube/internal/shared"
)

var (
	_ list.Item = taskItem{}
	_ list.Item = videoItem{}
)

// taskItem wraps [models.TaskItem] to implement [list.Item]. Descriptions
// are precomputed from the aggregated result so the list never touches the
// shared maps while rendering.
type taskItem struct {
	task     models.TaskItem
	listName string
	resolved int
	duration string
}

func newTaskItem(result *models.AggregatedResult, task models.TaskItem) taskItem {
	return taskItem{
		task:     task,
		listName: task.List.Title,
		resolved: len(result.ResolvedVideos(task)),
		duration: shared.FormatDurationCompact(result.TaskDurationSeconds(task)),
	}
}

func (i taskItem) FilterValue() string { return i.task.Title }
func (i taskItem) Title() string       { return i.task.Title }
func (i taskItem) Description() string {
	parts := []string{i.listName}
	if i.resolved == 1 {
		parts = append(parts, "1 video")
	} else {
		parts = append(parts, fmt.Sprintf("%d videos", i.resolved))
	}
	parts = append(parts, i.duration)
	return strings.Join(parts, " • ")
}

// videoItem wraps [models.VideoDetail] to implement [list.Item].
type videoItem struct {
	video models.VideoDetail
}

func (i videoItem) FilterValue() string { return i.video.Title }
func (i videoItem) Title() string       { return i.video.Title }
func (i videoItem) Description() string {
	desc := fmt.Sprintf("%s • %s", i.video.Channel, shared.FormatDurationParts(i.video.Duration))
	if published := shared.FormatRelativeTime(i.video.PublishedAt); published != "" {
		desc = fmt.Sprintf("%s • %s", desc, published)
	}
	return desc
}
