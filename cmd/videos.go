package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/desertthunder/tasktube/internal/models"
	"github.com/desertthunder/tasktube/internal/shared"
	"github.com/desertthunder/tasktube/internal/tasks"
	"github.com/urfave/cli/v3"
)

// videoListEntry is the JSON shape for one task row in `videos list`.
type videoListEntry struct {
	Task     string               `json:"task"`
	TaskList string               `json:"task_list"`
	Due      string               `json:"due,omitempty"`
	Videos   []models.VideoDetail `json:"videos"`
	Duration string               `json:"duration"`
}

// VideosList aggregates every task list and prints the referenced videos.
func (r *Runner) VideosList(ctx context.Context, cmd *cli.Command) error {
	criterion, err := tasks.ParseSortCriterion(cmd.String("sort"))
	if err != nil {
		return err
	}

	engine, err := r.buildEngine(ctx)
	if errors.Is(err, shared.ErrNotAuthenticated) {
		r.writePlain("Not authenticated. Run 'tasktube auth login' to connect your Google account.\n")
		return nil
	}
	if err != nil {
		return err
	}

	result, err := engine.Aggregate(ctx, nil)
	if err != nil && !errors.Is(err, shared.ErrPartialBatch) {
		return err
	}
	if err != nil {
		r.logger.Warn("some videos could not be resolved", "error", err)
	}

	tasks.Sort(result, criterion)

	if cmd.Bool("json") {
		entries := make([]videoListEntry, 0, len(result.Tasks))
		for _, task := range result.Tasks {
			entry := videoListEntry{
				Task:     task.Title,
				TaskList: task.List.Title,
				Videos:   result.ResolvedVideos(task),
				Duration: shared.FormatDurationCompact(result.TaskDurationSeconds(task)),
			}
			if task.Due != nil {
				entry.Due = task.Due.Format("2006-01-02")
			}
			entries = append(entries, entry)
		}
		return r.writeJSON(map[string]any{
			"tasks":                  entries,
			"distinct_videos":        result.Stats.DistinctVideos,
			"total_duration_seconds": result.Stats.TotalDurationSeconds,
		}, cmd.Bool("pretty"))
	}

	if len(result.Tasks) == 0 {
		return r.writePlain("No open tasks reference videos.\n")
	}

	r.writePlain("%d tasks • %d videos • %s total\n\n",
		len(result.Tasks),
		result.Stats.DistinctVideos,
		shared.FormatDurationCompact(result.Stats.TotalDurationSeconds),
	)

	for _, task := range result.Tasks {
		r.writePlain("%s  [%s]\n", task.Title, task.List.Title)
		for _, video := range result.ResolvedVideos(task) {
			line := fmt.Sprintf("   • %s - %s (%s)", video.Title, video.Channel, shared.FormatDurationParts(video.Duration))
			if published := shared.FormatRelativeTime(video.PublishedAt); published != "" {
				line += ", " + published
			}
			r.writePlain("%s\n", line)
		}
		for _, id := range task.VideoIDs {
			if _, ok := result.Videos[id]; !ok {
				r.writePlain("   • %s (unavailable)\n", id)
			}
		}
	}

	return nil
}
