package tasks

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/desertthunder/tasktube/internal/links"
	"github.com/desertthunder/tasktube/internal/models"
	"github.com/desertthunder/tasktube/internal/services"
	"github.com/desertthunder/tasktube/internal/shared"
	"golang.org/x/time/rate"
)

// BatchFailure records one video detail batch that could not be fetched.
type BatchFailure struct {
	IDs []string // Video IDs in the failed batch
	Err error    // The underlying fetch error
}

// BatchError reports that some video detail batches failed while others
// succeeded. The successfully resolved details are still returned alongside
// it. Unwraps to [shared.ErrPartialBatch].
type BatchError struct {
	Failures []BatchFailure
}

func (e *BatchError) Error() string {
	ids := 0
	for _, f := range e.Failures {
		ids += len(f.IDs)
	}
	return fmt.Sprintf("%v: %d batches covering %d videos", shared.ErrPartialBatch, len(e.Failures), ids)
}

func (e *BatchError) Unwrap() error {
	return shared.ErrPartialBatch
}

// AggregatorOpts contains configuration for the aggregation pipeline.
type AggregatorOpts struct {
	RateLimit float64 // Requests per second against the Google APIs (default: 5)
}

// VideoEngine walks every task list, extracts video links from incomplete
// tasks, and resolves the referenced videos. All API traffic is paced through
// a shared rate limiter.
type VideoEngine struct {
	tasks   services.TaskService
	videos  services.VideoService
	limiter *rate.Limiter
}

// NewVideoEngine creates a new VideoEngine with the provided services.
func NewVideoEngine(tasksSvc services.TaskService, videoSvc services.VideoService, opts AggregatorOpts) *VideoEngine {
	if opts.RateLimit <= 0 {
		opts.RateLimit = 5.0
	}
	return &VideoEngine{
		tasks:   tasksSvc,
		videos:  videoSvc,
		limiter: rate.NewLimiter(rate.Limit(opts.RateLimit), 1),
	}
}

// sendProgress sends a progress update through the channel without blocking.
// Uses select with default to ensure progress reporting never blocks execution.
func (e *VideoEngine) sendProgress(progress chan<- ProgressUpdate, update ProgressUpdate) {
	if progress == nil {
		return
	}
	select {
	case progress <- update:
	default:
	}
}

// FetchTasksWithVideos walks every task list and returns the incomplete
// tasks that reference at least one video. Pagination is exhausted on both
// levels before anything is returned. When the context is cancelled the
// tasks accumulated so far are returned alongside the context error.
func (e *VideoEngine) FetchTasksWithVideos(ctx context.Context, progress chan<- ProgressUpdate) ([]models.TaskItem, error) {
	if e.tasks == nil {
		return nil, fmt.Errorf("%w: task service not initialized", shared.ErrServiceUnavailable)
	}

	e.sendProgress(progress, fetchListsUpdate(1, 1))

	var lists []models.TaskListRef
	pageToken := ""
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := e.limiter.Wait(ctx); err != nil {
			return nil, err
		}
		page, err := e.tasks.ListTaskLists(ctx, pageToken)
		if err != nil {
			return nil, fmt.Errorf("%w: failed to list task lists: %v", shared.ErrAPIRequest, err)
		}
		lists = append(lists, page.Items...)
		if page.NextPageToken == "" {
			break
		}
		pageToken = page.NextPageToken
	}

	var items []models.TaskItem
	for i, list := range lists {
		e.sendProgress(progress, fetchTasksUpdate(i+1, len(lists), list.Title))

		pageToken = ""
		for {
			if err := ctx.Err(); err != nil {
				return items, err
			}
			if err := e.limiter.Wait(ctx); err != nil {
				return items, err
			}
			page, err := e.tasks.ListTasks(ctx, list.ID, pageToken)
			if err != nil {
				return items, fmt.Errorf("%w: failed to list tasks in %s: %v", shared.ErrAPIRequest, list.Title, err)
			}
			for _, task := range page.Items {
				if task.Completed() {
					continue
				}
				task.List = list
				task.VideoIDs = extractVideoIDs(task)
				if len(task.VideoIDs) == 0 {
					continue
				}
				items = append(items, task)
			}
			if page.NextPageToken == "" {
				break
			}
			pageToken = page.NextPageToken
		}
	}

	return items, nil
}

// extractVideoIDs pulls video references from a task, scanning the title
// before the notes. Repeated references are kept; a video linked in both
// fields counts twice toward the task's total duration. Dedup happens at
// resolution time instead.
func extractVideoIDs(task models.TaskItem) []models.VideoRef {
	var ids []models.VideoRef
	for _, field := range []string{task.Title, task.Notes} {
		if strings.TrimSpace(field) == "" {
			continue
		}
		ids = append(ids, links.Extract(field)...)
	}
	return ids
}

// ResolveVideoDetails fetches metadata for the given video IDs in batches of
// at most [services.MaxVideoBatchSize]. Duplicates are collapsed before
// batching. A failed batch does not abort the rest: resolved details are
// returned together with a [*BatchError] describing what failed. Context
// cancellation returns whatever resolved so far plus the context error.
func (e *VideoEngine) ResolveVideoDetails(ctx context.Context, progress chan<- ProgressUpdate, ids []models.VideoRef) (map[models.VideoRef]models.VideoDetail, error) {
	if e.videos == nil {
		return nil, fmt.Errorf("%w: video service not initialized", shared.ErrServiceUnavailable)
	}

	seen := make(map[string]bool, len(ids))
	unique := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		unique = append(unique, id)
	}

	details := make(map[models.VideoRef]models.VideoDetail, len(unique))
	if len(unique) == 0 {
		return details, nil
	}

	batches := make([][]string, 0, len(unique)/services.MaxVideoBatchSize+1)
	for start := 0; start < len(unique); start += services.MaxVideoBatchSize {
		end := min(start+services.MaxVideoBatchSize, len(unique))
		batches = append(batches, unique[start:end])
	}

	var failures []BatchFailure
	for i, batch := range batches {
		if err := ctx.Err(); err != nil {
			return details, err
		}
		e.sendProgress(progress, resolveBatchUpdate(i+1, len(batches), len(batch)))
		if err := e.limiter.Wait(ctx); err != nil {
			return details, err
		}
		videos, err := e.videos.ListVideos(ctx, batch)
		if err != nil {
			e.sendProgress(progress, resolveFailedUpdate(i+1, len(batches), err))
			failures = append(failures, BatchFailure{IDs: batch, Err: err})
			continue
		}
		for _, v := range videos {
			details[v.ID] = v
		}
	}

	if len(failures) > 0 {
		return details, &BatchError{Failures: failures}
	}
	return details, nil
}

// Aggregate runs the full pipeline: fetch tasks, resolve their videos, and
// compute collection statistics. A partial batch failure still yields a
// usable result; the error is passed through for the caller to report.
func (e *VideoEngine) Aggregate(ctx context.Context, progress chan<- ProgressUpdate) (*models.AggregatedResult, error) {
	items, err := e.FetchTasksWithVideos(ctx, progress)
	if err != nil {
		return nil, err
	}

	var refs []models.VideoRef
	for _, task := range items {
		refs = append(refs, task.VideoIDs...)
	}

	details, err := e.ResolveVideoDetails(ctx, progress, refs)
	if err != nil {
		var batchErr *BatchError
		if !errors.As(err, &batchErr) {
			return nil, err
		}
	}

	result := &models.AggregatedResult{
		Tasks:  items,
		Videos: details,
	}
	result.Stats = computeStats(result)
	return result, err
}

// computeStats derives collection totals from the resolved videos only;
// unresolved references contribute nothing.
func computeStats(result *models.AggregatedResult) models.Stats {
	stats := models.Stats{DistinctVideos: len(result.Videos)}
	for _, v := range result.Videos {
		stats.TotalDurationSeconds += v.DurationSeconds()
	}
	return stats
}
