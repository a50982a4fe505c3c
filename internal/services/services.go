// package services defines interfaces for the two read-only provider APIs
//
// Google Tasks (paginated), YouTube Data (batched)
package services

import (
	"context"

	"github.com/desertthunder/tasktube/internal/models"
)

// MaxVideoBatchSize is the provider-imposed ceiling on identifiers per
// video lookup call.
const MaxVideoBatchSize = 50

// TaskListPage is one page of task lists with its continuation token.
type TaskListPage struct {
	Items         []models.TaskListRef
	NextPageToken string
}

// TaskPage is one page of tasks with its continuation token.
//
// Items carry raw task fields only; video reference extraction happens in
// the aggregator.
type TaskPage struct {
	Items         []models.TaskItem
	NextPageToken string
}

// TaskService provides page-level access to the task API. Callers own the
// pagination loop; an empty NextPageToken means the sequence is exhausted.
type TaskService interface {
	// ListTaskLists fetches one page of the user's task lists.
	ListTaskLists(ctx context.Context, pageToken string) (*TaskListPage, error)

	// ListTasks fetches one page of tasks in a list, with hidden and
	// completed tasks included. Completed tasks are filtered by the caller.
	ListTasks(ctx context.Context, listID, pageToken string) (*TaskPage, error)

	// Name returns the name of the service (e.g. "Google Tasks")
	Name() string
}

// VideoService resolves video metadata for a single batch of identifiers.
type VideoService interface {
	// ListVideos fetches details for up to [MaxVideoBatchSize] identifiers.
	// Identifiers the provider does not recognize are absent from the
	// result; that is not an error.
	ListVideos(ctx context.Context, ids []string) ([]models.VideoDetail, error)

	// Name returns the name of the service (e.g. "YouTube Data")
	Name() string
}
