// Google Tasks API [TaskService] implementation
//
// Thin wrapper over the official client; the aggregator never imports the
// Google SDK directly.
package services

import (
	"context"
	"fmt"
	"time"

	"github.com/desertthunder/tasktube/internal/models"
	"github.com/desertthunder/tasktube/internal/shared"
	"google.golang.org/api/option"
	tasksapi "google.golang.org/api/tasks/v1"
)

// GoogleTasksService implements [TaskService] against the Google Tasks API.
type GoogleTasksService struct {
	svc *tasksapi.Service
}

// NewGoogleTasksService creates a Tasks API client with the given options.
//
// Callers pass option.WithHTTPClient for an authenticated client, or
// option.WithEndpoint plus option.WithoutAuthentication in tests.
func NewGoogleTasksService(ctx context.Context, opts ...option.ClientOption) (*GoogleTasksService, error) {
	svc, err := tasksapi.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create tasks client: %w", err)
	}

	return &GoogleTasksService{svc: svc}, nil
}

// Name returns the service name.
func (g *GoogleTasksService) Name() string {
	return "Google Tasks"
}

// ListTaskLists fetches one page of the user's task lists.
func (g *GoogleTasksService) ListTaskLists(ctx context.Context, pageToken string) (*TaskListPage, error) {
	call := g.svc.Tasklists.List().Context(ctx)
	if pageToken != "" {
		call = call.PageToken(pageToken)
	}

	resp, err := call.Do()
	if err != nil {
		return nil, fmt.Errorf("%w: tasklists.list: %v", shared.ErrTransient, err)
	}

	page := &TaskListPage{
		Items:         make([]models.TaskListRef, 0, len(resp.Items)),
		NextPageToken: resp.NextPageToken,
	}
	for _, item := range resp.Items {
		page.Items = append(page.Items, models.TaskListRef{ID: item.Id, Title: item.Title})
	}

	return page, nil
}

// ListTasks fetches one page of tasks in the given list.
//
// Hidden and completed tasks are requested so the exclusion of completed
// tasks stays a client-side decision.
func (g *GoogleTasksService) ListTasks(ctx context.Context, listID, pageToken string) (*TaskPage, error) {
	call := g.svc.Tasks.List(listID).ShowHidden(true).ShowCompleted(true).Context(ctx)
	if pageToken != "" {
		call = call.PageToken(pageToken)
	}

	resp, err := call.Do()
	if err != nil {
		return nil, fmt.Errorf("%w: tasks.list(%s): %v", shared.ErrTransient, listID, err)
	}

	page := &TaskPage{
		Items:         make([]models.TaskItem, 0, len(resp.Items)),
		NextPageToken: resp.NextPageToken,
	}
	for _, item := range resp.Items {
		task := models.TaskItem{
			ID:          item.Id,
			Title:       item.Title,
			Notes:       item.Notes,
			Status:      item.Status,
			WebViewLink: item.WebViewLink,
		}
		if item.Due != "" {
			if due, err := time.Parse(time.RFC3339, item.Due); err == nil {
				task.Due = &due
			}
		}
		page.Items = append(page.Items, task)
	}

	return page, nil
}
