// package testing contains shared testing utilities
package testing

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"slices"
	"strconv"
	"testing"

	"github.com/desertthunder/tasktube/internal/models"
	"github.com/desertthunder/tasktube/internal/services"
)

// FakeTaskService is a test double for [services.TaskService]. Lists and
// tasks are served from memory; a positive PageSize splits responses into
// pages joined by numeric offset tokens so callers exercise pagination.
type FakeTaskService struct {
	Lists    []models.TaskListRef
	Tasks    map[string][]models.TaskItem // list ID -> tasks
	PageSize int
	ListErr  error            // returned by ListTaskLists
	TaskErrs map[string]error // per-list ListTasks failures

	ListCalls int
	TaskCalls int
}

func (f *FakeTaskService) ListTaskLists(ctx context.Context, pageToken string) (*services.TaskListPage, error) {
	f.ListCalls++
	if f.ListErr != nil {
		return nil, f.ListErr
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	items, next, err := paginate(f.Lists, pageToken, f.PageSize)
	if err != nil {
		return nil, err
	}
	return &services.TaskListPage{Items: items, NextPageToken: next}, nil
}

func (f *FakeTaskService) ListTasks(ctx context.Context, listID, pageToken string) (*services.TaskPage, error) {
	f.TaskCalls++
	if err, ok := f.TaskErrs[listID]; ok {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	items, next, err := paginate(f.Tasks[listID], pageToken, f.PageSize)
	if err != nil {
		return nil, err
	}
	return &services.TaskPage{Items: items, NextPageToken: next}, nil
}

func (f *FakeTaskService) Name() string { return "fake_tasks" }

// FakeVideoService is a test double for [services.VideoService]. Details are
// served from Videos; unknown IDs are silently omitted, matching the real
// API. Batches containing any ID in FailContaining fail wholesale.
type FakeVideoService struct {
	Videos         map[string]models.VideoDetail
	FailContaining []string

	Batches [][]string
}

func (f *FakeVideoService) ListVideos(ctx context.Context, ids []string) ([]models.VideoDetail, error) {
	f.Batches = append(f.Batches, slices.Clone(ids))
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	for _, poison := range f.FailContaining {
		if slices.Contains(ids, poison) {
			return nil, fmt.Errorf("videos.list failed for batch containing %s", poison)
		}
	}
	var out []models.VideoDetail
	for _, id := range ids {
		if v, ok := f.Videos[id]; ok {
			out = append(out, v)
		}
	}
	return out, nil
}

func (f *FakeVideoService) Name() string { return "fake_videos" }

// paginate slices items into pages of pageSize, using the numeric offset as
// the page token. A pageSize of zero serves everything in one page.
func paginate[T any](items []T, pageToken string, pageSize int) ([]T, string, error) {
	if pageSize <= 0 {
		return items, "", nil
	}
	offset := 0
	if pageToken != "" {
		n, err := strconv.Atoi(pageToken)
		if err != nil {
			return nil, "", fmt.Errorf("bad page token %q", pageToken)
		}
		offset = n
	}
	if offset >= len(items) {
		return nil, "", nil
	}
	end := min(offset+pageSize, len(items))
	next := ""
	if end < len(items) {
		next = strconv.Itoa(end)
	}
	return items[offset:end], next, nil
}

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// MockRoundTripper allows custom HTTP responses for testing
type MockRoundTripper struct {
	response *http.Response
	err      error
}

func NewMockRoundTripper(r *http.Response, e error) *MockRoundTripper {
	return &MockRoundTripper{response: r, err: e}
}

func (m *MockRoundTripper) RoundTrip(*http.Request) (*http.Response, error) {
	return m.response, m.err
}

func MustGetwd(t *testing.T) string {
	t.Helper()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Failed to get working directory: %v", err)
	}
	return wd
}

func MustChdir(t *testing.T, dir string) {
	t.Helper()
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("Failed to change directory to %s: %v", dir, err)
	}
}

func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("File does not exist: %s", path)
	}
}

func MustReadFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(content)
}
