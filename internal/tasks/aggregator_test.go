package tasks

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/desertthunder/tasktube/internal/models"
	"github.com/desertthunder/tasktube/internal/shared"
	testlib "github.com/desertthunder/tasktube/internal/testing"
)

// fastEngine builds a VideoEngine whose rate limiter never throttles a test.
func fastEngine(tasksSvc *testlib.FakeTaskService, videoSvc *testlib.FakeVideoService) *VideoEngine {
	return NewVideoEngine(tasksSvc, videoSvc, AggregatorOpts{RateLimit: 100000})
}

func video(id, channel, duration string) models.VideoDetail {
	return models.VideoDetail{
		ID:       id,
		Title:    "Video " + id,
		Channel:  channel,
		Duration: duration,
	}
}

func TestFetchTasksWithVideos(t *testing.T) {
	ctx := context.Background()

	t.Run("walks every page of every list", func(t *testing.T) {
		svc := &testlib.FakeTaskService{
			PageSize: 2,
			Lists: []models.TaskListRef{
				{ID: "l1", Title: "Watch Later"},
				{ID: "l2", Title: "Courses"},
				{ID: "l3", Title: "Talks"},
			},
			Tasks: map[string][]models.TaskItem{
				"l1": {
					{ID: "t1", Title: "https://youtube.com/watch?v=aaa111aaa11"},
					{ID: "t2", Title: "watch https://youtu.be/bbb222bbb22"},
					{ID: "t3", Title: "https://youtu.be/ccc333ccc33"},
				},
				"l2": {
					{ID: "t4", Title: "no link here", Notes: "https://youtube.com/watch?v=ddd444ddd44"},
				},
				"l3": {},
			},
		}

		items, err := fastEngine(svc, nil).FetchTasksWithVideos(ctx, nil)
		if err != nil {
			t.Fatalf("FetchTasksWithVideos failed: %v", err)
		}
		if len(items) != 4 {
			t.Fatalf("expected 4 tasks, got %d", len(items))
		}
		if svc.ListCalls != 2 {
			t.Errorf("expected 2 list pages to be fetched, got %d", svc.ListCalls)
		}
		if items[0].List.Title != "Watch Later" {
			t.Errorf("list not attached to task: %+v", items[0])
		}
		if len(items[3].VideoIDs) != 1 || items[3].VideoIDs[0] != "ddd444ddd44" {
			t.Errorf("notes link not extracted: %v", items[3].VideoIDs)
		}
	})

	t.Run("completed and linkless tasks are excluded", func(t *testing.T) {
		svc := &testlib.FakeTaskService{
			Lists: []models.TaskListRef{{ID: "l1", Title: "Watch Later"}},
			Tasks: map[string][]models.TaskItem{
				"l1": {
					{ID: "t1", Title: "https://youtu.be/aaa111aaa11", Status: models.StatusCompleted},
					{ID: "t2", Title: "buy milk"},
					{ID: "t3", Title: "https://youtu.be/bbb222bbb22", Status: models.StatusNeedsAction},
				},
			},
		}

		items, err := fastEngine(svc, nil).FetchTasksWithVideos(ctx, nil)
		if err != nil {
			t.Fatal(err)
		}
		if len(items) != 1 || items[0].ID != "t3" {
			t.Errorf("expected only the open linked task, got %+v", items)
		}
	})

	t.Run("title links come before notes links, repeats kept", func(t *testing.T) {
		svc := &testlib.FakeTaskService{
			Lists: []models.TaskListRef{{ID: "l1", Title: "Watch Later"}},
			Tasks: map[string][]models.TaskItem{
				"l1": {{
					ID:    "t1",
					Title: "https://youtu.be/ttt111ttt11",
					Notes: "see also https://youtu.be/nnn222nnn22 and again https://youtu.be/ttt111ttt11",
				}},
			},
		}

		items, err := fastEngine(svc, nil).FetchTasksWithVideos(ctx, nil)
		if err != nil {
			t.Fatal(err)
		}
		want := []models.VideoRef{"ttt111ttt11", "nnn222nnn22", "ttt111ttt11"}
		if len(items) != 1 || len(items[0].VideoIDs) != len(want) {
			t.Fatalf("unexpected extraction: %+v", items)
		}
		for i, id := range want {
			if items[0].VideoIDs[i] != id {
				t.Errorf("VideoIDs[%d] = %s, want %s", i, items[0].VideoIDs[i], id)
			}
		}
	})

	t.Run("list failure surfaces as an API error", func(t *testing.T) {
		svc := &testlib.FakeTaskService{ListErr: fmt.Errorf("boom")}
		if _, err := fastEngine(svc, nil).FetchTasksWithVideos(ctx, nil); !errors.Is(err, shared.ErrAPIRequest) {
			t.Errorf("expected ErrAPIRequest, got %v", err)
		}
	})

	t.Run("cancelled context stops the walk", func(t *testing.T) {
		cancelled, cancel := context.WithCancel(ctx)
		cancel()
		svc := &testlib.FakeTaskService{Lists: []models.TaskListRef{{ID: "l1"}}}
		if _, err := fastEngine(svc, nil).FetchTasksWithVideos(cancelled, nil); !errors.Is(err, context.Canceled) {
			t.Errorf("expected context.Canceled, got %v", err)
		}
	})

	t.Run("nil service", func(t *testing.T) {
		engine := fastEngine(nil, nil)
		engine.tasks = nil
		if _, err := engine.FetchTasksWithVideos(ctx, nil); !errors.Is(err, shared.ErrServiceUnavailable) {
			t.Errorf("expected ErrServiceUnavailable, got %v", err)
		}
	})
}

func TestResolveVideoDetails(t *testing.T) {
	ctx := context.Background()

	manyIDs := func(n int) []models.VideoRef {
		ids := make([]models.VideoRef, n)
		for i := range ids {
			ids[i] = fmt.Sprintf("vid%08d", i)
		}
		return ids
	}

	t.Run("batches stay under the API limit", func(t *testing.T) {
		ids := manyIDs(120)
		svc := &testlib.FakeVideoService{Videos: map[string]models.VideoDetail{}}
		for _, id := range ids {
			svc.Videos[id] = video(id, "chan", "PT1M")
		}

		details, err := fastEngine(nil, svc).ResolveVideoDetails(ctx, nil, ids)
		if err != nil {
			t.Fatalf("ResolveVideoDetails failed: %v", err)
		}
		if len(details) != 120 {
			t.Errorf("expected 120 resolved videos, got %d", len(details))
		}
		if len(svc.Batches) != 3 {
			t.Fatalf("expected 3 batches, got %d", len(svc.Batches))
		}
		for i, want := range []int{50, 50, 20} {
			if len(svc.Batches[i]) != want {
				t.Errorf("batch %d has %d ids, want %d", i, len(svc.Batches[i]), want)
			}
		}
	})

	t.Run("duplicates collapse before batching", func(t *testing.T) {
		svc := &testlib.FakeVideoService{Videos: map[string]models.VideoDetail{
			"aaa111aaa11": video("aaa111aaa11", "chan", "PT1M"),
		}}
		ids := []models.VideoRef{"aaa111aaa11", "aaa111aaa11", "", "aaa111aaa11"}

		details, err := fastEngine(nil, svc).ResolveVideoDetails(ctx, nil, ids)
		if err != nil {
			t.Fatal(err)
		}
		if len(details) != 1 {
			t.Errorf("expected 1 resolved video, got %d", len(details))
		}
		if len(svc.Batches) != 1 || len(svc.Batches[0]) != 1 {
			t.Errorf("duplicates reached the API: %v", svc.Batches)
		}
	})

	t.Run("a failed batch does not abort the rest", func(t *testing.T) {
		ids := manyIDs(120)
		svc := &testlib.FakeVideoService{
			Videos:         map[string]models.VideoDetail{},
			FailContaining: []string{"vid00000060"}, // second batch
		}
		for _, id := range ids {
			svc.Videos[id] = video(id, "chan", "PT1M")
		}

		details, err := fastEngine(nil, svc).ResolveVideoDetails(ctx, nil, ids)
		if !errors.Is(err, shared.ErrPartialBatch) {
			t.Fatalf("expected ErrPartialBatch, got %v", err)
		}
		var batchErr *BatchError
		if !errors.As(err, &batchErr) {
			t.Fatalf("expected *BatchError, got %T", err)
		}
		if len(batchErr.Failures) != 1 || len(batchErr.Failures[0].IDs) != 50 {
			t.Errorf("unexpected failure record: %+v", batchErr.Failures)
		}
		if len(details) != 70 {
			t.Errorf("expected 70 resolved videos from surviving batches, got %d", len(details))
		}
	})

	t.Run("unknown ids are omitted without error", func(t *testing.T) {
		svc := &testlib.FakeVideoService{Videos: map[string]models.VideoDetail{
			"aaa111aaa11": video("aaa111aaa11", "chan", "PT1M"),
		}}
		details, err := fastEngine(nil, svc).ResolveVideoDetails(ctx, nil, []models.VideoRef{"aaa111aaa11", "gone0000000"})
		if err != nil {
			t.Fatal(err)
		}
		if len(details) != 1 {
			t.Errorf("expected the deleted video to be absent, got %v", details)
		}
	})

	t.Run("empty input makes no API call", func(t *testing.T) {
		svc := &testlib.FakeVideoService{}
		details, err := fastEngine(nil, svc).ResolveVideoDetails(ctx, nil, nil)
		if err != nil {
			t.Fatal(err)
		}
		if len(details) != 0 || len(svc.Batches) != 0 {
			t.Errorf("expected no batches for empty input, got %v", svc.Batches)
		}
	})
}

func TestAggregate(t *testing.T) {
	ctx := context.Background()

	tasksSvc := &testlib.FakeTaskService{
		Lists: []models.TaskListRef{
			{ID: "l1", Title: "Watch Later"},
			{ID: "l2", Title: "Courses"},
		},
		Tasks: map[string][]models.TaskItem{
			"l1": {
				{ID: "t1", Title: "intro https://youtu.be/aaa111aaa11"},
				{ID: "t2", Title: "done https://youtu.be/bbb222bbb22", Status: models.StatusCompleted},
			},
			"l2": {
				{ID: "t3", Title: "course", Notes: "https://youtu.be/ccc333ccc33 https://youtu.be/aaa111aaa11"},
			},
		},
	}
	videoSvc := &testlib.FakeVideoService{Videos: map[string]models.VideoDetail{
		"aaa111aaa11": video("aaa111aaa11", "Alpha", "PT10M"),
		"ccc333ccc33": video("ccc333ccc33", "Gamma", "PT1H"),
	}}

	result, err := fastEngine(tasksSvc, videoSvc).Aggregate(ctx, nil)
	if err != nil {
		t.Fatalf("Aggregate failed: %v", err)
	}
	if len(result.Tasks) != 2 {
		t.Fatalf("expected 2 tasks, got %d", len(result.Tasks))
	}
	if result.Stats.DistinctVideos != 2 {
		t.Errorf("DistinctVideos = %d, want 2", result.Stats.DistinctVideos)
	}
	if want := 600 + 3600; result.Stats.TotalDurationSeconds != want {
		t.Errorf("TotalDurationSeconds = %d, want %d", result.Stats.TotalDurationSeconds, want)
	}

	t.Run("per task resolution helpers", func(t *testing.T) {
		videos := result.ResolvedVideos(result.Tasks[1])
		if len(videos) != 2 {
			t.Fatalf("expected both videos of t3 resolved, got %d", len(videos))
		}
		if got := result.TaskDurationSeconds(result.Tasks[1]); got != 4200 {
			t.Errorf("TaskDurationSeconds = %d, want 4200", got)
		}
	})

	t.Run("repeated references count toward task duration", func(t *testing.T) {
		repeated := &testlib.FakeTaskService{
			Lists: []models.TaskListRef{{ID: "l1", Title: "Watch Later"}},
			Tasks: map[string][]models.TaskItem{
				"l1": {{
					ID:    "t1",
					Title: "twice https://youtu.be/aaa111aaa11",
					Notes: "https://youtu.be/aaa111aaa11 https://youtu.be/ccc333ccc33",
				}},
			},
		}
		result, err := fastEngine(repeated, videoSvc).Aggregate(ctx, nil)
		if err != nil {
			t.Fatal(err)
		}
		if got := result.TaskDurationSeconds(result.Tasks[0]); got != 600+600+3600 {
			t.Errorf("TaskDurationSeconds = %d, want %d", got, 600+600+3600)
		}
		if result.Stats.DistinctVideos != 2 {
			t.Errorf("DistinctVideos = %d, want 2", result.Stats.DistinctVideos)
		}
	})

	t.Run("partial failure still yields a result", func(t *testing.T) {
		failing := &testlib.FakeVideoService{
			Videos:         videoSvc.Videos,
			FailContaining: []string{"aaa111aaa11"},
		}
		result, err := fastEngine(tasksSvc, failing).Aggregate(ctx, nil)
		if !errors.Is(err, shared.ErrPartialBatch) {
			t.Fatalf("expected ErrPartialBatch, got %v", err)
		}
		if result == nil || len(result.Tasks) != 2 {
			t.Fatal("expected the aggregated tasks despite the batch failure")
		}
	})
}
