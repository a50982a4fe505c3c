package tasks

import (
	"testing"

	"github.com/desertthunder/tasktube/internal/models"
)

func sortFixture() *models.AggregatedResult {
	return &models.AggregatedResult{
		Tasks: []models.TaskItem{
			{ID: "t1", Title: "zebra talk", List: models.TaskListRef{ID: "l2", Title: "Talks"}, VideoIDs: []models.VideoRef{"v1"}},
			{ID: "t2", Title: "Alpha course", List: models.TaskListRef{ID: "l1", Title: "Courses"}, VideoIDs: []models.VideoRef{"v2"}},
			{ID: "t3", Title: "beta talk", List: models.TaskListRef{ID: "l2", Title: "Talks"}, VideoIDs: []models.VideoRef{"v3"}},
			{ID: "t4", Title: "gamma", List: models.TaskListRef{ID: "l1", Title: "Courses"}, VideoIDs: []models.VideoRef{"v4", "v5"}},
		},
		Videos: map[models.VideoRef]models.VideoDetail{
			"v1": {ID: "v1", Channel: "MKBHD", Duration: "PT10M"},
			"v2": {ID: "v2", Channel: "andrej", Duration: "PT2H"},
			"v3": {ID: "v3", Channel: "Fireship", Duration: "PT4M"},
			"v4": {ID: "v4", Channel: "Zed", Duration: "PT30M"},
			"v5": {ID: "v5", Channel: "Other", Duration: "PT30M"},
		},
	}
}

func taskOrder(result *models.AggregatedResult) []string {
	ids := make([]string, len(result.Tasks))
	for i, task := range result.Tasks {
		ids[i] = task.ID
	}
	return ids
}

func assertOrder(t *testing.T, got, want []string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("length mismatch: %v vs %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order = %v, want %v", got, want)
		}
	}
}

func TestSort(t *testing.T) {
	t.Run("alphabetical ignores case", func(t *testing.T) {
		result := sortFixture()
		Sort(result, SortAlphabetical)
		assertOrder(t, taskOrder(result), []string{"t2", "t3", "t4", "t1"})
	})

	t.Run("tasklist groups by list, ties keep order", func(t *testing.T) {
		result := sortFixture()
		Sort(result, SortTaskList)
		assertOrder(t, taskOrder(result), []string{"t2", "t4", "t1", "t3"})
	})

	t.Run("tasklist does not reorder within a list", func(t *testing.T) {
		result := &models.AggregatedResult{
			Tasks: []models.TaskItem{
				{ID: "t1", Title: "zzz", List: models.TaskListRef{ID: "l1", Title: "Same"}},
				{ID: "t2", Title: "aaa", List: models.TaskListRef{ID: "l1", Title: "Same"}},
			},
		}
		Sort(result, SortTaskList)
		assertOrder(t, taskOrder(result), []string{"t1", "t2"})
	})

	t.Run("duration sums every resolved video", func(t *testing.T) {
		result := sortFixture()
		Sort(result, SortDuration)
		// t3 4m, t1 10m, t4 30m+30m, t2 2h
		assertOrder(t, taskOrder(result), []string{"t3", "t1", "t4", "t2"})
	})

	t.Run("channel uses the first resolved video", func(t *testing.T) {
		result := sortFixture()
		Sort(result, SortChannel)
		// andrej, Fireship, MKBHD, Zed (case-insensitive)
		assertOrder(t, taskOrder(result), []string{"t2", "t3", "t1", "t4"})
	})

	t.Run("channel does not reorder within a channel", func(t *testing.T) {
		result := &models.AggregatedResult{
			Tasks: []models.TaskItem{
				{ID: "t1", Title: "zzz", VideoIDs: []models.VideoRef{"v1"}},
				{ID: "t2", Title: "aaa", VideoIDs: []models.VideoRef{"v2"}},
			},
			Videos: map[models.VideoRef]models.VideoDetail{
				"v1": {ID: "v1", Channel: "Same"},
				"v2": {ID: "v2", Channel: "same"},
			},
		}
		Sort(result, SortChannel)
		assertOrder(t, taskOrder(result), []string{"t1", "t2"})
	})

	t.Run("unresolved channel sorts first", func(t *testing.T) {
		result := sortFixture()
		result.Tasks = append(result.Tasks, models.TaskItem{
			ID: "t5", Title: "mystery", VideoIDs: []models.VideoRef{"gone"},
		})
		Sort(result, SortChannel)
		if result.Tasks[0].ID != "t5" {
			t.Errorf("expected the unresolved task first, got %v", taskOrder(result))
		}
	})

	t.Run("shuffle keeps every task", func(t *testing.T) {
		result := sortFixture()
		Sort(result, SortShuffle)
		if len(result.Tasks) != 4 {
			t.Fatalf("shuffle changed the task count: %d", len(result.Tasks))
		}
		seen := make(map[string]bool)
		for _, task := range result.Tasks {
			seen[task.ID] = true
		}
		for _, id := range []string{"t1", "t2", "t3", "t4"} {
			if !seen[id] {
				t.Errorf("task %s lost in shuffle", id)
			}
		}
	})

	t.Run("stability on equal keys", func(t *testing.T) {
		result := sortFixture()
		// Give every task the same title; order must be untouched.
		for i := range result.Tasks {
			result.Tasks[i].Title = "same"
		}
		before := taskOrder(result)
		Sort(result, SortAlphabetical)
		assertOrder(t, taskOrder(result), before)
	})

	t.Run("nil and tiny inputs are no-ops", func(t *testing.T) {
		Sort(nil, SortAlphabetical)
		result := &models.AggregatedResult{Tasks: []models.TaskItem{{ID: "only"}}}
		Sort(result, SortDuration)
		if result.Tasks[0].ID != "only" {
			t.Error("single element disturbed")
		}
	})
}

func TestParseSortCriterion(t *testing.T) {
	tc := []struct {
		input   string
		want    SortCriterion
		wantErr bool
	}{
		{"alphabetical", SortAlphabetical, false},
		{"", SortAlphabetical, false},
		{"LIST", SortTaskList, false},
		{"duration", SortDuration, false},
		{"channel", SortChannel, false},
		{"random", SortShuffle, false},
		{"bogus", SortAlphabetical, true},
	}
	for _, c := range tc {
		got, err := ParseSortCriterion(c.input)
		if c.wantErr != (err != nil) {
			t.Errorf("ParseSortCriterion(%q) error = %v", c.input, err)
			continue
		}
		if got != c.want {
			t.Errorf("ParseSortCriterion(%q) = %v, want %v", c.input, got, c.want)
		}
	}
}
