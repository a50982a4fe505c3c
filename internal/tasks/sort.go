package tasks

import (
	"fmt"
	"math/rand"
	"sort"
	"strings"

	"github.com/desertthunder/tasktube/internal/models"
	"github.com/desertthunder/tasktube/internal/shared"
)

// SortCriterion selects the ordering applied to aggregated tasks.
type SortCriterion int

const (
	SortAlphabetical SortCriterion = iota
	SortTaskList
	SortDuration
	SortChannel
	SortShuffle
)

func (c SortCriterion) String() string {
	switch c {
	case SortAlphabetical:
		return "alphabetical"
	case SortTaskList:
		return "tasklist"
	case SortDuration:
		return "duration"
	case SortChannel:
		return "channel"
	case SortShuffle:
		return "shuffle"
	default:
		return ""
	}
}

// ParseSortCriterion maps a user-supplied name to a criterion.
func ParseSortCriterion(name string) (SortCriterion, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "alphabetical", "alpha", "title":
		return SortAlphabetical, nil
	case "tasklist", "list":
		return SortTaskList, nil
	case "duration", "length":
		return SortDuration, nil
	case "channel":
		return SortChannel, nil
	case "shuffle", "random":
		return SortShuffle, nil
	default:
		return SortAlphabetical, fmt.Errorf("%w: unknown sort criterion %q", shared.ErrInvalidFlag, name)
	}
}

// SortCriteria lists every criterion in cycle order for UI layers.
func SortCriteria() []SortCriterion {
	return []SortCriterion{SortAlphabetical, SortTaskList, SortDuration, SortChannel, SortShuffle}
}

// Sort reorders the result's tasks in place by the given criterion. All
// comparisons are case-insensitive and the sort is stable, so ties keep
// their previous relative order. Shuffle draws a uniformly random
// permutation instead.
func Sort(result *models.AggregatedResult, criterion SortCriterion) {
	if result == nil || len(result.Tasks) < 2 {
		return
	}
	items := result.Tasks

	switch criterion {
	case SortShuffle:
		rand.Shuffle(len(items), func(i, j int) {
			items[i], items[j] = items[j], items[i]
		})
	case SortTaskList:
		sort.SliceStable(items, func(i, j int) bool {
			return strings.ToLower(items[i].List.Title) < strings.ToLower(items[j].List.Title)
		})
	case SortDuration:
		sort.SliceStable(items, func(i, j int) bool {
			return result.TaskDurationSeconds(items[i]) < result.TaskDurationSeconds(items[j])
		})
	case SortChannel:
		sort.SliceStable(items, func(i, j int) bool {
			return strings.ToLower(taskChannel(result, items[i])) < strings.ToLower(taskChannel(result, items[j]))
		})
	default:
		sort.SliceStable(items, func(i, j int) bool {
			return strings.ToLower(items[i].Title) < strings.ToLower(items[j].Title)
		})
	}
}

// taskChannel returns the channel of the task's first resolved video. Tasks
// whose videos all failed to resolve sort with an empty channel, which
// places them first.
func taskChannel(result *models.AggregatedResult, task models.TaskItem) string {
	for _, id := range task.VideoIDs {
		if v, ok := result.Videos[id]; ok {
			return v.Channel
		}
	}
	return ""
}
