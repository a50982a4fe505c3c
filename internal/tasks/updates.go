package tasks

import "fmt"

// ProgressUpdate represents a progress event during a long-running operation.
//
// Used to send real-time updates to the CLI or UI layer for display.
type ProgressUpdate struct {
	Phase   Phase  // Operation phase
	Step    int    // Current step number within phase
	Total   int    // Total steps in this phase
	Message string // Human-readable message for display
	Data    any    // Optional phase-specific data for advanced UIs
}

// Operation phase enumeration
type Phase int

const (
	FetchLists Phase = iota
	FetchTasks
	ResolveVideos
)

func (p Phase) String() string {
	switch p {
	case FetchLists:
		return "fetch_lists"
	case FetchTasks:
		return "fetch_tasks"
	case ResolveVideos:
		return "resolve_videos"
	default:
		return ""
	}
}

func fetchListsUpdate(step, total int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   FetchLists,
		Step:    step,
		Total:   total,
		Message: "Fetching task lists...",
	}
}

func fetchTasksUpdate(step, total int, listTitle string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   FetchTasks,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] Fetching tasks: %s...", step, total, listTitle),
	}
}

func resolveBatchUpdate(step, total, count int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ResolveVideos,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] Resolving %d videos...", step, total, count),
	}
}

func resolveFailedUpdate(step, total int, err error) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ResolveVideos,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] ✗ batch failed: %v", step, total, err),
	}
}
