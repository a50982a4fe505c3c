// package tasks turns Google Tasks lists into a browsable video collection.
//
// The core abstraction is VideoEngine, which walks every task list, extracts
// video links from incomplete tasks, and resolves the referenced videos in
// batches. Operations emit progress updates via channels for non-blocking
// status reporting to CLI/UI layers.
package tasks
