// Package models contains the typed entities flowing through the
// aggregation pipeline: task lists, tasks, video references, resolved video
// details, and per-run aggregates.
//
// Entities are plain value types. They are created by the services and
// tasks packages during a run and discarded when the run ends; only
// credentials persist (see internal/auth and internal/repositories).
package models
