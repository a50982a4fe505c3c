// Package services wraps the two external provider APIs behind small
// interfaces so the aggregation pipeline can be driven by fakes in tests.
//
// [TaskService] exposes page-level calls; pagination loops live in the
// aggregator, which treats continuation tokens as opaque. [VideoService]
// exposes a single batch lookup bounded by [MaxVideoBatchSize]; batching
// and deduplication also live in the aggregator.
//
// Both Google-backed implementations accept option.ClientOption so that
// production wiring injects an authenticated HTTP client while tests point
// the clients at an httptest server.
package services
