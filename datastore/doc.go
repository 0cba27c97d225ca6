// Package datastore provides the storage abstraction for named arrays.
//
// Store is the narrow boundary the core depends on: put/get one named typed
// array, put/get one attribute document, delete, list. The store owns byte
// order, on-media representation, compression and durability; the core maps
// container buffers onto names and never retries.
//
// # Built-in Implementations
//
//   - MemoryStore: map-backed, for tests and transient pipelines
//   - LocalStore: local filesystem, block compression, mmap reads
//   - minio.Store: MinIO / S3-compatible object storage
//   - Throttled: concurrency and byte-rate limits around any Store
package datastore
