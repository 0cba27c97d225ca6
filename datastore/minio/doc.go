// Package minio provides a datastore.Store implementation backed by an
// S3-compatible object store via the MinIO client.
package minio
