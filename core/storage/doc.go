// Package storage wraps the MinIO Go client for database snapshot uploads.
//
// It works against both AWS S3 and self-hosted MinIO instances. The Client interface
// keeps the operations the snapshot feature needs so they can be mocked
// (see core/storage/mocks).
//
// # Usage
//
//	client, err := storage.NewClient(cfg.Storage)
//	err = storage.EnsureBucket(ctx, client, cfg.Storage.Bucket, cfg.Storage.Region)
package storage
