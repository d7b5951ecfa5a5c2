// Package file stores localized output files on the local filesystem or in
// Amazon S3 (and S3-compatible services such as MinIO).
//
// Both backends implement Storage. Paths are slash-separated and relative to
// the storage root: a directory for LocalStorage, a bucket (plus optional key
// prefix) for S3Storage.
//
//	storage, err := file.NewLocalStorage("dist")
//	if err != nil {
//		return err
//	}
//	err = storage.Write(ctx, "app/resources/de/appinfo.json", data)
//
// Using S3 storage:
//
//	storage, err := file.NewS3Storage(ctx, file.S3Config{
//		Bucket: "l10n-output",
//		Region: "eu-central-1",
//		Prefix: "release-42",
//	})
//
// Walk visits every file below a directory in lexical order on either
// backend; the manifest writer is built on it.
//
// # Error Handling
//
// S3-specific errors are mapped to the package errors:
//   - NoSuchBucket -> ErrBucketNotFound
//   - NoSuchKey -> ErrFileNotFound
//   - AccessDenied -> ErrAccessDenied
package file
