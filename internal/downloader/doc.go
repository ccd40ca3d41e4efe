// Package downloader streams a model file over HTTP to local storage.
//
// The download is a strictly sequential read-chunk/write-chunk loop: each
// chunk is read fully, written fully, and reported before the next read.
// At most one chunk is held in memory. Cancellation is cooperative and is
// checked at each loop boundary.
//
// # Usage
//
//	res, err := downloader.Download(ctx, url, destDir, downloader.Options{
//	    OnProgress: reporter.Update,
//	})
//	// res.Path is destDir/<filename derived from the URL>
//
// # Failure
//
// Failures are terminal and are classified as ErrNetwork or ErrFilesystem
// with the underlying cause attached. A partially written destination file
// is left in place; callers that want cleanup must do it themselves.
package downloader
