// Package progress models download progress and renders it for humans.
//
// A download emits one Snapshot per chunk through a Func callback. The
// callback contract is deliberately small: it may be invoked many times
// during a single download and must return quickly, so implementations
// should hand off any slow work instead of blocking the download loop.
//
// # Usage
//
//	reporter := progress.NewReporter(os.Stdout, "avatar.glb")
//
//	downloader.Download(ctx, url, dir, downloader.Options{
//	    OnProgress: reporter.Update,
//	})
//
// # Output Format
//
//	Downloaded 40% (4.00 MB / 10.00 MB) in 1.52 seconds
//
// When the server did not announce a total size the percentage is unknown
// and only the byte count is shown.
package progress
