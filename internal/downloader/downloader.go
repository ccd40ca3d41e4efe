package downloader

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"

	fetchhttp "avatarfetch/internal/http"
	"avatarfetch/internal/progress"
	"avatarfetch/internal/request"
)

// DefaultChunkSize is the size of each read chunk.
const DefaultChunkSize = 1 << 20 // 1 MiB

// Failure kinds. The underlying cause is attached to the message; match
// with errors.Is.
var (
	ErrNetwork    = errors.New("downloader: network failure")
	ErrFilesystem = errors.New("downloader: filesystem failure")
)

// Options configures a download.
type Options struct {
	// ChunkSize is the size of each read chunk.
	// Default: DefaultChunkSize.
	ChunkSize int64

	// OnProgress, if non-nil, receives one snapshot per chunk. It is
	// invoked on the download goroutine and must not block.
	OnProgress progress.Func

	// Client is the HTTP client to use.
	// Default: a client with fetchhttp.DefaultOptions.
	Client *fetchhttp.Client

	// FS is the destination filesystem, rooted at the destination
	// directory. Default: the OS filesystem rooted at destDir.
	FS billy.Filesystem
}

// Result is the terminal outcome of a successful download.
type Result struct {
	// Path is the destination file path.
	Path string

	// Bytes is the number of bytes written.
	Bytes int64

	// Elapsed is the wall-clock duration of the download.
	Elapsed time.Duration
}

// Download fetches url into destDir, streaming the response body to storage
// in fixed-size chunks. The destination filename is derived from the URL's
// final path segment. Progress is reported after each chunk when the server
// announced a total size; otherwise snapshots are indeterminate.
//
// On failure the partially written destination file is left in place and
// the error carries the failure kind and cause.
func Download(ctx context.Context, url request.RequestURL, destDir string, opts Options) (Result, error) {
	if opts.ChunkSize <= 0 {
		opts.ChunkSize = DefaultChunkSize
	}
	if opts.Client == nil {
		opts.Client = fetchhttp.NewClient(fetchhttp.DefaultOptions())
	}
	fs := opts.FS
	if fs == nil {
		fs = osfs.New(destDir)
	}

	filename := url.Filename()
	if filename == "" {
		return Result{}, fmt.Errorf("downloader: cannot derive filename from URL %q", url)
	}
	destPath := filepath.Join(destDir, filename)

	start := time.Now()

	resp, err := opts.Client.Get(ctx, url.String())
	if err != nil {
		return Result{}, fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	defer resp.Body.Close()

	total := resp.ContentLength

	f, err := fs.Create(filename)
	if err != nil {
		return Result{}, fmt.Errorf("%w: create %s: %v", ErrFilesystem, destPath, err)
	}

	var downloaded int64
	buf := make([]byte, opts.ChunkSize)
	for {
		// Cooperative cancellation between chunks.
		if err := ctx.Err(); err != nil {
			f.Close()
			return Result{}, err
		}

		n, rerr := readChunk(resp.Body, buf)
		if n > 0 {
			if _, werr := f.Write(buf[:n]); werr != nil {
				f.Close()
				return Result{}, fmt.Errorf("%w: write %s: %v", ErrFilesystem, destPath, werr)
			}
			downloaded += int64(n)

			if opts.OnProgress != nil {
				opts.OnProgress(progress.Make(downloaded, total, time.Since(start)))
			}
		}

		if rerr == io.EOF {
			break
		}
		if rerr != nil {
			f.Close()
			return Result{}, fmt.Errorf("%w: read response: %v", ErrNetwork, rerr)
		}
	}

	if err := f.Close(); err != nil {
		return Result{}, fmt.Errorf("%w: close %s: %v", ErrFilesystem, destPath, err)
	}

	return Result{
		Path:    destPath,
		Bytes:   downloaded,
		Elapsed: time.Since(start),
	}, nil
}

// readChunk fills buf from r, returning early only on error. A clean end
// of body surfaces as io.EOF with whatever bytes preceded it; a body that
// dies mid-transfer keeps its own error (e.g. io.ErrUnexpectedEOF from a
// Content-Length mismatch) so the caller can tell truncation from a short
// final chunk.
func readChunk(r io.Reader, buf []byte) (int, error) {
	var n int
	for n < len(buf) {
		m, err := r.Read(buf[n:])
		n += m
		if err != nil {
			return n, err
		}
	}
	return n, nil
}
