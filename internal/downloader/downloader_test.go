package downloader

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/util"

	"avatarfetch/internal/progress"
	"avatarfetch/internal/request"
	"avatarfetch/internal/testutils"
)

func TestDownloadProgressSequence(t *testing.T) {
	data := testutils.GenerateTestData(t, 10<<20) // 10 MiB
	server := testutils.ServeFile(t, data)
	defer server.Close()

	fs := memfs.New()
	var snaps []progress.Snapshot

	url := request.RequestURL(server.URL + "/avatars/a1.glb?pose=A")
	res, err := Download(context.Background(), url, "", Options{
		ChunkSize:  1 << 20,
		FS:         fs,
		OnProgress: func(s progress.Snapshot) { snaps = append(snaps, s) },
	})
	if err != nil {
		t.Fatalf("Download: %v", err)
	}

	if res.Path != "a1.glb" {
		t.Errorf("expected path 'a1.glb', got %q", res.Path)
	}
	if res.Bytes != int64(len(data)) {
		t.Errorf("expected %d bytes, got %d", len(data), res.Bytes)
	}

	if len(snaps) != 10 {
		t.Fatalf("expected 10 snapshots, got %d", len(snaps))
	}
	for i, s := range snaps {
		want := (i + 1) * 10
		if s.Percent != want {
			t.Errorf("snapshot %d: percent = %d, want %d", i, s.Percent, want)
		}
		if i > 0 && s.Percent < snaps[i-1].Percent {
			t.Errorf("snapshot %d: percent decreased (%d -> %d)", i, snaps[i-1].Percent, s.Percent)
		}
		if i > 0 && s.Elapsed < snaps[i-1].Elapsed {
			t.Errorf("snapshot %d: elapsed decreased", i)
		}
	}
	if final := snaps[len(snaps)-1].Percent; final != 100 {
		t.Errorf("final percent = %d, want 100", final)
	}

	got, err := util.ReadFile(fs, "a1.glb")
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if !bytes.Equal(got, data) {
		t.Error("downloaded content does not match source")
	}
}

func TestDownloadShortFinalChunk(t *testing.T) {
	// 2.5 chunks: the final read is shorter than the chunk size.
	data := testutils.GenerateTestData(t, 2560)
	server := testutils.ServeFile(t, data)
	defer server.Close()

	fs := memfs.New()
	var snaps []progress.Snapshot

	url := request.RequestURL(server.URL + "/model.glb?")
	res, err := Download(context.Background(), url, "", Options{
		ChunkSize:  1024,
		FS:         fs,
		OnProgress: func(s progress.Snapshot) { snaps = append(snaps, s) },
	})
	if err != nil {
		t.Fatalf("Download: %v", err)
	}
	if res.Bytes != 2560 {
		t.Errorf("expected 2560 bytes, got %d", res.Bytes)
	}

	if len(snaps) != 3 {
		t.Fatalf("expected 3 snapshots, got %d", len(snaps))
	}
	wantPct := []int{40, 80, 100}
	for i, s := range snaps {
		if s.Percent != wantPct[i] {
			t.Errorf("snapshot %d: percent = %d, want %d", i, s.Percent, wantPct[i])
		}
	}
}

func TestDownloadUnknownTotal(t *testing.T) {
	// Chunked transfer, no Content-Length.
	data := testutils.GenerateTestData(t, 4096)
	server := testutils.ServeChunked(t, data)
	defer server.Close()

	fs := memfs.New()
	var snaps []progress.Snapshot

	url := request.RequestURL(server.URL + "/model.glb?")
	res, err := Download(context.Background(), url, "", Options{
		ChunkSize:  1024,
		FS:         fs,
		OnProgress: func(s progress.Snapshot) { snaps = append(snaps, s) },
	})
	if err != nil {
		t.Fatalf("Download: %v", err)
	}
	if res.Bytes != int64(len(data)) {
		t.Errorf("expected %d bytes, got %d", len(data), res.Bytes)
	}

	if len(snaps) == 0 {
		t.Fatal("expected at least one snapshot")
	}
	for i, s := range snaps {
		if s.Known() {
			t.Errorf("snapshot %d: expected indeterminate total, got %d", i, s.Total)
		}
		if s.Percent != progress.IndeterminatePercent {
			t.Errorf("snapshot %d: percent = %d, want indeterminate", i, s.Percent)
		}
	}

	got, err := util.ReadFile(fs, "model.glb")
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if !bytes.Equal(got, data) {
		t.Error("downloaded content does not match source")
	}
}

func TestDownloadNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	fs := memfs.New()
	url := request.RequestURL(server.URL + "/missing.glb?")
	_, err := Download(context.Background(), url, "", Options{FS: fs})
	if !errors.Is(err, ErrNetwork) {
		t.Errorf("expected ErrNetwork, got %v", err)
	}

	// No destination file should have been created: the GET failed before
	// the file was opened.
	if _, serr := fs.Stat("missing.glb"); serr == nil {
		t.Error("expected no destination file after failed GET")
	}
}

func TestDownloadTruncatedBodyLeavesPartialFile(t *testing.T) {
	data := testutils.GenerateTestData(t, 1024)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Announce more than is delivered, then drop the connection.
		w.Header().Set("Content-Length", "4096")
		w.Write(data)
	}))
	defer server.Close()

	fs := memfs.New()
	url := request.RequestURL(server.URL + "/model.glb?")
	_, err := Download(context.Background(), url, "", Options{
		ChunkSize: 1024,
		FS:        fs,
	})
	if !errors.Is(err, ErrNetwork) {
		t.Fatalf("expected ErrNetwork, got %v", err)
	}

	// The partial file stays in place; no automatic cleanup.
	got, rerr := util.ReadFile(fs, "model.glb")
	if rerr != nil {
		t.Fatalf("expected partial file to remain: %v", rerr)
	}
	if !bytes.Equal(got, data) {
		t.Errorf("partial file has %d bytes, want %d", len(got), len(data))
	}
}

// errWriteFS fails every write, simulating a full disk.
type errWriteFS struct {
	billy.Filesystem
}

type errWriteFile struct {
	billy.File
}

func (errWriteFile) Write(p []byte) (int, error) {
	return 0, errors.New("disk full")
}

func (fs errWriteFS) Create(name string) (billy.File, error) {
	f, err := fs.Filesystem.Create(name)
	if err != nil {
		return nil, err
	}
	return errWriteFile{f}, nil
}

func TestDownloadWriteFailure(t *testing.T) {
	server := testutils.ServeFile(t, testutils.GenerateTestData(t, 2048))
	defer server.Close()

	url := request.RequestURL(server.URL + "/model.glb?")
	_, err := Download(context.Background(), url, "", Options{
		ChunkSize: 1024,
		FS:        errWriteFS{memfs.New()},
	})
	if !errors.Is(err, ErrFilesystem) {
		t.Errorf("expected ErrFilesystem, got %v", err)
	}
}

func TestDownloadCancelBetweenChunks(t *testing.T) {
	chunk := testutils.GenerateTestData(t, 1024)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		flusher := w.(http.Flusher)
		for {
			if _, err := w.Write(chunk); err != nil {
				return
			}
			flusher.Flush()
			select {
			case <-r.Context().Done():
				return
			default:
			}
		}
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	fs := memfs.New()
	url := request.RequestURL(server.URL + "/model.glb?")
	_, err := Download(ctx, url, "", Options{
		ChunkSize: 1024,
		FS:        fs,
		OnProgress: func(progress.Snapshot) {
			cancel()
		},
	})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}
