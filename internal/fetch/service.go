package fetch

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-git/go-billy/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"avatarfetch/internal/downloader"
	fetchhttp "avatarfetch/internal/http"
	"avatarfetch/internal/progress"
	"avatarfetch/internal/request"
	"avatarfetch/internal/rig"
)

// ErrImport marks a failure of the host's import collaborator.
var ErrImport = errors.New("fetch: import failed")

// Importer converts a downloaded model file into the host's scene graph.
// It returns a handle to the imported skeleton, or nil when the imported
// model carries no armature.
type Importer interface {
	Import(ctx context.Context, path string) (rig.Skeleton, error)
}

// Config configures a Service. The zero value is usable: downloads run
// with default HTTP and filesystem settings, logging is discarded, and no
// import step is performed.
type Config struct {
	// Client is the HTTP client used for downloads.
	Client *fetchhttp.Client

	// FS is the destination filesystem, rooted at the destination
	// directory. Default: the OS filesystem rooted at destDir.
	FS billy.Filesystem

	// ChunkSize is the download chunk size.
	// Default: downloader.DefaultChunkSize.
	ChunkSize int64

	// Importer is the host's model import routine. Nil skips the import
	// and normalization steps.
	Importer Importer

	// Logger receives structured job logs. Default: discard.
	Logger zerolog.Logger
}

// Service runs avatar fetch jobs.
type Service struct {
	cfg Config
}

// NewService creates a Service.
func NewService(cfg Config) *Service {
	return &Service{cfg: cfg}
}

// Result is the outcome of one successful fetch job.
type Result struct {
	// JobID identifies the job in logs.
	JobID string

	// Path is the downloaded file's destination path.
	Path string

	// Bytes is the downloaded size.
	Bytes int64

	// Elapsed is the download duration.
	Elapsed time.Duration

	// Skeleton is the imported skeleton handle, nil when no importer is
	// configured or the model had no armature.
	Skeleton rig.Skeleton

	// Normalized reports whether T-pose normalization ran.
	Normalized bool
}

// Fetch runs one job: build the request URL from opts, download it into
// destDir, then import and normalize when an importer is configured.
//
// onProgress may be nil. It belongs to this invocation only, so concurrent
// jobs each get their own progress state.
func (s *Service) Fetch(ctx context.Context, opts request.Options, destDir string, onProgress progress.Func) (Result, error) {
	jobID := uuid.NewString()
	log := s.cfg.Logger.With().Str("job", jobID).Logger()

	u, err := request.Build(opts)
	if err != nil {
		log.Error().Err(err).Msg("invalid request")
		return Result{}, err
	}

	log.Info().
		Str("url", u.String()).
		Str("pose", string(opts.Pose)).
		Msg("starting download")

	dl, err := downloader.Download(ctx, u, destDir, downloader.Options{
		ChunkSize:  s.cfg.ChunkSize,
		Client:     s.cfg.Client,
		FS:         s.cfg.FS,
		OnProgress: onProgress,
	})
	if err != nil {
		log.Error().Err(err).Msg("download failed")
		return Result{}, err
	}

	log.Info().
		Str("path", dl.Path).
		Int64("bytes", dl.Bytes).
		Dur("elapsed", dl.Elapsed).
		Msg("download complete")

	res := Result{
		JobID:   jobID,
		Path:    dl.Path,
		Bytes:   dl.Bytes,
		Elapsed: dl.Elapsed,
	}

	if s.cfg.Importer == nil {
		return res, nil
	}

	skel, err := s.cfg.Importer.Import(ctx, dl.Path)
	if err != nil {
		log.Error().Err(err).Msg("import failed")
		return Result{}, fmt.Errorf("%w: %v", ErrImport, err)
	}
	res.Skeleton = skel

	if opts.Pose == request.PoseT && skel != nil {
		rig.NormalizeToTPose(skel)
		res.Normalized = true
		log.Info().Msg("normalized skeleton to T-pose")
	}

	return res, nil
}
