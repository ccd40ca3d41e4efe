package main

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"avatarfetch/internal/config"
	"avatarfetch/internal/fetch"
	fetchhttp "avatarfetch/internal/http"
	"avatarfetch/internal/progress"
	"avatarfetch/internal/request"
)

// errInvalidConfig marks configuration problems for exit-code mapping.
var errInvalidConfig = errors.New("invalid configuration")

var fetchFlags struct {
	configFile string
	url        string
	pose       string
	outputDir  string
	chunkSize  string
	logLevel   string
	quiet      bool

	arkit         bool
	oculusVisemes bool
	mouthSmile    bool
	mouthOpen     bool
}

var fetchCmd = &cobra.Command{
	Use:   "fetch [url]",
	Short: "Download one avatar model",
	Long: `Fetch downloads a single avatar model. The URL may be given as an
argument or via --url, a config file, or AVATARFETCH_URL. Morph target
toggles mirror the options offered by the avatar service.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runFetch,
}

func init() {
	f := fetchCmd.Flags()
	f.StringVarP(&fetchFlags.configFile, "config", "c", "", "Path to YAML config file")
	f.StringVar(&fetchFlags.url, "url", "", "Avatar model URL")
	f.StringVarP(&fetchFlags.pose, "pose", "p", "", "Avatar pose: T or A")
	f.StringVarP(&fetchFlags.outputDir, "output-dir", "o", "", "Destination directory (default: current directory)")
	f.StringVar(&fetchFlags.chunkSize, "chunk-size", "", "Download chunk size, e.g. 1MB")
	f.StringVar(&fetchFlags.logLevel, "log-level", "", "Log level: debug, info, warn, error")
	f.BoolVarP(&fetchFlags.quiet, "quiet", "q", false, "Suppress progress output and logs")

	f.BoolVar(&fetchFlags.arkit, "arkit", false, "Include ARKit morph targets")
	f.BoolVar(&fetchFlags.oculusVisemes, "oculus-visemes", false, "Include Oculus Visemes morph targets")
	f.BoolVar(&fetchFlags.mouthSmile, "mouth-smile", false, "Include mouthSmile morph target")
	f.BoolVar(&fetchFlags.mouthOpen, "mouth-open", false, "Include mouthOpen morph target")

	rootCmd.AddCommand(fetchCmd)
}

func runFetch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(args)
	if err != nil {
		return fmt.Errorf("%w: %v", errInvalidConfig, err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("%w: %v", errInvalidConfig, err)
	}

	opts := cfg.RequestOptions()

	// Build the URL up front so the progress header can show the filename
	// and an empty URL fails before anything else happens.
	u, err := request.Build(opts)
	if err != nil {
		return err
	}

	logger := newLogger(cfg)

	httpOpts := fetchhttp.DefaultOptions()
	httpOpts.Timeout = cfg.Timeout
	client := fetchhttp.NewClient(httpOpts)

	svc := fetch.NewService(fetch.Config{
		Client:    client,
		ChunkSize: cfg.ChunkSize,
		Logger:    logger,
	})

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var onProgress progress.Func
	var reporter *progress.Reporter
	if !cfg.Quiet {
		reporter = progress.NewReporter(os.Stdout, u.Filename())
		onProgress = reporter.Update
	}

	res, err := svc.Fetch(ctx, opts, cfg.OutputDir, onProgress)
	if err != nil {
		return err
	}

	if reporter != nil {
		reporter.Done(res.Path, res.Elapsed)
	}

	// Import happens in the host application; this command only hands the
	// file over.
	logger.Info().Str("path", res.Path).Msg("model ready for import")
	return nil
}

// loadConfig layers defaults, config file, environment, and flags.
func loadConfig(args []string) (config.Config, error) {
	cfg := config.Default()

	if fetchFlags.configFile != "" {
		fileCfg, err := config.LoadFromFile(fetchFlags.configFile)
		if err != nil {
			return config.Config{}, err
		}
		cfg = fileCfg
	}

	if err := cfg.LoadFromEnv(); err != nil {
		return config.Config{}, err
	}

	if len(args) == 1 {
		cfg.URL = args[0]
	}
	if fetchFlags.url != "" {
		cfg.URL = fetchFlags.url
	}
	if fetchFlags.pose != "" {
		cfg.Pose = fetchFlags.pose
	}
	if fetchFlags.outputDir != "" {
		cfg.OutputDir = fetchFlags.outputDir
	}
	if fetchFlags.chunkSize != "" {
		size, err := progress.ParseBytes(fetchFlags.chunkSize)
		if err != nil {
			return config.Config{}, err
		}
		cfg.ChunkSize = size
	}
	if fetchFlags.logLevel != "" {
		cfg.LogLevel = fetchFlags.logLevel
	}
	if fetchFlags.quiet {
		cfg.Quiet = true
	}

	tags := cfg.MorphTargets
	if fetchFlags.arkit {
		tags = append(tags, string(request.MorphARKit))
	}
	if fetchFlags.oculusVisemes {
		tags = append(tags, string(request.MorphOculusVisemes))
	}
	if fetchFlags.mouthSmile {
		tags = append(tags, string(request.MorphMouthSmile))
	}
	if fetchFlags.mouthOpen {
		tags = append(tags, string(request.MorphMouthOpen))
	}
	cfg.MorphTargets = tags

	return cfg, nil
}

// newLogger builds the CLI logger from the configured level.
func newLogger(cfg config.Config) zerolog.Logger {
	if cfg.Quiet {
		return zerolog.Nop()
	}
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().Timestamp().Logger()
}
