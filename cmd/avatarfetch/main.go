package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"avatarfetch/internal/downloader"
	"avatarfetch/internal/fetch"
	"avatarfetch/internal/request"
)

// Exit codes
const (
	ExitSuccess         = 0
	ExitGeneralError    = 1
	ExitInvalidArgs     = 2
	ExitNetworkError    = 3
	ExitFilesystemError = 4
	ExitImportError     = 5
)

var rootCmd = &cobra.Command{
	Use:   "avatarfetch",
	Short: "Download Ready Player Me style avatar models",
	Long: `Avatarfetch builds an avatar download URL from a base model URL, a pose
selection, and optional morph target tags, then streams the GLB file to a
local directory with progress reporting.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(exitCode(err))
	}
	os.Exit(ExitSuccess)
}

// exitCode maps an error to the command's exit code by failure kind.
func exitCode(err error) int {
	switch {
	case errors.Is(err, request.ErrEmptyURL):
		return ExitInvalidArgs
	case errors.Is(err, errInvalidConfig):
		return ExitInvalidArgs
	case errors.Is(err, downloader.ErrNetwork):
		return ExitNetworkError
	case errors.Is(err, downloader.ErrFilesystem):
		return ExitFilesystemError
	case errors.Is(err, fetch.ErrImport):
		return ExitImportError
	default:
		return ExitGeneralError
	}
}
