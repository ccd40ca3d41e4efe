package progress

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"
)

// Reporter renders snapshots as human-readable lines.
//
// Update is cheap enough to use directly as a download callback: it only
// formats and writes a single line, and it skips snapshots whose percentage
// has not moved since the last line.
type Reporter struct {
	mu       sync.Mutex
	out      io.Writer
	filename string
	lastPct  int
	started  bool
}

// NewReporter creates a reporter writing to out. The filename is only used
// for display.
func NewReporter(out io.Writer, filename string) *Reporter {
	return &Reporter{
		out:      out,
		filename: filename,
		lastPct:  IndeterminatePercent,
	}
}

// Update renders one snapshot. Snapshots that do not advance the displayed
// percentage are dropped, except when the total size is unknown, in which
// case every snapshot prints its byte count.
func (r *Reporter) Update(s Snapshot) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.started {
		fmt.Fprintf(r.out, "Starting download of %s\n", r.filename)
		r.started = true
	}

	if !s.Known() {
		fmt.Fprintf(r.out, "Downloaded %s in %.2f seconds\n",
			formatBytes(s.Downloaded), s.Elapsed.Seconds())
		return
	}

	if s.Percent == r.lastPct {
		return
	}
	r.lastPct = s.Percent

	fmt.Fprintf(r.out, "Downloaded %d%% (%s / %s) in %.2f seconds\n",
		s.Percent,
		formatBytes(s.Downloaded),
		formatBytes(s.Total),
		s.Elapsed.Seconds(),
	)
}

// Done renders the terminal line for a finished download.
func (r *Reporter) Done(path string, elapsed time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	fmt.Fprintf(r.out, "Downloaded to %s in %s\n", path, formatDuration(elapsed))
}

// formatBytes formats bytes as a human-readable string.
func formatBytes(b int64) string {
	const (
		KB = 1024
		MB = KB * 1024
		GB = MB * 1024
	)

	switch {
	case b >= GB:
		return fmt.Sprintf("%.2f GB", float64(b)/float64(GB))
	case b >= MB:
		return fmt.Sprintf("%.2f MB", float64(b)/float64(MB))
	case b >= KB:
		return fmt.Sprintf("%.2f KB", float64(b)/float64(KB))
	default:
		return fmt.Sprintf("%d B", b)
	}
}

// formatDuration formats a duration as a human-readable string.
func formatDuration(d time.Duration) string {
	if d < time.Minute {
		return fmt.Sprintf("%.2fs", d.Seconds())
	}
	m := int(d.Minutes())
	s := int(d.Seconds()) % 60
	return fmt.Sprintf("%dm %ds", m, s)
}

// FormatBytes is exported for use by other packages.
func FormatBytes(b int64) string {
	return formatBytes(b)
}

// ParseBytes parses a human-readable byte string (e.g., "1MB").
func ParseBytes(s string) (int64, error) {
	var multiplier int64 = 1
	s = strings.TrimSpace(s)

	switch {
	case hasSuffix(s, "GB"):
		multiplier = 1024 * 1024 * 1024
		s = s[:len(s)-2]
	case hasSuffix(s, "MB"):
		multiplier = 1024 * 1024
		s = s[:len(s)-2]
	case hasSuffix(s, "KB"):
		multiplier = 1024
		s = s[:len(s)-2]
	case hasSuffix(s, "B"):
		s = s[:len(s)-1]
	}

	var value float64
	_, err := fmt.Sscanf(s, "%f", &value)
	if err != nil {
		return 0, fmt.Errorf("invalid byte string: %s", s)
	}

	return int64(value * float64(multiplier)), nil
}

func hasSuffix(s, suffix string) bool {
	return len(s) >= len(suffix) && s[len(s)-len(suffix):] == suffix
}
