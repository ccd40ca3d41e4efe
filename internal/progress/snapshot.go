package progress

import "time"

// UnknownTotal marks a download whose total size was not announced by the
// server. Percentages are meaningless in that case and are reported as
// IndeterminatePercent.
const UnknownTotal int64 = -1

// IndeterminatePercent is the Percent value of a Snapshot whose total size
// is unknown.
const IndeterminatePercent = -1

// Snapshot is the state of one download at a point in time. Within a single
// download, Downloaded and Percent are monotonically non-decreasing across
// the sequence of snapshots.
type Snapshot struct {
	// Downloaded is the number of bytes written so far.
	Downloaded int64

	// Total is the expected size in bytes, or UnknownTotal.
	Total int64

	// Percent is floor(Downloaded/Total*100) clamped to [0,100], or
	// IndeterminatePercent when Total is unknown.
	Percent int

	// Elapsed is the wall-clock time since the download began.
	Elapsed time.Duration
}

// Func receives progress snapshots. It is called once per chunk and must
// not block for more than a negligible amount of time.
type Func func(Snapshot)

// Make builds a Snapshot, deriving the clamped percentage.
func Make(downloaded, total int64, elapsed time.Duration) Snapshot {
	s := Snapshot{
		Downloaded: downloaded,
		Total:      total,
		Percent:    IndeterminatePercent,
		Elapsed:    elapsed,
	}
	if total <= 0 {
		s.Total = UnknownTotal
		return s
	}

	pct := int(downloaded * 100 / total)
	if pct < 0 {
		pct = 0
	}
	if pct > 100 {
		pct = 100
	}
	s.Percent = pct
	return s
}

// Known reports whether the total size (and therefore Percent) is known.
func (s Snapshot) Known() bool {
	return s.Total != UnknownTotal
}
