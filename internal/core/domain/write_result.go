package domain

// MirrorStatus is the outcome of the best-effort secondary write that follows a
// primary ledger insert.
type MirrorStatus string

const (
	// MirrorSkipped means no mirror was attempted (no bank reference, no peer
	// store, or the primary write failed).
	MirrorSkipped MirrorStatus = "skipped"
	MirrorWritten MirrorStatus = "written"
	MirrorFailed  MirrorStatus = "failed"
)

// WriteResult reports a primary write and its optional mirror independently.
// OK never depends on the mirror outcome.
type WriteResult struct {
	OK        bool
	Mirror    MirrorStatus
	MirrorErr error
}

// PrimaryFailed is the result of a primary write that did not persist.
func PrimaryFailed() WriteResult {
	return WriteResult{OK: false, Mirror: MirrorSkipped}
}

// PrimaryOnly is the result of a persisted primary write with no mirror attempt.
func PrimaryOnly() WriteResult {
	return WriteResult{OK: true, Mirror: MirrorSkipped}
}

// WithMirror records the outcome of the mirror attempt.
func (r WriteResult) WithMirror(err error) WriteResult {
	if err != nil {
		r.Mirror = MirrorFailed
		r.MirrorErr = err
		return r
	}
	r.Mirror = MirrorWritten
	r.MirrorErr = nil
	return r
}
