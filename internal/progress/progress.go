package progress

// ProgressUpdate is a progress message sent by a strategy while it scans
// its divisor range.
type ProgressUpdate struct {
	// CheckerIndex identifies the strategy within the current run.
	CheckerIndex int
	// Value is the scanned fraction of the divisor range, 0.0 to 1.0.
	Value float64
}

// ProgressCallback receives the scanned fraction of the divisor range.
type ProgressCallback func(progress float64)

// ReportThreshold is the minimum advance between two forwarded progress
// values. Strategies scan millions of divisors; forwarding every step would
// flood the channel.
const ReportThreshold = 0.01

// ChannelCallback returns a ProgressCallback that forwards values to ch
// tagged with index. Sends never block: when the consumer lags behind, the
// update is dropped, the next one supersedes it anyway.
// A nil channel yields a no-op callback.
func ChannelCallback(ch chan<- ProgressUpdate, index int) ProgressCallback {
	if ch == nil {
		return func(float64) {}
	}
	return func(v float64) {
		select {
		case ch <- ProgressUpdate{CheckerIndex: index, Value: v}:
		default:
		}
	}
}

// Throttled wraps cb so that it only fires when the value advanced by at
// least ReportThreshold since the last forwarded value, or reached 1.0.
func Throttled(cb ProgressCallback) ProgressCallback {
	if cb == nil {
		return func(float64) {}
	}
	last := -1.0
	return func(v float64) {
		if v >= 1.0 || v-last >= ReportThreshold {
			last = v
			cb(v)
		}
	}
}
