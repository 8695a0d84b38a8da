// Package sizing converts requested file sizes into byte targets and record
// counts.
package sizing

// BytesPerGigabyte uses the decimal definition, as log rotation tools do.
const BytesPerGigabyte = 1_000_000_000

// MinRecordBytes is the assumed floor for one rendered record including its
// trailing newline.
const MinRecordBytes = 149

// BytesFor returns gigabytes * 10^9, truncated toward zero.
// Non-positive inputs yield zero.
func BytesFor(gigabytes float64) uint64 {
	if gigabytes <= 0 {
		return 0
	}
	return uint64(gigabytes * BytesPerGigabyte)
}

// RecordCountFor returns how many records to write so the file reaches at
// least targetBytes. The extra record makes the plan overshoot.
func RecordCountFor(targetBytes uint64) uint64 {
	return targetBytes/MinRecordBytes + 1
}
