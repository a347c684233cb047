// ABOUTME: Sentinel errors for the peaks package
// ABOUTME: Covers empty buffers and mismatched channel lengths
package peaks

import "errors"

var (
	// ErrEmpty is returned when a buffer would contain no samples.
	ErrEmpty = errors.New("peaks: empty buffer")

	// ErrChannelLength is returned when multi-channel sequences differ in length.
	ErrChannelLength = errors.New("peaks: channel length mismatch")
)
