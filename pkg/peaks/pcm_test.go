// ABOUTME: Tests for PCM peak extraction
// ABOUTME: Verifies windowing, channel de-interleaving and pair ordering
package peaks

import (
	"errors"
	"testing"

	"github.com/go-audio/audio"
)

func TestFromPCMBuffer_Mono(t *testing.T) {
	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: 1, SampleRate: 8000},
		Data:           []int{10, -20, 5, 30, -1, 2},
		SourceBitDepth: 16,
	}

	// 3 frames per pair -> 2 pairs -> 4 entries
	pk, err := FromPCMBuffer(buf, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if pk.Channels() != 1 {
		t.Fatalf("expected 1 channel, got %d", pk.Channels())
	}
	if pk.Len() != 4 {
		t.Fatalf("expected 4 entries, got %d", pk.Len())
	}

	ch := pk.Channel(0)
	// First window {10, -20, 5}: max 10, min -20
	if ch[0] != 10 || ch[1] != -20 {
		t.Errorf("first pair = (%v, %v), want (10, -20)", ch[0], ch[1])
	}
	// Second window {30, -1, 2}: max 30, min -1
	if ch[2] != 30 || ch[3] != -1 {
		t.Errorf("second pair = (%v, %v), want (30, -1)", ch[2], ch[3])
	}

	if pk.PeakMax() != 32767 {
		t.Errorf("expected 16-bit scale 32767, got %v", pk.PeakMax())
	}
}

func TestFromPCMBuffer_StereoDeinterleave(t *testing.T) {
	// Interleaved L R L R: left = {100, -50}, right = {-200, 75}
	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: 2, SampleRate: 44100},
		Data:           []int{100, -200, -50, 75},
		SourceBitDepth: 16,
	}

	pk, err := FromPCMBuffer(buf, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if pk.Channels() != 2 {
		t.Fatalf("expected 2 channels, got %d", pk.Channels())
	}

	left, right := pk.Channel(0), pk.Channel(1)
	if left[0] != 100 || left[1] != -50 {
		t.Errorf("left pair = (%v, %v), want (100, -50)", left[0], left[1])
	}
	if right[0] != 75 || right[1] != -200 {
		t.Errorf("right pair = (%v, %v), want (75, -200)", right[0], right[1])
	}
}

func TestFromPCMBuffer_PartialTrailingWindow(t *testing.T) {
	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: 1, SampleRate: 8000},
		Data:           []int{1, 2, 3, 4, 5},
		SourceBitDepth: 8,
	}

	pk, err := FromPCMBuffer(buf, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// 5 frames at 2 per pair -> 3 pairs, last covers only {5}
	if pk.Len() != 6 {
		t.Fatalf("expected 6 entries, got %d", pk.Len())
	}
	ch := pk.Channel(0)
	if ch[4] != 5 || ch[5] != 5 {
		t.Errorf("trailing pair = (%v, %v), want (5, 5)", ch[4], ch[5])
	}

	if pk.PeakMax() != 127 {
		t.Errorf("expected 8-bit scale 127, got %v", pk.PeakMax())
	}
}

func TestFromPCMBuffer_Empty(t *testing.T) {
	_, err := FromPCMBuffer(&audio.IntBuffer{}, 4)
	if !errors.Is(err, ErrEmpty) {
		t.Fatalf("expected ErrEmpty, got %v", err)
	}
}

func TestFromFloatBuffer(t *testing.T) {
	buf := &audio.FloatBuffer{
		Format: &audio.Format{NumChannels: 1, SampleRate: 8000},
		Data:   []float64{0.5, -0.25, 0.75, -1},
	}

	pk, err := FromFloatBuffer(buf, 4)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	ch := pk.Channel(0)
	if ch[0] != 0.75 || ch[1] != -1 {
		t.Errorf("pair = (%v, %v), want (0.75, -1)", ch[0], ch[1])
	}

	// Float PCM is unit-normalized: Scale falls back to 1.
	if pk.Scale() != 1 {
		t.Errorf("expected unit scale, got %v", pk.Scale())
	}
}
