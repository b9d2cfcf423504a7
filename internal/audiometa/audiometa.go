// Package audiometa probes the duration of uploaded audio files.
// Probing is a best-effort enrichment: any failure reports "absent"
// instead of an error.
package audiometa

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-audio/aiff"
	"github.com/go-audio/wav"
	"github.com/marblesound/marblesound-api/internal/logger"
	"github.com/tcolgate/mp3"
)

// ProbeDuration returns the duration of the audio file at path in
// seconds. The second return value is false when the duration could
// not be determined.
func ProbeDuration(path string) (float64, bool) {
	f, err := os.Open(path)
	if err != nil {
		logger.Log.Debugw("duration probe skipped", "path", path, "error", err)
		return 0, false
	}
	defer f.Close()

	var (
		d  time.Duration
		ok bool
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".wav":
		d, ok = wavDuration(f)
	case ".aiff":
		d, ok = aiffDuration(f)
	case ".mp3":
		d, ok = mp3Duration(f)
	default:
		return 0, false
	}

	if !ok {
		logger.Log.Debugw("duration probe failed", "path", path)
		return 0, false
	}
	return d.Seconds(), true
}

func wavDuration(f *os.File) (time.Duration, bool) {
	d, err := wav.NewDecoder(f).Duration()
	if err != nil {
		return 0, false
	}
	return d, true
}

func aiffDuration(f *os.File) (time.Duration, bool) {
	d, err := aiff.NewDecoder(f).Duration()
	if err != nil {
		return 0, false
	}
	return d, true
}

func mp3Duration(f *os.File) (time.Duration, bool) {
	dec := mp3.NewDecoder(f)

	var (
		frame   mp3.Frame
		skipped int
		total   time.Duration
	)
	for {
		if err := dec.Decode(&frame, &skipped); err != nil {
			break
		}
		total += frame.Duration()
	}

	if total == 0 {
		return 0, false
	}
	return total, true
}
