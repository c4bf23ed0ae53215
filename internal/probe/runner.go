package probe

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strconv"

	"github.com/floostack/transcoder/ffmpeg"
)

// astatsFilter downsamples audio and prints per-frame loudness statistics.
const astatsFilter = "aresample=8000,asetrate=8000,astats=metadata=1:reset=1,ametadata=print:file=-"

// Runner executes the external media tools.
type Runner interface {
	// Duration returns the media duration in seconds.
	Duration(ctx context.Context, path string) (float64, error)
	// SegmentStats returns ffmpeg's stderr for the astats pass over
	// [start, start+length) seconds.
	SegmentStats(ctx context.Context, path string, start, length float64) ([]byte, error)
}

// FFmpegRunner runs the ffmpeg and ffprobe binaries.
type FFmpegRunner struct {
	FFmpegPath  string
	FFprobePath string
}

// NewFFmpegRunner returns a runner for the given binaries. Empty paths use
// ffmpeg and ffprobe from PATH.
func NewFFmpegRunner(ffmpegPath, ffprobePath string) *FFmpegRunner {
	if ffmpegPath == "" {
		ffmpegPath = "ffmpeg"
	}
	if ffprobePath == "" {
		ffprobePath = "ffprobe"
	}
	return &FFmpegRunner{FFmpegPath: ffmpegPath, FFprobePath: ffprobePath}
}

// Duration reads format.duration via ffprobe.
func (r *FFmpegRunner) Duration(ctx context.Context, path string) (float64, error) {
	meta, err := ffmpeg.
		New(&ffmpeg.Config{
			FfmpegBinPath:  r.FFmpegPath,
			FfprobeBinPath: r.FFprobePath,
		}).
		Input(path).
		WithContext(&ctx).
		GetMetadata()
	if err != nil {
		return 0, fmt.Errorf("ffprobe %s: %w", path, err)
	}
	if meta == nil || meta.GetFormat() == nil {
		return 0, errors.New("ffprobe returned no format")
	}

	d, err := strconv.ParseFloat(meta.GetFormat().GetDuration(), 64)
	if err != nil {
		return 0, fmt.Errorf("parse duration %q: %w", meta.GetFormat().GetDuration(), err)
	}
	return d, nil
}

// SegmentStats runs the astats filter over one segment and returns stderr.
func (r *FFmpegRunner) SegmentStats(ctx context.Context, path string, start, length float64) ([]byte, error) {
	cmd := exec.CommandContext(ctx, r.FFmpegPath,
		"-ss", formatSeconds(start),
		"-t", formatSeconds(length),
		"-i", path,
		"-af", astatsFilter,
		"-f", "null", "-",
	)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("ffmpeg segment %s@%s: %w", path, formatSeconds(start), err)
	}
	return stderr.Bytes(), nil
}

func formatSeconds(s float64) string {
	return strconv.FormatFloat(s, 'f', 3, 64)
}
