// Package probe derives head and tail audio digests for episode files.
//
// A digest is the sha256 of ffmpeg's astats text output for a segment. It
// identifies byte-identical audio, not perceptually similar audio.
package probe

//go:generate mockgen -destination=mocks/probe_mock.go -package=mocks github.com/vmunix/cliparr/internal/probe Runner

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"time"
)

// DefaultSegment is the length of the head and tail segments.
const DefaultSegment = 180 * time.Second

// ErrNoDuration is returned when the media duration cannot be determined.
var ErrNoDuration = errors.New("media duration unavailable")

// Segment types.
const (
	TypeIntro = "intro"
	TypeOutro = "outro"
)

// Digest is the fingerprint of one segment.
type Digest struct {
	Hash  string  `json:"hash"`
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

// Result is the outcome of one probe. A segment that failed has a nil
// digest.
type Result struct {
	FilePath string  `json:"filePath"`
	Duration float64 `json:"duration"`
	Intro    *Digest `json:"intro"`
	Outro    *Digest `json:"outro"`
}

// Saver persists digests.
type Saver interface {
	Save(ctx context.Context, fp Fingerprint) (bool, error)
}

// Prober fingerprints episode files.
type Prober struct {
	runner  Runner
	store   Saver
	segment time.Duration
	logger  *slog.Logger
}

// NewProber creates a Prober. store may be nil to skip persistence.
func NewProber(runner Runner, store Saver, segment time.Duration, logger *slog.Logger) *Prober {
	if logger == nil {
		logger = slog.Default()
	}
	if segment <= 0 {
		segment = DefaultSegment
	}
	return &Prober{
		runner:  runner,
		store:   store,
		segment: segment,
		logger:  logger.With("component", "probe"),
	}
}

// Probe digests the head and tail of path. Failure of a single segment is
// logged and leaves that digest nil; only a missing duration fails the probe.
func (p *Prober) Probe(ctx context.Context, path string) (*Result, error) {
	start := time.Now()

	d, err := p.runner.Duration(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoDuration, err)
	}
	if d <= 0 {
		return nil, fmt.Errorf("%w: %s reports %.3fs", ErrNoDuration, path, d)
	}

	seg := p.segment.Seconds()
	result := &Result{FilePath: path, Duration: d}
	result.Intro = p.digest(ctx, path, TypeIntro, 0, min(seg, d))
	tailStart := max(0, d-seg)
	result.Outro = p.digest(ctx, path, TypeOutro, tailStart, d)

	p.logger.Debug("probe complete",
		"path", path,
		"duration", d,
		"intro", result.Intro != nil,
		"outro", result.Outro != nil,
		"duration_ms", time.Since(start).Milliseconds())
	return result, nil
}

func (p *Prober) digest(ctx context.Context, path, kind string, from, to float64) *Digest {
	out, err := p.runner.SegmentStats(ctx, path, from, to-from)
	if err != nil {
		p.logger.Warn("segment failed", "path", path, "type", kind, "error", err)
		return nil
	}

	sum := sha256.Sum256(out)
	dg := &Digest{Hash: hex.EncodeToString(sum[:]), Start: from, End: to}

	if p.store != nil {
		_, err := p.store.Save(ctx, Fingerprint{
			FilePath:   path,
			Hash:       dg.Hash,
			StartTime:  from,
			EndTime:    to,
			Type:       kind,
			Confidence: 1.0,
		})
		if err != nil {
			p.logger.Warn("failed to save digest", "path", path, "type", kind, "error", err)
		}
	}
	return dg
}
