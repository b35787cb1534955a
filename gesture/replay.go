package gesture

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/gocarina/gocsv"
)

// Sample is one recorded gesture, as stored in CSV recordings.
type Sample struct {
	T        float64 `csv:"t"` // seconds since recording start
	Detected bool    `csv:"detected"`
	Pinch    float32 `csv:"pinch"`
	X        float32 `csv:"x"`
	Y        float32 `csv:"y"`
}

// Signal converts the sample, substituting Neutral when no hand was seen.
func (s Sample) Signal(r Range) Signal {
	if !s.Detected {
		return Neutral()
	}
	return r.Sanitize(Signal{
		Detected:      true,
		PinchDistance: s.Pinch,
		X:             s.X,
		Y:             s.Y,
	})
}

// ReadSamples parses a CSV recording.
func ReadSamples(r io.Reader) ([]Sample, error) {
	var samples []Sample
	if err := gocsv.Unmarshal(r, &samples); err != nil {
		return nil, fmt.Errorf("parsing gesture recording: %w", err)
	}
	for i := 1; i < len(samples); i++ {
		if samples[i].T < samples[i-1].T {
			return nil, fmt.Errorf("gesture recording: row %d goes back in time (%.3f < %.3f)",
				i+1, samples[i].T, samples[i-1].T)
		}
	}
	return samples, nil
}

// Replay plays a recording back at its recorded cadence.
type Replay struct {
	Samples []Sample
	Loop    bool
	Speed   float64 // playback rate multiplier (0 = 1x)
	Range   Range
}

// LoadReplay reads a recording from path.
func LoadReplay(path string) (*Replay, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening gesture recording: %w", err)
	}
	defer f.Close()

	samples, err := ReadSamples(f)
	if err != nil {
		return nil, err
	}
	return &Replay{Samples: samples, Range: DefaultRange}, nil
}

// Run publishes each sample at its offset. It returns nil when a
// non-looping recording is exhausted, and ctx.Err() on cancellation.
// A hand that was last seen stays seen; the producer does not publish
// Neutral on exit.
func (r *Replay) Run(ctx context.Context, pub Publisher) error {
	if len(r.Samples) == 0 {
		return nil
	}
	speed := r.Speed
	if speed <= 0 {
		speed = 1
	}

	// Pause between passes by the mean sample interval
	gap := time.Second / 30
	if n := len(r.Samples); n > 1 {
		if span := r.Samples[n-1].T - r.Samples[0].T; span > 0 {
			gap = time.Duration(span / float64(n-1) / speed * float64(time.Second))
		}
	}

	timer := time.NewTimer(0)
	defer timer.Stop()
	<-timer.C

	for {
		start := time.Now()
		for _, s := range r.Samples {
			due := start.Add(time.Duration(s.T / speed * float64(time.Second)))
			if wait := time.Until(due); wait > 0 {
				timer.Reset(wait)
				select {
				case <-ctx.Done():
					return ctx.Err()
				case <-timer.C:
				}
			} else if err := ctx.Err(); err != nil {
				return err
			}
			pub.Publish(s.Signal(r.Range))
		}
		if !r.Loop {
			return nil
		}
		timer.Reset(gap)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
		}
	}
}

// Recorder appends published signals to a CSV stream so a session can be
// replayed later. Safe for use from a producer goroutine.
type Recorder struct {
	mu            sync.Mutex
	w             io.Writer
	start         time.Time
	now           func() time.Time
	headerWritten bool
	err           error
}

// NewRecorder creates a recorder writing to w.
func NewRecorder(w io.Writer) *Recorder {
	return &Recorder{w: w, now: time.Now}
}

// Publish records s. The first write error is kept and later writes are
// dropped; see Err.
func (r *Recorder) Publish(s Signal) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.err != nil {
		return
	}
	now := r.now()
	if r.start.IsZero() {
		r.start = now
	}

	records := []Sample{{
		T:        now.Sub(r.start).Seconds(),
		Detected: s.Detected,
		Pinch:    s.PinchDistance,
		X:        s.X,
		Y:        s.Y,
	}}

	if !r.headerWritten {
		// First write includes headers
		if err := gocsv.Marshal(records, r.w); err != nil {
			r.err = fmt.Errorf("writing gesture sample: %w", err)
			return
		}
		r.headerWritten = true
	} else {
		if err := gocsv.MarshalWithoutHeaders(records, r.w); err != nil {
			r.err = fmt.Errorf("writing gesture sample: %w", err)
		}
	}
}

// Err returns the first write error, if any.
func (r *Recorder) Err() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.err
}
