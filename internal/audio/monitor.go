package audio

import (
	"context"
	"log/slog"
	"math"
	"sync"
	"sync/atomic"
)

const (
	SampleRate = 44100
	BufferSize = 512
)

type Status int32

const (
	Idle Status = iota
	Starting
	Active
	Failed
)

func (s Status) String() string {
	switch s {
	case Idle:
		return "idle"
	case Starting:
		return "starting"
	case Active:
		return "active"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// Stream is an opened capture stream.
type Stream interface {
	Start() error
	Close() error
}

// Device opens a capture stream that delivers buffers of frames mono samples
// to onSamples. onSamples may be called from any goroutine.
type Device interface {
	Open(frames int, onSamples func([]float32)) (Stream, error)
}

type Monitor struct {
	device Device
	frames int
	logger *slog.Logger

	status   atomic.Int32
	snapshot atomic.Pointer[[]float32]

	mu     sync.Mutex
	stream Stream
	done   chan struct{}
}

func NewMonitor(dev Device, frames int, logger *slog.Logger) *Monitor {
	if frames <= 0 {
		frames = BufferSize
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Monitor{
		device: dev,
		frames: frames,
		logger: logger.With("component", "audio"),
	}
}

func (m *Monitor) Status() Status {
	return Status(m.status.Load())
}

func (m *Monitor) Frames() int { return m.frames }

// Start opens the device in the background and returns a channel that is
// closed once the attempt has finished, successfully or not. A failed start
// is final until Start is called again.
func (m *Monitor) Start(ctx context.Context) <-chan struct{} {
	m.mu.Lock()
	defer m.mu.Unlock()

	switch m.Status() {
	case Starting, Active:
		return m.done
	}

	done := make(chan struct{})
	m.done = done
	m.snapshot.Store(nil)

	if m.device == nil {
		m.status.Store(int32(Failed))
		m.logger.Warn("audio capture unavailable", "error", "no capture device")
		close(done)
		return done
	}

	m.status.Store(int32(Starting))
	go m.open(ctx, done)
	return done
}

func (m *Monitor) open(ctx context.Context, done chan struct{}) {
	defer close(done)

	if err := ctx.Err(); err != nil {
		m.fail(done, err)
		return
	}

	stream, err := m.device.Open(m.frames, m.Push)
	if err != nil {
		m.fail(done, err)
		return
	}
	if err := stream.Start(); err != nil {
		stream.Close()
		m.fail(done, err)
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.attempting(done) {
		// closed, or superseded by a newer Start, while the device was opening
		stream.Close()
		return
	}
	if err := ctx.Err(); err != nil {
		stream.Close()
		m.failLocked(err)
		return
	}
	m.stream = stream
	m.status.Store(int32(Active))
	m.logger.Info("audio capture started", "frames", m.frames)
}

// attempting reports whether done still belongs to the pending start. Callers
// hold m.mu.
func (m *Monitor) attempting(done chan struct{}) bool {
	return m.done == done && m.Status() == Starting
}

func (m *Monitor) fail(done chan struct{}, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.attempting(done) {
		return
	}
	m.failLocked(err)
}

func (m *Monitor) failLocked(err error) {
	m.status.Store(int32(Failed))
	m.snapshot.Store(nil)
	m.logger.Warn("audio capture unavailable, loudness pinned to zero", "error", err)
}

// Push publishes the newest capture buffer. Only the last Frames() samples
// are kept. Pushes after a failed start are dropped.
func (m *Monitor) Push(samples []float32) {
	if m.Status() == Failed || len(samples) == 0 {
		return
	}
	if len(samples) > m.frames {
		samples = samples[len(samples)-m.frames:]
	}
	buf := make([]float32, len(samples))
	copy(buf, samples)
	m.snapshot.Store(&buf)
}

// Snapshot returns the latest published buffer, or nil. Callers must not
// modify it.
func (m *Monitor) Snapshot() []float32 {
	p := m.snapshot.Load()
	if p == nil {
		return nil
	}
	return *p
}

// CurrentLoudness is the RMS of the latest snapshot, 0 when there is none.
func (m *Monitor) CurrentLoudness() float64 {
	return RMS(m.Snapshot())
}

// Close stops capture and returns the monitor to Idle.
func (m *Monitor) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.status.Store(int32(Idle))
	var err error
	if m.stream != nil {
		err = m.stream.Close()
		m.stream = nil
	}
	m.snapshot.Store(nil)
	return err
}

func RMS(samples []float32) float64 {
	if len(samples) == 0 {
		return 0
	}
	sum := 0.0
	for _, s := range samples {
		v := float64(s)
		sum += v * v
	}
	return math.Sqrt(sum / float64(len(samples)))
}
