package audio

import (
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/go-audio/wav"
)

// Clip is a decoded, mono-mixed WAV file normalised to [-1, 1]. It can drive a
// Monitor in real time as a Device, or be sampled deterministically per frame
// for offline rendering.
type Clip struct {
	Samples    []float32
	SampleRate int
}

func LoadClip(path string) (*Clip, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	dec := wav.NewDecoder(f)
	if !dec.IsValidFile() {
		return nil, fmt.Errorf("%s: invalid WAV file", path)
	}

	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("%s: reading PCM data: %w", path, err)
	}

	bitDepth := buf.SourceBitDepth
	if bitDepth == 0 {
		bitDepth = int(dec.BitDepth)
	}
	channels := int(dec.NumChans)
	rate := int(dec.SampleRate)
	if buf.Format != nil {
		channels = buf.Format.NumChannels
		rate = buf.Format.SampleRate
	}
	if channels < 1 || rate <= 0 || bitDepth < 8 {
		return nil, fmt.Errorf("%s: unsupported format (%d channels, %d Hz, %d bit)", path, channels, rate, bitDepth)
	}

	scale := float64(int64(1) << (bitDepth - 1))

	frames := len(buf.Data) / channels
	samples := make([]float32, frames)
	for i := 0; i < frames; i++ {
		sum := 0.0
		for ch := 0; ch < channels; ch++ {
			v := float64(buf.Data[i*channels+ch])
			if bitDepth == 8 {
				// 8-bit WAV is unsigned
				v -= 128
			}
			sum += v / scale
		}
		samples[i] = float32(sum / float64(channels))
	}

	return &Clip{Samples: samples, SampleRate: rate}, nil
}

func (c *Clip) Duration() time.Duration {
	if c.SampleRate == 0 {
		return 0
	}
	return time.Duration(len(c.Samples)) * time.Second / time.Duration(c.SampleRate)
}

// WindowAt returns the frames samples ending at the audio position of render
// tick (1-based) at fps, wrapping around the end of the clip.
func (c *Clip) WindowAt(tick int, fps float64, frames int) []float32 {
	if len(c.Samples) == 0 || frames <= 0 || fps <= 0 {
		return nil
	}
	end := int(float64(tick) * float64(c.SampleRate) / fps)
	out := make([]float32, frames)
	n := len(c.Samples)
	for i := range out {
		idx := (end - frames + i) % n
		if idx < 0 {
			idx += n
		}
		out[i] = c.Samples[idx]
	}
	return out
}

// Open makes the clip a looping real-time capture device.
func (c *Clip) Open(frames int, onSamples func([]float32)) (Stream, error) {
	if len(c.Samples) == 0 || c.SampleRate <= 0 {
		return nil, fmt.Errorf("clip: no samples")
	}
	if frames <= 0 {
		frames = BufferSize
	}
	period := time.Duration(frames) * time.Second / time.Duration(c.SampleRate)
	if period <= 0 {
		period = time.Millisecond
	}
	return &clipStream{clip: c, frames: frames, period: period, on: onSamples, stop: make(chan struct{})}, nil
}

type clipStream struct {
	clip   *Clip
	frames int
	period time.Duration
	on     func([]float32)

	stop chan struct{}
	once sync.Once
	wg   sync.WaitGroup
}

func (s *clipStream) Start() error {
	s.wg.Add(1)
	go s.run()
	return nil
}

func (s *clipStream) run() {
	defer s.wg.Done()

	ticker := time.NewTicker(s.period)
	defer ticker.Stop()

	chunk := make([]float32, s.frames)
	pos := 0
	n := len(s.clip.Samples)
	for {
		select {
		case <-s.stop:
			return
		case <-ticker.C:
			for i := range chunk {
				chunk[i] = s.clip.Samples[(pos+i)%n]
			}
			pos = (pos + s.frames) % n
			s.on(chunk)
		}
	}
}

func (s *clipStream) Close() error {
	s.once.Do(func() { close(s.stop) })
	s.wg.Wait()
	return nil
}
