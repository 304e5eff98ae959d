// Package mic captures the default input device through PortAudio. It is kept
// apart from package audio so the monitor builds without the cgo binding.
package mic

import (
	"fmt"

	"github.com/gordonklaus/portaudio"

	"github.com/san-kum/chaosbloom/internal/audio"
	"github.com/san-kum/chaosbloom/internal/dynamo"
)

// PortAudio captures mono float32 samples from the default input device.
type PortAudio struct {
	SampleRate float64
}

func (p PortAudio) Open(frames int, onSamples func([]float32)) (audio.Stream, error) {
	rate := p.SampleRate
	if rate <= 0 {
		rate = audio.SampleRate
	}

	if err := portaudio.Initialize(); err != nil {
		return nil, fmt.Errorf("%w: initialize: %w", dynamo.ErrAudioUnavailable, err)
	}

	// Input only (1 in, 0 out): the callback receives just the capture buffer.
	stream, err := portaudio.OpenDefaultStream(1, 0, rate, frames, func(in []float32) {
		onSamples(in)
	})
	if err != nil {
		portaudio.Terminate()
		return nil, fmt.Errorf("%w: open default input: %w", dynamo.ErrAudioUnavailable, err)
	}

	return &portAudioStream{stream: stream}, nil
}

type portAudioStream struct {
	stream *portaudio.Stream
}

func (s *portAudioStream) Start() error {
	if err := s.stream.Start(); err != nil {
		return fmt.Errorf("%w: start stream: %w", dynamo.ErrAudioUnavailable, err)
	}
	return nil
}

func (s *portAudioStream) Close() error {
	s.stream.Stop()
	err := s.stream.Close()
	portaudio.Terminate()
	return err
}
