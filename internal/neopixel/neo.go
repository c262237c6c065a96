package neopixel

import (
	"errors"

	log "github.com/sirupsen/logrus"
)

const (
	DefaultPin        = 18
	DefaultFrequency  = 800000
	DefaultBrightness = 255
	DefaultLedCount   = 1500
)

var ErrClosed = errors.New("led strip is closed")

// Sink receives one color word per pixel, in the order the pixels appear in a frame.
type Sink interface {
	Emit(word uint32) error
}

// Latcher is implemented by sinks that buffer a frame and need to be told when it is complete.
type Latcher interface {
	Latch() error
}

type wsEngine interface {
	Init() error
	Render() error
	Wait() error
	Fini()
	Leds(channel int) []uint32
}

type StripOptions struct {
	LedCount   int
	Pin        int
	Frequency  int
	Brightness int
}

// Strip drives a WS281x chain through the PWM/DMA engine. Emitted words fill the LEDs from the start of the chain and
// are shown on Latch. LEDs past the end of a short frame keep their previous color, like a real chain that only
// shifts in as many words as it was sent.
type Strip struct {
	ws      wsEngine
	next    int
	dropped int
	closed  bool
}

func NewStrip(opts StripOptions) (*Strip, error) {
	ws, err := newEngine(opts)
	if err != nil {
		return nil, err
	}
	return newStrip(ws)
}

func newStrip(ws wsEngine) (*Strip, error) {
	if err := ws.Init(); err != nil {
		return nil, err
	}
	log.Infof("Initialized led strip with %d leds", len(ws.Leds(0)))
	return &Strip{ws: ws}, nil
}

func (s *Strip) Emit(word uint32) error {
	if s.closed {
		return ErrClosed
	}

	leds := s.ws.Leds(0)
	if s.next >= len(leds) {
		s.dropped++
		return nil
	}
	leds[s.next] = word
	s.next++
	return nil
}

func (s *Strip) Latch() error {
	if s.closed {
		return ErrClosed
	}

	if s.dropped > 0 {
		log.Debugf("Frame had %d more pixels than the strip, dropped them", s.dropped)
	}
	s.next = 0
	s.dropped = 0

	if err := s.ws.Render(); err != nil {
		return err
	}
	return s.ws.Wait()
}

// Clear turns all LEDs off.
func (s *Strip) Clear() error {
	if s.closed {
		return ErrClosed
	}
	leds := s.ws.Leds(0)
	for i := range leds {
		leds[i] = 0
	}
	s.next = 0
	return s.ws.Render()
}

func (s *Strip) Close() error {
	if s.closed {
		return nil
	}
	err := s.Clear()
	s.ws.Fini()
	s.closed = true
	return err
}
