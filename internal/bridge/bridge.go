package bridge

import (
	"context"
	"fmt"

	"github.com/callebjorkell/pixel-bridge/internal/frame"
	"github.com/callebjorkell/pixel-bridge/internal/neopixel"
	log "github.com/sirupsen/logrus"
)

// Source is a non-blocking byte source. ok is false when no byte is pending.
type Source interface {
	TryReceive() (b byte, ok bool, err error)
}

type Stats struct {
	Frames uint64
	Pixels uint64
}

// Bridge pulls bytes from a source, decodes frames and pushes their pixels to a sink.
type Bridge struct {
	source  Source
	sink    neopixel.Sink
	decoder *frame.Decoder
	resets  <-chan struct{}
	stats   Stats
}

func New(source Source, sink neopixel.Sink, opts ...frame.Option) *Bridge {
	return &Bridge{
		source:  source,
		sink:    sink,
		decoder: frame.NewDecoder(opts...),
	}
}

// ResetOn drops the partially read frame every time c fires. It is the only way to realign with the sender after a
// corrupted byte.
func (b *Bridge) ResetOn(c <-chan struct{}) {
	b.resets = c
}

func (b *Bridge) Stats() Stats {
	return b.stats
}

// Run polls the source until the context is cancelled or the source or sink fails. When no byte is pending it polls
// again straight away.
func (b *Bridge) Run(ctx context.Context) error {
	log.Info("Waiting for frames...")
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case _, ok := <-b.resets:
			if !ok {
				b.resets = nil
				break
			}
			log.Infof("Resetting decoder, dropping %d buffered bytes", b.decoder.Buffered())
			b.decoder.Reset()
		default:
		}

		if err := b.Poll(); err != nil {
			return err
		}
	}
}

// Poll handles at most one byte from the source.
func (b *Bridge) Poll() error {
	c, ok, err := b.source.TryReceive()
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}

	f, ready := b.decoder.Feed(c)
	if !ready {
		return nil
	}
	return b.show(f)
}

func (b *Bridge) show(f []byte) error {
	pixels := frame.Pixels(f)
	for _, p := range pixels {
		if err := b.sink.Emit(neopixel.Pack(p.R, p.G, p.B)); err != nil {
			return fmt.Errorf("unable to emit pixel: %w", err)
		}
	}
	if l, ok := b.sink.(neopixel.Latcher); ok {
		if err := l.Latch(); err != nil {
			return fmt.Errorf("unable to latch frame: %w", err)
		}
	}

	b.stats.Frames++
	b.stats.Pixels += uint64(len(pixels))
	if rem := len(f) % 3; rem != 0 {
		log.Debugf("Frame %d: %d pixels, dropped %d trailing bytes", b.stats.Frames, len(pixels), rem)
	} else {
		log.Debugf("Frame %d: %d pixels", b.stats.Frames, len(pixels))
	}
	return nil
}
