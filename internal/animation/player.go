package animation

import (
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/callebjorkell/pixel-bridge/internal/frame"
	log "github.com/sirupsen/logrus"
)

const DefaultTick = 10 * time.Millisecond

var ErrInterrupted = errors.New("animation was interrupted")

// FrameWriter sends a full strip of pixels as one frame.
type FrameWriter interface {
	WriteFrame(pixels []frame.Pixel) error
}

// Link encodes frames onto a byte stream, usually a serial port.
type Link struct {
	w io.Writer
}

func NewLink(w io.Writer) *Link {
	return &Link{w: w}
}

func (l *Link) WriteFrame(pixels []frame.Pixel) error {
	msg, err := frame.Encode(pixels)
	if err != nil {
		return err
	}
	_, err = l.w.Write(msg)
	return err
}

// Player renders effects on a strip at the other end of a link.
type Player struct {
	out    FrameWriter
	pixels []frame.Pixel
	tick   time.Duration
	queue  Queue
	wg     sync.WaitGroup
}

func NewPlayer(out FrameWriter, ledCount int, tick time.Duration) *Player {
	if tick <= 0 {
		tick = DefaultTick
	}
	return &Player{
		out:    out,
		pixels: make([]frame.Pixel, ledCount),
		tick:   tick,
	}
}

func (p *Player) setColor(color uint32) error {
	px := ToPixel(color)
	for i := range p.pixels {
		p.pixels[i] = px
	}
	return p.out.WriteFrame(p.pixels)
}

func (p *Player) clear() error {
	return p.setColor(0)
}

// Solid shows a single color on the whole strip.
func (p *Player) Solid(color uint32) error {
	release := p.queue.Acquire()
	defer release()

	log.Infof("Showing color %06x", color)
	return p.setColor(color)
}

// Flash blinks the strip three times.
func (p *Player) Flash(color uint32) error {
	release := p.queue.Acquire()
	defer release()

	log.Infof("Flashing color %06x", color)

	steps := []struct {
		color uint32
		ticks time.Duration
	}{
		{color, 25},
		{0, 4},
		{color, 10},
		{0, 4},
		{color, 10},
	}
	for _, s := range steps {
		if err := p.setColor(s.color); err != nil {
			return err
		}
		<-time.After(s.ticks * p.tick)
	}

	log.Debug("Flashing done...")
	return p.clear()
}

// Rainbow fades in a moving color wheel and fades it out again.
func (p *Player) Rainbow() error {
	release := p.queue.Acquire()
	defer release()
	defer p.clear()

	log.Debugf("Displaying rainbow")
	tick := time.NewTicker(3 * p.tick)
	defer tick.Stop()

	for step := 0; step <= 450; step++ {
		if p.queue.Interrupted() {
			return ErrInterrupted
		}

		c := getRGB(step)
		if step < 50 {
			c = withBrightness(c, uint32(step*2))
		}
		if step > 350 {
			c = withBrightness(c, uint32(450-step))
		}

		if err := p.setColor(c); err != nil {
			return err
		}

		<-tick.C
	}

	return nil
}

// Breathe fades the color in and out until another animation takes over or Stop is called. It returns once the
// animation has started.
func (p *Player) Breathe(color uint32) {
	release := p.queue.Acquire()

	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		defer release()
		defer p.clear()
		for {
			err := p.singleBreath(color)
			if err != nil {
				log.Debug("Stopping breathing: ", err)
				break
			}
		}
	}()
}

func (p *Player) singleBreath(color uint32) error {
	light := uint32(0)
	increase := true
	log.Debugf("Breathing color: %06x", color)
	tick := time.NewTicker(p.tick)
	defer tick.Stop()
	for {
		if p.queue.Interrupted() {
			return ErrInterrupted
		}

		if err := p.setColor(withBrightness(color, light)); err != nil {
			return fmt.Errorf("breathing %06x: %w", color, err)
		}

		if increase {
			light++
			if light > 100 {
				increase = false
			}
		} else {
			if light == 0 {
				break
			}
			light--
		}

		<-tick.C
	}
	return nil
}

// Stop interrupts whatever is running and leaves the strip dark.
func (p *Player) Stop() error {
	release := p.queue.Acquire()
	defer release()

	p.wg.Wait()
	return p.clear()
}
