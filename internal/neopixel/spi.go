package neopixel

import (
	"fmt"

	log "github.com/sirupsen/logrus"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
	"periph.io/x/conn/v3/spi/spireg"
	"periph.io/x/devices/v3/nrzled"
	"periph.io/x/host/v3"
)

// SPI drives the chain by encoding the bit stream on an SPI bus. Words are unpacked back to RGB since the nrzled driver
// does its own reordering.
type SPI struct {
	dev    *nrzled.Dev
	port   spi.PortCloser
	pixels []byte
	next    int
	dropped int
	closed  bool
}

// BusFrequency is the SPI clock needed to encode a signal of the given led rate. Each data bit takes three bus bits,
// plus margin, which gives the 2.5MHz nrzled expects for 800kHz leds.
func BusFrequency(ledRate physic.Frequency) physic.Frequency {
	return ledRate*3 + 100*physic.KiloHertz
}

// OpenSPI opens the named SPI port, or the first one available when name is empty. ledRate is the signal rate of the
// leds, not the bus clock.
func OpenSPI(name string, ledCount int, ledRate physic.Frequency) (*SPI, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("unable to initialize periph: %w", err)
	}
	p, err := spireg.Open(name)
	if err != nil {
		return nil, fmt.Errorf("unable to open spi port %q: %w", name, err)
	}
	s, err := newSPI(p, ledCount, ledRate)
	if err != nil {
		p.Close()
		return nil, err
	}
	log.Infof("Initialized spi led strip %v with %d leds", s.dev, ledCount)
	return s, nil
}

func newSPI(p spi.PortCloser, ledCount int, ledRate physic.Frequency) (*SPI, error) {
	d, err := nrzled.NewSPI(p, &nrzled.Opts{
		NumPixels: ledCount,
		Channels:  3,
		Freq:      BusFrequency(ledRate),
	})
	if err != nil {
		return nil, fmt.Errorf("%v leds: %w", ledRate, err)
	}
	return &SPI{
		dev:    d,
		port:   p,
		pixels: make([]byte, ledCount*3),
	}, nil
}

func (s *SPI) Emit(word uint32) error {
	if s.closed {
		return ErrClosed
	}
	if s.next+3 > len(s.pixels) {
		s.dropped++
		return nil
	}
	s.pixels[s.next], s.pixels[s.next+1], s.pixels[s.next+2] = Unpack(word)
	s.next += 3
	return nil
}

func (s *SPI) Latch() error {
	if s.closed {
		return ErrClosed
	}
	if s.dropped > 0 {
		log.Debugf("Frame had %d more pixels than the strip, dropped them", s.dropped)
	}
	s.next = 0
	s.dropped = 0
	_, err := s.dev.Write(s.pixels)
	return err
}

func (s *SPI) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	if err := s.dev.Halt(); err != nil {
		log.Warn("Unable to turn off spi leds: ", err)
	}
	return s.port.Close()
}
