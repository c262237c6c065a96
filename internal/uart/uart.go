package uart

import (
	"fmt"
	"io"
	"time"

	log "github.com/sirupsen/logrus"
	"go.bug.st/serial"
)

const (
	DefaultBaudRate    = 115200
	DefaultReadTimeout = 10 * time.Millisecond

	readBufferSize = 128
)

type Config struct {
	Name        string
	BaudRate    int
	ReadTimeout time.Duration
}

// Port is a serial link that hands out received bytes one at a time.
type Port struct {
	name    string
	rw      io.ReadWriteCloser
	buf     []byte
	pending []byte
}

// Open opens the serial port with 8N1 framing. A read that finds no data returns after the read timeout.
func Open(c Config) (*Port, error) {
	if c.BaudRate <= 0 {
		c.BaudRate = DefaultBaudRate
	}
	if c.ReadTimeout <= 0 {
		c.ReadTimeout = DefaultReadTimeout
	}

	p, err := serial.Open(c.Name, &serial.Mode{
		BaudRate: c.BaudRate,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	})
	if err != nil {
		return nil, fmt.Errorf("unable to open %s: %w", c.Name, err)
	}
	if err := p.SetReadTimeout(c.ReadTimeout); err != nil {
		p.Close()
		return nil, fmt.Errorf("unable to set read timeout on %s: %w", c.Name, err)
	}

	log.Infof("Opened %s at %d baud", c.Name, c.BaudRate)
	return newPort(c.Name, p), nil
}

func newPort(name string, rw io.ReadWriteCloser) *Port {
	return &Port{
		name: name,
		rw:   rw,
		buf:  make([]byte, readBufferSize),
	}
}

func (p *Port) String() string {
	return p.name
}

// TryReceive returns the next received byte. ok is false when nothing arrived before the read timeout.
func (p *Port) TryReceive() (b byte, ok bool, err error) {
	if len(p.pending) == 0 {
		n, err := p.rw.Read(p.buf)
		if err != nil {
			return 0, false, fmt.Errorf("read from %s: %w", p.name, err)
		}
		if n == 0 {
			return 0, false, nil
		}
		p.pending = p.buf[:n]
	}

	b = p.pending[0]
	p.pending = p.pending[1:]
	return b, true, nil
}

func (p *Port) Write(data []byte) (int, error) {
	return p.rw.Write(data)
}

func (p *Port) Close() error {
	log.Debugf("Closing %s", p.name)
	return p.rw.Close()
}

// Ports lists the serial ports found on the system.
func Ports() ([]string, error) {
	return serial.GetPortsList()
}
