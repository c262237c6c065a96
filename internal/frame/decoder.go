package frame

import (
	log "github.com/sirupsen/logrus"
)

const headerSize = 2

type State int

const (
	AwaitingLength State = iota
	AwaitingPayload
)

func (s State) String() string {
	switch s {
	case AwaitingLength:
		return "awaiting-length"
	case AwaitingPayload:
		return "awaiting-payload"
	}
	return "N/A"
}

// Decoder turns a byte stream into length prefixed frames. It is not safe for concurrent use and is meant to be owned
// by the single loop reading the serial link.
//
// There is no resynchronization: a spurious byte on the link shifts every following header until the decoder is
// reset from the outside.
type Decoder struct {
	acc      []byte
	declared uint16
	state    State
}

type Option func(*Decoder)

// WithCapacity reserves room for n payload bytes up front so that regular frames do not grow the accumulator.
func WithCapacity(n int) Option {
	return func(d *Decoder) {
		if n > 0 {
			d.acc = make([]byte, 0, n)
		}
	}
}

func NewDecoder(opts ...Option) *Decoder {
	d := &Decoder{}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

func (d *Decoder) State() State {
	return d.state
}

// Declared returns the payload length read from the last header. ok is false while the decoder is waiting for a header.
func (d *Decoder) Declared() (length uint16, ok bool) {
	if d.state != AwaitingPayload {
		return 0, false
	}
	return d.declared, true
}

// Buffered returns the number of bytes held for the header or payload currently being read.
func (d *Decoder) Buffered() int {
	return len(d.acc)
}

// Reset drops any partially read header or payload.
func (d *Decoder) Reset() {
	d.acc = d.acc[:0]
	d.declared = 0
	d.state = AwaitingLength
}

// Feed adds a single byte to the decoder. When the byte completes a frame, the payload is returned with ready set. The
// returned slice is owned by the caller.
func (d *Decoder) Feed(b byte) (frame []byte, ready bool) {
	d.acc = append(d.acc, b)
	if log.IsLevelEnabled(log.TraceLevel) {
		log.Tracef("frame: got byte 0x%02x (%v, %d buffered)", b, d.state, len(d.acc))
	}

	switch d.state {
	case AwaitingLength:
		if len(d.acc) < headerSize {
			return nil, false
		}
		d.declared = uint16(d.acc[0]) | uint16(d.acc[1])<<8
		d.acc = d.acc[:0]
		d.state = AwaitingPayload
		log.Tracef("frame: declared length %d", d.declared)

		if d.declared == 0 {
			d.Reset()
			return []byte{}, true
		}
		return nil, false
	case AwaitingPayload:
		if len(d.acc) != int(d.declared) {
			return nil, false
		}
		frame = make([]byte, len(d.acc))
		copy(frame, d.acc)
		d.Reset()
		return frame, true
	}

	return nil, false
}

// feedAll feeds every byte of p through the decoder and calls fn for each frame that completes.
func (d *Decoder) feedAll(p []byte, fn func(frame []byte)) {
	for _, b := range p {
		if f, ok := d.Feed(b); ok {
			fn(f)
		}
	}
}
