package neopixel

import (
	"encoding/binary"
	"io"

	log "github.com/sirupsen/logrus"
)

// FIFO writes every word as a 32 bit big endian state machine FIFO entry.
type FIFO struct {
	w   io.Writer
	buf [4]byte
}

func NewFIFO(w io.Writer) *FIFO {
	return &FIFO{w: w}
}

func (f *FIFO) Emit(word uint32) error {
	binary.BigEndian.PutUint32(f.buf[:], FIFOWord(word))
	_, err := f.w.Write(f.buf[:])
	return err
}

// LogSink only logs what it is given.
type LogSink struct {
	pixels int
	frames int
}

func (l *LogSink) Emit(word uint32) error {
	r, g, b := Unpack(word)
	log.Debugf("pixel %d: %06x (r=%d g=%d b=%d)", l.pixels, word, r, g, b)
	l.pixels++
	return nil
}

func (l *LogSink) Latch() error {
	l.frames++
	log.Infof("Frame %d: %d pixels", l.frames, l.pixels)
	l.pixels = 0
	return nil
}
