package frame

import (
	"errors"
	"fmt"
)

// MaxPayload is the largest payload a two byte header can announce.
const MaxPayload = 0xffff

var ErrFrameTooLarge = errors.New("payload does not fit in a frame")

type Pixel struct {
	R, G, B uint8
}

// Pixels reads a frame as consecutive RGB triples. One or two trailing bytes that do not make up a full triple are
// dropped.
func Pixels(frame []byte) []Pixel {
	pixels := make([]Pixel, 0, len(frame)/3)
	for i := 0; i+2 < len(frame); i += 3 {
		pixels = append(pixels, Pixel{R: frame[i], G: frame[i+1], B: frame[i+2]})
	}
	return pixels
}

// Encode builds a complete wire message for the given pixels.
func Encode(pixels []Pixel) ([]byte, error) {
	if len(pixels)*3 > MaxPayload {
		return nil, fmt.Errorf("%d pixels: %w", len(pixels), ErrFrameTooLarge)
	}

	msg := make([]byte, headerSize, headerSize+len(pixels)*3)
	putHeader(msg, len(pixels)*3)
	for _, p := range pixels {
		msg = append(msg, p.R, p.G, p.B)
	}
	return msg, nil
}

// EncodeRaw prefixes an arbitrary payload with its length header.
func EncodeRaw(payload []byte) ([]byte, error) {
	if len(payload) > MaxPayload {
		return nil, fmt.Errorf("%d bytes: %w", len(payload), ErrFrameTooLarge)
	}

	msg := make([]byte, headerSize+len(payload))
	putHeader(msg, len(payload))
	copy(msg[headerSize:], payload)
	return msg, nil
}

func putHeader(msg []byte, length int) {
	msg[0] = byte(length)
	msg[1] = byte(length >> 8)
}
