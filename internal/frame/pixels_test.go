package frame

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncode(t *testing.T) {
	msg, err := Encode([]Pixel{{255, 0, 0}, {0, 255, 0}})
	require.NoError(t, err)
	assert.Equal(t, []byte{0x06, 0x00, 0xff, 0x00, 0x00, 0x00, 0xff, 0x00}, msg)

	msg, err = Encode(nil)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x00, 0x00}, msg)
}

func TestEncode_TooLarge(t *testing.T) {
	_, err := Encode(make([]Pixel, MaxPayload/3+1))
	assert.True(t, errors.Is(err, ErrFrameTooLarge))

	_, err = EncodeRaw(make([]byte, MaxPayload+1))
	assert.True(t, errors.Is(err, ErrFrameTooLarge))

	msg, err := EncodeRaw(make([]byte, MaxPayload))
	require.NoError(t, err)
	assert.Equal(t, []byte{0xff, 0xff}, msg[:2])
}

func TestEncode_RoundTrip(t *testing.T) {
	r := rand.New(rand.NewSource(3))
	for _, n := range []int{0, 1, 2, 50, 1500} {
		pixels := make([]Pixel, n)
		for i := range pixels {
			pixels[i] = Pixel{uint8(r.Intn(256)), uint8(r.Intn(256)), uint8(r.Intn(256))}
		}

		msg, err := Encode(pixels)
		require.NoError(t, err)

		d := NewDecoder()
		var got []Pixel
		d.feedAll(msg, func(f []byte) {
			got = append(got, Pixels(f)...)
		})
		assert.Equal(t, pixels, append(make([]Pixel, 0), got...))
	}
}

func TestPixels(t *testing.T) {
	tt := []struct {
		name   string
		frame  []byte
		pixels []Pixel
	}{
		{"empty", []byte{}, []Pixel{}},
		{"one byte", []byte{1}, []Pixel{}},
		{"two bytes", []byte{1, 2}, []Pixel{}},
		{"one pixel", []byte{1, 2, 3}, []Pixel{{1, 2, 3}}},
		{"one pixel and a remainder", []byte{1, 2, 3, 4, 5}, []Pixel{{1, 2, 3}}},
		{"rgb order", []byte{0x10, 0x20, 0x30, 0x40, 0x50, 0x60}, []Pixel{{0x10, 0x20, 0x30}, {0x40, 0x50, 0x60}}},
	}

	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.pixels, Pixels(tc.frame))
		})
	}
}
