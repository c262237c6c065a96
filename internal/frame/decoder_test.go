package frame

import (
	"math/rand"
	"testing"

	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func feedAll(d *Decoder, input []byte) [][]byte {
	var frames [][]byte
	d.feedAll(input, func(f []byte) {
		frames = append(frames, f)
	})
	return frames
}

func TestDecoder_Scenarios(t *testing.T) {
	tt := []struct {
		name   string
		input  []byte
		frames [][]byte
		pixels []Pixel
	}{
		{
			"red then green",
			[]byte{0x06, 0x00, 0xff, 0x00, 0x00, 0x00, 0xff, 0x00},
			[][]byte{{0xff, 0x00, 0x00, 0x00, 0xff, 0x00}},
			[]Pixel{{255, 0, 0}, {0, 255, 0}},
		},
		{
			"payload shorter than a pixel",
			[]byte{0x02, 0x00, 0x10, 0x20},
			[][]byte{{0x10, 0x20}},
			[]Pixel{},
		},
		{
			"empty frame",
			[]byte{0x00, 0x00},
			[][]byte{{}},
			[]Pixel{},
		},
		{
			"header only",
			[]byte{0x03, 0x00},
			nil,
			nil,
		},
		{
			"trailing bytes dropped",
			[]byte{0x05, 0x00, 1, 2, 3, 4, 5},
			[][]byte{{1, 2, 3, 4, 5}},
			[]Pixel{{1, 2, 3}},
		},
		{
			"little endian header",
			append([]byte{0x2c, 0x01}, make([]byte, 300)...),
			[][]byte{make([]byte, 300)},
			make([]Pixel, 100),
		},
	}

	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			d := NewDecoder()
			frames := feedAll(d, tc.input)
			assert.Equal(t, tc.frames, frames)

			var pixels []Pixel
			for _, f := range frames {
				pixels = append(pixels, Pixels(f)...)
			}
			if len(tc.pixels) == 0 {
				assert.Empty(t, pixels)
			} else {
				assert.Equal(t, tc.pixels, pixels)
			}
		})
	}
}

func TestDecoder_States(t *testing.T) {
	d := NewDecoder(WithCapacity(16))
	assert.Equal(t, AwaitingLength, d.State())

	_, ok := d.Declared()
	assert.False(t, ok)

	_, ready := d.Feed(0x03)
	assert.False(t, ready)
	assert.Equal(t, AwaitingLength, d.State())
	assert.Equal(t, 1, d.Buffered())

	_, ready = d.Feed(0x00)
	assert.False(t, ready)
	assert.Equal(t, AwaitingPayload, d.State())
	assert.Equal(t, 0, d.Buffered())
	l, ok := d.Declared()
	assert.True(t, ok)
	assert.Equal(t, uint16(3), l)

	d.Feed(1)
	d.Feed(2)
	f, ready := d.Feed(3)
	require.True(t, ready)
	assert.Equal(t, []byte{1, 2, 3}, f)
	assert.Equal(t, AwaitingLength, d.State())
	assert.Equal(t, 0, d.Buffered())
}

func TestDecoder_EmptyFrameRearms(t *testing.T) {
	d := NewDecoder()
	frames := feedAll(d, []byte{0x00, 0x00, 0x03, 0x00, 9, 8, 7})
	require.Len(t, frames, 2)
	assert.Empty(t, frames[0])
	assert.Equal(t, []byte{9, 8, 7}, frames[1])
}

func TestDecoder_FrameIsNotAliased(t *testing.T) {
	d := NewDecoder()
	frames := feedAll(d, []byte{0x03, 0x00, 1, 2, 3, 0x03, 0x00, 4, 5, 6})
	require.Len(t, frames, 2)
	assert.Equal(t, []byte{1, 2, 3}, frames[0])
	assert.Equal(t, []byte{4, 5, 6}, frames[1])
}

func TestDecoder_Reset(t *testing.T) {
	d := NewDecoder()
	feedAll(d, []byte{0x06, 0x00, 1, 2})
	d.Reset()
	assert.Equal(t, AwaitingLength, d.State())
	assert.Equal(t, 0, d.Buffered())

	frames := feedAll(d, []byte{0x03, 0x00, 1, 2, 3})
	assert.Equal(t, [][]byte{{1, 2, 3}}, frames)
}

// A stray byte is not detected; the following bytes are read with the wrong framing.
func TestDecoder_NoResync(t *testing.T) {
	d := NewDecoder()
	frames := feedAll(d, []byte{0xaa, 0x03, 0x00, 1, 2, 3})
	assert.Empty(t, frames)

	l, ok := d.Declared()
	assert.True(t, ok)
	assert.Equal(t, uint16(0x03aa), l)
}

func TestDecoder_PixelCount(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	for n := 0; n < 40; n++ {
		payload := make([]byte, n)
		r.Read(payload)

		msg, err := EncodeRaw(payload)
		require.NoError(t, err)

		frames := feedAll(NewDecoder(), msg)
		require.Len(t, frames, 1, "payload of %d bytes", n)

		pixels := Pixels(frames[0])
		require.Len(t, pixels, n/3)
		for i, p := range pixels {
			assert.Equal(t, Pixel{payload[3*i], payload[3*i+1], payload[3*i+2]}, p)
		}
	}
}

func TestDecoder_ChunkingDoesNotMatter(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	var stream []byte
	for _, n := range []int{9, 0, 4, 30, 1} {
		payload := make([]byte, n)
		r.Read(payload)
		msg, err := EncodeRaw(payload)
		require.NoError(t, err)
		stream = append(stream, msg...)
	}

	bulk := feedAll(NewDecoder(), stream)
	require.Len(t, bulk, 5)

	d := NewDecoder()
	var single [][]byte
	for len(stream) > 0 {
		n := 1 + r.Intn(4)
		if n > len(stream) {
			n = len(stream)
		}
		single = append(single, feedAll(d, stream[:n])...)
		stream = stream[n:]
	}
	assert.Equal(t, bulk, single)
}

func TestDecoder_TraceLogging(t *testing.T) {
	level := log.GetLevel()
	defer log.SetLevel(level)

	for _, l := range []log.Level{log.InfoLevel, log.TraceLevel} {
		log.SetLevel(l)
		frames := feedAll(NewDecoder(), []byte{0x03, 0x00, 1, 2, 3})
		assert.Equal(t, [][]byte{{1, 2, 3}}, frames, "level %v", l)
	}
}
