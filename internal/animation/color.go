package animation

import "github.com/callebjorkell/pixel-bridge/internal/frame"

// Get the same color, but with a lower or equal brightness, on a scale from 0-100, where 100 is the same as the input.
func withBrightness(color, light uint32) uint32 {
	if light >= 100 {
		return color
	}
	if light == 0 {
		return 0
	}

	r, g, b := (color>>16)&0xff, (color>>8)&0xff, color&0xff

	red := r * light / 100
	green := g * light / 100
	blue := b * light / 100

	return (red << 16) | (green << 8) | blue
}

// getRGB walks the color wheel, red to green to blue and back to red every 255 steps.
func getRGB(step int) uint32 {
	pos := uint32(step % 255)
	switch {
	case pos < 85:
		return (255-pos*3)<<16 | (pos*3)<<8
	case pos < 170:
		pos -= 85
		return (255-pos*3)<<8 | pos*3
	default:
		pos -= 170
		return (pos*3)<<16 | (255 - pos*3)
	}
}

// ToPixel splits a 0xRRGGBB color.
func ToPixel(color uint32) frame.Pixel {
	return frame.Pixel{
		R: uint8(color >> 16),
		G: uint8(color >> 8),
		B: uint8(color),
	}
}
