package neopixel

// Pack builds the color word for one pixel in WS2812 wire order: green in the high byte, then red, then blue. This is
// GRB, (G<<16)|(R<<8)|B, which is what the chain shifts in.
func Pack(r, g, b uint8) uint32 {
	return uint32(g)<<16 | uint32(r)<<8 | uint32(b)
}

// Unpack is the inverse of Pack.
func Unpack(word uint32) (r, g, b uint8) {
	return uint8(word >> 8), uint8(word >> 16), uint8(word)
}

// FIFOWord places a color word in the top 24 bits of a 32 bit FIFO entry. The state machine shifts bits out MSB first
// and ignores the low byte.
func FIFOWord(word uint32) uint32 {
	return (word & 0xffffff) << 8
}
