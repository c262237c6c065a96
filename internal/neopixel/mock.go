//go:build !pi

package neopixel

import (
	log "github.com/sirupsen/logrus"
)

type mockEngine struct {
	colors  []uint32
	renders int
}

func (d *mockEngine) Init() error {
	return nil
}

func (d *mockEngine) Render() error {
	d.renders++
	log.Debugf("neopixel: render %d, colors: %06x", d.renders, d.colors)
	return nil
}

func (d *mockEngine) Wait() error {
	return nil
}

func (d *mockEngine) Fini() {
	log.Debug("neopixel: fini")
}

func (d *mockEngine) Leds(_ int) []uint32 {
	return d.colors
}

func newEngine(opts StripOptions) (wsEngine, error) {
	log.Warn("Built without pi support, led output is only logged")
	return &mockEngine{
		colors: make([]uint32, opts.LedCount),
	}, nil
}
