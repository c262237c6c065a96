//go:build pi

package neopixel

import (
	ws "github.com/rpi-ws281x/rpi-ws281x-go"
)

func newEngine(opts StripOptions) (wsEngine, error) {
	opt := ws.DefaultOptions
	opt.Frequency = opts.Frequency
	opt.Channels[0].GpioPin = opts.Pin
	opt.Channels[0].Brightness = opts.Brightness
	opt.Channels[0].LedCount = opts.LedCount
	// Words are already packed in wire order, so the library must not reorder them.
	opt.Channels[0].StripeType = ws.WS2811StripRGB

	dev, err := ws.MakeWS2811(&opt)
	if err != nil {
		return nil, err
	}
	return dev, nil
}
