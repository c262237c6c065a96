package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/callebjorkell/pixel-bridge/internal/animation"
	"github.com/callebjorkell/pixel-bridge/internal/bridge"
	"github.com/callebjorkell/pixel-bridge/internal/button"
	"github.com/callebjorkell/pixel-bridge/internal/frame"
	"github.com/callebjorkell/pixel-bridge/internal/neopixel"
	"github.com/callebjorkell/pixel-bridge/internal/uart"
	log "github.com/sirupsen/logrus"
	"periph.io/x/conn/v3/physic"
)

func signalContext() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())
	signalChan := make(chan os.Signal, 1)
	signal.Notify(signalChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		select {
		case s := <-signalChan:
			log.Infof("Got %v, shutting down...", s)
			cancel()
		case <-ctx.Done():
		}
		signal.Stop(signalChan)
	}()
	return ctx, cancel
}

func openSink(conf *Config) (neopixel.Sink, io.Closer, error) {
	switch conf.Output.Driver {
	case driverWS281x:
		s, err := neopixel.NewStrip(conf.Strip())
		return s, s, err
	case driverSPI:
		freq := physic.Frequency(conf.Output.Frequency) * physic.Hertz
		s, err := neopixel.OpenSPI(conf.Output.SpiPort, conf.Output.LedCount, freq)
		return s, s, err
	case driverFIFO:
		f, err := os.OpenFile(conf.Output.FifoPath, os.O_WRONLY, 0)
		if err != nil {
			return nil, nil, err
		}
		return neopixel.NewFIFO(f), f, nil
	}
	return &neopixel.LogSink{}, nopCloser{}, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

func startBridge() error {
	conf, err := readConfig(*configFile)
	if err != nil {
		return err
	}
	if *dryRun {
		conf.Output.Driver = driverLog
	}

	port, err := uart.Open(conf.UART())
	if err != nil {
		return err
	}
	defer port.Close()

	sink, closer, err := openSink(conf)
	if err != nil {
		return fmt.Errorf("unable to open %s output: %w", conf.Output.Driver, err)
	}
	defer closer.Close()

	ctx, cancel := signalContext()
	defer cancel()

	b := bridge.New(port, sink, frame.WithCapacity(conf.Output.LedCount*3))
	if conf.ResetButton != "" {
		events, err := button.Init(conf.ResetButton)
		if err != nil {
			return err
		}
		b.ResetOn(button.Presses(events))
	}
	err = b.Run(ctx)
	stats := b.Stats()
	log.Infof("Showed %d frames (%d pixels)", stats.Frames, stats.Pixels)
	if errors.Is(err, context.Canceled) {
		log.Info("Done...")
		return nil
	}
	return err
}

func parseColors(args []string) ([]uint32, error) {
	colors := make([]uint32, 0, len(args))
	for _, a := range args {
		h := strings.TrimPrefix(strings.TrimPrefix(a, "#"), "0x")
		if len(h) != 6 {
			return nil, fmt.Errorf("color %q is not in rrggbb form", a)
		}
		c, err := strconv.ParseUint(h, 16, 32)
		if err != nil {
			return nil, fmt.Errorf("color %q: %w", a, err)
		}
		colors = append(colors, uint32(c))
	}
	return colors, nil
}

func sendFrame() error {
	conf, err := readConfig(*configFile)
	if err != nil {
		return err
	}
	colors, err := parseColors(*sendColors)
	if err != nil {
		return err
	}

	port, err := uart.Open(conf.UART())
	if err != nil {
		return err
	}
	defer port.Close()

	pixels := make([]frame.Pixel, 0, len(colors))
	for _, c := range colors {
		pixels = append(pixels, animation.ToPixel(c))
	}
	log.Infof("Sending %d pixels to %v", len(pixels), port)
	return animation.NewLink(port).WriteFrame(pixels)
}

func playDemo() error {
	conf, err := readConfig(*configFile)
	if err != nil {
		return err
	}
	colors, err := parseColors([]string{*demoColor})
	if err != nil {
		return err
	}

	port, err := uart.Open(conf.UART())
	if err != nil {
		return err
	}
	defer port.Close()

	player := animation.NewPlayer(animation.NewLink(port), conf.Output.LedCount, animation.DefaultTick)
	switch *demoEffect {
	case "flash":
		return player.Flash(colors[0])
	case "rainbow":
		return player.Rainbow()
	}

	ctx, cancel := signalContext()
	defer cancel()

	player.Breathe(colors[0])
	<-ctx.Done()
	return player.Stop()
}

func listPorts() error {
	names, err := uart.Ports()
	if err != nil {
		return err
	}
	if len(names) == 0 {
		log.Info("No serial ports found")
	}
	for _, n := range names {
		fmt.Println(n)
	}
	return nil
}
