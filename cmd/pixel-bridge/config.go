package main

import (
	"fmt"
	"os"
	"time"

	"github.com/callebjorkell/pixel-bridge/internal/neopixel"
	"github.com/callebjorkell/pixel-bridge/internal/uart"
	"gopkg.in/yaml.v3"
)

const (
	driverWS281x = "ws281x"
	driverSPI    = "spi"
	driverFIFO   = "fifo"
	driverLog    = "log"
)

type Config struct {
	Serial struct {
		Port        string `yaml:"port"`
		BaudRate    int    `yaml:"baudRate"`
		ReadTimeout int    `yaml:"readTimeout"`
	} `yaml:"serial"`
	Output struct {
		Driver     string `yaml:"driver"`
		LedCount   int    `yaml:"ledCount"`
		Pin        int    `yaml:"pin"`
		Frequency  int    `yaml:"frequency"`
		Brightness int    `yaml:"brightness"`
		SpiPort    string `yaml:"spiPort"`
		FifoPath   string `yaml:"fifoPath"`
	} `yaml:"output"`
	ResetButton string `yaml:"resetButton"`
}

func (c Config) UART() uart.Config {
	return uart.Config{
		Name:        c.Serial.Port,
		BaudRate:    c.Serial.BaudRate,
		ReadTimeout: time.Duration(c.Serial.ReadTimeout) * time.Millisecond,
	}
}

func (c Config) Strip() neopixel.StripOptions {
	return neopixel.StripOptions{
		LedCount:   c.Output.LedCount,
		Pin:        c.Output.Pin,
		Frequency:  c.Output.Frequency,
		Brightness: c.Output.Brightness,
	}
}

func readConfig(path string) (*Config, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return parseConfig(content)
}

func parseConfig(content []byte) (*Config, error) {
	c := &Config{}
	err := yaml.Unmarshal(content, c)
	if err != nil {
		return nil, err
	}

	if c.Serial.Port == "" {
		return nil, fmt.Errorf("serial port is missing")
	}
	if c.Serial.BaudRate <= 0 {
		c.Serial.BaudRate = uart.DefaultBaudRate
	}
	if c.Serial.ReadTimeout <= 0 {
		c.Serial.ReadTimeout = int(uart.DefaultReadTimeout / time.Millisecond)
	}

	switch c.Output.Driver {
	case "":
		c.Output.Driver = driverWS281x
	case driverWS281x, driverSPI, driverLog:
	case driverFIFO:
		if c.Output.FifoPath == "" {
			return nil, fmt.Errorf("fifo output needs a fifoPath")
		}
	default:
		return nil, fmt.Errorf("unknown output driver %q", c.Output.Driver)
	}

	if c.Output.LedCount <= 0 {
		c.Output.LedCount = neopixel.DefaultLedCount
	}
	if c.Output.LedCount*3 > 0xffff {
		return nil, fmt.Errorf("%d leds do not fit in a single frame", c.Output.LedCount)
	}
	if c.Output.Pin <= 0 {
		c.Output.Pin = neopixel.DefaultPin
	}
	if c.Output.Frequency <= 0 {
		c.Output.Frequency = neopixel.DefaultFrequency
	}
	if c.Output.Brightness <= 0 || c.Output.Brightness > 255 {
		c.Output.Brightness = neopixel.DefaultBrightness
	}
	if c.Output.Driver == driverSPI && c.Output.Frequency != neopixel.DefaultFrequency {
		return nil, fmt.Errorf("spi output only supports %d Hz leds", neopixel.DefaultFrequency)
	}

	return c, nil
}
