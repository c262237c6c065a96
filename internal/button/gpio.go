//go:build pi

package button

import (
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/host/v3"
)

// Init sets up the named pin as a pulled up button and returns its event channel.
func Init(pin string) (<-chan Event, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("unable to initialize periph: %w", err)
	}
	b := gpioreg.ByName(pin)
	if b == nil {
		return nil, fmt.Errorf("no gpio pin named %s", pin)
	}
	if err := b.In(gpio.PullUp, gpio.BothEdges); err != nil {
		return nil, err
	}

	log.Infof("Listening for button presses on %s", pin)
	c := make(chan Event, 5)
	go handleButton(b, c)
	return c, nil
}

func handleButton(b gpio.PinIO, c chan<- Event) {
	last := b.Read()
	for {
		if !b.WaitForEdge(time.Second) {
			continue
		}

		// debounce
		l := b.Read()
		if l == last {
			continue
		}

		time.Sleep(15 * time.Millisecond)
		if l == b.Read() {
			last = l
			c <- Event{
				Pressed: l == gpio.Low,
			}
		}
	}
}
