//go:build !pi

package button

import (
	"os"
	"os/signal"
	"syscall"

	log "github.com/sirupsen/logrus"
)

// Init simulates the button with SIGHUP when built without pi support.
func Init(pin string) (<-chan Event, error) {
	log.Infof("No gpio support, send SIGHUP instead of pressing %s", pin)

	c := make(chan Event, 5)
	go simulateButton(c)
	return c, nil
}

func simulateButton(c chan<- Event) {
	hupChan := make(chan os.Signal, 1)
	signal.Notify(hupChan, syscall.SIGHUP)

	for range hupChan {
		c <- Event{Pressed: true}
	}
}
