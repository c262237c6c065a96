package button

import "fmt"

type Event struct {
	Pressed bool
}

func (b Event) String() string {
	action := "pressed"
	if !b.Pressed {
		action = "released"
	}
	return fmt.Sprintf("Button was %v", action)
}

// Presses forwards press events and drops releases.
func Presses(events <-chan Event) <-chan struct{} {
	c := make(chan struct{}, 1)
	go func() {
		defer close(c)
		for e := range events {
			if !e.Pressed {
				continue
			}
			select {
			case c <- struct{}{}:
			default:
			}
		}
	}()
	return c
}
