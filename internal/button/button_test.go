package button

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEventString(t *testing.T) {
	assert.Equal(t, "Button was pressed", Event{Pressed: true}.String())
	assert.Equal(t, "Button was released", Event{}.String())
}

func TestPresses(t *testing.T) {
	events := make(chan Event)
	presses := Presses(events)

	events <- Event{Pressed: false}
	events <- Event{Pressed: true}

	select {
	case <-presses:
	case <-time.After(time.Second):
		t.Fatal("press was not forwarded")
	}

	select {
	case <-presses:
		t.Fatal("release should not be forwarded")
	case <-time.After(20 * time.Millisecond):
	}

	close(events)
	assert.Eventually(t, func() bool {
		_, open := <-presses
		return !open
	}, time.Second, time.Millisecond)
}
