package animation

import (
	"sync"
	"sync/atomic"

	log "github.com/sirupsen/logrus"
)

// Queue hands the link to one animation at a time. Asking for the link marks the queue as interrupted until the
// request is served, and a running animation that sees the interruption should return so the next one can start.
type Queue struct {
	waiting int32
	link    sync.Mutex
}

type Release func()

// Acquire blocks until the caller owns the link.
func (q *Queue) Acquire() Release {
	n := atomic.AddInt32(&q.waiting, 1)
	log.Debug("Waiting for the link: ", n)

	q.link.Lock()
	atomic.AddInt32(&q.waiting, -1)

	var once sync.Once
	return func() {
		once.Do(q.link.Unlock)
	}
}

// Interrupted reports whether another animation is waiting for the link.
func (q *Queue) Interrupted() bool {
	return atomic.LoadInt32(&q.waiting) > 0
}
