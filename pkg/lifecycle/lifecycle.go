package lifecycle

import (
	"context"
	"sync"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

var log = logrus.WithField("comp", "lifecycle")

type State uint8

const (
	Unstarted State = iota
	Started
	Stopping
	Stopped
)

func (s State) String() string {
	switch s {
	case Unstarted:
		return "Unstarted"
	case Started:
		return "Started"
	case Stopping:
		return "Stopping"
	case Stopped:
		return "Stopped"
	default:
		return "Unknown"
	}
}

var ErrAlreadyStarted = errors.New("the lifecycle was already started in the past")

// Lifecycle coordinates a single long running loop, e.g. the query loop
// of a browse. The loop calls Started when it begins and Stopped when it
// returns. Anyone may call Shutdown to ask the loop to finish and wait
// until it did. A Lifecycle cannot be restarted.
type Lifecycle struct {
	name string

	// A context that can be used for long running
	// io operations of the loop. This context
	// gets cancelled when the loop receives a
	// shutdown signal.
	ctx    context.Context
	cancel context.CancelFunc

	lk    sync.RWMutex
	state State

	// When this channel is closed the loop
	// starts to gracefully shut down.
	shutdown chan struct{}

	// Closed when the loop has returned.
	done chan struct{}
}

func New(name string) *Lifecycle {
	ctx, cancel := context.WithCancel(context.Background())
	return &Lifecycle{
		name:     name,
		ctx:      ctx,
		cancel:   cancel,
		state:    Unstarted,
		shutdown: make(chan struct{}),
		done:     make(chan struct{}),
	}
}

func (l *Lifecycle) Started() error {
	l.lk.Lock()
	defer l.lk.Unlock()

	if l.state != Unstarted {
		return ErrAlreadyStarted
	}
	l.state = Started

	log.WithField("name", l.name).Traceln("Started")

	go func() {
		select {
		case <-l.shutdown:
		case <-l.done:
		}
		l.cancel()
	}()

	return nil
}

func (l *Lifecycle) SigShutdown() <-chan struct{} {
	return l.shutdown
}

func (l *Lifecycle) SigDone() <-chan struct{} {
	return l.done
}

func (l *Lifecycle) Stopped() {
	l.lk.Lock()
	defer l.lk.Unlock()

	if l.state == Unstarted || l.state == Stopped {
		return
	}
	l.state = Stopped

	log.WithField("name", l.name).Traceln("Stopped")

	close(l.done)
}

func (l *Lifecycle) Context() context.Context {
	return l.ctx
}

func (l *Lifecycle) State() State {
	l.lk.RLock()
	defer l.lk.RUnlock()
	return l.state
}

// Shutdown signals the loop to stop and blocks until it called Stopped.
// It returns immediately if the loop never started or already stopped.
func (l *Lifecycle) Shutdown() {
	l.lk.Lock()
	if l.state != Started {
		l.lk.Unlock()
		return
	}
	l.state = Stopping
	l.lk.Unlock()

	close(l.shutdown)
	<-l.done
}
