package events

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmitter_Emit(t *testing.T) {
	e := NewEmitter[int](DefaultBuffer)
	sub1 := e.Subscribe()
	sub2 := e.Subscribe()

	e.Emit(1)
	e.Emit(2)

	for _, sub := range []*Subscription[int]{sub1, sub2} {
		assert.Equal(t, 1, <-sub.Events())
		assert.Equal(t, 2, <-sub.Events())
	}
}

func TestEmitter_Emit_dropsOldestForSlowSubscribers(t *testing.T) {
	e := NewEmitter[int](2)
	sub := e.Subscribe()

	for i := 1; i <= 5; i++ {
		e.Emit(i)
	}

	assert.Equal(t, 4, <-sub.Events())
	assert.Equal(t, 5, <-sub.Events())
	assert.Len(t, sub.Events(), 0)
}

func TestEmitter_SubscribeWith(t *testing.T) {
	e := NewEmitter[string](DefaultBuffer)
	sub := e.SubscribeWith("initial")
	e.Emit("next")

	assert.Equal(t, "initial", <-sub.Events())
	assert.Equal(t, "next", <-sub.Events())
}

func TestEmitter_WithCopy(t *testing.T) {
	e := NewEmitter[[]string](DefaultBuffer).WithCopy(func(evt []string) []string {
		return append([]string{}, evt...)
	})
	sub1 := e.Subscribe()
	sub2 := e.Subscribe()

	evt := []string{"a"}
	e.Emit(evt)

	got1 := <-sub1.Events()
	got1[0] = "b"

	assert.Equal(t, []string{"a"}, evt)
	assert.Equal(t, []string{"a"}, <-sub2.Events())
}

func TestSubscription_Close(t *testing.T) {
	e := NewEmitter[int](DefaultBuffer)
	sub := e.Subscribe()
	assert.Equal(t, 1, e.Subscribers())

	sub.Close()
	sub.Close()
	assert.Equal(t, 0, e.Subscribers())

	e.Emit(1)
	_, more := <-sub.Events()
	assert.False(t, more)
}

func TestEmitter_Close(t *testing.T) {
	e := NewEmitter[int](DefaultBuffer)
	sub := e.Subscribe()

	e.Close()
	e.Close()
	e.Emit(1)

	_, more := <-sub.Events()
	assert.False(t, more)

	late := e.Subscribe()
	_, more = <-late.Events()
	assert.False(t, more)

	// closing a subscription after the emitter must not panic
	sub.Close()
}

func TestEmitter_concurrentEmit(t *testing.T) {
	e := NewEmitter[int](1000)
	sub := e.Subscribe()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				e.Emit(j)
			}
		}()
	}
	wg.Wait()

	require.Len(t, sub.Events(), 1000)
}
