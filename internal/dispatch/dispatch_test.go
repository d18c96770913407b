package dispatch

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoopRunsInPostOrder(t *testing.T) {
	l := NewLoop()
	stop := Start(l)
	defer stop()

	var got []int
	for i := 0; i < 50; i++ {
		i := i
		l.Post(func() { got = append(got, i) })
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	var snapshot []int
	require.True(t, l.Call(ctx, func() { snapshot = append(snapshot, got...) }))

	require.Len(t, snapshot, 50)
	for i, v := range snapshot {
		assert.Equal(t, i, v)
	}
}

func TestPostBeforeRunIsKept(t *testing.T) {
	l := NewLoop()
	ran := make(chan struct{})
	l.Post(func() { close(ran) })

	stop := Start(l)
	defer stop()

	select {
	case <-ran:
	case <-time.After(time.Second):
		t.Fatal("function posted before Run never ran")
	}
}

func TestGoPostsCompletionOntoLoop(t *testing.T) {
	l := NewLoop()
	stop := Start(l)
	defer stop()

	// inLoop is only touched by functions running on the loop.
	var inLoop int32
	result := make(chan int, 1)

	l.Post(func() {
		atomic.StoreInt32(&inLoop, 1)
		Go(l, func() int { return 42 }, func(v int) {
			result <- v
		})
	})

	select {
	case v := <-result:
		assert.Equal(t, 42, v)
	case <-time.After(time.Second):
		t.Fatal("completion never delivered")
	}
	assert.Equal(t, int32(1), atomic.LoadInt32(&inLoop))
}

func TestCallReturnsFalseWhenContextEnds(t *testing.T) {
	l := NewLoop() // never started

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	assert.False(t, l.Call(ctx, func() {}))
}

func TestPostAfterStopIsDropped(t *testing.T) {
	l := NewLoop()
	stop := Start(l)
	stop()

	var ran atomic.Bool
	l.Post(func() { ran.Store(true) })
	time.Sleep(10 * time.Millisecond)
	assert.False(t, ran.Load())
}
