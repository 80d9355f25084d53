package hook

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"livecounter-backend/internal/model"
)

// gate lets a test decide when each key's request resolves.
type gate struct {
	mu       sync.Mutex
	release  map[string]chan model.ApiResponse[string]
	started  chan string
	canceled map[string]bool
}

func newGate() *gate {
	return &gate{
		release:  make(map[string]chan model.ApiResponse[string]),
		started:  make(chan string, 16),
		canceled: make(map[string]bool),
	}
}

func (g *gate) ch(key string) chan model.ApiResponse[string] {
	g.mu.Lock()
	defer g.mu.Unlock()
	if _, ok := g.release[key]; !ok {
		g.release[key] = make(chan model.ApiResponse[string], 1)
	}
	return g.release[key]
}

func (g *gate) produce(ctx context.Context, key string) (model.ApiResponse[string], error) {
	g.started <- key
	res := <-g.ch(key)
	if ctx.Err() != nil {
		g.mu.Lock()
		g.canceled[key] = true
		g.mu.Unlock()
	}
	return res, nil
}

func (g *gate) resolve(key, value string) {
	g.ch(key) <- model.Success(&value)
}

func waitStarted(t *testing.T, g *gate, key string) {
	t.Helper()
	select {
	case got := <-g.started:
		require.Equal(t, key, got)
	case <-time.After(time.Second):
		t.Fatalf("request for %q was not issued", key)
	}
}

func TestCall_InitialStateIsLoading(t *testing.T) {
	g := newGate()
	c := New(context.Background(), "a", g.produce)
	defer func() {
		g.resolve("a", "A")
		c.Wait()
	}()

	s := c.State()
	assert.True(t, s.IsLoading)
	assert.Nil(t, s.Data)
	assert.Empty(t, s.Error)
}

func TestCall_StaleResultIsDiscarded(t *testing.T) {
	g := newGate()
	c := New(context.Background(), "a", g.produce)
	waitStarted(t, g, "a")

	c.SetKey("b")
	waitStarted(t, g, "b")

	g.resolve("b", "B")
	require.Eventually(t, func() bool { return c.State().Settled() }, time.Second, 5*time.Millisecond)

	g.resolve("a", "A")
	c.Wait()

	s := c.State()
	require.NotNil(t, s.Data)
	assert.Equal(t, "B", *s.Data)
	assert.True(t, g.canceled["a"])
}

func TestCall_StaleResultWhileNewerInFlight(t *testing.T) {
	g := newGate()
	c := New(context.Background(), "a", g.produce)
	waitStarted(t, g, "a")
	c.SetKey("b")
	waitStarted(t, g, "b")

	g.resolve("a", "A")
	time.Sleep(20 * time.Millisecond)
	assert.True(t, c.State().IsLoading)

	g.resolve("b", "B")
	c.Wait()
	assert.Equal(t, "B", *c.State().Data)
}

func TestCall_SameKeyDoesNotReissue(t *testing.T) {
	g := newGate()
	c := New(context.Background(), "a", g.produce)
	waitStarted(t, g, "a")

	c.SetKey("a")
	select {
	case key := <-g.started:
		t.Fatalf("unexpected request for %q", key)
	case <-time.After(20 * time.Millisecond):
	}

	g.resolve("a", "A")
	c.Wait()
	assert.Equal(t, "A", *c.State().Data)
}

func TestCall_Refetch(t *testing.T) {
	var mu sync.Mutex
	calls := 0
	produce := func(ctx context.Context, key string) model.ApiResponse[int] {
		mu.Lock()
		defer mu.Unlock()
		calls++
		n := calls
		return model.Success(&n)
	}

	var states []model.ApiResponse[int]
	c := New(context.Background(), "k", Infallible(produce), OnChange(func(s model.ApiResponse[int]) {
		states = append(states, s)
	}))
	c.Wait()
	assert.Equal(t, 1, *c.State().Data)

	c.Refetch()
	c.Wait()
	assert.Equal(t, 2, *c.State().Data)

	require.Len(t, states, 4)
	assert.True(t, states[0].IsLoading)
	assert.Equal(t, 1, *states[1].Data)
	assert.True(t, states[2].IsLoading)
	assert.Equal(t, 2, *states[3].Data)
}

func TestCall_ProducerErrorBecomesFailure(t *testing.T) {
	produce := func(ctx context.Context, key string) (model.ApiResponse[string], error) {
		return model.ApiResponse[string]{}, errors.New("boom")
	}
	c := New(context.Background(), "k", produce)
	c.Wait()

	s := c.State()
	assert.False(t, s.IsLoading)
	assert.Nil(t, s.Data)
	assert.Equal(t, "boom", s.Error)
}

func TestCall_ProducerPanicBecomesFailure(t *testing.T) {
	produce := func(ctx context.Context, key string) (model.ApiResponse[string], error) {
		panic("unexpected")
	}
	c := New(context.Background(), "k", produce)
	c.Wait()

	assert.Equal(t, "unexpected", c.State().Error)
}

func TestCall_CloseDiscardsInFlight(t *testing.T) {
	g := newGate()
	c := New(context.Background(), "a", g.produce)
	waitStarted(t, g, "a")

	c.Close()
	g.resolve("a", "A")
	c.Wait()

	assert.True(t, c.State().IsLoading)
	assert.True(t, g.canceled["a"])

	c.Refetch()
	c.SetKey("b")
	c.Wait()
	assert.Equal(t, "a", c.Key())
}

func TestCall_ParentCancelFreezesState(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	produce := func(ctx context.Context, key string) (model.ApiResponse[string], error) {
		<-ctx.Done()
		return model.ApiResponse[string]{}, ctx.Err()
	}
	c := New(ctx, "k", produce)
	cancel()
	c.Wait()

	assert.True(t, c.State().IsLoading)
}
