package registry

import (
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestContainer() *Container {
	return NewContainer(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestRegisterInstanceAndGet(t *testing.T) {
	c := newTestContainer()

	require.NoError(t, c.RegisterInstance("answer", 42))

	v, err := c.Get("answer")
	require.NoError(t, err)
	assert.Equal(t, 42, v)
	assert.True(t, c.Has("answer"))
	assert.False(t, c.Has("question"))
}

func TestGetUnknownService(t *testing.T) {
	c := newTestContainer()
	_, err := c.Get("ghost")
	assert.ErrorIs(t, err, ErrNotRegistered)
}

func TestDuplicateRegistrationRejected(t *testing.T) {
	c := newTestContainer()

	require.NoError(t, c.RegisterInstance("x", 1))
	err := c.RegisterInstance("x", 2)
	assert.ErrorIs(t, err, ErrAlreadyRegistered)

	// The original registration survives.
	v, err := c.Get("x")
	require.NoError(t, err)
	assert.Equal(t, 1, v)
}

func TestEmptyNameRejected(t *testing.T) {
	c := newTestContainer()
	assert.Error(t, c.RegisterInstance("", 1))
}

func TestNilFactoryRejected(t *testing.T) {
	c := newTestContainer()
	assert.Error(t, c.RegisterFactory("f", nil, nil))
	assert.Error(t, c.RegisterSingleton("s", nil, nil))
}

func TestFactoryRunsEveryGet(t *testing.T) {
	c := newTestContainer()

	builds := 0
	require.NoError(t, c.RegisterFactory("counter", nil, func(map[string]any) (any, error) {
		builds++
		return builds, nil
	}))

	v1, err := c.Get("counter")
	require.NoError(t, err)
	v2, err := c.Get("counter")
	require.NoError(t, err)

	assert.Equal(t, 1, v1)
	assert.Equal(t, 2, v2)
}

func TestSingletonBuildsOnce(t *testing.T) {
	c := newTestContainer()

	builds := 0
	require.NoError(t, c.RegisterSingleton("once", nil, func(map[string]any) (any, error) {
		builds++
		return &struct{ n int }{n: builds}, nil
	}))

	v1, err := c.Get("once")
	require.NoError(t, err)
	v2, err := c.Get("once")
	require.NoError(t, err)

	assert.Same(t, v1, v2)
	assert.Equal(t, 1, builds)
}

func TestDependencyResolution(t *testing.T) {
	c := newTestContainer()

	require.NoError(t, c.RegisterInstance("base", 10))
	require.NoError(t, c.RegisterSingleton("mid", []string{"base"}, func(deps map[string]any) (any, error) {
		return deps["base"].(int) * 2, nil
	}))
	require.NoError(t, c.RegisterSingleton("top", []string{"mid", "base"}, func(deps map[string]any) (any, error) {
		return deps["mid"].(int) + deps["base"].(int), nil
	}))

	v, err := c.Get("top")
	require.NoError(t, err)
	assert.Equal(t, 30, v)
}

func TestCircularDependencyDetected(t *testing.T) {
	c := newTestContainer()

	require.NoError(t, c.RegisterSingleton("a", []string{"b"}, func(deps map[string]any) (any, error) {
		return nil, nil
	}))
	require.NoError(t, c.RegisterSingleton("b", []string{"a"}, func(deps map[string]any) (any, error) {
		return nil, nil
	}))

	_, err := c.Get("a")
	require.ErrorIs(t, err, ErrCircularDependency)
	assert.Contains(t, err.Error(), "a -> b -> a")
}

func TestSelfDependencyDetected(t *testing.T) {
	c := newTestContainer()

	require.NoError(t, c.RegisterSingleton("narcissus", []string{"narcissus"}, func(deps map[string]any) (any, error) {
		return nil, nil
	}))

	_, err := c.Get("narcissus")
	assert.ErrorIs(t, err, ErrCircularDependency)
}

func TestFactoryErrorPropagates(t *testing.T) {
	c := newTestContainer()

	boom := errors.New("boom")
	require.NoError(t, c.RegisterSingleton("broken", nil, func(map[string]any) (any, error) {
		return nil, boom
	}))
	require.NoError(t, c.RegisterSingleton("dependent", []string{"broken"}, func(deps map[string]any) (any, error) {
		return 1, nil
	}))

	_, err := c.Get("dependent")
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), `"broken"`)
}

func TestFailedSingletonIsRetried(t *testing.T) {
	c := newTestContainer()

	attempts := 0
	require.NoError(t, c.RegisterSingleton("flaky", nil, func(map[string]any) (any, error) {
		attempts++
		if attempts == 1 {
			return nil, errors.New("first attempt fails")
		}
		return "ok", nil
	}))

	_, err := c.Get("flaky")
	require.Error(t, err)

	v, err := c.Get("flaky")
	require.NoError(t, err)
	assert.Equal(t, "ok", v)
}

func TestNames(t *testing.T) {
	c := newTestContainer()

	require.NoError(t, c.RegisterInstance("zebra", 1))
	require.NoError(t, c.RegisterInstance("aardvark", 2))
	require.NoError(t, c.RegisterInstance("mongoose", 3))

	assert.Equal(t, []string{"aardvark", "mongoose", "zebra"}, c.Names())
}

type disposable struct {
	disposed bool
	panics   bool
}

func (d *disposable) Dispose() {
	d.disposed = true
	if d.panics {
		panic("dispose exploded")
	}
}

func TestDisposeTearsDownInstances(t *testing.T) {
	c := newTestContainer()

	built := &disposable{}
	instance := &disposable{}
	require.NoError(t, c.RegisterInstance("instance", instance))
	require.NoError(t, c.RegisterSingleton("built", nil, func(map[string]any) (any, error) {
		return built, nil
	}))

	neverBuilt := false
	require.NoError(t, c.RegisterSingleton("lazy", nil, func(map[string]any) (any, error) {
		neverBuilt = true
		return &disposable{}, nil
	}))

	_, err := c.Get("built")
	require.NoError(t, err)

	c.Dispose()

	assert.True(t, instance.disposed)
	assert.True(t, built.disposed)
	assert.False(t, neverBuilt, "unbuilt singletons must not be constructed just to dispose them")
}

func TestDisposeSurvivesPanickingDisposer(t *testing.T) {
	c := newTestContainer()

	angry := &disposable{panics: true}
	calm := &disposable{}
	require.NoError(t, c.RegisterInstance("angry", angry))
	require.NoError(t, c.RegisterInstance("calm", calm))

	assert.NotPanics(t, func() { c.Dispose() })
	assert.True(t, angry.disposed)
	assert.True(t, calm.disposed)
}

func TestDisposedContainerRejectsEverything(t *testing.T) {
	c := newTestContainer()
	require.NoError(t, c.RegisterInstance("x", 1))
	c.Dispose()

	assert.ErrorIs(t, c.RegisterInstance("y", 2), ErrDisposed)
	_, err := c.Get("x")
	assert.ErrorIs(t, err, ErrDisposed)

	// Idempotent.
	c.Dispose()
}
