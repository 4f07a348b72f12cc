package registry_test

import (
	"context"
	"sync"
	"testing"

	"github.com/aretw0/baton/pkg/domain"
	"github.com/aretw0/baton/pkg/registry"
	"github.com/aretw0/baton/pkg/sequence"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func noop(name string) domain.Target {
	return sequence.Callable(name, func(context.Context, ...any) (any, error) { return nil, nil })
}

func TestRegistry(t *testing.T) {
	r := registry.NewRegistry()
	require.NoError(t, r.Register(noop("SayMyName"), noop("construct_greeting")))

	got, err := r.Lookup("say_my_name")
	require.NoError(t, err)
	assert.Equal(t, "SayMyName", got.Name())

	_, err = r.Lookup("ConstructGreeting")
	assert.NoError(t, err)

	_, err = r.Lookup("missing")
	assert.ErrorIs(t, err, registry.ErrNotFound)

	err = r.Register(noop("say_my_name"))
	assert.ErrorIs(t, err, registry.ErrDuplicate)

	assert.Equal(t, []string{"construct_greeting", "say_my_name"}, r.Names())
	assert.Panics(t, func() { r.MustRegister(noop("SayMyName")) })
	assert.Error(t, r.Register(noop("")))
}

func TestRegistry_BatchIsAllOrNothing(t *testing.T) {
	r := registry.NewRegistry()
	require.NoError(t, r.Register(noop("B")))

	err := r.Register(noop("A"), noop("B"))
	assert.ErrorIs(t, err, registry.ErrDuplicate)
	assert.Equal(t, []string{"b"}, r.Names())

	err = r.Register(noop("C"), noop("c"))
	assert.ErrorIs(t, err, registry.ErrDuplicate)
	assert.Equal(t, []string{"b"}, r.Names())
}

func TestRegistry_Concurrent(t *testing.T) {
	r := registry.NewRegistry()
	var wg sync.WaitGroup
	for _, name := range []string{"a", "b", "c", "d"} {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_ = r.Register(noop(name))
		}()
		go func() {
			defer wg.Done()
			_, _ = r.Lookup(name)
		}()
	}
	wg.Wait()
	assert.Len(t, r.Names(), 4)
}
