package memory

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Vasu1712/zenith-backend/internal/models"
)

func TestRegistrationStore_CreateKeepsOrder(t *testing.T) {
	store := NewRegistrationStore()
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		require.NoError(t, store.Create(ctx, &models.Registration{ID: fmt.Sprintf("r%d", i), Name: "n"}))
	}

	all, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []string{"r0", "r1", "r2"}, []string{all[0].ID, all[1].ID, all[2].ID})

	n, err := store.Count(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 3, n)
}

func TestRegistrationStore_DuplicateID(t *testing.T) {
	store := NewRegistrationStore()
	ctx := context.Background()
	require.NoError(t, store.Create(ctx, &models.Registration{ID: "x", Name: "first"}))
	require.Error(t, store.Create(ctx, &models.Registration{ID: "x", Name: "second"}))

	rec, ok := store.Get("x")
	require.True(t, ok)
	assert.Equal(t, "first", rec.Name)
}

func TestRegistrationStore_ReturnsCopies(t *testing.T) {
	store := NewRegistrationStore()
	ctx := context.Background()
	in := &models.Registration{ID: "x", Name: "orig", CreatedAt: time.Now()}
	require.NoError(t, store.Create(ctx, in))
	in.Name = "mutated"

	all, err := store.List(ctx)
	require.NoError(t, err)
	all[0].Name = "also mutated"

	rec, _ := store.Get("x")
	assert.Equal(t, "orig", rec.Name)
}

func TestRegistrationStore_CanceledContext(t *testing.T) {
	store := NewRegistrationStore()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, store.Create(ctx, &models.Registration{ID: "x"}), context.Canceled)
	_, err := store.List(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	_, err = store.Count(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRegistrationStore_ConcurrentCreate(t *testing.T) {
	store := NewRegistrationStore()
	ctx := context.Background()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_ = store.Create(ctx, &models.Registration{ID: fmt.Sprintf("r%d", i)})
		}(i)
	}
	wg.Wait()

	n, err := store.Count(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 50, n)
}
