package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/QuinnBerryman02/TessellatingShapeAutomaton/config"
	"github.com/QuinnBerryman02/TessellatingShapeAutomaton/internal/pipeline"
	"github.com/QuinnBerryman02/TessellatingShapeAutomaton/internal/store"
	"github.com/alicebob/miniredis/v2"
	backend "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func summaries(t *testing.T) []pipeline.Summary {
	t.Helper()
	defs, err := config.LoadDir("../../definitions")
	require.NoError(t, err)
	p := pipeline.New(nil, nil)
	var out []pipeline.Summary
	for _, d := range defs {
		r, err := p.Resolve(context.Background(), d)
		require.NoError(t, err)
		out = append(out, pipeline.Summarize(r))
	}
	return out
}

// runContract checks the behavior every Store shares.
func runContract(t *testing.T, s store.Store) {
	ctx := context.Background()
	all := summaries(t)

	t.Run("SaveAndLoad", func(t *testing.T) {
		for _, sum := range all {
			require.NoError(t, s.Save(ctx, sum))
		}
		for _, sum := range all {
			got, err := s.Load(ctx, sum.Name)
			require.NoError(t, err)
			assert.Equal(t, sum, got)
		}
	})

	t.Run("List", func(t *testing.T) {
		names, err := s.List(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"brick", "domino", "l-tromino", "square"}, names)
	})

	t.Run("Overwrite", func(t *testing.T) {
		sum := all[0]
		sum.Description = "changed"
		require.NoError(t, s.Save(ctx, sum))
		got, err := s.Load(ctx, sum.Name)
		require.NoError(t, err)
		assert.Equal(t, "changed", got.Description)
	})

	t.Run("LoadMissing", func(t *testing.T) {
		_, err := s.Load(ctx, "missing")
		assert.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, s.Delete(ctx, "square"))
		require.NoError(t, s.Delete(ctx, "square"))
		_, err := s.Load(ctx, "square")
		assert.ErrorIs(t, err, store.ErrNotFound)
		names, err := s.List(ctx)
		require.NoError(t, err)
		assert.NotContains(t, names, "square")
	})
}

func TestMemory_Contract(t *testing.T) {
	runContract(t, store.NewMemory())
}

// TestMemory_Isolation hands out copies.
func TestMemory_Isolation(t *testing.T) {
	ctx := context.Background()
	m := store.NewMemory()
	sum := summaries(t)[0]
	require.NoError(t, m.Save(ctx, sum))

	got, err := m.Load(ctx, sum.Name)
	require.NoError(t, err)
	got.Shape[0] = "changed"
	got.Classes[0].Neighbors[0] = "changed"

	again, err := m.Load(ctx, sum.Name)
	require.NoError(t, err)
	assert.Equal(t, sum, again)
}

func newRedis(t *testing.T, opts ...store.RedisOption) (*store.Redis, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := backend.NewClient(&backend.Options{Addr: mr.Addr()})
	r := store.NewRedisFromClient(client, opts...)
	t.Cleanup(func() { _ = r.Close() })
	return r, mr
}

func TestRedis_Contract(t *testing.T) {
	r, _ := newRedis(t)
	require.NoError(t, r.Ping(context.Background()))
	runContract(t, r)
}

// TestRedis_Keys uses the prefix for values and the index.
func TestRedis_Keys(t *testing.T) {
	r, mr := newRedis(t, store.WithPrefix("test:"))
	sum := summaries(t)[0]
	require.NoError(t, r.Save(context.Background(), sum))

	assert.True(t, mr.Exists("test:"+sum.Name))
	members, err := mr.ZMembers("test:index")
	require.NoError(t, err)
	assert.Equal(t, []string{sum.Name}, members)
}

// TestRedis_TTL expires stored values.
func TestRedis_TTL(t *testing.T) {
	r, mr := newRedis(t, store.WithTTL(time.Second))
	ctx := context.Background()
	sum := summaries(t)[0]
	require.NoError(t, r.Save(ctx, sum))

	_, err := r.Load(ctx, sum.Name)
	require.NoError(t, err)

	mr.FastForward(2 * time.Second)
	_, err = r.Load(ctx, sum.Name)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

// TestRedis_Corrupt reports undecodable values.
func TestRedis_Corrupt(t *testing.T) {
	r, mr := newRedis(t)
	require.NoError(t, mr.Set("tessellate:summary:broken", "{"))
	_, err := r.Load(context.Background(), "broken")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, store.ErrNotFound)
}

// TestRedis_Unreachable surfaces connection errors.
func TestRedis_Unreachable(t *testing.T) {
	r, mr := newRedis(t)
	mr.Close()
	assert.Error(t, r.Ping(context.Background()))
	_, err := r.Load(context.Background(), "square")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, store.ErrNotFound)
}
