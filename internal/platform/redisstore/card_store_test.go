package redisstore

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/phrazzld/trello-manager/internal/domain"
	"github.com/phrazzld/trello-manager/internal/store"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestRedisCardStore_CRUD(t *testing.T) {
	_, client := newTestClient(t)
	s := NewRedisCardStore(client, "", domain.CardTypeTask, testLogger())
	ctx := context.Background()

	created, err := s.Create(ctx, domain.Card{Title: "write tests", Category: domain.CategoryTest})
	require.NoError(t, err)
	assert.Equal(t, int64(1), created.ID)
	assert.Equal(t, domain.CardTypeTask, created.Type)
	assert.False(t, created.CreatedAt.IsZero())

	got, err := s.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.Title, got.Title)
	assert.Equal(t, created.Category, got.Category)
	assert.True(t, created.CreatedAt.Equal(got.CreatedAt))

	n, err := s.Delete(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	_, err = s.GetByID(ctx, created.ID)
	assert.ErrorIs(t, err, store.ErrCardNotFound)

	_, err = s.Delete(ctx, created.ID)
	assert.ErrorIs(t, err, store.ErrCardNotFound)
}

func TestRedisCardStore_ListOrderedByID(t *testing.T) {
	_, client := newTestClient(t)
	s := NewRedisCardStore(client, "", domain.CardTypeIssue, testLogger())
	ctx := context.Background()

	empty, err := s.List(ctx)
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)

	for i := 0; i < 12; i++ {
		_, err := s.Create(ctx, domain.Card{Title: "t", Description: "d"})
		require.NoError(t, err)
	}

	list, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 12)
	for i, c := range list {
		assert.Equal(t, int64(i+1), c.ID)
	}
}

func TestRedisCardStore_VariantsAreIsolated(t *testing.T) {
	mr, client := newTestClient(t)
	stores := NewRedisCardStores(client, "test", testLogger())
	ctx := context.Background()

	bug, err := stores[domain.CardTypeBug].Create(ctx, domain.Card{Title: "Bug-X-1", Description: "d"})
	require.NoError(t, err)
	issue, err := stores[domain.CardTypeIssue].Create(ctx, domain.Card{Title: "i", Description: "d"})
	require.NoError(t, err)

	assert.Equal(t, int64(1), bug.ID)
	assert.Equal(t, int64(1), issue.ID)
	assert.True(t, mr.Exists("test:bug"))
	assert.True(t, mr.Exists("test:issue"))

	tasks, err := stores[domain.CardTypeTask].List(ctx)
	require.NoError(t, err)
	assert.Empty(t, tasks)
}

func TestRedisCardStore_CorruptRecord(t *testing.T) {
	mr, client := newTestClient(t)
	s := NewRedisCardStore(client, "", domain.CardTypeBug, testLogger())

	mr.HSet("cards:bug", "7", "{not json")

	_, err := s.GetByID(context.Background(), 7)
	require.Error(t, err)
	var storeErr *store.StoreError
	assert.ErrorAs(t, err, &storeErr)
	assert.False(t, store.IsNotFoundError(err))
}

func TestRedisCardStore_ServerDown(t *testing.T) {
	mr, client := newTestClient(t)
	s := NewRedisCardStore(client, "", domain.CardTypeBug, testLogger())
	mr.Close()

	_, err := s.Create(context.Background(), domain.Card{Description: "d"})
	require.Error(t, err)
	assert.False(t, store.IsNotFoundError(err))
}

func TestNewRedisCardStore_NilClientPanics(t *testing.T) {
	assert.Panics(t, func() {
		NewRedisCardStore(nil, "", domain.CardTypeBug, nil)
	})
}
