package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	repo "item-service/internal/item/repository"
	"item-service/internal/model"
	"item-service/pkg/log"
)

var epoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

// newMiniRepo returns a repository backed by an in-process Redis. Each
// created item is stamped one second after the previous one unless step is 0.
func newMiniRepo(t *testing.T, step time.Duration) (*implRepository, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	r := New(client, "test:", log.NewNop()).(*implRepository)
	clock := epoch
	r.now = func() time.Time {
		clock = clock.Add(step)
		return clock
	}
	return r, mr
}

func createN(t *testing.T, r *implRepository, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		_, err := r.CreateItem(context.Background(), repo.CreateItemOptions{Name: "item"})
		require.NoError(t, err)
	}
}

func listIDs(items []model.Item) []int64 {
	ids := make([]int64, len(items))
	for i, it := range items {
		ids[i] = it.ID
	}
	return ids
}

func TestCreateAndGetItem(t *testing.T) {
	r, mr := newMiniRepo(t, time.Second)
	ctx := context.Background()

	first, err := r.CreateItem(ctx, repo.CreateItemOptions{Name: "widget"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), first.ID)
	assert.Nil(t, first.Description)
	assert.Equal(t, epoch.Add(time.Second), first.CreatedAt)

	second, err := r.CreateItem(ctx, repo.CreateItemOptions{Name: "gadget", Description: model.StringPtr("blue")})
	require.NoError(t, err)
	assert.Equal(t, int64(2), second.ID)

	got, err := r.GetItem(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, first, got)

	got, err = r.GetItem(ctx, 2)
	require.NoError(t, err)
	require.NotNil(t, got.Description)
	assert.Equal(t, "blue", *got.Description)

	missing, err := r.GetItem(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, model.Item{}, missing)

	seq, err := mr.Get("test:items:seq")
	require.NoError(t, err)
	assert.Equal(t, "2", seq)
	assert.True(t, mr.Exists("test:item:1"))
}

func TestListItemsPaging(t *testing.T) {
	r, _ := newMiniRepo(t, time.Second)
	ctx := context.Background()
	createN(t, r, 5)

	for name, tc := range map[string]struct {
		opt  repo.ListItemsOptions
		want []int64
	}{
		"first page":      {opt: repo.ListItemsOptions{Limit: 2}, want: []int64{5, 4}},
		"second page":     {opt: repo.ListItemsOptions{Limit: 2, Offset: 2}, want: []int64{3, 2}},
		"short last":      {opt: repo.ListItemsOptions{Limit: 2, Offset: 4}, want: []int64{1}},
		"no limit":        {opt: repo.ListItemsOptions{}, want: []int64{5, 4, 3, 2, 1}},
		"past the end":    {opt: repo.ListItemsOptions{Limit: 2, Offset: 9}, want: []int64{}},
		"offset no limit": {opt: repo.ListItemsOptions{Offset: 3}, want: []int64{2, 1}},
	} {
		t.Run(name, func(t *testing.T) {
			items, total, err := r.ListItems(ctx, tc.opt)
			require.NoError(t, err)
			assert.Equal(t, 5, total)
			assert.Equal(t, tc.want, listIDs(items))
		})
	}
}

func TestListItemsEqualTimestampsOrderByID(t *testing.T) {
	r, _ := newMiniRepo(t, 0)
	createN(t, r, 12)

	items, _, err := r.ListItems(context.Background(), repo.ListItemsOptions{})
	require.NoError(t, err)
	assert.Equal(t, []int64{12, 11, 10, 9, 8, 7, 6, 5, 4, 3, 2, 1}, listIDs(items))
}

func TestListItemsSkipsHashRemovedAfterRange(t *testing.T) {
	r, mr := newMiniRepo(t, time.Second)
	createN(t, r, 3)

	// index entry left behind, as when DeleteItem races a listing
	mr.Del("test:item:2")

	items, total, err := r.ListItems(context.Background(), repo.ListItemsOptions{})
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	assert.Equal(t, []int64{3, 1}, listIDs(items))
}

func TestListItemsCorruptHash(t *testing.T) {
	r, mr := newMiniRepo(t, time.Second)
	createN(t, r, 1)
	mr.HDel("test:item:1", model.FieldCreatedAt)

	_, _, err := r.ListItems(context.Background(), repo.ListItemsOptions{})
	assert.ErrorIs(t, err, repo.ErrInvalidRecord)
}

func TestUpdateItem(t *testing.T) {
	r, mr := newMiniRepo(t, time.Second)
	ctx := context.Background()

	created, err := r.CreateItem(ctx, repo.CreateItemOptions{Name: "widget", Description: model.StringPtr("blue")})
	require.NoError(t, err)

	updated, err := r.UpdateItem(ctx, repo.UpdateItemOptions{ID: 1, Name: "gadget", Description: model.StringPtr("red")})
	require.NoError(t, err)
	assert.Equal(t, "gadget", updated.Name)
	require.NotNil(t, updated.Description)
	assert.Equal(t, "red", *updated.Description)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, created.CreatedAt, updated.CreatedAt)

	cleared, err := r.UpdateItem(ctx, repo.UpdateItemOptions{ID: 1, Name: "gadget"})
	require.NoError(t, err)
	assert.Nil(t, cleared.Description)
	keys, err := mr.HKeys("test:item:1")
	require.NoError(t, err)
	assert.NotContains(t, keys, model.FieldDescription)

	missing, err := r.UpdateItem(ctx, repo.UpdateItemOptions{ID: 42, Name: "ghost"})
	require.NoError(t, err)
	assert.Equal(t, model.Item{}, missing)
	assert.False(t, mr.Exists("test:item:42"))
}

func TestDeleteItem(t *testing.T) {
	r, mr := newMiniRepo(t, time.Second)
	ctx := context.Background()
	createN(t, r, 2)

	require.NoError(t, r.DeleteItem(ctx, 1))

	got, err := r.GetItem(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, model.Item{}, got)

	members, err := mr.ZMembers("test:items:by_created")
	require.NoError(t, err)
	assert.Equal(t, []string{indexMember(2)}, members)

	items, total, err := r.ListItems(ctx, repo.ListItemsOptions{})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.Equal(t, []int64{2}, listIDs(items))

	// deleting again is a no-op at this layer
	require.NoError(t, r.DeleteItem(ctx, 1))
}

func TestPing(t *testing.T) {
	r, mr := newMiniRepo(t, time.Second)
	require.NoError(t, r.Ping(context.Background()))

	mr.Close()
	assert.Error(t, r.Ping(context.Background()))
}

func TestIndexMemberOrdersLikeIDs(t *testing.T) {
	assert.Less(t, indexMember(9), indexMember(10))
	assert.Equal(t, "0000000000000000042", indexMember(42))
}
