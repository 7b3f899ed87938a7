package redis

import (
	"context"
	"strconv"
	"time"

	goredis "github.com/go-redis/redis/v8"

	repo "item-service/internal/item/repository"
	"item-service/internal/model"
)

// CreateItem allocates an id, stamps created_at and stores the hash and
// index entry in one transaction.
func (r *implRepository) CreateItem(ctx context.Context, opt repo.CreateItemOptions) (model.Item, error) {
	id, err := r.client.Incr(ctx, r.seqKey()).Result()
	if err != nil {
		r.l.Errorf(ctx, "%s incr: %v", r.dsn("CreateItem"), err)
		return model.Item{}, repo.ErrFailedToInsert
	}

	now := r.now().UTC()
	values := map[string]interface{}{
		model.FieldID:        strconv.FormatInt(id, 10),
		model.FieldName:      opt.Name,
		model.FieldCreatedAt: now.Format(time.RFC3339Nano),
	}
	if opt.Description != nil {
		values[model.FieldDescription] = *opt.Description
	}

	_, err = r.client.TxPipelined(ctx, func(pipe goredis.Pipeliner) error {
		pipe.HSet(ctx, r.itemKey(id), values)
		pipe.ZAdd(ctx, r.indexKey(), &goredis.Z{Score: float64(now.UnixMicro()), Member: indexMember(id)})
		return nil
	})
	if err != nil {
		r.l.Errorf(ctx, "%s: %v", r.dsn("CreateItem"), err)
		return model.Item{}, repo.ErrFailedToInsert
	}

	return r.toItem(ctx, model.Fields(values))
}

// GetItem retrieves a single Item by id.
// Returns zero-value Item (ID == 0) when not found.
func (r *implRepository) GetItem(ctx context.Context, id int64) (model.Item, error) {
	vals, err := r.client.HGetAll(ctx, r.itemKey(id)).Result()
	if err != nil {
		r.l.Errorf(ctx, "%s: %v", r.dsn("GetItem"), err)
		return model.Item{}, repo.ErrFailedToGet
	}
	if len(vals) == 0 {
		return model.Item{}, nil
	}
	return r.toItem(ctx, hashRecord(vals))
}

// ListItems returns a page of Items, newest first, and the total count.
func (r *implRepository) ListItems(ctx context.Context, opt repo.ListItemsOptions) ([]model.Item, int, error) {
	total, err := r.client.ZCard(ctx, r.indexKey()).Result()
	if err != nil {
		r.l.Errorf(ctx, "%s count: %v", r.dsn("ListItems"), err)
		return nil, 0, repo.ErrFailedToList
	}

	start := int64(opt.Offset)
	stop := int64(-1)
	if opt.Limit > 0 {
		stop = start + int64(opt.Limit) - 1
	}
	members, err := r.client.ZRevRange(ctx, r.indexKey(), start, stop).Result()
	if err != nil {
		r.l.Errorf(ctx, "%s: %v", r.dsn("ListItems"), err)
		return nil, 0, repo.ErrFailedToList
	}
	if len(members) == 0 {
		return []model.Item{}, int(total), nil
	}

	cmds := make([]*goredis.StringStringMapCmd, 0, len(members))
	_, err = r.client.Pipelined(ctx, func(pipe goredis.Pipeliner) error {
		for _, member := range members {
			id, err := strconv.ParseInt(member, 10, 64)
			if err != nil {
				r.l.Warnf(ctx, "%s: bad index member %q", r.dsn("ListItems"), member)
				continue
			}
			cmds = append(cmds, pipe.HGetAll(ctx, r.itemKey(id)))
		}
		return nil
	})
	if err != nil {
		r.l.Errorf(ctx, "%s fetch: %v", r.dsn("ListItems"), err)
		return nil, 0, repo.ErrFailedToList
	}

	items := make([]model.Item, 0, len(cmds))
	for _, cmd := range cmds {
		vals := cmd.Val()
		if len(vals) == 0 {
			// deleted between ZREVRANGE and HGETALL
			continue
		}
		item, err := r.toItem(ctx, hashRecord(vals))
		if err != nil {
			return nil, 0, err
		}
		items = append(items, item)
	}
	return items, int(total), nil
}

// UpdateItem replaces name and description under WATCH so a concurrent
// delete cannot resurrect the hash. Returns zero-value Item when not found.
func (r *implRepository) UpdateItem(ctx context.Context, opt repo.UpdateItemOptions) (model.Item, error) {
	key := r.itemKey(opt.ID)
	found := false

	err := r.client.Watch(ctx, func(tx *goredis.Tx) error {
		n, err := tx.Exists(ctx, key).Result()
		if err != nil {
			return err
		}
		if n == 0 {
			return nil
		}
		found = true

		_, err = tx.TxPipelined(ctx, func(pipe goredis.Pipeliner) error {
			pipe.HSet(ctx, key, model.FieldName, opt.Name)
			if opt.Description != nil {
				pipe.HSet(ctx, key, model.FieldDescription, *opt.Description)
			} else {
				pipe.HDel(ctx, key, model.FieldDescription)
			}
			return nil
		})
		return err
	}, key)
	if err != nil {
		r.l.Errorf(ctx, "%s: %v", r.dsn("UpdateItem"), err)
		return model.Item{}, repo.ErrFailedToUpdate
	}
	if !found {
		return model.Item{}, nil
	}
	return r.GetItem(ctx, opt.ID)
}

// DeleteItem removes an Item and its index entry.
func (r *implRepository) DeleteItem(ctx context.Context, id int64) error {
	_, err := r.client.TxPipelined(ctx, func(pipe goredis.Pipeliner) error {
		pipe.Del(ctx, r.itemKey(id))
		pipe.ZRem(ctx, r.indexKey(), indexMember(id))
		return nil
	})
	if err != nil {
		r.l.Errorf(ctx, "%s: %v", r.dsn("DeleteItem"), err)
		return repo.ErrFailedToDelete
	}
	return nil
}

func (r *implRepository) toItem(ctx context.Context, src model.Attributes) (model.Item, error) {
	item, err := model.ItemFromAttributes(src)
	if err != nil {
		r.l.Errorf(ctx, "%s: %v", r.dsn("toItem"), err)
		return model.Item{}, repo.ErrInvalidRecord
	}
	return item, nil
}
