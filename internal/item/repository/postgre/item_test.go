package postgre

import (
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"

	repo "item-service/internal/item/repository"
	"item-service/internal/model"
	"item-service/pkg/log"
)

var (
	epoch      = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	rowColumns = []string{"id", "name", "description", "created_at"}
)

func newMockRepo(t *testing.T) (*implRepository, sqlmock.Sqlmock) {
	t.Helper()
	sqldb, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqldb.Close() })

	db := bun.NewDB(sqldb, pgdialect.New())
	return New(db, log.NewNop()).(*implRepository), mock
}

func sqlPattern(parts ...string) string {
	quoted := make([]string, len(parts))
	for i, p := range parts {
		quoted[i] = regexp.QuoteMeta(p)
	}
	pattern := quoted[0]
	for _, q := range quoted[1:] {
		pattern += ".*" + q
	}
	return pattern
}

func TestCreateItem(t *testing.T) {
	r, mock := newMockRepo(t)

	mock.ExpectQuery(sqlPattern(`INSERT INTO "items"`, `'widget'`, `RETURNING *`)).
		WillReturnRows(sqlmock.NewRows(rowColumns).AddRow(int64(1), "widget", nil, epoch))

	got, err := r.CreateItem(t.Context(), repo.CreateItemOptions{Name: "widget"})
	require.NoError(t, err)
	assert.Equal(t, model.Item{ItemBase: model.ItemBase{Name: "widget"}, ID: 1, CreatedAt: epoch}, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateItemFailure(t *testing.T) {
	r, mock := newMockRepo(t)

	mock.ExpectQuery(sqlPattern(`INSERT INTO "items"`)).WillReturnError(errors.New("connection reset"))

	_, err := r.CreateItem(t.Context(), repo.CreateItemOptions{Name: "widget"})
	assert.ErrorIs(t, err, repo.ErrFailedToInsert)
}

func TestGetItem(t *testing.T) {
	t.Parallel()

	for name, tc := range map[string]struct {
		setup   func(mock sqlmock.Sqlmock)
		want    model.Item
		wantErr error
	}{
		"found": {
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(sqlPattern(`FROM "items" AS "i"`, `i.id = 7`, `LIMIT 1`)).
					WillReturnRows(sqlmock.NewRows(rowColumns).AddRow(int64(7), "widget", "blue", epoch))
			},
			want: model.Item{
				ItemBase:  model.ItemBase{Name: "widget", Description: model.StringPtr("blue")},
				ID:        7,
				CreatedAt: epoch,
			},
		},
		"not found": {
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(sqlPattern(`FROM "items" AS "i"`, `i.id = 7`)).
					WillReturnRows(sqlmock.NewRows(rowColumns))
			},
			want: model.Item{},
		},
		"driver error": {
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(sqlPattern(`FROM "items"`)).WillReturnError(errors.New("timeout"))
			},
			wantErr: repo.ErrFailedToGet,
		},
	} {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			r, mock := newMockRepo(t)
			tc.setup(mock)

			got, err := r.GetItem(t.Context(), 7)
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestListItems(t *testing.T) {
	r, mock := newMockRepo(t)
	// the count and the page run concurrently
	mock.MatchExpectationsInOrder(false)

	mock.ExpectQuery(`(?i)SELECT count\(\*\)`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(int64(5)))
	mock.ExpectQuery(sqlPattern(`ORDER BY i.created_at DESC, i.id DESC LIMIT 2 OFFSET 1`)).
		WillReturnRows(sqlmock.NewRows(rowColumns).
			AddRow(int64(4), "d", nil, epoch.Add(4*time.Second)).
			AddRow(int64(3), "c", "third", epoch.Add(3*time.Second)))

	items, total, err := r.ListItems(t.Context(), repo.ListItemsOptions{Limit: 2, Offset: 1})
	require.NoError(t, err)
	assert.Equal(t, 5, total)
	require.Len(t, items, 2)
	assert.Equal(t, int64(4), items[0].ID)
	assert.Nil(t, items[0].Description)
	assert.Equal(t, int64(3), items[1].ID)
	require.NotNil(t, items[1].Description)
	assert.Equal(t, "third", *items[1].Description)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListItemsFailure(t *testing.T) {
	r, mock := newMockRepo(t)
	mock.MatchExpectationsInOrder(false)

	mock.ExpectQuery(`(?i)SELECT count\(\*\)`).WillReturnError(errors.New("timeout"))
	mock.ExpectQuery(sqlPattern(`ORDER BY`)).WillReturnError(errors.New("timeout"))

	_, _, err := r.ListItems(t.Context(), repo.ListItemsOptions{Limit: 2})
	assert.ErrorIs(t, err, repo.ErrFailedToList)
}

func TestUpdateItem(t *testing.T) {
	t.Run("updated", func(t *testing.T) {
		r, mock := newMockRepo(t)
		mock.ExpectQuery(sqlPattern(`UPDATE "items" AS "i"`, `'gadget'`, `NULL`, `"i"."id" = 1`, `RETURNING *`)).
			WillReturnRows(sqlmock.NewRows(rowColumns).AddRow(int64(1), "gadget", nil, epoch))

		got, err := r.UpdateItem(t.Context(), repo.UpdateItemOptions{ID: 1, Name: "gadget"})
		require.NoError(t, err)
		assert.Equal(t, model.Item{ItemBase: model.ItemBase{Name: "gadget"}, ID: 1, CreatedAt: epoch}, got)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing row", func(t *testing.T) {
		r, mock := newMockRepo(t)
		mock.ExpectQuery(sqlPattern(`UPDATE "items"`)).WillReturnRows(sqlmock.NewRows(rowColumns))

		got, err := r.UpdateItem(t.Context(), repo.UpdateItemOptions{ID: 9, Name: "ghost"})
		require.NoError(t, err)
		assert.Equal(t, model.Item{}, got)
	})

	t.Run("driver error", func(t *testing.T) {
		r, mock := newMockRepo(t)
		mock.ExpectQuery(sqlPattern(`UPDATE "items"`)).WillReturnError(errors.New("deadlock"))

		_, err := r.UpdateItem(t.Context(), repo.UpdateItemOptions{ID: 1, Name: "x"})
		assert.ErrorIs(t, err, repo.ErrFailedToUpdate)
	})
}

func TestDeleteItem(t *testing.T) {
	r, mock := newMockRepo(t)

	mock.ExpectExec(sqlPattern(`DELETE FROM "items"`, `id = 3`)).WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, r.DeleteItem(t.Context(), 3))

	mock.ExpectExec(sqlPattern(`DELETE FROM "items"`)).WillReturnError(errors.New("timeout"))
	assert.ErrorIs(t, r.DeleteItem(t.Context(), 3), repo.ErrFailedToDelete)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPing(t *testing.T) {
	sqldb, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	defer sqldb.Close()
	r := New(bun.NewDB(sqldb, pgdialect.New()), log.NewNop())

	mock.ExpectPing()
	assert.NoError(t, r.Ping(t.Context()))

	mock.ExpectPing().WillReturnError(errors.New("down"))
	assert.Error(t, r.Ping(t.Context()))
}
