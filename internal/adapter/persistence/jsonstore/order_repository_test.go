package jsonstore

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"taller_str/internal/domain/entities"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderJSONRepository_SaveAndRead(t *testing.T) {
	dir := t.TempDir()
	repo := NewOrderJSONRepository(dir)
	ctx := context.Background()

	o := entities.ServiceOrder{
		ID:            "id-1",
		OrderNumber:   "ORD-202608-0001",
		CustomerName:  "Ana García",
		CustomerPhone: "+54 11 5555-1234",
		Status:        entities.OrderStatusRecibido,
		BudgetStatus:  entities.BudgetStatusNone,
		StatusHistory: []entities.StatusHistoryEntry{},
		CreatedAt:     time.Now().UTC().Truncate(time.Second),
	}

	_, err := repo.Save(ctx, o)
	require.NoError(t, err)

	t.Run("file layout", func(t *testing.T) {
		data, err := os.ReadFile(filepath.Join(dir, "orders.json"))
		require.NoError(t, err)

		var raw []map[string]any
		require.NoError(t, json.Unmarshal(data, &raw))
		require.Len(t, raw, 1)
		assert.Equal(t, "ORD-202608-0001", raw[0]["orderNumber"])
		assert.Equal(t, "recibido", raw[0]["status"])
	})

	t.Run("get by id", func(t *testing.T) {
		got, err := repo.GetByID(ctx, "id-1")
		require.NoError(t, err)
		assert.Equal(t, o.CustomerName, got.CustomerName)
	})

	t.Run("get by id miss returns zero value", func(t *testing.T) {
		got, err := repo.GetByID(ctx, "nope")
		require.NoError(t, err)
		assert.Empty(t, got.ID)
	})

	t.Run("get by number is case-insensitive", func(t *testing.T) {
		got, err := repo.GetByNumber(ctx, "ord-202608-0001")
		require.NoError(t, err)
		assert.Equal(t, "id-1", got.ID)
	})

	t.Run("save replaces by id", func(t *testing.T) {
		o.CustomerName = "Ana M. García"
		_, err := repo.Save(ctx, o)
		require.NoError(t, err)

		all, err := repo.List(ctx)
		require.NoError(t, err)
		require.Len(t, all, 1)
		assert.Equal(t, "Ana M. García", all[0].CustomerName)
	})

	t.Run("search by phone digits", func(t *testing.T) {
		found, err := repo.SearchByPhone(ctx, "55551234")
		require.NoError(t, err)
		require.Len(t, found, 1)

		none, err := repo.SearchByPhone(ctx, "0000")
		require.NoError(t, err)
		assert.Empty(t, none)
	})

	t.Run("delete", func(t *testing.T) {
		deleted, err := repo.Delete(ctx, "id-1")
		require.NoError(t, err)
		assert.True(t, deleted)

		again, err := repo.Delete(ctx, "id-1")
		require.NoError(t, err)
		assert.False(t, again)
	})
}

func TestOrderJSONRepository_ListCreatesEmptyFile(t *testing.T) {
	dir := t.TempDir()
	repo := NewOrderJSONRepository(dir)

	orders, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, orders)
	assert.Empty(t, orders)

	data, err := os.ReadFile(filepath.Join(dir, "orders.json"))
	require.NoError(t, err)
	assert.JSONEq(t, "[]", string(data))
}

func TestOrderJSONRepository_NextOrderNumber(t *testing.T) {
	dir := t.TempDir()
	repo := NewOrderJSONRepository(dir)
	repo.now = func() time.Time { return time.Date(2026, time.August, 15, 10, 0, 0, 0, time.UTC) }
	ctx := context.Background()

	first, err := repo.NextOrderNumber(ctx)
	require.NoError(t, err)
	assert.Equal(t, "ORD-202608-0001", first)

	// The counter only advances once the order is stored.
	again, err := repo.NextOrderNumber(ctx)
	require.NoError(t, err)
	assert.Equal(t, "ORD-202608-0001", again)

	_, err = repo.Save(ctx, entities.ServiceOrder{ID: "id-1", OrderNumber: first})
	require.NoError(t, err)

	second, err := repo.NextOrderNumber(ctx)
	require.NoError(t, err)
	assert.Equal(t, "ORD-202608-0002", second)

	t.Run("resets on month change", func(t *testing.T) {
		repo.now = func() time.Time { return time.Date(2026, time.September, 1, 0, 0, 0, 0, time.UTC) }
		n, err := repo.NextOrderNumber(ctx)
		require.NoError(t, err)
		assert.Equal(t, "ORD-202609-0001", n)
	})
}
