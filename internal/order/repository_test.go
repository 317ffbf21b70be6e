package order

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var orderCols = []string{"id", "reference", "user_id", "status", "total", "notes", "created_at", "updated_at"}
var orderItemCols = []string{"id", "order_id", "product_id", "item", "description", "tier", "quantity", "price"}

func testOrder() *Order {
	return &Order{
		Reference: uuid.New(),
		UserID:    7,
		Status:    StatusPending,
		Total:     24.50,
		Notes:     "leave at back door",
		Items: []*OrderItem{
			{ProductID: 1, Item: "SKU001", Description: "Cola 24x330ml", Tier: 1, Quantity: 2, Price: 9.75},
			{ProductID: 2, Item: "SKU002", Description: "Crisps 48x25g", Tier: 2, Quantity: 1, Price: 5.00},
		},
	}
}

func TestRepository_CreateOrderTx(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		repo := NewRepository(db)
		o := testOrder()
		now := time.Now()

		mock.ExpectBegin()
		mock.ExpectQuery(`INSERT INTO orders`).
			WithArgs(o.Reference, o.UserID, o.Status, o.Total, o.Notes).
			WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(42, now, now))
		mock.ExpectQuery(`INSERT INTO order_items`).
			WithArgs(42, 1, "SKU001", "Cola 24x330ml", 1, 2, 9.75).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(100))
		mock.ExpectQuery(`INSERT INTO order_items`).
			WithArgs(42, 2, "SKU002", "Crisps 48x25g", 2, 1, 5.00).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(101))
		mock.ExpectExec(`DELETE FROM carts WHERE user_id = \$1`).
			WithArgs(o.UserID).
			WillReturnResult(sqlmock.NewResult(0, 2))
		mock.ExpectCommit()

		err = repo.CreateOrderTx(context.Background(), o)

		require.NoError(t, err)
		assert.Equal(t, 42, o.ID)
		assert.Equal(t, 42, o.Items[0].OrderID)
		assert.Equal(t, 100, o.Items[0].ID)
		assert.Equal(t, 101, o.Items[1].ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("RollsBackOnItemInsertError", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		repo := NewRepository(db)
		o := testOrder()
		now := time.Now()

		mock.ExpectBegin()
		mock.ExpectQuery(`INSERT INTO orders`).
			WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(42, now, now))
		mock.ExpectQuery(`INSERT INTO order_items`).
			WillReturnError(errors.New("constraint violation"))
		mock.ExpectRollback()

		err = repo.CreateOrderTx(context.Background(), o)

		assert.Error(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("RollsBackOnCartClearError", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		repo := NewRepository(db)
		o := testOrder()
		o.Items = o.Items[:1]
		now := time.Now()

		mock.ExpectBegin()
		mock.ExpectQuery(`INSERT INTO orders`).
			WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(42, now, now))
		mock.ExpectQuery(`INSERT INTO order_items`).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(100))
		mock.ExpectExec(`DELETE FROM carts`).
			WillReturnError(errors.New("connection reset"))
		mock.ExpectRollback()

		err = repo.CreateOrderTx(context.Background(), o)

		assert.Error(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRepository_GetOrders(t *testing.T) {
	t.Run("AllOrders", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		repo := NewRepository(db)
		now := time.Now()
		ref1, ref2 := uuid.New(), uuid.New()

		mock.ExpectQuery(`SELECT id, reference, user_id, status, total, notes, created_at, updated_at\s+FROM orders\s+ORDER BY created_at DESC`).
			WillReturnRows(sqlmock.NewRows(orderCols).
				AddRow(2, ref2, 8, "PENDING", 5.00, "", now, now).
				AddRow(1, ref1, 7, "COMPLETED", 24.50, "", now, now))
		mock.ExpectQuery(`SELECT id, order_id, product_id, item, description, tier, quantity, price\s+FROM order_items`).
			WithArgs(sqlmock.AnyArg()).
			WillReturnRows(sqlmock.NewRows(orderItemCols).
				AddRow(10, 1, 1, "SKU001", "Cola 24x330ml", 1, 2, 9.75).
				AddRow(11, 2, 2, "SKU002", "Crisps 48x25g", 2, 1, 5.00))

		orders, err := repo.GetOrders(context.Background(), nil)

		require.NoError(t, err)
		require.Len(t, orders, 2)
		assert.Equal(t, 2, orders[0].ID)
		assert.Len(t, orders[0].Items, 1)
		assert.Equal(t, "SKU002", orders[0].Items[0].Item)
		assert.Len(t, orders[1].Items, 1)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("FilteredByUser", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		repo := NewRepository(db)
		userID := 7

		mock.ExpectQuery(`FROM orders\s+WHERE user_id = \$1`).
			WithArgs(userID).
			WillReturnRows(sqlmock.NewRows(orderCols))

		orders, err := repo.GetOrders(context.Background(), &userID)

		require.NoError(t, err)
		assert.Empty(t, orders)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("QueryError", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		repo := NewRepository(db)

		mock.ExpectQuery(`FROM orders`).WillReturnError(errors.New("db down"))

		_, err = repo.GetOrders(context.Background(), nil)

		assert.Error(t, err)
	})
}

func TestRepository_GetOrderDetail(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		repo := NewRepository(db)
		now := time.Now()
		ref := uuid.New()

		mock.ExpectQuery(`FROM orders\s+WHERE id = \$1`).
			WithArgs(42).
			WillReturnRows(sqlmock.NewRows(orderCols).
				AddRow(42, ref, 7, "PENDING", 24.50, "", now, now))
		mock.ExpectQuery(`FROM order_items`).
			WithArgs(sqlmock.AnyArg()).
			WillReturnRows(sqlmock.NewRows(orderItemCols).
				AddRow(10, 42, 1, "SKU001", "Cola 24x330ml", 1, 2, 9.75))

		o, err := repo.GetOrderDetail(context.Background(), 42)

		require.NoError(t, err)
		assert.Equal(t, ref, o.Reference)
		assert.Len(t, o.Items, 1)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("NotFound", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		repo := NewRepository(db)

		mock.ExpectQuery(`FROM orders`).
			WithArgs(999).
			WillReturnRows(sqlmock.NewRows(orderCols))

		_, err = repo.GetOrderDetail(context.Background(), 999)

		assert.ErrorIs(t, err, ErrOrderNotFound)
	})
}

func TestRepository_UpdateStatus(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		repo := NewRepository(db)

		mock.ExpectExec(`UPDATE orders\s+SET status = \$1`).
			WithArgs(StatusPicking, 42).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err = repo.UpdateStatus(context.Background(), 42, StatusPicking)

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("NotFound", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		repo := NewRepository(db)

		mock.ExpectExec(`UPDATE orders`).
			WithArgs(StatusPicking, 999).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err = repo.UpdateStatus(context.Background(), 999, StatusPicking)

		assert.ErrorIs(t, err, ErrOrderNotFound)
	})
}
