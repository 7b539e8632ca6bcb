package tests

import (
	"testing"
	"time"

	"tableside/order-svc/internal/domain"
	"tableside/order-svc/internal/storage"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostgres_AddCartItemUpserts(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := storage.NewPostgresRepository(db)

	mock.ExpectExec("INSERT INTO party_cart_items").
		WithArgs(42, 11).
		WillReturnResult(sqlmock.NewResult(0, 1))

	assert.NoError(t, repo.AddCartItem(42, 11))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgres_DecreaseDeletesLastUnit(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := storage.NewPostgresRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM party_cart_items").
		WithArgs(42, 11).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	assert.NoError(t, repo.DecreaseCartItem(42, 11))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgres_DecreaseDecrementsWhenAboveOne(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := storage.NewPostgresRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM party_cart_items").
		WithArgs(42, 11).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("UPDATE party_cart_items SET quantity = quantity - 1").
		WithArgs(42, 11).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	assert.NoError(t, repo.DecreaseCartItem(42, 11))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgres_GenerateOrderEmptyCartRollsBack(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := storage.NewPostgresRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT ci.product_id, ci.quantity, p.name, p.price").
		WithArgs(42).
		WillReturnRows(sqlmock.NewRows([]string{"product_id", "quantity", "name", "price"}))
	mock.ExpectRollback()

	order, err := repo.GenerateOrder(42)

	assert.ErrorIs(t, err, domain.ErrEmptyCart)
	assert.Nil(t, order)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgres_GenerateOrderSnapshotsAndClears(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := storage.NewPostgresRepository(db)

	created := time.Now()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT ci.product_id, ci.quantity, p.name, p.price").
		WithArgs(42).
		WillReturnRows(sqlmock.NewRows([]string{"product_id", "quantity", "name", "price"}).
			AddRow(11, 2, "Margherita", 8.5).
			AddRow(12, 1, "Lemonade", 3.0))
	mock.ExpectQuery("INSERT INTO orders").
		WithArgs(42, domain.OrderStatusGenerated, 20.0).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(500, created))
	mock.ExpectQuery("INSERT INTO order_items").
		WithArgs(500, 11, "Margherita", 2, 8.5, domain.ItemStatusToPrepare).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectQuery("INSERT INTO order_items").
		WithArgs(500, 12, "Lemonade", 1, 3.0, domain.ItemStatusToPrepare).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(2))
	mock.ExpectExec("DELETE FROM party_cart_items").
		WithArgs(42).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectCommit()

	order, err := repo.GenerateOrder(42)

	require.NoError(t, err)
	assert.Equal(t, 500, order.ID)
	assert.Equal(t, domain.OrderStatusGenerated, order.Status)
	assert.InDelta(t, 20.0, order.Total, 0.001)
	require.Len(t, order.Items, 2)
	assert.Equal(t, domain.ItemStatusToPrepare, order.Items[0].Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgres_ValidateSessionForParty(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := storage.NewPostgresRepository(db)

	now := time.Now()
	mock.ExpectQuery("SELECT EXISTS").
		WithArgs(42, "sess_9f", now).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	valid, err := repo.ValidateSessionForParty(42, "sess_9f", now)

	require.NoError(t, err)
	assert.True(t, valid)
}

func TestPostgres_LoadCartSkipsOrphanLines(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := storage.NewPostgresRepository(db)

	mock.ExpectQuery("SELECT ci.product_id, ci.quantity").
		WithArgs(42).
		WillReturnRows(sqlmock.NewRows([]string{"product_id", "quantity", "name", "price", "image_url"}).
			AddRow(11, 2, "Margherita", 8.5, "").
			AddRow(99, 1, nil, nil, ""))

	items, err := repo.LoadCart(42)

	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 11, items[0].ProductID)
}
