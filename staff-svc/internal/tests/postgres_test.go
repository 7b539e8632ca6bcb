package tests

import (
	"testing"

	"tableside/staff-svc/internal/domain"
	"tableside/staff-svc/internal/storage"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostgres_ClaimPartyWinsRace(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := storage.NewPostgresRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE table_parties").
		WithArgs(7, 42).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE orders").
		WithArgs(7, 42, domain.OrderStatusFinalized).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectCommit()

	claimed, err := repo.ClaimParty(42, 7)

	require.NoError(t, err)
	assert.True(t, claimed)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgres_ClaimPartyLosesRace(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := storage.NewPostgresRepository(db)

	mock.ExpectBegin()
	// waiter_id was no longer NULL, zero rows match
	mock.ExpectExec("UPDATE table_parties").
		WithArgs(9, 42).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	claimed, err := repo.ClaimParty(42, 9)

	require.NoError(t, err)
	assert.False(t, claimed)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgres_FinalizePartyClosesEverything(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := storage.NewPostgresRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE table_parties").
		WithArgs(42, 7).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE orders").
		WithArgs(domain.OrderStatusFinalized, 42).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec("UPDATE table_sessions").
		WithArgs(42).
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectCommit()

	closed, err := repo.FinalizeParty(42, 7)

	require.NoError(t, err)
	assert.True(t, closed)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgres_FinalizeByWrongWaiterAffectsNothing(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := storage.NewPostgresRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE table_parties").
		WithArgs(42, 9).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	closed, err := repo.FinalizeParty(42, 9)

	require.NoError(t, err)
	assert.False(t, closed)
}

func TestPostgres_AdvanceItemConditionalUpdate(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := storage.NewPostgresRepository(db)

	mock.ExpectExec("UPDATE order_items").
		WithArgs(domain.ItemStatusCooking, 1, domain.ItemStatusToPrepare).
		WillReturnResult(sqlmock.NewResult(0, 1))

	moved, err := repo.AdvanceItem(1, domain.ItemStatusToPrepare, domain.ItemStatusCooking)

	require.NoError(t, err)
	assert.True(t, moved)
}

func TestPostgres_AdvanceItemStaleStatusMisses(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := storage.NewPostgresRepository(db)

	mock.ExpectExec("UPDATE order_items").
		WithArgs(domain.ItemStatusCooking, 1, domain.ItemStatusToPrepare).
		WillReturnResult(sqlmock.NewResult(0, 0))

	moved, err := repo.AdvanceItem(1, domain.ItemStatusToPrepare, domain.ItemStatusCooking)

	require.NoError(t, err)
	assert.False(t, moved)
}
