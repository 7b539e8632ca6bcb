package tests

import (
	"errors"
	"testing"

	"tableside/table-svc/internal/domain"
	"tableside/table-svc/internal/mocks"
	"tableside/table-svc/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestResolver_ValidSessionSkipsQRToken(t *testing.T) {
	repo := mocks.NewTableRepository(t)
	resolver := service.NewResolverService(repo)

	repo.On("GetSessionTable", "sess_9f", mock.Anything).
		Return(&domain.Table{ID: 1, TableNumber: 7}, nil).Once()

	// a QR token is present but must not be consumed while the session holds
	resolution, err := resolver.Resolve("sess_9f", "T7ABC")

	assert.NoError(t, err)
	assert.Equal(t, 1, resolution.TableID)
	assert.Equal(t, 7, resolution.TableNumber)
	assert.Equal(t, "sess_9f", resolution.SessionToken)
	repo.AssertNotCalled(t, "GetTableByQRToken", mock.Anything)
	repo.AssertNotCalled(t, "CreateSession", mock.Anything, mock.Anything, mock.Anything)
}

func TestResolver_ExpiredSessionFallsBackToQRToken(t *testing.T) {
	repo := mocks.NewTableRepository(t)
	resolver := service.NewResolverService(repo)

	repo.On("GetSessionTable", "stale", mock.Anything).
		Return(nil, errors.New("sql: no rows in result set")).Once()
	repo.On("GetTableByQRToken", "T7ABC").
		Return(&domain.Table{ID: 1, TableNumber: 7}, nil).Once()
	repo.On("CreateSession", 1, mock.AnythingOfType("string"), mock.Anything).
		Return(&domain.TableSession{ID: 10, TableID: 1, SessionToken: "fresh"}, nil).Once()

	resolution, err := resolver.Resolve("stale", "T7ABC")

	assert.NoError(t, err)
	assert.Equal(t, "fresh", resolution.SessionToken)
}

func TestResolver_UnknownTokenFailsClosed(t *testing.T) {
	repo := mocks.NewTableRepository(t)
	resolver := service.NewResolverService(repo)

	repo.On("GetTableByQRToken", "nope").
		Return(nil, errors.New("sql: no rows in result set")).Once()

	resolution, err := resolver.Resolve("", "nope")

	assert.ErrorIs(t, err, service.ErrInvalidTable)
	assert.Nil(t, resolution)
	// fail closed: nothing may be created for an unresolvable table
	repo.AssertNotCalled(t, "CreateSession", mock.Anything, mock.Anything, mock.Anything)
	repo.AssertNotCalled(t, "GetOrCreateActiveParty", mock.Anything)
}

func TestResolver_LookupErrorBehavesLikeNotFound(t *testing.T) {
	repo := mocks.NewTableRepository(t)
	resolver := service.NewResolverService(repo)

	repo.On("GetTableByQRToken", "T7ABC").
		Return(nil, errors.New("connection refused")).Once()

	_, err := resolver.Resolve("", "T7ABC")

	assert.ErrorIs(t, err, service.ErrInvalidTable)
}

func TestResolver_MissingBothTokensFailsClosed(t *testing.T) {
	repo := mocks.NewTableRepository(t)
	resolver := service.NewResolverService(repo)

	_, err := resolver.Resolve("", "")

	assert.ErrorIs(t, err, service.ErrInvalidTable)
}

func TestResolver_SessionCreationFailureFailsClosed(t *testing.T) {
	repo := mocks.NewTableRepository(t)
	resolver := service.NewResolverService(repo)

	repo.On("GetTableByQRToken", "T7ABC").
		Return(&domain.Table{ID: 1, TableNumber: 7}, nil).Once()
	repo.On("CreateSession", 1, mock.AnythingOfType("string"), mock.Anything).
		Return(nil, errors.New("insert failed")).Once()

	_, err := resolver.Resolve("", "T7ABC")

	assert.ErrorIs(t, err, service.ErrInvalidTable)
}
