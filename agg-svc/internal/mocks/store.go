package mocks

import (
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
)

// StoreInterface is a testify mock of service.StoreInterface.
type StoreInterface struct {
	mock.Mock
}

func NewStoreInterface(t *testing.T) *StoreInterface {
	m := &StoreInterface{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *StoreInterface) RecordSale(total float64, at time.Time) error {
	args := m.Called(total, at)
	return args.Error(0)
}

func (m *StoreInterface) BumpPopularity(productID, quantity int, at time.Time) error {
	args := m.Called(productID, quantity, at)
	return args.Error(0)
}
