package mocks

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/mock"
)

// HTTPClient is a testify mock of gateway.HTTPClient.
type HTTPClient struct {
	mock.Mock
}

func NewHTTPClient(t *testing.T) *HTTPClient {
	m := &HTTPClient{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *HTTPClient) Do(req *http.Request) (*http.Response, error) {
	args := m.Called(req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*http.Response), args.Error(1)
}
