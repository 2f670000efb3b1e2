package integration

import (
	"context"
	"net/http"
	"net/url"

	"github.com/stretchr/testify/mock"

	"github.com/BonMercato/wunder/internal/domain/integration"
)

// MockMarketplaceAPI is a mock implementation of integration.MarketplaceAPI
type MockMarketplaceAPI struct {
	mock.Mock
}

func (m *MockMarketplaceAPI) Get(ctx context.Context, target string, query url.Values) (*integration.APIResponse, error) {
	args := m.Called(ctx, target, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*integration.APIResponse), args.Error(1)
}

func (m *MockMarketplaceAPI) Put(ctx context.Context, path string) (*integration.APIResponse, error) {
	args := m.Called(ctx, path)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*integration.APIResponse), args.Error(1)
}

func (m *MockMarketplaceAPI) Post(ctx context.Context, path string, body any) (*integration.APIResponse, error) {
	args := m.Called(ctx, path, body)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*integration.APIResponse), args.Error(1)
}

func (m *MockMarketplaceAPI) PostMultipart(ctx context.Context, path string, parts []integration.MultipartPart) (*integration.APIResponse, error) {
	args := m.Called(ctx, path, parts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*integration.APIResponse), args.Error(1)
}

// MockOrderSink is a mock implementation of integration.OrderSink
type MockOrderSink struct {
	mock.Mock
}

func (m *MockOrderSink) Save(ctx context.Context, order *integration.Order) (string, error) {
	args := m.Called(ctx, order)
	return args.String(0), args.Error(1)
}

// Ensure mocks implement interfaces
var (
	_ integration.MarketplaceAPI = (*MockMarketplaceAPI)(nil)
	_ integration.OrderSink      = (*MockOrderSink)(nil)
)

func jsonResponse(body string) *integration.APIResponse {
	return &integration.APIResponse{StatusCode: http.StatusOK, Header: http.Header{}, Body: []byte(body)}
}

func pageResponse(body, next string) *integration.APIResponse {
	resp := jsonResponse(body)
	if next != "" {
		resp.Header.Set("Link", `<`+next+`>; rel="next"`)
	}
	return resp
}

func orderWithID(id string) any {
	return mock.MatchedBy(func(o *integration.Order) bool { return o.OrderID == id })
}
