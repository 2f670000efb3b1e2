package integration

import (
	"context"
	"io"
	"net/http"
	"net/url"
)

// APIResponse is a fully read 2xx response from the marketplace.
type APIResponse struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// NextLink returns the continuation target carried by the response's Link header,
// or "" when the listing is exhausted.
func (r *APIResponse) NextLink() string {
	if r == nil {
		return ""
	}
	return ParseNextLink(r.Header.Values("Link"))
}

// MultipartPart is one named part of a multipart/form-data request.
type MultipartPart struct {
	FieldName   string
	FileName    string // empty for plain fields
	ContentType string // empty defaults to application/octet-stream for files
	Content     io.Reader
}

// MarketplaceAPI is the port for authenticated calls to the marketplace API.
// Paths are relative to the configured base URL; Get also accepts the absolute
// continuation targets handed out by the listing endpoint.
// Every implementation must fail non-2xx responses with *HTTPStatusError.
type MarketplaceAPI interface {
	Get(ctx context.Context, target string, query url.Values) (*APIResponse, error)
	Put(ctx context.Context, path string) (*APIResponse, error)
	Post(ctx context.Context, path string, body any) (*APIResponse, error)
	PostMultipart(ctx context.Context, path string, parts []MultipartPart) (*APIResponse, error)
}

// OrderSink persists a fetched order and returns where it was written.
type OrderSink interface {
	Save(ctx context.Context, order *Order) (string, error)
}

// ---------------------------------------------------------------------------
// Endpoints
// ---------------------------------------------------------------------------

const (
	// OrdersPath is the orders listing endpoint
	OrdersPath = "/api/orders"
	// OrderStateCodesParam is the query parameter filtering the listing by state
	OrderStateCodesParam = "order_state_codes"
)

// AcceptOrderPath returns the accept endpoint for an order.
func AcceptOrderPath(orderID string) string {
	return orderPath(orderID, "accept")
}

// TrackingPath returns the tracking endpoint for an order.
func TrackingPath(orderID string) string {
	return orderPath(orderID, "tracking")
}

// ShipPath returns the shipment verification endpoint for an order.
func ShipPath(orderID string) string {
	return orderPath(orderID, "ship")
}

// DocumentsPath returns the documents endpoint for an order.
func DocumentsPath(orderID string) string {
	return orderPath(orderID, "documents")
}

func orderPath(orderID, action string) string {
	return OrdersPath + "/" + url.PathEscape(orderID) + "/" + action
}
