package integration

import (
	"errors"
	"fmt"
)

// ---------------------------------------------------------------------------
// Integration Errors
// ---------------------------------------------------------------------------

var (
	// Local input errors, raised before any network call
	ErrFileNotFound        = errors.New("integration: file does not exist")
	ErrUnsupportedFormat   = errors.New("integration: document format not supported")
	ErrInvalidFileName     = errors.New("integration: invalid document file name")
	ErrInvalidTrackingFile = errors.New("integration: invalid tracking file")
	ErrInvalidOrderID      = errors.New("integration: invalid order id")

	// Remote errors
	ErrHTTPStatus       = errors.New("integration: unexpected HTTP status")
	ErrTransport        = errors.New("integration: marketplace unavailable")
	ErrDecode           = errors.New("integration: invalid marketplace response")
	ErrDocumentRejected = errors.New("integration: document upload rejected")
)

// maxErrorBody bounds how much of a response body is echoed in an error message.
const maxErrorBody = 512

// HTTPStatusError is returned for any non-2xx marketplace response.
// It matches ErrHTTPStatus with errors.Is.
type HTTPStatusError struct {
	Method     string
	URL        string
	StatusCode int
	Body       string
}

func (e *HTTPStatusError) Error() string {
	body := e.Body
	if len(body) > maxErrorBody {
		body = body[:maxErrorBody] + "..."
	}
	return fmt.Sprintf("integration: %s %s returned HTTP %d: %s", e.Method, e.URL, e.StatusCode, body)
}

// Is reports whether target is ErrHTTPStatus.
func (e *HTTPStatusError) Is(target error) bool {
	return target == ErrHTTPStatus
}

// DocumentUploadError is returned when the marketplace accepted the upload request
// but reported errors for the submitted documents in the response body.
// Result holds the full decoded response so callers can inspect per-field errors.
type DocumentUploadError struct {
	OrderID string
	Result  *DocumentUploadResult
}

func (e *DocumentUploadError) Error() string {
	count := 0
	if e.Result != nil && e.Result.ErrorsCount != nil {
		count = *e.Result.ErrorsCount
	}
	return fmt.Sprintf("integration: document upload for order %s rejected with %d error(s)", e.OrderID, count)
}

// Is reports whether target is ErrDocumentRejected.
func (e *DocumentUploadError) Is(target error) bool {
	return target == ErrDocumentRejected
}
