package integration

import (
	"fmt"
	"path/filepath"
	"strings"
)

// DocumentTypeCustomerInvoice classifies an uploaded document as a customer invoice
const DocumentTypeCustomerInvoice = "CUSTOMER_INVOICE"

// Multipart field names of the documents endpoint
const (
	DocumentFilesField    = "files"
	DocumentManifestField = "order_documents"
)

// documentFormats is the closed set of extensions the marketplace accepts
var documentFormats = map[string]struct{}{
	"csv": {}, "doc": {}, "xls": {}, "xlsx": {}, "ppt": {}, "pdf": {},
	"odt": {}, "ods": {}, "odp": {}, "txt": {}, "rtf": {}, "png": {},
	"jpg": {}, "gif": {}, "zpl": {}, "mov": {}, "mp4": {},
}

// IsSupportedDocumentFormat checks ext (with or without the leading dot) case-insensitively
func IsSupportedDocumentFormat(ext string) bool {
	ext = strings.ToLower(strings.TrimPrefix(ext, "."))
	_, ok := documentFormats[ext]
	return ok
}

// OrderIDFromDocumentName returns the text before the first underscore of a file's base name.
func OrderIDFromDocumentName(path string) (string, error) {
	name := filepath.Base(path)
	orderID, _, found := strings.Cut(name, "_")
	if !found || orderID == "" {
		return "", fmt.Errorf("%w: %q does not start with <order_id>_", ErrInvalidFileName, name)
	}
	return orderID, nil
}

// InvoiceUploadName returns the name an invoice is uploaded under, keeping the original extension
func InvoiceUploadName(orderID, ext string) string {
	return "Invoice-" + orderID + ext
}

// ---------------------------------------------------------------------------
// Upload request
// ---------------------------------------------------------------------------

// DocumentUploadRequest describes one document sent alongside its file stream
type DocumentUploadRequest struct {
	FileName string `json:"file_name"`
	TypeCode string `json:"type_code"`
}

// DocumentManifest is the JSON part describing the uploaded files
type DocumentManifest struct {
	OrderDocuments []DocumentUploadRequest `json:"order_documents"`
}

// NewInvoiceManifest builds the manifest for a single customer invoice
func NewInvoiceManifest(fileName string) DocumentManifest {
	return DocumentManifest{
		OrderDocuments: []DocumentUploadRequest{
			{FileName: fileName, TypeCode: DocumentTypeCustomerInvoice},
		},
	}
}

// ---------------------------------------------------------------------------
// Upload result
// ---------------------------------------------------------------------------

// DocumentUploadResult is the marketplace response to a document upload
type DocumentUploadResult struct {
	ErrorsCount    *int             `json:"errors_count"`
	OrderDocuments []DocumentErrors `json:"order_documents"`
}

// DocumentErrors are the errors reported for one submitted document
type DocumentErrors struct {
	Errors []DocumentError `json:"errors"`
}

// DocumentError is a single structured upload error
type DocumentError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Field   string `json:"field"`
}

// UploadStatus classifies an upload result
type UploadStatus string

const (
	UploadStatusOK             UploadStatus = "OK"
	UploadStatusPartialFailure UploadStatus = "PARTIAL_FAILURE"
)

// UploadOutcome is the classified upload result
type UploadOutcome struct {
	Status UploadStatus
	Errors []DocumentError
}

// Outcome classifies the result: errors_count > 0 is a partial failure,
// absent or 0 is a success regardless of the error lists.
func (r *DocumentUploadResult) Outcome() UploadOutcome {
	if r.ErrorsCount == nil || *r.ErrorsCount <= 0 {
		return UploadOutcome{Status: UploadStatusOK}
	}
	return UploadOutcome{Status: UploadStatusPartialFailure, Errors: r.AllErrors()}
}

// AllErrors flattens the per-document error lists
func (r *DocumentUploadResult) AllErrors() []DocumentError {
	var all []DocumentError
	for _, doc := range r.OrderDocuments {
		all = append(all, doc.Errors...)
	}
	return all
}
