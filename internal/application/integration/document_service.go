package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/BonMercato/wunder/internal/domain/integration"
	"github.com/BonMercato/wunder/internal/infrastructure/logger"
	"github.com/BonMercato/wunder/internal/infrastructure/telemetry"
)

// OperationPushInvoice names the invoice workflow in spans and metrics
const OperationPushInvoice = "push_invoice"

// DocumentService attaches a local invoice file to an order
type DocumentService struct {
	api integration.MarketplaceAPI
	serviceOptions
}

// NewDocumentService creates a new DocumentService
func NewDocumentService(api integration.MarketplaceAPI, opts ...Option) *DocumentService {
	return &DocumentService{
		api:            api,
		serviceOptions: newServiceOptions(opts),
	}
}

// PushInvoice uploads the file at path as a customer invoice of the order named by the
// file's <order_id>_ prefix. Local checks run before any request is made.
// A 2xx response whose body reports errors fails with *integration.DocumentUploadError,
// which carries the decoded result.
func (s *DocumentService) PushInvoice(ctx context.Context, path string) (result *integration.DocumentUploadResult, err error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "document", OperationPushInvoice,
		telemetry.SpanAttrRunID, logger.GetRunID(ctx),
		telemetry.SpanAttrFile, path,
	)
	defer span.End()
	started := time.Now()
	defer func() {
		s.metrics.RecordOperation(ctx, OperationPushInvoice, started, err)
		if err != nil {
			telemetry.RecordError(span, err)
			return
		}
		telemetry.SetOK(span)
	}()

	orderID, uploadName, err := prepareInvoice(path)
	if err != nil {
		return nil, err
	}
	telemetry.SetAttributes(span, telemetry.SpanAttrOrderID, orderID)

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open invoice %s: %w", path, err)
	}
	defer f.Close()

	manifest, err := json.Marshal(integration.NewInvoiceManifest(uploadName))
	if err != nil {
		return nil, fmt.Errorf("encode document manifest: %w", err)
	}

	parts := []integration.MultipartPart{
		{FieldName: integration.DocumentFilesField, FileName: uploadName, Content: f},
		{FieldName: integration.DocumentManifestField, ContentType: "application/json", Content: bytes.NewReader(manifest)},
	}

	resp, err := s.api.PostMultipart(ctx, integration.DocumentsPath(orderID), parts)
	if err != nil {
		return nil, fmt.Errorf("upload invoice for order %s: %w", orderID, err)
	}

	result = &integration.DocumentUploadResult{}
	if err := json.Unmarshal(resp.Body, result); err != nil {
		return nil, fmt.Errorf("%w: document upload response for order %s: %w", integration.ErrDecode, orderID, err)
	}

	outcome := result.Outcome()
	s.metrics.RecordDocumentUploaded(ctx, string(outcome.Status))
	if outcome.Status == integration.UploadStatusPartialFailure {
		return result, &integration.DocumentUploadError{OrderID: orderID, Result: result}
	}

	s.log(ctx).Info("Invoice uploaded",
		zap.String("order_id", orderID),
		zap.String("file_name", uploadName),
	)
	return result, nil
}

// prepareInvoice runs the local checks in order: existence, format, file name.
func prepareInvoice(path string) (orderID, uploadName string, err error) {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", "", fmt.Errorf("%w: %s", integration.ErrFileNotFound, path)
		}
		return "", "", fmt.Errorf("stat invoice %s: %w", path, err)
	}
	if info.IsDir() {
		return "", "", fmt.Errorf("%w: %s is a directory", integration.ErrFileNotFound, path)
	}

	ext := filepath.Ext(path)
	if !integration.IsSupportedDocumentFormat(ext) {
		return "", "", fmt.Errorf("%w: %q", integration.ErrUnsupportedFormat, ext)
	}

	orderID, err = integration.OrderIDFromDocumentName(path)
	if err != nil {
		return "", "", err
	}
	return orderID, integration.InvoiceUploadName(orderID, ext), nil
}
