package cli

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, baseURL, orderPath string) string {
	t.Helper()
	content := fmt.Sprintf(`base_url = '%s'
api_key = 'secret-key'

[pull_order_settings]
order_state_codes = ["WAITING_ACCEPTANCE", "SHIPPING"]
order_path = '%s'

[log]
level = "error"
file = ""
`, baseURL, orderPath)

	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func writeInput(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestExecute_PullOrders(t *testing.T) {
	var accepted atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "wunder/1.2.3", r.Header.Get("User-Agent"))
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/api/orders":
			assert.Equal(t, "WAITING_ACCEPTANCE,SHIPPING", r.URL.Query().Get("order_state_codes"))
			_, _ = w.Write([]byte(`{"orders":[{"order_id":"A1","order_state":"WAITING_ACCEPTANCE"},{"order_id":"A2","order_state":"SHIPPING"}],"total_count":2}`))
		case r.Method == http.MethodPut && r.URL.Path == "/api/orders/A1/accept":
			accepted.Add(1)
			w.WriteHeader(http.StatusNoContent)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	orderDir := filepath.Join(t.TempDir(), "nested", "orders")
	var stderr bytes.Buffer

	code := Execute(context.Background(), "1.2.3", []string{"pull-orders", "--config", writeConfig(t, srv.URL, orderDir)}, &stderr)

	assert.Equal(t, 0, code, stderr.String())
	assert.Equal(t, int32(1), accepted.Load())
	entries, err := os.ReadDir(orderDir)
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestExecute_PushInvoice(t *testing.T) {
	t.Run("unsupported format never reaches the server", func(t *testing.T) {
		var requests atomic.Int32
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requests.Add(1)
		}))
		defer srv.Close()

		var stderr bytes.Buffer
		invoice := writeInput(t, "C9_invoice.EXE", "MZ")

		code := Execute(context.Background(), "", []string{"push-invoice", invoice, "--config", writeConfig(t, srv.URL, t.TempDir())}, &stderr)

		assert.Equal(t, 1, code)
		assert.Zero(t, requests.Load())
		assert.Empty(t, stderr.String())
	})

	t.Run("rejected document exits non-zero", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/api/orders/C9/documents", r.URL.Path)
			_, _ = w.Write([]byte(`{"errors_count":1,"order_documents":[{"errors":[{"code":"E1","message":"bad","field":"file_name"}]}]}`))
		}))
		defer srv.Close()

		var stderr bytes.Buffer
		invoice := writeInput(t, "C9_invoice.pdf", "%PDF")

		code := Execute(context.Background(), "", []string{"push-invoice", invoice, "--config", writeConfig(t, srv.URL, t.TempDir())}, &stderr)

		assert.Equal(t, 1, code)
	})

	t.Run("accepted document", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"order_documents":[]}`))
		}))
		defer srv.Close()

		var stderr bytes.Buffer
		invoice := writeInput(t, "C9_invoice.pdf", "%PDF")

		code := Execute(context.Background(), "", []string{"push-invoice", invoice, "--config", writeConfig(t, srv.URL, t.TempDir())}, &stderr)

		assert.Equal(t, 0, code, stderr.String())
	})
}

func TestExecute_PushTracking(t *testing.T) {
	var mu sync.Mutex
	var paths []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		defer mu.Unlock()
		paths = append(paths, r.Method+" "+r.URL.Path)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	var stderr bytes.Buffer
	tracking := writeInput(t, "tracking.xml", `<tracking><order_id>B7</order_id><carrier_code>DHL</carrier_code><tracking_number>123</tracking_number></tracking>`)

	code := Execute(context.Background(), "", []string{"push-tracking-info", tracking, "--config", writeConfig(t, srv.URL, t.TempDir())}, &stderr)

	assert.Equal(t, 0, code, stderr.String())
	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []string{"POST /api/orders/B7/tracking", "GET /api/orders/B7/ship"}, paths)
}

func TestExecute_UsageAndConfigErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"missing argument", []string{"push-tracking-info"}},
		{"extra argument", []string{"pull-orders", "x"}},
		{"unknown command", []string{"sync"}},
		{"missing config file", []string{"pull-orders", "--config", filepath.Join(os.TempDir(), "wunder-does-not-exist.toml")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stderr bytes.Buffer
			code := Execute(context.Background(), "", tt.args, &stderr)

			assert.Equal(t, 1, code)
			assert.Contains(t, stderr.String(), "Error:")
		})
	}
}

func TestNewRootCommand_Version(t *testing.T) {
	root := NewRootCommand("1.2.3")
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"--version"})

	require.NoError(t, root.Execute())
	assert.Contains(t, out.String(), "1.2.3")

	names := []string{}
	for _, cmd := range root.Commands() {
		names = append(names, cmd.Name())
	}
	assert.Subset(t, names, []string{"pull-orders", "push-tracking-info", "push-invoice"})
}
