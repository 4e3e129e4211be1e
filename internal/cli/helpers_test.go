package cli_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"sync"
	"testing"

	"github.com/jetsetgo/dispatchdesk/internal/cli"
	"github.com/jetsetgo/dispatchdesk/internal/client"
	"github.com/jetsetgo/dispatchdesk/internal/config"
)

// setupCLITest isolates the command from the user's configuration and environment and
// returns the temporary DISPATCHDESK_HOME.
func setupCLITest(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv(config.EnvHome, home)
	t.Setenv(config.EnvLogLevel, "error")
	t.Setenv(config.EnvAPIURL, "")
	t.Setenv(config.EnvPageSize, "")
	t.Setenv(config.EnvCacheTTL, "")
	t.Setenv(config.EnvProjectDir, "")
	t.Setenv("NO_COLOR", "1")
	t.Cleanup(func() {
		config.ResetGlobalConfigForTest()
		config.SetResolvedProjectDir("")
	})
	return home
}

// runCLI executes the root command with args and returns what it wrote to stdout and
// stderr.
func runCLI(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := cli.NewRootCmd("test")
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

// fakeBackend serves a fixed dispatch report, outstanding list and health payload, and
// records the dispatch queries it receives.
type fakeBackend struct {
	server *httptest.Server

	mu      sync.Mutex
	queries []url.Values

	total       int
	orders      string
	healthState string
	healthCode  int
	failReports bool
}

func newFakeBackend(t *testing.T, total int) *fakeBackend {
	t.Helper()
	b := &fakeBackend{
		total:       total,
		healthState: "healthy",
		orders: `{"orders": [
			{"invoice_number": "INV001", "order_number": "SO-1", "customer_name": "Acme Stores", "invoice_date": "2024-03-01", "total_value": "1200.50"},
			{"invoice_number": "INV002", "order_number": "SO-2", "customer_name": "Baker Bros", "invoice_date": "2024-03-03", "total_value": 80},
			{"invoice_number": "INV003", "order_number": "SO-3", "customer_name": "acme wholesale", "invoice_date": null}
		], "count": 3}`,
	}

	mux := http.NewServeMux()
	mux.HandleFunc(client.PathDispatched, b.dispatched)
	mux.HandleFunc(client.PathOutstanding, func(w http.ResponseWriter, _ *http.Request) {
		if b.failReports {
			http.Error(w, `{"detail": "database unavailable"}`, http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(b.orders))
	})
	mux.HandleFunc(client.PathHealth, func(w http.ResponseWriter, _ *http.Request) {
		if b.healthCode != 0 {
			http.Error(w, `{"detail": "health check failed"}`, b.healthCode)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = fmt.Fprintf(w, `{"status": %q, "timestamp": "2026-10-18T09:00:00Z", "dev_mode": true}`, b.healthState)
	})

	b.server = httptest.NewServer(mux)
	t.Cleanup(b.server.Close)
	return b
}

func (b *fakeBackend) URL() string {
	return b.server.URL
}

func (b *fakeBackend) dispatched(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	b.mu.Lock()
	b.queries = append(b.queries, q)
	b.mu.Unlock()

	if b.failReports {
		http.Error(w, `{"detail": "database unavailable"}`, http.StatusInternalServerError)
		return
	}

	limit, _ := strconv.Atoi(q.Get("limit"))
	offset, _ := strconv.Atoi(q.Get("offset"))
	rows := []map[string]any{}
	for i := offset; i < b.total && i < offset+limit; i++ {
		rows = append(rows, map[string]any{
			"manifest_number": fmt.Sprintf("M%03d", i+1),
			"date_dispatched": "2026-01-05",
			"invoice_number":  fmt.Sprintf("INV%03d", i+1),
			"customer_name":   "Acme Stores",
			"value":           100 + i,
		})
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"invoices":    rows,
		"total":       b.total,
		"limit":       limit,
		"filter_type": q.Get("filter_type"),
	})
}

// Queries returns the dispatch queries received so far.
func (b *fakeBackend) Queries() []url.Values {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]url.Values(nil), b.queries...)
}

// LastQuery returns the most recent dispatch query.
func (b *fakeBackend) LastQuery(t *testing.T) url.Values {
	t.Helper()
	qs := b.Queries()
	if len(qs) == 0 {
		t.Fatal("backend received no dispatch queries")
	}
	return qs[len(qs)-1]
}
