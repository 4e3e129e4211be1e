package cli_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jetsetgo/dispatchdesk/internal/cli"
	"github.com/jetsetgo/dispatchdesk/internal/client"
)

func TestHealth(t *testing.T) {
	tests := []struct {
		name    string
		status  string
		want    []string
		wantErr bool
	}{
		{name: "healthy", status: "healthy", want: []string{"Status:    healthy", "Mode:      development"}},
		{name: "ok", status: "OK", want: []string{"Status:    OK"}},
		{name: "degraded", status: "degraded", want: []string{"Status:    degraded"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setupCLITest(t)
			backend := newFakeBackend(t, 0)
			backend.healthState = tt.status

			stdout, _, err := runCLI(t, "--api-url", backend.URL(), "health")
			if tt.wantErr {
				require.ErrorIs(t, err, cli.ErrUnhealthy)
			} else {
				require.NoError(t, err)
			}
			assert.Contains(t, stdout, "Backend:   "+backend.URL())
			assert.Contains(t, stdout, "Timestamp: 2026-10-18T09:00:00Z")
			for _, w := range tt.want {
				assert.Contains(t, stdout, w)
			}
		})
	}
}

func TestHealth_JSON(t *testing.T) {
	setupCLITest(t)
	backend := newFakeBackend(t, 0)

	stdout, _, err := runCLI(t, "--api-url", backend.URL(), "health", "-o", "json")
	require.NoError(t, err)

	var got struct {
		Status  string `json:"status"`
		DevMode bool   `json:"dev_mode"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &got))
	assert.Equal(t, "healthy", got.Status)
	assert.True(t, got.DevMode)
}

func TestHealth_ErrorStatus(t *testing.T) {
	tests := []struct {
		name          string
		code          int
		wantUnhealthy bool
		wantInMsg     string
	}{
		{name: "service unavailable", code: http.StatusServiceUnavailable, wantUnhealthy: true, wantInMsg: "HTTP 503"},
		{name: "not found", code: http.StatusNotFound, wantInMsg: "does not expose /health"},
		{name: "server error", code: http.StatusInternalServerError, wantInMsg: "HTTP 500"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setupCLITest(t)
			backend := newFakeBackend(t, 0)
			backend.healthCode = tt.code

			_, _, err := runCLI(t, "--api-url", backend.URL(), "health")
			require.Error(t, err)
			assert.Equal(t, tt.wantUnhealthy, errors.Is(err, cli.ErrUnhealthy))
			assert.Contains(t, err.Error(), tt.wantInMsg)
			assert.True(t, client.IsStatus(err, tt.code))
		})
	}
}

func TestStatus_HealthUnavailable(t *testing.T) {
	setupCLITest(t)
	backend := newFakeBackend(t, 10)
	backend.healthCode = http.StatusServiceUnavailable

	_, _, err := runCLI(t, "--api-url", backend.URL(), "status")
	require.ErrorIs(t, err, cli.ErrUnhealthy)
	assert.Contains(t, err.Error(), "health:")
}

func TestHealth_Unreachable(t *testing.T) {
	setupCLITest(t)

	_, _, err := runCLI(t, "--api-url", "http://127.0.0.1:1", "health")
	require.Error(t, err)
}

func TestStatus(t *testing.T) {
	setupCLITest(t)
	backend := newFakeBackend(t, 1234)

	stdout, _, err := runCLI(t, "--api-url", backend.URL(), "status")
	require.NoError(t, err)

	assert.Contains(t, stdout, "Status:    healthy")
	assert.Contains(t, stdout, "Dispatch:  1,234 invoices found")
	assert.Contains(t, stdout, "Pending:   3 outstanding invoices")
	assert.Equal(t, "1", backend.LastQuery(t).Get("limit"), "only the total is needed")
}

func TestStatus_JSON(t *testing.T) {
	setupCLITest(t)
	backend := newFakeBackend(t, 12)

	stdout, _, err := runCLI(t, "--api-url", backend.URL(), "status", "-o", "json")
	require.NoError(t, err)

	var got struct {
		BaseURL          string `json:"base_url"`
		DispatchedTotal  int    `json:"dispatched_total"`
		OutstandingCount int    `json:"outstanding_count"`
		Health           struct {
			Status string `json:"status"`
		} `json:"health"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &got))
	assert.Equal(t, backend.URL(), got.BaseURL)
	assert.Equal(t, 12, got.DispatchedTotal)
	assert.Equal(t, 3, got.OutstandingCount)
	assert.Equal(t, "healthy", got.Health.Status)
}

func TestStatus_ReportFailure(t *testing.T) {
	setupCLITest(t)
	backend := newFakeBackend(t, 12)
	backend.failReports = true

	_, _, err := runCLI(t, "--api-url", backend.URL(), "status")
	require.Error(t, err)
	assert.Regexp(t, `^(dispatch report|outstanding orders): HTTP 500`, err.Error())
}
