package n8n

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sbs-ecosystem/ecocheck/internal/domain"
)

func TestListenerCheckStatuses(t *testing.T) {
	tests := []struct {
		name        string
		code        int
		wantStatus  domain.Status
		wantMessage string
	}{
		{name: "accepted", code: http.StatusOK, wantStatus: domain.StatusPass, wantMessage: "pg-listener webhook accessible"},
		{name: "no workflow", code: http.StatusNotFound, wantStatus: domain.StatusWarning, wantMessage: "pg-listener webhook endpoint exists but no workflow configured"},
		{name: "server error", code: http.StatusBadGateway, wantStatus: domain.StatusFail, wantMessage: "pg-listener webhook returned 502"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got notification
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/webhook/pg-notify", r.URL.Path)
				assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
				w.WriteHeader(tt.code)
			}))
			defer srv.Close()

			results := NewListenerCheck(testConfig(), srv.URL).Run(context.Background())

			require.Len(t, results, 1)
			assert.Equal(t, "pg_listener_webhook", results[0].Name)
			assert.Equal(t, tt.wantStatus, results[0].Status)
			assert.Equal(t, tt.wantMessage, results[0].Message)
			assert.Equal(t, "health_check", got.Channel)
			assert.True(t, got.Payload.Test)
			assert.Equal(t, "health_check_script", got.Payload.Source)

			url, ok := results[0].Details.Get("webhook_url")
			require.True(t, ok)
			assert.Equal(t, srv.URL+"/webhook/pg-notify", url.String())
		})
	}
}

func TestListenerCheckTransportErrorFails(t *testing.T) {
	check := NewListenerCheck(testConfig(), "http://127.0.0.1:1")

	results := check.Run(context.Background())

	require.Len(t, results, 1)
	assert.Equal(t, domain.StatusFail, results[0].Status)
	assert.Contains(t, results[0].Message, "pg-listener webhook error")
}
