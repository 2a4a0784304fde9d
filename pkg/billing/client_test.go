package billing

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(url string) *Client {
	return NewClient(url, "secret", 5*time.Second, true)
}

func TestCall_FormFallbackAfterJSONFailure(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
			w.WriteHeader(http.StatusNotFound)
			io.WriteString(w, `{"error":{"message":"json mode not supported"}}`)
			return
		}
		io.WriteString(w, `{"result":{"id":"42"}}`)
	}))
	defer ts.Close()

	client := newTestClient(ts.URL)
	result, err := client.Call(ScopeGuest, "product/get", map[string]any{"id": "42"})
	require.NoError(t, err)

	row, ok := result.(map[string]any)
	require.True(t, ok, "expected object result, got %T", result)
	assert.Equal(t, "42", row["id"])

	log := client.CallLog()
	require.Len(t, log, 2)
	assert.Equal(t, "json", log[0].Mode)
	assert.Equal(t, http.StatusNotFound, log[0].StatusCode)
	assert.True(t, log[0].Success, "status < 500 counts as transport success in the log")
	assert.Equal(t, "form", log[1].Mode)
	assert.True(t, log[1].Success)
}

func TestCall_ErrorMemberFailsBothModes(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"error":{"message":"Access denied"}}`)
	}))
	defer ts.Close()

	client := newTestClient(ts.URL)
	_, err := client.Call(ScopeAdmin, "product/get_list", nil)
	require.Error(t, err)

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, KindExhausted, apiErr.Kind)
	assert.Contains(t, apiErr.Message, "Access denied")
	assert.Contains(t, apiErr.Message, "failed in both JSON and form mode")
}

func TestCall_AdminAuth(t *testing.T) {
	var gotAuth string
	var gotPayload map[string]any
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		body, _ := io.ReadAll(r.Body)
		json.Unmarshal(body, &gotPayload)
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"result":[]}`)
	}))
	defer ts.Close()

	client := newTestClient(ts.URL)
	_, err := client.Call(ScopeAdmin, "currency/get_list", map[string]any{"page": 1})
	require.NoError(t, err)

	// Basic base64("admin:secret")
	assert.Equal(t, "Basic YWRtaW46c2VjcmV0", gotAuth)
	for _, key := range []string{"api_key", "api_token", "token"} {
		assert.Equal(t, "secret", gotPayload[key], "secret should be injected under %s", key)
	}
	assert.Equal(t, float64(1), gotPayload["page"], "caller payload must survive auth injection")
}

func TestCall_GuestHasNoAuth(t *testing.T) {
	var gotAuth string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"result":{}}`)
	}))
	defer ts.Close()

	_, err := newTestClient(ts.URL).Call(ScopeGuest, "system/company", nil)
	require.NoError(t, err)
	assert.Empty(t, gotAuth)
}

func TestCall_NonJSONResponse(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, "<html>maintenance page</html>")
	}))
	defer ts.Close()

	_, err := newTestClient(ts.URL).Call(ScopeGuest, "system/company", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "non-JSON response")
	assert.Contains(t, err.Error(), "maintenance page")
}

func TestCall_ResultUnwrapping(t *testing.T) {
	tests := []struct {
		name string
		body string
		want any
	}{
		{"result member", `{"result":"ok"}`, "ok"},
		{"no result member", `{"id":"7"}`, map[string]any{"id": "7"}},
		{"bare list", `[1,2]`, []any{float64(1), float64(2)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				io.WriteString(w, tt.body)
			}))
			defer ts.Close()

			result, err := newTestClient(ts.URL).Call(ScopeGuest, "x/y", nil)
			require.NoError(t, err)
			assert.Equal(t, tt.want, result)
		})
	}
}

func TestCallWithFallback(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if strings.HasSuffix(r.URL.Path, "/old_method") {
			io.WriteString(w, `{"error":"gone"}`)
			return
		}
		io.WriteString(w, `{"result":"from-new"}`)
	}))
	defer ts.Close()

	client := newTestClient(ts.URL)

	result, err := client.CallWithFallback(ScopeGuest, []string{"x/old_method", "x/new_method"}, nil)
	require.NoError(t, err)
	assert.Equal(t, "from-new", result)

	_, err = client.CallWithFallback(ScopeGuest, nil, nil)
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, KindNoMethods, apiErr.Kind)
}
