// Package billing is the access layer for the upstream billing
// platform's RPC-style API: one resilient transport client, a
// method-alias fallback resolver, and a pagination harvester. It knows
// nothing about catalog entities.
package billing

import (
	"bytes"
	"crypto/tls"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"
)

// Scope selects the upstream authentication profile.
type Scope string

const (
	ScopeGuest  Scope = "guest"
	ScopeClient Scope = "client"
	ScopeAdmin  Scope = "admin"
)

type encoding string

const (
	encodingJSON encoding = "json"
	encodingForm encoding = "form"
)

// CallRecord is one transport attempt, kept for diagnostics only.
type CallRecord struct {
	Scope      Scope
	Method     string
	Mode       string
	StatusCode int
	Success    bool
}

// Client issues logical calls against {baseURL}/api/{scope}/{method}.
// A call is attempted with a JSON body first and retried once with
// form encoding before it fails.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client

	mu      sync.Mutex
	callLog []CallRecord
}

// NewClient builds a client. Timeouts below 5s are raised to 5s; the
// connect timeout is capped at 10s. strictTLS=false disables
// certificate verification for self-signed billing installs.
func NewClient(baseURL, apiKey string, timeout time.Duration, strictTLS bool) *Client {
	if timeout < 5*time.Second {
		timeout = 5 * time.Second
	}
	connectTimeout := timeout
	if connectTimeout > 10*time.Second {
		connectTimeout = 10 * time.Second
	}

	transport := &http.Transport{
		DialContext: (&net.Dialer{Timeout: connectTimeout}).DialContext,
	}
	if !strictTLS {
		transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true}
	}

	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		http: &http.Client{
			Timeout:   timeout,
			Transport: transport,
		},
	}
}

// CallLog returns a copy of every attempt made so far.
func (c *Client) CallLog() []CallRecord {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]CallRecord, len(c.callLog))
	copy(out, c.callLog)
	return out
}

func (c *Client) record(entry CallRecord) {
	c.mu.Lock()
	c.callLog = append(c.callLog, entry)
	c.mu.Unlock()
}

// Call performs one logical call. The JSON attempt's failure is folded
// into the final error only when the form attempt fails too.
func (c *Client) Call(scope Scope, method string, payload map[string]any) (any, error) {
	endpoint := c.endpoint(scope, method)
	effective := c.withAuthPayload(scope, payload)

	result, jsonErr := c.request(endpoint, scope, method, effective, encodingJSON)
	if jsonErr == nil {
		return result, nil
	}

	result, formErr := c.request(endpoint, scope, method, effective, encodingForm)
	if formErr == nil {
		return result, nil
	}

	status := 0
	var apiErr *APIError
	if errors.As(formErr, &apiErr) {
		status = apiErr.StatusCode
	}
	message := fmt.Sprintf(
		"%s/%s failed in both JSON and form mode. json_error=%s; form_error=%s",
		scope, method, jsonErr.Error(), formErr.Error(),
	)
	return nil, newAPIError(KindExhausted, scope, method, message, status, formErr)
}

// CallWithFallback tries each method alias in order and returns the
// first success. When all aliases fail the last error is returned
// verbatim, so callers see the most recent failure.
func (c *Client) CallWithFallback(scope Scope, methods []string, payload map[string]any) (any, error) {
	var lastErr error
	for _, method := range methods {
		result, err := c.Call(scope, method, payload)
		if err == nil {
			return result, nil
		}
		lastErr = err
	}
	if lastErr != nil {
		return nil, lastErr
	}
	return nil, newAPIError(KindNoMethods, scope, "n/a", "no API methods were provided", 0, nil)
}

func (c *Client) endpoint(scope Scope, method string) string {
	return fmt.Sprintf("%s/api/%s/%s", c.baseURL, strings.TrimSpace(string(scope)), strings.Trim(method, "/"))
}

// withAuthPayload injects the secret into admin payloads under three
// legacy key aliases for older upstream versions. Caller-provided keys
// are never overwritten.
func (c *Client) withAuthPayload(scope Scope, payload map[string]any) map[string]any {
	out := make(map[string]any, len(payload)+3)
	for key, value := range payload {
		out[key] = value
	}
	if scope != ScopeAdmin || c.apiKey == "" {
		return out
	}
	for _, key := range []string{"api_key", "api_token", "token"} {
		if _, exists := out[key]; !exists {
			out[key] = c.apiKey
		}
	}
	return out
}

func (c *Client) authHeader(scope Scope) string {
	if scope == ScopeGuest || c.apiKey == "" {
		return ""
	}
	username := "client"
	if scope == ScopeAdmin {
		username = "admin"
	}
	return "Basic " + base64.StdEncoding.EncodeToString([]byte(username+":"+c.apiKey))
}

func (c *Client) request(endpoint string, scope Scope, method string, payload map[string]any, mode encoding) (any, error) {
	var body io.Reader
	contentType := ""
	switch mode {
	case encodingJSON:
		encoded, err := json.Marshal(payload)
		if err != nil {
			return nil, newAPIError(KindProtocol, scope, method, "failed to encode payload as JSON", 0, err)
		}
		body = bytes.NewReader(encoded)
		contentType = "application/json"
	case encodingForm:
		form := url.Values{}
		for key, value := range payload {
			form.Set(key, formValue(value))
		}
		body = strings.NewReader(form.Encode())
		contentType = "application/x-www-form-urlencoded"
	}

	req, err := http.NewRequest(http.MethodPost, endpoint, body)
	if err != nil {
		return nil, newAPIError(KindTransport, scope, method, err.Error(), 0, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", contentType)
	if auth := c.authHeader(scope); auth != "" {
		req.Header.Set("Authorization", auth)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.record(CallRecord{Scope: scope, Method: method, Mode: string(mode), Success: false})
		return nil, newAPIError(KindTransport, scope, method, fmt.Sprintf("request error: %v", err), 0, err)
	}
	defer resp.Body.Close()

	raw, readErr := io.ReadAll(resp.Body)
	status := resp.StatusCode
	c.record(CallRecord{
		Scope:      scope,
		Method:     method,
		Mode:       string(mode),
		StatusCode: status,
		Success:    readErr == nil && status < 500,
	})
	if readErr != nil {
		return nil, newAPIError(KindTransport, scope, method, fmt.Sprintf("read error: %v", readErr), status, readErr)
	}

	var decoded any
	if err := json.Unmarshal(raw, &decoded); err != nil || !isJSONContainer(decoded) {
		snippet := strings.TrimSpace(string(raw))
		if len(snippet) > 200 {
			snippet = snippet[:200]
		}
		return nil, newAPIError(KindProtocol, scope, method,
			fmt.Sprintf("non-JSON response (%d): %s", status, snippet), status, err)
	}

	if status >= 400 {
		return nil, newAPIError(KindApplication, scope, method,
			fmt.Sprintf("HTTP %d: %s", status, readErrorMessage(decoded)), status, nil)
	}
	return c.unwrapResult(decoded, scope, method)
}

// unwrapResult inspects a decoded object for an error member, failing
// the attempt when it is truthy, then returns its result member when
// present, else the whole object. Runs inside request so an error
// member under one encoding still gets the other encoding's attempt.
func (c *Client) unwrapResult(decoded any, scope Scope, method string) (any, error) {
	object, ok := decoded.(map[string]any)
	if !ok {
		return decoded, nil
	}
	if errValue, exists := object["error"]; exists && isTruthyError(errValue) {
		return nil, newAPIError(KindApplication, scope, method,
			"API error: "+readErrorMessage(object), 0, nil)
	}
	if result, exists := object["result"]; exists {
		return result, nil
	}
	return object, nil
}

func isJSONContainer(value any) bool {
	switch value.(type) {
	case map[string]any, []any:
		return true
	}
	return false
}

func isTruthyError(value any) bool {
	switch v := value.(type) {
	case nil:
		return false
	case string:
		return v != ""
	case bool:
		return v
	}
	return true
}

func readErrorMessage(decoded any) string {
	object, ok := decoded.(map[string]any)
	if !ok {
		return "unknown error"
	}
	switch errValue := object["error"].(type) {
	case string:
		if errValue != "" {
			return errValue
		}
	case map[string]any:
		for _, key := range []string{"message", "msg", "code", "error"} {
			if text := scalarText(errValue[key]); text != "" {
				return text
			}
		}
		if serialized, err := json.Marshal(errValue); err == nil {
			return string(serialized)
		}
		return "unknown error"
	}
	if text := scalarText(object["message"]); text != "" {
		return text
	}
	return "unknown error"
}

func scalarText(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case float64:
		return fmt.Sprintf("%v", v)
	}
	return ""
}

func formValue(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case bool:
		if v {
			return "1"
		}
		return "0"
	case nil:
		return ""
	default:
		return fmt.Sprintf("%v", v)
	}
}
