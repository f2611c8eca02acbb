// Package testkit holds shared helpers for HTTP handler tests: request
// builders for JSON and multipart bodies, and assertions over the API's
// response envelope.
package testkit

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Envelope mirrors the JSON response wrapper every endpoint returns.
type Envelope struct {
	Status  int               `json:"status"`
	Message string            `json:"message"`
	Data    json.RawMessage   `json:"data"`
	Errors  map[string]string `json:"errors"`
}

// JSONRequest builds an httptest request with a JSON body.
func JSONRequest(t *testing.T, method, target string, body interface{}) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	return req
}

// MultipartBuilder accumulates form fields and files for a multipart
// request the way browser clients send them.
type MultipartBuilder struct {
	t   *testing.T
	buf bytes.Buffer
	w   *multipart.Writer
}

// NewMultipart starts a multipart body.
func NewMultipart(t *testing.T) *MultipartBuilder {
	t.Helper()
	b := &MultipartBuilder{t: t}
	b.w = multipart.NewWriter(&b.buf)
	return b
}

// Field adds a plain form field.
func (b *MultipartBuilder) Field(name, value string) *MultipartBuilder {
	b.t.Helper()
	require.NoError(b.t, b.w.WriteField(name, value))
	return b
}

// JSONField marshals v and adds it as a form field.
func (b *MultipartBuilder) JSONField(name string, v interface{}) *MultipartBuilder {
	b.t.Helper()
	data, err := json.Marshal(v)
	require.NoError(b.t, err)
	return b.Field(name, string(data))
}

// File adds a file part with the given content.
func (b *MultipartBuilder) File(field, filename string, content []byte) *MultipartBuilder {
	b.t.Helper()
	fw, err := b.w.CreateFormFile(field, filename)
	require.NoError(b.t, err)
	_, err = fw.Write(content)
	require.NoError(b.t, err)
	return b
}

// Request finalizes the body and returns the request.
func (b *MultipartBuilder) Request(method, target string) *http.Request {
	b.t.Helper()
	require.NoError(b.t, b.w.Close())
	req := httptest.NewRequest(method, target, &b.buf)
	req.Header.Set("Content-Type", b.w.FormDataContentType())
	return req
}

// DecodeEnvelope parses the recorded response body into an Envelope.
func DecodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) Envelope {
	t.Helper()
	var env Envelope
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(body, &env), "response is not a JSON envelope: %s", body)
	return env
}

// AssertEnvelope checks the HTTP status and the envelope's own status
// field, then returns the envelope for further data assertions.
func AssertEnvelope(t *testing.T, rec *httptest.ResponseRecorder, wantStatus int) Envelope {
	t.Helper()
	assert.Equal(t, wantStatus, rec.Code, "HTTP status mismatch: %s", rec.Body.String())
	env := DecodeEnvelope(t, rec)
	assert.Equal(t, wantStatus, env.Status, "envelope status mismatch")
	return env
}

// DecodeData unmarshals the envelope's data payload into dest.
func DecodeData(t *testing.T, env Envelope, dest interface{}) {
	t.Helper()
	require.NotNil(t, env.Data, "envelope has no data")
	require.NoError(t, json.Unmarshal(env.Data, dest))
}
