// Package bind decodes request payloads into structs: plain JSON bodies
// and the JSON form field carried inside multipart upload requests.
package bind

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/vendora/vendora/pkg/validate"
)

// Sentinel errors for the multipart JSON field. Controllers map each to
// its own 400 response message.
var (
	// ErrPayloadMissing means the form field was absent or blank.
	ErrPayloadMissing = errors.New("payload is required")
	// ErrPayloadInvalid means the field held the JSON literal null.
	ErrPayloadInvalid = errors.New("payload is invalid")
	// ErrPayloadMalformed means the field was not parseable JSON.
	ErrPayloadMalformed = errors.New("invalid JSON")
)

// maxJSONBody caps plain JSON request bodies.
const maxJSONBody = 4 << 20 // 4 MB

// JSON decodes r.Body as JSON into dest and runs validation.
// Returns (errs, nil) when there are validation failures.
// Returns (nil, err) when the body is malformed JSON or too large.
func JSON(r *http.Request, dest interface{}) (errs map[string]string, err error) {
	r.Body = http.MaxBytesReader(nil, r.Body, maxJSONBody)

	dec := json.NewDecoder(r.Body)
	if err = dec.Decode(dest); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return nil, fmt.Errorf("request body too large (max %d bytes)", maxErr.Limit)
		}
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}

	errs = validate.Struct(dest)
	if validate.HasErrors(errs) {
		return errs, nil
	}

	return nil, nil
}

// MultipartJSON decodes the named form field of an already-parsed
// multipart request into dest. The three failure modes are distinct so
// clients can tell a forgotten field from a broken one:
//
//   - field absent or blank          → ErrPayloadMissing
//   - field is the JSON literal null → ErrPayloadInvalid
//   - field is not parseable JSON    → ErrPayloadMalformed
func MultipartJSON(r *http.Request, field string, dest interface{}) error {
	raw := strings.TrimSpace(r.FormValue(field))
	if raw == "" {
		return ErrPayloadMissing
	}
	if raw == "null" {
		return ErrPayloadInvalid
	}
	if err := json.Unmarshal([]byte(raw), dest); err != nil {
		return ErrPayloadMalformed
	}
	return nil
}
