package bind_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vendora/vendora/pkg/bind"
	"github.com/vendora/vendora/pkg/testkit"
)

type payload struct {
	Name  string  `json:"name"  validate:"required,min=2"`
	Price float64 `json:"price" validate:"required,gte=0"`
}

func TestJSONDecodesAndValidates(t *testing.T) {
	req := testkit.JSONRequest(t, http.MethodPost, "/", map[string]interface{}{
		"name": "Widget", "price": 9.99,
	})

	var p payload
	errs, err := bind.JSON(req, &p)
	require.NoError(t, err)
	require.Nil(t, errs)
	assert.Equal(t, "Widget", p.Name)
	assert.Equal(t, 9.99, p.Price)
}

func TestJSONValidationErrors(t *testing.T) {
	req := testkit.JSONRequest(t, http.MethodPost, "/", map[string]interface{}{
		"name": "x",
	})

	var p payload
	errs, err := bind.JSON(req, &p)
	require.NoError(t, err)
	require.NotNil(t, errs)
	assert.Contains(t, errs, "name")
	assert.Contains(t, errs, "price")
}

func TestJSONMalformedBody(t *testing.T) {
	req := testkit.NewMultipart(t).Request(http.MethodPost, "/") // not JSON at all
	req.Header.Set("Content-Type", "application/json")

	var p payload
	_, err := bind.JSON(req, &p)
	assert.Error(t, err)
}

func TestMultipartJSONSuccess(t *testing.T) {
	req := testkit.NewMultipart(t).
		JSONField("payload", map[string]interface{}{"name": "Widget", "price": 1.0}).
		Request(http.MethodPost, "/")
	require.NoError(t, req.ParseMultipartForm(1<<20))

	var p payload
	require.NoError(t, bind.MultipartJSON(req, "payload", &p))
	assert.Equal(t, "Widget", p.Name)
}

func TestMultipartJSONFailureModes(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		want error
	}{
		{"missing field entirely", "", bind.ErrPayloadMissing},
		{"blank field", "   ", bind.ErrPayloadMissing},
		{"json null", "null", bind.ErrPayloadInvalid},
		{"malformed json", "{not json", bind.ErrPayloadMalformed},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			b := testkit.NewMultipart(t)
			if tc.raw != "" {
				b.Field("payload", tc.raw)
			}
			req := b.Request(http.MethodPost, "/")
			require.NoError(t, req.ParseMultipartForm(1<<20))

			var p payload
			err := bind.MultipartJSON(req, "payload", &p)
			assert.ErrorIs(t, err, tc.want)
		})
	}
}
