package response

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorChaining(t *testing.T) {
	e := ErrBadRequest().
		AddMessages("first detail", "second detail").
		WithResult(map[string]string{"field": "email"})

	assert.Equal(t, http.StatusBadRequest, e.StatusCode)
	assert.Equal(t, []string{"first detail", "second detail"}, e.Messages)
	assert.Equal(t, "HTTP 400: Your request could not be processed", e.Error())

	e.WithMessage("replacement")
	assert.Equal(t, "HTTP 400: replacement", e.Error())
}

func TestCannedStatusCodes(t *testing.T) {
	assert.Equal(t, http.StatusInternalServerError, ErrUnexpected().StatusCode)
	assert.Equal(t, http.StatusUnauthorized, ErrUnauthorized().StatusCode)
	assert.Equal(t, http.StatusNotFound, ErrNotFound().StatusCode)
	assert.Equal(t, http.StatusMethodNotAllowed, ErrMethodNotAllowed().StatusCode)
	assert.Equal(t, http.StatusBadRequest, ErrInvalidJson().StatusCode)
	assert.Equal(t, http.StatusUnauthorized, ErrNoBearer().StatusCode)
}

func TestWriteErrorEnvelope(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/", nil)

	WriteError(rec, req, ErrNotFound().AddMessages("Checkout session not found"))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var envelope V1Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	// the canned message leads, handler detail follows
	assert.Equal(t, []string{
		"The requested resource was not found",
		"Checkout session not found",
	}, envelope.Messages)
}

func TestWriteResponseEnvelope(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/", nil)

	WriteResponse(rec, req, map[string]string{"hello": "world"})

	assert.Equal(t, http.StatusOK, rec.Code)

	var envelope V1Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.Empty(t, envelope.Messages)
	assert.Equal(t, map[string]interface{}{"hello": "world"}, envelope.Result)
}
