package respond

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/corray333/backend-labs/store/internal/service/errs"
	"github.com/corray333/backend-labs/store/internal/transport/http/v1/decode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestError_StatusMapping(t *testing.T) {
	cases := []struct {
		err    error
		status int
		code   string
	}{
		{fmt.Errorf("order 1: %w", errs.ErrNotFound), http.StatusNotFound, "not_found"},
		{fmt.Errorf("products [9]: %w", errs.ErrInvalidReference), http.StatusUnprocessableEntity, "invalid_reference"},
		{fmt.Errorf("order 1: %w", errs.ErrConflict), http.StatusConflict, "conflict"},
		{fmt.Errorf("brand 1: %w", errs.ErrInUse), http.StatusConflict, "in_use"},
		{fmt.Errorf("%w: json", decode.ErrBadRequest), http.StatusBadRequest, "invalid_request"},
		{errors.New("connection refused"), http.StatusInternalServerError, "internal"},
	}

	for _, tc := range cases {
		rec := httptest.NewRecorder()
		Error(rec, httptest.NewRequest(http.MethodGet, "/", nil), tc.err)

		assert.Equal(t, tc.status, rec.Code, tc.err.Error())

		var body ErrorBody
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, tc.code, body.Error)
	}
}

func TestError_InternalHidesDetails(t *testing.T) {
	rec := httptest.NewRecorder()
	Error(rec, httptest.NewRequest(http.MethodGet, "/", nil), errors.New("password=secret"))

	assert.NotContains(t, rec.Body.String(), "secret")
}

func TestError_Validation(t *testing.T) {
	ve := &errs.ValidationError{}
	ve.Add("status", "required", "Please select an order status.")
	ve.Add("quantities", "eqlen", "Every product needs exactly one quantity.")

	rec := httptest.NewRecorder()
	Error(rec, httptest.NewRequest(http.MethodPost, "/", nil), fmt.Errorf("create: %w", ve))

	require.Equal(t, http.StatusBadRequest, rec.Code)

	var body ErrorBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "validation_failed", body.Error)
	assert.Len(t, body.Fields, 2)
}
