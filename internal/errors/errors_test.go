package errors_test

import (
	"context"
	"fmt"
	"net/http"
	"testing"

	appErrors "github.com/Azell-Tech/azell-web/internal/errors"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestWithErrorDoesNotMutateSentinel(t *testing.T) {
	t.Parallel()

	wrapped := appErrors.ErrProductNotFound.WithError(fmt.Errorf("boom"))
	assert.Nil(t, appErrors.ErrProductNotFound.Err)
	assert.Equal(t, appErrors.ErrProductNotFound.Code, wrapped.Code)
	assert.EqualError(t, wrapped.Unwrap(), "boom")
}

func TestFromError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		err        error
		wantCode   string
		wantStatus int
	}{
		{name: "app error passthrough", err: appErrors.ErrUserNotApproved, wantCode: "USER_NOT_APPROVED", wantStatus: http.StatusForbidden},
		{name: "wrapped app error", err: fmt.Errorf("ctx: %w", appErrors.ErrWithdrawalNotFound), wantCode: "WITHDRAWAL_NOT_FOUND", wantStatus: http.StatusNotFound},
		{name: "gorm not found", err: gorm.ErrRecordNotFound, wantCode: "NOT_FOUND", wantStatus: http.StatusNotFound},
		{name: "gorm duplicated key", err: fmt.Errorf("insert: %w", gorm.ErrDuplicatedKey), wantCode: "CONFLICT", wantStatus: http.StatusConflict},
		{name: "canceled", err: context.Canceled, wantCode: "REQUEST_CANCELED", wantStatus: http.StatusRequestTimeout},
		{name: "unknown", err: fmt.Errorf("x"), wantCode: "UNKNOWN_ERROR", wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := appErrors.FromError(tt.err)
			require.NotNil(t, got)
			assert.Equal(t, tt.wantCode, got.Code)
			assert.Equal(t, tt.wantStatus, got.StatusCode)
		})
	}
}

func TestErrorConstructors(t *testing.T) {
	t.Parallel()

	validation := appErrors.NewValidationError("amount", "Monto inválido")
	assert.True(t, appErrors.HasCode(validation, appErrors.ErrValidation))
	assert.Equal(t, http.StatusBadRequest, validation.StatusCode)
	assert.Equal(t, "amount", validation.Details["field"])
	assert.Empty(t, appErrors.ErrValidation.Details)

	dbErr := appErrors.NewDatabaseError(fmt.Errorf("conn reset"))
	assert.True(t, appErrors.HasCode(dbErr, appErrors.ErrDatabase))
	assert.EqualError(t, dbErr.Unwrap(), "conn reset")

	for _, sentinel := range []*appErrors.AppError{appErrors.ErrEmailAlreadyExists, appErrors.ErrTenantAlreadyExists, appErrors.ErrProductCodeExists} {
		assert.Equal(t, http.StatusConflict, sentinel.StatusCode, sentinel.Code)
	}
}

func TestHasCode(t *testing.T) {
	t.Parallel()

	err := fmt.Errorf("layer: %w", appErrors.ErrTenantNotFound.WithError(fmt.Errorf("db")))
	assert.True(t, appErrors.HasCode(err, appErrors.ErrTenantNotFound))
	assert.False(t, appErrors.HasCode(err, appErrors.ErrUserNotFound))
	assert.False(t, appErrors.HasCode(nil, appErrors.ErrUserNotFound))
}

func TestParseValidationErrors(t *testing.T) {
	t.Parallel()

	type request struct {
		Amount    float64 `validate:"gt=0"`
		ProductID string  `validate:"required"`
	}

	err := validator.New().Struct(request{})
	appErr := appErrors.ParseValidationErrors(err)

	assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
	fields, ok := appErr.Details["fields"].([]map[string]string)
	require.True(t, ok)
	require.Len(t, fields, 2)
	assert.Equal(t, "monto", fields[0]["field"])
	assert.Equal(t, "monto debe ser mayor que 0", fields[0]["message"])
	assert.Equal(t, "producto es obligatorio", fields[1]["message"])
}

func TestNewValidationErrorCarriesField(t *testing.T) {
	t.Parallel()

	err := appErrors.NewValidationError("amount", "Monto inválido")
	assert.Equal(t, http.StatusBadRequest, err.StatusCode)
	assert.Equal(t, "amount", err.Details["field"])
}
