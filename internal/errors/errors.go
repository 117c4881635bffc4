package errors

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
)

var (
	ErrNotFound                = NewAppError("NOT_FOUND", "Recurso no encontrado", http.StatusNotFound)
	ErrUnauthorized            = NewAppError("UNAUTHORIZED", "No autorizado", http.StatusUnauthorized)
	ErrForbidden               = NewAppError("FORBIDDEN", "Acceso denegado", http.StatusForbidden)
	ErrBadRequest              = NewAppError("BAD_REQUEST", "Solicitud inválida", http.StatusBadRequest)
	ErrInternalServer          = NewAppError("INTERNAL_SERVER_ERROR", "Error interno del servidor", http.StatusInternalServerError)
	ErrConflict                = NewConflictError("CONFLICT", "Conflicto de recursos")
	ErrValidation              = NewAppError("VALIDATION_ERROR", "Error de validación", http.StatusBadRequest)
	ErrDatabase                = NewAppError("DATABASE_ERROR", "Error en la base de datos", http.StatusInternalServerError)
	ErrInvalidCredentials      = NewAppError("INVALID_CREDENTIALS", "Credenciales inválidas", http.StatusUnauthorized)
	ErrEmailAlreadyExists      = NewConflictError("EMAIL_ALREADY_EXISTS", "El correo ya está registrado")
	ErrUserNotFound            = NewAppError("USER_NOT_FOUND", "Usuario no encontrado", http.StatusNotFound)
	ErrUserNotApproved         = NewAppError("USER_NOT_APPROVED", "Tu cuenta está pendiente de aprobación", http.StatusForbidden)
	ErrUserInactive            = NewAppError("USER_INACTIVE", "Tu cuenta fue dada de baja", http.StatusForbidden)
	ErrTenantNotFound          = NewAppError("TENANT_NOT_FOUND", "Organización no encontrada", http.StatusNotFound)
	ErrTenantAlreadyExists     = NewConflictError("TENANT_ALREADY_EXISTS", "La organización ya existe")
	ErrProductNotFound         = NewAppError("PRODUCT_NOT_FOUND", "Producto no encontrado", http.StatusNotFound)
	ErrProductCodeExists       = NewConflictError("PRODUCT_CODE_EXISTS", "Ya existe un producto con ese código")
	ErrInvestmentNotFound      = NewAppError("INVESTMENT_NOT_FOUND", "Inversión no encontrada", http.StatusNotFound)
	ErrTransactionNotFound     = NewAppError("TRANSACTION_NOT_FOUND", "Movimiento no encontrado", http.StatusNotFound)
	ErrWithdrawalNotFound      = NewAppError("WITHDRAWAL_NOT_FOUND", "Retiro no encontrado", http.StatusNotFound)
	ErrInvalidStatusTransition = NewAppError("INVALID_STATUS_TRANSITION", "El retiro ya no está en proceso", http.StatusConflict)
	ErrInvalidSetupKey         = NewAppError("INVALID_SETUP_KEY", "Clave de instalación inválida", http.StatusForbidden)
	ErrResourceNotOwned        = NewAppError("RESOURCE_NOT_OWNED", "El recurso no pertenece al usuario", http.StatusForbidden)
)

type AppError struct {
	Code       string
	Message    string
	StatusCode int
	Details    map[string]interface{}
	Err        error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s - %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func (e *AppError) WithDetails(details map[string]interface{}) *AppError {
	clone := e.clone()
	if details == nil {
		clone.Details = make(map[string]interface{})
		return clone
	}
	clone.Details = make(map[string]interface{}, len(details))
	for k, v := range details {
		clone.Details[k] = v
	}
	return clone
}

func (e *AppError) WithError(err error) *AppError {
	clone := e.clone()
	clone.Err = err
	return clone
}

// WithMessage conserva el código y cambia el texto mostrado al cliente.
func (e *AppError) WithMessage(message string) *AppError {
	clone := e.clone()
	clone.Message = message
	return clone
}

func NewAppError(code, message string, statusCode int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		StatusCode: statusCode,
		Details:    make(map[string]interface{}),
	}
}

func WrapError(err error, code, message string, statusCode int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		StatusCode: statusCode,
		Err:        err,
		Details:    make(map[string]interface{}),
	}
}

func (e *AppError) clone() *AppError {
	if e == nil {
		return nil
	}
	clone := *e
	if e.Details != nil {
		clone.Details = make(map[string]interface{}, len(e.Details))
		for k, v := range e.Details {
			clone.Details[k] = v
		}
	} else {
		clone.Details = make(map[string]interface{})
	}
	return &clone
}

func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// HasCode compara el código sin importar cuántas veces se envolvió el error.
func HasCode(err error, target *AppError) bool {
	appErr, ok := AsAppError(err)
	return ok && target != nil && appErr.Code == target.Code
}

func FromError(err error) *AppError {
	if err == nil {
		return nil
	}
	if appErr, ok := AsAppError(err); ok {
		return appErr
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound.WithError(err)
	}

	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrConflict.WithError(err)
	}

	if errors.Is(err, context.Canceled) {
		return WrapError(err, "REQUEST_CANCELED", "Solicitud cancelada por el cliente", http.StatusRequestTimeout)
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return WrapError(err, "REQUEST_TIMEOUT", "La solicitud tardó demasiado", http.StatusGatewayTimeout)
	}

	return WrapError(err, "UNKNOWN_ERROR", "Error desconocido", http.StatusInternalServerError)
}

func NewAuthError(code, message string) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		StatusCode: http.StatusUnauthorized,
		Details:    make(map[string]interface{}),
	}
}

func NewValidationError(field, message string) *AppError {
	return ErrValidation.WithMessage(message).WithDetails(map[string]interface{}{
		"field": field,
	})
}

func NewDatabaseError(err error) *AppError {
	return ErrDatabase.WithMessage("Error al ejecutar la operación en la base de datos").WithError(err)
}

// NewConflictError arma un error 409 con código propio.
func NewConflictError(code, message string) *AppError {
	return NewAppError(code, message, http.StatusConflict)
}

func ParseValidationErrors(err error) *AppError {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return ErrBadRequest.WithError(err)
	}

	fieldErrors := make([]map[string]string, 0, len(validationErrors))
	for _, fieldErr := range validationErrors {
		fieldErrors = append(fieldErrors, map[string]string{
			"field":   translateFieldName(fieldErr.Field()),
			"message": translateValidationError(fieldErr),
		})
	}

	return &AppError{
		Code:       "VALIDATION_ERROR",
		Message:    "Error de validación en los campos",
		StatusCode: http.StatusBadRequest,
		Details: map[string]interface{}{
			"fields": fieldErrors,
		},
	}
}

func translateFieldName(field string) string {
	fieldMap := map[string]string{
		"amount":             "monto",
		"productid":          "producto",
		"name":               "nombre",
		"email":              "correo",
		"password":           "contraseña",
		"currentpassword":    "contraseña actual",
		"newpassword":        "nueva contraseña",
		"tenantcode":         "organización",
		"tenantname":         "nombre de la organización",
		"code":               "código",
		"annualratebps":      "tasa anual",
		"mincontribution":    "aportación mínima",
		"nowithdrawbonusbps": "bono sin retiro",
		"setupkey":           "clave de instalación",
		"adminemail":         "correo del administrador",
		"adminpassword":      "contraseña del administrador",
		"adminname":          "nombre del administrador",
	}
	if translated, ok := fieldMap[strings.ToLower(field)]; ok {
		return translated
	}
	return field
}

func translateValidationError(fe validator.FieldError) string {
	fieldName := translateFieldName(fe.Field())

	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s es obligatorio", fieldName)
	case "email":
		return "Correo inválido"
	case "min":
		return fmt.Sprintf("%s debe tener al menos %s caracteres", fieldName, fe.Param())
	case "max":
		return fmt.Sprintf("%s debe tener como máximo %s caracteres", fieldName, fe.Param())
	case "gte":
		return fmt.Sprintf("%s debe ser mayor o igual a %s", fieldName, fe.Param())
	case "lte":
		return fmt.Sprintf("%s debe ser menor o igual a %s", fieldName, fe.Param())
	case "gt":
		return fmt.Sprintf("%s debe ser mayor que %s", fieldName, fe.Param())
	case "lt":
		return fmt.Sprintf("%s debe ser menor que %s", fieldName, fe.Param())
	case "len":
		return fmt.Sprintf("%s debe tener exactamente %s caracteres", fieldName, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s debe ser uno de: %s", fieldName, fe.Param())
	case "alphanum":
		return fmt.Sprintf("%s sólo puede contener letras y números", fieldName)
	default:
		return fmt.Sprintf("La validación '%s' falló para %s", fe.Tag(), fieldName)
	}
}
