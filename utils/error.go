package utils

import (
	"errors"
	"net/http"

	"toolshare/models"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ErrorKind classifies failures so the API surface can pick a status code.
type ErrorKind int

const (
	KindInternal ErrorKind = iota
	KindValidation
	KindAuthentication
	KindAuthorization
	KindNotFound
	KindConflict
)

func (k ErrorKind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindAuthentication:
		return "authentication"
	case KindAuthorization:
		return "authorization"
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	default:
		return "internal"
	}
}

// AppError is the error type returned by services. Status overrides the kind's default code when set.
type AppError struct {
	Kind    ErrorKind
	Status  int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func NewValidationError(msg string) error {
	return &AppError{Kind: KindValidation, Message: msg}
}

func NewAuthenticationError(msg string) error {
	return &AppError{Kind: KindAuthentication, Message: msg}
}

func NewAuthorizationError(msg string) error {
	return &AppError{Kind: KindAuthorization, Message: msg}
}

func NewNotFoundError(msg string) error {
	return &AppError{Kind: KindNotFound, Message: msg}
}

// NewConflictError signals a violated state precondition. It renders as 400.
func NewConflictError(msg string) error {
	return &AppError{Kind: KindConflict, Message: msg}
}

// NewConcurrencyError signals a lost write race. It renders as 409.
func NewConcurrencyError(msg string) error {
	return &AppError{Kind: KindConflict, Status: http.StatusConflict, Message: msg}
}

// NewInternalError wraps a store or collaborator failure. The cause is logged, never returned to clients.
func NewInternalError(msg string, err error) error {
	return &AppError{Kind: KindInternal, Message: msg, Err: err}
}

// KindOf returns the kind of err, or KindInternal for foreign errors.
func KindOf(err error) ErrorKind {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, kind ErrorKind) bool {
	return err != nil && KindOf(err) == kind
}

// StatusFor maps an error to its HTTP status code.
func StatusFor(err error) int {
	var appErr *AppError
	if !errors.As(err, &appErr) {
		return http.StatusInternalServerError
	}
	if appErr.Status != 0 {
		return appErr.Status
	}
	switch appErr.Kind {
	case KindValidation, KindConflict:
		return http.StatusBadRequest
	case KindAuthentication:
		return http.StatusUnauthorized
	case KindAuthorization:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// Respond writes the standard envelope.
func Respond(c *gin.Context, status int, data any, message string) {
	c.JSON(status, models.APIResponse{StatusCode: status, Data: data, Message: message})
}

// RespondError writes err in the standard envelope. Internal causes are logged and replaced by a generic message.
func RespondError(c *gin.Context, err error) {
	status := StatusFor(err)
	logger := GetLogger()
	message := "Server error"

	var appErr *AppError
	if errors.As(err, &appErr) && appErr.Kind != KindInternal {
		message = appErr.Message
	}

	if status >= http.StatusInternalServerError {
		logger.Error("request failed", zap.String("path", c.FullPath()), zap.Error(err))
	} else {
		logger.Warn(message, zap.String("path", c.FullPath()), zap.Int("status", status))
	}
	c.AbortWithStatusJSON(status, models.APIResponse{StatusCode: status, Data: nil, Message: message})
}

// JSONError sends an error envelope with an explicit status.
func JSONError(c *gin.Context, status int, message string) {
	GetLogger().Warn(message, zap.Int("status", status))
	c.AbortWithStatusJSON(status, models.APIResponse{StatusCode: status, Data: nil, Message: message})
}

// ErrorHandler is a middleware that turns panics into a 500 envelope.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				GetLogger().Error("Unhandled panic", zap.Any("error", err))
				c.AbortWithStatusJSON(http.StatusInternalServerError, models.APIResponse{
					StatusCode: http.StatusInternalServerError,
					Data:       nil,
					Message:    "Internal Server Error",
				})
			}
		}()
		c.Next()
	}
}
