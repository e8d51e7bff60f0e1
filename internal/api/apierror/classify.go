package apierror

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/squartrbnb/user-service/internal/core/domain"
)

const (
	msgValidation = "the submitted data is invalid, see validationErrors for details"
	msgMalformed  = "the request body is invalid or malformed"
	msgIntegrity  = "an integrity constraint was violated"
	msgInternal   = "an unexpected error occurred, please retry or contact support"
	msgDatabase   = "the data store is currently unavailable"
)

// Classification is the taxonomy entry chosen for an error.
type Classification struct {
	Status  int
	Code    Code
	Message string
	Fields  FieldErrors
}

// Classify maps err onto exactly one taxonomy entry. It is pure: no logging,
// no I/O. 5xx classifications never carry the underlying cause in Message.
func Classify(err error) Classification {
	var (
		ve       *ValidationError
		malform  *MalformedBodyError
		missing  *MissingParameterError
		mismatch *TypeMismatchError
		invalid  *domain.InvalidArgumentError
		notFound *domain.NotFoundError
		conflict *domain.ConflictError
		cfg      *domain.ConfigurationError
		he       *echo.HTTPError
	)

	switch {
	case err == nil:
		return Classification{Status: http.StatusInternalServerError, Code: CodeInternal, Message: msgInternal}

	case errors.As(err, &ve):
		return Classification{Status: http.StatusBadRequest, Code: CodeValidation, Message: msgValidation, Fields: ve.Fields}
	case errors.As(err, &malform):
		return Classification{Status: http.StatusBadRequest, Code: CodeInvalidArgument, Message: msgMalformed}
	case errors.As(err, &missing):
		return Classification{Status: http.StatusBadRequest, Code: CodeMissingField, Message: missing.Error()}
	case errors.As(err, &mismatch):
		return Classification{Status: http.StatusBadRequest, Code: CodeInvalidArgument, Message: mismatch.Error()}
	case errors.As(err, &invalid):
		return Classification{Status: http.StatusBadRequest, Code: CodeInvalidArgument, Message: invalid.Error()}

	case errors.As(err, &notFound):
		code := CodeNotFound
		switch notFound.Resource {
		case domain.ResourceUser:
			code = CodeUserNotFound
		case domain.ResourceRole:
			code = CodeRoleNotFound
		}
		return Classification{Status: http.StatusNotFound, Code: code, Message: notFound.Error()}

	case errors.As(err, &conflict):
		code := CodeConflict
		switch conflict.Field {
		case domain.ConflictEmail:
			code = CodeEmailExists
		case domain.ConflictUsername:
			code = CodeUsernameExists
		}
		return Classification{Status: http.StatusConflict, Code: code, Message: conflict.Error()}
	case errors.Is(err, domain.ErrDuplicateKey):
		return Classification{Status: http.StatusConflict, Code: CodeConflict, Message: msgIntegrity}

	case errors.As(err, &cfg):
		return Classification{Status: http.StatusInternalServerError, Code: CodeInternal, Message: msgInternal}
	case errors.Is(err, domain.ErrRecordNotFound):
		return Classification{Status: http.StatusNotFound, Code: CodeNotFound, Message: "resource not found"}
	case errors.Is(err, domain.ErrStoreUnavailable), errors.Is(err, context.DeadlineExceeded):
		return Classification{Status: http.StatusInternalServerError, Code: CodeDatabase, Message: msgDatabase}

	case errors.As(err, &he):
		return classifyHTTPError(he)
	}

	return Classification{Status: http.StatusInternalServerError, Code: CodeInternal, Message: msgInternal}
}

// classifyHTTPError covers errors raised by echo itself: routing, binding and
// middleware rejections.
func classifyHTTPError(he *echo.HTTPError) Classification {
	msg := fmt.Sprintf("%v", he.Message)

	switch he.Code {
	case http.StatusNotFound:
		return Classification{Status: he.Code, Code: CodeNotFound, Message: "the requested endpoint does not exist"}
	case http.StatusMethodNotAllowed:
		return Classification{Status: he.Code, Code: CodeMethodNotAllowed, Message: "the HTTP method is not supported on this route"}
	case http.StatusTooManyRequests:
		return Classification{Status: he.Code, Code: CodeRateLimited, Message: msg}
	case http.StatusBadRequest:
		return Classification{Status: he.Code, Code: CodeInvalidArgument, Message: msg}
	}

	if he.Code >= 400 && he.Code < 500 {
		return Classification{Status: he.Code, Code: CodeInvalidArgument, Message: msg}
	}
	return Classification{Status: http.StatusInternalServerError, Code: CodeInternal, Message: msgInternal}
}
