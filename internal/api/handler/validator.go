package handler

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/squartrbnb/user-service/internal/api/apierror"
)

// DateLayout is the wire format of dateNaissance.
const DateLayout = "2006-01-02"

// passwordSpecials is the set of characters accepted as "special" in a password.
const passwordSpecials = "@#$%^&+=!?"

var (
	hasDigit   = regexp.MustCompile(`[0-9]`)
	hasLower   = regexp.MustCompile(`[a-z]`)
	hasUpper   = regexp.MustCompile(`[A-Z]`)
	hasSpecial = regexp.MustCompile(`[` + regexp.QuoteMeta(passwordSpecials) + `]`)
)

// echoValidator wraps go-playground/validator so Echo can call c.Validate(req).
type echoValidator struct {
	v *validator.Validate
}

// NewValidator returns an echoValidator ready to be assigned to echo.Echo.Validator.
func NewValidator() *echoValidator {
	return newValidator(time.Now)
}

func newValidator(now func() time.Time) *echoValidator {
	v := validator.New()

	// Report fields under their JSON names so messages match the request body.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		if name == "" {
			return f.Name
		}
		return name
	})

	_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		field := fl.Field()
		if field.Kind() != reflect.String {
			return false
		}
		return strings.TrimSpace(field.String()) != ""
	})

	_ = v.RegisterValidation("past", func(fl validator.FieldLevel) bool {
		field := fl.Field()
		if field.Kind() != reflect.String {
			return false
		}
		d, err := time.Parse(DateLayout, field.String())
		if err != nil {
			return false
		}
		y, m, day := now().UTC().Date()
		return d.Before(time.Date(y, m, day, 0, 0, 0, 0, time.UTC))
	})

	_ = v.RegisterValidation("strongpassword", func(fl validator.FieldLevel) bool {
		field := fl.Field()
		if field.Kind() != reflect.String {
			return false
		}
		s := field.String()
		return hasDigit.MatchString(s) && hasLower.MatchString(s) &&
			hasUpper.MatchString(s) && hasSpecial.MatchString(s)
	})

	// maxbytes bounds the UTF-8 length; max counts runes.
	_ = v.RegisterValidation("maxbytes", func(fl validator.FieldLevel) bool {
		field := fl.Field()
		if field.Kind() != reflect.String {
			return false
		}
		limit, err := strconv.Atoi(fl.Param())
		if err != nil {
			return false
		}
		return len(field.String()) <= limit
	})

	return &echoValidator{v: v}
}

// Validate satisfies the echo.Validator interface. Field failures are returned
// as an *apierror.ValidationError in struct order.
func (ev *echoValidator) Validate(i any) error {
	if err := ev.v.Struct(i); err != nil {
		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			out := &apierror.ValidationError{}
			for _, fe := range ve {
				out.Fields.Add(fe.Field(), fieldError(fe))
			}
			return out
		}
		return err
	}
	return nil
}

// fieldError converts a single ValidationError into a human-readable message.
func fieldError(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "notblank":
		return "must not be blank"
	case "email":
		return "must be a well-formed email address"
	case "min":
		return fmt.Sprintf("must be at least %s characters", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	case "maxbytes":
		return fmt.Sprintf("must be at most %s bytes", fe.Param())
	case "gt":
		return fmt.Sprintf("must be greater than %s", fe.Param())
	case "datetime":
		return "must be a date in format yyyy-MM-dd"
	case "past":
		return "must be a date in the past"
	case "strongpassword":
		return "must contain at least one digit, one lowercase letter, one uppercase letter and one special character (" + passwordSpecials + ")"
	default:
		return fmt.Sprintf("failed validation (%s)", fe.Tag())
	}
}
