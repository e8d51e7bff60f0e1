package apierror

import (
	"bytes"
	"encoding/json"
	"net/http"
	"strings"
	"time"
)

// ErrorPayload is the JSON body of every error response.
type ErrorPayload struct {
	Timestamp        time.Time   `json:"timestamp"`
	HTTPStatus       string      `json:"httpStatus"`
	HTTPStatusCode   int         `json:"httpStatusCode"`
	ErrorCode        Code        `json:"errorCode"`
	Error            string      `json:"error"`
	Message          string      `json:"message"`
	Path             string      `json:"path"`
	ValidationErrors FieldErrors `json:"validationErrors,omitempty"`
}

// NewPayload renders a classification for the request path at time now.
func NewPayload(cl Classification, path string, now time.Time) ErrorPayload {
	return ErrorPayload{
		Timestamp:        now,
		HTTPStatus:       StatusLabel(cl.Status),
		HTTPStatusCode:   cl.Status,
		ErrorCode:        cl.Code,
		Error:            cl.Code.Title(),
		Message:          cl.Message,
		Path:             path,
		ValidationErrors: cl.Fields,
	}
}

// StatusLabel turns 404 into "NOT_FOUND", 429 into "TOO_MANY_REQUESTS" and so on.
func StatusLabel(status int) string {
	text := http.StatusText(status)
	if text == "" {
		return "UNKNOWN"
	}
	return strings.NewReplacer(" ", "_", "-", "_", "'", "").Replace(strings.ToUpper(text))
}

// MarshalJSON encodes the messages as a JSON object whose keys keep insertion order.
func (fe FieldErrors) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, e := range fe {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(e.Field)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(e.Message)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
