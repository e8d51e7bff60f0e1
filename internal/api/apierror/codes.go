// Package apierror holds the closed error taxonomy exposed by the HTTP API:
// machine codes, the JSON payload and the classifier that maps any error onto
// exactly one taxonomy entry.
package apierror

// Code is a stable machine-readable error code.
type Code string

const (
	CodeValidation       Code = "ERR_VALIDATION"
	CodeInvalidArgument  Code = "ERR_INVALID_ARGUMENT"
	CodeMissingField     Code = "ERR_MISSING_FIELD"
	CodeUserNotFound     Code = "ERR_USER_NOT_FOUND"
	CodeRoleNotFound     Code = "ERR_ROLE_NOT_FOUND"
	CodeNotFound         Code = "ERR_NOT_FOUND"
	CodeMethodNotAllowed Code = "ERR_METHOD_NOT_ALLOWED"
	CodeEmailExists      Code = "ERR_EMAIL_EXISTS"
	CodeUsernameExists   Code = "ERR_USERNAME_EXISTS"
	CodeConflict         Code = "ERR_CONFLICT"
	CodeRateLimited      Code = "ERR_RATE_LIMITED"
	CodeInternal         Code = "ERR_INTERNAL"
	CodeDatabase         Code = "ERR_DATABASE"
)

var titles = map[Code]string{
	CodeValidation:       "Invalid data",
	CodeInvalidArgument:  "Invalid argument",
	CodeMissingField:     "Missing required field",
	CodeUserNotFound:     "User not found",
	CodeRoleNotFound:     "Role not found",
	CodeNotFound:         "Resource not found",
	CodeMethodNotAllowed: "Method not allowed",
	CodeEmailExists:      "Email already in use",
	CodeUsernameExists:   "Username already in use",
	CodeConflict:         "Data conflict",
	CodeRateLimited:      "Too many requests",
	CodeInternal:         "Internal server error",
	CodeDatabase:         "Database error",
}

// Title returns the short human-readable label for c.
func (c Code) Title() string {
	if t, ok := titles[c]; ok {
		return t
	}
	return titles[CodeInternal]
}

func (c Code) String() string { return string(c) }
