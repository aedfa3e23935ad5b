package supabase

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"regexp"
	"strconv"
	"strings"

	"github.com/cotizador/quoting-system/internal/core/domain"
)

// APIError is a non-2xx GoTrue response. Unwrap exposes the matching domain
// sentinel, if any.
type APIError struct {
	Status  int
	Code    string
	Message string
	kind    error
}

func (e *APIError) Error() string {
	return fmt.Sprintf("supabase: %d %s: %s", e.Status, e.Code, e.Message)
}

func (e *APIError) Unwrap() error { return e.kind }

type errorBody struct {
	Error            string `json:"error"`
	ErrorCode        string `json:"error_code"`
	ErrorDescription string `json:"error_description"`
	Msg              string `json:"msg"`
	Message          string `json:"message"`
}

func newAPIError(status int, raw []byte) *APIError {
	var b errorBody
	_ = json.Unmarshal(raw, &b)

	code := b.ErrorCode
	if code == "" {
		code = b.Error
	}
	msg := firstNonEmpty(b.Msg, b.Message, b.ErrorDescription, b.Error, http.StatusText(status))

	return &APIError{Status: status, Code: code, Message: msg, kind: classify(status, code, msg)}
}

// statusPattern matches the errors auth-go returns for non-2xx responses.
var statusPattern = regexp.MustCompile(`(?s)^response status code (\d{3})(?:: (.*))?$`)

// wrapError turns an auth-go error into an *APIError when it carries an HTTP
// status. Transport failures are only wrapped.
func wrapError(op string, err error) error {
	m := statusPattern.FindStringSubmatch(err.Error())
	if m == nil {
		return fmt.Errorf("supabase: %s: %w", op, err)
	}
	status, _ := strconv.Atoi(m[1])
	return newAPIError(status, []byte(m[2]))
}

func classify(status int, code, msg string) error {
	lower := strings.ToLower(msg)
	switch {
	case code == "email_not_confirmed" || strings.Contains(lower, "email not confirmed"):
		return domain.ErrProviderEmailUnconfirmed
	case code == "user_already_exists" || code == "email_exists" || strings.Contains(lower, "already registered"):
		return domain.ErrAlreadyRegistered
	case code == "invalid_credentials" || code == "invalid_grant" || strings.Contains(lower, "invalid login credentials"):
		return domain.ErrProviderRejected
	case code == "session_not_found" || code == "bad_jwt" || code == "refresh_token_not_found" ||
		status == http.StatusUnauthorized || status == http.StatusForbidden:
		return domain.ErrNoSession
	}
	return nil
}

// asSessionError reports any client-side rejection on a token-bearing
// endpoint as domain.ErrNoSession.
func asSessionError(err error) error {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Status < http.StatusInternalServerError {
		apiErr.kind = domain.ErrNoSession
	}
	return err
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
