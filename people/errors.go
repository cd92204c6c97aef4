package people

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"unicode/utf8"
)

// ErrInvalidArgument is matched by every *InvalidArgumentError, so callers
// can use errors.Is without caring about the message.
var ErrInvalidArgument = errors.New("invalid argument")

// ErrNoNextPage is returned by PersonPage.NextPage after the last page.
var ErrNoNextPage = errors.New("no next page available")

// Error body keys. Create reports failures under "error", while the
// single-record fetch and delete endpoints use "Error".
const (
	createErrorKey = "error"
	recordErrorKey = "Error"
)

// maxErrorMessage bounds raw bodies copied into a ClientError.
const maxErrorMessage = 1000

// InvalidArgumentError reports caller input rejected before any request
// was sent.
type InvalidArgumentError struct {
	Message string
}

// Error implements the error interface.
func (e *InvalidArgumentError) Error() string {
	return "people: invalid argument: " + e.Message
}

// Is reports whether target is ErrInvalidArgument.
func (e *InvalidArgumentError) Is(target error) bool {
	return target == ErrInvalidArgument
}

func invalidArgument(format string, args ...any) error {
	return &InvalidArgumentError{Message: fmt.Sprintf(format, args...)}
}

// ClientError represents a failure reported by the people API.
type ClientError struct {
	StatusCode int
	Message    string
	URL        string
}

// Error implements the error interface.
func (e *ClientError) Error() string {
	return fmt.Sprintf("people api error: %d - %s at %s", e.StatusCode, e.Message, e.URL)
}

// IsNotFound reports whether err is a ClientError for a 404 response.
func IsNotFound(err error) bool {
	var ce *ClientError
	return errors.As(err, &ce) && ce.StatusCode == http.StatusNotFound
}

// newClientError drains resp and builds a ClientError whose message is the
// string found under key in the JSON body. Bodies that are not JSON objects
// or lack the key are used verbatim, truncated.
func newClientError(resp *http.Response, key string) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 64*1024))
	return &ClientError{
		StatusCode: resp.StatusCode,
		Message:    errorMessage(body, key),
		URL:        responseURL(resp),
	}
}

// notFoundError builds a ClientError with a fixed message, discarding the body.
func notFoundError(resp *http.Response, message string) error {
	_, _ = io.Copy(io.Discard, resp.Body)
	return &ClientError{
		StatusCode: resp.StatusCode,
		Message:    message,
		URL:        responseURL(resp),
	}
}

func errorMessage(body []byte, key string) string {
	var payload map[string]any
	if err := json.Unmarshal(body, &payload); err == nil {
		switch v := payload[key].(type) {
		case string:
			return v
		case nil:
		default:
			return fmt.Sprint(v)
		}
	}

	if len(body) <= maxErrorMessage {
		return string(body)
	}
	cut := maxErrorMessage
	for cut > 0 && !utf8.RuneStart(body[cut]) {
		cut--
	}
	return string(body[:cut]) + "..."
}
