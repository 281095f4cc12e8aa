package handlers

import (
	"net/http"
	"strings"
)

// ErrorData is the view model for the error boundary.
type ErrorData struct {
	Status   int
	NotFound bool
	Message  string
	Details  string
	Stack    string
}

// BuildErrorData picks the presentation for a failed request. A 404 gets the
// branded not-found page. Other HTTP statuses show their status text, and
// unexpected failures show a generic message. Diagnostic text and stack are
// only exposed when dev is set.
func BuildErrorData(status int, err error, stack []byte, dev bool) ErrorData {
	if status == http.StatusNotFound {
		return ErrorData{
			Status:   status,
			NotFound: true,
			Message:  "Page Not Found",
			Details:  "The page you are looking for does not exist or has been moved.",
		}
	}
	d := ErrorData{
		Status:  status,
		Message: "Oops!",
		Details: "An unexpected error occurred.",
	}
	if err == nil && status != 0 && status != http.StatusInternalServerError {
		d.Message = "Error"
		if text := http.StatusText(status); text != "" {
			d.Details = text
		}
		return d
	}
	if dev && err != nil {
		d.Details = err.Error()
		d.Stack = strings.TrimSpace(string(stack))
	}
	if d.Status == 0 {
		d.Status = http.StatusInternalServerError
	}
	return d
}
