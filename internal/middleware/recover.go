package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"go.uber.org/zap"
)

// PanicHandler renders the response for a recovered panic.
type PanicHandler func(w http.ResponseWriter, r *http.Request, err error, stack []byte)

// Recover turns panics into a response produced by onPanic and logs them.
// http.ErrAbortHandler is re-raised so the server can drop the connection.
func Recover(onPanic PanicHandler) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				err, ok := rec.(error)
				if !ok {
					err = fmt.Errorf("%v", rec)
				}
				stack := debug.Stack()
				LoggerFrom(r.Context()).Error("panic recovered", zap.Error(err), zap.ByteString("stack", stack))
				if onPanic == nil {
					http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
					return
				}
				onPanic(w, r, err, stack)
			}()
			next.ServeHTTP(w, r)
		})
	}
}
