package http

import (
	"fmt"
	"log/slog"
	"runtime/debug"
)

type Middleware func(next Handler) Handler

// Recover turns a panicking handler into a 500 so a single bad request never
// takes the connection goroutine, or the process, down with it.
func Recover() Middleware {
	return func(next Handler) Handler {
		return func(req *Request) (res *Response, err error) {
			defer func() {
				if recovered := recover(); recovered != nil {
					slog.Error("handler panic",
						"method", req.Method.String(),
						"target", req.Target,
						"panic", fmt.Sprint(recovered),
						"stack", string(debug.Stack()),
					)

					res, err = nil, AsResponseError(InternalServerError())
				}
			}()

			return next(req)
		}
	}
}
