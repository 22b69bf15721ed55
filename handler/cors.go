package handler

import (
	"net/http"

	"github.com/dmitrymomot/httpkit/pkg/cors"
)

// CORS decorates a handler with a CORS policy. OPTIONS requests are answered
// by the policy when automatic options are enabled; every other response
// gets the policy headers right before its status line is written.
func CORS[C Context, R any](policy *cors.Policy) Decorator[C, R] {
	return func(next HandlerFunc[C, R]) HandlerFunc[C, R] {
		return func(ctx C, req R) Response {
			if policy.AutomaticOptions() && ctx.Request().Method == http.MethodOptions {
				return corsOptions{policy: policy}
			}
			resp := next(ctx, req)
			if resp == nil {
				return nil
			}
			return corsResponse{policy: policy, next: resp}
		}
	}
}

type corsOptions struct {
	policy *cors.Policy
}

func (o corsOptions) Render(w http.ResponseWriter, r *http.Request) error {
	o.policy.ServeOptions(w, r)
	return nil
}

type corsResponse struct {
	policy *cors.Policy
	next   Response
}

func (c corsResponse) Render(w http.ResponseWriter, r *http.Request) error {
	cw := c.policy.Writer(w, r)
	if err := c.next.Render(cw, r); err != nil {
		// Error responses are written to w directly; keep them cross-origin readable.
		c.policy.Apply(w.Header(), r)
		return err
	}
	cw.Finish()
	return nil
}
