// Package cors attaches Access-Control-* headers to responses.
//
// A Policy is built once from functional options and applied as ordinary
// net/http middleware:
//
//	r := chi.NewRouter()
//	r.Use(cors.Middleware(
//		cors.WithOrigins("https://app.example.com"),
//		cors.WithHeaders("content-type", "x-request-id"),
//		cors.WithMaxAge(time.Hour),
//	))
//
// For every response the policy sets Access-Control-Allow-Origin,
// Access-Control-Allow-Methods and Access-Control-Max-Age, plus
// Access-Control-Allow-Headers when headers were configured. The headers are
// injected when the wrapped handler writes its status line, so they override
// anything the handler set itself.
//
// # OPTIONS requests
//
// With automatic options enabled (the default) an OPTIONS request never
// reaches the wrapped handler. The policy answers it with an empty 200
// response whose Allow header lists the methods the route accepts. Those
// methods come from a MethodResolver; the default one probes the chi routing
// table attached to the request, see ChiMethods.
//
// When no methods are configured, Access-Control-Allow-Methods is derived
// per request from the same resolver.
//
// # Non-OPTIONS requests
//
// With WithAttachToAll(false) the headers are only added to OPTIONS
// responses and all other responses pass through untouched.
package cors
