// Package handler provides type-safe HTTP request handling and the response
// builders used to represent resources as HTML, JSON or CSV.
//
// # Core Concepts
//
// Handlers are generic functions that receive a Context and a bound request
// value and return a Response. Wrap turns them into http.HandlerFunc:
//
//	func showEntity(ctx handler.Context, req ShowRequest) handler.Response {
//		e, err := store.Get(ctx, req.ID)
//		if err != nil {
//			return handler.Error(err)
//		}
//		return handler.JSON(e)
//	}
//
//	r.Get("/entities/{id}", handler.Wrap(showEntity))
//
// # Response Types
//
//   - JSON renders values through pkg/jsonenc and wraps the body as JSONP
//     when the request has a callback query parameter.
//   - CSV streams a csvstream.Source as an attachment, flushing each row.
//   - HTML renders a templ component.
//   - Empty, EmptyWithStatus, NotModified and Cached cover bodiless replies
//     and conditional GET handling with pkg/etag.
//   - Represent picks HTML, JSON or CSV using pkg/negotiate.
//
// # Decorators
//
// Decorators wrap typed handlers. CORS applies a cors.Policy:
//
//	policy := cors.New(cors.WithOrigins("https://app.example.com"))
//	r.Get("/entities", handler.Wrap(list,
//		handler.WithDecorators(handler.CORS[handler.Context, ListRequest](policy)),
//	))
//
// # Error Handling
//
// Errors returned while binding or rendering go to the configured
// ErrorHandler. NewErrorHandler logs them and answers with a JSON body, an
// HTML error page or plain text, depending on the negotiated format.
// HTTPError values carry their own status code.
package handler
