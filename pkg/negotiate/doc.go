// Package negotiate decides which representation a request carries and which
// one the client wants back.
//
// Three formats are known: HTML, CSV and JSON. They are derived from a fixed
// MIME table:
//
//	text/html             -> html
//	text/csv              -> csv
//	application/xhtml+xml -> html
//	application/json      -> json
//	text/javascript       -> json
//
// # Request side
//
// RequestFormat maps the request Content-Type to a format and defaults to HTML.
// RequestContent decodes the body according to that format: JSON bodies become
// a nested any value, everything else is parsed as form data.
//
// # Response side
//
// ResponseFormat first looks for a "format" URL parameter declared in the
// routing table (for example "/entities.{format}") and falls back to Accept
// header negotiation when the path does not name a known format:
//
//	r := chi.NewRouter()
//	r.Get("/entities.{format}", list)
//	r.Get("/entities", list)
//
//	func list(w http.ResponseWriter, r *http.Request) {
//		switch negotiate.ResponseFormat(r, nil) {
//		case negotiate.FormatJSON:
//			// ...
//		case negotiate.FormatCSV:
//			// ...
//		default:
//			// ...
//		}
//	}
//
// When routes is nil the chi routing table attached to the request is used.
// Passing an explicit chi.Routes makes the function usable outside of chi
// handlers, e.g. in tests or other routers' middleware.
//
// An empty Format means the client accepts none of the known types.
package negotiate
