package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/httpkit/pkg/negotiate"
)

// Representations holds lazily built responses per output format.
// Nil builders mean the format is not offered.
type Representations struct {
	HTML func() Response
	JSON func() Response
	CSV  func() Response

	// Routes is used for path suffix detection. When nil the routing table
	// attached to the request by chi is used.
	Routes chi.Routes
}

func (rs Representations) pick(f negotiate.Format) func() Response {
	switch f {
	case negotiate.FormatHTML:
		return rs.HTML
	case negotiate.FormatJSON:
		return rs.JSON
	case negotiate.FormatCSV:
		return rs.CSV
	}
	// No preference: html first, then json.
	if rs.HTML != nil {
		return rs.HTML
	}
	return rs.JSON
}

// Represent renders the representation chosen by negotiate.ResponseFormat.
// A format the resource does not offer results in ErrNotAcceptable.
//
//	return handler.Represent(handler.Representations{
//		HTML: func() handler.Response { return handler.HTML(views.Entity(e)) },
//		JSON: func() handler.Response { return handler.JSON(e) },
//	})
func Represent(rs Representations) Response {
	return representResponse{rs}
}

type representResponse struct {
	rs Representations
}

func (rr representResponse) Render(w http.ResponseWriter, r *http.Request) error {
	build := rr.rs.pick(negotiate.ResponseFormat(r, rr.rs.Routes))
	if build == nil {
		return ErrNotAcceptable
	}
	resp := build()
	if resp == nil {
		return ErrNilResponse
	}
	w.Header().Add("Vary", "Accept")
	return resp.Render(w, r)
}
