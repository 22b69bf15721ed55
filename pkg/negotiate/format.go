package negotiate

import (
	"mime"
	"strings"
)

// Format is a short token naming a representation.
type Format string

const (
	FormatHTML Format = "html"
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
)

// String implements fmt.Stringer.
func (f Format) String() string {
	return string(f)
}

// Valid reports whether f is one of the known format tokens.
func (f Format) Valid() bool {
	switch f {
	case FormatHTML, FormatCSV, FormatJSON:
		return true
	}
	return false
}

// ContentType returns the canonical MIME type for the format.
func (f Format) ContentType() string {
	switch f {
	case FormatHTML:
		return "text/html"
	case FormatCSV:
		return "text/csv"
	case FormatJSON:
		return "application/json"
	}
	return ""
}

// MIMEType pairs a media type with the format it maps to.
type MIMEType struct {
	MediaType string
	Format    Format
}

// MIMETypes is the fixed negotiation table. The order is significant for
// Accept negotiation: on equal quality and specificity the earlier entry wins.
var MIMETypes = []MIMEType{
	{MediaType: "text/html", Format: FormatHTML},
	{MediaType: "text/csv", Format: FormatCSV},
	{MediaType: "application/xhtml+xml", Format: FormatHTML},
	{MediaType: "application/json", Format: FormatJSON},
	{MediaType: "text/javascript", Format: FormatJSON},
}

// Lookup returns the format mapped to mediaType. Parameters such as charset
// are ignored. The boolean is false for media types outside the table.
func Lookup(mediaType string) (Format, bool) {
	mt := mediaTypeOf(mediaType)
	for _, m := range MIMETypes {
		if m.MediaType == mt {
			return m.Format, true
		}
	}
	return "", false
}

// mediaTypeOf strips parameters and normalizes case.
func mediaTypeOf(v string) string {
	if v == "" {
		return ""
	}
	if mt, _, err := mime.ParseMediaType(v); err == nil {
		return mt
	}
	if idx := strings.Index(v, ";"); idx != -1 {
		v = v[:idx]
	}
	return strings.ToLower(strings.TrimSpace(v))
}
