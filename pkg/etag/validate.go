package etag

import (
	"net/http"
	"strings"
	"time"
)

// Result is the outcome of a cache validation. When NotModified is false the
// resource must be rendered; in both cases ETag and Modified are the
// validators to send back.
type Result struct {
	ETag        string
	Modified    time.Time
	NotModified bool
}

// Err returns ErrNotModified for not modified results and nil otherwise.
func (r Result) Err() error {
	if r.NotModified {
		return ErrNotModified
	}
	return nil
}

// Apply sets the ETag and, when known, Last-Modified response headers.
func (r Result) Apply(h http.Header) {
	if r.ETag != "" {
		h.Set("ETag", Quote(r.ETag))
	}
	if !r.Modified.IsZero() {
		h.Set("Last-Modified", r.Modified.UTC().Format(http.TimeFormat))
	}
}

// Validate computes the validators for key and checks them against the
// conditional request headers. Non-GET requests are never short-circuited.
func Validate(r *http.Request, key Key) Result {
	res := Result{
		ETag:     Compute(key),
		Modified: key.Modified(),
	}
	if r.Method != http.MethodGet {
		return res
	}

	if !IsModified(r.Header, res.ETag, res.Modified) {
		res.NotModified = true
		return res
	}

	// Exact comparison of the raw header, independent of list parsing.
	if inm := strings.TrimSpace(r.Header.Get("If-None-Match")); inm != "" {
		if inm == res.ETag || inm == Quote(res.ETag) {
			res.NotModified = true
		}
	}
	return res
}

// IsModified reports whether the resource identified by tag and modified
// changed compared to the client's copy described by h.
//
// If-Modified-Since marks the resource unchanged when modified, truncated to
// seconds, is not after it. If-None-Match, when present, takes precedence and
// uses weak comparison; "*" matches any tag.
func IsModified(h http.Header, tag string, modified time.Time) bool {
	unmodified := false

	if ims := h.Get("If-Modified-Since"); ims != "" && !modified.IsZero() {
		if since, err := http.ParseTime(ims); err == nil {
			if !modified.Truncate(time.Second).After(since) {
				unmodified = true
			}
		}
	}

	if tag != "" {
		if tags := parseTags(h.Get("If-None-Match")); len(tags) > 0 {
			unmodified = containsWeak(tags, Unquote(tag))
		}
	}

	return !unmodified
}

// Quote wraps tag in double quotes unless it already is a quoted or weak tag.
func Quote(tag string) string {
	if strings.HasPrefix(tag, `"`) || strings.HasPrefix(tag, "W/") {
		return tag
	}
	return `"` + tag + `"`
}

// Unquote strips the weak prefix and surrounding quotes.
func Unquote(tag string) string {
	tag = strings.TrimSpace(tag)
	tag = strings.TrimPrefix(tag, "W/")
	if len(tag) >= 2 && strings.HasPrefix(tag, `"`) && strings.HasSuffix(tag, `"`) {
		tag = tag[1 : len(tag)-1]
	}
	return tag
}

// parseTags splits an If-None-Match value into opaque tags.
func parseTags(header string) []string {
	header = strings.TrimSpace(header)
	if header == "" {
		return nil
	}
	var tags []string
	for part := range strings.SplitSeq(header, ",") {
		if t := strings.TrimSpace(part); t != "" {
			if t == "*" {
				tags = append(tags, t)
				continue
			}
			tags = append(tags, Unquote(t))
		}
	}
	return tags
}

func containsWeak(tags []string, tag string) bool {
	for _, t := range tags {
		if t == "*" || t == tag {
			return true
		}
	}
	return false
}
