package negotiate

import (
	"strconv"
	"strings"
)

type acceptRange struct {
	mediaType string
	quality   float64
}

// parseAccept splits an Accept header into media ranges with their quality.
// Malformed q values count as 1, out of range values are clamped.
func parseAccept(header string) []acceptRange {
	if strings.TrimSpace(header) == "" {
		return nil
	}

	parts := strings.Split(header, ",")
	ranges := make([]acceptRange, 0, len(parts))
	for _, part := range parts {
		fields := strings.Split(part, ";")
		mt := strings.ToLower(strings.TrimSpace(fields[0]))
		if mt == "" {
			continue
		}
		if mt == "*" {
			mt = "*/*"
		}

		q := 1.0
		for _, param := range fields[1:] {
			k, v, ok := strings.Cut(strings.TrimSpace(param), "=")
			if !ok || strings.TrimSpace(strings.ToLower(k)) != "q" {
				continue
			}
			if parsed, err := strconv.ParseFloat(strings.TrimSpace(v), 64); err == nil {
				q = min(max(parsed, 0), 1)
			}
		}
		ranges = append(ranges, acceptRange{mediaType: mt, quality: q})
	}
	return ranges
}

// specificity ranks concrete types above wildcards: text/html > text/* > */*.
func specificity(mediaType string) int {
	typ, sub, _ := strings.Cut(mediaType, "/")
	score := 0
	if typ != "*" {
		score += 2
	}
	if sub != "*" {
		score++
	}
	return score
}

func rangeMatches(offer, mediaRange string) bool {
	if mediaRange == "*/*" || mediaRange == offer {
		return true
	}
	rt, rs, _ := strings.Cut(mediaRange, "/")
	ot, _, _ := strings.Cut(offer, "/")
	return rs == "*" && rt == ot
}

// bestMatch picks the offer the client prefers most. Higher quality wins;
// on equal quality the more specific media range wins; remaining ties go to
// the offer listed first. Ranges with q=0 never match. An empty string is
// returned when nothing is acceptable.
func bestMatch(header string, offers []string) string {
	ranges := parseAccept(header)
	if len(ranges) == 0 {
		return ""
	}

	result := ""
	bestQuality := -1.0
	bestSpecificity := -1
	for _, offer := range offers {
		for _, rng := range ranges {
			if rng.quality <= 0 || rng.quality < bestQuality {
				continue
			}
			specific := specificity(rng.mediaType)
			if rng.quality > bestQuality || specific > bestSpecificity {
				if rangeMatches(offer, rng.mediaType) {
					bestQuality = rng.quality
					bestSpecificity = specific
					result = offer
				}
			}
		}
	}
	return result
}
