// Package links extracts cross-references from document text.
package links

import "regexp"

// Kind classifies a link target.
type Kind string

const (
	KindExternal Kind = "external"
	KindAnchor   Kind = "anchor"
	KindInternal Kind = "internal"
)

// Link is one extracted reference before resolution.
type Link struct {
	Raw  string
	Kind Kind
	Line int // 1-based line in the source document
}

// linkTarget captures the target of [text](target) and ![alt](target)
// references. The target stops at whitespace so optional titles are dropped.
var linkTarget = regexp.MustCompile(`\[[^\]]*\]\(\s*([^)\s]+)[^)]*\)`)

// schemePrefix matches URL-style targets. mailto: and friends count as
// external even without the // part.
var schemePrefix = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9+.-]*:`)

// Extract finds every well-formed reference in text. Malformed or partial
// link markup is skipped rather than reported: over-eager matching would
// produce false positives.
func Extract(text string) []Link {
	var out []Link
	line := 1
	start := 0
	for i := 0; i <= len(text); i++ {
		if i == len(text) || text[i] == '\n' {
			for _, m := range linkTarget.FindAllStringSubmatch(text[start:i], -1) {
				target := m[1]
				if target == "" {
					continue
				}
				out = append(out, Link{Raw: target, Kind: kindOf(target), Line: line})
			}
			line++
			start = i + 1
		}
	}
	return out
}

func kindOf(target string) Kind {
	switch {
	case schemePrefix.MatchString(target):
		return KindExternal
	case target[0] == '#':
		return KindAnchor
	default:
		return KindInternal
	}
}
