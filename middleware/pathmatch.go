package middleware

import (
	"path"
	"strings"
)

// SimpleMatch reports whether s matches pattern, where "*" stands for any
// run of characters, slashes included. "/css/*" matches "/css/a/b.css".
func SimpleMatch(pattern, s string) bool {
	if pattern == "" {
		return s == ""
	}

	head, tail, found := strings.Cut(pattern, "*")
	if !found {
		return pattern == s
	}
	if !strings.HasPrefix(s, head) {
		return false
	}
	rest := s[len(head):]
	if tail == "" {
		return true
	}
	for i := 0; i <= len(rest); i++ {
		if SimpleMatch(tail, rest[i:]) {
			return true
		}
	}
	return false
}

// SimpleMatchAny reports whether s matches any of patterns.
func SimpleMatchAny(patterns []string, s string) bool {
	for _, p := range patterns {
		if SimpleMatch(p, s) {
			return true
		}
	}
	return false
}

// PathMatch matches a URL path against a segment pattern: "*" and "?" work
// inside one segment (see path.Match) and a "**" segment spans any number
// of segments. "/css/**" matches "/css" and "/css/a/b.css"; "/*.ico"
// matches "/favicon.ico" only.
func PathMatch(pattern, urlPath string) bool {
	return matchSegments(split(pattern), split(urlPath))
}

// PathMatchAny reports whether urlPath matches any of patterns.
func PathMatchAny(patterns []string, urlPath string) bool {
	for _, p := range patterns {
		if PathMatch(p, urlPath) {
			return true
		}
	}
	return false
}

func split(p string) []string {
	p = strings.Trim(p, "/")
	if p == "" {
		return nil
	}
	return strings.Split(p, "/")
}

func matchSegments(pattern, segs []string) bool {
	for len(pattern) > 0 {
		if pattern[0] == "**" {
			rest := pattern[1:]
			for i := 0; i <= len(segs); i++ {
				if matchSegments(rest, segs[i:]) {
					return true
				}
			}
			return false
		}
		if len(segs) == 0 {
			return false
		}
		if ok, err := path.Match(pattern[0], segs[0]); err != nil || !ok {
			return false
		}
		pattern, segs = pattern[1:], segs[1:]
	}
	return len(segs) == 0
}
