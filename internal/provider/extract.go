package provider

import "strings"

// extractJSON returns the first complete JSON object in a model reply. Replies
// often wrap the object in a Markdown fence or surround it with prose.
func extractJSON(reply string) (string, bool) {
	if body, ok := fenced(reply); ok {
		if obj, ok := firstObject(body); ok {
			return obj, true
		}
	}
	return firstObject(reply)
}

// fenced returns the body of the first ``` block.
func fenced(s string) (string, bool) {
	start := strings.Index(s, "```")
	if start < 0 {
		return "", false
	}
	rest := s[start+3:]

	// Drop the info string, e.g. "json".
	nl := strings.IndexByte(rest, '\n')
	if nl < 0 {
		return "", false
	}
	rest = rest[nl+1:]

	end := strings.Index(rest, "```")
	if end < 0 {
		return rest, true
	}
	return rest[:end], true
}

// firstObject scans for a balanced {...} starting at the first '{', honoring
// JSON string quoting.
func firstObject(s string) (string, bool) {
	start := strings.IndexByte(s, '{')
	if start < 0 {
		return "", false
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		c := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}

		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return s[start : i+1], true
			}
		}
	}
	return "", false
}
