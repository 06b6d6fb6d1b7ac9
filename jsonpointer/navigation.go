package jsonpointer

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"
)

// token is one reference token of a pointer in its escaped form.
type token string

// name returns the token with "~1" and "~0" decoded.
func (t token) name() string {
	if !strings.Contains(string(t), "~") {
		return string(t)
	}
	return strings.NewReplacer("~1", "/", "~0", "~").Replace(string(t))
}

// index returns the array index the token denotes. Leading zeros are not indexes.
func (t token) index() (int, bool) {
	s := string(t)
	if s == "" || (len(s) > 1 && s[0] == '0') {
		return 0, false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return 0, false
		}
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return n, true
}

// tokens splits the pointer into its reference tokens. The root has none.
func (j JSONPointer) tokens() ([]token, error) {
	if j.IsRoot() {
		return nil, nil
	}

	s := string(j)
	if s[0] != '/' {
		return nil, fmt.Errorf("jsonpointer must start with /: %s", s)
	}
	if !utf8.ValidString(s) {
		return nil, fmt.Errorf("jsonpointer is not valid utf-8: %q", s)
	}

	raw := strings.Split(s[1:], "/")
	out := make([]token, 0, len(raw))
	for _, r := range raw {
		if err := checkEscapes(r); err != nil {
			return nil, fmt.Errorf("jsonpointer part must be a valid token: %s: %w", s, err)
		}
		out = append(out, token(r))
	}
	return out, nil
}

// checkEscapes rejects a "~" that is not followed by "0" or "1".
func checkEscapes(s string) error {
	for i := strings.IndexByte(s, '~'); i >= 0; i = strings.IndexByte(s, '~') {
		if i+1 >= len(s) || (s[i+1] != '0' && s[i+1] != '1') {
			return fmt.Errorf("bad escape at offset %d", i)
		}
		s = s[i+2:]
	}
	return nil
}
