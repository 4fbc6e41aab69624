package stylesheet

import (
	"bytes"
	"regexp"
	"strings"

	"golang.org/x/net/html"
)

var (
	wordPattern    = regexp.MustCompile(`[A-Za-z0-9_-]+`)
	simpleSelector = regexp.MustCompile(`([.#]?)(-?[A-Za-z_][A-Za-z0-9_-]*)`)
)

// TokenSet holds the element names, ids, classes and words used by a set of
// content documents.
type TokenSet map[string]struct{}

// NewTokenSet tokenizes every document. Element names are taken from tags;
// attribute values and text contribute every word they contain, so class names
// assembled in inline scripts are still found.
func NewTokenSet(docs ...[]byte) TokenSet {
	set := make(TokenSet)
	for _, doc := range docs {
		set.addDocument(doc)
	}
	return set
}

func (s TokenSet) addDocument(doc []byte) {
	z := html.NewTokenizer(bytes.NewReader(doc))
	for {
		switch z.Next() {
		case html.ErrorToken:
			return
		case html.StartTagToken, html.SelfClosingTagToken:
			name, hasAttr := z.TagName()
			s[strings.ToLower(string(name))] = struct{}{}
			for hasAttr {
				var val []byte
				_, val, hasAttr = z.TagAttr()
				s.addWords(val)
			}
		case html.TextToken, html.CommentToken:
			s.addWords(z.Text())
		}
	}
}

func (s TokenSet) addWords(b []byte) {
	for _, w := range wordPattern.FindAll(b, -1) {
		s[string(w)] = struct{}{}
	}
}

// Has reports whether token occurs in the content.
func (s TokenSet) Has(token string) bool {
	_, ok := s[token]
	return ok
}

// Matches reports whether every class, id and element name in selector occurs
// in the content. Attribute selectors, pseudo-classes and the arguments of
// functional pseudo-classes such as :not() never decide the result, so
// selectors made only of those parts always match.
func (s TokenSet) Matches(selector string) bool {
	sel := strings.ReplaceAll(compound(selector), `\`, "")

	for _, m := range simpleSelector.FindAllStringSubmatch(sel, -1) {
		token := m[2]
		if m[1] == "" {
			token = strings.ToLower(token)
		}
		if !s.Has(token) {
			return false
		}
	}
	return true
}

// SplitSelectors splits a selector list at commas that are outside brackets,
// parentheses and quoted strings.
func SplitSelectors(prelude string) []string {
	var (
		out   []string
		depth int
		quote byte
		start int
	)
	for i := 0; i < len(prelude); i++ {
		c := prelude[i]
		switch {
		case quote != 0:
			if c == '\\' {
				i++
			} else if c == quote {
				quote = 0
			}
		case c == '\\':
			i++
		case c == '"' || c == '\'':
			quote = c
		case c == '(' || c == '[':
			depth++
		case c == ')' || c == ']':
			depth = max(depth-1, 0)
		case c == ',' && depth == 0:
			out = appendSelector(out, prelude[start:i])
			start = i + 1
		}
	}
	return appendSelector(out, prelude[start:])
}

func appendSelector(out []string, sel string) []string {
	if sel = strings.TrimSpace(sel); sel != "" {
		out = append(out, sel)
	}
	return out
}

// compound drops attribute selectors, pseudo-classes, pseudo-elements and
// functional pseudo-class arguments from selector.
func compound(selector string) string {
	var b strings.Builder
	for i := 0; i < len(selector); i++ {
		c := selector[i]
		switch c {
		case '\\':
			b.WriteByte(c)
			if i+1 < len(selector) {
				i++
				b.WriteByte(selector[i])
			}
		case '[':
			i = skipGroup(selector, i, '[', ']')
		case ':':
			j := i + 1
			for j < len(selector) && (selector[j] == ':' || isNameByte(selector[j])) {
				j++
			}
			if j < len(selector) && selector[j] == '(' {
				j = skipGroup(selector, j, '(', ')') + 1
			}
			i = j - 1
			b.WriteByte(' ')
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}

// skipGroup returns the index of the close byte matching the open byte at i,
// or the last index when the group is unterminated.
func skipGroup(s string, i int, open, closing byte) int {
	depth := 0
	var quote byte
	for ; i < len(s); i++ {
		c := s[i]
		switch {
		case quote != 0:
			if c == '\\' {
				i++
			} else if c == quote {
				quote = 0
			}
		case c == '\\':
			i++
		case c == '"' || c == '\'':
			quote = c
		case c == open:
			depth++
		case c == closing:
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return len(s) - 1
}

func isNameByte(c byte) bool {
	return c == '-' || c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}
