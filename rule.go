package wordeq

import (
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/dlclark/regexp2"
)

// Rule is a single substitution: every non-overlapping match of Pattern is
// replaced by Replacement. Patterns use .NET regular expression syntax, which
// supports zero-width look-ahead and look-behind assertions. Replacement
// templates reference groups with $1, ${1} or ${name}; $& is the whole match
// and $$ is a literal dollar sign.
//
// Rules must be created with NewRule or MustRule. A zero Rule matches nothing.
type Rule struct {
	Name        string
	Pattern     string
	Replacement string

	timeout time.Duration
	re      *regexp2.Regexp
}

// RuleSpec is the uncompiled, serializable form of a Rule.
type RuleSpec struct {
	Name        string `yaml:"name"`
	Pattern     string `yaml:"pattern"`
	Replacement string `yaml:"replacement"`
}

// NewRule compiles pattern and returns a Rule.
func NewRule(name, pattern, replacement string) (Rule, error) {
	if pattern == "" {
		return Rule{}, fmt.Errorf("%w: rule %q", ErrEmptyPattern, name)
	}

	re, err := regexp2.Compile(pattern, regexp2.None)
	if err != nil {
		return Rule{}, fmt.Errorf("%w: rule %q: %v", ErrInvalidPattern, name, err)
	}

	return Rule{
		Name:        name,
		Pattern:     pattern,
		Replacement: replacement,
		re:          re,
	}, nil
}

// MustRule is like NewRule but panics if the pattern does not compile.
// Intended for compiled-in rule tables.
func MustRule(name, pattern, replacement string) Rule {
	r, err := NewRule(name, pattern, replacement)
	if err != nil {
		panic("wordeq: " + err.Error())
	}
	return r
}

// WithMatchTimeout returns a copy of r whose individual match operations give
// up after d. Zero disables the timeout. The receiver is not modified.
func (r Rule) WithMatchTimeout(d time.Duration) Rule {
	if r.re == nil {
		return r
	}

	// Pattern already compiled once, so this cannot fail.
	re := regexp2.MustCompile(r.Pattern, regexp2.None)
	if d > 0 {
		re.MatchTimeout = d
	}

	r.re = re
	r.timeout = d
	return r
}

// MatchTimeout reports the per-match timeout, zero when none is set.
func (r Rule) MatchTimeout() time.Duration {
	return r.timeout
}

// Spec returns the serializable form of r.
func (r Rule) Spec() RuleSpec {
	return RuleSpec{Name: r.Name, Pattern: r.Pattern, Replacement: r.Replacement}
}

// Apply replaces all matches of r in doc. An evaluation failure or input
// that is not valid UTF-8 leaves doc unchanged.
func (r Rule) Apply(doc string) string {
	out, _, err := r.replace(doc)
	if err != nil {
		return doc
	}
	return out
}

// replace runs the global replacement in a single scan and returns the
// result with the number of matches. The engine works on runes, so invalid
// UTF-8 is rejected before it can be rewritten as U+FFFD.
func (r Rule) replace(doc string) (string, int, error) {
	if r.re == nil || doc == "" {
		return doc, 0, nil
	}
	if err := checkEncoding(doc); err != nil {
		return doc, 0, err
	}

	m, err := r.re.FindStringMatch(doc)
	if err != nil || m == nil {
		return doc, 0, err
	}

	text := []rune(doc)
	var b strings.Builder
	b.Grow(len(doc))

	n, prev := 0, 0
	for m != nil {
		b.WriteString(string(text[prev:m.Index]))
		r.expand(&b, m)
		prev = m.Index + m.Length
		n++

		if m, err = r.re.FindNextMatch(m); err != nil {
			return doc, 0, err
		}
	}
	b.WriteString(string(text[prev:]))

	return b.String(), n, nil
}

// expand writes the replacement template for m. Supported references:
// $n and ${n} (longest existing group number wins), ${name}, $& for the
// whole match and $$ for a dollar sign. Anything else is copied literally.
func (r Rule) expand(b *strings.Builder, m *regexp2.Match) {
	tmpl := r.Replacement
	for i := 0; i < len(tmpl); i++ {
		if tmpl[i] != '$' || i+1 == len(tmpl) {
			b.WriteByte(tmpl[i])
			continue
		}

		switch next := tmpl[i+1]; {
		case next == '$':
			b.WriteByte('$')
			i++
		case next == '&':
			b.WriteString(m.String())
			i++
		case next == '{':
			end := strings.IndexByte(tmpl[i+2:], '}')
			if end < 0 {
				b.WriteByte('$')
				continue
			}
			g := groupByRef(m, tmpl[i+2:i+2+end])
			if g == nil {
				b.WriteByte('$')
				continue
			}
			b.WriteString(g.String())
			i += end + 2
		case isDigit(next):
			j := i + 1
			for j < len(tmpl) && isDigit(tmpl[j]) {
				j++
			}
			g, width := longestGroup(m, tmpl[i+1:j])
			if g == nil {
				b.WriteByte('$')
				continue
			}
			b.WriteString(g.String())
			i += width
		default:
			b.WriteByte('$')
		}
	}
}

// groupByRef resolves a ${...} reference by number or name.
func groupByRef(m *regexp2.Match, ref string) *regexp2.Group {
	if ref == "" {
		return nil
	}
	if strings.TrimFunc(ref, func(c rune) bool { return c >= '0' && c <= '9' }) == "" {
		num, err := strconv.Atoi(ref)
		if err != nil {
			return nil
		}
		return m.GroupByNumber(num)
	}
	return m.GroupByName(ref)
}

// longestGroup returns the group named by the longest prefix of digits that
// is an existing group number, and the prefix length.
func longestGroup(m *regexp2.Match, digits string) (*regexp2.Group, int) {
	for w := len(digits); w > 0; w-- {
		num, err := strconv.Atoi(digits[:w])
		if err != nil {
			continue
		}
		if g := m.GroupByNumber(num); g != nil {
			return g, w
		}
	}
	return nil, 0
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

// checkEncoding returns ErrInvalidEncoding with the offset of the first
// invalid byte.
func checkEncoding(doc string) error {
	if utf8.ValidString(doc) {
		return nil
	}
	for i := 0; i < len(doc); {
		c, size := utf8.DecodeRuneInString(doc[i:])
		if c == utf8.RuneError && size == 1 {
			return fmt.Errorf("%w: invalid byte 0x%02x at offset %d", ErrInvalidEncoding, doc[i], i)
		}
		i += size
	}
	return ErrInvalidEncoding
}

// RuleSet is an ordered sequence of rules. Order is part of its meaning:
// each rule runs over the output of the previous one.
type RuleSet []Rule

// CompileRules compiles specs into a RuleSet, preserving order.
func CompileRules(specs []RuleSpec) (RuleSet, error) {
	rules := make(RuleSet, 0, len(specs))
	for i, s := range specs {
		name := s.Name
		if name == "" {
			name = fmt.Sprintf("rule %d", i+1)
		}
		r, err := NewRule(name, s.Pattern, s.Replacement)
		if err != nil {
			return nil, err
		}
		rules = append(rules, r)
	}
	return rules, nil
}

// Apply runs every rule in order over doc and returns the result. Input that
// is not valid UTF-8 is returned unchanged.
func (rs RuleSet) Apply(doc string) string {
	for _, r := range rs {
		doc = r.Apply(doc)
	}
	return doc
}

// WithMatchTimeout returns a copy of rs with d applied to every rule.
func (rs RuleSet) WithMatchTimeout(d time.Duration) RuleSet {
	out := make(RuleSet, len(rs))
	for i, r := range rs {
		out[i] = r.WithMatchTimeout(d)
	}
	return out
}

// Names returns the rule names in order.
func (rs RuleSet) Names() []string {
	names := make([]string, len(rs))
	for i, r := range rs {
		names[i] = r.Name
	}
	return names
}

// Specs returns the serializable form of every rule, in order.
func (rs RuleSet) Specs() []RuleSpec {
	specs := make([]RuleSpec, len(rs))
	for i, r := range rs {
		specs[i] = r.Spec()
	}
	return specs
}

// Clone returns a copy of rs that can be reordered without affecting rs.
func (rs RuleSet) Clone() RuleSet {
	return append(RuleSet(nil), rs...)
}
