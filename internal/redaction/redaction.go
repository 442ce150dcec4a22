// Package redaction masks sensitive data in host log lines before the
// dashboard serves them. Rules are case-insensitive regular expressions
// kept in the hostdash config file.
package redaction

import (
	"fmt"
	"regexp"
)

// Rule is a named pattern and the text that replaces each match.
type Rule struct {
	Name        string `json:"name"`
	Pattern     string `json:"pattern"`
	Replacement string `json:"replacement"`
}

type compiledRule struct {
	pattern     *regexp.Regexp
	replacement string
}

// Redactor applies a fixed rule set. It is immutable after construction
// and safe to share between requests.
type Redactor struct {
	rules []compiledRule
}

func compile(pattern string) (*regexp.Regexp, error) {
	return regexp.Compile("(?i)" + pattern)
}

// Validate reports whether the rule's pattern compiles.
func Validate(rule Rule) error {
	if _, err := compile(rule.Pattern); err != nil {
		return fmt.Errorf("rule %q: %w", rule.Name, err)
	}
	return nil
}

// NewRedactor compiles rules. Invalid patterns are skipped.
func NewRedactor(rules []Rule) *Redactor {
	r := &Redactor{
		rules: make([]compiledRule, 0, len(rules)),
	}

	for _, rule := range rules {
		pattern, err := compile(rule.Pattern)
		if err != nil {
			continue
		}
		r.rules = append(r.rules, compiledRule{
			pattern:     pattern,
			replacement: rule.Replacement,
		})
	}

	return r
}

// Redact applies every rule to line in order and reports whether any matched.
func (r *Redactor) Redact(line string) (string, bool) {
	if r == nil || len(r.rules) == 0 {
		return line, false
	}

	result := line
	wasRedacted := false

	for _, rule := range r.rules {
		if rule.pattern.MatchString(result) {
			wasRedacted = true
			result = rule.pattern.ReplaceAllString(result, rule.replacement)
		}
	}

	return result, wasRedacted
}

// RedactLines rewrites lines in place and returns how many changed.
func (r *Redactor) RedactLines(lines []string) int {
	changed := 0
	for i, line := range lines {
		if out, ok := r.Redact(line); ok {
			lines[i] = out
			changed++
		}
	}
	return changed
}
