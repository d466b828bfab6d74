// Package translate turns natural-language requests into shell command
// lines. The built-in translator is rule-based and fully offline; the
// Translator interface leaves room for model-backed implementations.
package translate

import (
	"context"
	"errors"
	"regexp"
	"strings"
)

// ErrNoMatch is returned when no rule understands the request.
var ErrNoMatch = errors.New("request not understood")

// Translator converts a natural-language request into command lines.
type Translator interface {
	Translate(ctx context.Context, text string) ([]string, error)
}

type rule struct {
	re          *regexp.Regexp
	replacement string
	expand      bool // replacement references capture groups
}

// RuleTranslator matches requests against an ordered list of patterns.
// The first matching rule wins.
type RuleTranslator struct {
	rules []rule
}

// NewRuleTranslator creates the default rule set.
func NewRuleTranslator() *RuleTranslator {
	return &RuleTranslator{rules: []rule{
		{re: regexp.MustCompile(`list\s+all|show\s+all|ls\s+all`), replacement: "ls -a"},
		{re: regexp.MustCompile(`list\s+detailed?|ls\s+detailed?`), replacement: "ls -l"},
		{re: regexp.MustCompile(`list\s+files?|show\s+files?|^ls$`), replacement: "ls"},
		{re: regexp.MustCompile(`where\s+am\s+i|current\s+dir|pwd`), replacement: "pwd"},
		{re: regexp.MustCompile(`go\s+to\s+(.+)|change\s+to\s+(.+)|cd\s+(.+)`), replacement: "cd ${1}${2}${3}", expand: true},
		{re: regexp.MustCompile(`create\s+(?:a\s+)?(?:new\s+)?folder\s+(?:called\s+)?(.+)`), replacement: "mkdir ${1}", expand: true},
		{re: regexp.MustCompile(`make\s+(?:a\s+)?(?:new\s+)?(?:dir|directory)\s+(?:called\s+)?(.+)`), replacement: "mkdir ${1}", expand: true},
		{re: regexp.MustCompile(`create\s+(?:a\s+)?(?:new\s+)?directory\s+(?:called\s+)?(.+)`), replacement: "mkdir ${1}", expand: true},
		{re: regexp.MustCompile(`mkdir\s+(.+)`), replacement: "mkdir ${1}", expand: true},
		{re: regexp.MustCompile(`delete\s+(.+)|remove\s+(.+)|rm\s+(.+)`), replacement: "rm ${1}${2}${3}", expand: true},
		{re: regexp.MustCompile(`system\s+info|monitor|show\s+stats`), replacement: "monitor"},
		{re: regexp.MustCompile(`trash|recycle\s+bin`), replacement: "trash"},
		{re: regexp.MustCompile(`help|show\s+help`), replacement: "help"},
		{re: regexp.MustCompile(`exit|quit`), replacement: "exit"},
	}}
}

// Translate maps text to a single command line through the rule list.
func (t *RuleTranslator) Translate(ctx context.Context, text string) ([]string, error) {
	lower := strings.ToLower(strings.TrimSpace(text))
	if lower == "" {
		return nil, ErrNoMatch
	}

	for _, r := range t.rules {
		if !r.re.MatchString(lower) {
			continue
		}
		cmd := r.replacement
		if r.expand {
			cmd = r.re.ReplaceAllString(lower, r.replacement)
		}
		return []string{strings.TrimSpace(cmd)}, nil
	}
	return nil, ErrNoMatch
}
