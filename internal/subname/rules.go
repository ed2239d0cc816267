package subname

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
	"sync"

	_ "embed"

	"gopkg.in/yaml.v3"
)

//go:embed rules.yaml
var rulesYAML []byte

// CleanupRule rewrites one filename token. Rules are applied in order; an
// earlier rule may produce text matched by a later one.
type CleanupRule struct {
	Pattern *regexp.Regexp
	Replace string
}

type ruleFile struct {
	Rules []struct {
		Pattern string `yaml:"pattern"`
		Replace string `yaml:"replace"`
	} `yaml:"rules"`
	SimplifyLocales []string `yaml:"simplify_locales"`
}

var (
	rulesOnce    sync.Once
	cleanupRules []CleanupRule
	rulesErr     error
)

// CleanupRules returns the ordered rule table: the explicit rewrites from
// rules.yaml followed by one locale-simplification rule per listed locale.
func CleanupRules() ([]CleanupRule, error) {
	rulesOnce.Do(func() {
		var rf ruleFile
		if err := yaml.Unmarshal(rulesYAML, &rf); err != nil {
			rulesErr = fmt.Errorf("failed to parse cleanup rules: %w", err)
			return
		}
		for _, r := range rf.Rules {
			re, err := regexp.Compile(r.Pattern)
			if err != nil {
				rulesErr = fmt.Errorf("invalid cleanup rule %q: %w", r.Pattern, err)
				return
			}
			cleanupRules = append(cleanupRules, CleanupRule{Pattern: re, Replace: r.Replace})
		}
		for _, locale := range rf.SimplifyLocales {
			short, _, _ := strings.Cut(locale, "-")
			cleanupRules = append(cleanupRules, CleanupRule{
				Pattern: regexp.MustCompile(regexp.QuoteMeta(locale)),
				Replace: short,
			})
		}
	})
	return cleanupRules, rulesErr
}

// CleanName applies the full cleanup sequence to a filename (no directory):
// the pt region fixup, the ordered rule table, and finally the numeric
// suffix strip. The caller routes the result through the unique-name
// allocator before renaming.
func CleanName(name string) (string, error) {
	rules, err := CleanupRules()
	if err != nil {
		return name, err
	}

	ext := filepath.Ext(name)
	stem := strings.TrimSuffix(name, ext)

	// "pt" on its own means European Portuguese here
	lower := strings.ToLower(stem)
	if strings.HasSuffix(lower, "pt") && !strings.HasSuffix(lower, "pt-pt") {
		stem += "-PT"
	}

	cleaned := stem + ext
	for _, rule := range rules {
		cleaned = rule.Pattern.ReplaceAllString(cleaned, rule.Replace)
	}

	return StripNumberedSuffix(cleaned), nil
}
