// Package text applies ordered literal replacement rules to in-memory text.
package text

import (
	"strings"

	"gitlab.com/tozd/go/errors"
)

// 🔄 ReplacementRule is an exact-match substring pair
type ReplacementRule struct {
	FromText string
	ToText   string
}

// 📝 Result holds the outcome of applying a rule table to some content
type Result struct {
	Content          string // Content after every rule was applied
	Modified         bool   // Whether Content differs from the input
	ReplacementCount int    // Occurrences replaced across all rules
}

// ApplyRules applies rules in order. Each rule scans the output of the rule
// before it, so a rule may match text that an earlier rule produced.
func ApplyRules(content string, rules []ReplacementRule) Result {
	current := content
	count := 0

	for _, rule := range rules {
		// an empty match would insert ToText between every rune
		if rule.FromText == "" {
			continue
		}

		n := strings.Count(current, rule.FromText)
		if n == 0 {
			continue
		}

		count += n
		current = strings.ReplaceAll(current, rule.FromText, rule.ToText)
	}

	return Result{
		Content:          current,
		Modified:         current != content,
		ReplacementCount: count,
	}
}

// ValidateRules checks that every rule has something to match
func ValidateRules(rules []ReplacementRule) error {
	for i, rule := range rules {
		if rule.FromText == "" {
			return errors.Errorf("rule %d: from_text is required", i)
		}
	}
	return nil
}
