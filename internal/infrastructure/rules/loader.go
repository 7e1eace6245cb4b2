// Package rules loads classification rule overrides from YAML.
package rules

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/avolkov/dirscope/internal/core/domain"
)

// Load returns the built-in rule set, optionally overlaid with the YAML file
// at path. An empty path means defaults only. Extension overrides merge into
// the default table; a non-empty subjects list replaces the default subjects
// wholesale, since rule precedence follows slice order.
func Load(path string) (domain.RuleSet, error) {
	ruleSet := domain.DefaultRuleSet()
	if path == "" {
		return ruleSet, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return domain.RuleSet{}, fmt.Errorf("read rules file: %w", err)
	}

	var override domain.RuleSet
	if err := yaml.Unmarshal(raw, &override); err != nil {
		return domain.RuleSet{}, fmt.Errorf("parse rules file: %w", err)
	}

	for ext, category := range override.Extensions {
		ruleSet.Extensions[strings.TrimPrefix(strings.ToLower(ext), ".")] = category
	}
	if len(override.Subjects) > 0 {
		ruleSet.Subjects = override.Subjects
	}
	return ruleSet, nil
}
