package seed

import "strings"

const serviceSuffix = "-service"

// MatchRule maps a service-name keyword to candidate component names, tried in order.
type MatchRule struct {
	Keyword    string   `yaml:"keyword"`
	Components []string `yaml:"components"`
}

// Matcher resolves free-text service names to component names.
// It holds no state beyond its rule table and is safe for concurrent use.
type Matcher struct {
	rules []MatchRule
}

func NewMatcher(rules []MatchRule) *Matcher {
	return &Matcher{rules: rules}
}

// Resolve returns the component owning serviceName, or false when none of the
// lookups hits a component for which exists returns true. First match wins:
//  1. the name without its "-service" suffix
//  2. the same with hyphens replaced by underscores
//  3. the full, unmodified name
//  4. the first keyword rule contained in the name that names an existing component
func (m *Matcher) Resolve(serviceName string, exists func(component string) bool) (string, bool) {
	stripped := strings.TrimSuffix(serviceName, serviceSuffix)
	if exists(stripped) {
		return stripped, true
	}
	if underscored := strings.ReplaceAll(stripped, "-", "_"); exists(underscored) {
		return underscored, true
	}
	if exists(serviceName) {
		return serviceName, true
	}
	for _, rule := range m.rules {
		if !strings.Contains(serviceName, rule.Keyword) {
			continue
		}
		for _, candidate := range rule.Components {
			if exists(candidate) {
				return candidate, true
			}
		}
	}
	return "", false
}

// ResolveIn is Resolve against a set of component names.
func (m *Matcher) ResolveIn(serviceName string, components map[string]bool) (string, bool) {
	return m.Resolve(serviceName, func(c string) bool { return components[c] })
}
