package lint

import (
	"sort"
	"sync"

	"github.com/tak-dcxi/displaylint/pkg/core"
)

// globalRegistry is the single global registry for all lint rules.
var globalRegistry = &Registry{
	rules:   make(map[string]StylesheetRule),
	aliases: make(map[string]string),
}

// Registry stores registered lint rules for discovery.
type Registry struct {
	mu      sync.RWMutex
	rules   map[string]StylesheetRule // keyed by ID
	aliases map[string]string         // alias -> ID
}

// Register adds a data-driven rule to the global registry.
// Call this from init() functions in rule packages.
func Register(def RuleDef) {
	RegisterStylesheetRule(WrapRuleDef(def))
}

// RegisterStylesheetRule adds a rule and its aliases to the global registry.
func RegisterStylesheetRule(rule StylesheetRule) {
	globalRegistry.mu.Lock()
	defer globalRegistry.mu.Unlock()
	globalRegistry.rules[rule.ID()] = rule
	for _, alias := range rule.Aliases() {
		globalRegistry.aliases[alias] = rule.ID()
	}
}

// Unregister removes a rule and its aliases. Used for testing.
func Unregister(id string) {
	globalRegistry.mu.Lock()
	defer globalRegistry.mu.Unlock()
	delete(globalRegistry.rules, id)
	for alias, target := range globalRegistry.aliases {
		if target == id {
			delete(globalRegistry.aliases, alias)
		}
	}
}

// CanonicalRuleID resolves an alias to its rule ID. Unknown IDs are returned unchanged.
func CanonicalRuleID(id string) string {
	globalRegistry.mu.RLock()
	defer globalRegistry.mu.RUnlock()
	if target, ok := globalRegistry.aliases[id]; ok {
		return target
	}
	return id
}

// GetRuleByID returns a rule by its ID or one of its aliases.
func GetRuleByID(id string) (StylesheetRule, bool) {
	id = CanonicalRuleID(id)
	globalRegistry.mu.RLock()
	defer globalRegistry.mu.RUnlock()
	rule, ok := globalRegistry.rules[id]
	return rule, ok
}

// GetAllStylesheetRules returns all registered rules sorted by ID.
func GetAllStylesheetRules() []StylesheetRule {
	globalRegistry.mu.RLock()
	defer globalRegistry.mu.RUnlock()

	rules := make([]StylesheetRule, 0, len(globalRegistry.rules))
	for _, rule := range globalRegistry.rules {
		rules = append(rules, rule)
	}
	sort.Slice(rules, func(i, j int) bool { return rules[i].ID() < rules[j].ID() })
	return rules
}

// GetRulesByGroup returns rules in a specific group, sorted by ID.
func GetRulesByGroup(group string) []StylesheetRule {
	var rules []StylesheetRule
	for _, rule := range GetAllStylesheetRules() {
		if rule.Group() == group {
			rules = append(rules, rule)
		}
	}
	return rules
}

// AllRules returns metadata for all registered rules, sorted by ID.
func AllRules() []core.RuleInfo {
	all := GetAllStylesheetRules()
	infos := make([]core.RuleInfo, 0, len(all))
	for _, rule := range all {
		infos = append(infos, GetRuleInfo(rule))
	}
	return infos
}

// Clear removes all rules from the registry. Used for testing.
func Clear() {
	globalRegistry.mu.Lock()
	defer globalRegistry.mu.Unlock()
	globalRegistry.rules = make(map[string]StylesheetRule)
	globalRegistry.aliases = make(map[string]string)
}
