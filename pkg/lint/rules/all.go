package rules

// Import all rule subpackages to register them with the global registry.
import (
	_ "github.com/tak-dcxi/displaylint/pkg/lint/rules/display"
)
