// Package steps describes the stages of a keyword analysis and their ordering.
package steps

import (
	"fmt"
	"strings"
)

// Step names, in execution order
const (
	Suggest  = "suggest"
	Estimate = "estimate"
	Filter   = "filter"
	Report   = "report"
	Complete = "complete"
)

// Step categories
const (
	CategoryDiscovery = "discovery"
	CategoryScoring   = "scoring"
	CategoryWriting   = "writing"
	CategoryLifecycle = "lifecycle"
)

// StepDefinition defines metadata for a pipeline step
type StepDefinition struct {
	Name         string
	Category     string
	Dependencies []string
}

// StepRegistry holds all step definitions
var StepRegistry = map[string]StepDefinition{
	Suggest: {
		Name:         Suggest,
		Category:     CategoryDiscovery,
		Dependencies: []string{},
	},
	Estimate: {
		Name:         Estimate,
		Category:     CategoryScoring,
		Dependencies: []string{Suggest},
	},
	Filter: {
		Name:         Filter,
		Category:     CategoryScoring,
		Dependencies: []string{Estimate},
	},
	Report: {
		Name:         Report,
		Category:     CategoryWriting,
		Dependencies: []string{Filter},
	},
	Complete: {
		Name:         Complete,
		Category:     CategoryLifecycle,
		Dependencies: []string{},
	},
}

// Category returns the category of a step, or "" when unknown.
func Category(step string) string {
	return StepRegistry[step].Category
}

// DependencyError represents a dependency validation error
type DependencyError struct {
	Step                string
	MissingDependencies []string
}

func (e *DependencyError) Error() string {
	return fmt.Sprintf("step %s has missing dependencies: %s", e.Step, strings.Join(e.MissingDependencies, ", "))
}

// ValidateDependencies checks that every dependency of step is in completed.
func ValidateDependencies(step string, completed map[string]bool) error {
	def, ok := StepRegistry[step]
	if !ok {
		return fmt.Errorf("unknown step: %s", step)
	}

	var missing []string
	for _, dep := range def.Dependencies {
		if !completed[dep] {
			missing = append(missing, dep)
		}
	}
	if len(missing) > 0 {
		return &DependencyError{Step: step, MissingDependencies: missing}
	}
	return nil
}
