// Package output provides output formatting interfaces.
// This package produces human and machine-readable outputs.
package output

import (
	"fmt"
	"io"
	"sort"
	"sync"
	"time"

	"cloudguide/core/advisory"
	"cloudguide/core/questionnaire"
	"cloudguide/core/types"
)

// Format represents output format type
type Format string

const (
	// FormatCLI is a human-readable CLI table
	FormatCLI Format = "cli"

	// FormatJSON is machine-readable JSON
	FormatJSON Format = "json"

	// FormatYAML is machine-readable YAML
	FormatYAML Format = "yaml"

	// FormatMarkdown is a markdown report
	FormatMarkdown Format = "markdown"
)

// Formatter produces output in a specific format
type Formatter interface {
	// Format returns the format type
	Format() Format

	// RenderComparison writes a provider cost comparison
	RenderComparison(w io.Writer, c *Comparison) error

	// RenderAdvisory writes a migration advisory
	RenderAdvisory(w io.Writer, r *advisory.Result) error

	// RenderEstimate writes a questionnaire project estimate
	RenderEstimate(w io.Writer, r *questionnaire.Result) error
}

// Comparison contains a complete pricing comparison
type Comparison struct {
	// Spec is the priced infrastructure
	Spec types.InfrastructureSpec `json:"spec" yaml:"spec"`

	// Estimates holds one entry per provider, in comparison order
	Estimates []types.ProviderEstimate `json:"estimates" yaml:"estimates"`

	// Metadata contains execution context
	Metadata Metadata `json:"metadata" yaml:"metadata"`
}

// Cheapest returns the estimate flagged as most economical
func (c *Comparison) Cheapest() (types.ProviderEstimate, bool) {
	for _, e := range c.Estimates {
		if e.IsMostEconomical {
			return e, true
		}
	}
	return types.ProviderEstimate{}, false
}

// Metadata contains execution context
type Metadata struct {
	// Timestamp is when the comparison was computed
	Timestamp time.Time `json:"timestamp" yaml:"timestamp"`

	// InputHash identifies the spec and rates that were priced
	InputHash string `json:"input_hash" yaml:"input_hash"`

	// Currency of every amount
	Currency types.Currency `json:"currency" yaml:"currency"`

	// Version is the tool version
	Version string `json:"version,omitempty" yaml:"version,omitempty"`
}

// FormatterRegistry manages formatter registration
type FormatterRegistry interface {
	// Register adds a formatter to the registry
	Register(formatter Formatter) error

	// GetFormatter returns a formatter for a format type
	GetFormatter(format Format) (Formatter, bool)

	// GetAll returns all registered formatters
	GetAll() []Formatter
}

// Registry is the default FormatterRegistry
type Registry struct {
	mu         sync.RWMutex
	formatters map[Format]Formatter
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{formatters: make(map[Format]Formatter)}
}

// DefaultRegistry returns a registry with every built-in formatter
func DefaultRegistry(noColor bool) *Registry {
	r := NewRegistry()
	for _, f := range []Formatter{
		NewCLIFormatter(noColor),
		NewJSONFormatter(true),
		NewYAMLFormatter(),
		NewMarkdownFormatter(),
	} {
		_ = r.Register(f)
	}
	return r
}

// Register adds a formatter to the registry
func (r *Registry) Register(f Formatter) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.formatters[f.Format()]; exists {
		return fmt.Errorf("formatter already registered: %s", f.Format())
	}
	r.formatters[f.Format()] = f
	return nil
}

// GetFormatter returns a formatter for a format type
func (r *Registry) GetFormatter(format Format) (Formatter, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	f, ok := r.formatters[format]
	return f, ok
}

// GetAll returns all registered formatters sorted by format
func (r *Registry) GetAll() []Formatter {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Formatter, 0, len(r.formatters))
	for _, f := range r.formatters {
		out = append(out, f)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Format() < out[j].Format() })
	return out
}

// Formats lists the names of the registered formats
func (r *Registry) Formats() []string {
	all := r.GetAll()
	names := make([]string, len(all))
	for i, f := range all {
		names[i] = string(f.Format())
	}
	return names
}
