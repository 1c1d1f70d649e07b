// Package diag defines the diagnostics raised while planning generated code.
package diag

import (
	"fmt"
	"strings"
)

// Severity represents the severity level of a diagnostic.
type Severity int

const (
	SeverityWarning Severity = iota
	SeverityError
	SeverityInfo
)

func (s Severity) String() string {
	switch s {
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	case SeverityInfo:
		return "info"
	default:
		return "unknown"
	}
}

// MarshalText renders the severity by name in JSON and YAML output.
func (s Severity) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// ID is the stable identifier of a diagnostic rule.
type ID string

const (
	DuplicateCommandName   ID = "MVVM0001"
	MalformedAnnotation    ID = "MVVM0002"
	DuplicateMemberName    ID = "MVVM0003"
	InstanceMemberOnStatic ID = "MVVM0004"
	UnsupportedOnPlatform  ID = "MVVM0005"
	UnresolvedDependency   ID = "MVVM0006"
)

// Title returns the short rule description used in reports.
func (id ID) Title() string {
	switch id {
	case DuplicateCommandName:
		return "duplicate command name"
	case MalformedAnnotation:
		return "malformed annotation"
	case DuplicateMemberName:
		return "duplicate member name"
	case InstanceMemberOnStatic:
		return "instance member on static type"
	case UnsupportedOnPlatform:
		return "unsupported on platform"
	case UnresolvedDependency:
		return "unresolved dependency"
	default:
		return "unknown"
	}
}

// Diagnostic is one finding about a declared type.
type Diagnostic struct {
	ID       ID       `json:"id"`
	Severity Severity `json:"severity"`
	Type     string   `json:"type,omitempty"`   // fully qualified declared type
	Member   string   `json:"member,omitempty"` // offending member, if any
	Message  string   `json:"message"`
}

// String formats the diagnostic for display.
func (d Diagnostic) String() string {
	var sb strings.Builder

	sb.WriteString(d.Severity.String())
	sb.WriteString(" ")
	sb.WriteString(string(d.ID))
	sb.WriteString(": ")

	if d.Type != "" {
		sb.WriteString(d.Type)
		if d.Member != "" {
			sb.WriteString(".")
			sb.WriteString(d.Member)
		}
		sb.WriteString(": ")
	}

	sb.WriteString(d.Message)
	return sb.String()
}

// Collector collects diagnostics for one declared type.
type Collector struct {
	typeName    string
	diagnostics []Diagnostic
	strict      bool // if true, warnings become errors
	quiet       bool // if true, suppress warnings and infos
}

// NewCollector creates a collector attributing findings to typeName.
func NewCollector(typeName string, strict, quiet bool) *Collector {
	return &Collector{
		typeName: typeName,
		strict:   strict,
		quiet:    quiet,
	}
}

// Warn adds a warning diagnostic.
func (c *Collector) Warn(id ID, member, format string, args ...any) {
	if c == nil {
		return
	}
	sev := SeverityWarning
	if c.strict {
		sev = SeverityError
	} else if c.quiet {
		return
	}
	c.add(id, sev, member, format, args...)
}

// Error adds an error diagnostic.
func (c *Collector) Error(id ID, member, format string, args ...any) {
	if c == nil {
		return
	}
	c.add(id, SeverityError, member, format, args...)
}

// Info adds an informational diagnostic.
func (c *Collector) Info(id ID, member, format string, args ...any) {
	if c == nil || c.quiet {
		return
	}
	c.add(id, SeverityInfo, member, format, args...)
}

func (c *Collector) add(id ID, sev Severity, member, format string, args ...any) {
	c.diagnostics = append(c.diagnostics, Diagnostic{
		ID:       id,
		Severity: sev,
		Type:     c.typeName,
		Member:   member,
		Message:  fmt.Sprintf(format, args...),
	})
}

// Diagnostics returns all collected diagnostics.
func (c *Collector) Diagnostics() []Diagnostic {
	if c == nil {
		return nil
	}
	return c.diagnostics
}

// Count returns how many diagnostics carry the given id.
func (c *Collector) Count(id ID) int {
	n := 0
	for _, d := range c.Diagnostics() {
		if d.ID == id {
			n++
		}
	}
	return n
}

// Has reports whether a diagnostic with the given id was raised.
func (c *Collector) Has(id ID) bool {
	return c.Count(id) > 0
}

// HasErrors returns true if any error-level diagnostics exist.
func (c *Collector) HasErrors() bool {
	for _, d := range c.Diagnostics() {
		if d.Severity == SeverityError {
			return true
		}
	}
	return false
}

// Summary returns a summary line like "2 warning(s), 1 error(s)".
func Summary(diags []Diagnostic) string {
	var errors, warnings int
	for _, d := range diags {
		switch d.Severity {
		case SeverityError:
			errors++
		case SeverityWarning:
			warnings++
		}
	}

	parts := []string{}
	if errors > 0 {
		parts = append(parts, fmt.Sprintf("%d error(s)", errors))
	}
	if warnings > 0 {
		parts = append(parts, fmt.Sprintf("%d warning(s)", warnings))
	}
	if len(parts) == 0 {
		return "no issues"
	}
	return strings.Join(parts, ", ")
}
