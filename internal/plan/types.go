// Package plan holds the per-type generation plan and the descriptors it owns.
package plan

import (
	"slices"

	"mvvmgen/internal/model"
	"mvvmgen/internal/naming"
)

// Flavor is the kind of property a PropertyToGenerate describes.
type Flavor int

const (
	FlavorObservable Flavor = iota
	FlavorDependency
	FlavorStyled
	FlavorAttached
)

func (f Flavor) String() string {
	switch f {
	case FlavorObservable:
		return "observable"
	case FlavorDependency:
		return "dependency"
	case FlavorStyled:
		return "styled"
	case FlavorAttached:
		return "attached"
	default:
		return "unknown"
	}
}

// PropertyToGenerate describes one generated property of any flavor.
type PropertyToGenerate struct {
	Flavor            Flavor
	Name              string
	BackingFieldName  string // observable only
	EmitsBackingField bool   // observable only, set for class-level declarations
	Type              string
	DefaultValue      string // explicit default, empty when none was supplied
	IsReadOnly        bool
	IsNew             bool
	OwnerIsStatic     bool
	AttachedTo        string // host element type of attached properties
	Callbacks         model.Callbacks
	Category          string
	Description       string
	Flags             []string
	Doc               []string
	Attributes        []string

	// Dependents listed on the annotation, kept for diagnostics.
	DependentPropertyNames []string
	DependentCommandNames  []string

	// Filled by the linker.
	PropertyNamesToInvalidate []string
	CommandNamesToInvalidate  []string
}

// HasAnyMetadata reports whether registration metadata differs from the
// toolkit defaults.
func (p *PropertyToGenerate) HasAnyMetadata() bool {
	return p.DefaultValue != "" ||
		p.Callbacks.Changed != "" ||
		p.Callbacks.Coerce != "" ||
		len(p.Flags) > 0 ||
		p.Category != "" ||
		p.Description != ""
}

// AddPropertyToInvalidate appends name unless it is already present.
func (p *PropertyToGenerate) AddPropertyToInvalidate(name string) bool {
	if name == "" || name == p.Name || slices.Contains(p.PropertyNamesToInvalidate, name) {
		return false
	}
	p.PropertyNamesToInvalidate = append(p.PropertyNamesToInvalidate, name)
	return true
}

// AddCommandToInvalidate appends name unless it is already present.
func (p *PropertyToGenerate) AddCommandToInvalidate(name string) bool {
	if name == "" || slices.Contains(p.CommandNamesToInvalidate, name) {
		return false
	}
	p.CommandNamesToInvalidate = append(p.CommandNamesToInvalidate, name)
	return true
}

// RelayCommandToGenerate describes one generated command.
type RelayCommandToGenerate struct {
	CommandName               string
	MethodName                string
	ParameterType             string
	ParameterValue            string
	CanExecute                string
	CanExecuteIsProperty      bool
	IsAsync                   bool
	MethodTakesToken          bool
	SupportsCancellation      bool
	AutoSetIsBusy             bool
	ExecuteOnBackgroundThread bool
	Doc                       []string
}

// FieldName is the lazily initialised backing field of the command property.
func (c *RelayCommandToGenerate) FieldName() string {
	return naming.CamelCase(c.CommandName)
}

// RunsAsync reports whether the command is created as an async command.
func (c *RelayCommandToGenerate) RunsAsync() bool {
	return c.IsAsync || c.ExecuteOnBackgroundThread
}

// WrapperName is the generated execution method, empty when the user method
// is bound directly.
func (c *RelayCommandToGenerate) WrapperName() string {
	if !c.NeedsWrapper() {
		return ""
	}
	if c.RunsAsync() {
		return "Execute" + c.CommandName + "Async"
	}
	return "Execute" + c.CommandName
}

// CancellationSourceName is the token source field of a cancellable command.
func (c *RelayCommandToGenerate) CancellationSourceName() string {
	return c.FieldName() + "Cancellation"
}

// CancelCommandName is the companion command cancelling a running execution.
func (c *RelayCommandToGenerate) CancelCommandName() string {
	return "Cancel" + c.CommandName
}

// CancelFieldName is the backing field of the cancel command.
func (c *RelayCommandToGenerate) CancelFieldName() string {
	return naming.CamelCase(c.CancelCommandName())
}

// HasParameter reports whether the command passes a parameter to its method.
func (c *RelayCommandToGenerate) HasParameter() bool {
	return c.ParameterType != ""
}

// NeedsWrapper reports whether execution goes through a generated method
// instead of binding the user method directly.
func (c *RelayCommandToGenerate) NeedsWrapper() bool {
	return c.SupportsCancellation || c.AutoSetIsBusy || c.ExecuteOnBackgroundThread
}

// ComputedPropertyToGenerate is a read-only property derived from others.
type ComputedPropertyToGenerate struct {
	Name                string
	Type                string
	Expression          string // empty when the property is hand-written
	SourcePropertyNames []string
	Doc                 []string
}

// Emits reports whether the engine writes the accessor itself.
func (c *ComputedPropertyToGenerate) Emits() bool {
	return c.Expression != ""
}

// RoutedEventToGenerate describes a routed event registration.
type RoutedEventToGenerate struct {
	Name        string
	Strategy    string
	HandlerType string
	Doc         []string
}

// DtoPropertyInfo is one DTO member wrapped by the projection.
type DtoPropertyInfo struct {
	Name              string
	Type              string
	IsRecordParameter bool
	IsReadOnly        bool
	Attributes        []string
	Doc               []string
}

// ObservableDtoViewModelToGenerate describes a DTO-to-viewmodel projection.
type ObservableDtoViewModelToGenerate struct {
	DtoTypeName      string
	IsRecord         bool
	Properties       []DtoPropertyInfo
	ValidateOnChange bool
	ValidateOnInit   bool
	TrackDirty       bool
}

// Descriptors is everything the inspectors found for one type.
type Descriptors struct {
	ObservableProperties []*PropertyToGenerate
	DependencyProperties []*PropertyToGenerate // dependency and styled
	AttachedProperties   []*PropertyToGenerate
	RoutedEvents         []*RoutedEventToGenerate
	RelayCommands        []*RelayCommandToGenerate
	ComputedProperties   []*ComputedPropertyToGenerate
	DtoViewModel         *ObservableDtoViewModelToGenerate
}
