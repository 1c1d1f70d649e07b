// Package inspect turns annotated declarations into generation descriptors.
//
// Inspectors never fail: an annotation that cannot produce a descriptor is
// recorded as Rejected and inspection continues with the next declaration.
package inspect

import (
	"fmt"

	"mvvmgen/internal/config"
	"mvvmgen/internal/model"
	"mvvmgen/internal/plan"
)

// DtoSource resolves DTO shapes referenced by dto-projection annotations.
type DtoSource interface {
	FindDto(name string) (*model.DtoDecl, bool)
}

// Rejected is an annotation that produced no descriptor.
type Rejected struct {
	Member string // declaring member, empty for class-level annotations
	Kind   model.AnnotationKind
	Reason string
}

func (r Rejected) String() string {
	if r.Member == "" {
		return fmt.Sprintf("class-level %s: %s", r.Kind, r.Reason)
	}
	return fmt.Sprintf("%s on %s: %s", r.Kind, r.Member, r.Reason)
}

// Result is the output of inspecting one declared type.
type Result struct {
	plan.Descriptors
	Rejected []Rejected
}

func (r *Result) reject(member string, kind model.AnnotationKind, format string, args ...any) {
	r.Rejected = append(r.Rejected, Rejected{
		Member: member,
		Kind:   kind,
		Reason: fmt.Sprintf(format, args...),
	})
}

// Inspector extracts descriptors using the configured naming rules.
type Inspector struct {
	cfg *config.Config
}

// New creates a new Inspector.
func New(cfg *config.Config) *Inspector {
	return &Inspector{cfg: cfg}
}

// Inspect runs every feature inspector over decl. Descriptor order follows
// declaration order: class-level annotations first, then fields, hand-written
// properties and methods.
func (in *Inspector) Inspect(decl *model.TypeDecl, dtos DtoSource) *Result {
	r := &Result{}

	for i := range decl.Annotations {
		in.inspectClassAnnotation(r, decl, &decl.Annotations[i], dtos)
	}

	for i := range decl.Fields {
		f := &decl.Fields[i]
		for j := range f.Annotations {
			in.inspectFieldAnnotation(r, f, &f.Annotations[j])
		}
	}

	for i := range decl.Properties {
		p := &decl.Properties[i]
		for j := range p.Annotations {
			in.inspectPropertyAnnotation(r, p, &p.Annotations[j])
		}
	}

	for i := range decl.Methods {
		m := &decl.Methods[i]
		for j := range m.Annotations {
			in.inspectMethodAnnotation(r, decl, m, &m.Annotations[j])
		}
	}

	return r
}

func (in *Inspector) inspectClassAnnotation(r *Result, decl *model.TypeDecl, a *model.Annotation, dtos DtoSource) {
	switch a.Kind {
	case model.KindObservableProperty, model.KindDependencyProperty,
		model.KindStyledProperty, model.KindAttachedProperty:
		if p, ok := in.classLevelProperty(r, a); ok {
			r.add(p)
		}
	case model.KindComputedProperty:
		if c, ok := classLevelComputed(r, a); ok {
			r.ComputedProperties = append(r.ComputedProperties, c)
		}
	case model.KindRoutedEvent:
		if e, ok := routedEvent(r, a); ok {
			r.RoutedEvents = append(r.RoutedEvents, e)
		}
	case model.KindDtoProjection:
		in.dtoProjection(r, a, dtos)
	case model.KindRelayCommand:
		r.reject("", a.Kind, "relay-command must annotate a method")
	default:
		r.reject("", a.Kind, "unknown annotation kind %q", a.Kind)
	}
}

func (in *Inspector) inspectFieldAnnotation(r *Result, f *model.FieldDecl, a *model.Annotation) {
	switch a.Kind {
	case model.KindObservableProperty, model.KindDependencyProperty,
		model.KindStyledProperty, model.KindAttachedProperty:
		if p, ok := in.fieldProperty(r, f, a); ok {
			r.add(p)
		}
	case model.KindRelayCommand:
		r.reject(f.Name, a.Kind, "relay-command must annotate a method")
	case model.KindComputedProperty:
		r.reject(f.Name, a.Kind, "computed-property must annotate a property or the class")
	case model.KindDtoProjection, model.KindRoutedEvent:
		r.reject(f.Name, a.Kind, "%s is a class-level annotation", a.Kind)
	default:
		r.reject(f.Name, a.Kind, "unknown annotation kind %q", a.Kind)
	}
}

func (in *Inspector) inspectPropertyAnnotation(r *Result, p *model.FieldDecl, a *model.Annotation) {
	if a.Kind != model.KindComputedProperty {
		if a.Kind.Known() {
			r.reject(p.Name, a.Kind, "only computed-property may annotate a declared property")
		} else {
			r.reject(p.Name, a.Kind, "unknown annotation kind %q", a.Kind)
		}
		return
	}
	if c, ok := declaredComputed(r, p, a); ok {
		r.ComputedProperties = append(r.ComputedProperties, c)
	}
}

func (in *Inspector) inspectMethodAnnotation(r *Result, decl *model.TypeDecl, m *model.MethodDecl, a *model.Annotation) {
	if a.Kind != model.KindRelayCommand {
		if a.Kind.Known() {
			r.reject(m.Name, a.Kind, "only relay-command may annotate a method")
		} else {
			r.reject(m.Name, a.Kind, "unknown annotation kind %q", a.Kind)
		}
		return
	}
	if c, ok := relayCommand(r, decl, m, a); ok {
		r.RelayCommands = append(r.RelayCommands, c)
	}
}

// add files a property descriptor under its flavor.
func (r *Result) add(p *plan.PropertyToGenerate) {
	switch p.Flavor {
	case plan.FlavorObservable:
		r.ObservableProperties = append(r.ObservableProperties, p)
	case plan.FlavorAttached:
		r.AttachedProperties = append(r.AttachedProperties, p)
	default:
		r.DependencyProperties = append(r.DependencyProperties, p)
	}
}
