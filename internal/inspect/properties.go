package inspect

import (
	"slices"
	"strings"

	"mvvmgen/internal/model"
	"mvvmgen/internal/naming"
	"mvvmgen/internal/plan"
)

func flavorOf(kind model.AnnotationKind) plan.Flavor {
	switch kind {
	case model.KindDependencyProperty:
		return plan.FlavorDependency
	case model.KindStyledProperty:
		return plan.FlavorStyled
	case model.KindAttachedProperty:
		return plan.FlavorAttached
	default:
		return plan.FlavorObservable
	}
}

// fieldProperty builds a property from an annotated field. The name comes
// from the field unless the annotation overrides it.
func (in *Inspector) fieldProperty(r *Result, f *model.FieldDecl, a *model.Annotation) (*plan.PropertyToGenerate, bool) {
	name := naming.PropertyName(f.Name, in.cfg.Options.FieldPrefixes)
	if explicit, ok := a.ExplicitName(); ok {
		if explicit == "" {
			r.reject(f.Name, a.Kind, "explicit name must not be empty")
			return nil, false
		}
		name = explicit
	}
	if !naming.IsIdentifier(name) {
		r.reject(f.Name, a.Kind, "%q is not a valid property name", name)
		return nil, false
	}

	typ := strings.TrimSpace(a.Type)
	if typ == "" {
		typ = strings.TrimSpace(f.Type)
	}
	if typ == "" {
		r.reject(f.Name, a.Kind, "property type is missing")
		return nil, false
	}

	p := newProperty(a, name, typ)
	p.Doc = firstNonEmpty(a.Doc, f.Doc)
	p.Attributes = mergeUnique(f.Attributes, a.Attributes)
	if p.Flavor == plan.FlavorObservable {
		p.BackingFieldName = f.Name
	}
	return p, true
}

// classLevelProperty builds a property from a multiply-appliable class
// annotation, which must carry both a name and a type.
func (in *Inspector) classLevelProperty(r *Result, a *model.Annotation) (*plan.PropertyToGenerate, bool) {
	name, ok := a.ExplicitName()
	if !ok || name == "" {
		r.reject("", a.Kind, "class-level annotation requires a name")
		return nil, false
	}
	if !naming.IsIdentifier(name) {
		r.reject(name, a.Kind, "%q is not a valid property name", name)
		return nil, false
	}
	typ := strings.TrimSpace(a.Type)
	if typ == "" {
		r.reject(name, a.Kind, "class-level annotation requires a type argument")
		return nil, false
	}

	p := newProperty(a, name, typ)
	p.Doc = a.Doc
	p.Attributes = mergeUnique(nil, a.Attributes)
	if p.Flavor == plan.FlavorObservable {
		p.BackingFieldName = naming.FieldName(name)
		p.EmitsBackingField = true
	}
	return p, true
}

func newProperty(a *model.Annotation, name, typ string) *plan.PropertyToGenerate {
	return &plan.PropertyToGenerate{
		Flavor:                 flavorOf(a.Kind),
		Name:                   name,
		Type:                   typ,
		DefaultValue:           strings.TrimSpace(a.DefaultValue),
		IsReadOnly:             a.ReadOnly,
		IsNew:                  a.IsNew,
		AttachedTo:             strings.TrimSpace(a.AttachedTo),
		Callbacks:              a.Callbacks,
		Category:               a.Category,
		Description:            a.Description,
		Flags:                  mergeUnique(nil, a.Flags),
		DependentPropertyNames: mergeUnique(nil, a.DependentProperties),
		DependentCommandNames:  mergeUnique(nil, a.DependentCommands),
	}
}

func firstNonEmpty(lists ...[]string) []string {
	for _, l := range lists {
		if len(l) > 0 {
			return l
		}
	}
	return nil
}

// mergeUnique concatenates a and b, trimming entries and dropping blanks and
// repeats while keeping first-seen order.
func mergeUnique(a, b []string) []string {
	var out []string
	for _, s := range append(slices.Clip(a), b...) {
		s = strings.TrimSpace(s)
		if s == "" || slices.Contains(out, s) {
			continue
		}
		out = append(out, s)
	}
	return out
}
