// Package link resolves name references between generation descriptors.
//
// Linking runs after every descriptor of a type has been collected, so a
// reference resolves regardless of declaration order. All functions are
// idempotent and accept nil collections.
package link

import (
	"mvvmgen/internal/plan"
)

// Link fills the invalidation lists of properties: each property first gets
// the dependent property names listed on its own annotation, then every
// computed property naming it as a source. Source names that match no
// property are ignored; they may live on a base type.
//
// Only observable properties are passed in: dependency, styled and attached
// properties notify through the property system, so a computed property
// over them is refreshed from their changed callback by the user.
func Link(properties []*plan.PropertyToGenerate, computed []*plan.ComputedPropertyToGenerate) {
	if len(properties) == 0 {
		return
	}

	byName := make(map[string]*plan.PropertyToGenerate, len(properties))
	for _, p := range properties {
		if _, dup := byName[p.Name]; !dup {
			byName[p.Name] = p
		}
	}

	for _, p := range properties {
		for _, dep := range p.DependentPropertyNames {
			p.AddPropertyToInvalidate(dep)
		}
	}

	for _, c := range computed {
		for _, src := range c.SourcePropertyNames {
			if p, ok := byName[src]; ok {
				p.AddPropertyToInvalidate(c.Name)
			}
		}
	}
}

// LinkCommands resolves the dependent command names listed on properties to
// generated command names. A listed name matches a command by its generated
// name, by the method it wraps, or by the bare name plus "Command". Names
// matching no command are kept verbatim as externally defined commands.
func LinkCommands(properties []*plan.PropertyToGenerate, commands []*plan.RelayCommandToGenerate) {
	for _, p := range properties {
		for _, dep := range p.DependentCommandNames {
			name := dep
			if c := findCommand(commands, dep); c != nil {
				name = c.CommandName
			}
			p.AddCommandToInvalidate(name)
		}
	}
}

// LinkCanExecute makes a property used as a command's CanExecute predicate
// notify that command whenever it changes.
func LinkCanExecute(properties []*plan.PropertyToGenerate, commands []*plan.RelayCommandToGenerate) {
	for _, c := range commands {
		if c.CanExecute == "" {
			continue
		}
		for _, p := range properties {
			if p.Name == c.CanExecute {
				c.CanExecuteIsProperty = true
				p.AddCommandToInvalidate(c.CommandName)
			}
		}
	}
}

func findCommand(commands []*plan.RelayCommandToGenerate, name string) *plan.RelayCommandToGenerate {
	for _, c := range commands {
		if c.CommandName == name || c.MethodName == name || c.CommandName == name+"Command" {
			return c
		}
	}
	return nil
}

// Reference is a dependency name that matched nothing in the plan.
type Reference struct {
	Owner string // member declaring the dependency
	Name  string
	Kind  string // "property" or "command"
}

// Unresolved lists every dependency name that does not match a descriptor of
// the plan. Linking leaves these alone; callers decide whether to report them.
func Unresolved(d *plan.Descriptors) []Reference {
	if d == nil {
		return nil
	}

	known := map[string]bool{}
	for _, p := range d.ObservableProperties {
		known[p.Name] = true
	}
	for _, p := range d.DependencyProperties {
		known[p.Name] = true
	}
	for _, p := range d.AttachedProperties {
		known[p.Name] = true
	}
	for _, c := range d.ComputedProperties {
		known[c.Name] = true
	}
	if d.DtoViewModel != nil {
		for _, dp := range d.DtoViewModel.Properties {
			known[dp.Name] = true
		}
	}

	var out []Reference
	for _, p := range d.ObservableProperties {
		for _, dep := range p.DependentPropertyNames {
			if !known[dep] {
				out = append(out, Reference{Owner: p.Name, Name: dep, Kind: "property"})
			}
		}
		for _, dep := range p.DependentCommandNames {
			if findCommand(d.RelayCommands, dep) == nil {
				out = append(out, Reference{Owner: p.Name, Name: dep, Kind: "command"})
			}
		}
	}
	for _, c := range d.ComputedProperties {
		for _, src := range c.SourcePropertyNames {
			if !known[src] {
				out = append(out, Reference{Owner: c.Name, Name: src, Kind: "property"})
			}
		}
	}
	return out
}
