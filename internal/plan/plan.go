package plan

import (
	"mvvmgen/internal/config"
	"mvvmgen/internal/model"
)

// Plan is everything required to emit code for one declared type.
type Plan struct {
	Namespace     string
	ClassName     string
	Accessibility string
	IsStatic      bool
	BaseType      string
	Platform      config.Platform

	Descriptors
}

// Assemble merges the inspector output for decl into one plan. Static owner
// types only keep the descriptors a static class can host, and only the first
// command of each generated command name is kept.
func Assemble(decl *model.TypeDecl, platform config.Platform, d Descriptors) *Plan {
	accessibility := decl.Accessibility
	if accessibility == "" {
		accessibility = "public"
	}

	p := &Plan{
		Namespace:     decl.Namespace,
		ClassName:     decl.Name,
		Accessibility: accessibility,
		IsStatic:      decl.IsStatic,
		BaseType:      decl.BaseType,
		Platform:      platform,
		Descriptors:   d,
	}
	p.RelayCommands = UniqueCommands(p.RelayCommands)

	if p.IsStatic {
		p.ObservableProperties = nil
		p.DependencyProperties = nil
		p.RelayCommands = nil
		p.ComputedProperties = nil
		p.DtoViewModel = nil
	}
	if platform == config.PlatformWinUI {
		p.RoutedEvents = nil
	}
	for _, ap := range p.AttachedProperties {
		ap.OwnerIsStatic = p.IsStatic
	}

	return p
}

// FullName returns the namespace-qualified class name.
func (p *Plan) FullName() string {
	if p.Namespace != "" {
		return p.Namespace + "." + p.ClassName
	}
	return p.ClassName
}

// FoundAnythingToGenerate reports whether emission would produce any member.
func (p *Plan) FoundAnythingToGenerate() bool {
	if p == nil {
		return false
	}
	if len(p.ObservableProperties) > 0 ||
		len(p.DependencyProperties) > 0 ||
		len(p.AttachedProperties) > 0 ||
		len(p.RoutedEvents) > 0 ||
		len(p.RelayCommands) > 0 ||
		p.DtoViewModel != nil {
		return true
	}
	for _, c := range p.ComputedProperties {
		if c.Emits() {
			return true
		}
	}
	return false
}

// AllProperties returns every property descriptor in emission order.
func (p *Plan) AllProperties() []*PropertyToGenerate {
	all := make([]*PropertyToGenerate, 0,
		len(p.DependencyProperties)+len(p.AttachedProperties)+len(p.ObservableProperties))
	all = append(all, p.DependencyProperties...)
	all = append(all, p.AttachedProperties...)
	all = append(all, p.ObservableProperties...)
	return all
}

// Member is a generated member name and the kind that produces it.
type Member struct {
	Name string
	Kind string
}

// Members lists every name the emitted code occupies in the class: the
// generated properties, their registration fields and accessors, command
// fields, wrappers and cancel commands, and the DTO projection helpers.
func (p *Plan) Members() []Member {
	var out []Member
	add := func(kind string, names ...string) {
		for _, n := range names {
			out = append(out, Member{Name: n, Kind: kind})
		}
	}
	keyed := func(prop *PropertyToGenerate) bool {
		return prop.IsReadOnly && p.Platform == config.PlatformWPF
	}

	if d := p.DtoViewModel; d != nil {
		for _, dp := range d.Properties {
			add("dto property", dp.Name)
		}
		add("dto projection", "dto", "InnerModel", "ToDto")
		if d.TrackDirty {
			add("dto projection", "isDirty", "IsDirty", "ResetDirty")
		}
	}
	for _, dp := range p.DependencyProperties {
		kind := dp.Flavor.String() + " property"
		add(kind, dp.Name, dp.Name+"Property")
		if keyed(dp) {
			add(kind, dp.Name+"PropertyKey")
		}
	}
	for _, ap := range p.AttachedProperties {
		add("attached property", ap.Name+"Property", "Get"+ap.Name, "Set"+ap.Name)
		if keyed(ap) {
			add("attached property", ap.Name+"PropertyKey")
		}
	}
	for _, re := range p.RoutedEvents {
		add("routed event", re.Name+"Event")
		if p.IsStatic {
			add("routed event", "Add"+re.Name+"Handler", "Remove"+re.Name+"Handler")
		} else {
			add("routed event", re.Name)
		}
	}
	for _, op := range p.ObservableProperties {
		add("observable property", op.Name)
		if op.EmitsBackingField {
			add("observable property", op.BackingFieldName)
		}
	}
	for _, cp := range p.ComputedProperties {
		if cp.Emits() {
			add("computed property", cp.Name)
		}
	}
	for _, c := range p.RelayCommands {
		add("command", c.CommandName, c.FieldName())
		if c.SupportsCancellation {
			add("command", c.CancellationSourceName(), c.CancelCommandName(), c.CancelFieldName())
		}
		if w := c.WrapperName(); w != "" {
			add("command", w)
		}
	}
	return out
}

// UniqueCommands keeps the first command for every generated command name.
// Later commands resolving to the same name are dropped.
func UniqueCommands(commands []*RelayCommandToGenerate) []*RelayCommandToGenerate {
	if len(commands) < 2 {
		return commands
	}
	seen := make(map[string]bool, len(commands))
	out := make([]*RelayCommandToGenerate, 0, len(commands))
	for _, c := range commands {
		if seen[c.CommandName] {
			continue
		}
		seen[c.CommandName] = true
		out = append(out, c)
	}
	return out
}
