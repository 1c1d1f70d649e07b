// Package check raises diagnostics for a type's descriptors before assembly.
package check

import (
	"slices"
	"strings"

	"mvvmgen/internal/config"
	"mvvmgen/internal/diag"
	"mvvmgen/internal/inspect"
	"mvvmgen/internal/link"
	"mvvmgen/internal/model"
	"mvvmgen/internal/plan"
)

// Input is what the checker looks at for one declared type.
type Input struct {
	Decl        *model.TypeDecl
	Platform    config.Platform
	Descriptors *plan.Descriptors
	Rejected    []inspect.Rejected
	Unresolved  []link.Reference
	Strict      bool
}

// Check reports every problem found in the input to c. It returns false when
// the type must not be emitted because generated members would collide.
func Check(in Input, c *diag.Collector) bool {
	for _, r := range in.Rejected {
		c.Error(diag.MalformedAnnotation, r.Member, "%s annotation ignored: %s", r.Kind, r.Reason)
	}

	d := in.Descriptors
	if d == nil {
		return true
	}

	DuplicateCommands(d.RelayCommands, c)
	ok := duplicateMembers(in, c)

	if in.Decl != nil && in.Decl.IsStatic {
		staticOwner(d, c)
		if in.Platform == config.PlatformAvalonia && (len(d.AttachedProperties) > 0 || len(d.RoutedEvents) > 0) {
			c.Warn(diag.UnsupportedOnPlatform, in.Decl.Name, "Avalonia cannot register properties or events on a static owner type; declare %s as a non-static class", in.Decl.Name)
		}
	}
	platformSupport(in.Platform, d, c)

	if in.Strict {
		for _, ref := range in.Unresolved {
			c.Info(diag.UnresolvedDependency, ref.Owner, "%s %q does not match any generated member; assuming it is defined elsewhere", ref.Kind, ref.Name)
		}
	}
	return ok
}

// DuplicateCommands raises one warning per generated command name shared by
// two or more commands. Emission still proceeds.
func DuplicateCommands(commands []*plan.RelayCommandToGenerate, c *diag.Collector) {
	methods := map[string][]string{}
	var order []string
	for _, cmd := range commands {
		if _, seen := methods[cmd.CommandName]; !seen {
			order = append(order, cmd.CommandName)
		}
		methods[cmd.CommandName] = append(methods[cmd.CommandName], cmd.MethodName)
	}
	for _, name := range order {
		if m := methods[name]; len(m) > 1 {
			c.Warn(diag.DuplicateCommandName, name, "methods %s all generate command %q; rename one of them", strings.Join(m, ", "), name)
		}
	}
}

// duplicateMembers reports names the emitted code would declare more than
// once, or that clash with a member the type declares itself. Commands are
// taken after assembly, so commands sharing a generated name (reported by
// DuplicateCommands) count once. It returns false if any clash was found.
func duplicateMembers(in Input, c *diag.Collector) bool {
	decl := in.Decl
	if decl == nil {
		decl = &model.TypeDecl{}
	}
	p := plan.Assemble(decl, in.Platform, *in.Descriptors)

	generated := map[string][]string{}
	var order []string
	for _, m := range p.Members() {
		if _, seen := generated[m.Name]; !seen {
			order = append(order, m.Name)
		}
		generated[m.Name] = append(generated[m.Name], m.Kind)
	}

	declared := map[string]string{}
	for _, f := range decl.Fields {
		declared[f.Name] = "declared field"
	}
	for _, m := range decl.Methods {
		declared[m.Name] = "declared method"
	}
	for _, pr := range decl.Properties {
		declared[pr.Name] = "declared property"
	}

	ok := true
	for _, name := range order {
		kinds := generated[name]
		if d, clash := declared[name]; clash {
			kinds = append(kinds, d)
		}
		if len(kinds) < 2 {
			continue
		}
		ok = false
		c.Error(diag.DuplicateMemberName, name, "member %q would be declared %d times (%s)", name, len(kinds), strings.Join(kinds, ", "))
	}
	return ok
}

func staticOwner(d *plan.Descriptors, c *diag.Collector) {
	for _, p := range d.ObservableProperties {
		c.Warn(diag.InstanceMemberOnStatic, p.Name, "observable property on a static type is skipped")
	}
	for _, p := range d.DependencyProperties {
		c.Warn(diag.InstanceMemberOnStatic, p.Name, "%s property on a static type is skipped; use an attached property", p.Flavor)
	}
	for _, cmd := range d.RelayCommands {
		c.Warn(diag.InstanceMemberOnStatic, cmd.CommandName, "relay command on a static type is skipped")
	}
	for _, cp := range d.ComputedProperties {
		c.Warn(diag.InstanceMemberOnStatic, cp.Name, "computed property on a static type is skipped")
	}
	if d.DtoViewModel != nil {
		c.Warn(diag.InstanceMemberOnStatic, d.DtoViewModel.DtoTypeName, "dto projection on a static type is skipped")
	}
}

func platformSupport(platform config.Platform, d *plan.Descriptors, c *diag.Collector) {
	for _, p := range append(slices.Clip(d.DependencyProperties), d.AttachedProperties...) {
		switch platform {
		case config.PlatformWinUI:
			if p.Callbacks.Coerce != "" || p.Callbacks.Validate != "" {
				c.Warn(diag.UnsupportedOnPlatform, p.Name, "coerce and validate callbacks are not supported on WinUI and are ignored")
			}
			if p.IsReadOnly {
				c.Warn(diag.UnsupportedOnPlatform, p.Name, "read-only dependency properties are not supported on WinUI; the property is writable")
			}
		case config.PlatformAvalonia:
			if p.IsReadOnly {
				c.Warn(diag.UnsupportedOnPlatform, p.Name, "read-only styled properties are not supported on Avalonia; the property is writable")
			}
		}
		if platform != config.PlatformWPF && len(p.Flags) > 0 {
			c.Warn(diag.UnsupportedOnPlatform, p.Name, "metadata flags are WPF-only and are ignored")
		}
	}
	if platform == config.PlatformWinUI {
		for _, e := range d.RoutedEvents {
			c.Warn(diag.UnsupportedOnPlatform, e.Name, "custom routed events are not supported on WinUI; the event is skipped")
		}
	}
}
