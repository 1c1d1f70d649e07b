// Package generator emits C# partial classes from assembled plans.
package generator

import (
	"bytes"
	"fmt"
	"slices"
	"strings"
	"text/template"

	"mvvmgen/internal/builder"
	"mvvmgen/internal/config"
	"mvvmgen/internal/plan"
)

const fileTemplate = `// <auto-generated>
//     This code was generated by mvvmgen.
//     Changes to this file will be lost when the code is regenerated.
// </auto-generated>
#nullable enable
{{if .Usings}}
{{range .Usings}}using {{.}};
{{end}}{{end}}{{if .Namespace}}
namespace {{.Namespace}};
{{end}}
{{with .Doc}}{{docComment .}}
{{end}}[global::System.CodeDom.Compiler.GeneratedCode({{quote "mvvmgen"}}, {{quote .Version}})]
{{.Accessibility}} {{if .IsStatic}}static {{end}}partial class {{.ClassName}}
{
{{.Body}}}
`

// Version is stamped into the GeneratedCode attribute of every file.
const Version = "1.0.0"

// Generator renders plans into C# source files.
type Generator struct {
	config   *config.Config
	template *template.Template
}

// New creates a new Generator.
func New(cfg *config.Config) *Generator {
	return &Generator{
		config:   cfg,
		template: template.Must(template.New("file").Funcs(templateFuncs()).Parse(fileTemplate)),
	}
}

// TemplateData represents data passed to the file template.
type TemplateData struct {
	Namespace     string
	ClassName     string
	Accessibility string
	IsStatic      bool
	Usings        []string
	Doc           string
	Version       string
	Body          string // indented class members
}

// FileName returns the conventional output name for a plan.
func FileName(p *plan.Plan) string {
	return p.FullName() + ".g.cs"
}

// Generate renders the partial class for p. The output depends only on p and
// the configuration, so identical plans produce identical text.
func (g *Generator) Generate(p *plan.Plan) (string, error) {
	if err := g.validate(p); err != nil {
		return "", err
	}

	b := builder.New(g.config.Options.IndentSize)
	b.IncreaseIndent()

	e := &emitter{cfg: g.config, plan: p, b: b}
	e.section(e.dtoProjection)
	for _, dp := range p.DependencyProperties {
		e.section(func() { e.dependencyProperty(dp) })
	}
	for _, ap := range p.AttachedProperties {
		e.section(func() { e.attachedProperty(ap) })
	}
	for _, re := range p.RoutedEvents {
		e.section(func() { e.routedEvent(re) })
	}
	e.section(e.avaloniaClassHandlers)
	for _, op := range p.ObservableProperties {
		e.section(func() { e.observableProperty(op) })
	}
	for _, cp := range p.ComputedProperties {
		if cp.Emits() {
			e.section(func() { e.computedProperty(cp) })
		}
	}
	for _, cmd := range p.RelayCommands {
		e.section(func() { e.relayCommand(cmd) })
	}

	data := &TemplateData{
		Namespace:     p.Namespace,
		ClassName:     p.ClassName,
		Accessibility: p.Accessibility,
		IsStatic:      p.IsStatic,
		Usings:        g.usings(p),
		Version:       Version,
		Body:          b.String(),
	}
	if p.DtoViewModel != nil {
		data.Doc = fmt.Sprintf("Observable view model over <see cref=%q/>.", p.DtoViewModel.DtoTypeName)
	}

	var buf bytes.Buffer
	if err := g.template.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("executing template for %s: %w", p.FullName(), err)
	}
	return buf.String(), nil
}

// validate rejects plans the emitters cannot render.
func (g *Generator) validate(p *plan.Plan) error {
	if p == nil {
		return &PreconditionError{Type: "<nil>", Reason: "no plan"}
	}
	fail := func(member, format string, args ...any) error {
		return &PreconditionError{Type: p.FullName(), Member: member, Reason: fmt.Sprintf(format, args...)}
	}
	if p.ClassName == "" {
		return fail("", "class name is empty")
	}
	if !p.FoundAnythingToGenerate() {
		return fail("", "plan has nothing to generate")
	}
	if !p.Platform.Valid() {
		return fail("", "unknown platform %q", p.Platform)
	}

	for _, prop := range p.AllProperties() {
		if prop.Name == "" || prop.Type == "" {
			return fail(prop.Name, "%s property needs a name and a type", prop.Flavor)
		}
		if prop.Flavor == plan.FlavorObservable && prop.BackingFieldName == "" {
			return fail(prop.Name, "observable property has no backing field")
		}
	}
	for _, cmd := range p.RelayCommands {
		if cmd.CommandName == "" || cmd.MethodName == "" {
			return fail(cmd.CommandName, "command needs a command name and a method name")
		}
	}
	for _, cp := range p.ComputedProperties {
		if cp.Emits() && (cp.Name == "" || cp.Type == "") {
			return fail(cp.Name, "computed property needs a name and a type")
		}
	}
	for _, re := range p.RoutedEvents {
		if re.Name == "" {
			return fail("", "routed event has no name")
		}
	}
	if dto := p.DtoViewModel; dto != nil {
		if dto.DtoTypeName == "" {
			return fail("", "dto projection has no dto type")
		}
		for _, dp := range dto.Properties {
			if dp.Name == "" || dp.Type == "" {
				return fail(dp.Name, "dto property needs a name and a type")
			}
		}
	}
	return nil
}

// usings returns the sorted namespaces the generated members reference.
func (g *Generator) usings(p *plan.Plan) []string {
	set := map[string]bool{"System": true}
	add := func(ns ...string) {
		for _, n := range ns {
			set[n] = true
		}
	}

	if len(p.ObservableProperties) > 0 || p.DtoViewModel != nil {
		add("System.Collections.Generic")
	}
	for _, cmd := range p.RelayCommands {
		if cmd.IsAsync || cmd.ExecuteOnBackgroundThread {
			add("System.Threading.Tasks")
		}
		if cmd.SupportsCancellation || cmd.MethodTakesToken {
			add("System.Threading")
		}
	}
	for _, prop := range append(slices.Clip(p.DependencyProperties), p.AttachedProperties...) {
		if prop.Category != "" || prop.Description != "" {
			add("System.ComponentModel")
		}
	}

	hasProperties := len(p.DependencyProperties) > 0 || len(p.AttachedProperties) > 0
	switch p.Platform {
	case config.PlatformWPF:
		if hasProperties || len(p.RoutedEvents) > 0 {
			add("System.Windows")
		}
	case config.PlatformWinUI:
		if hasProperties {
			add("Microsoft.UI.Xaml")
		}
	case config.PlatformAvalonia:
		if hasProperties || len(p.RoutedEvents) > 0 {
			add("Avalonia")
		}
		if len(p.RoutedEvents) > 0 {
			add("Avalonia.Interactivity")
		}
	}
	add(g.config.Options.Usings...)

	out := make([]string, 0, len(set))
	for n := range set {
		if n = strings.TrimSpace(n); n != "" {
			out = append(out, n)
		}
	}
	slices.SortFunc(out, compareUsings)
	return slices.Compact(out)
}

// compareUsings orders System namespaces first, then alphabetically.
func compareUsings(a, b string) int {
	sa := a == "System" || strings.HasPrefix(a, "System.")
	sb := b == "System" || strings.HasPrefix(b, "System.")
	if sa != sb {
		if sa {
			return -1
		}
		return 1
	}
	return strings.Compare(a, b)
}

// emitter writes the members of one plan into a shared builder.
type emitter struct {
	cfg     *config.Config
	plan    *plan.Plan
	b       *builder.CodeBuilder
	written bool
}

// section runs fn, separating its output from the previous member by a blank
// line when it wrote anything.
func (e *emitter) section(fn func()) {
	before := e.b.Len()
	if e.written {
		e.b.AppendBlankLine()
	}
	mark := e.b.Len()
	fn()
	switch {
	case e.b.Len() > mark:
		e.written = true
	case e.b.Len() > before:
		// nothing emitted; drop the separator
		e.b.Truncate(before)
	}
}

// defaultValue resolves the literal used for a property's registered default.
func (e *emitter) defaultValue(p *plan.PropertyToGenerate) string {
	boxed := func(v string) string {
		if e.plan.Platform == config.PlatformWPF && strings.TrimSpace(p.Type) == "bool" {
			if box, ok := config.BooleanBoxes()[v]; ok {
				return box
			}
		}
		return v
	}
	if p.DefaultValue != "" {
		return boxed(p.DefaultValue)
	}
	if v, ok := e.cfg.DefaultValueFor(p.Type); ok {
		return boxed(v)
	}
	if isNullable(p.Type) {
		return "null"
	}
	return "default(" + p.Type + ")"
}
