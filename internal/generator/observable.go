package generator

import (
	"mvvmgen/internal/plan"
)

// observableProperty emits a change-notifying property over its backing
// field. Nothing is raised when the assigned value equals the current one.
func (e *emitter) observableProperty(p *plan.PropertyToGenerate) {
	b := e.b
	opts := e.cfg.Options

	if p.EmitsBackingField {
		b.AppendLineFormat("private %s %s;", p.Type, p.BackingFieldName)
		b.AppendBlankLine()
	}
	writeDoc(b, p.Doc, p.Attributes)
	b.AppendLineFormat("%s %s", e.propertyModifiers(p), p.Name)
	b.OpenBlock()
	b.AppendLineFormat("get => %s;", p.BackingFieldName)
	if p.IsReadOnly {
		b.AppendLine("private set")
	} else {
		b.AppendLine("set")
	}
	b.OpenBlock()
	b.AppendLineFormat("if (EqualityComparer<%s>.Default.Equals(%s, value))", p.Type, p.BackingFieldName)
	b.OpenBlock()
	b.AppendLine("return;")
	b.CloseBlock("")
	b.AppendBlankLine()

	if p.Callbacks.BeforeChanged != "" {
		b.AppendLine(invoke(p.Callbacks.BeforeChanged))
	}
	b.AppendLineFormat("%s = value;", p.BackingFieldName)
	b.AppendLineFormat("%s(nameof(%s));", opts.NotifyMethod, p.Name)
	for _, name := range p.PropertyNamesToInvalidate {
		b.AppendLineFormat("%s(nameof(%s));", opts.NotifyMethod, name)
	}
	if p.Callbacks.Changed != "" {
		b.AppendLine(invoke(p.Callbacks.Changed))
	}
	for _, cmd := range p.CommandNamesToInvalidate {
		b.AppendLineFormat("%s.%s();", cmd, opts.CommandNotifyMethod)
	}
	b.CloseBlock("")
	b.CloseBlock("")
}

func (e *emitter) propertyModifiers(p *plan.PropertyToGenerate) string {
	if p.IsNew {
		return "public new " + p.Type
	}
	return "public " + p.Type
}

// computedProperty emits an expression-bodied getter. Its change
// notifications are raised by the source properties.
func (e *emitter) computedProperty(c *plan.ComputedPropertyToGenerate) {
	writeDoc(e.b, c.Doc, nil)
	e.b.AppendLineFormat("public %s %s => %s;", c.Type, c.Name, c.Expression)
}
