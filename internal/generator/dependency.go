package generator

import (
	"fmt"
	"strings"

	"mvvmgen/internal/config"
	"mvvmgen/internal/plan"
)

// registration writes a multi-line static registration call.
func (e *emitter) registration(head string, args []string) {
	b := e.b
	if len(args) <= 1 {
		b.AppendLineFormat("%s(%s);", head, strings.Join(args, ""))
		return
	}
	b.AppendLine(head + "(")
	b.IncreaseIndent()
	for i, a := range args {
		if i == len(args)-1 {
			b.AppendLine(a + ");")
		} else {
			b.AppendLine(a + ",")
		}
	}
	b.DecreaseIndent()
}

// nameArg references the property by nameof when a same-named member exists.
func nameArg(name string, hasMember bool) string {
	if hasMember {
		return "nameof(" + name + ")"
	}
	return quote(name)
}

func metadataFlags(flags []string) string {
	parts := make([]string, 0, len(flags))
	for _, f := range flags {
		f = strings.TrimSpace(f)
		if !strings.Contains(f, ".") {
			f = "FrameworkPropertyMetadataOptions." + f
		}
		parts = append(parts, f)
	}
	return strings.Join(parts, " | ")
}

// xamlMetadata builds the metadata argument for WPF and WinUI registrations.
func (e *emitter) xamlMetadata(p *plan.PropertyToGenerate) string {
	args := []string{"defaultValue: " + e.defaultValue(p)}
	changed := p.Callbacks.Changed
	if e.plan.Platform == config.PlatformWinUI {
		if changed != "" {
			args = append(args, "propertyChangedCallback: "+changed)
		}
		return "new PropertyMetadata(" + strings.Join(args, ", ") + ")"
	}

	kind := "PropertyMetadata"
	if len(p.Flags) > 0 {
		kind = "FrameworkPropertyMetadata"
		args = append(args, "flags: "+metadataFlags(p.Flags))
	}
	switch {
	case p.Callbacks.Coerce != "":
		if changed == "" {
			changed = "null"
		}
		args = append(args, "propertyChangedCallback: "+changed, "coerceValueCallback: "+p.Callbacks.Coerce)
	case changed != "":
		args = append(args, "propertyChangedCallback: "+changed)
	}
	return "new " + kind + "(" + strings.Join(args, ", ") + ")"
}

// avaloniaArgs returns the optional named arguments of an Avalonia
// registration.
func (e *emitter) avaloniaArgs(p *plan.PropertyToGenerate) []string {
	var args []string
	if p.DefaultValue != "" {
		args = append(args, "defaultValue: "+p.DefaultValue)
	}
	if p.Callbacks.Validate != "" {
		args = append(args, "validate: "+p.Callbacks.Validate)
	}
	if p.Callbacks.Coerce != "" {
		args = append(args, "coerce: "+p.Callbacks.Coerce)
	}
	return args
}

func writeDesignerAttributes(e *emitter, p *plan.PropertyToGenerate) {
	attrs := make([]string, 0, len(p.Attributes)+2)
	if p.Category != "" {
		attrs = append(attrs, "Category("+quote(p.Category)+")")
	}
	if p.Description != "" {
		attrs = append(attrs, "Description("+quote(p.Description)+")")
	}
	attrs = append(attrs, p.Attributes...)
	writeDoc(e.b, p.Doc, attrs)
}

// dependencyProperty emits a dependency (WPF, WinUI) or styled (Avalonia)
// property and its CLR wrapper.
func (e *emitter) dependencyProperty(p *plan.PropertyToGenerate) {
	b := e.b
	owner := e.plan.ClassName
	field := p.Name + "Property"

	if e.plan.Platform == config.PlatformAvalonia {
		args := append([]string{"nameof(" + p.Name + ")"}, e.avaloniaArgs(p)...)
		e.registration(fmt.Sprintf("public static readonly StyledProperty<%s> %s = AvaloniaProperty.Register<%s, %s>", p.Type, field, owner, p.Type), args)
		b.AppendBlankLine()
		writeDesignerAttributes(e, p)
		b.AppendLineFormat("%s %s", e.propertyModifiers(p), p.Name)
		b.OpenBlock()
		b.AppendLineFormat("get => GetValue(%s);", field)
		b.AppendLineFormat("set => SetValue(%s, value);", field)
		b.CloseBlock("")
		return
	}

	readOnly := p.IsReadOnly && e.plan.Platform == config.PlatformWPF
	args := []string{"nameof(" + p.Name + ")", "typeof(" + p.Type + ")", "typeof(" + owner + ")", e.xamlMetadata(p)}
	if p.Callbacks.Validate != "" && e.plan.Platform == config.PlatformWPF {
		args = append(args, "validateValueCallback: "+p.Callbacks.Validate)
	}

	setter := fmt.Sprintf("set => SetValue(%s, value);", field)
	if readOnly {
		key := field + "Key"
		e.registration(fmt.Sprintf("private static readonly DependencyPropertyKey %s = DependencyProperty.RegisterReadOnly", key), args)
		b.AppendBlankLine()
		b.AppendLineFormat("public static readonly DependencyProperty %s = %s.DependencyProperty;", field, key)
		setter = fmt.Sprintf("private set => SetValue(%s, value);", key)
	} else {
		e.registration(fmt.Sprintf("public static readonly DependencyProperty %s = DependencyProperty.Register", field), args)
	}

	b.AppendBlankLine()
	writeDesignerAttributes(e, p)
	b.AppendLineFormat("%s %s", e.propertyModifiers(p), p.Name)
	b.OpenBlock()
	b.AppendLineFormat("get => (%s)GetValue(%s);", p.Type, field)
	b.AppendLine(setter)
	b.CloseBlock("")
}

func (e *emitter) attachedHost(p *plan.PropertyToGenerate) string {
	if p.AttachedTo != "" {
		return p.AttachedTo
	}
	if e.plan.Platform == config.PlatformAvalonia {
		return "AvaloniaObject"
	}
	return "DependencyObject"
}

// attachedProperty emits an attached property with its static Get and Set
// accessors.
func (e *emitter) attachedProperty(p *plan.PropertyToGenerate) {
	b := e.b
	owner := e.plan.ClassName
	host := e.attachedHost(p)
	field := p.Name + "Property"
	setKey := field
	setAccess := "public"
	cast := "(" + p.Type + ")"

	switch e.plan.Platform {
	case config.PlatformAvalonia:
		args := append([]string{quote(p.Name)}, e.avaloniaArgs(p)...)
		e.registration(fmt.Sprintf("public static readonly AttachedProperty<%s> %s = AvaloniaProperty.RegisterAttached<%s, %s, %s>", p.Type, field, owner, host, p.Type), args)
		cast = ""
	default:
		args := []string{quote(p.Name), "typeof(" + p.Type + ")", "typeof(" + owner + ")", e.xamlMetadata(p)}
		if p.Callbacks.Validate != "" && e.plan.Platform == config.PlatformWPF {
			args = append(args, "validateValueCallback: "+p.Callbacks.Validate)
		}
		if p.IsReadOnly && e.plan.Platform == config.PlatformWPF {
			setKey = field + "Key"
			setAccess = "private"
			e.registration(fmt.Sprintf("private static readonly DependencyPropertyKey %s = DependencyProperty.RegisterAttachedReadOnly", setKey), args)
			b.AppendBlankLine()
			b.AppendLineFormat("public static readonly DependencyProperty %s = %s.DependencyProperty;", field, setKey)
		} else {
			e.registration(fmt.Sprintf("public static readonly DependencyProperty %s = DependencyProperty.RegisterAttached", field), args)
		}
	}

	b.AppendBlankLine()
	writeDesignerAttributes(e, p)
	b.AppendLineFormat("public static %s Get%s(%s element)", p.Type, p.Name, host)
	b.OpenBlock()
	b.AppendLine("ArgumentNullException.ThrowIfNull(element);")
	b.AppendLineFormat("return %selement.GetValue(%s);", cast, field)
	b.CloseBlock("")
	b.AppendBlankLine()
	b.AppendLineFormat("%s static void Set%s(%s element, %s value)", setAccess, p.Name, host, p.Type)
	b.OpenBlock()
	b.AppendLine("ArgumentNullException.ThrowIfNull(element);")
	b.AppendLineFormat("element.SetValue(%s, value);", setKey)
	b.CloseBlock("")
}

// avaloniaClassHandlers wires property changed callbacks through a static
// constructor, since Avalonia registrations take no changed callback.
func (e *emitter) avaloniaClassHandlers() {
	if e.plan.Platform != config.PlatformAvalonia {
		return
	}
	var lines []string
	for _, p := range e.plan.DependencyProperties {
		if p.Callbacks.Changed != "" {
			lines = append(lines, fmt.Sprintf("%sProperty.Changed.AddClassHandler<%s>(%s);", p.Name, e.plan.ClassName, p.Callbacks.Changed))
		}
	}
	for _, p := range e.plan.AttachedProperties {
		if p.Callbacks.Changed != "" {
			lines = append(lines, fmt.Sprintf("%sProperty.Changed.AddClassHandler<%s>(%s);", p.Name, e.attachedHost(p), p.Callbacks.Changed))
		}
	}
	if len(lines) == 0 {
		return
	}
	e.b.AppendLineFormat("static %s()", e.plan.ClassName)
	e.b.OpenBlock()
	for _, l := range lines {
		e.b.AppendLine(l)
	}
	e.b.CloseBlock("")
}

// routedEvent emits a routed event field and its CLR event accessor. Static
// owners get Add and Remove handler methods instead.
func (e *emitter) routedEvent(r *plan.RoutedEventToGenerate) {
	b := e.b
	owner := e.plan.ClassName
	field := r.Name + "Event"
	static := e.plan.IsStatic

	var handler string
	if e.plan.Platform == config.PlatformAvalonia {
		args := "RoutedEventArgs"
		if strings.HasSuffix(r.HandlerType, "EventArgs") {
			args = r.HandlerType
		}
		handler = "EventHandler<" + args + ">"
		e.registration(fmt.Sprintf("public static readonly RoutedEvent<%s> %s = RoutedEvent.Register<%s, %s>", args, field, owner, args),
			[]string{nameArg(r.Name, !static), "RoutingStrategies." + r.Strategy})
	} else {
		handler = r.HandlerType
		e.registration(fmt.Sprintf("public static readonly RoutedEvent %s = EventManager.RegisterRoutedEvent", field),
			[]string{nameArg(r.Name, !static), "RoutingStrategy." + r.Strategy, "typeof(" + handler + ")", "typeof(" + owner + ")"})
	}
	b.AppendBlankLine()
	writeDoc(b, r.Doc, nil)

	if static {
		target := "UIElement"
		if e.plan.Platform == config.PlatformAvalonia {
			target = "Interactive"
		}
		for i, verb := range []string{"Add", "Remove"} {
			if i > 0 {
				b.AppendBlankLine()
			}
			b.AppendLineFormat("public static void %s%sHandler(%s element, %s handler)", verb, r.Name, target, handler)
			b.OpenBlock()
			b.AppendLine("ArgumentNullException.ThrowIfNull(element);")
			b.AppendLineFormat("element.%sHandler(%s, handler);", verb, field)
			b.CloseBlock("")
		}
		return
	}

	b.AppendLineFormat("public event %s %s", handler, r.Name)
	b.OpenBlock()
	b.AppendLineFormat("add => AddHandler(%s, value);", field)
	b.AppendLineFormat("remove => RemoveHandler(%s, value);", field)
	b.CloseBlock("")
}
