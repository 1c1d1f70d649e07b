package generator

import (
	"mvvmgen/internal/plan"
)

// dtoProjection emits a view model that wraps a DTO instance and forwards
// each DTO member through a change-notifying property.
func (e *emitter) dtoProjection() {
	d := e.plan.DtoViewModel
	if d == nil {
		return
	}
	b := e.b
	opts := e.cfg.Options

	if d.IsRecord {
		b.AppendLineFormat("private %s dto;", d.DtoTypeName)
	} else {
		b.AppendLineFormat("private readonly %s dto;", d.DtoTypeName)
	}
	if d.TrackDirty {
		b.AppendLine("private bool isDirty;")
	}
	b.AppendBlankLine()

	b.AppendLineFormat("public %s(%s dto)", e.plan.ClassName, d.DtoTypeName)
	b.OpenBlock()
	b.AppendLine("ArgumentNullException.ThrowIfNull(dto);")
	b.AppendLine("this.dto = dto;")
	if d.ValidateOnInit && opts.ValidateMethod != "" {
		for _, p := range d.Properties {
			b.AppendLineFormat("%s(%s, nameof(%s));", opts.ValidateMethod, p.Name, p.Name)
		}
	}
	b.CloseBlock("")
	b.AppendBlankLine()

	b.AppendLineFormat("public %s InnerModel => dto;", d.DtoTypeName)

	for i := range d.Properties {
		b.AppendBlankLine()
		e.dtoProperty(d, &d.Properties[i])
	}

	if d.TrackDirty {
		b.AppendBlankLine()
		b.AppendLine("public bool IsDirty")
		b.OpenBlock()
		b.AppendLine("get => isDirty;")
		b.AppendLine("private set")
		b.OpenBlock()
		b.AppendLine("if (isDirty == value)")
		b.OpenBlock()
		b.AppendLine("return;")
		b.CloseBlock("")
		b.AppendBlankLine()
		b.AppendLine("isDirty = value;")
		b.AppendLineFormat("%s(nameof(IsDirty));", opts.NotifyMethod)
		b.CloseBlock("")
		b.CloseBlock("")
		b.AppendBlankLine()
		b.AppendLine("public void ResetDirty() => IsDirty = false;")
	}

	b.AppendBlankLine()
	b.AppendLineFormat("public %s ToDto() => dto;", d.DtoTypeName)
}

func (e *emitter) dtoProperty(d *plan.ObservableDtoViewModelToGenerate, p *plan.DtoPropertyInfo) {
	b := e.b
	opts := e.cfg.Options

	writeDoc(b, p.Doc, p.Attributes)
	if p.IsReadOnly && !p.IsRecordParameter {
		b.AppendLineFormat("public %s %s => dto.%s;", p.Type, p.Name, p.Name)
		return
	}

	b.AppendLineFormat("public %s %s", p.Type, p.Name)
	b.OpenBlock()
	b.AppendLineFormat("get => dto.%s;", p.Name)
	b.AppendLine("set")
	b.OpenBlock()
	b.AppendLineFormat("if (EqualityComparer<%s>.Default.Equals(dto.%s, value))", p.Type, p.Name)
	b.OpenBlock()
	b.AppendLine("return;")
	b.CloseBlock("")
	b.AppendBlankLine()
	if d.IsRecord {
		b.AppendLineFormat("dto = dto with { %s = value };", p.Name)
	} else {
		b.AppendLineFormat("dto.%s = value;", p.Name)
	}
	if d.TrackDirty {
		b.AppendLine("IsDirty = true;")
	}
	b.AppendLineFormat("%s(nameof(%s));", opts.NotifyMethod, p.Name)
	if d.ValidateOnChange && opts.ValidateMethod != "" {
		b.AppendLineFormat("%s(value, nameof(%s));", opts.ValidateMethod, p.Name)
	}
	b.CloseBlock("")
	b.CloseBlock("")
}
