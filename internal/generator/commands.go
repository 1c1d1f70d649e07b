package generator

import (
	"fmt"
	"strings"

	"mvvmgen/internal/plan"
)

type commandShape struct {
	async     bool
	generic   bool
	iface     string
	impl      string
	wrapper   string
	cancelSrc string
}

func shapeOf(c *plan.RelayCommandToGenerate) commandShape {
	s := commandShape{
		async:   c.RunsAsync(),
		generic: c.HasParameter() && c.ParameterValue == "",
		wrapper: c.WrapperName(),
	}
	s.iface, s.impl = "IRelayCommand", "RelayCommand"
	if s.async {
		s.iface, s.impl = "IRelayCommandAsync", "RelayCommandAsync"
	}
	if s.generic {
		s.iface += "<" + c.ParameterType + ">"
		s.impl += "<" + c.ParameterType + ">"
	}
	if c.SupportsCancellation {
		s.cancelSrc = c.CancellationSourceName()
	}
	return s
}

// canExecuteArg renders the can-execute delegate matching the command shape.
func canExecuteArg(c *plan.RelayCommandToGenerate, s commandShape) string {
	switch {
	case c.CanExecute == "":
		return ""
	case c.CanExecuteIsProperty && s.generic:
		return "_ => " + c.CanExecute
	case c.CanExecuteIsProperty:
		return "() => " + c.CanExecute
	case c.ParameterValue != "":
		return fmt.Sprintf("() => %s(%s)", c.CanExecute, c.ParameterValue)
	default:
		return c.CanExecute
	}
}

// relayCommand emits a lazily created command property, plus the execution
// wrapper and cancel command when the options need them.
func (e *emitter) relayCommand(c *plan.RelayCommandToGenerate) {
	b := e.b
	s := shapeOf(c)

	execute := c.MethodName
	switch {
	case s.wrapper != "":
		execute = s.wrapper
	case c.ParameterValue != "":
		execute = fmt.Sprintf("() => %s(%s)", c.MethodName, c.ParameterValue)
	}
	args := execute
	if ce := canExecuteArg(c, s); ce != "" {
		args += ", " + ce
	}

	if s.cancelSrc != "" {
		b.AppendLineFormat("private CancellationTokenSource? %s;", s.cancelSrc)
		b.AppendBlankLine()
	}
	b.AppendLineFormat("private %s? %s;", s.iface, c.FieldName())
	b.AppendBlankLine()
	writeDoc(b, c.Doc, nil)
	b.AppendLineFormat("public %s %s => %s ??= new %s(%s);", s.iface, c.CommandName, c.FieldName(), s.impl, args)

	if s.cancelSrc != "" {
		cancelName := c.CancelCommandName()
		cancelField := c.CancelFieldName()
		b.AppendBlankLine()
		b.AppendLineFormat("private IRelayCommand? %s;", cancelField)
		b.AppendBlankLine()
		b.AppendLineFormat("public IRelayCommand %s => %s ??= new RelayCommand(() => %s?.Cancel());", cancelName, cancelField, s.cancelSrc)
	}

	if s.wrapper != "" {
		b.AppendBlankLine()
		e.commandWrapper(c, s)
	}
}

func (e *emitter) commandWrapper(c *plan.RelayCommandToGenerate, s commandShape) {
	b := e.b
	busy := e.cfg.Options.BusyPropertyName

	param := ""
	if s.generic {
		param = c.ParameterType + " parameter"
	}
	if s.async {
		b.AppendLineFormat("private async Task %s(%s)", s.wrapper, param)
	} else {
		b.AppendLineFormat("private void %s(%s)", s.wrapper, param)
	}
	b.OpenBlock()

	var callArgs []string
	switch {
	case s.generic:
		callArgs = append(callArgs, "parameter")
	case c.ParameterValue != "":
		callArgs = append(callArgs, c.ParameterValue)
	}
	token := ""
	if s.cancelSrc != "" {
		token = b.GetUniqueVariableName("token")
		b.AppendLineFormat("%s?.Dispose();", s.cancelSrc)
		b.AppendLineFormat("%s = new CancellationTokenSource();", s.cancelSrc)
		b.AppendLineFormat("var %s = %s.Token;", token, s.cancelSrc)
		if c.MethodTakesToken {
			callArgs = append(callArgs, token)
		}
	}

	call := fmt.Sprintf("%s(%s)", c.MethodName, strings.Join(callArgs, ", "))
	switch {
	case c.ExecuteOnBackgroundThread && token != "":
		call = fmt.Sprintf("await Task.Run(() => %s, %s);", call, token)
	case c.ExecuteOnBackgroundThread:
		call = fmt.Sprintf("await Task.Run(() => %s);", call)
	case c.IsAsync:
		call = "await " + call + ";"
	default:
		call += ";"
	}

	if c.AutoSetIsBusy && busy != "" {
		b.AppendLineFormat("%s = true;", busy)
		b.AppendLine("try")
		b.OpenBlock()
		b.AppendLine(call)
		b.CloseBlock("")
		b.AppendLine("finally")
		b.OpenBlock()
		b.AppendLineFormat("%s = false;", busy)
		b.CloseBlock("")
	} else {
		b.AppendLine(call)
	}
	b.CloseBlock("")
}
