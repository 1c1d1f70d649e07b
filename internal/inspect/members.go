package inspect

import (
	"slices"
	"strings"

	"mvvmgen/internal/model"
	"mvvmgen/internal/naming"
	"mvvmgen/internal/plan"
)

const cancellationTokenType = "CancellationToken"

// relayCommand builds a command from an annotated method.
func relayCommand(r *Result, decl *model.TypeDecl, m *model.MethodDecl, a *model.Annotation) (*plan.RelayCommandToGenerate, bool) {
	if !naming.IsIdentifier(m.Name) {
		r.reject(m.Name, a.Kind, "%q is not a valid method name", m.Name)
		return nil, false
	}

	commandName := naming.CommandName(m.Name)
	if explicit, ok := a.ExplicitName(); ok {
		if explicit == "" {
			r.reject(m.Name, a.Kind, "explicit name must not be empty")
			return nil, false
		}
		commandName = naming.WithCommandSuffix(naming.UpperFirst(explicit))
	}

	params := m.Parameters
	takesToken := false
	if n := len(params); n > 0 && isCancellationToken(params[n-1].Type) {
		takesToken = true
		params = params[:n-1]
	}
	if len(params) > 1 {
		r.reject(m.Name, a.Kind, "relay-command methods take at most one parameter besides a cancellation token")
		return nil, false
	}

	opts := a.Command
	c := &plan.RelayCommandToGenerate{
		CommandName:               commandName,
		MethodName:                m.Name,
		ParameterValue:            strings.TrimSpace(opts.ParameterValue),
		CanExecute:                strings.TrimSpace(opts.CanExecute),
		IsAsync:                   isAsync(m),
		MethodTakesToken:          takesToken,
		SupportsCancellation:      opts.SupportsCancellation || takesToken,
		AutoSetIsBusy:             opts.AutoSetIsBusy,
		ExecuteOnBackgroundThread: opts.ExecuteOnBackgroundThread,
		Doc:                       firstNonEmpty(a.Doc, m.Doc),
	}
	if len(params) == 1 {
		c.ParameterType = strings.TrimSpace(params[0].Type)
	}

	if c.ParameterValue != "" && c.ParameterType == "" {
		r.reject(m.Name, a.Kind, "parameterValue needs a method parameter to bind to")
		return nil, false
	}
	if c.SupportsCancellation && !c.IsAsync {
		r.reject(m.Name, a.Kind, "cancellation requires an async method")
		return nil, false
	}
	if c.SupportsCancellation && !c.MethodTakesToken {
		r.reject(m.Name, a.Kind, "cancellation requires a trailing CancellationToken parameter")
		return nil, false
	}
	if c.CanExecute != "" {
		c.CanExecuteIsProperty = declaresProperty(decl, c.CanExecute)
	}
	return c, true
}

func isCancellationToken(t string) bool {
	t = strings.TrimSpace(t)
	return t == cancellationTokenType || strings.HasSuffix(t, "."+cancellationTokenType)
}

func isAsync(m *model.MethodDecl) bool {
	rt := strings.TrimSpace(m.ReturnType)
	return strings.HasPrefix(rt, "Task") || strings.HasPrefix(rt, "ValueTask") ||
		strings.HasPrefix(rt, "System.Threading.Tasks.") || strings.HasSuffix(m.Name, "Async")
}

// declaresProperty reports whether name is a hand-written property of decl.
// Generated properties are matched later by the linker.
func declaresProperty(decl *model.TypeDecl, name string) bool {
	return slices.ContainsFunc(decl.Properties, func(p model.FieldDecl) bool { return p.Name == name })
}

// classLevelComputed builds a computed property declared on the class. The
// engine emits its accessor when an expression is supplied.
func classLevelComputed(r *Result, a *model.Annotation) (*plan.ComputedPropertyToGenerate, bool) {
	name, ok := a.ExplicitName()
	if !ok || name == "" {
		r.reject("", a.Kind, "class-level annotation requires a name")
		return nil, false
	}
	expr := strings.TrimSpace(a.Expression)
	typ := strings.TrimSpace(a.Type)
	if expr != "" && typ == "" {
		r.reject(name, a.Kind, "computed property with an expression requires a type")
		return nil, false
	}
	return &plan.ComputedPropertyToGenerate{
		Name:                name,
		Type:                typ,
		Expression:          expr,
		SourcePropertyNames: mergeUnique(nil, a.DependsOn),
		Doc:                 a.Doc,
	}, true
}

// declaredComputed registers a hand-written computed property; only its
// dependencies are linked, its accessor is left to the user.
func declaredComputed(r *Result, p *model.FieldDecl, a *model.Annotation) (*plan.ComputedPropertyToGenerate, bool) {
	if !naming.IsIdentifier(p.Name) {
		r.reject(p.Name, a.Kind, "%q is not a valid property name", p.Name)
		return nil, false
	}
	if len(a.DependsOn) == 0 {
		r.reject(p.Name, a.Kind, "computed property must list the properties it depends on")
		return nil, false
	}
	return &plan.ComputedPropertyToGenerate{
		Name:                p.Name,
		Type:                p.Type,
		SourcePropertyNames: mergeUnique(nil, a.DependsOn),
	}, true
}

var routingStrategies = map[string]string{
	"":       "Bubble",
	"bubble": "Bubble",
	"tunnel": "Tunnel",
	"direct": "Direct",
}

func routedEvent(r *Result, a *model.Annotation) (*plan.RoutedEventToGenerate, bool) {
	name, ok := a.ExplicitName()
	if !ok || name == "" {
		r.reject("", a.Kind, "class-level annotation requires a name")
		return nil, false
	}
	if !naming.IsIdentifier(name) {
		r.reject(name, a.Kind, "%q is not a valid event name", name)
		return nil, false
	}
	strategy, ok := routingStrategies[strings.ToLower(strings.TrimSpace(a.RoutingStrategy))]
	if !ok {
		r.reject(name, a.Kind, "unknown routing strategy %q", a.RoutingStrategy)
		return nil, false
	}
	handler := strings.TrimSpace(a.HandlerType)
	if handler == "" {
		handler = "RoutedEventHandler"
	}
	return &plan.RoutedEventToGenerate{
		Name:        name,
		Strategy:    strategy,
		HandlerType: handler,
		Doc:         a.Doc,
	}, true
}

// dtoProjection resolves the projected DTO and plans one wrapper property per
// member that is not ignored. The DTO declaration is only read.
func (in *Inspector) dtoProjection(r *Result, a *model.Annotation, dtos DtoSource) {
	dtoName := strings.TrimSpace(a.Type)
	if dtoName == "" {
		r.reject("", a.Kind, "dto-projection requires the DTO type")
		return
	}
	if r.DtoViewModel != nil {
		r.reject(dtoName, a.Kind, "only one dto-projection is allowed per type")
		return
	}
	if dtos == nil {
		r.reject(dtoName, a.Kind, "unknown DTO type %q", dtoName)
		return
	}
	dto, ok := dtos.FindDto(dtoName)
	if !ok {
		r.reject(dtoName, a.Kind, "unknown DTO type %q", dtoName)
		return
	}

	vm := &plan.ObservableDtoViewModelToGenerate{
		DtoTypeName:      dtoName,
		IsRecord:         dto.IsRecord,
		ValidateOnChange: a.Dto.ValidateOnChange,
		ValidateOnInit:   a.Dto.ValidateOnInit,
		TrackDirty:       a.Dto.TrackDirty,
	}
	for _, dp := range dto.Properties {
		if slices.Contains(a.Dto.IgnoreProperties, dp.Name) {
			continue
		}
		if !naming.IsIdentifier(dp.Name) || strings.TrimSpace(dp.Type) == "" {
			r.reject(dtoName, a.Kind, "DTO member %q has no usable name or type", dp.Name)
			continue
		}
		vm.Properties = append(vm.Properties, plan.DtoPropertyInfo{
			Name:              dp.Name,
			Type:              strings.TrimSpace(dp.Type),
			IsRecordParameter: dp.IsRecordParameter,
			IsReadOnly:        dp.ReadOnly,
			Attributes:        slices.Clone(dp.Attributes),
			Doc:               slices.Clone(dp.Doc),
		})
	}
	r.DtoViewModel = vm
}
