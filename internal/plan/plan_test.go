package plan

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"mvvmgen/internal/config"
	"mvvmgen/internal/model"
)

func TestFoundAnythingToGenerate(t *testing.T) {
	decl := &model.TypeDecl{Namespace: "App", Name: "PersonViewModel"}

	empty := Assemble(decl, config.PlatformWPF, Descriptors{})
	assert.False(t, empty.FoundAnythingToGenerate())

	handWritten := Assemble(decl, config.PlatformWPF, Descriptors{
		ComputedProperties: []*ComputedPropertyToGenerate{{Name: "FullName", SourcePropertyNames: []string{"FirstName"}}},
	})
	assert.False(t, handWritten.FoundAnythingToGenerate(), "computed properties without expression emit nothing")

	cases := map[string]Descriptors{
		"observable": {ObservableProperties: []*PropertyToGenerate{{Name: "A"}}},
		"dependency": {DependencyProperties: []*PropertyToGenerate{{Name: "A", Flavor: FlavorDependency}}},
		"attached":   {AttachedProperties: []*PropertyToGenerate{{Name: "A", Flavor: FlavorAttached}}},
		"command":    {RelayCommands: []*RelayCommandToGenerate{{CommandName: "SaveCommand"}}},
		"dto":        {DtoViewModel: &ObservableDtoViewModelToGenerate{DtoTypeName: "PersonDto"}},
		"computed":   {ComputedProperties: []*ComputedPropertyToGenerate{{Name: "X", Type: "int", Expression: "1"}}},
		"event":      {RoutedEvents: []*RoutedEventToGenerate{{Name: "Tapped"}}},
	}
	for name, d := range cases {
		t.Run(name, func(t *testing.T) {
			assert.True(t, Assemble(decl, config.PlatformWPF, d).FoundAnythingToGenerate())
		})
	}

	var nilPlan *Plan
	assert.False(t, nilPlan.FoundAnythingToGenerate())
}

func TestAssembleStaticOwner(t *testing.T) {
	decl := &model.TypeDecl{Namespace: "App.Behaviors", Name: "DragBehavior", IsStatic: true}
	attached := &PropertyToGenerate{Name: "IsDraggable", Flavor: FlavorAttached}

	p := Assemble(decl, config.PlatformWPF, Descriptors{
		ObservableProperties: []*PropertyToGenerate{{Name: "A"}},
		RelayCommands:        []*RelayCommandToGenerate{{CommandName: "SaveCommand"}},
		AttachedProperties:   []*PropertyToGenerate{attached},
	})

	assert.True(t, p.IsStatic)
	assert.Empty(t, p.ObservableProperties)
	assert.Empty(t, p.RelayCommands)
	assert.Len(t, p.AttachedProperties, 1)
	assert.True(t, attached.OwnerIsStatic)
	assert.Equal(t, "public", p.Accessibility)
	assert.Equal(t, "App.Behaviors.DragBehavior", p.FullName())
	assert.True(t, p.FoundAnythingToGenerate())
}

func TestAssembleDropsRoutedEventsOnWinUI(t *testing.T) {
	decl := &model.TypeDecl{Name: "Card", Accessibility: "internal"}
	p := Assemble(decl, config.PlatformWinUI, Descriptors{
		RoutedEvents: []*RoutedEventToGenerate{{Name: "Tapped"}},
	})
	assert.Empty(t, p.RoutedEvents)
	assert.False(t, p.FoundAnythingToGenerate())
	assert.Equal(t, "internal", p.Accessibility)
}

func TestHasAnyMetadata(t *testing.T) {
	assert.False(t, (&PropertyToGenerate{Name: "A", Type: "int"}).HasAnyMetadata())
	assert.True(t, (&PropertyToGenerate{DefaultValue: "1"}).HasAnyMetadata())
	assert.True(t, (&PropertyToGenerate{Callbacks: model.Callbacks{Changed: "OnChanged"}}).HasAnyMetadata())
	assert.True(t, (&PropertyToGenerate{Category: "Layout"}).HasAnyMetadata())
	assert.True(t, (&PropertyToGenerate{Flags: []string{"AffectsMeasure"}}).HasAnyMetadata())
}

func TestAddToInvalidate(t *testing.T) {
	p := &PropertyToGenerate{Name: "FirstName"}
	assert.True(t, p.AddPropertyToInvalidate("FullName"))
	assert.False(t, p.AddPropertyToInvalidate("FullName"))
	assert.False(t, p.AddPropertyToInvalidate("FirstName"))
	assert.False(t, p.AddPropertyToInvalidate(""))
	assert.Equal(t, []string{"FullName"}, p.PropertyNamesToInvalidate)

	assert.True(t, p.AddCommandToInvalidate("SaveCommand"))
	assert.False(t, p.AddCommandToInvalidate("SaveCommand"))
	assert.Equal(t, []string{"SaveCommand"}, p.CommandNamesToInvalidate)
}

func TestMembers(t *testing.T) {
	p := &Plan{Platform: config.PlatformWPF, Descriptors: Descriptors{
		ObservableProperties: []*PropertyToGenerate{{Name: "Name"}},
		AttachedProperties:   []*PropertyToGenerate{{Name: "Row", Flavor: FlavorAttached}},
		ComputedProperties: []*ComputedPropertyToGenerate{
			{Name: "Hand"},
			{Name: "Auto", Type: "int", Expression: "1"},
		},
		RelayCommands: []*RelayCommandToGenerate{{CommandName: "SaveCommand", MethodName: "Save"}},
	}}
	assert.Equal(t, []Member{
		{Name: "RowProperty", Kind: "attached property"},
		{Name: "GetRow", Kind: "attached property"},
		{Name: "SetRow", Kind: "attached property"},
		{Name: "Name", Kind: "observable property"},
		{Name: "Auto", Kind: "computed property"},
		{Name: "SaveCommand", Kind: "command"},
		{Name: "saveCommand", Kind: "command"},
	}, p.Members())
}

func TestMembersIncludeHelpers(t *testing.T) {
	names := func(p *Plan) []string {
		var out []string
		for _, m := range p.Members() {
			out = append(out, m.Name)
		}
		return out
	}

	commands := &Plan{Descriptors: Descriptors{RelayCommands: []*RelayCommandToGenerate{{
		CommandName:          "SaveCommand",
		MethodName:           "SaveAsync",
		IsAsync:              true,
		MethodTakesToken:     true,
		SupportsCancellation: true,
	}}}}
	assert.Equal(t, []string{
		"SaveCommand", "saveCommand",
		"saveCommandCancellation", "CancelSaveCommand", "cancelSaveCommand",
		"ExecuteSaveCommandAsync",
	}, names(commands))

	dto := &Plan{Descriptors: Descriptors{DtoViewModel: &ObservableDtoViewModelToGenerate{
		DtoTypeName: "PersonDto",
		TrackDirty:  true,
		Properties:  []DtoPropertyInfo{{Name: "Age", Type: "int"}},
	}}}
	assert.Equal(t, []string{"Age", "dto", "InnerModel", "ToDto", "isDirty", "IsDirty", "ResetDirty"}, names(dto))

	readOnly := &PropertyToGenerate{Name: "Size", Flavor: FlavorDependency, IsReadOnly: true}
	wpf := &Plan{Platform: config.PlatformWPF, IsStatic: true, Descriptors: Descriptors{
		DependencyProperties: []*PropertyToGenerate{readOnly},
		RoutedEvents:         []*RoutedEventToGenerate{{Name: "Tapped"}},
	}}
	assert.Equal(t, []string{"Size", "SizeProperty", "SizePropertyKey", "TappedEvent", "AddTappedHandler", "RemoveTappedHandler"}, names(wpf))

	avalonia := &Plan{Platform: config.PlatformAvalonia, Descriptors: Descriptors{
		DependencyProperties: []*PropertyToGenerate{readOnly},
		RoutedEvents:         []*RoutedEventToGenerate{{Name: "Tapped"}},
	}}
	assert.Equal(t, []string{"Size", "SizeProperty", "TappedEvent", "Tapped"}, names(avalonia))
}

func TestAssembleKeepsFirstCommandPerName(t *testing.T) {
	decl := &model.TypeDecl{Namespace: "App", Name: "PersonViewModel"}
	save := &RelayCommandToGenerate{CommandName: "SaveCommand", MethodName: "Save"}
	saveAsync := &RelayCommandToGenerate{CommandName: "SaveCommand", MethodName: "SaveAsync", IsAsync: true}
	load := &RelayCommandToGenerate{CommandName: "LoadCommand", MethodName: "Load"}

	p := Assemble(decl, config.PlatformWPF, Descriptors{RelayCommands: []*RelayCommandToGenerate{save, saveAsync, load}})
	assert.Equal(t, []*RelayCommandToGenerate{save, load}, p.RelayCommands)
	assert.Nil(t, UniqueCommands(nil))
}

func TestCommandMemberNames(t *testing.T) {
	c := &RelayCommandToGenerate{CommandName: "SaveCommand", MethodName: "Save"}
	assert.Equal(t, "saveCommand", c.FieldName())
	assert.Empty(t, c.WrapperName())

	c.AutoSetIsBusy = true
	assert.Equal(t, "ExecuteSaveCommand", c.WrapperName())
	c.ExecuteOnBackgroundThread = true
	assert.True(t, c.RunsAsync())
	assert.Equal(t, "ExecuteSaveCommandAsync", c.WrapperName())

	assert.Equal(t, "saveCommandCancellation", c.CancellationSourceName())
	assert.Equal(t, "CancelSaveCommand", c.CancelCommandName())
	assert.Equal(t, "cancelSaveCommand", c.CancelFieldName())
}
