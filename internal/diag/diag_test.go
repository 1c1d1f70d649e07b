package diag

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollectorSeverities(t *testing.T) {
	tests := []struct {
		name          string
		strict, quiet bool
		want          []Severity
	}{
		{name: "default", want: []Severity{SeverityWarning, SeverityError, SeverityInfo}},
		{name: "strict", strict: true, want: []Severity{SeverityError, SeverityError, SeverityInfo}},
		{name: "quiet", quiet: true, want: []Severity{SeverityError}},
		{name: "strict and quiet", strict: true, quiet: true, want: []Severity{SeverityError, SeverityError}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewCollector("App.Vm", tt.strict, tt.quiet)
			c.Warn(DuplicateCommandName, "SaveCommand", "dup %d", 1)
			c.Error(DuplicateMemberName, "Name", "clash")
			c.Info(UnresolvedDependency, "Name", "missing")

			var got []Severity
			for _, d := range c.Diagnostics() {
				got = append(got, d.Severity)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCollectorQueries(t *testing.T) {
	c := NewCollector("App.Vm", false, false)
	assert.False(t, c.HasErrors())
	assert.False(t, c.Has(DuplicateCommandName))

	c.Warn(DuplicateCommandName, "A", "a")
	c.Warn(DuplicateCommandName, "B", "b")
	assert.Equal(t, 2, c.Count(DuplicateCommandName))
	assert.False(t, c.HasErrors())

	c.Error(MalformedAnnotation, "", "bad")
	assert.True(t, c.HasErrors())
	assert.True(t, c.Has(MalformedAnnotation))
	assert.Zero(t, c.Count(UnsupportedOnPlatform))

	var nilCollector *Collector
	nilCollector.Warn(DuplicateCommandName, "A", "ignored")
	assert.Nil(t, nilCollector.Diagnostics())
}

func TestDiagnosticString(t *testing.T) {
	c := NewCollector("App.PersonViewModel", false, false)
	c.Warn(DuplicateCommandName, "SaveCommand", "methods %s clash", "Save, SaveAsync")
	c.Error(MalformedAnnotation, "", "bad annotation")
	require.Len(t, c.Diagnostics(), 2)

	assert.Equal(t, "warning MVVM0001: App.PersonViewModel.SaveCommand: methods Save, SaveAsync clash", c.Diagnostics()[0].String())
	assert.Equal(t, "error MVVM0002: App.PersonViewModel: bad annotation", c.Diagnostics()[1].String())
	assert.Equal(t, "info MVVM0006: unresolved", Diagnostic{ID: UnresolvedDependency, Severity: SeverityInfo, Message: "unresolved"}.String())
}

func TestSummary(t *testing.T) {
	assert.Equal(t, "no issues", Summary(nil))
	assert.Equal(t, "no issues", Summary([]Diagnostic{{Severity: SeverityInfo}}))
	assert.Equal(t, "1 warning(s)", Summary([]Diagnostic{{Severity: SeverityWarning}}))
	assert.Equal(t, "2 error(s), 1 warning(s)", Summary([]Diagnostic{
		{Severity: SeverityError}, {Severity: SeverityWarning}, {Severity: SeverityError},
	}))
}

func TestTitles(t *testing.T) {
	for _, id := range []ID{DuplicateCommandName, MalformedAnnotation, DuplicateMemberName, InstanceMemberOnStatic, UnsupportedOnPlatform, UnresolvedDependency} {
		assert.NotEqual(t, "unknown", id.Title(), id)
	}
	assert.Equal(t, "unknown", ID("MVVM9999").Title())

	text, err := SeverityError.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "error", string(text))
}
