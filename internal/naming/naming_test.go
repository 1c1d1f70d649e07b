package naming

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPropertyName(t *testing.T) {
	prefixes := []string{"_", "m_", "s_"}

	cases := []struct {
		field string
		want  string
	}{
		{"firstName", "FirstName"},
		{"_firstName", "FirstName"},
		{"m_age", "Age"},
		{"s_instance", "Instance"},
		{"Title", "Title"},
		{"_", "_"},
		{"x", "X"},
	}

	for _, tc := range cases {
		t.Run(tc.field, func(t *testing.T) {
			assert.Equal(t, tc.want, PropertyName(tc.field, prefixes))
		})
	}
}

func TestPropertyNameStripsOnlyOnePrefix(t *testing.T) {
	assert.Equal(t, "M_value", PropertyName("_m_value", []string{"_", "m_"}))
}

func TestCommandName(t *testing.T) {
	cases := map[string]string{
		"Save":          "SaveCommand",
		"SaveAsync":     "SaveCommand",
		"OnSave":        "SaveCommand",
		"Online":        "OnlineCommand",
		"refresh":       "RefreshCommand",
		"ResetCommand":  "ResetCommand",
		"OnLoadedAsync": "LoadedCommand",
	}
	for method, want := range cases {
		assert.Equal(t, want, CommandName(method), method)
	}
}

func TestCaseConversions(t *testing.T) {
	assert.Equal(t, "firstName", CamelCase("FirstName"))
	assert.Equal(t, "FirstName", PascalCase("first_name"))
	assert.Equal(t, "UserID", PascalCase("userID"))
	assert.Equal(t, []string{"HTTP", "Server"}, SplitWords("HTTPServer"))
	assert.Equal(t, "firstName", FieldName("FirstName"))
	assert.Equal(t, "isOK", FieldName("IsOK"))
}

func TestIsIdentifier(t *testing.T) {
	assert.True(t, IsIdentifier("FirstName"))
	assert.True(t, IsIdentifier("_x1"))
	assert.False(t, IsIdentifier(""))
	assert.False(t, IsIdentifier("1abc"))
	assert.False(t, IsIdentifier("First Name"))
}
