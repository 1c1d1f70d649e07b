package parser

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mvvmgen/internal/model"
)

const personYAML = `
types:
  - namespace: App.ViewModels
    name: PersonViewModel
    fields:
      - name: _firstName
        type: string
        annotations:
          - kind: Observable-Property
            dependentProperties: [FullName]
    methods:
      - name: SaveAsync
        returnType: Task
        parameters:
          - {name: token, type: CancellationToken}
        annotations:
          - kind: relay-command
            command: {canExecute: CanSave}
dtos:
  - name: PersonDto
    record: true
    properties:
      - {name: Age, type: int, recordParameter: true}
`

const personJSON = `{
  "types": [{
    "namespace": "App.ViewModels",
    "name": "PersonViewModel",
    "fields": [{
      "name": "_firstName",
      "type": "string",
      "annotations": [{"kind": "observable-property", "dependentProperties": ["FullName"]}]
    }],
    "methods": [{
      "name": "SaveAsync",
      "returnType": "Task",
      "parameters": [{"name": "token", "type": "CancellationToken"}],
      "annotations": [{"kind": "relay-command", "command": {"canExecute": "CanSave"}}]
    }]
  }],
  "dtos": [{
    "name": "PersonDto",
    "record": true,
    "properties": [{"name": "Age", "type": "int", "recordParameter": true}]
  }]
}`

func expectedPerson() *model.File {
	return &model.File{
		Types: []model.TypeDecl{{
			Namespace: "App.ViewModels",
			Name:      "PersonViewModel",
			Fields: []model.FieldDecl{{
				Name: "_firstName",
				Type: "string",
				Annotations: []model.Annotation{{
					Kind:                model.KindObservableProperty,
					DependentProperties: []string{"FullName"},
				}},
			}},
			Methods: []model.MethodDecl{{
				Name:       "SaveAsync",
				ReturnType: "Task",
				Parameters: []model.Parameter{{Name: "token", Type: "CancellationToken"}},
				Annotations: []model.Annotation{{
					Kind:    model.KindRelayCommand,
					Command: model.CommandOptions{CanExecute: "CanSave"},
				}},
			}},
		}},
		Dtos: []model.DtoDecl{{
			Name:       "PersonDto",
			IsRecord:   true,
			Properties: []model.DtoPropertyDecl{{Name: "Age", Type: "int", IsRecordParameter: true}},
		}},
	}
}

func TestParseFormats(t *testing.T) {
	tests := []struct {
		name   string
		data   string
		format Format
	}{
		{"yaml", personYAML, FormatYAML},
		{"json", personJSON, FormatJSON},
		{"json read as yaml", personJSON, FormatYAML},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := New().Parse([]byte(tt.data), tt.format)
			require.NoError(t, err)
			if diff := cmp.Diff(expectedPerson(), got); diff != "" {
				t.Errorf("manifest mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParseFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "person.json")
	require.NoError(t, os.WriteFile(path, []byte(personJSON), 0o644))

	file, err := New().ParseFile(path)
	require.NoError(t, err)
	assert.Equal(t, path, file.Path)
	require.Len(t, file.Types, 1)

	dto, ok := file.FindDto("PersonDto")
	require.True(t, ok)
	assert.True(t, dto.IsRecord)

	_, err = New().ParseFile(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}

func TestParseStrictRejectsUnknownKeys(t *testing.T) {
	yamlDoc := "types:\n  - name: A\n    colour: blue\n"
	jsonDoc := `{"types": [{"name": "A", "colour": "blue"}]}`

	_, err := New().Parse([]byte(yamlDoc), FormatYAML)
	assert.NoError(t, err)
	_, err = New().Parse([]byte(jsonDoc), FormatJSON)
	assert.NoError(t, err)

	strict := &Parser{Strict: true}
	_, err = strict.Parse([]byte(yamlDoc), FormatYAML)
	assert.Error(t, err)
	_, err = strict.Parse([]byte(jsonDoc), FormatJSON)
	assert.Error(t, err)
}

func TestParseValidation(t *testing.T) {
	tests := map[string]string{
		"unnamed type":   "types:\n  - namespace: App\n",
		"duplicate type": "types:\n  - {namespace: App, name: A}\n  - {namespace: App, name: A}\n",
		"unnamed dto":    "dtos:\n  - properties: []\n",
	}
	for name, doc := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := New().Parse([]byte(doc), FormatYAML)
			assert.Error(t, err)
		})
	}

	file, err := New().Parse([]byte("types:\n  - {namespace: App, name: A}\n  - {namespace: Other, name: A}\n"), FormatYAML)
	require.NoError(t, err)
	assert.Len(t, file.Types, 2)
}

func TestParseEmpty(t *testing.T) {
	file, err := New().Parse(nil, FormatYAML)
	require.NoError(t, err)
	assert.Empty(t, file.Types)
}

func TestFormatOf(t *testing.T) {
	assert.Equal(t, FormatJSON, FormatOf("a/b.JSON"))
	assert.Equal(t, FormatYAML, FormatOf("a/b.yml"))
	assert.Equal(t, FormatYAML, FormatOf("manifest"))
}
