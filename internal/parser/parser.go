// Package parser loads declaration manifests handed over by the host.
package parser

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-json-experiment/json"
	"gopkg.in/yaml.v3"

	"mvvmgen/internal/model"
)

// Format is a manifest encoding.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// FormatOf picks the manifest format from a file extension. Unknown
// extensions are read as YAML, which also accepts JSON documents.
func FormatOf(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return FormatJSON
	}
	return FormatYAML
}

// Parser reads manifests into declaration descriptors.
type Parser struct {
	// Strict rejects manifest keys that map to no descriptor field.
	Strict bool
}

// New creates a new Parser.
func New() *Parser {
	return &Parser{}
}

// ParseFile reads a single manifest file.
func (p *Parser) ParseFile(path string) (*model.File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	file, err := p.Parse(data, FormatOf(path))
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	file.Path = path
	return file, nil
}

// Parse decodes manifest data in the given format.
func (p *Parser) Parse(data []byte, format Format) (*model.File, error) {
	var file model.File

	switch format {
	case FormatJSON:
		if err := json.Unmarshal(data, &file, json.RejectUnknownMembers(p.Strict)); err != nil {
			return nil, fmt.Errorf("decoding JSON manifest: %w", err)
		}
	default:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(p.Strict)
		if err := dec.Decode(&file); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("decoding YAML manifest: %w", err)
		}
	}

	normalize(&file)
	if err := validate(&file); err != nil {
		return nil, err
	}
	return &file, nil
}

// normalize trims names and lower-cases annotation kinds so hosts may write
// them in any case.
func normalize(file *model.File) {
	for i := range file.Types {
		t := &file.Types[i]
		t.Namespace = strings.TrimSpace(t.Namespace)
		t.Name = strings.TrimSpace(t.Name)
		t.Accessibility = strings.ToLower(strings.TrimSpace(t.Accessibility))

		normalizeAnnotations(t.Annotations)
		for j := range t.Fields {
			normalizeAnnotations(t.Fields[j].Annotations)
		}
		for j := range t.Properties {
			normalizeAnnotations(t.Properties[j].Annotations)
		}
		for j := range t.Methods {
			normalizeAnnotations(t.Methods[j].Annotations)
		}
	}
	for i := range file.Dtos {
		file.Dtos[i].Name = strings.TrimSpace(file.Dtos[i].Name)
	}
}

func normalizeAnnotations(anns []model.Annotation) {
	for i := range anns {
		anns[i].Kind = model.AnnotationKind(strings.ToLower(strings.TrimSpace(string(anns[i].Kind))))
	}
}

// validate rejects manifests the engine cannot attribute diagnostics to.
// Problems inside annotations are left to the inspectors.
func validate(file *model.File) error {
	seen := make(map[string]bool, len(file.Types))
	for i, t := range file.Types {
		if t.Name == "" {
			return fmt.Errorf("type #%d has no name", i+1)
		}
		if seen[t.FullName()] {
			return fmt.Errorf("type %s is declared more than once", t.FullName())
		}
		seen[t.FullName()] = true
	}
	for i, d := range file.Dtos {
		if d.Name == "" {
			return fmt.Errorf("dto #%d has no name", i+1)
		}
	}
	return nil
}
