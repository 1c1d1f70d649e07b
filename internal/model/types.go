// Package model defines the declaration descriptors the host hands to the engine.
//
// Descriptors are a structured view of annotated declarations: the engine never
// reads source text, only these values.
package model

import "strings"

// AnnotationKind identifies which generator feature an annotation requests.
type AnnotationKind string

const (
	KindObservableProperty AnnotationKind = "observable-property"
	KindDependencyProperty AnnotationKind = "dependency-property"
	KindStyledProperty     AnnotationKind = "styled-property"
	KindAttachedProperty   AnnotationKind = "attached-property"
	KindRoutedEvent        AnnotationKind = "routed-event"
	KindRelayCommand       AnnotationKind = "relay-command"
	KindComputedProperty   AnnotationKind = "computed-property"
	KindDtoProjection      AnnotationKind = "dto-projection"
)

// Known reports whether k is one of the recognized annotation kinds.
func (k AnnotationKind) Known() bool {
	switch k {
	case KindObservableProperty, KindDependencyProperty, KindStyledProperty,
		KindAttachedProperty, KindRoutedEvent, KindRelayCommand,
		KindComputedProperty, KindDtoProjection:
		return true
	}
	return false
}

// File is one manifest handed over by the host.
type File struct {
	Path  string     `yaml:"-" json:"-"`
	Types []TypeDecl `yaml:"types" json:"types"`
	Dtos  []DtoDecl  `yaml:"dtos" json:"dtos"`
}

// TypeDecl describes a declared (partial) type and its annotated members.
type TypeDecl struct {
	Namespace     string       `yaml:"namespace" json:"namespace"`
	Name          string       `yaml:"name" json:"name"`
	Accessibility string       `yaml:"accessibility" json:"accessibility,omitempty"`
	IsStatic      bool         `yaml:"static" json:"static,omitempty"`
	BaseType      string       `yaml:"baseType" json:"baseType,omitempty"`
	Annotations   []Annotation `yaml:"annotations" json:"annotations,omitempty"`
	Fields        []FieldDecl  `yaml:"fields" json:"fields,omitempty"`
	Methods       []MethodDecl `yaml:"methods" json:"methods,omitempty"`
	Properties    []FieldDecl  `yaml:"properties" json:"properties,omitempty"`
}

// FullName returns the namespace-qualified type name.
func (t *TypeDecl) FullName() string {
	if t.Namespace != "" {
		return t.Namespace + "." + t.Name
	}
	return t.Name
}

// IsPublic reports whether the declared accessibility is public (the default).
func (t *TypeDecl) IsPublic() bool {
	return t.Accessibility == "" || t.Accessibility == "public"
}

// FieldDecl is a field or a hand-written property carrying annotations.
type FieldDecl struct {
	Name        string       `yaml:"name" json:"name"`
	Type        string       `yaml:"type" json:"type"`
	Doc         []string     `yaml:"doc" json:"doc,omitempty"`
	Attributes  []string     `yaml:"attributes" json:"attributes,omitempty"`
	Annotations []Annotation `yaml:"annotations" json:"annotations,omitempty"`
}

// MethodDecl is a method that may carry a relay-command annotation.
type MethodDecl struct {
	Name        string       `yaml:"name" json:"name"`
	ReturnType  string       `yaml:"returnType" json:"returnType,omitempty"`
	Parameters  []Parameter  `yaml:"parameters" json:"parameters,omitempty"`
	Doc         []string     `yaml:"doc" json:"doc,omitempty"`
	Annotations []Annotation `yaml:"annotations" json:"annotations,omitempty"`
}

// Parameter is one method parameter.
type Parameter struct {
	Name string `yaml:"name" json:"name"`
	Type string `yaml:"type" json:"type"`
}

// Callbacks names user-written methods the generated code calls into.
type Callbacks struct {
	Changed       string `yaml:"changed" json:"changed,omitempty"`
	BeforeChanged string `yaml:"beforeChanged" json:"beforeChanged,omitempty"`
	Coerce        string `yaml:"coerce" json:"coerce,omitempty"`
	Validate      string `yaml:"validate" json:"validate,omitempty"`
}

// IsZero reports whether no callback is configured.
func (c Callbacks) IsZero() bool {
	return c == Callbacks{}
}

// CommandOptions are the relay-command specific annotation arguments.
type CommandOptions struct {
	CanExecute                string `yaml:"canExecute" json:"canExecute,omitempty"`
	ParameterValue            string `yaml:"parameterValue" json:"parameterValue,omitempty"`
	SupportsCancellation      bool   `yaml:"supportsCancellation" json:"supportsCancellation,omitempty"`
	AutoSetIsBusy             bool   `yaml:"autoSetIsBusy" json:"autoSetIsBusy,omitempty"`
	ExecuteOnBackgroundThread bool   `yaml:"executeOnBackgroundThread" json:"executeOnBackgroundThread,omitempty"`
}

// DtoOptions are the dto-projection specific annotation arguments.
type DtoOptions struct {
	IgnoreProperties []string `yaml:"ignoreProperties" json:"ignoreProperties,omitempty"`
	ValidateOnChange bool     `yaml:"validateOnChange" json:"validateOnChange,omitempty"`
	ValidateOnInit   bool     `yaml:"validateOnInit" json:"validateOnInit,omitempty"`
	TrackDirty       bool     `yaml:"trackDirty" json:"trackDirty,omitempty"`
}

// Annotation is the raw content of one attribute applied to a field, method,
// property or class.
type Annotation struct {
	Kind                AnnotationKind `yaml:"kind" json:"kind"`
	Name                *string        `yaml:"name" json:"name,omitempty"`
	Type                string         `yaml:"type" json:"type,omitempty"`
	DefaultValue        string         `yaml:"defaultValue" json:"defaultValue,omitempty"`
	Callbacks           Callbacks      `yaml:"callbacks" json:"callbacks,omitzero"`
	DependentProperties []string       `yaml:"dependentProperties" json:"dependentProperties,omitempty"`
	DependentCommands   []string       `yaml:"dependentCommands" json:"dependentCommands,omitempty"`
	DependsOn           []string       `yaml:"dependsOn" json:"dependsOn,omitempty"`
	Expression          string         `yaml:"expression" json:"expression,omitempty"`
	Doc                 []string       `yaml:"doc" json:"doc,omitempty"`
	Attributes          []string       `yaml:"attributes" json:"attributes,omitempty"`
	Category            string         `yaml:"category" json:"category,omitempty"`
	Description         string         `yaml:"description" json:"description,omitempty"`
	Flags               []string       `yaml:"flags" json:"flags,omitempty"`
	ReadOnly            bool           `yaml:"readOnly" json:"readOnly,omitempty"`
	IsNew               bool           `yaml:"new" json:"new,omitempty"`
	AttachedTo          string         `yaml:"attachedTo" json:"attachedTo,omitempty"`
	RoutingStrategy     string         `yaml:"routingStrategy" json:"routingStrategy,omitempty"`
	HandlerType         string         `yaml:"handlerType" json:"handlerType,omitempty"`
	Command             CommandOptions `yaml:"command" json:"command,omitzero"`
	Dto                 DtoOptions     `yaml:"dto" json:"dto,omitzero"`
}

// ExplicitName returns the override name and whether one was supplied at all.
// A supplied but blank name is reported as present so callers can reject it.
func (a *Annotation) ExplicitName() (string, bool) {
	if a.Name == nil {
		return "", false
	}
	return strings.TrimSpace(*a.Name), true
}

// DtoDecl is the shape of a data transfer object available for projection.
type DtoDecl struct {
	Name       string            `yaml:"name" json:"name"`
	Namespace  string            `yaml:"namespace" json:"namespace,omitempty"`
	IsRecord   bool              `yaml:"record" json:"record,omitempty"`
	Properties []DtoPropertyDecl `yaml:"properties" json:"properties"`
}

// DtoPropertyDecl is one public member of a DTO.
type DtoPropertyDecl struct {
	Name              string   `yaml:"name" json:"name"`
	Type              string   `yaml:"type" json:"type"`
	IsRecordParameter bool     `yaml:"recordParameter" json:"recordParameter,omitempty"`
	ReadOnly          bool     `yaml:"readOnly" json:"readOnly,omitempty"`
	Attributes        []string `yaml:"attributes" json:"attributes,omitempty"`
	Doc               []string `yaml:"doc" json:"doc,omitempty"`
}

// FindDto returns the DTO declaration with the given simple or qualified name.
// A nil file holds no DTOs.
func (f *File) FindDto(name string) (*DtoDecl, bool) {
	if f == nil {
		return nil, false
	}
	for i := range f.Dtos {
		d := &f.Dtos[i]
		if d.Name == name || (d.Namespace != "" && d.Namespace+"."+d.Name == name) {
			return d, true
		}
	}
	return nil, false
}
