package formschema

import (
	"sort"

	"github.com/goliatone/go-formlayout/pkg/model"
)

// Store holds the definitions loaded from one or more documents.
type Store struct {
	forms   map[string]*model.Definition
	sources map[string]string
}

// Form returns the definition registered under name.
func (s *Store) Form(name string) (*model.Definition, bool) {
	if s == nil {
		return nil, false
	}
	def, ok := s.forms[name]
	return def, ok
}

// Source reports the document a form was loaded from.
func (s *Store) Source(name string) string {
	if s == nil {
		return ""
	}
	return s.sources[name]
}

// Names lists the loaded form names, sorted.
func (s *Store) Names() []string {
	if s == nil {
		return nil
	}
	names := make([]string, 0, len(s.forms))
	for name := range s.forms {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Empty reports whether the store holds any forms.
func (s *Store) Empty() bool {
	return s == nil || len(s.forms) == 0
}

type documentFile struct {
	Forms map[string]formFile `json:"forms" yaml:"forms"`
}

type formFile struct {
	Extends string      `json:"extends" yaml:"extends"`
	Fields  []fieldFile `json:"fields" yaml:"fields"`
	// Layout is decoded by hand so a non-sequence value can be reported as
	// an invalid layout rather than a parse failure.
	Layout any `json:"layout" yaml:"layout"`
}

type fieldFile struct {
	Name      string            `json:"name" yaml:"name"`
	Type      string            `json:"type" yaml:"type"`
	Label     string            `json:"label" yaml:"label"`
	HideLabel bool              `json:"hideLabel" yaml:"hideLabel"`
	Help      string            `json:"help" yaml:"help"`
	Required  *bool             `json:"required" yaml:"required"`
	Widget    string            `json:"widget" yaml:"widget"`
	Format    string            `json:"format" yaml:"format"`
	Attrs     map[string]string `json:"attrs" yaml:"attrs"`
	Choices   []choiceFile      `json:"choices" yaml:"choices"`
	Initial   any               `json:"initial" yaml:"initial"`
}

type choiceFile struct {
	Value string `json:"value" yaml:"value"`
	Label string `json:"label" yaml:"label"`
}

type rawForm struct {
	name   string
	source string
	file   formFile
}
