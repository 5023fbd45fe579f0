// Package template defines the template renderer seam used to produce widget
// markup. The gotemplate subpackage provides the go-template backed engine; tests
// and callers can substitute any implementation of TemplateRenderer.
package template
