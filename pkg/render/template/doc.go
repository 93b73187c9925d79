// Package template declares the rendering engine contract consumed by the
// built-in renderers. The gotemplate subpackage provides the pongo2-backed
// default implementation.
package template
