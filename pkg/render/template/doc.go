// Package template declares the rendering seam between formlib and the
// underlying template engine. The gotemplate subpackage provides the default
// pongo2-backed implementation.
package template
