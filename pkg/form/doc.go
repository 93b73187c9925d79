// Package form exposes the step schema and value-cleaning primitives used by
// wizard definitions. The implementation lives in internal/form; this package
// re-exports the stable surface.
package form
