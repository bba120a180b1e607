// Package forms models dynamic form definitions and renders their fields into
// Adaptive Card inputs. Input kinds are chosen by an InputRegistry so callers
// can plug in renderers for custom field types.
package forms
