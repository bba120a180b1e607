// Package carddata holds the canonical value type every card builder reads.
// Inbound payloads (JSON text, Go maps, slices, structs) are normalised once
// into a Value; builders then use defaulting accessors that never fail.
package carddata
