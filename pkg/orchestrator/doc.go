// Package orchestrator wires the dispatcher, form store and validator into
// the operations exposed to callers: rendering cards, creating dynamic forms
// and routing their submissions.
package orchestrator
