// Package coordinator drives the client screens independently of how they are drawn.
//
// A Form owns one entity's edit lifecycle (Editing -> Saving -> Closed): it reads raw
// input from a FormView, validates it with domain.Validate, persists it through a
// ClientSaver and notifies its DataChangeListeners. A List owns the rendered client
// collection and dispatches per-row edit and remove actions. Both run synchronously on
// the caller's goroutine; the shell (the TUI) calls them from its event loop.
package coordinator
