/*
Package editor contains the editing state machine of the fretwork tablature
editor.

The Model holds the Document being edited and the Selection (the cursor).
User interfaces do not modify either directly: every edit is an Action, which
advertises whether it is enabled and, when performed, applies its change as a
single transaction. For example, model.AdvanceDuration() returns an Action
that moves the cursor forward, growing the bar or the whole score when
needed, and model.AdvanceDuration().Do() performs it.

Commands are the serializable form of Actions used by key bindings and other
front ends: model.Dispatch(Command{Kind: CmdAdvanceDuration}) is equivalent to
the example above. Commands that are not enabled are silently ignored; the
editor never reports user input as an error.

A transaction that would leave the document or the selection inconsistent is
rolled back and logged as an internal fault.
*/
package editor
