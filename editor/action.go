package editor

type (
	// Action describes a user action that can be performed on the model, which
	// can be initiated by calling the Do() method. It is usually initiated by a
	// key press or a dialog confirmation. Action advertises whether it is
	// enabled, so a UI can e.g. hide hints for actions that are not allowed.
	// The underlying Doer can optionally implement the Enabler interface to
	// decide if the action is enabled or not; if it does not implement the
	// Enabler interface, the action is always allowed.
	Action struct {
		doer Doer
	}

	// Doer is an interface that defines a single Do() method, which is called
	// when an action is performed.
	Doer interface {
		Do()
	}

	// Enabler is an interface that defines a single Enabled() method, which
	// is used to check if an Action is enabled or not.
	Enabler interface {
		Enabled() bool
	}
)

func MakeAction(doer Doer) Action {
	return Action{doer: doer}
}

// Do performs the action if it is enabled; otherwise it does nothing.
func (a Action) Do() {
	if !a.Enabled() {
		return
	}
	a.doer.Do()
}

func (a Action) Enabled() bool {
	if a.doer == nil {
		return false // no doer, not allowed
	}
	e, ok := a.doer.(Enabler)
	if !ok {
		return true // not enabler, always allowed
	}
	return e.Enabled()
}
