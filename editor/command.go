package editor

// CommandKind names an editing command. The names double as action names in
// key binding files.
type CommandKind string

const (
	CmdMoveStringUp           CommandKind = "MoveStringUp"
	CmdMoveStringDown         CommandKind = "MoveStringDown"
	CmdAdvanceDuration        CommandKind = "AdvanceDuration"
	CmdRetreatDuration        CommandKind = "RetreatDuration"
	CmdShortenDuration        CommandKind = "ShortenDuration"
	CmdLengthenDuration       CommandKind = "LengthenDuration"
	CmdToggleDotted           CommandKind = "ToggleDotted"
	CmdMarkRest               CommandKind = "MarkRest"
	CmdDeleteSelectionContent CommandKind = "DeleteSelectionContent"
	CmdEnterFretDigit         CommandKind = "EnterFretDigit"
	CmdAddMeasure             CommandKind = "AddMeasure"
	CmdDeleteMeasure          CommandKind = "DeleteMeasure"
	CmdRequestAddTrack        CommandKind = "RequestAddTrack"
	CmdConfirmDeleteTrack     CommandKind = "ConfirmDeleteTrack"
	CmdSetInfo                CommandKind = "SetInfo"
)

// CommandKinds lists every command kind.
var CommandKinds = []CommandKind{
	CmdMoveStringUp,
	CmdMoveStringDown,
	CmdAdvanceDuration,
	CmdRetreatDuration,
	CmdShortenDuration,
	CmdLengthenDuration,
	CmdToggleDotted,
	CmdMarkRest,
	CmdDeleteSelectionContent,
	CmdEnterFretDigit,
	CmdAddMeasure,
	CmdDeleteMeasure,
	CmdRequestAddTrack,
	CmdConfirmDeleteTrack,
	CmdSetInfo,
}

// Command is a request to edit the model. Digit is the payload of
// EnterFretDigit, Track the payload of RequestAddTrack and Title and Artist
// the payload of SetInfo; other kinds ignore them.
type Command struct {
	Kind   CommandKind
	Digit  int
	Track  TrackSpec
	Title  string
	Artist string
}

// Valid reports whether k is a known command kind.
func (k CommandKind) Valid() bool {
	for _, c := range CommandKinds {
		if c == k {
			return true
		}
	}
	return false
}

// Action returns the Action performing cmd. Unknown kinds return an Action
// that is never enabled.
func (m *Model) Action(cmd Command) Action {
	switch cmd.Kind {
	case CmdMoveStringUp:
		return m.MoveStringUp()
	case CmdMoveStringDown:
		return m.MoveStringDown()
	case CmdAdvanceDuration:
		return m.AdvanceDuration()
	case CmdRetreatDuration:
		return m.RetreatDuration()
	case CmdShortenDuration:
		return m.ShortenDuration()
	case CmdLengthenDuration:
		return m.LengthenDuration()
	case CmdToggleDotted:
		return m.ToggleDotted()
	case CmdMarkRest:
		return m.MarkRest()
	case CmdDeleteSelectionContent:
		return m.DeleteSelectionContent()
	case CmdEnterFretDigit:
		return m.EnterFretDigit(cmd.Digit)
	case CmdAddMeasure:
		return m.AddMeasure()
	case CmdDeleteMeasure:
		return m.DeleteMeasure()
	case CmdRequestAddTrack:
		return m.AddTrack(cmd.Track)
	case CmdConfirmDeleteTrack:
		return m.DeleteTrack()
	case CmdSetInfo:
		return m.SetInfo(cmd.Title, cmd.Artist)
	}
	return Action{}
}

// Dispatch performs cmd and reports whether it was enabled. Disabled commands
// change nothing.
func (m *Model) Dispatch(cmd Command) bool {
	a := m.Action(cmd)
	if !a.Enabled() {
		return false
	}
	a.Do()
	return true
}
