package tui

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/bubbles/key"
	"github.com/fretwork/fretwork/editor"
	"golang.org/x/exp/slices"
	"gopkg.in/yaml.v3"
)

type (
	// KeyBinding binds a key, as bubbletea names it (e.g. "ctrl+s", "alt+n",
	// "left"), to an action. An empty action unbinds the key.
	KeyBinding struct {
		Key    string
		Action string
	}

	// KeyMap resolves keys to actions and lists the bindings for help.
	KeyMap struct {
		actions map[string]string   // key -> action
		keys    map[string][]string // action -> keys, in binding order
	}
)

// Actions of the front end itself, in addition to the editor commands.
const (
	ActionAddTrack    = "AddTrack"
	ActionDeleteTrack = "DeleteTrack"
	ActionEditInfo    = "EditInfo"
	ActionSave        = "Save"
	ActionQuit        = "Quit"
	ActionHelp        = "Help"
)

var actionHelp = map[string]string{
	string(editor.CmdMoveStringUp):           "string up",
	string(editor.CmdMoveStringDown):         "string down",
	string(editor.CmdAdvanceDuration):        "next",
	string(editor.CmdRetreatDuration):        "previous",
	string(editor.CmdShortenDuration):        "shorter",
	string(editor.CmdLengthenDuration):       "longer",
	string(editor.CmdToggleDotted):           "dot",
	string(editor.CmdMarkRest):               "rest",
	string(editor.CmdDeleteSelectionContent): "delete",
	string(editor.CmdEnterFretDigit):         "fret",
	string(editor.CmdAddMeasure):             "add bar",
	string(editor.CmdDeleteMeasure):          "delete bar",
	ActionAddTrack:                           "add track",
	ActionDeleteTrack:                        "delete track",
	ActionEditInfo:                           "title/artist",
	ActionSave:                               "save",
	ActionQuit:                               "quit",
	ActionHelp:                               "help",
}

// helpOrder groups the actions into the columns of the full help.
var helpOrder = [][]string{
	{string(editor.CmdAdvanceDuration), string(editor.CmdRetreatDuration), string(editor.CmdMoveStringUp), string(editor.CmdMoveStringDown)},
	{string(editor.CmdEnterFretDigit), string(editor.CmdMarkRest), string(editor.CmdDeleteSelectionContent), string(editor.CmdShortenDuration), string(editor.CmdLengthenDuration), string(editor.CmdToggleDotted)},
	{string(editor.CmdAddMeasure), string(editor.CmdDeleteMeasure), ActionAddTrack, ActionDeleteTrack, ActionEditInfo},
	{ActionSave, ActionQuit, ActionHelp},
}

//go:embed keybindings.yml
var defaultKeyBindings []byte

// ReadKeyBindings decodes a list of key bindings. Unknown fields are errors.
func ReadKeyBindings(r io.Reader) ([]KeyBinding, error) {
	var ret []KeyBinding
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&ret); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	return ret, nil
}

// DefaultKeyBindings returns the built-in key bindings.
func DefaultKeyBindings() []KeyBinding {
	ret, err := ReadKeyBindings(bytes.NewReader(defaultKeyBindings))
	if err != nil {
		panic(fmt.Errorf("failed to unmarshal default keybindings: %w", err))
	}
	return ret
}

// LoadKeyMap returns the default key bindings followed by the user's
// keybindings.yml, if there is one.
func LoadKeyMap() (KeyMap, error) {
	bindings := DefaultKeyBindings()
	b, exists, err := readCustomConfig("keybindings.yml")
	if exists {
		if err != nil {
			return KeyMap{}, err
		}
		user, err := ReadKeyBindings(bytes.NewReader(b))
		if err != nil {
			return KeyMap{}, fmt.Errorf("keybindings.yml: %w", err)
		}
		bindings = append(bindings, user...)
	}
	return NewKeyMap(bindings)
}

// NewKeyMap applies the bindings in order; later bindings of a key replace
// earlier ones.
func NewKeyMap(bindings []KeyBinding) (KeyMap, error) {
	km := KeyMap{actions: map[string]string{}, keys: map[string][]string{}}
	var errs []error
	for _, kb := range bindings {
		if kb.Key == "" {
			errs = append(errs, fmt.Errorf("binding of %q has no key", kb.Action))
			continue
		}
		if kb.Action != "" && !knownAction(kb.Action) {
			errs = append(errs, fmt.Errorf("key %q is bound to unknown action %q", kb.Key, kb.Action))
			continue
		}
		if kb.Action == string(editor.CmdEnterFretDigit) {
			if _, err := digitOf(kb.Key); err != nil {
				errs = append(errs, fmt.Errorf("key %q cannot enter a fret digit", kb.Key))
				continue
			}
		}
		if prev, ok := km.actions[kb.Key]; ok {
			km.keys[prev] = slices.DeleteFunc(km.keys[prev], func(x string) bool { return x == kb.Key })
		}
		if kb.Action == "" { // unbind
			delete(km.actions, kb.Key)
			continue
		}
		km.actions[kb.Key] = kb.Action
		km.keys[kb.Action] = append(km.keys[kb.Action], kb.Key)
	}
	return km, errors.Join(errs...)
}

// Action returns the action bound to k, or "" if k is not bound.
func (km KeyMap) Action(k string) string { return km.actions[k] }

// Command returns the editor command that pressing k performs.
func (km KeyMap) Command(k string) (editor.Command, bool) {
	kind := editor.CommandKind(km.actions[k])
	if !kind.Valid() || dialogOnly(kind) {
		return editor.Command{}, false
	}
	cmd := editor.Command{Kind: kind}
	if kind == editor.CmdEnterFretDigit {
		cmd.Digit, _ = digitOf(k)
	}
	return cmd, true
}

func (km KeyMap) binding(action string) key.Binding {
	keys := km.keys[action]
	if len(keys) == 0 {
		return key.NewBinding(key.WithDisabled())
	}
	hint := keys[0]
	if action == string(editor.CmdEnterFretDigit) {
		hint = "0-9"
	}
	return key.NewBinding(key.WithKeys(keys...), key.WithHelp(hint, actionHelp[action]))
}

func (km KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{
		km.binding(string(editor.CmdEnterFretDigit)),
		km.binding(string(editor.CmdMarkRest)),
		km.binding(ActionSave),
		km.binding(ActionQuit),
		km.binding(ActionHelp),
	}
}

func (km KeyMap) FullHelp() [][]key.Binding {
	ret := make([][]key.Binding, len(helpOrder))
	for i, column := range helpOrder {
		for _, action := range column {
			ret[i] = append(ret[i], km.binding(action))
		}
	}
	return ret
}

func knownAction(action string) bool {
	switch action {
	case ActionAddTrack, ActionDeleteTrack, ActionEditInfo, ActionSave, ActionQuit, ActionHelp:
		return true
	}
	kind := editor.CommandKind(action)
	return kind.Valid() && !dialogOnly(kind)
}

// dialogOnly reports whether kind needs a payload or confirmation that only a
// dialog provides.
func dialogOnly(kind editor.CommandKind) bool {
	switch kind {
	case editor.CmdRequestAddTrack, editor.CmdConfirmDeleteTrack, editor.CmdSetInfo:
		return true
	}
	return false
}

// digitOf returns the digit a key enters: its last character.
func digitOf(k string) (int, error) {
	if k == "" {
		return 0, strconv.ErrSyntax
	}
	d, err := strconv.Atoi(k[len(k)-1:])
	if err != nil {
		return 0, err
	}
	return d, nil
}
