package kestrel

import (
	"encoding/json"
	"os"
	"strings"

	"github.com/pkg/errors"
)

// scriptStep is one action in an input script.
type scriptStep struct {
	Action string  `json:"action"`
	Key    string  `json:"key,omitempty"`
	Button string  `json:"button,omitempty"`
	X      float64 `json:"x,omitempty"`
	Y      float64 `json:"y,omitempty"`
	FromX  float64 `json:"fromX,omitempty"`
	FromY  float64 `json:"fromY,omitempty"`
	ToX    float64 `json:"toX,omitempty"`
	ToY    float64 `json:"toY,omitempty"`
	Frames int     `json:"frames,omitempty"`
}

type inputScript struct {
	Steps []scriptStep `json:"steps"`
}

var scriptKeys = map[string]Key{
	"F1": KeyF1,
	"F2": KeyF2,
	"F3": KeyF3,
	"P":  KeyP,
	"S":  KeyS,
	"M":  KeyM,
	"R":  KeyR,
}

var scriptButtons = map[string]MouseButton{
	"":       MouseButtonLeft,
	"left":   MouseButtonLeft,
	"right":  MouseButtonRight,
	"middle": MouseButtonMiddle,
}

// LoadScript parses a JSON input script and queues its steps. A script looks
// like
//
//	{"steps": [
//	  {"action": "key", "key": "P"},
//	  {"action": "click", "x": 110, "y": 110},
//	  {"action": "keydown", "key": "M"},
//	  {"action": "drag", "fromX": 110, "fromY": 110, "toX": 200, "toY": 90, "frames": 10},
//	  {"action": "keyup", "key": "M"},
//	  {"action": "wait", "frames": 30}
//	]}
//
// Actions are key, keydown, keyup, click, press, release, move, drag and
// wait. Nothing is queued when any step is invalid.
func (in *VirtualInput) LoadScript(data []byte) error {
	var script inputScript
	if err := json.Unmarshal(data, &script); err != nil {
		return errors.Wrap(err, "parse input script")
	}
	if len(script.Steps) == 0 {
		return errors.New("parse input script: no steps")
	}

	staged := NewVirtualInput()
	for i, st := range script.Steps {
		if err := staged.queueStep(st); err != nil {
			return errors.Wrapf(err, "input script step %d", i+1)
		}
	}
	in.queue = append(in.queue, staged.queue...)
	return nil
}

// LoadScriptFile reads an input script from path.
func (in *VirtualInput) LoadScriptFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrapf(err, "read input script %q", path)
	}
	return in.LoadScript(data)
}

func (in *VirtualInput) queueStep(st scriptStep) error {
	at := Vec2{st.X, st.Y}
	switch strings.ToLower(st.Action) {
	case "key", "keydown", "keyup":
		k, ok := scriptKeys[strings.ToUpper(st.Key)]
		if !ok {
			return errors.Errorf("unknown key %q", st.Key)
		}
		switch strings.ToLower(st.Action) {
		case "key":
			in.QueueKeyTap(k)
		case "keydown":
			in.QueueKeyDown(k)
		default:
			in.QueueKeyUp(k)
		}
	case "click":
		in.QueueClick(at)
	case "press", "release":
		b, ok := scriptButtons[strings.ToLower(st.Button)]
		if !ok {
			return errors.Errorf("unknown button %q", st.Button)
		}
		if strings.EqualFold(st.Action, "press") {
			in.QueuePress(b, at)
		} else {
			in.QueueRelease(b, at)
		}
	case "move":
		in.QueueMove(at)
	case "drag":
		in.QueueDrag(Vec2{st.FromX, st.FromY}, Vec2{st.ToX, st.ToY}, st.Frames)
	case "wait":
		for range max(st.Frames, 1) {
			in.QueueIdle()
		}
	default:
		return errors.Errorf("unknown action %q", st.Action)
	}
	return nil
}
