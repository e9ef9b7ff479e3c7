package domain

import "fmt"

// Action is a notification action the user can tap on a reminder.
type Action int

const (
	ActionDismiss Action = iota + 1
	ActionSnooze
	ActionConfirm
)

var actionNames = map[Action]string{
	ActionDismiss: "dismiss",
	ActionSnooze:  "snooze_5min",
	ActionConfirm: "confirm",
}

// ReminderActions is the action set attached to every pre-class reminder.
func ReminderActions() []Action {
	return []Action{ActionDismiss, ActionSnooze, ActionConfirm}
}

func (a Action) String() string {
	if name, ok := actionNames[a]; ok {
		return name
	}
	return fmt.Sprintf("action(%d)", int(a))
}

func ParseAction(s string) (Action, error) {
	for a, name := range actionNames {
		if name == s {
			return a, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownAction, s)
}

func (a Action) MarshalText() ([]byte, error) {
	if _, ok := actionNames[a]; !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownAction, int(a))
	}
	return []byte(a.String()), nil
}

func (a *Action) UnmarshalText(text []byte) error {
	parsed, err := ParseAction(string(text))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}
