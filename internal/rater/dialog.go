package rater

import (
	"context"
	"errors"
	"fmt"
)

// ErrUnknownResponse is returned by Dialog.Choose for a response with no button.
var ErrUnknownResponse = errors.New("unknown dialog response")

// Response is the user's answer to the rating dialog.
type Response int

const (
	ResponseRate        Response = iota + 1 // positive button
	ResponseRemindLater                     // negative button
	ResponseCancel                          // neutral button
)

func (r Response) String() string {
	switch r {
	case ResponseRate:
		return "rate"
	case ResponseRemindLater:
		return "remind later"
	case ResponseCancel:
		return "cancel reminders"
	}
	return fmt.Sprintf("Response(%d)", int(r))
}

// Listener is called after the built-in action of a button has run.
type Listener func(Response)

// Listeners are the optional caller hooks for each button.
type Listeners struct {
	OnRate        Listener
	OnRemindLater Listener
	OnCancel      Listener
}

func (l Listeners) forResponse(r Response) Listener {
	switch r {
	case ResponseRate:
		return l.OnRate
	case ResponseRemindLater:
		return l.OnRemindLater
	case ResponseCancel:
		return l.OnCancel
	}
	return nil
}

// Button is one choice in the dialog.
type Button struct {
	Label    string
	Response Response
}

// Dialog is a renderer-agnostic rating dialog. Presenters show Title, Message
// and Buttons, then report the user's pick through Choose.
type Dialog struct {
	Title   string
	Message string
	// Buttons are ordered positive, negative, neutral.
	Buttons []Button

	policy    *Policy
	listeners Listeners
}

// Choose applies the user's answer. The built-in action runs first so the
// listener observes the updated state.
func (d *Dialog) Choose(ctx context.Context, r Response) error {
	var err error
	switch r {
	case ResponseRate:
		err = d.policy.RateApp(ctx)
	case ResponseRemindLater:
		d.policy.RemindLater()
	case ResponseCancel:
		d.policy.CancelReminders()
	default:
		return fmt.Errorf("%w: %d", ErrUnknownResponse, int(r))
	}

	if listener := d.listeners.forResponse(r); listener != nil {
		listener(r)
	}
	return err
}

// Button returns the button for a response.
func (d *Dialog) Button(r Response) (Button, bool) {
	for _, b := range d.Buttons {
		if b.Response == r {
			return b, true
		}
	}
	return Button{}, false
}

// Presenter renders a dialog and calls Choose with the user's answer.
// Dismissing the dialog without an answer must leave the state untouched.
type Presenter interface {
	Present(ctx context.Context, d *Dialog) error
}

// PresenterFunc adapts a function to Presenter.
type PresenterFunc func(ctx context.Context, d *Dialog) error

func (f PresenterFunc) Present(ctx context.Context, d *Dialog) error { return f(ctx, d) }

// Default dialog texts.
const (
	DefaultTitle          = "Rate this app"
	DefaultMessage        = "If you enjoy using this app, would you mind taking a moment to rate it? Thanks for your support!"
	DefaultPositiveButton = "Rate"
	DefaultNegativeButton = "Remind me later"
	DefaultNeutralButton  = "No, thanks"
)

// DialogBuilder overrides the dialog texts.
type DialogBuilder struct {
	title    string
	message  string
	positive string
	negative string
	neutral  string
}

// NewDialogBuilder starts from the default texts.
func NewDialogBuilder() *DialogBuilder {
	return &DialogBuilder{
		title:    DefaultTitle,
		message:  DefaultMessage,
		positive: DefaultPositiveButton,
		negative: DefaultNegativeButton,
		neutral:  DefaultNeutralButton,
	}
}

func (b *DialogBuilder) Title(s string) *DialogBuilder          { b.title = s; return b }
func (b *DialogBuilder) Message(s string) *DialogBuilder        { b.message = s; return b }
func (b *DialogBuilder) PositiveButton(s string) *DialogBuilder { b.positive = s; return b }
func (b *DialogBuilder) NegativeButton(s string) *DialogBuilder { b.negative = s; return b }
func (b *DialogBuilder) NeutralButton(s string) *DialogBuilder  { b.neutral = s; return b }

// Build returns a dialog whose buttons act on p.
func (b *DialogBuilder) Build(p *Policy, listeners Listeners) *Dialog {
	return &Dialog{
		Title:   b.title,
		Message: b.message,
		Buttons: []Button{
			{Label: b.positive, Response: ResponseRate},
			{Label: b.negative, Response: ResponseRemindLater},
			{Label: b.neutral, Response: ResponseCancel},
		},
		policy:    p,
		listeners: listeners,
	}
}
