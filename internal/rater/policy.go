// Package rater decides when to ask the user to rate the application.
//
// A Policy counts launches and measures time since the first recorded launch.
// Once both thresholds are met it reports that the rating dialog should be
// shown, until the user rates the app or opts out.
package rater

import (
	"context"
	"time"

	"github.com/maloquacious/apprater/internal/config"
	"github.com/maloquacious/apprater/internal/logger"
	"github.com/maloquacious/apprater/internal/store"
)

// Day is the length of one day in the prompt window.
const Day = 24 * time.Hour

// LinkOpener opens the store page for an application.
type LinkOpener interface {
	Open(ctx context.Context, appID string) error
}

// Policy reads and updates the persisted prompt state.
type Policy struct {
	settings   store.Settings
	thresholds config.Thresholds
	appID      string
	link       LinkOpener
	dialog     *DialogBuilder
	now        func() time.Time
	log        logger.Logger
}

type Option func(*Policy)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(p *Policy) { p.now = now }
}

// WithLogger sets the logger.
func WithLogger(log logger.Logger) Option {
	return func(p *Policy) { p.log = log }
}

// WithStoreLink sets how RateApp opens the store page for appID.
func WithStoreLink(appID string, link LinkOpener) Option {
	return func(p *Policy) {
		p.appID = appID
		p.link = link
	}
}

// WithDialogBuilder replaces the default dialog texts.
func WithDialogBuilder(b *DialogBuilder) Option {
	return func(p *Policy) { p.dialog = b }
}

// New returns a Policy over the given record.
func New(settings store.Settings, thresholds config.Thresholds, opts ...Option) *Policy {
	p := &Policy{
		settings:   settings,
		thresholds: thresholds,
		dialog:     NewDialogBuilder(),
		now:        time.Now,
		log:        logger.Default,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// RecordLaunch counts one application start. The first call after
// initialization or RemindLater also stamps the first launch time.
func (p *Policy) RecordLaunch() {
	count := p.settings.LaunchCount() + 1
	p.settings.SetLaunchCount(count)

	if p.settings.FirstLaunchDate() == store.NotSet {
		p.settings.SetFirstLaunchDate(p.now().UnixMilli())
	}
	p.log.Debug("rater: launch %d recorded", count)
}

// ShouldPrompt reports whether the prompt window is open.
func (p *Policy) ShouldPrompt() bool {
	if p.settings.DoNotShowAgain() {
		return false
	}
	if p.settings.LaunchCount() < p.thresholds.LaunchesUntilPrompt {
		return false
	}
	due := p.settings.FirstLaunchDate() + int64(p.thresholds.DaysUntilPrompt)*Day.Milliseconds()
	return p.now().UnixMilli() >= due
}

// MarkRated records that the user agreed to rate the app.
func (p *Policy) MarkRated() {
	p.settings.SetDoNotShowAgain(true)
	p.log.Info("rater: marked as rated")
}

// CancelReminders records that the user opted out of the prompt.
// The stored state is the same as MarkRated.
func (p *Policy) CancelReminders() {
	p.settings.SetDoNotShowAgain(true)
	p.log.Info("rater: reminders cancelled")
}

// RemindLater restarts the prompt window from now.
func (p *Policy) RemindLater() {
	p.settings.SetLaunchCount(0)
	p.settings.SetFirstLaunchDate(p.now().UnixMilli())
	p.log.Info("rater: reminder postponed")
}

// IsFirstLaunch reports whether no launch has been recorded yet.
func (p *Policy) IsFirstLaunch() bool {
	return p.settings.FirstLaunchDate() == store.NotSet
}

// FirstLaunchDate returns the first recorded launch, or the zero time.
func (p *Policy) FirstLaunchDate() time.Time {
	ms := p.settings.FirstLaunchDate()
	if ms == store.NotSet {
		return time.Time{}
	}
	return time.UnixMilli(ms)
}

func (p *Policy) LaunchCount() int {
	return p.settings.LaunchCount()
}

func (p *Policy) IsDoNotShowAgain() bool {
	return p.settings.DoNotShowAgain()
}

// RateApp marks the app as rated and opens its store page.
// Without a configured store link only the state is updated.
func (p *Policy) RateApp(ctx context.Context) error {
	p.MarkRated()
	if p.link == nil {
		return nil
	}
	return p.link.Open(ctx, p.appID)
}

// AppLaunched is the per-start entry point. Once the user has rated or opted
// out it does nothing, not even count the launch. Otherwise it records the
// launch and, when the prompt window is open, hands the dialog to presenter.
// It reports whether the dialog was presented.
func (p *Policy) AppLaunched(ctx context.Context, presenter Presenter, listeners Listeners) (bool, error) {
	if p.settings.DoNotShowAgain() {
		return false, nil
	}

	p.RecordLaunch()

	if !p.ShouldPrompt() {
		return false, nil
	}
	return true, p.ShowDialog(ctx, presenter, listeners)
}

// ShowDialog presents the rating dialog regardless of the prompt window.
func (p *Policy) ShowDialog(ctx context.Context, presenter Presenter, listeners Listeners) error {
	return presenter.Present(ctx, p.NewDialog(listeners))
}

// NewDialog builds the rating dialog wired to this policy.
func (p *Policy) NewDialog(listeners Listeners) *Dialog {
	return p.dialog.Build(p, listeners)
}
