// Package storelink opens an application's store page.
//
// The in-store URI is tried first, then the equivalent web page. When no
// handler can open either, the user is told the store could not be found.
package storelink

import (
	"context"
	"fmt"

	"github.com/maloquacious/apprater/internal/logger"
)

// NotFoundMessage is shown when neither the store nor a browser can be opened.
const NotFoundMessage = "Unable to find the app store"

// Default URI templates. %s is replaced with the application id.
const (
	DefaultMarketURI = "market://details?id=%s"
	DefaultWebURL    = "https://play.google.com/store/apps/details?id=%s"
)

// Opener hands a URI to whatever handles it on the host.
type Opener interface {
	// CanOpen reports whether a handler exists for the URI.
	CanOpen(uri string) bool
	Open(ctx context.Context, uri string) error
}

// Notifier shows a short informational message to the user.
type Notifier interface {
	Notify(msg string)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(msg string)

func (f NotifierFunc) Notify(msg string) { f(msg) }

// Dispatcher opens store pages.
type Dispatcher struct {
	opener    Opener
	notifier  Notifier
	marketURI string
	webURL    string
	log       logger.Logger
}

type Option func(*Dispatcher)

// WithTemplates overrides the store and web URI templates.
func WithTemplates(marketURI, webURL string) Option {
	return func(d *Dispatcher) {
		if marketURI != "" {
			d.marketURI = marketURI
		}
		if webURL != "" {
			d.webURL = webURL
		}
	}
}

// WithLogger sets the logger used for dispatch decisions.
func WithLogger(log logger.Logger) Option {
	return func(d *Dispatcher) { d.log = log }
}

// New returns a Dispatcher using the default Play Store templates.
func New(opener Opener, notifier Notifier, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		opener:    opener,
		notifier:  notifier,
		marketURI: DefaultMarketURI,
		webURL:    DefaultWebURL,
		log:       logger.Default,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// MarketURI returns the in-store URI for appID.
func (d *Dispatcher) MarketURI(appID string) string {
	return fmt.Sprintf(d.marketURI, appID)
}

// WebURL returns the store web page for appID.
func (d *Dispatcher) WebURL(appID string) string {
	return fmt.Sprintf(d.webURL, appID)
}

// Open opens the store page for appID.
//
// A missing handler is not an error: the user is notified and Open returns nil.
// An error is returned only when a handler was found but failed to start.
func (d *Dispatcher) Open(ctx context.Context, appID string) error {
	uri := d.MarketURI(appID)
	if !d.opener.CanOpen(uri) {
		d.log.Debug("storelink: no handler for %s, trying web page", uri)
		uri = d.WebURL(appID)
	}
	if !d.opener.CanOpen(uri) {
		d.log.Warn("storelink: no handler for %s", uri)
		if d.notifier != nil {
			d.notifier.Notify(NotFoundMessage)
		}
		return nil
	}

	d.log.Info("storelink: opening %s", uri)
	if err := d.opener.Open(ctx, uri); err != nil {
		return fmt.Errorf("open %s: %w", uri, err)
	}
	return nil
}
