package storelink

import (
	"context"
	"fmt"
	"net/url"
	"os/exec"
	"runtime"
	"strings"
)

// SystemOpener opens URIs with the platform URL launcher.
type SystemOpener struct {
	goos     string
	lookPath func(string) (string, error)
	// schemeHandler reports whether a non-web scheme has a registered handler.
	schemeHandler func(ctx context.Context, scheme string) bool
}

// NewSystemOpener returns an opener for the running platform.
func NewSystemOpener() *SystemOpener {
	return &SystemOpener{
		goos:          runtime.GOOS,
		lookPath:      exec.LookPath,
		schemeHandler: xdgSchemeHandler,
	}
}

func (o *SystemOpener) launcher() []string {
	switch o.goos {
	case "windows":
		return []string{"cmd", "/c", "start"}
	case "darwin":
		return []string{"open"}
	default:
		return []string{"xdg-open"}
	}
}

// CanOpen reports whether the launcher exists and, for schemes other than
// http and https, whether the desktop has a handler registered for the scheme.
func (o *SystemOpener) CanOpen(uri string) bool {
	u, err := url.Parse(uri)
	if err != nil || u.Scheme == "" {
		return false
	}
	if _, err := o.lookPath(o.launcher()[0]); err != nil {
		return false
	}
	switch strings.ToLower(u.Scheme) {
	case "http", "https":
		return true
	}
	if o.goos != "linux" && o.goos != "freebsd" {
		return false
	}
	return o.schemeHandler(context.Background(), u.Scheme)
}

// Open starts the launcher without waiting for it. The launcher outlives ctx.
func (o *SystemOpener) Open(ctx context.Context, uri string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	args := append(o.launcher(), uri)
	cmd := exec.Command(args[0], args[1:]...)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start %s: %w", args[0], err)
	}
	go func() { _ = cmd.Wait() }()
	return nil
}

func xdgSchemeHandler(ctx context.Context, scheme string) bool {
	out, err := exec.CommandContext(ctx, "xdg-mime", "query", "default", "x-scheme-handler/"+scheme).Output()
	if err != nil {
		return false
	}
	return strings.TrimSpace(string(out)) != ""
}
