package browser

import (
	"context"
	"fmt"
	"net/url"
	"os/exec"
	"runtime"
)

// Opener opens a url in a new browser tab.
type Opener interface {
	Open(ctx context.Context, url string) error
}

// SystemOpener opens urls with the operating system's default browser.
type SystemOpener struct {
	goos  string
	start func(cmd *exec.Cmd) error
}

// NewSystemOpener returns an Opener for the current platform.
func NewSystemOpener() *SystemOpener {
	return &SystemOpener{
		goos:  runtime.GOOS,
		start: func(cmd *exec.Cmd) error { return cmd.Start() },
	}
}

// Open launches the browser without waiting for it to exit. Only http and
// https urls are accepted. The launched process outlives ctx.
func (o *SystemOpener) Open(ctx context.Context, rawURL string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	u, err := url.ParseRequestURI(rawURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
		return fmt.Errorf("refusing to open %q: not an http(s) url", rawURL)
	}

	name, args := openCommand(o.goos, u.String())
	if name == "" {
		return fmt.Errorf("opening urls is not supported on %s", o.goos)
	}

	if err := o.start(exec.Command(name, args...)); err != nil {
		return fmt.Errorf("starting %s: %w", name, err)
	}
	return nil
}

// openCommand returns the command that opens target on goos.
func openCommand(goos, target string) (string, []string) {
	switch goos {
	case "darwin":
		return "open", []string{target}
	case "linux", "freebsd", "openbsd", "netbsd":
		return "xdg-open", []string{target}
	case "windows":
		return "cmd", []string{"/c", "start", target}
	}
	return "", nil
}
