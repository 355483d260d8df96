package browser

import (
	"fmt"
	"io"
	"os"
	"os/exec"

	"github.com/pkg/browser"
	"go.uber.org/zap"
)

// Opener launches URLs in a web browser.
type Opener struct {
	// Command overrides the platform default. The URL is appended as the
	// last argument.
	Command []string

	// Output receives anything the browser process prints. Defaults to
	// os.Stderr so that standard output stays clean.
	Output io.Writer

	Logger *zap.Logger

	// openURL is replaced in tests
	openURL func(url string) error
}

// Open opens url in a new browser tab or window.
func (o *Opener) Open(url string) error {
	log := o.Logger
	if log == nil {
		log = zap.NewNop()
	}
	out := o.Output
	if out == nil {
		out = os.Stderr
	}

	if len(o.Command) > 0 {
		args := append(append([]string{}, o.Command[1:]...), url)
		log.Debug("launching browser command", zap.String("command", o.Command[0]), zap.Strings("args", args))

		cmd := exec.Command(o.Command[0], args...)
		cmd.Stdout = out
		cmd.Stderr = out
		if err := cmd.Run(); err != nil {
			return fmt.Errorf("run %s: %w", o.Command[0], err)
		}
		return nil
	}

	open := o.openURL
	if open == nil {
		browser.Stdout = out
		browser.Stderr = out
		open = browser.OpenURL
	}
	log.Debug("opening url in default browser", zap.String("url", url))
	if err := open(url); err != nil {
		return fmt.Errorf("open browser: %w", err)
	}
	return nil
}
