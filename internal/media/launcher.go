package media

import (
	"fmt"
	"os/exec"
	"runtime"

	"github.com/charmbracelet/log"
)

var getRuntime = func() string { return runtime.GOOS }

// startCommand runs a command without waiting for it to exit.
var startCommand = func(name string, args ...string) error {
	return exec.Command(name, args...).Start()
}

// Launcher opens video URLs in an external player.
type Launcher struct {
	command string   // configured player, empty for the system default handler
	args    []string // extra arguments placed before the URL
	logger  *log.Logger
}

// NewLauncher creates a launcher for command. An empty command opens URLs with the system default.
func NewLauncher(command string, args []string, logger *log.Logger) *Launcher {
	if logger == nil {
		logger = log.Default()
	}
	return &Launcher{command: command, args: args, logger: logger}
}

// Launch starts the player on url and returns once the process has started.
func (l *Launcher) Launch(url string) error {
	if l.command == "" {
		return l.launchDefault(url)
	}

	args := append(append([]string{}, l.args...), url)
	l.logger.Info("launching player", "command", l.command, "args", args)

	if err := startCommand(l.command, args...); err != nil {
		return fmt.Errorf("failed to start %s: %w", l.command, err)
	}
	return nil
}

// launchDefault opens url with open, xdg-open or start depending on the platform.
func (l *Launcher) launchDefault(url string) error {
	var (
		name string
		args []string
	)

	rt := getRuntime()
	switch rt {
	case "darwin":
		name, args = "open", []string{url}
	case "linux", "freebsd", "openbsd", "netbsd":
		name, args = "xdg-open", []string{url}
	case "windows":
		name, args = "cmd", []string{"/c", "start", "", url}
	default:
		return fmt.Errorf("unsupported platform: %s", rt)
	}

	l.logger.Info("launching with system default", "os", rt, "url", url)
	if err := startCommand(name, args...); err != nil {
		return fmt.Errorf("failed to open %s: %w", url, err)
	}
	return nil
}
