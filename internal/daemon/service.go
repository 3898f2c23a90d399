package daemon

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"text/template"

	"github.com/adrg/xdg"

	"github.com/manav03panchal/hydrate/internal/storage"
)

// ServiceLabel identifies the launchd agent.
const ServiceLabel = "io.github.manav03panchal.hydrate"

// ErrServiceUnsupported is returned on platforms without a GUI dialog, where
// an unattended reminder could not prompt anyone.
var ErrServiceUnsupported = errors.New("service install is only supported on macOS")

// ServiceManager installs `hydrate run` as a login agent.
type ServiceManager struct {
	executablePath string
	configPath     string
	plistPath      string
	goos           string
	run            func(name string, args ...string) ([]byte, error)
}

// NewServiceManager creates a service manager for the running executable.
// configPath is passed to the agent so it reads the same settings.
func NewServiceManager(configPath string) (*ServiceManager, error) {
	execPath, err := os.Executable()
	if err != nil {
		return nil, fmt.Errorf("failed to get executable path: %w", err)
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get home directory: %w", err)
	}

	return &ServiceManager{
		executablePath: execPath,
		configPath:     configPath,
		plistPath:      filepath.Join(home, "Library", "LaunchAgents", ServiceLabel+".plist"),
		goos:           runtime.GOOS,
		run: func(name string, args ...string) ([]byte, error) {
			return exec.Command(name, args...).CombinedOutput()
		},
	}, nil
}

// Path returns the agent definition file.
func (m *ServiceManager) Path() string {
	return m.plistPath
}

// LogPath is where the agent's stdout and stderr go.
func LogPath() string {
	return filepath.Join(xdg.StateHome, storage.AppName, "agent.log")
}

const launchdPlist = `<?xml version="1.0" encoding="UTF-8"?>
<!DOCTYPE plist PUBLIC "-//Apple//DTD PLIST 1.0//EN" "http://www.apple.com/DTDs/PropertyList-1.0.dtd">
<plist version="1.0">
<dict>
    <key>Label</key>
    <string>{{xml .Label}}</string>
    <key>ProgramArguments</key>
    <array>
        <string>{{xml .ExecutablePath}}</string>
        <string>run</string>
        <string>--notifier</string>
        <string>dialog</string>
{{- if .ConfigPath}}
        <string>--config</string>
        <string>{{xml .ConfigPath}}</string>
{{- end}}
    </array>
    <key>RunAtLoad</key>
    <true/>
    <key>KeepAlive</key>
    <dict>
        <key>SuccessfulExit</key>
        <false/>
    </dict>
    <key>StandardOutPath</key>
    <string>{{xml .LogPath}}</string>
    <key>StandardErrorPath</key>
    <string>{{xml .LogPath}}</string>
</dict>
</plist>
`

var plistTemplate = template.Must(template.New("plist").
	Funcs(template.FuncMap{"xml": xmlEscape}).
	Parse(launchdPlist))

// xmlEscape makes s safe inside a plist <string> element.
func xmlEscape(s string) (string, error) {
	var b strings.Builder
	if err := xml.EscapeText(&b, []byte(s)); err != nil {
		return "", err
	}
	return b.String(), nil
}

// Render returns the launchd agent definition. Choosing Exit in the dialog
// ends the agent without a restart.
func (m *ServiceManager) Render() (string, error) {
	data := struct {
		Label          string
		ExecutablePath string
		ConfigPath     string
		LogPath        string
	}{
		Label:          ServiceLabel,
		ExecutablePath: m.executablePath,
		ConfigPath:     m.configPath,
		LogPath:        LogPath(),
	}

	var buf bytes.Buffer
	if err := plistTemplate.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render plist: %w", err)
	}
	return buf.String(), nil
}

// Install writes the agent definition and loads it.
func (m *ServiceManager) Install() error {
	if m.goos != "darwin" {
		return ErrServiceUnsupported
	}

	content, err := m.Render()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(m.plistPath), 0755); err != nil {
		return fmt.Errorf("failed to create LaunchAgents directory: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(LogPath()), 0755); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}
	if err := os.WriteFile(m.plistPath, []byte(content), 0644); err != nil {
		return fmt.Errorf("failed to write plist: %w", err)
	}

	if output, err := m.run("launchctl", "load", m.plistPath); err != nil {
		return fmt.Errorf("failed to load service: %w: %s", err, string(output))
	}
	return nil
}

// Uninstall unloads the agent and removes its definition.
func (m *ServiceManager) Uninstall() error {
	if m.goos != "darwin" {
		return ErrServiceUnsupported
	}

	// Not being loaded is fine.
	_, _ = m.run("launchctl", "unload", m.plistPath)

	if err := os.Remove(m.plistPath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove plist file: %w", err)
	}
	return nil
}

// IsInstalled checks if the agent definition exists.
func (m *ServiceManager) IsInstalled() bool {
	_, err := os.Stat(m.plistPath)
	return err == nil
}
