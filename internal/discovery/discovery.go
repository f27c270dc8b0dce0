// Package discovery lets clients find a locally running moodlit server.
//
// The server writes "host|port|pid" to a lockfile in the config directory
// while it is listening. Clients trust the lockfile only if the pid belongs
// to a live moodlit process.
package discovery

import (
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/mitchellh/go-ps"

	"github.com/julianstephens/moodlit/internal/constants"
)

var (
	findProcessFunc = ps.FindProcess
	getpidFunc      = os.Getpid
)

// ErrNoServer is returned when no live server could be found
var ErrNoServer = errors.New("moodlit server is not running")

// LockfilePath returns the lockfile location inside configDir
func LockfilePath(configDir string) string {
	return filepath.Join(configDir, constants.ServerLockfileName)
}

// DialHost is the host a client should connect to for a listener bound to
// ip. Wildcard binds are reached through loopback.
func DialHost(ip net.IP) string {
	if ip == nil || ip.IsUnspecified() {
		return "127.0.0.1"
	}
	return ip.String()
}

// BaseURL joins host and port into an http URL, bracketing IPv6 hosts
func BaseURL(host string, port int) string {
	return "http://" + net.JoinHostPort(host, strconv.Itoa(port))
}

// WriteLockfile records the dialable host, the listening port and the current pid
func WriteLockfile(path, host string, port int) error {
	if port < 1 || port > 65535 {
		return fmt.Errorf("port number %d is outside valid range (1-65535)", port)
	}
	if host == "" || strings.Contains(host, "|") {
		return fmt.Errorf("invalid host %q", host)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("failed to create lockfile directory: %w", err)
	}
	content := fmt.Sprintf("%s|%d|%d", host, port, getpidFunc())
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		return fmt.Errorf("failed to write lockfile: %w", err)
	}
	return nil
}

// RemoveLockfile deletes the lockfile, ignoring a missing file
func RemoveLockfile(path string) error {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove lockfile: %w", err)
	}
	return nil
}

// Discover returns the base URL of the server recorded in the lockfile
func Discover(path string) (string, error) {
	host, port, err := findAndValidateServer(path)
	if err != nil {
		return "", err
	}
	return BaseURL(host, port), nil
}

func findAndValidateServer(lockfilePath string) (string, int, error) {
	content, err := os.ReadFile(lockfilePath)
	if err != nil {
		return "", 0, ErrNoServer
	}

	parts := strings.Split(strings.TrimSpace(string(content)), "|")
	if len(parts) != 3 {
		return "", 0, errors.New("lockfile is malformed")
	}

	host := strings.TrimSpace(parts[0])
	if host == "" {
		return "", 0, errors.New("missing host in lockfile")
	}

	port, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return "", 0, errors.New("invalid port number in lockfile")
	}
	if port < 1 || port > 65535 {
		return "", 0, fmt.Errorf("port number %d is outside valid range (1-65535)", port)
	}

	pid, err := strconv.Atoi(strings.TrimSpace(parts[2]))
	if err != nil {
		return "", 0, errors.New("invalid process ID in lockfile")
	}

	process, err := findProcessFunc(pid)
	if err != nil || process == nil {
		return "", 0, fmt.Errorf("%w (stale lockfile for pid %d)", ErrNoServer, pid)
	}
	if !strings.HasPrefix(process.Executable(), constants.AppName) {
		return "", 0, fmt.Errorf("process with PID %d is not %s (is %s)", pid, constants.AppName, process.Executable())
	}

	return host, port, nil
}
