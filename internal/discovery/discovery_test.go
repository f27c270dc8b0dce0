package discovery

import (
	"errors"
	"net"
	"os"
	"path/filepath"
	"strings"
	"testing"

	ps "github.com/mitchellh/go-ps"
)

type mockProcess struct {
	pid        int
	executable string
}

func (m *mockProcess) Pid() int           { return m.pid }
func (m *mockProcess) PPid() int          { return 0 }
func (m *mockProcess) Executable() string { return m.executable }

func withProcesses(t *testing.T, procs map[int]string) {
	t.Helper()
	old := findProcessFunc
	t.Cleanup(func() { findProcessFunc = old })
	findProcessFunc = func(pid int) (ps.Process, error) {
		exe, ok := procs[pid]
		if !ok {
			return nil, nil
		}
		return &mockProcess{pid: pid, executable: exe}, nil
	}
}

func TestWriteAndDiscover(t *testing.T) {
	oldPid := getpidFunc
	defer func() { getpidFunc = oldPid }()
	getpidFunc = func() int { return 4242 }
	withProcesses(t, map[int]string{4242: "moodlit"})

	path := LockfilePath(filepath.Join(t.TempDir(), "config"))
	if err := WriteLockfile(path, "127.0.0.1", 5055); err != nil {
		t.Fatalf("WriteLockfile() failed: %v", err)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(content) != "127.0.0.1|5055|4242" {
		t.Errorf("lockfile content = %q", content)
	}

	url, err := Discover(path)
	if err != nil {
		t.Fatalf("Discover() failed: %v", err)
	}
	if url != "http://127.0.0.1:5055" {
		t.Errorf("Discover() = %q", url)
	}

	if err := RemoveLockfile(path); err != nil {
		t.Fatal(err)
	}
	if _, err := Discover(path); !errors.Is(err, ErrNoServer) {
		t.Errorf("after removal Discover() error = %v, want ErrNoServer", err)
	}
	if err := RemoveLockfile(path); err != nil {
		t.Errorf("removing a missing lockfile should succeed: %v", err)
	}
}

func TestWriteLockfileRejectsBadPort(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lock")
	for _, port := range []int{0, -1, 70000} {
		if err := WriteLockfile(path, "127.0.0.1", port); err == nil {
			t.Errorf("WriteLockfile(%d) should fail", port)
		}
	}
	for _, host := range []string{"", "a|b"} {
		if err := WriteLockfile(path, host, 5000); err == nil {
			t.Errorf("WriteLockfile(host %q) should fail", host)
		}
	}
}

func TestDiscoverRecordsBoundHost(t *testing.T) {
	oldPid := getpidFunc
	defer func() { getpidFunc = oldPid }()
	getpidFunc = func() int { return 4242 }
	withProcesses(t, map[int]string{4242: "moodlit"})

	tests := []struct {
		name string
		ip   net.IP
		want string
	}{
		{name: "loopback", ip: net.ParseIP("127.0.0.1"), want: "http://127.0.0.1:5000"},
		{name: "lan address", ip: net.ParseIP("192.168.1.20"), want: "http://192.168.1.20:5000"},
		{name: "ipv4 wildcard", ip: net.IPv4zero, want: "http://127.0.0.1:5000"},
		{name: "ipv6 wildcard", ip: net.IPv6unspecified, want: "http://127.0.0.1:5000"},
		{name: "ipv6 address", ip: net.ParseIP("fd00::1"), want: "http://[fd00::1]:5000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "lock")
			if err := WriteLockfile(path, DialHost(tt.ip), 5000); err != nil {
				t.Fatalf("WriteLockfile() failed: %v", err)
			}
			got, err := Discover(path)
			if err != nil {
				t.Fatalf("Discover() failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("Discover() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFindAndValidateServer(t *testing.T) {
	withProcesses(t, map[int]string{
		100: "moodlit",
		200: "bash",
	})

	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{name: "valid", content: "10.0.0.5|5000|100"},
		{name: "trailing newline", content: "10.0.0.5|5000|100\n"},
		{name: "malformed", content: "5000|100", wantErr: "malformed"},
		{name: "extra field", content: "10.0.0.5|5000|100|secret", wantErr: "malformed"},
		{name: "missing host", content: "|5000|100", wantErr: "missing host"},
		{name: "bad port", content: "10.0.0.5|abc|100", wantErr: "invalid port"},
		{name: "port out of range", content: "10.0.0.5|99999|100", wantErr: "outside valid range"},
		{name: "bad pid", content: "10.0.0.5|5000|x", wantErr: "invalid process ID"},
		{name: "dead process", content: "10.0.0.5|5000|300", wantErr: "not running"},
		{name: "wrong process", content: "10.0.0.5|5000|200", wantErr: "is not moodlit"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "lock")
			if err := os.WriteFile(path, []byte(tt.content), 0600); err != nil {
				t.Fatal(err)
			}
			host, port, err := findAndValidateServer(path)
			if tt.wantErr != "" {
				if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
					t.Fatalf("expected error containing %q, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if host != "10.0.0.5" || port != 5000 {
				t.Errorf("server = %s:%d, want 10.0.0.5:5000", host, port)
			}
		})
	}
}
