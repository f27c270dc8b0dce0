package cli

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/julianstephens/moodlit/internal/constants"
	"github.com/julianstephens/moodlit/internal/discovery"
)

func TestParseMoods(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    []string
		wantErr bool
	}{
		{name: "empty", input: "", want: nil},
		{name: "single", input: "happy", want: []string{"happy"}},
		{name: "trims and lowercases", input: " Happy , SAD ", want: []string{"happy", "sad"}},
		{name: "drops blanks and duplicates", input: "happy,,happy,calm", want: []string{"happy", "calm"}},
		{name: "too long", input: "a-very-long-mood-name-indeed", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseMoods(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseMoods() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ParseMoods() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestResolveServerURL(t *testing.T) {
	t.Run("explicit flag wins", func(t *testing.T) {
		ctx := &Context{ServerURL: "http://example.test:8080/", ConfigDir: t.TempDir()}
		if got := ctx.ResolveServerURL(); got != "http://example.test:8080" {
			t.Errorf("ResolveServerURL() = %q", got)
		}
	})

	t.Run("no lockfile falls back to default", func(t *testing.T) {
		ctx := &Context{ConfigDir: t.TempDir()}
		if got := ctx.ResolveServerURL(); got != constants.DefaultServerURL {
			t.Errorf("ResolveServerURL() = %q, want %q", got, constants.DefaultServerURL)
		}
	})

	t.Run("stale lockfile falls back to default", func(t *testing.T) {
		dir := t.TempDir()
		// pid 0 is never a live moodlit process
		content := "127.0.0.1|6123|0"
		if err := os.WriteFile(filepath.Join(dir, constants.ServerLockfileName), []byte(content), 0600); err != nil {
			t.Fatal(err)
		}
		ctx := &Context{ConfigDir: dir}
		if got := ctx.ResolveServerURL(); got != constants.DefaultServerURL {
			t.Errorf("ResolveServerURL() = %q, want %q", got, constants.DefaultServerURL)
		}
		if _, err := os.Stat(discovery.LockfilePath(dir)); err != nil {
			t.Errorf("lockfile should be left in place: %v", err)
		}
	})
}

func TestMoodIDsDefault(t *testing.T) {
	ctx := &Context{}
	if !reflect.DeepEqual(ctx.MoodIDs(), constants.DefaultMoodIDs()) {
		t.Errorf("MoodIDs() = %v", ctx.MoodIDs())
	}
}
