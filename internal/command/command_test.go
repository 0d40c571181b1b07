package command_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/0xRadioAc7iv/go-simpledb/core"
	"github.com/0xRadioAc7iv/go-simpledb/internal/command"
	"github.com/0xRadioAc7iv/go-simpledb/internal/logging"
	"github.com/0xRadioAc7iv/go-simpledb/internal/storage"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name string
		line string
		want command.Command
	}{
		{"SET command", "SET foo bar", command.Command{Cmd: "set", Key: "foo", Val: "bar"}},
		{"GET command", "get hello", command.Command{Cmd: "get", Key: "hello"}},
		{"COUNT command", "count", command.Command{Cmd: "count"}},
		{"value with spaces", `set city "new york"`, command.Command{Cmd: "set", Key: "city", Val: "new york"}},
		{"single quoted key", `delete 'my key'`, command.Command{Cmd: "delete", Key: "my key"}},
		{"unicode value", "set emoji 🚀🔥", command.Command{Cmd: "set", Key: "emoji", Val: "🚀🔥"}},
		{"empty quoted value", `set k ""`, command.Command{Cmd: "set", Key: "k"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := command.Parse(tt.line)
			if err != nil {
				t.Fatalf("Parse failed: %v", err)
			}
			if *got != tt.want {
				t.Errorf("got %+v, want %+v", *got, tt.want)
			}
		})
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		line string
		err  error
	}{
		{"empty line", "   ", command.ErrEmptyCommand},
		{"unknown command", "fly away", command.ErrInvalidCommand},
		{"missing value", "set foo", command.ErrInvalidArgs},
		{"extra argument", "get a b", command.ErrInvalidArgs},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := command.Parse(tt.line)
			if !errors.Is(err, tt.err) {
				t.Fatalf("expected %v, got %v", tt.err, err)
			}
		})
	}

	if _, err := command.Parse(`set k "unterminated`); err == nil {
		t.Fatal("expected error on unterminated quote")
	}
}

func TestExecute(t *testing.T) {
	mb, err := storage.NewMemoryBackend("log", 1024)
	if err != nil {
		t.Fatal(err)
	}
	db, err := core.New(*logging.NewDiscardLogger(), mb)
	if err != nil {
		t.Fatal(err)
	}

	steps := []struct {
		line string
		want string
	}{
		{"ping", "PONG!"},
		{`set city "new york"`, "ok"},
		{"get city", "new york"},
		{"get missing", "nil"},
		{"exists city", "true"},
		{"exists missing", "false"},
		{"set a 1", "ok"},
		{"count", "2"},
		{"delete city", "ok"},
		{"delete city", "ok"},
		{"get city", "nil"},
		{"count", "1"},
	}

	for _, step := range steps {
		c, err := command.Parse(step.line)
		if err != nil {
			t.Fatalf("Parse(%q) failed: %v", step.line, err)
		}

		got, err := command.Execute(db, c)
		if err != nil {
			t.Fatalf("Execute(%q) failed: %v", step.line, err)
		}
		if got != step.want {
			t.Errorf("%q: got %q, want %q", step.line, got, step.want)
		}
	}

	c, _ := command.Parse("stats")
	stats, err := command.Execute(db, c)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(stats, "keys: 1") {
		t.Errorf("unexpected stats output: %q", stats)
	}
}

func TestExecuteOnClosedDB(t *testing.T) {
	mb, _ := storage.NewMemoryBackend("log", 1024)
	db, err := core.New(*logging.NewDiscardLogger(), mb)
	if err != nil {
		t.Fatal(err)
	}
	db.Close()

	c, _ := command.Parse("get k")
	if _, err := command.Execute(db, c); !errors.Is(err, core.ErrClosed) {
		t.Fatalf("expected ErrClosed, got %v", err)
	}
}
