// Package command parses and runs the line-oriented commands accepted by the
// simpledb shell.
package command

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/kballard/go-shellquote"

	"github.com/0xRadioAc7iv/go-simpledb/core"
)

var (
	ErrEmptyCommand   = errors.New("empty command")
	ErrInvalidCommand = errors.New("invalid command")
	ErrInvalidArgs    = errors.New("invalid number of arguments")
)

// Command is one parsed shell line.
//
// The meaning of Key and Val depends on the command (e.g. GET, SET, DELETE).
type Command struct {
	Cmd string // Lower-cased command name (e.g. "get", "set", "delete")
	Key string // Key argument (may be empty)
	Val string // Value argument (may be empty)
}

// arity is the number of words each command takes, including its name.
var arity = map[string]int{
	"ping":   1,
	"set":    3,
	"get":    2,
	"delete": 2,
	"exists": 2,
	"count":  1,
	"stats":  1,
	"help":   1,
}

// Parse splits line with shell quoting rules, so values containing spaces
// can be written as SET city "new york".
func Parse(line string) (*Command, error) {
	words, err := shellquote.Split(line)
	if err != nil {
		return nil, err
	}
	if len(words) == 0 {
		return nil, ErrEmptyCommand
	}

	cmd := strings.ToLower(words[0])
	n, ok := arity[cmd]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrInvalidCommand, words[0])
	}
	if len(words) != n {
		return nil, fmt.Errorf("%w: %s takes %d, got %d", ErrInvalidArgs, cmd, n-1, len(words)-1)
	}

	c := &Command{Cmd: cmd}
	if n > 1 {
		c.Key = words[1]
	}
	if n > 2 {
		c.Val = words[2]
	}

	return c, nil
}

// Execute runs c against db and returns the reply to print. A non-nil error
// is a storage fault or a closed database; the caller should stop.
func Execute(db *core.DB, c *Command) (string, error) {
	switch c.Cmd {
	case "ping":
		return "PONG!", nil
	case "set":
		if err := db.Set(c.Key, c.Val); err != nil {
			return "", err
		}
		return "ok", nil
	case "get":
		value, found, err := db.Get(c.Key)
		if err != nil {
			return "", err
		}
		if !found {
			return "nil", nil
		}
		return value, nil
	case "delete":
		if err := db.Delete(c.Key); err != nil {
			return "", err
		}
		return "ok", nil
	case "exists":
		_, found, err := db.Get(c.Key)
		if err != nil {
			return "", err
		}
		return strconv.FormatBool(found), nil
	case "count":
		return strconv.Itoa(db.Stats().Keys), nil
	case "stats":
		return formatStats(db.Stats()), nil
	case "help":
		return strings.TrimSpace(helpString), nil
	default:
		return "Invalid Command", nil
	}
}

func formatStats(s core.Stats) string {
	return fmt.Sprintf("keys: %d\nlive bytes: %d\nlog size: %d\ngarbage bytes: %d\ncompactions: %d",
		s.Keys, s.LiveBytes, s.LogSize, s.GarbageBytes, s.Compactions)
}

const helpString = `
Available Commands:

PING
  Check if the shell is alive.
  Response: PONG!

SET <key> <value>
  Store a value for the given key.
  Overwrites the value if the key already exists.
  Quote values containing spaces: SET city "new york"
  Response: ok

GET <key>
  Retrieve the value associated with the key.
  Response: value | nil

DELETE <key>
  Delete the key and its value.
  Response: ok

EXISTS <key>
  Check if a key exists.
  Response: true | false

COUNT
  Return the total number of keys stored.
  Response: integer

STATS
  Show index and log file sizes.

HELP
  Show this help message.

EXIT
  Close the database and quit.
`
