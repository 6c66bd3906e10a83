package main

import (
	"fmt"
	"strings"
)

const (
	commandExtract = "extract"
	commandShow    = "show"
	commandVersion = "version"
)

const usage = `usage: waymark_extractor [extract] [path]
       waymark_extractor show <run-id>
       waymark_extractor version`

// command is a parsed command line
type command struct {
	Name string
	Path  string // empty means input.path from config
	RunID string // stored run printed by show
}

// parseArgs parses the arguments after the program name.
// A lone path is shorthand for "extract <path>".
func parseArgs(args []string) (command, error) {
	if len(args) == 0 {
		return command{Name: commandExtract}, nil
	}

	switch strings.ToLower(args[0]) {
	case commandVersion:
		if len(args) > 1 {
			return command{}, fmt.Errorf("version takes no arguments")
		}
		return command{Name: commandVersion}, nil
	case commandShow:
		if len(args) != 2 {
			return command{}, fmt.Errorf("show takes exactly one run ID")
		}
		return command{Name: commandShow, RunID: args[1]}, nil
	case commandExtract:
		args = args[1:]
	}

	switch len(args) {
	case 0:
		return command{Name: commandExtract}, nil
	case 1:
		return command{Name: commandExtract, Path: args[0]}, nil
	default:
		return command{}, fmt.Errorf("too many arguments: %s", strings.Join(args, " "))
	}
}
