package main

import (
	"fmt"
	"os"
	"strings"
)

// tristate is an auto|on|off switch such as --color or --ui. Auto
// follows whether the stream it controls is a terminal.
type tristate string

const (
	triAuto tristate = "auto"
	triOn   tristate = "on"
	triOff  tristate = "off"
)

// parseTristate reads the value of flag; an empty value selects def.
func parseTristate(flag, value string, def tristate) (tristate, error) {
	switch v := tristate(strings.ToLower(strings.TrimSpace(value))); v {
	case "":
		return def, nil
	case triAuto, triOn, triOff:
		return v, nil
	default:
		return "", fmt.Errorf("invalid --%s value %q (expected auto|on|off)", flag, value)
	}
}

// on resolves t against the stream f.
func (t tristate) on(f *os.File) bool {
	switch t {
	case triOn:
		return true
	case triOff:
		return false
	default:
		return isTerminal(f)
	}
}
