package main

import (
	"fmt"
	"strconv"
)

// defaultMaxResults is the result cap when none is given.
const defaultMaxResults = 1

// parseArgs splits the positional arguments into the result cap and the
// root parameter overrides. The first argument is the cap (0 means no
// cap); the rest are key value pairs.
func parseArgs(args []string) (maxResults int, params map[string]any, err error) {
	maxResults = defaultMaxResults
	if len(args) == 0 {
		return maxResults, nil, nil
	}
	maxResults, err = strconv.Atoi(args[0])
	if err != nil || maxResults < 0 {
		return 0, nil, fmt.Errorf("invalid max results %q", args[0])
	}
	rest := args[1:]
	if len(rest)%2 != 0 {
		return 0, nil, fmt.Errorf("parameter %q has no value", rest[len(rest)-1])
	}
	params = make(map[string]any, len(rest)/2)
	for i := 0; i < len(rest); i += 2 {
		params[rest[i]] = inferValue(rest[i+1])
	}
	return maxResults, params, nil
}

// inferValue types a command-line value: integer, then float, then
// boolean, then string.
func inferValue(s string) any {
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	switch s {
	case "true":
		return true
	case "false":
		return false
	}
	return s
}
