package entities

import (
	"strconv"
	"strings"
)

// Credentials authenticate every call against the gateway.
//
// A Terminal of 0 means it was not provided, a negative value means it was provided
// but could not be understood.
type Credentials struct {
	ApiToken string
	Terminal int64
}

func NewCredentials(apiToken string, terminal string) Credentials {
	return Credentials{
		ApiToken: strings.TrimSpace(apiToken),
		Terminal: parseTerminal(terminal),
	}
}

func parseTerminal(terminal string) int64 {
	terminal = strings.TrimSpace(terminal)
	if terminal == "" {
		return 0
	}

	value, err := strconv.ParseInt(terminal, 10, 64)
	if err != nil {
		return -1
	}

	return value
}
