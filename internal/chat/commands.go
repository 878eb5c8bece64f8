package chat

import (
	"regexp"
	"strings"
)

const (
	// KonamiPhrase toggles retro mode when it is the whole message.
	KonamiPhrase = "up up down down left right left right b a"
	// SelfDestructMarker anywhere in a message turns it ephemeral.
	SelfDestructMarker = "/self-destruct"
)

var selfDestructPattern = regexp.MustCompile(`(?i)` + regexp.QuoteMeta(SelfDestructMarker))

// Command is what the interpreter found in an outgoing message.
type Command struct {
	Content      string
	ToggleRetro  bool
	SelfDestruct bool
}

// Interpret inspects outgoing text. ok is false when the text is empty after
// trimming, in which case nothing must be sent.
func Interpret(text string) (cmd Command, ok bool) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return Command{}, false
	}

	lowered := strings.ToLower(trimmed)
	cmd.Content = trimmed
	cmd.ToggleRetro = lowered == KonamiPhrase

	if strings.Contains(lowered, SelfDestructMarker) {
		cmd.SelfDestruct = true
		cmd.Content = strings.TrimSpace(selfDestructPattern.ReplaceAllString(trimmed, ""))
	}

	return cmd, true
}
