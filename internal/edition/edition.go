// Package edition guesses which Minecraft client a username belongs to.
package edition

import (
	"regexp"
	"strings"
)

type Edition string

const (
	Java    Edition = "Java"
	Bedrock Edition = "Bedrock"
	Unknown Edition = "Unknown"
)

// Floodgate prefixes Bedrock players with a dot.
const bedrockPrefix = "."

var javaNameRe = regexp.MustCompile(`^[A-Za-z0-9_]{3,16}$`)

// Classify maps a raw username to an edition label. It never fails.
func Classify(username string) Edition {
	switch {
	case strings.HasPrefix(username, bedrockPrefix):
		return Bedrock
	case javaNameRe.MatchString(username):
		return Java
	default:
		return Unknown
	}
}

func (e Edition) String() string { return string(e) }
