package lexer

import (
	"strings"

	"github.com/fieldquery/fieldquery/internal/errors"
)

// Profile selects one of the two grammar dialects.
type Profile int

const (
	// DefaultProfile accepts the `@` (order) and `_` (private) field markers and the
	// pattern-match operators `* > < =`.
	DefaultProfile Profile = iota
	// LegacyProfile only accepts bare field names and adds the `?` regex operator.
	LegacyProfile
)

var profileNames = map[Profile]string{
	DefaultProfile: "default",
	LegacyProfile:  "legacy",
}

// ParseProfile resolves a profile name. The empty name selects DefaultProfile.
func ParseProfile(name string) (Profile, error) {
	if name == "" {
		return DefaultProfile, nil
	}

	for profile, profileName := range profileNames {
		if strings.EqualFold(profileName, name) {
			return profile, nil
		}
	}

	return DefaultProfile, errors.Errorf("unknown lexer profile %q, supported profiles: default, legacy", name)
}

func (profile Profile) String() string {
	return profileNames[profile]
}

// SupportsFieldMarkers reports whether `@name:` and `_name:` are field names.
func (profile Profile) SupportsFieldMarkers() bool {
	return profile == DefaultProfile
}

// SupportsRegex reports whether `~?` (regex) pattern matching is available.
func (profile Profile) SupportsRegex() bool {
	return profile == LegacyProfile
}

func (profile Profile) fieldNamePattern() string {
	if profile.SupportsFieldMarkers() {
		return `@?_?\p{L}[\p{L}\p{N}_-]*\s*:`
	}

	return `\p{L}[\p{L}\p{N}_-]*\s*:`
}

func (profile Profile) patternMatchOperator() string {
	if profile.SupportsRegex() {
		return `([^*<>?=]{0,2}\s*)([*<>?=])`
	}

	return `([^*<>=]{0,2}\s*)([*<>=])`
}
