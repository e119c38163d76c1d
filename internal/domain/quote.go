// Package domain contains core business entities and rules.
package domain

import "regexp"

// Character is a quoted person or entity. Name is a unique short handle
// usable as an alternate lookup key; FullName is the display name and
// carries no uniqueness constraint.
type Character struct {
	// ID is the stable unique identifier, generated at creation time.
	ID string

	// Name is the unique, case-sensitive handle (e.g. "perceval").
	Name string

	// FullName is the display name (e.g. "Perceval de Galles").
	FullName string
}

// Quote is a single attributed line of text. Reads are denormalized:
// every Quote fetched from storage carries its author's display data.
type Quote struct {
	// ID is the stable unique identifier, generated at creation time.
	ID string

	// Text is the quote body. Required, non-empty.
	Text string

	// Author is the character the quote is attributed to.
	Author Character
}

// characterIDPattern matches a canonical 36-character hyphenated UUID
// (versions 1-5, RFC 4122 variant). Anything that does not match is
// treated as a character name.
var characterIDPattern = regexp.MustCompile(
	`^(?i)[0-9a-f]{8}-[0-9a-f]{4}-[1-5][0-9a-f]{3}-[89ab][0-9a-f]{3}-[0-9a-f]{12}$`,
)

// IsCharacterID reports whether token looks like a character ID rather
// than a character name. All front-ends accept a single free-text token
// that may be either; centralizing the test here keeps lookup behavior
// identical across REST, Slack and Mattermost.
func IsCharacterID(token string) bool {
	return characterIDPattern.MatchString(token)
}
