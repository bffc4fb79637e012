// Package idgen provides short, URL-safe unique ID generation backed by nanoid.
package idgen

import (
	"fmt"

	nanoid "github.com/matoous/go-nanoid/v2"
)

// LinkPrefix and ListPrefix distinguish the two record kinds at a glance.
const (
	LinkPrefix = "ln-"
	ListPrefix = "ls-"
)

// Alphabet defines the character set used for the random portion of the ID.
var Alphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// Length is the number of random characters generated (excluding the prefix).
var Length = 10

// NewLinkID returns a new unique link ID.
func NewLinkID() (string, error) {
	return generate(LinkPrefix)
}

// NewListID returns a new unique list ID.
func NewListID() (string, error) {
	return generate(ListPrefix)
}

func generate(prefix string) (string, error) {
	id, err := nanoid.Generate(Alphabet, Length)
	if err != nil {
		return "", fmt.Errorf("idgen: %w", err)
	}
	return prefix + id, nil
}
