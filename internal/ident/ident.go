// Package ident generates the two identifier kinds used by game sessions:
// human-readable three-word game ids and opaque 32-character seat passwords.
package ident

import (
	"crypto/rand"
	"fmt"
	"strings"
)

const (
	passwordAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"
	passwordLength   = 32
	gameIDWords      = 3
)

// NewGameID returns a game id like "tuna-orient-midnight". Uniqueness is not
// guaranteed here; the store's conditional create is the guard.
func NewGameID() (string, error) {
	parts := make([]string, 0, gameIDWords)
	b := make([]byte, 2)
	for i := 0; i < gameIDWords; i++ {
		if _, err := rand.Read(b); err != nil {
			return "", fmt.Errorf("game id entropy: %w", err)
		}
		n := int(b[0])<<8 | int(b[1])
		parts = append(parts, wordList[n%len(wordList)])
	}
	return strings.Join(parts, "-"), nil
}

// NewPassword returns an opaque fixed-length alphanumeric seat password.
func NewPassword() (string, error) {
	b := make([]byte, passwordLength)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("password entropy: %w", err)
	}
	for i := range b {
		b[i] = passwordAlphabet[int(b[i])%len(passwordAlphabet)]
	}
	return string(b), nil
}
