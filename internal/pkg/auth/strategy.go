package auth

import "time"

// Strategy issues and validates bearer tokens for admin principals.
type Strategy interface {
	IssueToken(subject string) (string, error)
	ParseToken(token string) (string, error)
	Name() string
}

// Options tunes token strategies.
type Options struct {
	TTL time.Duration
}
