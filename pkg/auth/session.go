// Package auth logs in to Hugging Face and Weights & Biases using secrets
// from the provider chain, and records the variables those services read
// so they can be exported to the user's shell.
package auth

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

// Session accumulates environment variables produced by setup steps
type Session struct {
	mu  sync.Mutex
	env map[string]string
}

// NewSession creates an empty session
func NewSession() *Session {
	return &Session{env: make(map[string]string)}
}

// Set records a variable
func (s *Session) Set(key, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.env[key] = value
}

// Merge records every variable in vars
func (s *Session) Merge(vars map[string]string) {
	for k, v := range vars {
		s.Set(k, v)
	}
}

// Env returns a copy of the recorded variables
func (s *Session) Env() map[string]string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]string, len(s.env))
	for k, v := range s.env {
		out[k] = v
	}
	return out
}

// Keys returns the recorded variable names, sorted
func (s *Session) Keys() []string {
	env := s.Env()
	keys := make([]string, 0, len(env))
	for k := range env {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Exports renders the variables as POSIX shell export lines. Keys listed in
// redact have their value replaced.
func (s *Session) Exports(redact ...string) []string {
	hidden := make(map[string]bool, len(redact))
	for _, k := range redact {
		hidden[k] = true
	}
	env := s.Env()
	lines := make([]string, 0, len(env))
	for _, k := range s.Keys() {
		v := env[k]
		if hidden[k] {
			v = "***"
		}
		lines = append(lines, fmt.Sprintf("export %s=%s", k, ShellQuote(v)))
	}
	return lines
}

// ShellQuote single-quotes s for POSIX shells
func ShellQuote(s string) string {
	if s != "" && strings.IndexFunc(s, needsQuote) < 0 {
		return s
	}
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

func needsQuote(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		return false
	case strings.ContainsRune("-_./:=@%+,", r):
		return false
	}
	return true
}
