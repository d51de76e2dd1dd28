// Package store persists user-defined snippets and repository aliases in a
// single JSON document. The whole document is read once at load and
// rewritten wholesale after every mutation. Reads take a shared lock,
// writes an exclusive one; no lock is ever held across a network call.
package store

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"
)

// Snippet is a short, user-maintained help text addressed by id.
type Snippet struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Content string `json:"content"`
}

// Repository names an owner/name pair a short alias key points at.
type Repository struct {
	Owner string `json:"owner"`
	Name  string `json:"name"`
}

func (r Repository) String() string {
	return r.Owner + "/" + r.Name
}

type document struct {
	Snippets      []Snippet             `json:"snippets"`
	IssuePrefixes map[string]Repository `json:"issue_prefixes"`
}

// Store is the shared handle over the JSON document. It is safe for
// concurrent use.
type Store struct {
	mu   sync.RWMutex
	path string
	doc  document
}

// Load reads the document at path. A missing file yields an empty store;
// the file is created on the first mutation.
func Load(path string) (*Store, error) {
	s := &Store{
		path: path,
		doc:  document{IssuePrefixes: map[string]Repository{}},
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read state file: %w", err)
	}

	if err := json.Unmarshal(data, &s.doc); err != nil {
		return nil, fmt.Errorf("failed to parse state file %s: %w", path, err)
	}
	if s.doc.IssuePrefixes == nil {
		s.doc.IssuePrefixes = map[string]Repository{}
	}
	return s, nil
}

// Snippet returns the snippet with the given id.
func (s *Store) Snippet(id string) (Snippet, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, sn := range s.doc.Snippets {
		if sn.ID == id {
			return sn, true
		}
	}
	return Snippet{}, false
}

// Snippets returns all snippets in insertion order.
func (s *Store) Snippets() []Snippet {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Snippet, len(s.doc.Snippets))
	copy(out, s.doc.Snippets)
	return out
}

// UpsertSnippet creates or replaces a snippet by id.
func (s *Store) UpsertSnippet(sn Snippet) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, existing := range s.doc.Snippets {
		if existing.ID == sn.ID {
			s.doc.Snippets[i] = sn
			return s.save()
		}
	}
	s.doc.Snippets = append(s.doc.Snippets, sn)
	return s.save()
}

// RemoveSnippet deletes a snippet by id and reports whether it existed.
func (s *Store) RemoveSnippet(id string) (Snippet, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, sn := range s.doc.Snippets {
		if sn.ID == id {
			s.doc.Snippets = append(s.doc.Snippets[:i], s.doc.Snippets[i+1:]...)
			return sn, true, s.save()
		}
	}
	return Snippet{}, false, nil
}

// Repository resolves a case-insensitive alias key.
func (s *Store) Repository(key string) (Repository, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.doc.IssuePrefixes[strings.ToLower(key)]
	return r, ok
}

// Repositories returns the alias map keys in sorted order with their
// repositories.
func (s *Store) Repositories() ([]string, map[string]Repository) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[string]Repository, len(s.doc.IssuePrefixes))
	keys := make([]string, 0, len(s.doc.IssuePrefixes))
	for k, v := range s.doc.IssuePrefixes {
		out[k] = v
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, out
}

// SetRepository binds an alias key to a repository. Keys are stored
// lowercase.
func (s *Store) SetRepository(key string, r Repository) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.doc.IssuePrefixes[strings.ToLower(key)] = r
	return s.save()
}

// RemoveRepository deletes an alias key and reports whether it existed.
func (s *Store) RemoveRepository(key string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key = strings.ToLower(key)
	if _, ok := s.doc.IssuePrefixes[key]; !ok {
		return false, nil
	}
	delete(s.doc.IssuePrefixes, key)
	return true, s.save()
}

// save rewrites the whole document. Callers hold the write lock.
func (s *Store) save() error {
	data, err := json.MarshalIndent(&s.doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal state: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0644); err != nil {
		return fmt.Errorf("failed to write state file %s: %w", s.path, err)
	}
	return nil
}
