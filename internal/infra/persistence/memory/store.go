// Package memory provides an in-process document store that behaves like the
// Realtime Database for whole-subtree reads and writes.
package memory

import (
	"context"
	"encoding/json"
	"strings"
	"sync"

	"fuelflow/internal/domain/repository"

	"github.com/pkg/errors"
)

// Store keeps the document tree as decoded JSON.
type Store struct {
	mu   sync.RWMutex
	root map[string]any
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{root: map[string]any{}}
}

var _ repository.DocumentStore = (*Store)(nil)

func splitPath(path string) []string {
	var segments []string
	for _, s := range strings.Split(path, "/") {
		if s != "" {
			segments = append(segments, s)
		}
	}

	return segments
}

// Get implements repository.DocumentStore.
func (s *Store) Get(ctx context.Context, path string, dest any) error {
	if err := ctx.Err(); err != nil {
		return errors.WithStack(err)
	}

	s.mu.RLock()
	node, ok := lookup(s.root, splitPath(path))
	var raw []byte
	var err error
	if ok {
		raw, err = json.Marshal(node)
	}
	s.mu.RUnlock()

	if !ok {
		return nil
	}
	if err != nil {
		return errors.Wrapf(err, "encode %s", path)
	}

	return errors.Wrapf(json.Unmarshal(raw, dest), "decode %s", path)
}

// Set implements repository.DocumentStore. A nil value deletes the path.
func (s *Store) Set(ctx context.Context, path string, value any) error {
	if err := ctx.Err(); err != nil {
		return errors.WithStack(err)
	}

	raw, err := json.Marshal(value)
	if err != nil {
		return errors.Wrapf(err, "encode %s", path)
	}

	var node any
	if err := json.Unmarshal(raw, &node); err != nil {
		return errors.Wrapf(err, "normalize %s", path)
	}

	segments := splitPath(path)
	if len(segments) == 0 {
		return errors.New("cannot write the store root")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if node == nil {
		remove(s.root, segments)

		return nil
	}

	parent := s.root
	for _, seg := range segments[:len(segments)-1] {
		child, ok := parent[seg].(map[string]any)
		if !ok {
			child = map[string]any{}
			parent[seg] = child
		}
		parent = child
	}
	parent[segments[len(segments)-1]] = node

	return nil
}

// Delete implements repository.DocumentStore.
func (s *Store) Delete(ctx context.Context, path string) error {
	if err := ctx.Err(); err != nil {
		return errors.WithStack(err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	remove(s.root, splitPath(path))

	return nil
}

func lookup(root map[string]any, segments []string) (any, bool) {
	var node any = root
	for _, seg := range segments {
		m, ok := node.(map[string]any)
		if !ok {
			return nil, false
		}
		if node, ok = m[seg]; !ok {
			return nil, false
		}
	}

	return node, true
}

// remove deletes the leaf and prunes parents left empty, as the Realtime
// Database does not keep empty objects.
func remove(node map[string]any, segments []string) bool {
	if len(segments) == 0 {
		return false
	}
	if len(segments) == 1 {
		delete(node, segments[0])

		return len(node) == 0
	}

	child, ok := node[segments[0]].(map[string]any)
	if !ok {
		return false
	}
	if remove(child, segments[1:]) {
		delete(node, segments[0])
	}

	return len(node) == 0
}
