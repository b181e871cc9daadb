// Package resolve maps target strings from intents to entities and items.
// Matching is exact-id first, then case-insensitive substring on names.
package resolve

import (
	"fmt"
	"strings"

	"github.com/nathoo/emberfall/types"
)

// AmbiguityError indicates multiple candidates matched a target string.
type AmbiguityError struct {
	Name       string
	Candidates []string
}

func (e *AmbiguityError) Error() string {
	return fmt.Sprintf("which %s? (%s)", e.Name, strings.Join(e.Candidates, ", "))
}

// NotFoundError indicates no candidate matched a target string.
type NotFoundError struct {
	Name string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("there is no %q here", e.Name)
}

// Entity resolves a target string against the entities present in a room.
// An exact id match wins outright; otherwise a case-insensitive substring
// match on entity names applies, erroring when it is ambiguous.
func Entity(entities []*types.Entity, target string) (*types.Entity, error) {
	if target == "" {
		return nil, &NotFoundError{Name: target}
	}

	for _, e := range entities {
		if e.ID == target {
			return e, nil
		}
	}

	query := strings.ToLower(target)
	var matches []*types.Entity
	for _, e := range entities {
		if strings.Contains(strings.ToLower(e.Name), query) {
			matches = append(matches, e)
		}
	}

	switch len(matches) {
	case 0:
		return nil, &NotFoundError{Name: target}
	case 1:
		return matches[0], nil
	default:
		names := make([]string, len(matches))
		for i, m := range matches {
			names[i] = m.Name
		}
		return nil, &AmbiguityError{Name: target, Candidates: names}
	}
}

// Item resolves a target string against an item list (a room floor or an
// inventory) and returns the matching index. Exact item or instance id
// match wins; otherwise case-insensitive substring on names, erroring on
// ambiguity.
func Item(items []types.ItemInstance, target string) (int, error) {
	if target == "" {
		return -1, &NotFoundError{Name: target}
	}

	for i, it := range items {
		if it.ItemID == target || it.InstanceID == target {
			return i, nil
		}
	}

	query := strings.ToLower(target)
	var matches []int
	for i, it := range items {
		if strings.Contains(strings.ToLower(it.Name), query) {
			matches = append(matches, i)
		}
	}

	switch len(matches) {
	case 0:
		return -1, &NotFoundError{Name: target}
	case 1:
		return matches[0], nil
	default:
		names := make([]string, len(matches))
		for i, idx := range matches {
			names[i] = items[idx].Name
		}
		return -1, &AmbiguityError{Name: target, Candidates: names}
	}
}
