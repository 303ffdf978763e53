package object

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNotFound reports that no descendant matched the requested name path.
	ErrNotFound = errors.New("no object with that name")
	// ErrAmbiguousName reports that more than one descendant matched.
	ErrAmbiguousName = errors.New("name matches more than one object")
)

// Find locates a uniquely named descendant. Path segments name nested Named
// wrappers, outermost first; a matching wrapper consumes one segment.
// Wrappers whose hidden-name set contains the current segment prune their
// entire subtree from the search, even though it remains reachable through
// Children.
func (o Object) Find(path ...string) (Object, error) {
	if len(path) == 0 {
		return Object{}, fmt.Errorf("find: empty name path")
	}
	if o.b == nil {
		return Object{}, fmt.Errorf("find %s: zero object: %w", strings.Join(path, "/"), ErrNotFound)
	}
	var matches []Object
	findIn(o, path, &matches)
	switch len(matches) {
	case 0:
		return Object{}, fmt.Errorf("find %s: %w", strings.Join(path, "/"), ErrNotFound)
	case 1:
		return matches[0], nil
	}
	return Object{}, fmt.Errorf("find %s: %w", strings.Join(path, "/"), ErrAmbiguousName)
}

func findIn(o Object, path []string, matches *[]Object) {
	if n, ok := o.b.(*named); ok {
		if n.hidden[path[0]] {
			return
		}
		if n.name == path[0] {
			rest := path[1:]
			if len(rest) == 0 {
				*matches = append(*matches, o)
				return
			}
			// The hidden set prunes whichever segment is searched for
			// below this wrapper, matched or not.
			if n.hidden[rest[0]] {
				return
			}
			for _, c := range o.Children() {
				findIn(c, rest, matches)
			}
			return
		}
	}
	for _, c := range o.Children() {
		findIn(c, path, matches)
	}
}
