package section

import (
	"fmt"
	"strconv"
	"strings"
)

// ID is a dotted numeric section path ("2.1.3") held as its ordered
// components. It is the stable identity key for a heading within one
// document.
type ID []int

// ParseID parses a dotted numeric path. Every component must be a
// non-negative integer; anything else (letters, roman numerals, empty
// components) is rejected.
func ParseID(s string) (ID, error) {
	if s == "" {
		return nil, fmt.Errorf("empty section id")
	}
	parts := strings.Split(s, ".")
	id := make(ID, len(parts))
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil || n < 0 {
			return nil, fmt.Errorf("section id %q: component %q is not a non-negative integer", s, p)
		}
		id[i] = n
	}
	return id, nil
}

// String renders the dotted form.
func (id ID) String() string {
	parts := make([]string, len(id))
	for i, n := range id {
		parts[i] = strconv.Itoa(n)
	}
	return strings.Join(parts, ".")
}

// Level is the nesting depth: the number of path components.
func (id ID) Level() int {
	return len(id)
}

// Parent returns the ID with the last component removed, or nil for a
// top-level section.
func (id ID) Parent() ID {
	if len(id) <= 1 {
		return nil
	}
	parent := make(ID, len(id)-1)
	copy(parent, id[:len(id)-1])
	return parent
}

// Last returns the final path component.
func (id ID) Last() int {
	return id[len(id)-1]
}

// Equal reports component-wise equality.
func (id ID) Equal(other ID) bool {
	if len(id) != len(other) {
		return false
	}
	for i := range id {
		if id[i] != other[i] {
			return false
		}
	}
	return true
}

// Compare orders IDs by component-wise integer comparison, so 2.9 sorts
// before 2.10. A strict prefix sorts before its extensions (2 < 2.1).
func (id ID) Compare(other ID) int {
	n := len(id)
	if len(other) < n {
		n = len(other)
	}
	for i := 0; i < n; i++ {
		switch {
		case id[i] < other[i]:
			return -1
		case id[i] > other[i]:
			return 1
		}
	}
	switch {
	case len(id) < len(other):
		return -1
	case len(id) > len(other):
		return 1
	}
	return 0
}

// CommonPrefixLen counts leading components shared with other.
func (id ID) CommonPrefixLen(other ID) int {
	n := 0
	for n < len(id) && n < len(other) && id[n] == other[n] {
		n++
	}
	return n
}

// IsDirectChildOf reports whether id is exactly one level below parent
// with parent as its immediate prefix.
func (id ID) IsDirectChildOf(parent ID) bool {
	return len(id) == len(parent)+1 && id.CommonPrefixLen(parent) == len(parent)
}
