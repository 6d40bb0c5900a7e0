package codegen

import "fmt"

// ConflictError reports that a path tried to traverse through a segment that
// earlier inputs established as a file, not a folder.
type ConflictError struct {
	// Segment is the colliding path segment.
	Segment string
	// Path is the input whose insertion hit the conflict.
	Path string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("path %q traverses through %q as a folder, but it is a file because of previous inputs", e.Path, e.Segment)
}

// node is one level of the namespace tree. A node with a nil children map is
// a leaf bound to an input.
type node struct {
	children map[string]*node
	input    *Input
}

func newFolder() *node {
	return &node{children: map[string]*node{}}
}

// insert places input at the given path segments, creating intermediate
// folders as needed. The last segment replaces whatever was there before;
// traversing through an established leaf returns a typed conflict and leaves
// the tree untouched past that point, so the caller can log and move on to
// sibling inputs.
func (n *node) insert(segments []string, input *Input) *ConflictError {
	current := n
	for i, segment := range segments {
		if i == len(segments)-1 {
			current.children[segment] = &node{input: input}
			return nil
		}

		next, ok := current.children[segment]
		if !ok {
			next = newFolder()
			current.children[segment] = next
		}
		if next.children == nil {
			return &ConflictError{Segment: segment, Path: input.Path}
		}
		current = next
	}
	return nil
}
