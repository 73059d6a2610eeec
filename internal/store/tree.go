// Package store implements the in-memory data structures backing the
// registration system: the ordered course tree, the enrollment ledger,
// the user directory, the undo stack, the prerequisite graph, and the
// payment table. The structures enforce no cross-entity rules; those
// belong to the registry service.
package store

import "github.com/zjrosen/registrar/internal/domain"

// CourseTree is an ordered index over the catalog, keyed by course code.
// It is a plain unbalanced binary search tree: skewed insertion order
// degrades lookup to linear time, which is accepted for the small
// catalogs this system manages.
type CourseTree struct {
	root *treeNode
	size int
}

type treeNode struct {
	course domain.Course
	left   *treeNode
	right  *treeNode
}

// NewCourseTree creates an empty course tree.
func NewCourseTree() *CourseTree {
	return &CourseTree{}
}

// Len returns the number of courses in the tree.
func (t *CourseTree) Len() int {
	return t.size
}

// Insert adds a course keyed by its code. Inserting a code that is
// already present is a silent no-op; callers pre-check when a duplicate
// must surface as an error.
func (t *CourseTree) Insert(course domain.Course) {
	if t.root == nil {
		t.root = &treeNode{course: course}
		t.size++
		return
	}
	node := t.root
	for {
		switch {
		case course.Code < node.course.Code:
			if node.left == nil {
				node.left = &treeNode{course: course}
				t.size++
				return
			}
			node = node.left
		case course.Code > node.course.Code:
			if node.right == nil {
				node.right = &treeNode{course: course}
				t.size++
				return
			}
			node = node.right
		default:
			return // duplicate
		}
	}
}

// Find returns a pointer to the course with the given code, or nil when
// absent. The pointer aliases tree storage: mutations through it (seat
// accounting) are visible to later lookups and traversals.
func (t *CourseTree) Find(code string) *domain.Course {
	node := t.root
	for node != nil {
		switch {
		case code < node.course.Code:
			node = node.left
		case code > node.course.Code:
			node = node.right
		default:
			return &node.course
		}
	}
	return nil
}

// Delete removes the course with the given code. When the matched node
// has two children its payload is replaced with the in-order successor's
// payload and the successor node (which has at most a right child) is
// spliced out instead. Returns false if the code is absent.
func (t *CourseTree) Delete(code string) bool {
	var parent *treeNode
	node := t.root

	for node != nil && node.course.Code != code {
		parent = node
		if code < node.course.Code {
			node = node.left
		} else {
			node = node.right
		}
	}
	if node == nil {
		return false
	}

	if node.left != nil && node.right != nil {
		succParent := node
		succ := node.right
		for succ.left != nil {
			succParent = succ
			succ = succ.left
		}
		node.course = succ.course
		node = succ
		parent = succParent
	}

	// node now has at most one child
	child := node.left
	if child == nil {
		child = node.right
	}

	switch {
	case parent == nil:
		t.root = child
	case parent.left == node:
		parent.left = child
	default:
		parent.right = child
	}

	t.size--
	return true
}

// InOrder returns all courses ascending by code.
func (t *CourseTree) InOrder() []domain.Course {
	courses := make([]domain.Course, 0, t.size)

	var stack []*treeNode
	node := t.root
	for node != nil || len(stack) > 0 {
		for node != nil {
			stack = append(stack, node)
			node = node.left
		}
		node = stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		courses = append(courses, node.course)
		node = node.right
	}
	return courses
}
