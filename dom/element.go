/*
Copyright 2024 Robert Terhaar <robbyt@robbyt.net>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Package dom is a small in-memory document model: elements with an id, a tag,
// a set of class tokens and event listeners. It is enough to host a navigation
// toggle outside of a browser, in tests and in terminal front ends.
package dom

import (
	"slices"
	"strings"
)

// Element is an opaque handle to a node in a document.
type Element interface {
	ID() string
	TagName() string
}

// Node is the Element implementation used by Document.
type Node struct {
	id       string
	tag      string
	classes  []string
	text     string
	parent   *Node
	children []*Node
}

// ID returns the element id, possibly empty.
func (n *Node) ID() string { return n.id }

// TagName returns the lower-case tag name.
func (n *Node) TagName() string { return n.tag }

// Text returns the text content set on the node.
func (n *Node) Text() string { return n.text }

// ClassName returns the class tokens joined by a single space, the way the
// class attribute would render.
func (n *Node) ClassName() string {
	return strings.Join(n.classes, " ")
}

func (n *Node) hasClass(class string) bool {
	return slices.Contains(n.classes, class)
}

// addClass appends class unless it is already present.
func (n *Node) addClass(class string) bool {
	if class == "" || n.hasClass(class) {
		return false
	}
	n.classes = append(n.classes, class)
	return true
}

// removeClass drops every occurrence of class.
func (n *Node) removeClass(class string) bool {
	before := len(n.classes)
	n.classes = slices.DeleteFunc(n.classes, func(c string) bool { return c == class })
	return len(n.classes) != before
}

// find walks the subtree below n depth first and returns the first descendant
// matching pred. n itself is not considered.
func (n *Node) find(pred func(*Node) bool) *Node {
	for _, child := range n.children {
		if pred(child) {
			return child
		}
		if found := child.find(pred); found != nil {
			return found
		}
	}
	return nil
}

// splitClasses turns a class attribute into its unique tokens, keeping order.
func splitClasses(attr string) []string {
	var out []string
	for _, c := range strings.Fields(attr) {
		if !slices.Contains(out, c) {
			out = append(out, c)
		}
	}
	return out
}
