/*
SPDX-License-Identifier: Apache-2.0

Copyright 2024 The Taxinomia Authors

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    https://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Package markup provides the node tree produced by the datatable components
// and the server-side plumbing that turns it into HTML and routes posted form
// events back to the handlers attached to the nodes.
package markup

import (
	"sort"
	"strings"
)

// Tags used for nodes that are not elements.
const (
	TextTag     = "#text"
	FragmentTag = "#fragment"
)

// Attrs holds plain element attributes. The "class" and "style" keys are
// ignored when rendering; use Node.Class and Node.Style instead.
type Attrs map[string]string

// Clone returns a shallow copy of the attributes.
func (a Attrs) Clone() Attrs {
	if a == nil {
		return nil
	}
	c := make(Attrs, len(a))
	for k, v := range a {
		c[k] = v
	}
	return c
}

// Style holds inline CSS properties.
type Style map[string]string

// Merge returns the key-wise union of s and o, with o winning per key.
// Neither input is modified.
func (s Style) Merge(o Style) Style {
	if len(s) == 0 && len(o) == 0 {
		return nil
	}
	out := make(Style, len(s)+len(o))
	for k, v := range s {
		out[k] = v
	}
	for k, v := range o {
		out[k] = v
	}
	return out
}

// String renders the properties in key order, e.g. "color: red; width: 4px".
func (s Style) String() string {
	keys := make([]string, 0, len(s))
	for k := range s {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+s[k])
	}
	return strings.Join(parts, "; ")
}

// JoinClasses joins the non-empty class names with a single space.
func JoinClasses(classes ...string) string {
	parts := make([]string, 0, len(classes))
	for _, c := range classes {
		if c = strings.TrimSpace(c); c != "" {
			parts = append(parts, c)
		}
	}
	return strings.Join(parts, " ")
}

// Node is one element, text run or fragment of a markup tree.
type Node struct {
	Tag      string
	Text     string // only for TextTag nodes
	Class    string
	Style    Style
	Attrs    Attrs
	Children []*Node

	// OnClick fires when the node is the clicked form action.
	OnClick func()
	// OnChange fires with the submitted value when it differs from the
	// rendered one.
	OnChange func(value string)

	id string
}

// Text creates a text node.
func Text(s string) *Node {
	return &Node{Tag: TextTag, Text: s}
}

// El creates an element node. Nil children are skipped.
func El(tag string, children ...*Node) *Node {
	return (&Node{Tag: tag}).Append(children...)
}

// Fragment groups children without producing an element of its own.
func Fragment(children ...*Node) *Node {
	return El(FragmentTag, children...)
}

// Append adds the non-nil children and returns n.
func (n *Node) Append(children ...*Node) *Node {
	for _, c := range children {
		if c != nil {
			n.Children = append(n.Children, c)
		}
	}
	return n
}

// WithClass appends class names to the node and returns it.
func (n *Node) WithClass(classes ...string) *Node {
	n.Class = JoinClasses(append([]string{n.Class}, classes...)...)
	return n
}

// Set sets an attribute and returns the node.
func (n *Node) Set(key, value string) *Node {
	if n.Attrs == nil {
		n.Attrs = Attrs{}
	}
	n.Attrs[key] = value
	return n
}

// SetStyle sets one inline style property and returns the node.
func (n *Node) SetStyle(property, value string) *Node {
	if n.Style == nil {
		n.Style = Style{}
	}
	n.Style[property] = value
	return n
}

// Attr returns the value of an attribute and whether it is present.
func (n *Node) Attr(key string) (string, bool) {
	if n == nil || n.Attrs == nil {
		return "", false
	}
	v, ok := n.Attrs[key]
	return v, ok
}

// Disabled reports whether the node carries the disabled attribute.
func (n *Node) Disabled() bool {
	_, ok := n.Attr("disabled")
	return ok
}

// ID returns the handler id assigned by Mount, or "" for nodes without
// handlers.
func (n *Node) ID() string {
	return n.id
}

// TextContent concatenates the text of all descendant text nodes.
func (n *Node) TextContent() string {
	if n == nil {
		return ""
	}
	if n.Tag == TextTag {
		return n.Text
	}
	var sb strings.Builder
	for _, c := range n.Children {
		sb.WriteString(c.TextContent())
	}
	return sb.String()
}

// Walk visits n and its descendants depth first in document order.
// Returning false from fn skips the node's children.
func (n *Node) Walk(fn func(*Node) bool) {
	if n == nil {
		return
	}
	if !fn(n) {
		return
	}
	for _, c := range n.Children {
		c.Walk(fn)
	}
}

// FindAll returns every node in the subtree matching pred, in document order.
func (n *Node) FindAll(pred func(*Node) bool) []*Node {
	var out []*Node
	n.Walk(func(x *Node) bool {
		if pred(x) {
			out = append(out, x)
		}
		return true
	})
	return out
}

// Find returns the first node in the subtree matching pred.
func (n *Node) Find(pred func(*Node) bool) *Node {
	if all := n.FindAll(pred); len(all) > 0 {
		return all[0]
	}
	return nil
}

// HasClass reports whether the node's class list contains class.
func (n *Node) HasClass(class string) bool {
	for _, c := range strings.Fields(n.Class) {
		if c == class {
			return true
		}
	}
	return false
}

// Value returns the value a form control currently holds: the value of the
// selected option for a select, the value attribute otherwise.
func (n *Node) Value() string {
	if n.Tag == "select" {
		first := ""
		found := false
		var selected string
		var hasSelected bool
		n.Walk(func(x *Node) bool {
			if x.Tag != "option" {
				return true
			}
			v, ok := x.Attr("value")
			if !ok {
				v = x.TextContent()
			}
			if !found {
				first, found = v, true
			}
			if _, sel := x.Attr("selected"); sel && !hasSelected {
				selected, hasSelected = v, true
			}
			return false
		})
		if hasSelected {
			return selected
		}
		return first
	}
	v, _ := n.Attr("value")
	return v
}
