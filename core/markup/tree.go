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

package markup

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
)

// ErrUnknownTarget is returned when an event names a handler id that does
// not exist in the mounted tree (or belongs to a disabled control).
var ErrUnknownTarget = errors.New("unknown event target")

// Event is one interaction routed to a mounted node.
type Event struct {
	Target string // handler id assigned by Mount
	Value  string // new value for change events
}

// Tree is a mounted node tree: every node carrying a handler has been given
// an id that is stable for as long as the same tree is rendered from the
// same inputs.
type Tree struct {
	root     *Node
	handlers map[string]*Node
	order    []*Node
}

// Mount assigns handler ids in document order and returns the mounted tree.
// Disabled controls keep their markup but receive no id.
func Mount(root *Node) *Tree {
	t := &Tree{root: root, handlers: make(map[string]*Node)}
	root.Walk(func(n *Node) bool {
		n.id = ""
		if (n.OnClick == nil && n.OnChange == nil) || n.Disabled() {
			return true
		}
		n.id = "e" + strconv.Itoa(len(t.order))
		t.handlers[n.id] = n
		t.order = append(t.order, n)
		return true
	})
	return t
}

// Root returns the mounted root node.
func (t *Tree) Root() *Node {
	return t.root
}

// Node returns the node registered under the given handler id.
func (t *Tree) Node(id string) (*Node, bool) {
	n, ok := t.handlers[id]
	return n, ok
}

// Dispatch delivers one event. Change handlers receive ev.Value, click
// handlers fire otherwise.
func (t *Tree) Dispatch(ev Event) error {
	n, ok := t.handlers[ev.Target]
	if !ok {
		return fmt.Errorf("dispatch %q: %w", ev.Target, ErrUnknownTarget)
	}
	if n.OnChange != nil && n.OnClick == nil {
		n.OnChange(ev.Value)
		return nil
	}
	n.OnClick()
	return nil
}

// Submit replays a posted form against the tree. Controls whose submitted
// value differs from the rendered one fire OnChange in document order, then
// the clicked action (if any) fires. Handlers run synchronously; when several
// of them emit a new state the last one wins.
func (t *Tree) Submit(form url.Values) error {
	for _, n := range t.order {
		if n.OnChange == nil {
			continue
		}
		values, ok := form[n.id]
		if !ok || len(values) == 0 {
			continue
		}
		if values[0] != n.Value() {
			n.OnChange(values[0])
		}
	}
	action := form.Get(ActionField)
	if action == "" {
		return nil
	}
	n, ok := t.handlers[action]
	if !ok || n.OnClick == nil {
		return fmt.Errorf("submit action %q: %w", action, ErrUnknownTarget)
	}
	n.OnClick()
	return nil
}
