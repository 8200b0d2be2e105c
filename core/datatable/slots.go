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

package datatable

import "github.com/google/datatable/core/markup"

// Renderer overrides one structural element. It receives the default element
// (attributes set, no children yet) and returns the element to use instead.
// A nil Renderer, or one returning nil, keeps the default.
type Renderer func(*markup.Node) *markup.Node

func (r Renderer) render(n *markup.Node) *markup.Node {
	if r == nil {
		return n
	}
	if out := r(n); out != nil {
		return out
	}
	return n
}

// Slots holds the structural overrides of a table.
type Slots struct {
	Table Renderer
	Head  Renderer
	Body  Renderer
	Row   Renderer
	Cell  Renderer
}

// Substitute returns a Renderer that swaps the element's tag (when tag is not
// empty) and merges props onto it: styles per key, class names appended,
// attributes replaced.
func Substitute(tag string, props CellProps) Renderer {
	return func(n *markup.Node) *markup.Node {
		if tag != "" {
			n.Tag = tag
		}
		n.Class = markup.JoinClasses(n.Class, props.ClassName)
		n.Style = n.Style.Merge(props.Style)
		for k, v := range props.Attrs {
			n.Set(k, v)
		}
		return n
	}
}
