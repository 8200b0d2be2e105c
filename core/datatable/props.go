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

import (
	"github.com/google/datatable/core/markup"
)

// ComponentAttr is the attribute carrying the hierarchical component name.
const ComponentAttr = "data-component"

// CellProps is an attribute bag for table cells.
type CellProps struct {
	ClassName string
	Style     markup.Style
	// Component is appended to the cell's component name, see ComponentTag.
	Component string
	Attrs     markup.Attrs
}

// MergeCellProps applies specific on top of shared. Styles merge per key and
// class names accumulate, shared first; every other attribute of specific
// replaces the shared one. Either bag may be nil.
func MergeCellProps(shared, specific *CellProps) CellProps {
	var s, b CellProps
	if shared != nil {
		s = *shared
	}
	if specific != nil {
		b = *specific
	}
	out := CellProps{
		ClassName: markup.JoinClasses(s.ClassName, b.ClassName),
		Style:     s.Style.Merge(b.Style),
		Component: s.Component,
	}
	if b.Component != "" {
		out.Component = b.Component
	}
	if len(s.Attrs)+len(b.Attrs) > 0 {
		out.Attrs = make(markup.Attrs, len(s.Attrs)+len(b.Attrs))
		for k, v := range s.Attrs {
			out.Attrs[k] = v
		}
		for k, v := range b.Attrs {
			out.Attrs[k] = v
		}
	}
	return out
}

// ComponentTag builds the data-component value: "name/dataComponent", or
// just name.
func ComponentTag(name, dataComponent string) string {
	if dataComponent == "" {
		return name
	}
	return name + "/" + dataComponent
}

// applyTo writes the bag onto n under the given component name.
func (p CellProps) applyTo(n *markup.Node, component string) {
	n.Class = markup.JoinClasses(n.Class, p.ClassName)
	n.Style = n.Style.Merge(p.Style)
	for k, v := range p.Attrs {
		if k == ComponentAttr {
			continue
		}
		n.Set(k, v)
	}
	n.Set(ComponentAttr, ComponentTag(component, p.Component))
}
