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
	"regexp"
	"sort"
	"strings"

	"github.com/google/safehtml"
	"github.com/google/safehtml/uncheckedconversions"
)

// ActionField is the form field carrying the id of the clicked node.
const ActionField = "action"

var (
	tagPattern  = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9-]*$`)
	attrPattern = regexp.MustCompile(`^[a-zA-Z_:][a-zA-Z0-9_:.-]*$`)
	cssPattern  = regexp.MustCompile(`^-{0,2}[a-zA-Z][a-zA-Z0-9-]*$`)
)

var voidTags = map[string]bool{
	"area": true, "br": true, "col": true, "hr": true, "img": true,
	"input": true, "link": true, "meta": true, "source": true, "wbr": true,
}

var booleanAttrs = map[string]bool{
	"autofocus": true, "checked": true, "disabled": true, "hidden": true,
	"multiple": true, "readonly": true, "required": true, "selected": true,
}

var urlAttrs = map[string]bool{
	"action": true, "formaction": true, "href": true, "src": true,
}

// HTML renders the mounted tree. Element and attribute names that are not
// plain identifiers are dropped together with inline event attributes, and
// every text or attribute value is escaped, which is what makes the
// unchecked conversion below sound.
func (t *Tree) HTML() safehtml.HTML {
	if t == nil || t.root == nil {
		return safehtml.HTML{}
	}
	var sb strings.Builder
	writeNode(&sb, t.root)
	return uncheckedconversions.HTMLFromStringKnownToSatisfyTypeContract(sb.String())
}

func writeNode(sb *strings.Builder, n *Node) {
	switch n.Tag {
	case TextTag:
		sb.WriteString(safehtml.HTMLEscaped(n.Text).String())
		return
	case FragmentTag, "":
		writeChildren(sb, n)
		return
	}
	if !tagPattern.MatchString(n.Tag) {
		return
	}
	tag := strings.ToLower(n.Tag)
	sb.WriteString("<")
	sb.WriteString(tag)
	writeAttrs(sb, n)
	sb.WriteString(">")
	if voidTags[tag] {
		return
	}
	writeChildren(sb, n)
	sb.WriteString("</")
	sb.WriteString(tag)
	sb.WriteString(">")
}

func writeChildren(sb *strings.Builder, n *Node) {
	for _, c := range n.Children {
		writeNode(sb, c)
	}
}

func writeAttrs(sb *strings.Builder, n *Node) {
	attrs := n.Attrs.Clone()
	if attrs == nil {
		attrs = Attrs{}
	}
	delete(attrs, "class")
	delete(attrs, "style")
	if n.id != "" {
		if n.OnClick != nil {
			attrs["name"] = ActionField
			attrs["value"] = n.id
			if _, ok := attrs["type"]; !ok && n.Tag == "button" {
				attrs["type"] = "submit"
			}
		} else if n.OnChange != nil {
			attrs["name"] = n.id
		}
	}
	if n.Class != "" {
		writeAttr(sb, "class", n.Class)
	}
	if css := safeStyle(n.Style); css != "" {
		writeAttr(sb, "style", css)
	}
	keys := make([]string, 0, len(attrs))
	for k := range attrs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		lk := strings.ToLower(k)
		if !attrPattern.MatchString(k) || strings.HasPrefix(lk, "on") {
			continue
		}
		v := attrs[k]
		if booleanAttrs[lk] {
			sb.WriteString(" ")
			sb.WriteString(lk)
			continue
		}
		if urlAttrs[lk] {
			v = safehtml.URLSanitized(v).String()
		}
		writeAttr(sb, k, v)
	}
}

func writeAttr(sb *strings.Builder, name, value string) {
	sb.WriteString(" ")
	sb.WriteString(name)
	sb.WriteString(`="`)
	sb.WriteString(safehtml.HTMLEscaped(value).String())
	sb.WriteString(`"`)
}

// safeStyle drops properties with malformed names and values that could
// break out of a declaration.
func safeStyle(s Style) string {
	clean := Style{}
	for k, v := range s {
		if !cssPattern.MatchString(k) || strings.ContainsAny(v, ";{}<>\\") {
			continue
		}
		clean[k] = v
	}
	if len(clean) == 0 {
		return ""
	}
	return clean.String()
}
