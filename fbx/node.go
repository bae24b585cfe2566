// Copyright (c) 2026, Scene Forge Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package fbx implements an ASCII FBX 7.4 writer for scene selections,
// usable as the export primitive of the export package.
package fbx

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Node is one node of an FBX document tree: a name, a list of
// attribute values, and child nodes.
type Node struct {
	Name     string
	Attrs    []any
	Children []*Node
}

// NewNode creates a node with the given name and attribute values.
func NewNode(name string, attrs ...any) *Node {
	return &Node{Name: name, Attrs: attrs}
}

// Add appends child nodes and returns the receiver for chaining.
func (n *Node) Add(children ...*Node) *Node {
	n.Children = append(n.Children, children...)
	return n
}

// Child returns the first direct child with the given name, or nil.
func (n *Node) Child(name string) *Node {
	for _, c := range n.Children {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// Property70 builds a Properties70 "P" entry.
func Property70(name, typ, subtyp, flags string, values ...any) *Node {
	attrs := append([]any{name, typ, subtyp, flags}, values...)
	return NewNode("P", attrs...)
}

// Write serializes the node and its subtree in ASCII FBX form at the
// given indent depth.
func (n *Node) Write(w io.Writer, indent int) error {
	tabs := strings.Repeat("\t", indent)
	attrs, multiline := formatAttrs(n.Attrs, tabs)
	open := n.Children != nil || multiline
	var err error
	if open {
		_, err = fmt.Fprintf(w, "%s%s: %s {\n", tabs, n.Name, attrs)
	} else {
		_, err = fmt.Fprintf(w, "%s%s: %s\n", tabs, n.Name, attrs)
	}
	if err != nil {
		return err
	}
	if !open {
		return nil
	}
	if multiline {
		if _, err := fmt.Fprintf(w, "%s\t%s\n", tabs, formatArray(n.Attrs[0])); err != nil {
			return err
		}
	}
	for _, c := range n.Children {
		if err := c.Write(w, indent+1); err != nil {
			return err
		}
	}
	_, err = fmt.Fprintf(w, "%s}\n", tabs)
	return err
}

// formatAttrs renders the attribute list. Array-valued attributes use
// the FBX "*N { a: ... }" form and force a block body.
func formatAttrs(attrs []any, tabs string) (string, bool) {
	if len(attrs) == 1 {
		switch v := attrs[0].(type) {
		case []float64:
			return fmt.Sprintf("*%d", len(v)), true
		case []int:
			return fmt.Sprintf("*%d", len(v)), true
		}
	}
	parts := make([]string, len(attrs))
	for i, a := range attrs {
		parts[i] = formatAttr(a)
	}
	return strings.Join(parts, ", "), false
}

func formatAttr(a any) string {
	switch v := a.(type) {
	case string:
		return strconv.Quote(v)
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(v), 'g', -1, 32)
	case int, int32, int64:
		return fmt.Sprintf("%d", v)
	case bool:
		if v {
			return "1"
		}
		return "0"
	default:
		return fmt.Sprintf("%v", v)
	}
}

func formatArray(a any) string {
	var parts []string
	switch v := a.(type) {
	case []float64:
		parts = make([]string, len(v))
		for i, f := range v {
			parts[i] = strconv.FormatFloat(f, 'g', -1, 64)
		}
	case []int:
		parts = make([]string, len(v))
		for i, x := range v {
			parts[i] = strconv.Itoa(x)
		}
	}
	return "a: " + strings.Join(parts, ",")
}
