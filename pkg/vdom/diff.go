package vdom

import (
	"fmt"
	"sort"
	"strings"
)

// PatchOp represents the type of patch operation
type PatchOp uint8

const (
	// OpReplaceText replaces text node content
	OpReplaceText PatchOp = 0x01
	// OpSetAttribute sets or replaces an attribute
	OpSetAttribute PatchOp = 0x02
	// OpRemoveNode removes a node
	OpRemoveNode PatchOp = 0x03
	// OpInsertNode inserts a new node at Path (the last index is the position in the parent)
	OpInsertNode PatchOp = 0x04
	// OpUpdateEvents rebinds the event handlers of an element to those of Node
	OpUpdateEvents PatchOp = 0x05
	// OpRemoveAttribute removes an attribute
	OpRemoveAttribute PatchOp = 0x06
	// OpReplaceNode swaps the node at Path for Node
	OpReplaceNode PatchOp = 0x07
)

// Patch represents a single DOM mutation.
// Path is the child index path from the mount root; an empty path addresses the root.
type Patch struct {
	Op    PatchOp
	Path  []int
	Key   string // Attribute key for set/remove attribute
	Value string // Text content or attribute value
	Node  *VNode // For insert, replace and event updates
}

// String returns a human-readable representation of the patch
func (p Patch) String() string {
	path := pathString(p.Path)
	switch p.Op {
	case OpReplaceText:
		return fmt.Sprintf("ReplaceText(%s, text=%q)", path, p.Value)
	case OpSetAttribute:
		return fmt.Sprintf("SetAttribute(%s, key=%q, value=%q)", path, p.Key, p.Value)
	case OpRemoveAttribute:
		return fmt.Sprintf("RemoveAttribute(%s, key=%q)", path, p.Key)
	case OpRemoveNode:
		return fmt.Sprintf("RemoveNode(%s)", path)
	case OpInsertNode:
		return fmt.Sprintf("InsertNode(%s)", path)
	case OpReplaceNode:
		return fmt.Sprintf("ReplaceNode(%s)", path)
	case OpUpdateEvents:
		return fmt.Sprintf("UpdateEvents(%s)", path)
	default:
		return fmt.Sprintf("Unknown(op=%d)", p.Op)
	}
}

func pathString(path []int) string {
	parts := make([]string, len(path))
	for i, idx := range path {
		parts[i] = fmt.Sprint(idx)
	}
	return "/" + strings.Join(parts, "/")
}

// Diff computes the patches needed to transform prev into next.
// Patches must be applied in order: removals of trailing children are emitted
// from the highest index down so that earlier paths stay valid.
func Diff(prev, next *VNode) []Patch {
	patches := make([]Patch, 0, 16)
	return diffNode(patches, prev, next, nil)
}

func diffNode(patches []Patch, prev, next *VNode, path []int) []Patch {
	switch {
	case prev == nil && next == nil:
		return patches
	case prev == nil:
		return append(patches, Patch{Op: OpInsertNode, Path: path, Node: next})
	case next == nil:
		return append(patches, Patch{Op: OpRemoveNode, Path: path})
	}

	// Different node types, tags or keys cannot be patched in place
	if prev.Kind != next.Kind || prev.Tag != next.Tag || prev.GetKey() != next.GetKey() {
		return append(patches, Patch{Op: OpReplaceNode, Path: path, Node: next})
	}

	switch prev.Kind {
	case KindText:
		if prev.Text != next.Text {
			patches = append(patches, Patch{Op: OpReplaceText, Path: path, Value: next.Text})
		}

	case KindRaw:
		if prev.Text != next.Text {
			patches = append(patches, Patch{Op: OpReplaceNode, Path: path, Node: next})
		}

	case KindElement:
		patches = diffProps(patches, path, prev, next)
		patches = diffChildren(patches, path, prev.Kids, next.Kids)

	case KindFragment:
		patches = diffChildren(patches, path, prev.Kids, next.Kids)
	}

	return patches
}

// diffProps diffs attributes. Handlers are functions and cannot be compared,
// so any element carrying handlers on either side gets its events rebound.
func diffProps(patches []Patch, path []int, prev, next *VNode) []Patch {
	for _, key := range sortedKeys(prev.Props) {
		if key == "key" || IsEventProp(key) {
			continue
		}
		if _, exists := next.Props[key]; !exists {
			patches = append(patches, Patch{Op: OpRemoveAttribute, Path: path, Key: key})
		}
	}

	for _, key := range sortedKeys(next.Props) {
		if key == "key" || IsEventProp(key) {
			continue
		}
		nextVal := PropToString(next.Props[key])
		prevVal, exists := prev.Props[key]
		if !exists || PropToString(prevVal) != nextVal {
			patches = append(patches, Patch{Op: OpSetAttribute, Path: path, Key: key, Value: nextVal})
		}
	}

	if prev.HasFlag(FlagHasEvents) || next.HasFlag(FlagHasEvents) {
		patches = append(patches, Patch{Op: OpUpdateEvents, Path: path, Node: next})
	}

	return patches
}

// diffChildren performs index-based child reconciliation
func diffChildren(patches []Patch, path []int, prevKids, nextKids []VNode) []Patch {
	common := len(prevKids)
	if len(nextKids) < common {
		common = len(nextKids)
	}

	for i := 0; i < common; i++ {
		patches = diffNode(patches, &prevKids[i], &nextKids[i], childPath(path, i))
	}

	for i := common; i < len(nextKids); i++ {
		patches = append(patches, Patch{Op: OpInsertNode, Path: childPath(path, i), Node: &nextKids[i]})
	}

	for i := len(prevKids) - 1; i >= common; i-- {
		patches = append(patches, Patch{Op: OpRemoveNode, Path: childPath(path, i)})
	}

	return patches
}

// childPath returns a fresh slice so sibling patches never share backing arrays
func childPath(path []int, i int) []int {
	out := make([]int, len(path)+1)
	copy(out, path)
	out[len(path)] = i
	return out
}

func sortedKeys(props Props) []string {
	keys := make([]string, 0, len(props))
	for k := range props {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// SortedKeys returns the prop keys in a stable order
func (p Props) SortedKeys() []string {
	return sortedKeys(p)
}

// PropToString renders a prop value the way it appears as an attribute
func PropToString(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case bool:
		if val {
			return "true"
		}
		return "false"
	case float64:
		return fmt.Sprintf("%g", val)
	default:
		return fmt.Sprintf("%v", v)
	}
}
