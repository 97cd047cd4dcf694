package vdom

import "strings"

// VKind represents the type of virtual node
type VKind uint8

const (
	// KindElement represents a DOM element node
	KindElement VKind = iota
	// KindText represents a text node
	KindText
	// KindFragment represents a fragment (multiple children without parent)
	KindFragment
	// KindRaw represents trusted, pre-rendered HTML (article bodies)
	KindRaw
)

// VNodeFlags are bitwise flags for VNode optimizations
type VNodeFlags uint8

const (
	// FlagHasKey indicates this node has a key for list reconciliation
	FlagHasKey VNodeFlags = 1 << iota
	// FlagHasEvents indicates this node has event listeners
	FlagHasEvents
)

// Props represents the properties/attributes of a VNode.
// Keys beginning with "on" hold event handlers and are never rendered as attributes.
type Props map[string]any

// VNode represents a virtual DOM node.
// Once built a VNode is treated as immutable.
type VNode struct {
	Kind  VKind
	Tag   string
	Props Props
	Kids  []VNode
	Key   string
	Flags VNodeFlags

	// Text holds text content for KindText and markup for KindRaw
	Text string
}

// NewElement creates a new element VNode
func NewElement(tag string, props Props, children ...*VNode) *VNode {
	flags := VNodeFlags(0)
	key := ""

	for k, v := range props {
		if IsEventProp(k) {
			flags |= FlagHasEvents
		}
		if k == "key" {
			flags |= FlagHasKey
			if s, ok := v.(string); ok {
				key = s
			}
		}
	}

	return &VNode{
		Kind:  KindElement,
		Tag:   tag,
		Props: props,
		Kids:  collect(children),
		Key:   key,
		Flags: flags,
	}
}

// NewText creates a new text VNode
func NewText(text string) *VNode {
	return &VNode{
		Kind: KindText,
		Text: text,
	}
}

// NewFragment creates a new fragment VNode
func NewFragment(children ...*VNode) *VNode {
	return &VNode{
		Kind: KindFragment,
		Kids: collect(children),
	}
}

// NewRaw wraps already rendered, trusted HTML.
// The markup is written verbatim by the HTML renderer.
func NewRaw(markup string) *VNode {
	return &VNode{
		Kind: KindRaw,
		Text: markup,
	}
}

// collect converts child pointers to values, dropping nils so that
// conditional children can be written inline.
func collect(children []*VNode) []VNode {
	kids := make([]VNode, 0, len(children))
	for _, child := range children {
		if child != nil {
			kids = append(kids, *child)
		}
	}
	return kids
}

// IsElement returns true if this is an element node
func (v VNode) IsElement() bool {
	return v.Kind == KindElement
}

// IsText returns true if this is a text node
func (v VNode) IsText() bool {
	return v.Kind == KindText
}

// HasFlag returns true if the specified flag is set
func (v VNode) HasFlag(flag VNodeFlags) bool {
	return v.Flags&flag != 0
}

// GetKey returns the key of this node
func (v VNode) GetKey() string {
	if v.Key != "" {
		return v.Key
	}
	if key, ok := v.Props["key"].(string); ok {
		return key
	}
	return ""
}

// Attr returns the string form of an attribute prop and whether it is set.
func (v VNode) Attr(name string) (string, bool) {
	val, ok := v.Props[name]
	if !ok || IsEventProp(name) {
		return "", false
	}
	return PropToString(val), true
}

// Find returns the first element in the subtree (depth first, including v)
// for which match reports true.
func (v *VNode) Find(match func(*VNode) bool) *VNode {
	if v == nil {
		return nil
	}
	if v.Kind == KindElement && match(v) {
		return v
	}
	for i := range v.Kids {
		if found := v.Kids[i].Find(match); found != nil {
			return found
		}
	}
	return nil
}

// TextContent concatenates all text below v.
func (v *VNode) TextContent() string {
	if v == nil {
		return ""
	}
	if v.Kind == KindText {
		return v.Text
	}
	var sb strings.Builder
	for i := range v.Kids {
		sb.WriteString(v.Kids[i].TextContent())
	}
	return sb.String()
}

// IsEventProp reports whether a prop key names an event handler (onclick, onError, ...)
func IsEventProp(key string) bool {
	return len(key) > 2 && key[0] == 'o' && key[1] == 'n'
}

// EventName converts an event prop key to the DOM event name: onClick -> click.
func EventName(key string) string {
	return strings.ToLower(key[2:])
}
