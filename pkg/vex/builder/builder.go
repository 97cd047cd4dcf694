// Package builder provides a fluent way to assemble vdom trees:
//
//	builder.Div().Class("card").Children(
//		builder.H2().Text(title).Build(),
//	).Build()
package builder

import (
	"strings"

	"github.com/cyberinsights/inkwell/pkg/vdom"
)

// ElementBuilder accumulates props and children for one element
type ElementBuilder struct {
	tag      string
	props    vdom.Props
	children []*vdom.VNode
}

func element(tag string) *ElementBuilder {
	return &ElementBuilder{tag: tag, props: vdom.Props{}}
}

func Html() *ElementBuilder    { return element("html") }
func Head() *ElementBuilder    { return element("head") }
func Body() *ElementBuilder    { return element("body") }
func Title() *ElementBuilder   { return element("title") }
func Meta() *ElementBuilder    { return element("meta") }
func Link() *ElementBuilder    { return element("link") }
func Script() *ElementBuilder  { return element("script") }
func Div() *ElementBuilder     { return element("div") }
func Span() *ElementBuilder    { return element("span") }
func P() *ElementBuilder       { return element("p") }
func A() *ElementBuilder       { return element("a") }
func Img() *ElementBuilder     { return element("img") }
func Button() *ElementBuilder  { return element("button") }
func Nav() *ElementBuilder     { return element("nav") }
func Ul() *ElementBuilder      { return element("ul") }
func Li() *ElementBuilder      { return element("li") }
func H1() *ElementBuilder      { return element("h1") }
func H2() *ElementBuilder      { return element("h2") }
func H3() *ElementBuilder      { return element("h3") }
func Header() *ElementBuilder  { return element("header") }
func Footer() *ElementBuilder  { return element("footer") }
func Main() *ElementBuilder    { return element("main") }
func Article() *ElementBuilder { return element("article") }
func Aside() *ElementBuilder   { return element("aside") }
func Section() *ElementBuilder { return element("section") }
func Strong() *ElementBuilder  { return element("strong") }
func Time() *ElementBuilder    { return element("time") }

// Class sets the class attribute from the non-empty names
func (b *ElementBuilder) Class(names ...string) *ElementBuilder {
	parts := make([]string, 0, len(names))
	for _, n := range names {
		if n = strings.TrimSpace(n); n != "" {
			parts = append(parts, n)
		}
	}
	if len(parts) > 0 {
		b.props["class"] = strings.Join(parts, " ")
	}
	return b
}

// ID sets the id attribute
func (b *ElementBuilder) ID(id string) *ElementBuilder {
	b.props["id"] = id
	return b
}

// Style sets the inline style
func (b *ElementBuilder) Style(style string) *ElementBuilder {
	b.props["style"] = style
	return b
}

// Key sets the reconciliation key
func (b *ElementBuilder) Key(key string) *ElementBuilder {
	b.props["key"] = key
	return b
}

// Text appends a text child
func (b *ElementBuilder) Text(text string) *ElementBuilder {
	b.children = append(b.children, vdom.NewText(text))
	return b
}

// Children appends child nodes; nil children are skipped
func (b *ElementBuilder) Children(children ...*vdom.VNode) *ElementBuilder {
	b.children = append(b.children, children...)
	return b
}

// Child appends a child built by another builder
func (b *ElementBuilder) Child(child *ElementBuilder) *ElementBuilder {
	return b.Children(child.Build())
}

// Build produces the element
func (b *ElementBuilder) Build() *vdom.VNode {
	props := b.props
	if len(props) == 0 {
		props = nil
	}
	return vdom.NewElement(b.tag, props, b.children...)
}
