package builder

// === Link & Media Attributes ===

// Href sets the href attribute
func (b *ElementBuilder) Href(href string) *ElementBuilder {
	b.props["href"] = href
	return b
}

// Target sets the target attribute
func (b *ElementBuilder) Target(target string) *ElementBuilder {
	b.props["target"] = target
	return b
}

// Rel sets the rel attribute
func (b *ElementBuilder) Rel(rel string) *ElementBuilder {
	b.props["rel"] = rel
	return b
}

// Src sets the src attribute
func (b *ElementBuilder) Src(src string) *ElementBuilder {
	b.props["src"] = src
	return b
}

// Alt sets the alt attribute
func (b *ElementBuilder) Alt(alt string) *ElementBuilder {
	b.props["alt"] = alt
	return b
}

// Width sets the width attribute
func (b *ElementBuilder) Width(width int) *ElementBuilder {
	b.props["width"] = width
	return b
}

// Height sets the height attribute
func (b *ElementBuilder) Height(height int) *ElementBuilder {
	b.props["height"] = height
	return b
}

// Loading sets the loading attribute (lazy, eager)
func (b *ElementBuilder) Loading(loading string) *ElementBuilder {
	b.props["loading"] = loading
	return b
}

// === Form Attributes ===

// Type sets the type attribute
func (b *ElementBuilder) Type(t string) *ElementBuilder {
	b.props["type"] = t
	return b
}

// Name sets the name attribute
func (b *ElementBuilder) Name(name string) *ElementBuilder {
	b.props["name"] = name
	return b
}

// Content sets the content attribute (meta)
func (b *ElementBuilder) Content(content string) *ElementBuilder {
	b.props["content"] = content
	return b
}

// Hidden sets the hidden attribute
func (b *ElementBuilder) Hidden(hidden bool) *ElementBuilder {
	if hidden {
		b.props["hidden"] = true
	}
	return b
}

// === Accessibility & Data ===

// Role sets the ARIA role
func (b *ElementBuilder) Role(role string) *ElementBuilder {
	b.props["role"] = role
	return b
}

// Aria sets an aria-* attribute
func (b *ElementBuilder) Aria(key, value string) *ElementBuilder {
	b.props["aria-"+key] = value
	return b
}

// Data sets a data-* attribute
func (b *ElementBuilder) Data(key, value string) *ElementBuilder {
	b.props["data-"+key] = value
	return b
}

// Attr sets an arbitrary attribute
func (b *ElementBuilder) Attr(key string, value interface{}) *ElementBuilder {
	b.props[key] = value
	return b
}

// === Events ===

// OnClick sets the click handler: func() or func(dom.Event)
func (b *ElementBuilder) OnClick(handler interface{}) *ElementBuilder {
	b.props["onClick"] = handler
	return b
}

// OnError sets the error handler (resource load failures)
func (b *ElementBuilder) OnError(handler interface{}) *ElementBuilder {
	b.props["onError"] = handler
	return b
}

// OnKeyDown sets the keydown handler
func (b *ElementBuilder) OnKeyDown(handler interface{}) *ElementBuilder {
	b.props["onKeyDown"] = handler
	return b
}
