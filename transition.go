package htmlstrip

// literal is a fixed byte sequence matched one byte per transition.
// Folded literals are stored in lower case and match ASCII letters of either case.
type literal struct {
	text string
	fold bool
}

var (
	cdataOpen    = literal{text: "[CDATA["} // follows "<!"
	cdataClose   = literal{text: "]]>"}
	commentClose = literal{text: "-->"}
)

func (l literal) len() uint8 {
	return uint8(len(l.text))
}

func (l literal) eq(want, c byte) bool {
	if l.fold {
		return want == lower(c)
	}
	return want == c
}

// step returns the length of the match after c follows a match of length pos.
// On a mismatch it falls back to the longest prefix of l that ends with c, so
// "]]]>" and "<</pre>" still close.
func (l literal) step(pos uint8, c byte) uint8 {
	if l.eq(l.text[pos], c) {
		return pos + 1
	}
	for k := int(pos); k > 0; k-- {
		if l.eq(l.text[k-1], c) && l.text[:k-1] == l.text[int(pos)-k+1:pos] {
			return uint8(k)
		}
	}
	return 0
}

func lower(c byte) byte {
	if 'A' <= c && c <= 'Z' {
		return c + 'a' - 'A'
	}
	return c
}

func isLetter(c byte) bool {
	c = lower(c)
	return 'a' <= c && c <= 'z'
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\r' || c == '\n' || c == '\t'
}

func (s State) to(r Region) State {
	return State{region: r, element: s.element}
}

// closeTag is the state after the '>' of a start tag.
func closeTag(e Element) State {
	if e == ElementNone {
		return State{region: RegionText}
	}
	return State{region: RegionVerbatim, element: e}
}

func tagName(c byte) State {
	switch c {
	case '>':
		return State{region: RegionText}
	case ' ':
		return State{region: RegionTagSpace}
	}
	return State{region: RegionTagName}
}

func declaration(c byte) State {
	if c == '>' {
		return State{region: RegionText}
	}
	return State{region: RegionDeclaration}
}

// Transition returns the state after c is consumed in state s and whether c
// belongs in the output. It is defined for every state and every byte; only
// whitespace in text is ever dropped.
func Transition(s State, c byte) (State, bool) {
	switch s.region {
	case RegionText:
		switch c {
		case '\r', '\n', '\t':
			return s, false
		case ' ':
			return State{region: RegionTextSpace}, true
		case '<':
			return State{region: RegionTagOpen}, true
		}
		return s, true

	case RegionTextSpace:
		if isSpace(c) {
			return s, false
		}
		if c == '<' {
			return State{region: RegionTagOpen}, true
		}
		return State{region: RegionText}, true

	case RegionTagOpen:
		switch {
		case c == '!':
			return State{region: RegionBang}, true
		case c == '/':
			return State{region: RegionEndTag}, true
		case c == ' ':
			return s, true
		case !isLetter(c):
			return State{region: RegionAbort}, true
		}
		for e := ElementPre; e < numElements; e++ {
			if name := elementNames[e]; name.eq(name.text[0], c) {
				return State{region: RegionTagNameLiteral, element: e, pos: 1}, true
			}
		}
		return State{region: RegionTagName}, true

	case RegionTagNameLiteral:
		name := elementNames[s.element]
		if s.pos < name.len() {
			if name.eq(name.text[s.pos], c) {
				s.pos++
				return s, true
			}
			return tagName(c), true
		}
		switch c {
		case '>':
			return closeTag(s.element), true
		case ' ':
			return s.to(RegionTagSpace), true
		}
		return State{region: RegionTagName}, true

	case RegionTagName:
		return tagName(c), true

	case RegionTagSpace:
		switch c {
		case '>':
			return closeTag(s.element), true
		case ' ':
			return s, true
		}
		return s.to(RegionAttrName), true

	case RegionAttrName:
		switch c {
		case '>':
			return closeTag(s.element), true
		case ' ':
			return s.to(RegionTagSpace), true
		case '=':
			return s.to(RegionAttrEquals), true
		}
		return s, true

	case RegionAttrEquals:
		switch c {
		case '>':
			return closeTag(s.element), true
		case ' ':
			return s, true
		case '"':
			return s.to(RegionAttrValueDouble), true
		case '\'':
			return s.to(RegionAttrValueSingle), true
		}
		return s.to(RegionAttrValue), true

	case RegionAttrValue:
		switch c {
		case '>':
			return closeTag(s.element), true
		case ' ':
			return s.to(RegionTagSpace), true
		}
		return s, true

	case RegionAttrValueDouble:
		if c == '"' {
			return s.to(RegionAttrValue), true
		}
		return s, true

	case RegionAttrValueSingle:
		if c == '\'' {
			return s.to(RegionAttrValue), true
		}
		return s, true

	case RegionEndTag, RegionEndTagName:
		if c == '>' {
			return State{region: RegionText}, true
		}
		return State{region: RegionEndTagName}, true

	case RegionBang:
		switch c {
		case '-':
			return State{region: RegionBangDash}, true
		case '[':
			return State{region: RegionCDATAOpen, pos: 1}, true
		}
		return declaration(c), true

	case RegionBangDash:
		if c == '-' {
			return State{region: RegionComment}, true
		}
		return declaration(c), true

	case RegionDeclaration:
		return declaration(c), true

	case RegionCDATAOpen:
		if !cdataOpen.eq(cdataOpen.text[s.pos], c) {
			return declaration(c), true
		}
		if s.pos++; s.pos == cdataOpen.len() {
			return State{region: RegionCDATA}, true
		}
		return s, true

	case RegionCDATA:
		if s.pos = cdataClose.step(s.pos, c); s.pos == cdataClose.len() {
			return State{region: RegionText}, true
		}
		return s, true

	case RegionComment:
		if s.pos = commentClose.step(s.pos, c); s.pos == commentClose.len() {
			return State{region: RegionText}, true
		}
		return s, true

	case RegionVerbatim:
		closer := elementClosers[s.element]
		if s.pos = closer.step(s.pos, c); s.pos == closer.len() {
			return State{region: RegionText}, true
		}
		return s, true

	case RegionAbort:
		return s, true
	}

	// Only reachable through a State that Transition never produces.
	return State{region: RegionAbort}, true
}

// States returns every state Transition can produce from the zero State.
func States() []State {
	var states []State
	for r := Region(0); r < numRegions; r++ {
		switch r {
		case RegionTagNameLiteral:
			for e := ElementPre; e < numElements; e++ {
				for pos := uint8(1); pos <= elementNames[e].len(); pos++ {
					states = append(states, State{region: r, element: e, pos: pos})
				}
			}
		case RegionTagSpace, RegionAttrName, RegionAttrEquals, RegionAttrValue,
			RegionAttrValueDouble, RegionAttrValueSingle:
			for e := ElementNone; e < numElements; e++ {
				states = append(states, State{region: r, element: e})
			}
		case RegionCDATAOpen:
			for pos := uint8(1); pos < cdataOpen.len(); pos++ {
				states = append(states, State{region: r, pos: pos})
			}
		case RegionCDATA:
			for pos := uint8(0); pos < cdataClose.len(); pos++ {
				states = append(states, State{region: r, pos: pos})
			}
		case RegionComment:
			for pos := uint8(0); pos < commentClose.len(); pos++ {
				states = append(states, State{region: r, pos: pos})
			}
		case RegionVerbatim:
			for e := ElementPre; e < numElements; e++ {
				for pos := uint8(0); pos < elementClosers[e].len(); pos++ {
					states = append(states, State{region: r, element: e, pos: pos})
				}
			}
		default:
			states = append(states, State{region: r})
		}
	}
	return states
}
