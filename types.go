package htmlstrip

import "strconv"

// Region is the part of the document the automaton is currently in.
type Region uint8

const (
	RegionText            Region = iota // default, whitespace is stripped here
	RegionTextSpace                     // a space was emitted, further whitespace is dropped
	RegionTagOpen                       // after '<'
	RegionTagName                       // generic start tag name
	RegionTagNameLiteral                // start tag name still spelling "pre" or "textarea"
	RegionTagSpace                      // space inside a start tag
	RegionAttrName                      // attribute name
	RegionAttrEquals                    // after '=' of an attribute
	RegionAttrValue                     // unquoted attribute value
	RegionAttrValueDouble               // inside "..."
	RegionAttrValueSingle               // inside '...'
	RegionEndTag                        // after "</"
	RegionEndTagName                    // end tag name up to '>'
	RegionBang                          // after "<!"
	RegionBangDash                      // after "<!-"
	RegionDeclaration                   // "<!DOCTYPE ...>" and anything else up to '>'
	RegionCDATAOpen                     // matching "[CDATA[" after "<!"
	RegionCDATA                         // CDATA body, watching for "]]>"
	RegionComment                       // comment body, watching for "-->"
	RegionVerbatim                      // <pre> or <textarea> content, watching for the end tag
	RegionAbort                         // unclassifiable markup, everything is copied from here on

	numRegions
)

var regionNames = [numRegions]string{
	RegionText:            "text",
	RegionTextSpace:       "text-space",
	RegionTagOpen:         "tag-open",
	RegionTagName:         "tag-name",
	RegionTagNameLiteral:  "tag-name-literal",
	RegionTagSpace:        "tag-space",
	RegionAttrName:        "attr-name",
	RegionAttrEquals:      "attr-equals",
	RegionAttrValue:       "attr-value",
	RegionAttrValueDouble: "attr-value-double",
	RegionAttrValueSingle: "attr-value-single",
	RegionEndTag:          "end-tag",
	RegionEndTagName:      "end-tag-name",
	RegionBang:            "bang",
	RegionBangDash:        "bang-dash",
	RegionDeclaration:     "declaration",
	RegionCDATAOpen:       "cdata-open",
	RegionCDATA:           "cdata",
	RegionComment:         "comment",
	RegionVerbatim:        "verbatim",
	RegionAbort:           "abort",
}

func (r Region) String() string {
	if r < numRegions {
		return regionNames[r]
	}
	return "unknown"
}

// Element identifies a start tag whose content is copied verbatim.
type Element uint8

const (
	ElementNone Element = iota
	ElementPre
	ElementTextarea

	numElements
)

var (
	elementNames   = [numElements]literal{ElementPre: {text: "pre", fold: true}, ElementTextarea: {text: "textarea", fold: true}}
	elementClosers = [numElements]literal{ElementPre: {text: "</pre>", fold: true}, ElementTextarea: {text: "</textarea>", fold: true}}
)

func (e Element) String() string {
	if e == ElementNone || e >= numElements {
		return "none"
	}
	return elementNames[e].text
}

// State is the automaton state carried from one buffer of a stream to the next.
// The zero value is the start of a document.
//
// Besides the region it records the verbatim element a start tag will open
// (or is open, inside RegionVerbatim) and how far a literal has been matched.
type State struct {
	region  Region
	element Element
	pos     uint8
}

// Region returns the region the automaton is in.
func (s State) Region() Region { return s.region }

// Element returns the verbatim element that is open or pending.
func (s State) Element() Element { return s.element }

func (s State) String() string {
	if s.element == ElementNone && s.pos == 0 {
		return s.region.String()
	}
	return s.region.String() + "(" + s.element.String() + "," + strconv.Itoa(int(s.pos)) + ")"
}
