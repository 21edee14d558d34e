package htmlstrip

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func compactString(s string) string {
	buf := []byte(s)
	return string(buf[:Compact(buf, nil)])
}

func TestTransitionTotal(t *testing.T) {
	states := States()

	known := make(map[State]bool, len(states))
	regions := make(map[Region]bool)
	for _, s := range states {
		require.False(t, known[s], "duplicate state %v", s)
		known[s] = true
		regions[s.Region()] = true
	}
	require.True(t, known[State{}], "zero state missing")
	require.Len(t, regions, int(numRegions))

	for _, s := range states {
		for c := 0; c < 256; c++ {
			next, keep := Transition(s, byte(c))
			require.True(t, known[next], "%v on %q leads to unknown state %v", s, byte(c), next)

			if !keep {
				require.Contains(t, []Region{RegionText, RegionTextSpace}, s.Region(), "%v dropped %q", s, byte(c))
				require.True(t, isSpace(byte(c)), "%v dropped %q", s, byte(c))
			}
			if next.Region() == RegionAbort {
				require.Contains(t, []Region{RegionTagOpen, RegionAbort}, s.Region(), "%v on %q aborted", s, byte(c))
			}
			if s.Region() == RegionAbort {
				require.Equal(t, s, next)
				require.True(t, keep)
			}
		}
	}
}

func TestCompact(t *testing.T) {
	cases := []struct {
		name     string
		raw      string
		expected string
	}{
		{"paragraph", "<p>\n  Hello   world\n</p>", "<p> Hello world</p>"},
		{"bare line breaks", "a\r\nb\tc", "abc"},
		{"mixed run", "a \r\n\t b", "a b"},
		{"leading newline", "\n  x", " x"},
		{"space before tag", "a   <b>", "a <b>"},
		{"pre", "<pre>\n  keep   this\n</pre>", "<pre>\n  keep   this\n</pre>"},
		{"pre with attributes", "<pre class=\"a>b\">\n  x  </pre>  y", "<pre class=\"a>b\">\n  x  </pre> y"},
		{"textarea mixed case", "<TEXTAREA>  a\n\tb </TextArea>\n x", "<TEXTAREA>  a\n\tb </TextArea> x"},
		{"pre closer after angle", "<pre><</pre>  z", "<pre><</pre> z"},
		{"broken pre closer", "<pre> a </pr e>  b </pre>  c", "<pre> a </pr e>  b </pre> c"},
		{"prefix is not pre", "<prefix>  a", "<prefix> a"},
		{"p is not pre", "<p>  a", "<p> a"},
		{"tex is not textarea", "<tex>  a", "<tex> a"},
		{"textareax is not textarea", "<textareax>  a</textareax>", "<textareax> a</textareax>"},
		{"quoted attributes", "<a title=\"x > y\"   href='a>b'>  t", "<a title=\"x > y\"   href='a>b'> t"},
		{"unquoted attribute", "<a href=x>  t", "<a href=x> t"},
		{"empty attribute value", "<a b=>  t", "<a b=> t"},
		{"space around equals", "<a b= \"x > y\">  t", "<a b= \"x > y\"> t"},
		{"end tag with space", "</ p >  t", "</ p > t"},
		{"comment", "<!--  a\n\n b -->  c", "<!--  a\n\n b --> c"},
		{"comment with extra dashes", "<!-- a --->  b", "<!-- a ---> b"},
		{"comment with inner dashes", "<!-- a -- b - > c -->  d", "<!-- a -- b - > c --> d"},
		{"doctype", "<!DOCTYPE html>\n<p>", "<!DOCTYPE html><p>"},
		{"bang dash declaration", "<!-x  y>  z", "<!-x  y> z"},
		{"empty declaration", "<!>  z", "<!> z"},
		{"cdata", "<![CDATA[ a  b ]]>  x", "<![CDATA[ a  b ]]> x"},
		{"cdata lone brackets", "<![CDATA[ a ] b ]] c ]]>  x", "<![CDATA[ a ] b ]] c ]]> x"},
		{"cdata bracket run", "<![CDATA[x]]]>  y", "<![CDATA[x]]]> y"},
		{"cdata bracket then angle", "<![CDATA[ ]x> ]]>  y", "<![CDATA[ ]x> ]]> y"},
		{"cdata case sensitive", "<![cdata[x>  y  ]]>", "<![cdata[x> y ]]>"},
		{"cdata opener cut short", "<![CDAT>  a", "<![CDAT> a"},
		{"abort", "< 1 2>text   here", "< 1 2>text   here"},
		{"abort after text", "<p>a</p>< 1>  b\n\n<p>  c", "<p>a</p>< 1>  b\n\n<p>  c"},
		{"abort on comparison", "a <= b  c", "a <= b  c"},
		{"compact input", "<html><body><p>Hello world</p><pre>  x\n</pre></body></html>", "<html><body><p>Hello world</p><pre>  x\n</pre></body></html>"},
		{"empty", "", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.expected, compactString(tc.raw))
		})
	}
}

func TestCompactIdempotent(t *testing.T) {
	once := compactString(page)
	require.Equal(t, once, compactString(once))
}

func TestLiteralStep(t *testing.T) {
	cases := []struct {
		name     string
		lit      literal
		input    string
		expected uint8
	}{
		{"match", cdataClose, "]]", 2},
		{"restart", cdataClose, "]x", 0},
		{"bracket run", cdataClose, "]]]", 2},
		{"closer restart", elementClosers[ElementPre], "</p<", 1},
		{"folded", elementClosers[ElementTextarea], "</TeXtArE", 9},
		{"case sensitive", cdataOpen, "[cd", 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var pos uint8
			for i := 0; i < len(tc.input); i++ {
				pos = tc.lit.step(pos, tc.input[i])
			}
			require.Equal(t, tc.expected, pos)
		})
	}
}

func TestStateString(t *testing.T) {
	require.Equal(t, "text", State{}.String())
	require.Equal(t, "verbatim(textarea,3)", State{region: RegionVerbatim, element: ElementTextarea, pos: 3}.String())
	require.Equal(t, "unknown", Region(200).String())
}
