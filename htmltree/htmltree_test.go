package htmltree

import (
	"fmt"
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"

	"github.com/planktonid/taxocard/diag"
)

func parseBody(t *testing.T, fragment string) *html.Node {
	t.Helper()
	doc, err := html.Parse(strings.NewReader(fragment))
	require.NoError(t, err)
	body := Find(doc, "body")
	require.NotNil(t, body)
	return body
}

func firstElem(t *testing.T, fragment, tag string) *html.Node {
	t.Helper()
	n := Find(parseBody(t, fragment), tag)
	require.NotNil(t, n, "no <%s> in fragment", tag)
	return n
}

func TestAttr_Foreign(t *testing.T) {
	// Inside <svg> the parser adjusts foreign attributes; xlink:href must
	// still be addressable by its qualified name.
	use := firstElem(t, `<svg><use xlink:href="#antenna_segment"/></svg>`, "use")
	v, ok := Attr(use, "xlink:href")
	assert.True(t, ok)
	assert.Equal(t, "#antenna_segment", v)

	_, ok = Attr(use, "href")
	assert.False(t, ok)
}

func TestAttr_CasePreserved(t *testing.T) {
	svg := firstElem(t, `<svg viewBox="0 0 10 10" baseProfile="tiny"></svg>`, "svg")
	v, ok := Attr(svg, "viewBox")
	assert.True(t, ok)
	assert.Equal(t, "0 0 10 10", v)
	_, ok = Attr(svg, "baseProfile")
	assert.True(t, ok)
}

func TestClasses(t *testing.T) {
	div := firstElem(t, `<div class="  shapes   zooms ">x</div>`, "div")
	assert.Equal(t, []string{"shapes", "zooms"}, Classes(div))

	bare := firstElem(t, `<p>x</p>`, "p")
	assert.Nil(t, Classes(bare))
}

func TestChildren_SkipsBlanks(t *testing.T) {
	body := parseBody(t, "<div>\n  <!-- note -->\n  <p>a</p>\n  <p>b</p>\n</div>")
	div := Find(body, "div")
	children := Children(div)
	require.Len(t, children, 2)
	assert.Equal(t, "p", children[0].Data)

	assert.Equal(t, children[1], NthChild(div, 1))
	assert.Nil(t, NthChild(div, 2))
}

func TestText(t *testing.T) {
	p := firstElem(t, `<p>long <em>pointed</em> rostrum</p>`, "p")
	assert.Equal(t, "long pointed rostrum", Text(p))
}

func TestCheckAttrs(t *testing.T) {
	tests := []struct {
		name      string
		fragment  string
		mandatory []string
		wantOK    bool
		wantDiags int
	}{
		{"exact", `<div data-instance="zooscan" data-object-id="77">x</div>`,
			[]string{"data-instance", "data-object-id"}, true, 0},
		{"missing", `<div data-instance="zooscan">x</div>`,
			[]string{"data-instance", "data-object-id"}, false, 1},
		{"forbidden", `<div data-instance="z" data-object-id="77" style="color:red">x</div>`,
			[]string{"data-instance", "data-object-id"}, false, 1},
		{"missing and forbidden", `<div style="x">x</div>`,
			[]string{"data-instance"}, false, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			div := firstElem(t, tt.fragment, "div")
			sink := diag.NewSink()
			values, ok := CheckAttrs(div, sink, tt.mandatory...)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantDiags, sink.Len(), "diags: %v", sink.Errors())
			assert.Len(t, values, len(tt.mandatory))
		})
	}
}

func TestCheckAttrs_ValueOrder(t *testing.T) {
	div := firstElem(t, `<div data-object-id="77" data-instance="zooscan">x</div>`, "div")
	values, ok := CheckAttrs(div, diag.NewSink(), "data-instance", "data-object-id")
	require.True(t, ok)
	assert.Equal(t, []string{"zooscan", "77"}, values)
}

// Randomized check of the attribute set contract: the check passes exactly
// when every mandatory name is present and nothing outside mandatory plus
// optional is.
func TestCheckAttrsOpt_Property(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	names := []string{"a", "b", "c", "d", "e", "f"}
	mandatory := []string{"a", "b"}
	optional := []string{"c", "d"}

	for i := 0; i < 200; i++ {
		var attrs []string
		present := map[string]bool{}
		for _, name := range names {
			if rng.Intn(2) == 1 {
				attrs = append(attrs, fmt.Sprintf("%s=%q", name, "v"))
				present[name] = true
			}
		}
		fragment := "<div " + strings.Join(attrs, " ") + ">x</div>"
		div := firstElem(t, fragment, "div")

		want := present["a"] && present["b"] && !present["e"] && !present["f"]
		got := CheckAttrsOpt(div, diag.NewSink(), mandatory, optional)
		assert.Equal(t, want, got, "attrs %v", attrs)
	}
}

func TestCheckSingleClass(t *testing.T) {
	tests := []struct {
		name      string
		fragment  string
		wantOK    bool
		wantDiags int
	}{
		{"matching", `<div class="shapes">x</div>`, true, 0},
		{"wrong value", `<div class="zooms">x</div>`, false, 1},
		{"two classes", `<div class="shapes zooms">x</div>`, false, 1},
		{"extra attribute", `<div class="shapes" id="g1">x</div>`, false, 1},
		{"no attributes", `<div>x</div>`, false, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			div := firstElem(t, tt.fragment, "div")
			sink := diag.NewSink()
			ok := CheckSingleClass(div, sink, "shapes")
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantDiags, sink.Len(), "diags: %v", sink.Errors())
		})
	}
}

func TestSingleChildOfTag(t *testing.T) {
	t.Run("exact", func(t *testing.T) {
		div := firstElem(t, `<div><span>x</span></div>`, "div")
		sink := diag.NewSink()
		got := SingleChildOfTag(div, sink, "span")
		require.NotNil(t, got)
		assert.Zero(t, sink.Len())
	})
	t.Run("extra sibling still returns the match", func(t *testing.T) {
		div := firstElem(t, `<div><p>a</p><span>x</span></div>`, "div")
		sink := diag.NewSink()
		got := SingleChildOfTag(div, sink, "span")
		require.NotNil(t, got)
		assert.Equal(t, 1, sink.Len())
	})
	t.Run("no match", func(t *testing.T) {
		div := firstElem(t, `<div><p>a</p></div>`, "div")
		sink := diag.NewSink()
		assert.Nil(t, SingleChildOfTag(div, sink, "span"))
		assert.Equal(t, 1, sink.Len())
	})
}

func TestTaggedChildren(t *testing.T) {
	body := parseBody(t, `<ul><li>a</li>stray<li>b</li><p>c</p></ul>`)
	ul := Find(body, "ul")
	sink := diag.NewSink()
	items := TaggedChildren(ul, sink, "li")
	assert.Len(t, items, 2)
	// one for the free text, one for the <p>
	assert.Equal(t, 2, sink.Len())
}
