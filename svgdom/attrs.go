package svgdom

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/net/html"

	"github.com/planktonid/taxocard/htmltree"
	"github.com/planktonid/taxocard/model"
)

// Float reads the named attribute of n as a float64. A unit suffix such
// as "px" is not accepted: card coordinates are plain numbers.
func Float(n *html.Node, name string) (float64, error) {
	v, ok := htmltree.Attr(n, name)
	if !ok {
		return 0, fmt.Errorf("svgdom: attribute %q is missing", name)
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil {
		return 0, fmt.Errorf("svgdom: attribute %q is not a number: %q", name, v)
	}
	return f, nil
}

// FloatOr reads the named attribute as a float64, returning def when the
// attribute is absent.
func FloatOr(n *html.Node, name string, def float64) (float64, error) {
	if _, ok := htmltree.Attr(n, name); !ok {
		return def, nil
	}
	return Float(n, name)
}

// Floats reads the named attributes of n as float64 values, in order.
func Floats(n *html.Node, names ...string) ([]float64, error) {
	out := make([]float64, len(names))
	for i, name := range names {
		f, err := Float(n, name)
		if err != nil {
			return nil, err
		}
		out[i] = f
	}
	return out, nil
}

// ParseViewBox parses a viewBox attribute value, "min-x min-y width
// height", into a rectangle.
func ParseViewBox(s string) (model.Rect, error) {
	fields := strings.Fields(strings.ReplaceAll(s, ",", " "))
	if len(fields) != 4 {
		return model.Rect{}, fmt.Errorf("svgdom: viewBox should have 4 numbers, not %d", len(fields))
	}
	var vals [4]float64
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return model.Rect{}, fmt.Errorf("svgdom: viewBox value %q is not a number", f)
		}
		vals[i] = v
	}
	return model.NewRect(vals[0], vals[1], vals[2], vals[3]), nil
}
