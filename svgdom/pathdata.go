package svgdom

import (
	"fmt"
	"strconv"
)

// PathCommand is one decomposed path-data command. Verb is the canonical
// lowercase command letter; Relative records the case of the source verb.
type PathCommand struct {
	Verb     byte
	Relative bool
	Args     []float64
}

// IsMove reports a new-subpath command.
func (c PathCommand) IsMove() bool { return c.Verb == 'm' }

// IsClose reports a close-path command.
func (c PathCommand) IsClose() bool { return c.Verb == 'z' }

// IsLine reports a straight-line command (l, h or v).
func (c PathCommand) IsLine() bool { return c.Verb == 'l' || c.Verb == 'h' || c.Verb == 'v' }

// IsArc reports an elliptical-arc command.
func (c PathCommand) IsArc() bool { return c.Verb == 'a' }

// IsCurve reports a bezier or quadratic command (c, s, q or t).
func (c PathCommand) IsCurve() bool {
	return c.Verb == 'c' || c.Verb == 's' || c.Verb == 'q' || c.Verb == 't'
}

// paramCounts maps each canonical verb to its parameter count.
var paramCounts = map[byte]int{
	'm': 2, 'l': 2, 'h': 1, 'v': 1,
	'c': 6, 's': 4, 'q': 4, 't': 2,
	'a': 7, 'z': 0,
}

func lowerVerb(v byte) byte {
	if v >= 'A' && v <= 'Z' {
		return v + ('a' - 'A')
	}
	return v
}

func isVerb(ch byte) bool {
	_, ok := paramCounts[lowerVerb(ch)]
	return ok
}

// ParsePath splits SVG path data into individual commands, expanding
// implicit command repetition: "c" followed by twelve numbers yields two
// commands, extra coordinate pairs after a moveto continue as linetos.
func ParsePath(d string) ([]PathCommand, error) {
	var cmds []PathCommand
	i, n := 0, len(d)

	skipSeparators := func() {
		for i < n {
			switch d[i] {
			case ' ', '\t', '\n', '\r', ',':
				i++
			default:
				return
			}
		}
	}
	number := func() (float64, error) {
		start := i
		if i < n && (d[i] == '+' || d[i] == '-') {
			i++
		}
		for i < n && (d[i] >= '0' && d[i] <= '9' || d[i] == '.') {
			i++
		}
		if i < n && (d[i] == 'e' || d[i] == 'E') {
			i++
			if i < n && (d[i] == '+' || d[i] == '-') {
				i++
			}
			for i < n && d[i] >= '0' && d[i] <= '9' {
				i++
			}
		}
		if i == start {
			return 0, fmt.Errorf("svgdom: expected a number at byte %d of path data", i)
		}
		return strconv.ParseFloat(d[start:i], 64)
	}

	var verb byte
	for {
		skipSeparators()
		if i >= n {
			break
		}
		if isVerb(d[i]) {
			verb = d[i]
			i++
		} else if verb == 0 || paramCounts[lowerVerb(verb)] == 0 {
			return nil, fmt.Errorf("svgdom: unexpected character %q at byte %d of path data", d[i], i)
		}
		canonical, relative := lowerVerb(verb), verb >= 'a'
		count := paramCounts[canonical]
		args := make([]float64, count)
		for j := 0; j < count; j++ {
			skipSeparators()
			v, err := number()
			if err != nil {
				return nil, err
			}
			args[j] = v
		}
		cmds = append(cmds, PathCommand{Verb: canonical, Relative: relative, Args: args})
		if canonical == 'm' {
			// Implicit repetition after a moveto continues as linetos.
			if relative {
				verb = 'l'
			} else {
				verb = 'L'
			}
		}
	}
	return cmds, nil
}
