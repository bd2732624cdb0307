package svgdom

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/planktonid/taxocard/model"
)

// TransformOp is one operation of a transform attribute, e.g.
// rotate(45,10,10).
type TransformOp struct {
	Name string
	Args []float64
}

// Rotation returns the angle (degrees) and center of a rotate operation.
// A one-argument rotate pivots around the origin. ok is false for other
// operation names and malformed rotates.
func (op TransformOp) Rotation() (angle float64, center model.Point, ok bool) {
	if op.Name != "rotate" {
		return 0, model.Point{}, false
	}
	switch len(op.Args) {
	case 1:
		return op.Args[0], model.Point{}, true
	case 3:
		return op.Args[0], model.Point{X: op.Args[1], Y: op.Args[2]}, true
	}
	return 0, model.Point{}, false
}

// ParseTransform splits a transform attribute value into its operations.
func ParseTransform(v string) ([]TransformOp, error) {
	var ops []TransformOp
	for _, part := range strings.Split(v, ")") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		nameArgs := strings.SplitN(part, "(", 2)
		if len(nameArgs) != 2 {
			return nil, fmt.Errorf("svgdom: malformed transform %q", v)
		}
		name := strings.ToLower(strings.TrimSpace(nameArgs[0]))
		fields := strings.Fields(strings.ReplaceAll(nameArgs[1], ",", " "))
		args := make([]float64, len(fields))
		for i, f := range fields {
			val, err := strconv.ParseFloat(f, 64)
			if err != nil {
				return nil, fmt.Errorf("svgdom: transform value %q is not a number", f)
			}
			args[i] = val
		}
		ops = append(ops, TransformOp{Name: name, Args: args})
	}
	return ops, nil
}
