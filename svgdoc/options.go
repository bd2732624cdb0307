package svgdoc

// Options holds the numeric rules applied to a schema region.
type Options struct {
	// AllowedAngles lists the legal segment rotation angles, in degrees.
	AllowedAngles []float64

	// MaxCurveParts bounds the command count of a curve, excluding the
	// initial move.
	MaxCurveParts int

	// FontSizeDivisor relates the background image height to the
	// mandatory font size: fontSize = round(imageHeight / divisor).
	FontSizeDivisor float64
}

// DefaultOptions returns the rules of the current card revision.
func DefaultOptions() Options {
	return Options{
		AllowedAngles:   []float64{-90, -45, 0, 45, 90},
		MaxCurveParts:   16,
		FontSizeDivisor: 36,
	}
}

// clone creates a deep copy of Options.
func (o Options) clone() Options {
	newOpts := o
	if o.AllowedAngles != nil {
		newOpts.AllowedAngles = make([]float64, len(o.AllowedAngles))
		copy(newOpts.AllowedAngles, o.AllowedAngles)
	}
	return newOpts
}
