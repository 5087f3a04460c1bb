package widget

// Toggle flips a boolean switch.
func Toggle(v bool) bool {
	return !v
}

// RadioGroup is a single choice among fixed options.
type RadioGroup struct {
	Options []string
	Value   string
}

// Select is a no-op for values outside Options.
func (g *RadioGroup) Select(v string) bool {
	for _, o := range g.Options {
		if o == v {
			g.Value = v
			return true
		}
	}
	return false
}
