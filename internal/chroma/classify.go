package chroma

// Classification is the full description of a sampled color.
// It is built once per detection and never modified.
type Classification struct {
	RGB  RGB    `json:"rgb"`
	Hex  string `json:"hex"`
	HSV  HSV    `json:"hsv"`
	HSL  HSL    `json:"hsl"`
	Name string `json:"name"`
}

// Classifier resolves colors against a shared reference table.
type Classifier struct {
	table *Table
}

// NewClassifier creates a Classifier. A nil table selects DefaultTable.
func NewClassifier(t *Table) *Classifier {
	if t == nil {
		t = DefaultTable()
	}
	return &Classifier{table: t}
}

// Table returns the reference table used for naming.
func (c *Classifier) Table() *Table {
	return c.table
}

// Classify computes every representation of rgb. It is total over all inputs.
func (c *Classifier) Classify(rgb RGB) Classification {
	return Classification{
		RGB:  rgb,
		Hex:  rgb.Hex(),
		HSV:  rgb.HSV(),
		HSL:  rgb.HSL(),
		Name: c.table.Name(rgb),
	}
}

// IsLight reports whether the classified color is light.
func (c Classification) IsLight() bool {
	return c.RGB.IsLight()
}

// Contrast returns the text color that best contrasts with the classified color.
func (c Classification) Contrast() RGB {
	return c.RGB.Contrast()
}
