package shape

// Constraints are per-field validation facets. Each facet targets one leaf
// kind; facets that do not match the field's kind are ignored during
// derivation.
type Constraints struct {
	// string
	MinLength *uint64
	MaxLength *uint64
	Pattern   *string
	Format    *string

	// number
	Minimum          *float64
	Maximum          *float64
	MultipleOf       *float64
	ExclusiveMinimum *bool
	ExclusiveMaximum *bool

	// sequence
	MinItems *uint64
	MaxItems *uint64
}

// IsZero reports whether no facet is set.
func (c Constraints) IsZero() bool {
	return c.MinLength == nil && c.MaxLength == nil && c.Pattern == nil && c.Format == nil &&
		c.Minimum == nil && c.Maximum == nil && c.MultipleOf == nil &&
		c.ExclusiveMinimum == nil && c.ExclusiveMaximum == nil &&
		c.MinItems == nil && c.MaxItems == nil
}
