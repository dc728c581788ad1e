package temporal

// Column is a column offered by the host pipeline.
type Column interface {
	// Name of the column.
	Name() string

	// TypeName is the declared SQL type name, e.g. "timestamp".
	TypeName() string
}

// Schema describes the output of a registered conversion: a logical string type.
type Schema struct {
	// Name distinguishes the source kind, see Kind.SchemaName.
	Name string

	// Optional is true if the output can be absent (NULL).
	Optional bool
}

// Registration receives the conversion of a column.
type Registration interface {
	Register(schema Schema, fn ConvertFunc)
}

// RegistrationFunc is an adapter to use ordinary function as Registration.
type RegistrationFunc func(schema Schema, fn ConvertFunc)

// Register implements Registration.
func (f RegistrationFunc) Register(schema Schema, fn ConvertFunc) {
	f(schema, fn)
}

// ConverterFor registers the conversion of col to reg if col is a temporal column.
// Otherwise nothing is registered and the column should pass through unmodified.
// It returns whether a conversion has been registered.
func (n *Normalizer) ConverterFor(col Column, reg Registration) bool {
	kind, ok := n.Classify(col.TypeName())
	if !ok {
		return false
	}
	reg.Register(
		Schema{Name: kind.SchemaName(), Optional: true},
		n.ConvertFunc(kind),
	)
	return true
}
