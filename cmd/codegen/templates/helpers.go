package templates

// Accessor describes one typed accessor family to generate.
type Accessor struct {
	Name   string
	GoType string
}

var DefaultAccessors = []Accessor{
	{Name: "String", GoType: "string"},
	{Name: "Int", GoType: "int"},
	{Name: "Int64", GoType: "int64"},
	{Name: "Float64", GoType: "float64"},
	{Name: "Bool", GoType: "bool"},
}
