package model

import "fmt"

// DataType is the primitive type of an attribute. An attribute carries
// either a DataType or a reference to an EnumX, never both.
type DataType int

// Primitive attribute types.
const (
	TypeInvalid DataType = iota
	TypeString
	TypeText
	TypeInt
	TypeFloat
	TypeBool
	TypeDate
	TypeDateTime
	TypeUUID
	TypeBytes
)

// String returns the type name.
func (t DataType) String() string {
	switch t {
	case TypeString:
		return "string"
	case TypeText:
		return "text"
	case TypeInt:
		return "int"
	case TypeFloat:
		return "float"
	case TypeBool:
		return "bool"
	case TypeDate:
		return "date"
	case TypeDateTime:
		return "datetime"
	case TypeUUID:
		return "uuid"
	case TypeBytes:
		return "bytes"
	}
	return "invalid"
}

// dataTypeNames maps the wire names back to DataType values.
var dataTypeNames = map[string]DataType{
	"string":   TypeString,
	"text":     TypeText,
	"int":      TypeInt,
	"float":    TypeFloat,
	"bool":     TypeBool,
	"date":     TypeDate,
	"datetime": TypeDateTime,
	"uuid":     TypeUUID,
	"bytes":    TypeBytes,
}

// ParseDataType returns the DataType named by s.
func ParseDataType(s string) (DataType, error) {
	if t, ok := dataTypeNames[s]; ok {
		return t, nil
	}
	return TypeInvalid, fmt.Errorf("model: unknown data type %q", s)
}

// Attribute is a primitive or enum-typed property of a LocalEntity.
type Attribute struct {
	// Name of the attribute. Unique among the entity's attributes.
	Name string
	// Type is the primitive type. TypeInvalid when Enum is set.
	Type DataType
	// Enum references the EnumX providing the value set, if any.
	Enum *Reference[*EnumX]
	// Unique indicates a uniqueness constraint on the attribute.
	Unique bool
	// Blank indicates the attribute may hold no value (nullable).
	Blank bool
	// Min and Max bound the value (length for strings, magnitude for
	// numerics). Nil means unbounded.
	Min *int
	Max *int

	meta   *Metadata
	entity *LocalEntity
}

// Kind reports the node kind.
func (a *Attribute) Kind() Kind { return KindAttribute }

// Meta returns the attribute metadata.
func (a *Attribute) Meta() *Metadata { return a.meta }

// Parent returns the owning entity.
func (a *Attribute) Parent() Node {
	if a.entity == nil {
		return nil
	}
	return a.entity
}

// Entity returns the owning entity.
func (a *Attribute) Entity() *LocalEntity { return a.entity }

// IsEnum reports whether the attribute is enum-typed.
func (a *Attribute) IsEnum() bool { return a.Enum != nil }

// TypeName returns the printable type of the attribute: the primitive
// type name, or the referenced enum name for enum attributes.
func (a *Attribute) TypeName() string {
	if a.IsEnum() {
		return a.Enum.Name()
	}
	return a.Type.String()
}

// Constant returns the generated constant name for the attribute,
// e.g. "FieldFirstName".
func (a *Attribute) Constant() string {
	return "Field" + Pascal(a.Name)
}

// StructField returns the struct member name for the attribute in
// generated models.
func (a *Attribute) StructField() string {
	return Pascal(a.Name)
}

// clone returns a deep copy of the attribute, detached from any entity.
func (a *Attribute) clone() *Attribute {
	c := &Attribute{
		Name:   a.Name,
		Type:   a.Type,
		Unique: a.Unique,
		Blank:  a.Blank,
		meta:   a.meta.clone(),
	}
	if a.Min != nil {
		v := *a.Min
		c.Min = &v
	}
	if a.Max != nil {
		v := *a.Max
		c.Max = &v
	}
	if a.Enum != nil {
		c.Enum = NewReference[*EnumX](a.Enum.Name())
	}
	return c
}
