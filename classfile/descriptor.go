package classfile

import (
	"fmt"
	"strings"
)

// MaxArrayDepth is the largest number of dimensions a descriptor may have.
const MaxArrayDepth = 255

type TypeKind uint8

const (
	PrimitiveType TypeKind = iota + 1
	ReferenceType
	ArrayType
)

// BaseType is a primitive type, valued by its descriptor character.
type BaseType byte

const (
	Byte    BaseType = 'B'
	Char    BaseType = 'C'
	Double  BaseType = 'D'
	Float   BaseType = 'F'
	Integer BaseType = 'I'
	Long    BaseType = 'J'
	Short   BaseType = 'S'
	Boolean BaseType = 'Z'
)

func (b BaseType) String() string {
	switch b {
	case Byte:
		return "byte"
	case Char:
		return "char"
	case Double:
		return "double"
	case Float:
		return "float"
	case Integer:
		return "int"
	case Long:
		return "long"
	case Short:
		return "short"
	case Boolean:
		return "boolean"
	default:
		return fmt.Sprintf("BaseType(%q)", byte(b))
	}
}

func isBaseType(c byte) bool {
	switch BaseType(c) {
	case Byte, Char, Double, Float, Integer, Long, Short, Boolean:
		return true
	}
	return false
}

// FieldType is a parsed field descriptor. Exactly one shape is populated,
// selected by Kind: Base for primitives, Path for references, and Depth
// with a non-array Element for arrays.
type FieldType struct {
	Kind    TypeKind
	Base    BaseType
	Path    []string
	Depth   uint8
	Element *FieldType
}

// String renders the type the way Java source spells it.
func (ft *FieldType) String() string {
	switch ft.Kind {
	case PrimitiveType:
		return ft.Base.String()
	case ReferenceType:
		return strings.Join(ft.Path, ".")
	case ArrayType:
		return ft.Element.String() + strings.Repeat("[]", int(ft.Depth))
	default:
		return ""
	}
}

// Descriptor renders the type back into descriptor form.
func (ft *FieldType) Descriptor() string {
	switch ft.Kind {
	case PrimitiveType:
		return string(rune(ft.Base))
	case ReferenceType:
		return "L" + ft.InternalName() + ";"
	case ArrayType:
		return strings.Repeat("[", int(ft.Depth)) + ft.Element.Descriptor()
	default:
		return ""
	}
}

// InternalName is the slash separated class name of a reference type.
func (ft *FieldType) InternalName() string {
	return strings.Join(ft.Path, "/")
}

func (ft *FieldType) IsArray() bool {
	return ft.Kind == ArrayType
}

func (ft *FieldType) IsPrimitive() bool {
	return ft.Kind == PrimitiveType
}

func (ft *FieldType) IsReference() bool {
	return ft.Kind == ReferenceType || ft.Kind == ArrayType
}

type MethodDescriptor struct {
	Parameters []*FieldType
	ReturnType *FieldType // nil for void
}

func (md *MethodDescriptor) String() string {
	var sb strings.Builder
	sb.WriteString("(")
	for i, p := range md.Parameters {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(p.String())
	}
	sb.WriteString(")")
	if md.ReturnType != nil {
		sb.WriteString(" ")
		sb.WriteString(md.ReturnType.String())
	} else {
		sb.WriteString(" void")
	}
	return sb.String()
}

func (md *MethodDescriptor) Descriptor() string {
	var sb strings.Builder
	sb.WriteString("(")
	for _, p := range md.Parameters {
		sb.WriteString(p.Descriptor())
	}
	sb.WriteString(")")
	if md.ReturnType != nil {
		sb.WriteString(md.ReturnType.Descriptor())
	} else {
		sb.WriteString("V")
	}
	return sb.String()
}

// ParseFieldDescriptor parses a complete field descriptor such as "I",
// "Ljava/lang/String;" or "[[J".
func ParseFieldDescriptor(desc string) (*FieldType, error) {
	ft, n, err := parseFieldType(desc, 0)
	if err != nil {
		return nil, err
	}
	if n != len(desc) {
		return nil, descriptorError(desc, n, "trailing characters")
	}
	return ft, nil
}

// ParseMethodDescriptor parses "(" {FieldType} ")" (FieldType | "V").
func ParseMethodDescriptor(desc string) (*MethodDescriptor, error) {
	if len(desc) == 0 || desc[0] != '(' {
		return nil, descriptorError(desc, 0, "method descriptor must start with '('")
	}

	md := &MethodDescriptor{}
	i := 1

	for i < len(desc) && desc[i] != ')' {
		ft, n, err := parseFieldType(desc, i)
		if err != nil {
			return nil, err
		}
		md.Parameters = append(md.Parameters, ft)
		i = n
	}

	if i >= len(desc) {
		return nil, descriptorError(desc, i, "missing ')'")
	}
	i++

	if i < len(desc) && desc[i] == 'V' {
		i++
	} else {
		ret, n, err := parseFieldType(desc, i)
		if err != nil {
			return nil, err
		}
		md.ReturnType = ret
		i = n
	}

	if i != len(desc) {
		return nil, descriptorError(desc, i, "trailing characters")
	}
	return md, nil
}

// parseFieldType parses one field type starting at start and returns the
// position just past it.
func parseFieldType(desc string, start int) (*FieldType, int, error) {
	if start >= len(desc) {
		return nil, start, descriptorError(desc, start, "missing type")
	}

	i := start
	for i < len(desc) && desc[i] == '[' {
		i++
	}
	depth := i - start
	if depth > MaxArrayDepth {
		return nil, i, descriptorError(desc, start, "array depth %d exceeds %d", depth, MaxArrayDepth)
	}
	if i >= len(desc) {
		return nil, i, descriptorError(desc, i, "array without element type")
	}

	var elem *FieldType
	c := desc[i]
	switch {
	case isBaseType(c):
		elem = &FieldType{Kind: PrimitiveType, Base: BaseType(c)}
		i++
	case c == 'L':
		path, end, err := parseClassName(desc, i+1)
		if err != nil {
			return nil, end, err
		}
		elem = &FieldType{Kind: ReferenceType, Path: path}
		i = end
	default:
		return nil, i, descriptorError(desc, i, "unexpected %q", c)
	}

	if depth == 0 {
		return elem, i, nil
	}
	return &FieldType{Kind: ArrayType, Depth: uint8(depth), Element: elem}, i, nil
}

// parseClassName reads slash separated identifiers up to the terminating
// ';' and returns the position after it.
func parseClassName(desc string, start int) ([]string, int, error) {
	var path []string
	seg := start
	for i := start; i < len(desc); i++ {
		switch desc[i] {
		case '.', '[':
			return nil, i, descriptorError(desc, i, "%q not allowed in class name", desc[i])
		case '/', ';':
			if i == seg {
				return nil, i, descriptorError(desc, i, "empty class name segment")
			}
			path = append(path, desc[seg:i])
			seg = i + 1
			if desc[i] == ';' {
				return path, i + 1, nil
			}
		}
	}
	return nil, len(desc), descriptorError(desc, len(desc), "missing ';'")
}

func descriptorError(desc string, pos int, format string, args ...any) *Error {
	e := newError(InvalidDescriptor, pos, format, args...)
	e.Detail = fmt.Sprintf("%q: %s", desc, e.Detail)
	return e
}

func InternalToSourceName(name string) string {
	return strings.ReplaceAll(name, "/", ".")
}

func SourceToInternalName(name string) string {
	return strings.ReplaceAll(name, ".", "/")
}
