package format

import (
	"encoding"
	"fmt"
	"strings"

	"github.com/dhamidi/classpool/classfile"
)

// Section selects what an encoder writes.
type Section uint8

const (
	Header Section = 1 << iota
	Pool

	All = Header | Pool
)

type Encoder interface {
	encoding.TextMarshaler
	Encode(cf *classfile.ClassFile) error
}

func classKind(cf *classfile.ClassFile) string {
	switch {
	case cf.IsAnnotation():
		return "annotation"
	case cf.IsEnum():
		return "enum"
	case cf.IsInterface():
		return "interface"
	case cf.IsModule():
		return "module"
	default:
		return "class"
	}
}

// entryRefs lists the constant pool indices an entry points at.
func entryRefs(entry classfile.ConstantPoolEntry) []uint16 {
	switch e := entry.(type) {
	case *classfile.ConstantClassInfo:
		return []uint16{e.NameIndex}
	case *classfile.ConstantStringInfo:
		return []uint16{e.StringIndex}
	case *classfile.ConstantMethodTypeInfo:
		return []uint16{e.DescriptorIndex}
	case *classfile.ConstantFieldrefInfo:
		return []uint16{e.ClassIndex, e.NameAndTypeIndex}
	case *classfile.ConstantMethodrefInfo:
		return []uint16{e.ClassIndex, e.NameAndTypeIndex}
	case *classfile.ConstantInterfaceMethodrefInfo:
		return []uint16{e.ClassIndex, e.NameAndTypeIndex}
	case *classfile.ConstantNameAndTypeInfo:
		return []uint16{e.NameIndex, e.DescriptorIndex}
	case *classfile.ConstantMethodHandleInfo:
		return []uint16{e.ReferenceIndex}
	case *classfile.ConstantInvokeDynamicInfo:
		return []uint16{e.NameAndTypeIndex}
	default:
		return nil
	}
}

func refsStr(refs []uint16) string {
	if len(refs) == 0 {
		return "-"
	}
	parts := make([]string, len(refs))
	for i, r := range refs {
		parts[i] = fmt.Sprintf("#%d", r)
	}
	return strings.Join(parts, ",")
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
