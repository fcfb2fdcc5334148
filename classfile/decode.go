package classfile

import (
	"errors"
	"fmt"
	"io"
)

// ReadConstantPool decodes a constant pool region: the u2
// constant_pool_count followed by its entries. It returns the resolved pool
// and the number of bytes consumed, so the caller can continue with the
// access flags that follow.
func ReadConstantPool(data []byte) (ConstantPool, int, error) {
	c := NewCursor(data)
	count, err := c.ReadU2()
	if err != nil {
		return nil, 0, err
	}
	cp, err := readConstantPool(c, count)
	if err != nil {
		return nil, 0, err
	}
	return cp, c.Offset(), nil
}

// DecodeConstantPool decodes count-1 entries from data, which must begin
// at the first entry's tag byte. The returned byte count covers the
// entries only.
func DecodeConstantPool(data []byte, count uint16) (ConstantPool, int, error) {
	c := NewCursor(data)
	cp, err := readConstantPool(c, count)
	if err != nil {
		return nil, 0, err
	}
	return cp, c.Offset(), nil
}

func readConstantPool(c *Cursor, count uint16) (ConstantPool, error) {
	if count == 0 {
		return ConstantPool{}, nil
	}

	cp := make(ConstantPool, count-1)
	for i := 1; i < int(count); i++ {
		entry, err := ReadEntry(c)
		if errors.Is(err, io.EOF) {
			return nil, &Error{
				Kind:   Truncated,
				Index:  uint16(i),
				Offset: c.Offset(),
				Detail: fmt.Sprintf("pool declares %d entries, input ended after %d", count-1, i-1),
			}
		}
		if err != nil {
			var e *Error
			if errors.As(err, &e) {
				e.Index = uint16(i)
			}
			return nil, err
		}
		cp[i-1] = entry
		if tag := entry.Tag(); tag == ConstantLong || tag == ConstantDouble {
			i++
		}
	}

	if err := cp.Resolve(); err != nil {
		return nil, err
	}
	return cp, nil
}

// ReadEntry decodes one tagged entry. It returns io.EOF when the cursor is
// exhausted exactly at the tag byte; any other shortfall is Truncated.
func ReadEntry(c *Cursor) (ConstantPoolEntry, error) {
	start := c.Offset()
	b, err := c.ReadU1()
	if err != nil {
		return nil, err
	}
	tag := ConstantTag(b)

	if tag == ConstantUtf8 {
		return readUtf8(c)
	}

	width := payloadWidth(tag)
	if width == 0 {
		return nil, &Error{
			Kind:   UnknownTag,
			Offset: start,
			Tag:    tag,
			Detail: fmt.Sprintf("tag byte %d", b),
		}
	}

	p, err := c.Take(width)
	if err != nil {
		return nil, tagged(err, tag)
	}
	return decodeFixed(tag, p), nil
}

// payloadWidth is the number of bytes following the tag byte, or 0 for an
// unknown tag. Utf8 entries are length-prefixed and handled separately.
func payloadWidth(tag ConstantTag) int {
	switch tag {
	case ConstantClass, ConstantString, ConstantMethodType:
		return 2
	case ConstantMethodHandle:
		return 3
	case ConstantInteger, ConstantFloat,
		ConstantFieldref, ConstantMethodref, ConstantInterfaceMethodref,
		ConstantNameAndType, ConstantInvokeDynamic:
		return 4
	case ConstantLong, ConstantDouble:
		return 8
	default:
		return 0
	}
}

func decodeFixed(tag ConstantTag, p []byte) ConstantPoolEntry {
	switch tag {
	case ConstantInteger:
		return &ConstantIntegerInfo{Value: I32(p)}
	case ConstantFloat:
		return &ConstantFloatInfo{Value: F32(p)}
	case ConstantLong:
		return &ConstantLongInfo{Value: I64(p)}
	case ConstantDouble:
		return &ConstantDoubleInfo{Value: F64(p)}
	case ConstantClass:
		return &ConstantClassInfo{NameIndex: U16(p)}
	case ConstantString:
		return &ConstantStringInfo{StringIndex: U16(p)}
	case ConstantFieldref:
		return &ConstantFieldrefInfo{
			ClassIndex:       U16(p[0:2]),
			NameAndTypeIndex: U16(p[2:4]),
		}
	case ConstantMethodref:
		return &ConstantMethodrefInfo{
			ClassIndex:       U16(p[0:2]),
			NameAndTypeIndex: U16(p[2:4]),
		}
	case ConstantInterfaceMethodref:
		return &ConstantInterfaceMethodrefInfo{
			ClassIndex:       U16(p[0:2]),
			NameAndTypeIndex: U16(p[2:4]),
		}
	case ConstantNameAndType:
		return &ConstantNameAndTypeInfo{
			NameIndex:       U16(p[0:2]),
			DescriptorIndex: U16(p[2:4]),
		}
	case ConstantMethodHandle:
		return &ConstantMethodHandleInfo{
			ReferenceKind:  MethodHandleKind(p[0]),
			ReferenceIndex: U16(p[1:3]),
		}
	case ConstantMethodType:
		return &ConstantMethodTypeInfo{DescriptorIndex: U16(p)}
	case ConstantInvokeDynamic:
		return &ConstantInvokeDynamicInfo{
			BootstrapMethodAttrIndex: U16(p[0:2]),
			NameAndTypeIndex:         U16(p[2:4]),
		}
	default:
		panic(fmt.Sprintf("classfile: no fixed-width layout for %s", tag))
	}
}

func readUtf8(c *Cursor) (ConstantPoolEntry, error) {
	length, err := c.ReadU2()
	if err != nil {
		return nil, tagged(err, ConstantUtf8)
	}
	start := c.Offset()
	raw, err := c.Take(int(length))
	if err != nil {
		return nil, tagged(err, ConstantUtf8)
	}
	s, err := DecodeModifiedUTF8(raw)
	if err != nil {
		var e *Error
		if errors.As(err, &e) {
			e.Offset += start
		}
		return nil, tagged(err, ConstantUtf8)
	}
	return &ConstantUtf8Info{Value: s}, nil
}

func tagged(err error, tag ConstantTag) error {
	var e *Error
	if errors.As(err, &e) {
		e.Tag = tag
	}
	return err
}
