package classfile

import (
	"fmt"
	"strconv"
	"strings"
)

type ConstantPoolEntry interface {
	Tag() ConstantTag
}

type ConstantUtf8Info struct {
	Value string
}

func (c *ConstantUtf8Info) Tag() ConstantTag { return ConstantUtf8 }

type ConstantIntegerInfo struct {
	Value int32
}

func (c *ConstantIntegerInfo) Tag() ConstantTag { return ConstantInteger }

type ConstantFloatInfo struct {
	Value float32
}

func (c *ConstantFloatInfo) Tag() ConstantTag { return ConstantFloat }

type ConstantLongInfo struct {
	Value int64
}

func (c *ConstantLongInfo) Tag() ConstantTag { return ConstantLong }

type ConstantDoubleInfo struct {
	Value float64
}

func (c *ConstantDoubleInfo) Tag() ConstantTag { return ConstantDouble }

type ConstantClassInfo struct {
	NameIndex uint16
}

func (c *ConstantClassInfo) Tag() ConstantTag { return ConstantClass }

type ConstantStringInfo struct {
	StringIndex uint16
}

func (c *ConstantStringInfo) Tag() ConstantTag { return ConstantString }

type ConstantFieldrefInfo struct {
	ClassIndex       uint16
	NameAndTypeIndex uint16
}

func (c *ConstantFieldrefInfo) Tag() ConstantTag { return ConstantFieldref }

type ConstantMethodrefInfo struct {
	ClassIndex       uint16
	NameAndTypeIndex uint16
}

func (c *ConstantMethodrefInfo) Tag() ConstantTag { return ConstantMethodref }

type ConstantInterfaceMethodrefInfo struct {
	ClassIndex       uint16
	NameAndTypeIndex uint16
}

func (c *ConstantInterfaceMethodrefInfo) Tag() ConstantTag { return ConstantInterfaceMethodref }

type ConstantNameAndTypeInfo struct {
	NameIndex       uint16
	DescriptorIndex uint16
}

func (c *ConstantNameAndTypeInfo) Tag() ConstantTag { return ConstantNameAndType }

type ConstantMethodHandleInfo struct {
	ReferenceKind  MethodHandleKind
	ReferenceIndex uint16
}

func (c *ConstantMethodHandleInfo) Tag() ConstantTag { return ConstantMethodHandle }

type ConstantMethodTypeInfo struct {
	DescriptorIndex uint16
}

func (c *ConstantMethodTypeInfo) Tag() ConstantTag { return ConstantMethodType }

type ConstantInvokeDynamicInfo struct {
	BootstrapMethodAttrIndex uint16
	NameAndTypeIndex         uint16
}

func (c *ConstantInvokeDynamicInfo) Tag() ConstantTag { return ConstantInvokeDynamic }

// memberRef is implemented by the three member reference entries.
type memberRef interface {
	ConstantPoolEntry
	refs() (classIndex, nameAndTypeIndex uint16)
}

func (c *ConstantFieldrefInfo) refs() (uint16, uint16)  { return c.ClassIndex, c.NameAndTypeIndex }
func (c *ConstantMethodrefInfo) refs() (uint16, uint16) { return c.ClassIndex, c.NameAndTypeIndex }
func (c *ConstantInterfaceMethodrefInfo) refs() (uint16, uint16) {
	return c.ClassIndex, c.NameAndTypeIndex
}

// ConstantPool holds entries in file order. Slot i of the slice is constant
// pool index i+1; the slot following a Long or Double is nil.
type ConstantPool []ConstantPoolEntry

// Entry returns the entry at a 1-based constant pool index.
func (cp ConstantPool) Entry(index uint16) (ConstantPoolEntry, error) {
	if index == 0 || int(index) > len(cp) {
		return nil, refError(DanglingReference, index, "index %d outside 1..%d", index, len(cp))
	}
	entry := cp[index-1]
	if entry == nil {
		return nil, refError(DanglingReference, index, "index %d is the unusable slot after a Long or Double", index)
	}
	return entry, nil
}

func (cp ConstantPool) expect(index uint16, tags ...ConstantTag) (ConstantPoolEntry, error) {
	entry, err := cp.Entry(index)
	if err != nil {
		return nil, err
	}
	for _, tag := range tags {
		if entry.Tag() == tag {
			return entry, nil
		}
	}
	return nil, refError(TypeMismatch, index, "index %d is %s, want %s", index, entry.Tag(), tagList(tags))
}

func tagList(tags []ConstantTag) string {
	names := make([]string, len(tags))
	for i, t := range tags {
		names[i] = t.String()
	}
	return strings.Join(names, " or ")
}

func (cp ConstantPool) Utf8(index uint16) (string, error) {
	entry, err := cp.expect(index, ConstantUtf8)
	if err != nil {
		return "", err
	}
	return entry.(*ConstantUtf8Info).Value, nil
}

// ClassName returns the internal (slash separated) name of a Class entry.
func (cp ConstantPool) ClassName(index uint16) (string, error) {
	entry, err := cp.expect(index, ConstantClass)
	if err != nil {
		return "", err
	}
	return cp.Utf8(entry.(*ConstantClassInfo).NameIndex)
}

func (cp ConstantPool) NameAndType(index uint16) (name, descriptor string, err error) {
	entry, err := cp.expect(index, ConstantNameAndType)
	if err != nil {
		return "", "", err
	}
	nt := entry.(*ConstantNameAndTypeInfo)
	if name, err = cp.Utf8(nt.NameIndex); err != nil {
		return "", "", err
	}
	if descriptor, err = cp.Utf8(nt.DescriptorIndex); err != nil {
		return "", "", err
	}
	return name, descriptor, nil
}

// StringConstant returns the text of a String entry.
func (cp ConstantPool) StringConstant(index uint16) (string, error) {
	entry, err := cp.expect(index, ConstantString)
	if err != nil {
		return "", err
	}
	return cp.Utf8(entry.(*ConstantStringInfo).StringIndex)
}

// MemberRef resolves a Fieldref, Methodref or InterfaceMethodref entry.
func (cp ConstantPool) MemberRef(index uint16) (className, name, descriptor string, err error) {
	entry, err := cp.expect(index, ConstantFieldref, ConstantMethodref, ConstantInterfaceMethodref)
	if err != nil {
		return "", "", "", err
	}
	classIndex, natIndex := entry.(memberRef).refs()
	if className, err = cp.ClassName(classIndex); err != nil {
		return "", "", "", err
	}
	if name, descriptor, err = cp.NameAndType(natIndex); err != nil {
		return "", "", "", err
	}
	return className, name, descriptor, nil
}

// Resolve checks that every index held by an entry points at an entry of
// the variant the format requires. The first violation is returned with
// Index set to the referring entry and Ref to the slot it pointed at.
func (cp ConstantPool) Resolve() error {
	for i, entry := range cp {
		if entry == nil {
			continue
		}
		if err := cp.resolveEntry(entry); err != nil {
			if e, ok := err.(*Error); ok {
				e.Index = uint16(i + 1)
				e.Tag = entry.Tag()
			}
			return err
		}
	}
	return nil
}

func (cp ConstantPool) resolveEntry(entry ConstantPoolEntry) error {
	switch e := entry.(type) {
	case *ConstantUtf8Info, *ConstantIntegerInfo, *ConstantFloatInfo, *ConstantLongInfo, *ConstantDoubleInfo:
		return nil
	case *ConstantClassInfo:
		_, err := cp.expect(e.NameIndex, ConstantUtf8)
		return err
	case *ConstantStringInfo:
		_, err := cp.expect(e.StringIndex, ConstantUtf8)
		return err
	case *ConstantMethodTypeInfo:
		_, err := cp.expect(e.DescriptorIndex, ConstantUtf8)
		return err
	case *ConstantFieldrefInfo, *ConstantMethodrefInfo, *ConstantInterfaceMethodrefInfo:
		classIndex, natIndex := e.(memberRef).refs()
		if _, err := cp.expect(classIndex, ConstantClass); err != nil {
			return err
		}
		_, err := cp.expect(natIndex, ConstantNameAndType)
		return err
	case *ConstantNameAndTypeInfo:
		if _, err := cp.expect(e.NameIndex, ConstantUtf8); err != nil {
			return err
		}
		_, err := cp.expect(e.DescriptorIndex, ConstantUtf8)
		return err
	case *ConstantMethodHandleInfo:
		targets := e.ReferenceKind.targets()
		if targets == nil {
			return refError(TypeMismatch, e.ReferenceIndex, "reference kind %d outside 1..9", uint8(e.ReferenceKind))
		}
		_, err := cp.expect(e.ReferenceIndex, targets...)
		return err
	case *ConstantInvokeDynamicInfo:
		_, err := cp.expect(e.NameAndTypeIndex, ConstantNameAndType)
		return err
	default:
		return fmt.Errorf("unexpected constant pool entry %T", entry)
	}
}

// Describe renders the entry at index symbolically, following references.
// It is meant for resolved pools; unresolvable references print as #n.
func (cp ConstantPool) Describe(index uint16) string {
	entry, err := cp.Entry(index)
	if err != nil {
		return fmt.Sprintf("#%d", index)
	}

	switch e := entry.(type) {
	case *ConstantUtf8Info:
		return strconv.Quote(e.Value)
	case *ConstantIntegerInfo:
		return strconv.FormatInt(int64(e.Value), 10)
	case *ConstantFloatInfo:
		return strconv.FormatFloat(float64(e.Value), 'g', -1, 32) + "f"
	case *ConstantLongInfo:
		return strconv.FormatInt(e.Value, 10) + "L"
	case *ConstantDoubleInfo:
		return strconv.FormatFloat(e.Value, 'g', -1, 64) + "d"
	case *ConstantClassInfo:
		return cp.utf8Or(e.NameIndex)
	case *ConstantStringInfo:
		return cp.Describe(e.StringIndex)
	case *ConstantFieldrefInfo, *ConstantMethodrefInfo, *ConstantInterfaceMethodrefInfo:
		className, name, descriptor, err := cp.MemberRef(index)
		if err != nil {
			return fmt.Sprintf("#%d", index)
		}
		return className + "." + name + ":" + descriptor
	case *ConstantNameAndTypeInfo:
		return cp.utf8Or(e.NameIndex) + ":" + cp.utf8Or(e.DescriptorIndex)
	case *ConstantMethodHandleInfo:
		return e.ReferenceKind.String() + " " + cp.Describe(e.ReferenceIndex)
	case *ConstantMethodTypeInfo:
		return cp.utf8Or(e.DescriptorIndex)
	case *ConstantInvokeDynamicInfo:
		return fmt.Sprintf("#%d:%s", e.BootstrapMethodAttrIndex, cp.Describe(e.NameAndTypeIndex))
	default:
		return fmt.Sprintf("#%d", index)
	}
}

func (cp ConstantPool) utf8Or(index uint16) string {
	s, err := cp.Utf8(index)
	if err != nil {
		return fmt.Sprintf("#%d", index)
	}
	return s
}

// Len is the number of usable slots, i.e. constant_pool_count - 1.
func (cp ConstantPool) Len() int { return len(cp) }
