package classfile

import (
	"fmt"
	"os"
)

// ClassFile is the decoded head of a class file: everything up to and
// including the interfaces table. Rest is the offset of fields_count, where
// the remaining sections start.
type ClassFile struct {
	MinorVersion     uint16
	MajorVersion     uint16
	ConstantPool     ConstantPool
	ConstantPoolSize int
	AccessFlags      AccessFlags
	ThisClass        uint16
	SuperClass       uint16
	Interfaces       []uint16
	Rest             int
}

func ParseFile(path string) (*ClassFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read class file: %w", err)
	}
	return Parse(data)
}

func Parse(data []byte) (*ClassFile, error) {
	c := NewCursor(data)

	b, err := c.Take(4)
	if err != nil {
		return nil, fmt.Errorf("failed to read magic: %w", err)
	}
	if magic := U32(b); magic != Magic {
		return nil, fmt.Errorf("invalid magic number: 0x%X (expected 0xCAFEBABE)", magic)
	}

	cf := &ClassFile{}
	if cf.MinorVersion, err = c.ReadU2(); err != nil {
		return nil, fmt.Errorf("failed to read version: %w", err)
	}
	if cf.MajorVersion, err = c.ReadU2(); err != nil {
		return nil, fmt.Errorf("failed to read version: %w", err)
	}

	poolStart := c.Offset()
	count, err := c.ReadU2()
	if err != nil {
		return nil, fmt.Errorf("failed to read constant pool count: %w", err)
	}
	if cf.ConstantPool, err = readConstantPool(c, count); err != nil {
		return nil, fmt.Errorf("failed to read constant pool: %w", err)
	}
	cf.ConstantPoolSize = c.Offset() - poolStart

	flags, err := c.ReadU2()
	if err != nil {
		return nil, fmt.Errorf("failed to read access flags: %w", err)
	}
	cf.AccessFlags = AccessFlags(flags)

	if cf.ThisClass, err = c.ReadU2(); err != nil {
		return nil, fmt.Errorf("failed to read this_class: %w", err)
	}
	if _, err := cf.ConstantPool.expect(cf.ThisClass, ConstantClass); err != nil {
		return nil, fmt.Errorf("invalid this_class: %w", err)
	}

	if cf.SuperClass, err = c.ReadU2(); err != nil {
		return nil, fmt.Errorf("failed to read super_class: %w", err)
	}
	if cf.SuperClass != 0 {
		if _, err := cf.ConstantPool.expect(cf.SuperClass, ConstantClass); err != nil {
			return nil, fmt.Errorf("invalid super_class: %w", err)
		}
	}

	interfacesCount, err := c.ReadU2()
	if err != nil {
		return nil, fmt.Errorf("failed to read interfaces count: %w", err)
	}
	cf.Interfaces = make([]uint16, interfacesCount)
	for i := range cf.Interfaces {
		if cf.Interfaces[i], err = c.ReadU2(); err != nil {
			return nil, fmt.Errorf("failed to read interface %d: %w", i, err)
		}
		if _, err := cf.ConstantPool.expect(cf.Interfaces[i], ConstantClass); err != nil {
			return nil, fmt.Errorf("invalid interface %d: %w", i, err)
		}
	}

	cf.Rest = c.Offset()
	return cf, nil
}

func (cf *ClassFile) ClassName() string {
	name, _ := cf.ConstantPool.ClassName(cf.ThisClass)
	return name
}

func (cf *ClassFile) SuperClassName() string {
	if cf.SuperClass == 0 {
		return ""
	}
	name, _ := cf.ConstantPool.ClassName(cf.SuperClass)
	return name
}

func (cf *ClassFile) InterfaceNames() []string {
	names := make([]string, len(cf.Interfaces))
	for i, idx := range cf.Interfaces {
		names[i], _ = cf.ConstantPool.ClassName(idx)
	}
	return names
}

func (cf *ClassFile) IsClass() bool {
	return !cf.AccessFlags.IsInterface() && !cf.AccessFlags.IsModule()
}

func (cf *ClassFile) IsInterface() bool {
	return cf.AccessFlags.IsInterface() && !cf.AccessFlags.IsAnnotation()
}

func (cf *ClassFile) IsAnnotation() bool {
	return cf.AccessFlags.IsAnnotation()
}

func (cf *ClassFile) IsEnum() bool {
	return cf.AccessFlags.IsEnum()
}

func (cf *ClassFile) IsModule() bool {
	return cf.AccessFlags.IsModule()
}
