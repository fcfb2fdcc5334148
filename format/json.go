package format

import (
	"encoding/json"
	"io"

	"github.com/dhamidi/classpool/classfile"
)

type JSONEncoder struct {
	w        io.Writer
	sections Section
	class    *classfile.ClassFile
}

func NewJSONEncoder(w io.Writer, sections Section) *JSONEncoder {
	return &JSONEncoder{w: w, sections: sections}
}

func (e *JSONEncoder) Encode(cf *classfile.ClassFile) error {
	e.class = cf
	text, err := e.MarshalText()
	if err != nil {
		return err
	}
	text = append(text, '\n')
	_, err = e.w.Write(text)
	return err
}

func (e *JSONEncoder) MarshalText() ([]byte, error) {
	return json.MarshalIndent(e.buildClassData(), "", "  ")
}

type jsonClass struct {
	Name             string       `json:"name,omitempty"`
	Kind             string       `json:"kind,omitempty"`
	SuperClass       string       `json:"superClass,omitempty"`
	Interfaces       []string     `json:"interfaces,omitempty"`
	AccessFlags      []string     `json:"accessFlags,omitempty"`
	Version          *jsonVersion `json:"version,omitempty"`
	ConstantPoolSize int          `json:"constantPoolSize,omitempty"`
	Rest             int          `json:"rest,omitempty"`
	ConstantPool     []jsonEntry  `json:"constantPool,omitempty"`
}

type jsonVersion struct {
	Major uint16 `json:"major"`
	Minor uint16 `json:"minor"`
}

type jsonEntry struct {
	Index uint16   `json:"index"`
	Tag   string   `json:"tag"`
	Refs  []uint16 `json:"refs,omitempty"`
	Value string   `json:"value"`
}

func (e *JSONEncoder) buildClassData() jsonClass {
	cf := e.class
	var data jsonClass

	if e.sections&Header != 0 {
		data.Name = cf.ClassName()
		data.Kind = classKind(cf)
		data.SuperClass = cf.SuperClassName()
		data.Interfaces = cf.InterfaceNames()
		data.AccessFlags = cf.AccessFlags.Names()
		data.Version = &jsonVersion{
			Major: cf.MajorVersion,
			Minor: cf.MinorVersion,
		}
		data.ConstantPoolSize = cf.ConstantPoolSize
		data.Rest = cf.Rest
	}

	if e.sections&Pool != 0 {
		data.ConstantPool = e.buildEntries()
	}
	return data
}

func (e *JSONEncoder) buildEntries() []jsonEntry {
	cp := e.class.ConstantPool
	result := make([]jsonEntry, 0, cp.Len())
	for i, entry := range cp {
		if entry == nil {
			continue
		}
		index := uint16(i + 1)
		result = append(result, jsonEntry{
			Index: index,
			Tag:   entry.Tag().String(),
			Refs:  entryRefs(entry),
			Value: cp.Describe(index),
		})
	}
	return result
}
