package format

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dhamidi/classpool/classfile"
)

var (
	indexStyle = lipgloss.NewStyle().Faint(true)
	tagStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Bold(true)
	keyStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
)

// LineEncoder writes tab separated records, one per line. With Styled set
// the first columns are colored for terminal output.
type LineEncoder struct {
	Styled bool

	w        io.Writer
	sections Section
	class    *classfile.ClassFile
}

func NewLineEncoder(w io.Writer, sections Section) *LineEncoder {
	return &LineEncoder{w: w, sections: sections}
}

func (e *LineEncoder) Encode(cf *classfile.ClassFile) error {
	e.class = cf
	text, err := e.MarshalText()
	if err != nil {
		return err
	}
	_, err = e.w.Write(text)
	return err
}

func (e *LineEncoder) MarshalText() ([]byte, error) {
	var sb strings.Builder
	cf := e.class

	if e.sections&Header != 0 {
		fmt.Fprintf(&sb, "%s\t%s\t%s\n", e.key(classKind(cf)), cf.ClassName(), orDash(strings.Join(cf.AccessFlags.Names(), ",")))
		fmt.Fprintf(&sb, "%s\t%d.%d\n", e.key("version"), cf.MajorVersion, cf.MinorVersion)
		fmt.Fprintf(&sb, "%s\t%s\n", e.key("super"), orDash(cf.SuperClassName()))
		for _, name := range cf.InterfaceNames() {
			fmt.Fprintf(&sb, "%s\t%s\n", e.key("interface"), name)
		}
		fmt.Fprintf(&sb, "%s\t%d\t%d\n", e.key("pool"), cf.ConstantPool.Len(), cf.ConstantPoolSize)
		fmt.Fprintf(&sb, "%s\t%d\n", e.key("rest"), cf.Rest)
	}

	if e.sections&Pool != 0 {
		cp := cf.ConstantPool
		for i, entry := range cp {
			if entry == nil {
				continue
			}
			index := uint16(i + 1)
			fmt.Fprintf(&sb, "%s\t%s\t%s\t%s\n",
				e.style(indexStyle, fmt.Sprintf("#%d", index)),
				e.style(tagStyle, entry.Tag().String()),
				refsStr(entryRefs(entry)),
				cp.Describe(index),
			)
		}
	}

	return []byte(sb.String()), nil
}

func (e *LineEncoder) key(s string) string {
	return e.style(keyStyle, s)
}

func (e *LineEncoder) style(st lipgloss.Style, s string) string {
	if !e.Styled {
		return s
	}
	return st.Render(s)
}
