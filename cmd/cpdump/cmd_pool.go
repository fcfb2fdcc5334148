package main

import (
	"fmt"
	"io"
	"os"

	"github.com/dhamidi/classpool/classfile"
	"github.com/dhamidi/classpool/format"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

func newPoolCmd() *cobra.Command {
	var outputFormat string

	cmd := &cobra.Command{
		Use:   "pool <file.class>",
		Short: "Print every constant pool entry of a class file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return dumpClass(cmd.OutOrStdout(), args[0], outputFormat, format.Pool)
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "format", "f", "line", "output format (line, json)")

	return cmd
}

func newClassCmd() *cobra.Command {
	var (
		outputFormat string
		withPool     bool
	)

	cmd := &cobra.Command{
		Use:   "class <file.class>",
		Short: "Print the class file header: version, flags, names and sizes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sections := format.Header
			if withPool {
				sections = format.All
			}
			return dumpClass(cmd.OutOrStdout(), args[0], outputFormat, sections)
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "format", "f", "line", "output format (line, json)")
	cmd.Flags().BoolVarP(&withPool, "pool", "p", false, "include the constant pool")

	return cmd
}

func dumpClass(w io.Writer, path, outputFormat string, sections format.Section) error {
	log.Debugf("decoding %s", path)
	cf, err := classfile.ParseFile(path)
	if err != nil {
		return fmt.Errorf("parse class file: %w", err)
	}
	log.Infof("%s: %d constant pool slots, %d bytes", path, cf.ConstantPool.Len(), cf.ConstantPoolSize)

	var encoder format.Encoder
	switch outputFormat {
	case "line":
		enc := format.NewLineEncoder(w, sections)
		enc.Styled = w == os.Stdout && term.IsTerminal(int(os.Stdout.Fd()))
		encoder = enc
	case "json":
		encoder = format.NewJSONEncoder(w, sections)
	default:
		return fmt.Errorf("unknown format: %s (expected line or json)", outputFormat)
	}

	if err := encoder.Encode(cf); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}
