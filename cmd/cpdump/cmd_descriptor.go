package main

import (
	"fmt"
	"strings"

	"github.com/dhamidi/classpool/classfile"
	"github.com/spf13/cobra"
)

func newDescriptorCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "descriptor <descriptor>...",
		Short: "Parse field or method descriptors and print their Java form",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, desc := range args {
				source, err := describeDescriptor(desc)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", desc, source)
			}
			return nil
		},
	}
}

func describeDescriptor(desc string) (string, error) {
	if strings.HasPrefix(desc, "(") {
		md, err := classfile.ParseMethodDescriptor(desc)
		if err != nil {
			return "", err
		}
		return md.String(), nil
	}
	ft, err := classfile.ParseFieldDescriptor(desc)
	if err != nil {
		return "", err
	}
	return ft.String(), nil
}
