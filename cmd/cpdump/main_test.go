package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dhamidi/classpool/classfile"
	"github.com/dhamidi/classpool/format"
)

var greeterClass = []byte{
	0xCA, 0xFE, 0xBA, 0xBE,
	0x00, 0x00, 0x00, 0x34,
	0x00, 0x05,
	0x01, 0x00, 0x07, 'G', 'r', 'e', 'e', 't', 'e', 'r',
	0x07, 0x00, 0x01,
	0x01, 0x00, 0x01, 'O',
	0x07, 0x00, 0x03,
	0x00, 0x01,
	0x00, 0x02,
	0x00, 0x04,
	0x00, 0x00,
}

func writeClass(t *testing.T, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "Greeter.class")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestPoolCmd(t *testing.T) {
	path := writeClass(t, greeterClass)

	var out bytes.Buffer
	cmd := newPoolCmd()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{path})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("pool: %v", err)
	}
	if !strings.Contains(out.String(), "#2\tClass\t#1\tGreeter") {
		t.Errorf("output:\n%s", out.String())
	}
}

func TestClassCmdJSON(t *testing.T) {
	path := writeClass(t, greeterClass)

	var out bytes.Buffer
	cmd := newClassCmd()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--format", "json", path})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("class: %v", err)
	}

	var got map[string]any
	if err := json.Unmarshal(out.Bytes(), &got); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, out.String())
	}
	if got["name"] != "Greeter" || got["superClass"] != "O" {
		t.Errorf("got %v", got)
	}
	if _, ok := got["constantPool"]; ok {
		t.Error("constant pool included without --pool")
	}
}

func TestPoolCmdRejectsBrokenPool(t *testing.T) {
	data := append([]byte(nil), greeterClass...)
	// Point the Class entry at slot 2, which is itself a Class.
	data[22] = 0x02
	path := writeClass(t, data)

	cmd := newPoolCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{path})
	err := cmd.Execute()
	if !errors.Is(err, classfile.ErrTypeMismatch) {
		t.Errorf("error = %v, want type mismatch", err)
	}
}

func TestDumpClassUnknownFormat(t *testing.T) {
	path := writeClass(t, greeterClass)
	if err := dumpClass(&bytes.Buffer{}, path, "xml", format.Pool); err == nil {
		t.Error("expected an error for an unknown format")
	}
}

func TestDescriptorCmd(t *testing.T) {
	var out bytes.Buffer
	cmd := newDescriptorCmd()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"[[Ljava/lang/String;", "(IJ)V"})
	if err := cmd.Execute(); err != nil {
		t.Fatal(err)
	}
	want := "[[Ljava/lang/String;\tjava.lang.String[][]\n(IJ)V\t(int, long) void\n"
	if out.String() != want {
		t.Errorf("output = %q, want %q", out.String(), want)
	}

	cmd = newDescriptorCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{"Q"})
	if err := cmd.Execute(); !errors.Is(err, classfile.ErrInvalidDescriptor) {
		t.Errorf("error = %v, want invalid descriptor", err)
	}
}
