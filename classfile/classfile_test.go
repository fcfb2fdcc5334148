package classfile

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

// testClass is the head of "public class Greeter extends Object
// implements Runnable", followed by three zero counts.
func testClass(thisClass uint16) []byte {
	return cat(
		[]byte{0xCA, 0xFE, 0xBA, 0xBE},
		u2(0), u2(52),
		pool(7,
			utf8Entry("Greeter"),            // 1
			ref1(ConstantClass, 1),          // 2
			utf8Entry("java/lang/Object"),   // 3
			ref1(ConstantClass, 3),          // 4
			utf8Entry("java/lang/Runnable"), // 5
			ref1(ConstantClass, 5),          // 6
		),
		u2(uint16(AccPublic|AccSuper)),
		u2(thisClass), u2(4),
		u2(1), u2(6),
		u2(0), u2(0), u2(0),
	)
}

func TestParse(t *testing.T) {
	data := testClass(2)
	cf, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}

	t.Run("version", func(t *testing.T) {
		if cf.MajorVersion != 52 || cf.MinorVersion != 0 {
			t.Errorf("version = %d.%d, want 52.0", cf.MajorVersion, cf.MinorVersion)
		}
	})

	t.Run("names", func(t *testing.T) {
		if got := cf.ClassName(); got != "Greeter" {
			t.Errorf("ClassName() = %q, want %q", got, "Greeter")
		}
		if got := cf.SuperClassName(); got != "java/lang/Object" {
			t.Errorf("SuperClassName() = %q", got)
		}
		interfaces := cf.InterfaceNames()
		if len(interfaces) != 1 || interfaces[0] != "java/lang/Runnable" {
			t.Errorf("InterfaceNames() = %v", interfaces)
		}
	})

	t.Run("access flags", func(t *testing.T) {
		if !cf.AccessFlags.IsPublic() || !cf.AccessFlags.IsSuper() {
			t.Errorf("AccessFlags = %#x", cf.AccessFlags)
		}
		if !cf.IsClass() || cf.IsInterface() || cf.IsEnum() {
			t.Error("expected a plain class")
		}
		names := cf.AccessFlags.Names()
		if len(names) != 2 || names[0] != "public" || names[1] != "super" {
			t.Errorf("Names() = %v", names)
		}
	})

	t.Run("offsets", func(t *testing.T) {
		if cf.Rest != len(data)-6 {
			t.Errorf("Rest = %d, want %d", cf.Rest, len(data)-6)
		}
		if cf.ConstantPoolSize != cf.Rest-8-8-2 {
			t.Errorf("ConstantPoolSize = %d", cf.ConstantPoolSize)
		}
	})
}

func TestParseFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "Greeter.class")
	if err := os.WriteFile(path, testClass(2), 0o644); err != nil {
		t.Fatal(err)
	}
	cf, err := ParseFile(path)
	if err != nil {
		t.Fatalf("ParseFile error: %v", err)
	}
	if cf.ClassName() != "Greeter" {
		t.Errorf("ClassName() = %q", cf.ClassName())
	}

	if _, err := ParseFile(filepath.Join(t.TempDir(), "missing.class")); err == nil {
		t.Error("expected an error for a missing file")
	}
}

func TestParseErrors(t *testing.T) {
	t.Run("bad magic", func(t *testing.T) {
		data := testClass(2)
		data[0] = 0xCB
		if _, err := Parse(data); err == nil {
			t.Error("expected an error")
		}
	})

	t.Run("short header", func(t *testing.T) {
		if _, err := Parse([]byte{0xCA, 0xFE}); !errors.Is(err, ErrTruncated) {
			t.Errorf("error = %v, want truncated", err)
		}
	})

	t.Run("this_class is not a class", func(t *testing.T) {
		if _, err := Parse(testClass(1)); !errors.Is(err, ErrTypeMismatch) {
			t.Errorf("error = %v, want type mismatch", err)
		}
	})

	t.Run("this_class out of range", func(t *testing.T) {
		if _, err := Parse(testClass(40)); !errors.Is(err, ErrDanglingReference) {
			t.Errorf("error = %v, want dangling reference", err)
		}
	})

	t.Run("truncated pool", func(t *testing.T) {
		data := testClass(2)[:20]
		_, err := Parse(data)
		var e *Error
		if !errors.As(err, &e) || e.Kind != Truncated {
			t.Fatalf("error = %v, want truncated", err)
		}
		if e.Index != 2 {
			t.Errorf("Index = %d, want 2", e.Index)
		}
	})
}
