package classfile

import "encoding/binary"

func u2(v uint16) []byte {
	return binary.BigEndian.AppendUint16(nil, v)
}

func cat(parts ...[]byte) []byte {
	var b []byte
	for _, p := range parts {
		b = append(b, p...)
	}
	return b
}

func utf8Entry(s string) []byte {
	return cat([]byte{byte(ConstantUtf8)}, u2(uint16(len(s))), []byte(s))
}

func ref1(tag ConstantTag, index uint16) []byte {
	return cat([]byte{byte(tag)}, u2(index))
}

func ref2(tag ConstantTag, a, b uint16) []byte {
	return cat([]byte{byte(tag)}, u2(a), u2(b))
}

func intEntry(v int32) []byte {
	return binary.BigEndian.AppendUint32([]byte{byte(ConstantInteger)}, uint32(v))
}

func longEntry(v int64) []byte {
	return binary.BigEndian.AppendUint64([]byte{byte(ConstantLong)}, uint64(v))
}

func methodHandle(kind MethodHandleKind, index uint16) []byte {
	return cat([]byte{byte(ConstantMethodHandle), byte(kind)}, u2(index))
}

// pool encodes constant_pool_count followed by the given entries.
func pool(count uint16, entries ...[]byte) []byte {
	return cat(u2(count), cat(entries...))
}

// objectInitPool is a small pool describing java/lang/Object.<init>:()V,
// with a Long occupying slots 7 and 8.
func objectInitPool() []byte {
	return pool(10,
		utf8Entry("java/lang/Object"),   // 1
		ref1(ConstantClass, 1),          // 2
		utf8Entry("<init>"),             // 3
		utf8Entry("()V"),                // 4
		ref2(ConstantNameAndType, 3, 4), // 5
		ref2(ConstantMethodref, 2, 5),   // 6
		longEntry(42),                   // 7, 8
		ref1(ConstantString, 1),         // 9
	)
}
