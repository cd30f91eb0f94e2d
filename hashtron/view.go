package hashtron

import "bytes"
import "errors"
import "strconv"

// isNameChar reports whether c can appear in a Go identifier suffix
func isNameChar(c rune) bool {
	return ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z') || ('0' <= c && c <= '9') || (c == '_')
}

// BytesBuffer serializes hashtron into a golang code program named program<name>
func (h Hashtron) BytesBuffer(name string) (b *bytes.Buffer, err error) {
	for _, v := range name {
		if !isNameChar(v) {
			return nil, errors.New("name is invalid")
		}
	}
	b = new(bytes.Buffer)
	b.WriteString("var program" + name + "Bits byte = " + strconv.Itoa(int(h.bits)) + "\n")
	b.WriteString("var program" + name + " = [][2]uint32{\n")
	for _, v := range h.program {
		b.WriteString("\t{" + strconv.FormatUint(uint64(v[0]), 10) + "," + strconv.FormatUint(uint64(v[1]), 10) + "},\n")
	}
	b.WriteString("}\n")
	return
}
