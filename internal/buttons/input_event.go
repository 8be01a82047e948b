package buttons

import "encoding/binary"

const (
	evKey = 0x01

	keyPressed = 1
)

// inputEventSize is the size of one input_event record for a timeval of tvSize bytes.
// input_event = timeval + u16 type + u16 code + s32 value.
func inputEventSize(tvSize int) int { return tvSize + 2 + 2 + 4 }

// pressedKeys decodes a read buffer of input_event records and returns the
// codes of keys that went down. Trailing partial records are ignored.
func pressedKeys(buf []byte, tvSize int) []uint16 {
	size := inputEventSize(tvSize)
	var keys []uint16
	for off := 0; off+size <= len(buf); off += size {
		rec := buf[off : off+size]
		typ := binary.LittleEndian.Uint16(rec[tvSize : tvSize+2])
		code := binary.LittleEndian.Uint16(rec[tvSize+2 : tvSize+4])
		value := int32(binary.LittleEndian.Uint32(rec[tvSize+4 : tvSize+8]))
		if typ == evKey && value == keyPressed {
			keys = append(keys, code)
		}
	}
	return keys
}
