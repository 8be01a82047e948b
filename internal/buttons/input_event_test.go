package buttons

import (
	"encoding/binary"
	"testing"
)

func record(tvSize int, typ, code uint16, value int32) []byte {
	rec := make([]byte, inputEventSize(tvSize))
	binary.LittleEndian.PutUint16(rec[tvSize:], typ)
	binary.LittleEndian.PutUint16(rec[tvSize+2:], code)
	binary.LittleEndian.PutUint32(rec[tvSize+4:], uint32(value))
	return rec
}

func TestPressedKeys(t *testing.T) {
	for _, tvSize := range []int{8, 16} {
		var buf []byte
		buf = append(buf, record(tvSize, evKey, KeyF5, 1)...)
		// release, autorepeat, EV_SYN and EV_MSC are ignored
		buf = append(buf, record(tvSize, evKey, KeyF5, 0)...)
		buf = append(buf, record(tvSize, evKey, KeyF6, 2)...)
		buf = append(buf, record(tvSize, 0x00, 0, 0)...)
		buf = append(buf, record(tvSize, 0x04, KeyF4, 1)...)
		buf = append(buf, record(tvSize, evKey, KeyF4, 1)...)
		// trailing partial record
		buf = append(buf, record(tvSize, evKey, KeyF7, 1)[:5]...)

		got := pressedKeys(buf, tvSize)
		if len(got) != 2 || got[0] != KeyF5 || got[1] != KeyF4 {
			t.Errorf("tv=%d: pressedKeys = %v, want [F5 F4]", tvSize, got)
		}
	}
}

func TestPressedKeys_Empty(t *testing.T) {
	if got := pressedKeys(nil, 16); got != nil {
		t.Errorf("pressedKeys(nil) = %v", got)
	}
}

func TestDefaultKeyMap(t *testing.T) {
	keys := DefaultKeyMap()
	want := map[uint16]Event{KeyF4: Exit, KeyF5: ToggleMotion, KeyF6: ToggleDevice, KeyF7: ToggleHUD}
	if len(keys) != len(want) {
		t.Fatalf("key map has %d entries, want %d", len(keys), len(want))
	}
	for code, ev := range want {
		if keys[code] != ev {
			t.Errorf("key %d = %q, want %q", code, keys[code], ev)
		}
	}
}
