package apdu

import "fmt"

// Command is one decoded APDU frame: class byte, instruction byte, two
// parameter bytes, a length byte Lc, and Lc data bytes.
type Command struct {
	Class byte
	Ins   byte
	P1    byte
	P2    byte
	Data  []byte
}

// ParseCommand decodes a raw APDU frame. It only validates that the frame
// is well-formed (long enough, Lc matches the trailing data); class and
// instruction legality are dispatcher concerns, not framing concerns.
func ParseCommand(frame []byte) (Command, error) {
	if len(frame) < 5 {
		return Command{}, fmt.Errorf("apdu: frame too short (%d bytes)", len(frame))
	}
	lc := int(frame[4])
	data := frame[5:]
	if len(data) != lc {
		return Command{}, fmt.Errorf("apdu: Lc mismatch (declared %d, have %d)", lc, len(data))
	}
	return Command{
		Class: frame[0],
		Ins:   frame[1],
		P1:    frame[2],
		P2:    frame[3],
		Data:  data,
	}, nil
}
