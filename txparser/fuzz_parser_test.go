package txparser

import "testing"

func FuzzConsume(f *testing.F) {
	f.Add(validTransferWire(1, 42, 1000, 21000, 1_000_000, fixedAddr(0x11), fixedAddr(0x22)))
	f.Add([]byte{0x00})
	f.Add([]byte{0x01, 0xFF})
	f.Fuzz(func(t *testing.T, b []byte) {
		var p Parser
		p.Init()
		n := p.Consume(b)
		if n < 0 || n > len(b) {
			t.Fatalf("consumed %d of %d bytes", n, len(b))
		}
		if p.IsDone() && p.HasError() {
			t.Fatalf("done and error are mutually exclusive")
		}
		if p.IsDone() && n != TransferSize {
			t.Fatalf("done after %d bytes, want exactly %d", n, TransferSize)
		}
		if n < len(b) && !p.IsDone() && !p.HasError() {
			t.Fatalf("partial consume (%d of %d) without a terminal state", n, len(b))
		}
		if p.IsDone() {
			parsed := p.Parsed()
			if parsed.Version != 1 || parsed.TxType != TxTypeTransfer {
				t.Fatalf("done with invalid version/tx_type: %+v", parsed)
			}
		}
	})
}

// FuzzConsumeSplit checks that any two-way split of an input stream decodes
// identically to the one-shot parse of the same bytes.
func FuzzConsumeSplit(f *testing.F) {
	wire := validTransferWire(1, 42, 1000, 21000, 1_000_000, fixedAddr(0x11), fixedAddr(0x22))
	f.Add(wire, 1)
	f.Add(wire, 40)
	f.Add(wire, 81)
	f.Fuzz(func(t *testing.T, b []byte, split int) {
		if split < 0 || split > len(b) {
			return
		}

		var one Parser
		one.Init()
		one.Consume(b)

		var two Parser
		two.Init()
		n := two.Consume(b[:split])
		if n == split && !two.IsDone() && !two.HasError() {
			two.Consume(b[split:])
		}

		if one.IsDone() != two.IsDone() || one.HasError() != two.HasError() {
			t.Fatalf("split %d: terminal state mismatch", split)
		}
		if one.IsDone() && one.Parsed() != two.Parsed() {
			t.Fatalf("split %d: parsed mismatch: %+v vs %+v", split, one.Parsed(), two.Parsed())
		}
	})
}
