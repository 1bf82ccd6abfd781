package main

import (
	"bytes"
	"encoding/binary"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func runLines(t *testing.T, args []string, lines ...string) []ResponseJSON {
	t.Helper()
	var stdout, stderr bytes.Buffer
	stdin := strings.NewReader(strings.Join(lines, "\n") + "\n")

	code := run(args, stdin, &stdout, &stderr)
	if code != 0 {
		t.Fatalf("run exited %d, stderr: %s", code, stderr.String())
	}

	var out []ResponseJSON
	dec := json.NewDecoder(&stdout)
	for dec.More() {
		var r ResponseJSON
		if err := dec.Decode(&r); err != nil {
			t.Fatalf("decode response: %v", err)
		}
		out = append(out, r)
	}
	return out
}

func transcriptLine(t *testing.T, c CommandJSON) string {
	t.Helper()
	b, err := json.Marshal(c)
	if err != nil {
		t.Fatalf("marshal transcript line: %v", err)
	}
	return string(b)
}

func TestRunGetVersion(t *testing.T) {
	line := transcriptLine(t, CommandJSON{Cla: 0xE0, Ins: 0x00})
	resp := runLines(t, []string{"-auto-approve"}, line)
	if len(resp) != 1 {
		t.Fatalf("got %d responses, want 1", len(resp))
	}
	if resp[0].StatusHex != "0x9000" {
		t.Fatalf("status = %s, want 0x9000", resp[0].StatusHex)
	}
	if resp[0].DataHex != "010000" {
		t.Fatalf("version data = %s, want 010000", resp[0].DataHex)
	}
}

func TestRunRejectsWithoutAutoApprove(t *testing.T) {
	data := append(pathWire(0x80000000), transferWire()...)

	lines := []string{
		transcriptLine(t, CommandJSON{Cla: 0xE0, Ins: 0x04, P1: 0x00, P2: 0x00, DataHex: bytesToHex(data)}),
	}
	resp := runLines(t, []string{"-auto-approve=false"}, lines...)
	if resp[0].StatusHex != "0x6985" {
		t.Fatalf("status = %s, want 0x6985 with auto-approve disabled", resp[0].StatusHex)
	}
}

func TestRunSignsWithAutoApprove(t *testing.T) {
	data := append(pathWire(0x80000000), transferWire()...)

	lines := []string{
		transcriptLine(t, CommandJSON{Cla: 0xE0, Ins: 0x04, P1: 0x00, P2: 0x00, DataHex: bytesToHex(data)}),
	}
	resp := runLines(t, nil, lines...)
	if resp[0].StatusHex != "0x9000" {
		t.Fatalf("status = %s, want 0x9000", resp[0].StatusHex)
	}
	if len(resp[0].DataHex) != 128 {
		t.Fatalf("signature hex length = %d, want 128", len(resp[0].DataHex))
	}
}

// pathWire encodes a derivation path in its APDU wire form.
func pathWire(components ...uint32) []byte {
	out := []byte{byte(len(components))}
	for _, c := range components {
		out = append(out, byte(c>>24), byte(c>>16), byte(c>>8), byte(c))
	}
	return out
}

// transferWire builds a minimal valid 82-byte Transfer transaction.
func transferWire() []byte {
	buf := make([]byte, 0, 82)
	buf = append(buf, 1) // version
	var tmp [8]byte
	putU64 := func(v uint64) {
		binary.LittleEndian.PutUint64(tmp[:], v)
		buf = append(buf, tmp[:]...)
	}
	putU64(1) // chain_id
	buf = append(buf, bytes.Repeat([]byte{0x11}, 20)...)
	putU64(42)    // nonce
	putU64(1000)  // gas_price
	putU64(21000) // gas_limit
	buf = append(buf, 0x00)
	buf = append(buf, bytes.Repeat([]byte{0x22}, 20)...)
	putU64(1_000_000) // amount
	return buf
}

func TestRunPerLineApproveOverride(t *testing.T) {
	path := []byte{0x80, 0x00, 0x00, 0x00}
	firstData := append([]byte{1}, path...)

	line := transcriptLine(t, CommandJSON{
		Cla: 0xE0, Ins: 0x03, P1: 0x01, P2: 0x00,
		DataHex: bytesToHex(firstData), ApproveSet: true, Approve: true,
	})
	resp := runLines(t, []string{"-auto-approve=false"}, line)
	if resp[0].StatusHex != "0x9000" {
		t.Fatalf("status = %s, want 0x9000 with per-line approve override", resp[0].StatusHex)
	}
}

func TestRunReadsTranscriptFromFile(t *testing.T) {
	line := transcriptLine(t, CommandJSON{Cla: 0xE0, Ins: 0x00})
	path := filepath.Join(t.TempDir(), "transcript.jsonl")
	if err := os.WriteFile(path, []byte(line+"\n"), 0o600); err != nil {
		t.Fatalf("write transcript: %v", err)
	}

	var stdout, stderr bytes.Buffer
	code := run([]string{"-transcript", path}, strings.NewReader(""), &stdout, &stderr)
	if code != 0 {
		t.Fatalf("run exited %d, stderr: %s", code, stderr.String())
	}

	var r ResponseJSON
	if err := json.Unmarshal(stdout.Bytes(), &r); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if r.StatusHex != "0x9000" {
		t.Fatalf("status = %s, want 0x9000", r.StatusHex)
	}
}

func TestRunBadDataHexIsReported(t *testing.T) {
	line := transcriptLine(t, CommandJSON{Cla: 0xE0, Ins: 0x00, DataHex: "zz"})
	resp := runLines(t, nil, line)
	if resp[0].Err == "" {
		t.Fatalf("expected an error for malformed data_hex")
	}
}

func bytesToHex(b []byte) string {
	const hextable = "0123456789abcdef"
	out := make([]byte, len(b)*2)
	for i, c := range b {
		out[i*2] = hextable[c>>4]
		out[i*2+1] = hextable[c&0x0F]
	}
	return string(out)
}
