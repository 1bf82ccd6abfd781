// Command ledger-sim is a host-side test harness for the SUM Chain signing
// core: it decodes a JSON transcript of APDU commands from stdin, drives
// them through the dispatcher with a software key provider and a
// scriptable approval collaborator, and writes one JSON response per line
// to stdout. It exists to exercise the core end to end without real USB/BLE
// transport or device UI.
package main

import (
	"bufio"
	"encoding/hex"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/sumchain/ledger-core/apdu"
	"github.com/sumchain/ledger-core/display"
	"github.com/sumchain/ledger-core/keys"
)

// CommandJSON is one line of an input transcript.
type CommandJSON struct {
	Cla        byte   `json:"cla"`
	Ins        byte   `json:"ins"`
	P1         byte   `json:"p1"`
	P2         byte   `json:"p2"`
	DataHex    string `json:"data_hex"`
	ApproveSet bool   `json:"approve_set,omitempty"`
	Approve    bool   `json:"approve,omitempty"`
}

// ResponseJSON is one line of transcript output.
type ResponseJSON struct {
	StatusHex string `json:"status_hex"`
	DataHex   string `json:"data_hex,omitempty"`
	Err       string `json:"err,omitempty"`
}

// scriptedApproval lets each transcript line override the approval result
// for the command it drives; it defaults to cfg.AutoApprove.
type scriptedApproval struct {
	fallback display.Result
	next     *display.Result
}

func (a *scriptedApproval) resultFor() display.Result {
	if a.next != nil {
		r := *a.next
		a.next = nil
		return r
	}
	return a.fallback
}

func (a *scriptedApproval) Confirm(display.Fields) display.Result {
	return a.resultFor()
}

func (a *scriptedApproval) ConfirmAddress(display.AddressField) display.Result {
	return a.resultFor()
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	defaults := DefaultConfig()
	cfg := defaults

	fs := flag.NewFlagSet("ledger-sim", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&cfg.SeedHex, "seed", defaults.SeedHex, "hex-encoded device seed")
	fs.BoolVar(&cfg.AutoApprove, "auto-approve", defaults.AutoApprove, "auto-approve every display prompt not overridden per-line")
	fs.StringVar(&cfg.LogLevel, "log-level", defaults.LogLevel, "log level: debug|info|warn|error")
	fs.StringVar(&cfg.TranscriptIn, "transcript", defaults.TranscriptIn, "read the command transcript from this file instead of stdin")
	appName := fs.String("app-name", "SUM Chain", "app name returned by get-app-name")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	if err := ValidateConfig(cfg); err != nil {
		fmt.Fprintf(stderr, "invalid config: %v\n", err)
		return 2
	}

	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: logLevelFromString(cfg.LogLevel)}))

	provider, err := keys.LoadProvider(cfg.Seed())
	if err != nil {
		fmt.Fprintf(stderr, "loading key provider: %v\n", err)
		return 1
	}

	fallback := display.ResultRejected
	if cfg.AutoApprove {
		fallback = display.ResultApproved
	}
	approval := &scriptedApproval{fallback: fallback}

	dispatcher := apdu.NewDispatcher(provider, approval, *appName, [3]byte{1, 0, 0})

	input := stdin
	if cfg.TranscriptIn != "" {
		f, ferr := os.Open(cfg.TranscriptIn)
		if ferr != nil {
			fmt.Fprintf(stderr, "opening transcript: %v\n", ferr)
			return 1
		}
		defer f.Close()
		input = f
	}

	scanner := bufio.NewScanner(input)
	scanner.Buffer(make([]byte, 0, 64*1024), 1<<20)
	writer := bufio.NewWriter(stdout)
	defer writer.Flush()
	enc := json.NewEncoder(writer)

	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}
		resp := handleLine(dispatcher, approval, logger, line)
		if err := enc.Encode(resp); err != nil {
			fmt.Fprintf(stderr, "encode response: %v\n", err)
			return 1
		}
	}
	if err := scanner.Err(); err != nil {
		fmt.Fprintf(stderr, "reading transcript: %v\n", err)
		return 1
	}

	return 0
}

func handleLine(d *apdu.Dispatcher, approval *scriptedApproval, logger *slog.Logger, line string) ResponseJSON {
	var cmdJSON CommandJSON
	if err := json.Unmarshal([]byte(line), &cmdJSON); err != nil {
		return ResponseJSON{StatusHex: "0x0000", Err: fmt.Sprintf("bad transcript line: %v", err)}
	}

	if cmdJSON.ApproveSet {
		r := display.ResultRejected
		if cmdJSON.Approve {
			r = display.ResultApproved
		}
		approval.next = &r
		defer func() { approval.next = nil }()
	}

	data, err := hex.DecodeString(cmdJSON.DataHex)
	if err != nil {
		return ResponseJSON{StatusHex: "0x0000", Err: fmt.Sprintf("bad data_hex: %v", err)}
	}

	frame := make([]byte, 0, 5+len(data))
	frame = append(frame, cmdJSON.Cla, cmdJSON.Ins, cmdJSON.P1, cmdJSON.P2, byte(len(data)))
	frame = append(frame, data...)

	resp := d.Dispatch(frame)
	logger.Info("dispatch", "ins", cmdJSON.Ins, "p1", cmdJSON.P1, "p2", cmdJSON.P2, "status", fmt.Sprintf("0x%04X", uint16(resp.Status)))

	return ResponseJSON{
		StatusHex: fmt.Sprintf("0x%04X", uint16(resp.Status)),
		DataHex:   hex.EncodeToString(resp.Data),
	}
}

func logLevelFromString(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
