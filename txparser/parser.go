// Package txparser implements the streaming transaction parser: a
// byte-at-a-time finite state machine that decodes the SUM Chain
// transaction wire format without ever buffering the whole transaction, and
// the 128-bit fee arithmetic derived from it.
package txparser

import "github.com/sumchain/ledger-core/zeroize"

// AmountFieldWidth is the wire width of the amount field. fieldSize and
// TransferSize derive from it. The decoded Amount is a uint64 read from the
// field's first 8 bytes and the scratch buffer is fixed at 32 bytes, so a
// width above 8 also needs a wider Amount type and decoder.
const AmountFieldWidth = 8

// MaxTxSize bounds total bytes a single parser instance will ever consume,
// defense in depth against a runaway stream; a structurally valid Transfer
// consumes exactly TransferSize bytes.
const MaxTxSize = 8192

// AddressFieldWidth is the wire width of the sender and recipient fields.
const AddressFieldWidth = 20

// TransferSize is the exact wire size of a valid Transfer transaction.
const TransferSize = 1 + 8 + AddressFieldWidth + 8 + 8 + 8 + 1 + AddressFieldWidth + AmountFieldWidth

// TxTypeTransfer is the only supported transaction type.
const TxTypeTransfer = 0x00

// State is a parser state. States progress linearly from Version through
// Done; Error is a sink state reachable from any field on a structural
// violation.
type State int

const (
	StateVersion State = iota
	StateChainID
	StateSender
	StateNonce
	StateGasPrice
	StateGasLimit
	StateTxType
	StateRecipient
	StateAmount
	StateDone
	StateError
)

// Parsed holds the decoded fields of a transaction, in wire order, plus the
// derived fee.
type Parsed struct {
	Version   uint8
	ChainID   uint64
	Sender    [AddressFieldWidth]byte
	Nonce     uint64
	GasPrice  uint64
	GasLimit  uint64
	TxType    uint8
	Recipient [AddressFieldWidth]byte
	Amount    uint64
	Fee       Fee128
}

// Parser is the streaming transaction decoder. The zero value is ready for
// use after Init.
type Parser struct {
	state         State
	fieldOffset   int
	scratch       [32]byte
	parsed        Parsed
	totalConsumed int
}

// Init resets p to its initial state: StateVersion, offset 0, nothing
// consumed.
func (p *Parser) Init() {
	*p = Parser{state: StateVersion}
}

// fieldSize returns the wire width of the field current state is
// assembling, or 0 for states that have none (Done, Error).
func fieldSize(s State) int {
	switch s {
	case StateVersion:
		return 1
	case StateChainID:
		return 8
	case StateSender:
		return AddressFieldWidth
	case StateNonce:
		return 8
	case StateGasPrice:
		return 8
	case StateGasLimit:
		return 8
	case StateTxType:
		return 1
	case StateRecipient:
		return AddressFieldWidth
	case StateAmount:
		return AmountFieldWidth
	default:
		return 0
	}
}

// Consume feeds data into the parser and returns the number of bytes
// actually absorbed. It stops early — returning a partial count — the
// moment it enters Error or completes into Done with bytes remaining; the
// caller must treat consumed != len(data) as a protocol error (trailing
// bytes after the structural end of the transaction are never allowed). It
// is a no-op, returning 0, once the parser is already Done or Error.
func (p *Parser) Consume(data []byte) int {
	if p.state == StateDone || p.state == StateError {
		return 0
	}

	consumed := 0
	for consumed < len(data) && p.state != StateDone && p.state != StateError {
		if p.totalConsumed >= MaxTxSize {
			p.state = StateError
			return consumed
		}

		width := fieldSize(p.state)
		if width == 0 {
			p.state = StateError
			return consumed
		}

		needed := width - p.fieldOffset
		available := len(data) - consumed
		take := needed
		if available < take {
			take = available
		}
		if p.fieldOffset+take > len(p.scratch) {
			p.state = StateError
			return consumed
		}

		copy(p.scratch[p.fieldOffset:p.fieldOffset+take], data[consumed:consumed+take])
		p.fieldOffset += take
		consumed += take
		p.totalConsumed += take

		if p.fieldOffset >= width {
			if err := p.processCompleteField(); err != nil {
				p.state = StateError
				return consumed
			}
			p.fieldOffset = 0
		}
	}

	return consumed
}

func (p *Parser) processCompleteField() error {
	switch p.state {
	case StateVersion:
		p.parsed.Version = p.scratch[0]
		if p.parsed.Version != 1 {
			return parseErr(ErrBadVersion, "unsupported version")
		}
		p.state = StateChainID

	case StateChainID:
		p.parsed.ChainID = readU64le(p.scratch[:8])
		p.state = StateSender

	case StateSender:
		copy(p.parsed.Sender[:], p.scratch[:AddressFieldWidth])
		p.state = StateNonce

	case StateNonce:
		p.parsed.Nonce = readU64le(p.scratch[:8])
		p.state = StateGasPrice

	case StateGasPrice:
		p.parsed.GasPrice = readU64le(p.scratch[:8])
		p.state = StateGasLimit

	case StateGasLimit:
		p.parsed.GasLimit = readU64le(p.scratch[:8])
		p.state = StateTxType

	case StateTxType:
		p.parsed.TxType = p.scratch[0]
		if p.parsed.TxType != TxTypeTransfer {
			return parseErr(ErrBadTxType, "unsupported tx_type")
		}
		p.state = StateRecipient

	case StateRecipient:
		copy(p.parsed.Recipient[:], p.scratch[:AddressFieldWidth])
		p.state = StateAmount

	case StateAmount:
		p.parsed.Amount = readU64le(p.scratch[:AmountFieldWidth])
		p.parsed.Fee = ComputeFee(p.parsed.GasPrice, p.parsed.GasLimit)
		p.state = StateDone

	default:
		return parseErr(ErrInternal, "process called in terminal state")
	}
	return nil
}

// IsDone reports whether the parser reached the terminal Done state.
func (p *Parser) IsDone() bool {
	return p.state == StateDone
}

// HasError reports whether the parser reached the terminal Error state.
func (p *Parser) HasError() bool {
	return p.state == StateError
}

// Parsed returns the accumulated record. It is only meaningful once IsDone
// reports true.
func (p *Parser) Parsed() Parsed {
	return p.parsed
}

// Zeroize overwrites the parser's scratch buffer and parsed record, and
// resets state. Called on every exit path of a signing session.
func (p *Parser) Zeroize() {
	zeroize.Bytes(p.scratch[:])
	zeroize.Bytes(p.parsed.Sender[:])
	zeroize.Bytes(p.parsed.Recipient[:])
	p.parsed = Parsed{}
	p.fieldOffset = 0
	p.totalConsumed = 0
	p.state = StateVersion
}
