// Package apdu implements the command dispatcher: it routes APDU command
// frames to handlers for version, app-name, public-key, address, and
// sign-transaction, and attaches the matching status words.
package apdu

// Status is a two-byte APDU status word.
type Status uint16

const (
	StatusOK                Status = 0x9000
	StatusWrongLength       Status = 0x6700
	StatusSecurityCondition Status = 0x6982
	StatusUserRejected      Status = 0x6985
	StatusInvalidData       Status = 0x6A80
	StatusInvalidPath       Status = 0x6A81
	StatusInvalidParam      Status = 0x6B00
	StatusInsNotSupported   Status = 0x6D00
	StatusClaNotSupported   Status = 0x6E00
	StatusInternalError     Status = 0x6F00
	StatusTxParseError      Status = 0x6F01
	StatusFeeOverflow       Status = 0x6F02
	StatusSessionProtocol   Status = 0x6F03
	StatusTxTooLarge        Status = 0x6F04
)

// ClassSumChain is the only accepted APDU class byte.
const ClassSumChain = 0xE0

// Instruction codes.
const (
	InsGetVersion   = 0x00
	InsGetAppName   = 0x01
	InsGetPublicKey = 0x02
	InsGetAddress   = 0x03
	InsSignTx       = 0x04
)

// P1/P2 values for INS_SIGN_TX.
const (
	P1FirstChunk   = 0x00
	P1Continuation = 0x80
	P2LastChunk    = 0x00
	P2MoreChunks   = 0x80
)

// P1 values for INS_GET_ADDRESS.
const (
	P1NoDisplay = 0x00
	P1Display   = 0x01
)
