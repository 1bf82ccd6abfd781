// Package display renders a parsed transaction into the fixed set of
// human-readable strings the trusted display shows for approval.
package display

import (
	"fmt"
	"strconv"

	"github.com/sumchain/ledger-core/address"
	"github.com/sumchain/ledger-core/txparser"
)

// Bounds on the formatted fields, mirroring the device's fixed display
// buffers (amount/nonce <=32, fee <=40, chain_id <=24, addresses <=35).
const (
	MaxAmountLen  = 32
	MaxNonceLen   = 32
	MaxFeeLen     = 40
	MaxChainIDLen = 24
	MaxAddressLen = address.MaxEncodedLen
)

// Fields is the struct handed to the UI collaborator: decoded strings in
// the order the device must present them — chain_id, sender, recipient,
// amount, fee, nonce.
type Fields struct {
	ChainID   string
	Sender    string
	Recipient string
	Amount    string
	Fee       string
	Nonce     string
}

// Format converts a parsed, done transaction record into its display
// strings. It fails only if a bound above were violated, which a valid
// parse never triggers; a formatting failure is treated as an internal
// signing failure by the caller.
func Format(p txparser.Parsed) (Fields, error) {
	amount := strconv.FormatUint(p.Amount, 10)
	if len(amount) > MaxAmountLen {
		return Fields{}, fmt.Errorf("display: amount exceeds buffer bound")
	}
	nonce := strconv.FormatUint(p.Nonce, 10)
	if len(nonce) > MaxNonceLen {
		return Fields{}, fmt.Errorf("display: nonce exceeds buffer bound")
	}
	chainID := strconv.FormatUint(p.ChainID, 10)
	if len(chainID) > MaxChainIDLen {
		return Fields{}, fmt.Errorf("display: chain_id exceeds buffer bound")
	}
	fee := p.Fee.Decimal()
	if len(fee) > MaxFeeLen {
		return Fields{}, fmt.Errorf("display: fee exceeds buffer bound")
	}

	sender, err := address.EncodeAddress(p.Sender)
	if err != nil {
		return Fields{}, fmt.Errorf("display: sender: %w", err)
	}
	recipient, err := address.EncodeAddress(p.Recipient)
	if err != nil {
		return Fields{}, fmt.Errorf("display: recipient: %w", err)
	}

	return Fields{
		ChainID:   chainID,
		Sender:    sender,
		Recipient: recipient,
		Amount:    amount,
		Fee:       fee,
		Nonce:     nonce,
	}, nil
}

// AddressField is the single-field display used for the get-address
// P1=0x01 "display for confirmation" flow.
type AddressField struct {
	Address string
}
