package display

// Result is the outcome of a blocking approval request.
type Result int

const (
	// ResultNone indicates the collaborator returned without a decision,
	// e.g. an interrupted flow. Treated identically to ResultRejected by
	// every caller in this module.
	ResultNone Result = iota
	ResultApproved
	ResultRejected
)

// Approval is the single blocking "present these fields, return
// approve/reject" contract the session and dispatcher consume. The event
// loop, display primitives, and button handling live behind it; only this
// interface crosses the boundary.
type Approval interface {
	// Confirm presents fields labelled and in the order they are set on
	// Fields (chain_id, sender, recipient, amount, fee, nonce) and blocks
	// until the user responds.
	Confirm(fields Fields) Result

	// ConfirmAddress presents a single address field for the get-address
	// P1=0x01 display-for-confirmation flow.
	ConfirmAddress(field AddressField) Result
}
