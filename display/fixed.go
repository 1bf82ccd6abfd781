package display

// Fixed is an Approval collaborator that always returns the same Result,
// an in-memory fake that can stand in for the platform's real event loop
// and button handling.
type Fixed struct {
	Result Result
}

var _ Approval = Fixed{}

// Confirm implements Approval.
func (f Fixed) Confirm(Fields) Result {
	return f.Result
}

// ConfirmAddress implements Approval.
func (f Fixed) ConfirmAddress(AddressField) Result {
	return f.Result
}
