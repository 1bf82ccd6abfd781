package apdu

import (
	"errors"

	"github.com/sumchain/ledger-core/address"
	"github.com/sumchain/ledger-core/display"
	"github.com/sumchain/ledger-core/keys"
	"github.com/sumchain/ledger-core/session"
	"github.com/sumchain/ledger-core/zeroize"
)

// Response is a command's result: the status word, and any response data
// (only ever non-empty alongside StatusOK).
type Response struct {
	Status Status
	Data   []byte
}

// Dispatcher is the single owner of the one in-flight signing session, the
// key provider, and the display/approval collaborator. It is created once
// at startup and driven one command at a time; the single-threaded
// cooperative model makes this safe without locks.
type Dispatcher struct {
	provider keys.Provider
	approval display.Approval
	sess     session.Session

	appName string
	version [3]byte
}

// NewDispatcher builds a Dispatcher over provider and approval, the two
// capability-boundary collaborators: provider derives keys and signs,
// approval presents fields and blocks for a user decision.
func NewDispatcher(provider keys.Provider, approval display.Approval, appName string, version [3]byte) *Dispatcher {
	return &Dispatcher{provider: provider, approval: approval, appName: appName, version: version}
}

// Dispatch decodes and routes one APDU frame, returning the status word and
// any response data. It is the sole boundary at which errors are mapped
// onto status words; nothing below this function returns a status word
// directly.
func (d *Dispatcher) Dispatch(frame []byte) Response {
	cmd, err := ParseCommand(frame)
	if err != nil {
		return Response{Status: StatusWrongLength}
	}
	if cmd.Class != ClassSumChain {
		return Response{Status: StatusClaNotSupported}
	}

	switch cmd.Ins {
	case InsGetVersion:
		return d.handleGetVersion()
	case InsGetAppName:
		return d.handleGetAppName()
	case InsGetPublicKey:
		return d.handleGetPublicKey(cmd)
	case InsGetAddress:
		return d.handleGetAddress(cmd)
	case InsSignTx:
		return d.handleSignTx(cmd)
	default:
		return Response{Status: StatusInsNotSupported}
	}
}

func (d *Dispatcher) handleGetVersion() Response {
	return Response{Status: StatusOK, Data: append([]byte(nil), d.version[:]...)}
}

func (d *Dispatcher) handleGetAppName() Response {
	return Response{Status: StatusOK, Data: []byte(d.appName)}
}

func (d *Dispatcher) handleGetPublicKey(cmd Command) Response {
	if len(cmd.Data) < 1 {
		return Response{Status: StatusWrongLength}
	}

	path, _, err := keys.ParsePath(cmd.Data)
	if err != nil {
		return Response{Status: StatusInvalidPath}
	}
	defer path.Zeroize()

	pub, derr := d.provider.DerivePublicKey(&path)
	if derr != nil {
		return Response{Status: StatusInternalError}
	}
	defer zeroize.Array32(&pub)

	return Response{Status: StatusOK, Data: append([]byte(nil), pub[:]...)}
}

func (d *Dispatcher) handleGetAddress(cmd Command) Response {
	if cmd.P1 != P1NoDisplay && cmd.P1 != P1Display {
		return Response{Status: StatusInvalidParam}
	}
	if len(cmd.Data) < 1 {
		return Response{Status: StatusWrongLength}
	}

	path, _, err := keys.ParsePath(cmd.Data)
	if err != nil {
		return Response{Status: StatusInvalidPath}
	}
	defer path.Zeroize()

	pub, derr := d.provider.DerivePublicKey(&path)
	if derr != nil {
		return Response{Status: StatusInternalError}
	}
	defer zeroize.Array32(&pub)

	addrBytes := address.FromPubkey(pub)
	addrStr, eerr := address.EncodeAddress(addrBytes)
	if eerr != nil {
		return Response{Status: StatusInternalError}
	}

	if cmd.P1 == P1Display {
		result := d.approval.ConfirmAddress(display.AddressField{Address: addrStr})
		if result != display.ResultApproved {
			return Response{Status: StatusUserRejected}
		}
	}

	return Response{Status: StatusOK, Data: []byte(addrStr)}
}

func (d *Dispatcher) handleSignTx(cmd Command) Response {
	if cmd.P1 != P1FirstChunk && cmd.P1 != P1Continuation {
		d.sess.Reset()
		return Response{Status: StatusInvalidParam}
	}
	if cmd.P2 != P2LastChunk && cmd.P2 != P2MoreChunks {
		d.sess.Reset()
		return Response{Status: StatusInvalidParam}
	}

	isFirst := cmd.P1 == P1FirstChunk
	isMore := cmd.P2 == P2MoreChunks

	if isFirst {
		if d.sess.Initialized() {
			d.sess.Reset()
			return Response{Status: StatusSessionProtocol}
		}
		if len(cmd.Data) < 1 {
			return Response{Status: StatusWrongLength}
		}
		if err := d.sess.BeginFirstChunk(cmd.Data, isMore); err != nil {
			return Response{Status: statusForSessionError(err)}
		}
	} else {
		if err := d.sess.ContinueChunk(cmd.Data, isMore); err != nil {
			return Response{Status: statusForSessionError(err)}
		}
	}

	if isMore {
		return Response{Status: StatusOK}
	}

	sig, err := d.sess.Finalize(d.provider, d.approval)
	if err != nil {
		return Response{Status: statusForSessionError(err)}
	}
	defer zeroize.Array64(&sig)

	return Response{Status: StatusOK, Data: append([]byte(nil), sig[:]...)}
}

func statusForSessionError(err error) Status {
	var se *session.Error
	if !errors.As(err, &se) {
		return StatusInternalError
	}
	switch se.Code {
	case session.ErrInvalidPath:
		return StatusInvalidPath
	case session.ErrProtocol:
		return StatusSessionProtocol
	case session.ErrParse:
		return StatusTxParseError
	case session.ErrSizeExceeded:
		return StatusTxTooLarge
	case session.ErrFeeOverflow:
		return StatusFeeOverflow
	case session.ErrUserRejected:
		return StatusUserRejected
	default:
		return StatusInternalError
	}
}
