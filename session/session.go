// Package session implements the signing session: it owns a derivation
// path, a live hash context, and a live parser context across the chunks of
// one sign-transaction command, and enforces the parse-display-approve-sign
// ordering with zeroization on every exit path.
package session

import (
	"github.com/sumchain/ledger-core/display"
	"github.com/sumchain/ledger-core/hash"
	"github.com/sumchain/ledger-core/keys"
	"github.com/sumchain/ledger-core/txparser"
	"github.com/sumchain/ledger-core/zeroize"
)

// Session is the exclusive owner of its path, parser, and hash context for
// the lifetime of a sign command. The dispatcher owns exactly one Session
// by a one-session-per-process contract; nothing else observes these
// fields while a command is in flight, so no locking is required or
// permitted.
type Session struct {
	initialized       bool
	path              keys.Path
	hashCtx           hash.Context
	parser            txparser.Parser
	totalReceived     int
	lastChunkReceived bool
}

// Initialized reports whether a sign-transaction command is in progress.
// A first-chunk command arriving while this is true is a session protocol
// violation, not a silent reset.
func (s *Session) Initialized() bool {
	return s.initialized
}

// LastChunkReceived reports whether the chunk carrying the last-chunk flag
// has already been absorbed.
func (s *Session) LastChunkReceived() bool {
	return s.lastChunkReceived
}

// Reset fully zeroizes the session: path, hash context, and parser scratch,
// and clears every flag. It is called on every exit path of a sign
// command — success, any error, user rejection, or protocol violation.
func (s *Session) Reset() {
	s.path.Zeroize()
	s.hashCtx.Zeroize()
	s.parser.Zeroize()
	s.initialized = false
	s.totalReceived = 0
	s.lastChunkReceived = false
}

// BeginFirstChunk starts a new session from the first chunk of a
// sign-transaction command: data is the path wire form immediately followed
// by zero or more transaction bytes. isMore is P2's "more chunks expected"
// flag. On any failure the session is left fully zeroized.
func (s *Session) BeginFirstChunk(data []byte, isMore bool) error {
	path, consumed, err := keys.ParsePath(data)
	if err != nil {
		s.Reset()
		return sessErr(ErrInvalidPath, err.Error())
	}

	s.path = path
	s.hashCtx.Init()
	s.parser.Init()
	s.initialized = true
	s.totalReceived = 0
	s.lastChunkReceived = !isMore

	txBytes := data[consumed:]
	if len(txBytes) == 0 {
		return nil
	}
	return s.absorb(txBytes)
}

// ContinueChunk feeds a continuation chunk's transaction bytes into the
// running hash and parser. isMore is P2's "more chunks expected" flag. A
// continuation arriving with no active session, or after the last chunk was
// already seen, is a session protocol violation.
func (s *Session) ContinueChunk(data []byte, isMore bool) error {
	if !s.initialized {
		return sessErr(ErrProtocol, "continuation with no active session")
	}
	if s.lastChunkReceived {
		s.Reset()
		return sessErr(ErrProtocol, "continuation after last chunk already received")
	}

	s.lastChunkReceived = !isMore
	if len(data) == 0 {
		return nil
	}
	return s.absorb(data)
}

// absorb feeds data into both the hash and the parser, enforcing the
// MAX_TX_SIZE cap before doing so. On any failure the session is reset.
func (s *Session) absorb(data []byte) error {
	if s.totalReceived+len(data) > txparser.MaxTxSize {
		s.Reset()
		return sessErr(ErrSizeExceeded, "transaction exceeds MAX_TX_SIZE")
	}

	s.hashCtx.Update(data)
	consumed := s.parser.Consume(data)
	if consumed != len(data) || s.parser.HasError() {
		s.Reset()
		return sessErr(ErrParse, "transaction parse error")
	}

	s.totalReceived += len(data)
	return nil
}

// Finalize runs the tail of the last chunk of a sign command: it requires
// the parser to have reached Done, rejects a fee whose Overflow flag is set
// (the product does not fit in 64 bits) without ever invoking the approval
// collaborator (the device will never sign a transaction it cannot honestly
// display), renders the display fields, invokes approval, and — only on
// approve — finalizes the hash and signs it. The session is fully zeroized on every exit path, including
// success.
func (s *Session) Finalize(provider keys.Provider, approval display.Approval) (sig [keys.SignatureSize]byte, err error) {
	if !s.parser.IsDone() {
		s.Reset()
		return sig, sessErr(ErrParse, "transaction not done at end of chunk stream")
	}

	parsed := s.parser.Parsed()

	if parsed.Fee.Overflow {
		s.Reset()
		return sig, sessErr(ErrFeeOverflow, "fee overflow")
	}

	fields, ferr := display.Format(parsed)
	if ferr != nil {
		s.Reset()
		return sig, sessErr(ErrInternal, ferr.Error())
	}

	result := approval.Confirm(fields)
	if result != display.ResultApproved {
		s.Reset()
		return sig, sessErr(ErrUserRejected, "user rejected transaction")
	}

	var digest [keys.DigestSize]byte
	s.hashCtx.Finalize32(&digest)

	signature, serr := provider.Sign(&s.path, digest)
	zeroize.Array32(&digest)
	if serr != nil {
		s.Reset()
		return sig, sessErr(ErrInternal, serr.Error())
	}

	sig = signature
	s.Reset()
	return sig, nil
}
