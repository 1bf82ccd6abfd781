// Package hash wraps the BLAKE3 streaming primitive used for transaction
// digests and address derivation.
package hash

import (
	"unsafe"

	"lukechampine.com/blake3"

	"github.com/sumchain/ledger-core/zeroize"
)

// Size is the fixed digest width produced by Finalize32 and Hash.
const Size = 32

// Context is a streaming BLAKE3 digest. The zero value is not ready for use;
// call Init or Reset before the first Update.
//
// The hasher is held by value, not behind a pointer, so Zeroize can
// overwrite the real chunk and chaining-value state in place rather than
// unlinking a heap object for the collector to reclaim on its own schedule.
//
// Update is a no-op once Finalize32 has run, guarded by initialized so a
// stray call after finalize cannot silently produce a wrong digest.
type Context struct {
	h           blake3.Hasher
	initialized bool
}

// Init prepares ctx for a fresh digest.
func (ctx *Context) Init() {
	ctx.h = *blake3.New(Size, nil)
	ctx.initialized = true
}

// Reset is equivalent to Init; it exists to mirror the wrapper's reset hook.
func (ctx *Context) Reset() {
	ctx.Init()
}

// Update feeds b into the running digest. It is a no-op once the context has
// been finalized or was never initialized.
func (ctx *Context) Update(b []byte) {
	if !ctx.initialized {
		return
	}
	ctx.h.Write(b)
}

// Finalize32 writes the 32-byte digest to out and flips the context to
// uninitialized; further Update calls are no-ops until Init/Reset runs again.
func (ctx *Context) Finalize32(out *[Size]byte) {
	if !ctx.initialized {
		var zero [Size]byte
		*out = zero
		return
	}
	sum := ctx.h.Sum(nil)
	copy(out[:], sum)
	ctx.initialized = false
}

// Zeroize overwrites the entire context, hasher state included, through a
// write path the optimizer may not elide. Every byte the context absorbed
// is reachable only through the in-line hasher memory this clears.
func (ctx *Context) Zeroize() {
	zeroize.Bytes(ctx.raw())
}

// raw exposes the context's memory as bytes. The hasher is an in-line value
// with no pointer fields, so the whole working state lands in this slice.
func (ctx *Context) raw() []byte {
	return unsafe.Slice((*byte)(unsafe.Pointer(ctx)), int(unsafe.Sizeof(*ctx)))
}

// Hash is the one-shot equivalent of Init/Update/Finalize32 for callers that
// already hold the entire input (e.g. the address codec).
func Hash(b []byte, out *[Size]byte) {
	sum := blake3.Sum256(b)
	copy(out[:], sum[:])
}
