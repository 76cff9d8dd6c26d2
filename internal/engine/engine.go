// Package engine is the allocator core: the in-region block list, the
// four fit policies, splitting, coalescing and the single region-wide
// lock that keeps the list self-consistent under concurrent callers.
//
// Nothing in this package allocates auxiliary memory for bookkeeping —
// every header lives inside the caller-supplied region, per
// SPEC_FULL.md §1. Acquiring that region (heap slice or mmap) is the
// job of the sibling internal/region package, never this one.
package engine

import (
	"sync"

	"github.com/cockroachdb/errors"
	"log/slog"

	"blockalloc/consts"
	"blockalloc/errs"
	"blockalloc/policy"
)

// Engine is the explicit, caller-constructed allocator value the §9
// design note recommends in place of hidden global state. The package
// level blockalloc.Init/Allocate/... wrappers are a thin convenience
// layer over one lazily-created Engine.
type Engine struct {
	mu sync.Mutex

	region      []byte
	regionBytes uint64
	headOff     uint64
	cursorOff   uint64 // noLink when unset
	pol         policy.Policy

	log *slog.Logger
}

// New initializes an engine over region: it writes a single free block
// header spanning the whole region, sets head to that block, clears
// the cursor and records pol. region must be non-nil and at least
// consts.MinRegionSize bytes — anything less is a contract violation
// and New panics rather than returning an error, per SPEC_FULL.md §7
// ("region unset or undersized violates the contract").
//
// A nil logger defaults to slog.Default(); besides PrintAllNodes' summary
// line, the engine logs only the two conditions the spec calls out as
// non-fatal-but-notable: double release, and allocation exhaustion (at
// debug level).
func New(region []byte, pol policy.Policy, logger *slog.Logger) *Engine {
	if region == nil {
		panic(errs.AssertionFailed("blockalloc: region is nil"))
	}
	if len(region) < consts.MinRegionSize {
		panic(errs.AssertionFailed("blockalloc: region size %d below floor %d", len(region), consts.MinRegionSize))
	}
	if logger == nil {
		logger = slog.Default()
	}

	e := &Engine{
		region:      region,
		regionBytes: uint64(len(region)),
		headOff:     0,
		cursorOff:   noLink,
		pol:         pol,
		log:         logger,
	}
	encodeHeader(e.region, header{
		prev: noLink,
		next: noLink,
		size: uint32(len(region)) - consts.HeaderSize,
		free: blockFree,
	})
	return e
}

// Policy reports the fit strategy the engine was configured with.
func (e *Engine) Policy() policy.Policy {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.pol
}

// header/payload accessors. All take the lock's caller as given — they
// never lock themselves, so every one of them must only be called from
// inside a method that already holds e.mu, keeping the "no nested lock
// acquisitions" rule from SPEC_FULL.md §5 trivially true.

func (e *Engine) readHeader(off uint64) header {
	return decodeHeader(e.region[off : off+consts.HeaderSize])
}

func (e *Engine) writeHeader(off uint64, h header) {
	encodeHeader(e.region[off:off+consts.HeaderSize], h)
}

func (e *Engine) payload(off uint64, size uint32) []byte {
	start := off + consts.HeaderSize
	return e.region[start : start+uint64(size)]
}

// Allocate carves out n payload bytes from some free block chosen by
// the engine's policy, zero-fills them, and returns a slice pointing
// exactly at them. The request is rounded up to a multiple of
// consts.Align inside the block, so every payload starts aligned. It returns errs.ErrExhausted when no free block is
// large enough — a normal outcome the caller is expected to handle,
// not a bug.
func (e *Engine) Allocate(n int) ([]byte, error) {
	if n <= 0 {
		return nil, errors.Wrapf(errs.ErrBadArgument, "allocate size %d must be > 0", n)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	// Round the request up to consts.Align so the header that follows
	// this block, and therefore its payload, stays aligned too.
	want := (uint32(n) + consts.Align - 1) &^ (consts.Align - 1)

	chosen, ok := e.selectFreeBlock(want)
	if !ok {
		e.log.Debug("blockalloc: allocation exhausted", slog.Int("requested", n), slog.String("policy", e.pol.String()))
		return nil, errs.ErrExhausted
	}

	e.splitOrConsume(chosen, want)
	h := e.readHeader(chosen)
	p := e.payload(chosen, h.size)
	for i := range p {
		p[i] = 0
	}
	return p[:n], nil
}

// AllocateOrNil mirrors the spec's literal "allocate returns a payload
// reference or null": nil on exhaustion instead of a typed error, for
// callers that want exactly that shape.
func (e *Engine) AllocateOrNil(n int) []byte {
	p, err := e.Allocate(n)
	if err != nil {
		return nil
	}
	return p
}

// splitOrConsume implements §4.2: when the bytes left over after n are
// at least consts.HeaderSize+consts.MinFreeBlock, it splits b into a
// block of exactly n payload bytes followed by a new free block holding
// the remainder; otherwise it consumes b whole and b keeps its original
// size. Either way, the block at `b` ends up busy.
func (e *Engine) splitOrConsume(b uint64, n uint32) {
	h := e.readHeader(b)
	remainder := h.size - n

	if remainder >= consts.HeaderSize+consts.MinFreeBlock {
		rightOff := b + consts.HeaderSize + uint64(n)
		right := header{
			prev: b,
			next: h.next,
			size: remainder - consts.HeaderSize,
			free: blockFree,
		}
		e.writeHeader(rightOff, right)
		if h.next != noLink {
			next := e.readHeader(h.next)
			next.prev = rightOff
			e.writeHeader(h.next, next)
		}
		h.next = rightOff
		h.size = n
	}

	h.free = blockBusy
	e.writeHeader(b, h)
}

// Deallocate marks b's block free and performs the two-stage coalesce
// of §4.3. Passing nil is a documented no-op. Releasing an
// already-free block is logged and returns errs.ErrDoubleFree without
// mutating state. Releasing a reference that does not start inside this
// engine's region, or whose header offset falls outside the region, is
// a contract violation and panics. A reference inside the region is
// taken to be a payload start returned by Allocate; it is not checked
// against the block list.
func (e *Engine) Deallocate(payload []byte) error {
	if payload == nil {
		return nil
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	off, err := e.headerOffsetOf(payload)
	if err != nil {
		panic(err)
	}

	h := e.readHeader(off)
	if h.isFree() {
		e.log.Warn("blockalloc: double free", slog.Uint64("offset", off), slog.Int("size", int(h.size)))
		return errs.ErrDoubleFree
	}

	h.free = blockFree
	e.writeHeader(off, h)

	cur := off
	cur = e.mergePrev(cur)
	e.mergeNext(cur)
	return nil
}

// mergePrev absorbs cur into its previous neighbor if that neighbor is
// free, returning the offset of the surviving block (cur's prev, or
// cur itself if no merge happened). Cursor fixup: if the cursor
// pointed at the absorbed block, it moves to that block's next, per
// §4.3.
func (e *Engine) mergePrev(cur uint64) uint64 {
	h := e.readHeader(cur)
	if h.prev == noLink {
		return cur
	}
	prevH := e.readHeader(h.prev)
	if !prevH.isFree() {
		return cur
	}

	prevH.size += consts.HeaderSize + h.size
	prevH.next = h.next
	e.writeHeader(h.prev, prevH)

	if h.next != noLink {
		next := e.readHeader(h.next)
		next.prev = h.prev
		e.writeHeader(h.next, next)
	}

	if e.cursorOff == cur {
		e.cursorOff = h.next
	}
	return h.prev
}

// mergeNext absorbs cur's next neighbor into cur if that neighbor is
// free. Cursor fixup: if the cursor pointed at the absorbed block, it
// moves to that block's next, per §4.3.
func (e *Engine) mergeNext(cur uint64) {
	h := e.readHeader(cur)
	if h.next == noLink {
		return
	}
	nextH := e.readHeader(h.next)
	if !nextH.isFree() {
		return
	}

	absorbed := h.next
	h.size += consts.HeaderSize + nextH.size
	h.next = nextH.next
	e.writeHeader(cur, h)

	if nextH.next != noLink {
		afterNext := e.readHeader(nextH.next)
		afterNext.prev = cur
		e.writeHeader(nextH.next, afterNext)
	}

	if e.cursorOff == absorbed {
		e.cursorOff = nextH.next
	}
}

// headerOffsetOf recovers the header offset for a payload slice
// previously returned by Allocate, validating that it actually lies
// inside this engine's region. Foreign references are reported as an
// error for Deallocate to panic with, rather than panicking here, so
// tests can assert on the message without killing the test process.
func (e *Engine) headerOffsetOf(payload []byte) (uint64, error) {
	off, ok := sliceOffset(e.region, payload)
	if !ok || off < consts.HeaderSize {
		return 0, errs.AssertionFailed("blockalloc: payload is not a reference owned by this engine")
	}
	headerOff := off - consts.HeaderSize
	if headerOff+consts.HeaderSize > e.regionBytes {
		return 0, errs.AssertionFailed("blockalloc: payload header offset %d out of region bounds", headerOff)
	}
	return headerOff, nil
}
