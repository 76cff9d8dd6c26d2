package engine

import (
	"io"
	"log/slog"

	"github.com/launchdarkly/go-jsonstream/v3/jwriter"

	"blockalloc/errs"
)

// PrintAllNodes is the diagnostic traversal named in SPEC_FULL.md §6:
// a debug-only walk of the block list, under the lock, that never
// mutates anything. It writes one JSON object per block (offset,
// size, free/busy) to w, in the same block-to-JSON shape the wider
// allocator pack uses for its own diagnostic dumps (BlockJsonData /
// PrintDetailedMap in vkngwrapper-arsenal's metadata package), plus a
// one-line slog summary so the call shows up in log output even when
// nobody reads w.
func (e *Engine) PrintAllNodes(w io.Writer) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	writer := jwriter.NewWriter()
	arr := writer.Array()

	off := e.headOff
	count := 0
	for off != noLink {
		h := e.readHeader(off)

		obj := arr.Object()
		obj.Name("offset").Int(int(off))
		obj.Name("size").Int(int(h.size))
		obj.Name("free").Bool(h.isFree())
		obj.Name("next").Int(int(int64WithSentinel(h.next)))
		obj.End()

		count++
		off = h.next
	}
	arr.End()

	out := writer.Bytes()
	if err := writer.Error(); err != nil {
		return errs.AssertionFailed("blockalloc: failed to encode diagnostic dump: %v", err)
	}

	if _, err := w.Write(out); err != nil {
		return err
	}

	e.log.Info("blockalloc: node dump", slog.Int("blocks", count), slog.String("policy", e.pol.String()))
	return nil
}

// int64WithSentinel renders noLink as -1 in diagnostic output, since a
// region byte offset of 2^64-1 is never meaningful and -1 reads
// unambiguously as "no neighbor" in a JSON dump.
func int64WithSentinel(off uint64) int64 {
	if off == noLink {
		return -1
	}
	return int64(off)
}
