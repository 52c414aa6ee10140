// Package fracture lays an encoded taxonomy out as nested regions of the
// plane by repeatedly slicing a bounding polygon.
//
// What:
//
//   - The bounding region (path "") is sliced first, at the seed angle, into
//     "0" (left open) and "1" (bound to the concept at path "1").
//   - A pending queue of paths is then drained in FIFO order. Slicing path p
//     yields "0"+p, left open, and "1"+p, bound to the concept whose path is
//     "1"+p. Both children inherit the new cut as their reference segment.
//   - Each cut angle follows the angle of the inherited cut in a fixed
//     rotation (default 90 → 0 → 45 → 135 → 90); each offset is drawn
//     uniformly from a band (default [0.2, 0.8]) of an injected Sampler.
//   - A child is queued only when the table has a row at "1" prepended to
//     its path, i.e. it still has a concept to place.
//
// Siblings: a concept's k-th child has token "1" followed by k-1 zeros, so
// its path is "1" + "0"×(k-1) + parent path. Binary slicing therefore places
// every sibling: each further sibling is cut out of the "0" remainder left
// by the previous one.
//
// Output order: "" first, then "0" and "1", then the two children of each
// dequeued path ("0"+p before "1"+p). Children are queued "1"+p first.
//
// Concurrency: a call owns its queue and output. A Sampler such as
// *rand.Rand is not goroutine-safe and must not be shared between
// concurrent calls.
//
// Errors:
//
//   - ErrTableNil: nil table.
//   - ErrEncodingLookup: a path expected in the table or among the produced
//     regions is missing (e.g. an empty table has no concept at "1").
//   - ErrUnknownAngle: an inherited cut's angle is not in the sequence.
//   - slicer.ErrDegenerateSlice and other slicer errors, wrapped.
//   - ErrOptionViolation: an invalid Option.
package fracture
