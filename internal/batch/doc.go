// Package batch splits row sequences into fixed-size chunks for remote
// lookup and tracks chunk-level progress.
//
// The KEGG REST service enforces a hard per-call id ceiling and an
// implicit rate limit, so chunks are processed strictly sequentially with
// one outstanding request at a time. Chunk boundaries are absolute
// [start, end) index ranges into the original row sequence, which lets
// per-chunk results merge back into absolute row positions.
package batch
