// Package comm runs a fixed group of cooperating ranks inside one process and
// provides the collective operations a distributed grid needs.
//
// What:
//
//   - Run starts Size ranks as goroutines; each receives its own *Comm.
//   - Collectives: Barrier, Allreduce (sum, max, min, logical or), Gather,
//     Scatter, Bcast, BcastError and the halo-row Exchange used for ghost updates.
//   - Every collective is matched across ranks by call order. Ranks must issue
//     the identical sequence of collectives; a rank that returns while others are
//     still waiting makes the remaining collectives fail with ErrMismatch.
//
// Failure model:
//
//   - The first rank to return an error cancels the group context. Ranks blocked
//     in a collective observe the cancellation and return ErrAborted, so a failed
//     collective either completes everywhere or aborts the whole group.
//
// Determinism:
//
//	Reductions combine contributions in rank order, so the result is identical on
//	every rank and independent of goroutine scheduling.
//
// Complexity:
//
//   - Each collective costs one rendezvous (O(Size) bookkeeping) plus copying
//     the payloads: O(Size×len) for Allreduce, O(total) for Gather/Scatter.
package comm
