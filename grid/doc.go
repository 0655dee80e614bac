// Package grid provides a structured 2-D grid partitioned into row strips
// across the ranks of a comm group, and scalar fields stored on it.
//
// What:
//
//   - Grid: global dimensions Mx×My plus the strip [Ys, Ys+Ym) owned by this rank.
//   - Field[T]: per-rank storage of the owned strip and a one-row ghost halo above
//     and below. Cells are addressed by global (i, j); i runs along x, j along y.
//   - Point access (At, Set), 4-neighbour Star, 8-neighbour Box, SetAll, CopyFrom.
//   - Collectives: UpdateGhosts, Range, Sum, PutOnRoot (gather into one row-major
//     My×Mx buffer on comm.Root) and GetFromRoot (scatter it back).
//
// Reads outside the global domain return the zero value of T, which acts as a
// closed, zero-valued border around the grid.
//
// Every collective method must be called by all ranks in the same order.
package grid
