// Package lower implements the atomic-mutex lowering pass.
//
// The pass runs in two stages over the same statement tree. The downgrade
// stage clears the mutex name of every atomic region whose update is still
// an indivisible read-modify-write, letting it compile to a bare hardware
// atomic. The synthesis stage backs every surviving mutex name with exactly
// one mutex array, allocated at the enclosing buffer allocation (or producer
// marker, for outputs) and destroyed on every exit from that scope, then
// wraps each protected region's body in per-element lock and unlock calls.
//
// The analysis must look through aliasing introduced by earlier lowering:
// a let binding lifted out of a store can carry a load of the very buffer
// the region updates, which breaks the indivisibility the region promises.
// Only regions free of such lifted bindings are downgraded.
package lower
