// Package viewport manages the 2D camera over a laid-out scene.
//
// # Transform
//
// The controller owns a scalar [State]: zoom scale plus pan offset. A
// renderer applies the transform "translate(panX, panY) then scale(scale)",
// i.e. a world point w maps to the screen point scale·(w + pan). All
// controller operations are written against that contract; in particular
// [Controller.PanBy] divides incoming screen deltas by the current scale so
// the world point under the pointer stays fixed during a drag at any zoom.
//
// # States
//
// The controller is a two-state machine: Idle and Panning. Panning is
// entered with StartPan (pointer-down over empty canvas) and left with
// EndPan (pointer-up or pointer-leave); PanBy calls outside Panning are
// ignored.
//
// # Safety
//
// Scale is clamped to the configured bounds on every mutation, so repeated
// zoom calls converge to the bounds and stay there. Fit-to-content over an
// empty node set is a no-op. Nothing in this package blocks, locks, or
// faults; it is meant to be driven from a single UI goroutine.
package viewport
