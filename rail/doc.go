// Package rail implements the navigation and camera-animation state
// machine for rail reading: moving line-by-line and block-by-block
// through a zoomed document page instead of free-panning.
//
// # State machine
//
// A [Nav] is seeded with a page analysis and a navigable class set:
//
//	nav := rail.New(rail.DefaultConfig())
//	nav.SetAnalysis(analysis, model.DefaultNavigableClasses())
//
// Rail mode engages when the zoom crosses the configured threshold
// ([Nav.UpdateZoom]), selecting the navigable block nearest the
// viewport center. While active, [Nav.NextLine] and [Nav.PrevLine]
// move the cursor; at a page edge they return a boundary [Result]
// without moving, leaving the page transition to the caller.
//
// # Animation
//
// Cursor changes are followed by [Nav.StartSnapToCurrent], a cubic
// ease-out transition to the start-of-line framing. Held horizontal
// scrolling ([Nav.StartScroll]) ramps from a start speed to a maximum
// with quadratic ease-in over the configured ramp time. Both advance in
// [Nav.Tick], which takes the frame delta explicitly and reports
// whether another frame is needed.
//
// Camera X is always constrained by [Nav.ClampX]: the active block,
// expanded by a 5% margin, is centered when it fits the viewport and
// otherwise never scrolls fully out of view.
//
// All operations are total. Calls while inactive or with no navigable
// blocks are safe no-ops; indices are clamped, never out of range.
package rail
