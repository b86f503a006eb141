package rail

// blockMarginRatio is the margin added to each side of the active block
// when clamping, and the viewport fraction left of the block's left edge
// when framing the start of a line.
const blockMarginRatio = 0.05

// snapAnimation is an in-progress eased camera transition. It lives from
// a cursor move (or activation) until its progress reaches 1, or until a
// newer snap supersedes it.
type snapAnimation struct {
	startX, startY   float64
	targetX, targetY float64
	elapsed          float64 // seconds
	duration         float64 // seconds
}

// scrollState tracks a held horizontal scroll: its direction and how
// long the hold has lasted, which drives the speed ramp.
type scrollState struct {
	dir  Dir
	held float64 // seconds
}

// StartScroll begins (or redirects) continuous horizontal scrolling
// along the current line. Called on key press; a direction change
// restarts the speed ramp.
func (n *Nav) StartScroll(dir Dir) {
	if !n.active || len(n.navigable) == 0 {
		return
	}
	if n.scroll == nil || n.scroll.dir != dir {
		n.scroll = &scrollState{dir: dir}
	}
}

// StopScroll ends continuous scrolling. Called on key release.
func (n *Nav) StopScroll() {
	n.scroll = nil
}

// Scrolling reports whether a held scroll is in progress.
func (n *Nav) Scrolling() bool {
	return n.scroll != nil
}

// StartSnapToCurrent begins an eased camera transition that frames the
// start of the current line: the line centered vertically, the block's
// left edge at a small viewport margin. Invoked after every cursor
// change and after zoom changes while active.
func (n *Nav) StartSnapToCurrent(cam Camera, zoom, viewWidth, viewHeight float64) {
	if !n.active || len(n.navigable) == 0 {
		return
	}

	targetX, targetY := n.targetCamera(zoom, viewWidth, viewHeight)

	n.snap = &snapAnimation{
		startX:   cam.X,
		startY:   cam.Y,
		targetX:  targetX,
		targetY:  targetY,
		duration: n.config.SnapDuration.Seconds(),
	}
}

// targetCamera computes the camera offset that shows the start of the
// current line: line center on the vertical viewport center, block left
// edge at the margin.
func (n *Nav) targetCamera(zoom, viewWidth, viewHeight float64) (x, y float64) {
	block := n.CurrentBlock()
	line := n.CurrentLineBand()

	y = viewHeight/2 - line.Y*zoom
	x = viewWidth*blockMarginRatio - block.BBox.X*zoom
	return x, y
}

// ClampX constrains a candidate camera X to the active block, expanded
// by a margin on each side. A block narrower than the viewport is
// centered; otherwise the viewport may not leave the margined block.
func (n *Nav) ClampX(cameraX, zoom, viewWidth float64) float64 {
	if len(n.navigable) == 0 {
		return cameraX
	}

	block := n.CurrentBlock()
	margin := block.BBox.Width * blockMarginRatio
	left := block.BBox.X - margin
	right := block.BBox.Right() + margin
	widthOnScreen := (right - left) * zoom

	if widthOnScreen <= viewWidth {
		center := (left + right) / 2
		return viewWidth/2 - center*zoom
	}

	// Left block edge flush with the left viewport edge at the maximum,
	// right edge flush with the right viewport edge at the minimum.
	maxX := -left * zoom
	minX := viewWidth - right*zoom
	if cameraX < minX {
		return minX
	}
	if cameraX > maxX {
		return maxX
	}
	return cameraX
}

// Tick advances the snap animation and held scroll by dt seconds,
// mutating the camera in place. It returns true while further frames
// are needed, so the host can skip redraws when nothing moves.
func (n *Nav) Tick(cam *Camera, dt, zoom, viewWidth float64) bool {
	animating := false

	if n.snap != nil {
		n.snap.elapsed += dt
		t := 1.0
		if n.snap.duration > 0 {
			t = n.snap.elapsed / n.snap.duration
			if t > 1 {
				t = 1
			}
		}
		eased := easeOutCubic(t)

		cam.X = n.snap.startX + (n.snap.targetX-n.snap.startX)*eased
		cam.Y = n.snap.startY + (n.snap.targetY-n.snap.startY)*eased

		if t >= 1 {
			n.snap = nil
		} else {
			animating = true
		}
	}

	if n.scroll != nil {
		n.scroll.held += dt

		t := 1.0
		if ramp := n.config.ScrollRampTime.Seconds(); ramp > 0 {
			t = n.scroll.held / ramp
			if t > 1 {
				t = 1
			}
		}
		speed := n.config.ScrollSpeedStart + (n.config.ScrollSpeedMax-n.config.ScrollSpeedStart)*easeInQuad(t)

		delta := speed * dt * zoom
		x := cam.X
		if n.scroll.dir == Forward {
			x -= delta
		} else {
			x += delta
		}
		cam.X = n.ClampX(x, zoom, viewWidth)
		animating = true
	}

	return animating
}

// easeOutCubic maps t in [0,1] to 1-(1-t)^3.
func easeOutCubic(t float64) float64 {
	u := 1 - t
	return 1 - u*u*u
}

// easeInQuad maps t in [0,1] to t^2.
func easeInQuad(t float64) float64 {
	return t * t
}
