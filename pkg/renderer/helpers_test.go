package renderer

import (
	"github.com/df07/go-recursive-raytracer/pkg/core"
)

// recordingCanvas implements Canvas and remembers every write
type recordingCanvas struct {
	width, height int
	writes        map[[2]int]int
	colors        map[[2]int]core.Vec3
	presents      int
}

func newRecordingCanvas(width, height int) *recordingCanvas {
	return &recordingCanvas{
		width:  width,
		height: height,
		writes: make(map[[2]int]int),
		colors: make(map[[2]int]core.Vec3),
	}
}

func (rc *recordingCanvas) Width() int  { return rc.width }
func (rc *recordingCanvas) Height() int { return rc.height }

func (rc *recordingCanvas) SetPixel(x, y int, c core.Vec3) {
	rc.writes[[2]int{x, y}]++
	rc.colors[[2]int{x, y}] = c
}

func (rc *recordingCanvas) Present() { rc.presents++ }

// recordingLogger implements core.Logger and keeps every line
type recordingLogger struct {
	lines []string
}

func (rl *recordingLogger) Printf(format string, args ...interface{}) {
	rl.lines = append(rl.lines, format)
}
