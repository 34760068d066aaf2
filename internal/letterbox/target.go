package letterbox

import (
	"fmt"

	"letterbox/internal/aspect"
)

// TargetFrame is the 16:9 frame a video is letterboxed into.
type TargetFrame struct {
	Width  int
	Height int
}

func (t TargetFrame) String() string {
	return fmt.Sprintf("%dx%d", t.Width, t.Height)
}

var (
	// HD is used for sources up to 1280 pixels wide.
	HD = TargetFrame{Width: 1280, Height: 720}
	// FullHD is used for everything wider.
	FullHD = TargetFrame{Width: 1920, Height: 1080}
)

// SelectTarget picks the target frame from the source width alone.
func SelectTarget(res aspect.Resolution) TargetFrame {
	if res.Width <= HD.Width {
		return HD
	}
	return FullHD
}
