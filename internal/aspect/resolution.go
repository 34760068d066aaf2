package aspect

import "fmt"

// Resolution is a frame size in pixels.
type Resolution struct {
	Width  int
	Height int
}

func (r Resolution) String() string {
	return fmt.Sprintf("%dx%d", r.Width, r.Height)
}

// Kind tags the outcome of a classification.
type Kind int

const (
	// NeedsLetterbox means the frame must be scaled and padded to 16:9.
	NeedsLetterbox Kind = iota
	// AlreadySixteenNine means the frame is left untouched.
	AlreadySixteenNine
)

func (k Kind) String() string {
	switch k {
	case AlreadySixteenNine:
		return "already-16:9"
	case NeedsLetterbox:
		return "needs-letterbox"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Classification is the result handed from the inspector to the transcoder.
// Resolution is always the probed size; it is only acted on when Kind is
// NeedsLetterbox.
type Classification struct {
	Kind       Kind
	Resolution Resolution
}

// NeedsLetterbox reports whether the transcoder has to run.
func (c Classification) NeedsLetterbox() bool {
	return c.Kind == NeedsLetterbox
}

// Classify applies the divisibility rule: width%16 == 0 and height%9 == 0.
func Classify(res Resolution) Classification {
	if res.Width%16 == 0 && res.Height%9 == 0 {
		return Classification{Kind: AlreadySixteenNine, Resolution: res}
	}
	return Classification{Kind: NeedsLetterbox, Resolution: res}
}
