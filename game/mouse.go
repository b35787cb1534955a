package game

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/morph/gesture"
)

// wheelPinchStep is how far one wheel notch opens or closes the hand.
const wheelPinchStep = 0.05

// mouseHand stands in for a hand tracker: holding the right button shows
// the hand at the pointer, the wheel opens and closes it.
type mouseHand struct {
	pinch float32
	rng   gesture.Range
}

func newMouseHand(r gesture.Range) *mouseHand {
	return &mouseHand{pinch: 0.5, rng: r}
}

// signal maps one pointer sample to a gesture. The wheel adjusts the
// stored pinch even while the hand is hidden.
func (m *mouseHand) signal(mx, my, width, height float32, held bool, wheel float32) gesture.Signal {
	m.pinch += wheel * wheelPinchStep
	if m.pinch < 0 {
		m.pinch = 0
	}
	if m.pinch > 1 {
		m.pinch = 1
	}

	if !held || width <= 0 || height <= 0 {
		return gesture.Neutral()
	}

	return gesture.Signal{
		Detected:      true,
		IsOpen:        m.rng.IsOpen(m.pinch),
		PinchDistance: m.pinch,
		X:             (mx/width - 0.5) * m.rng.Extent,
		Y:             -(my/height - 0.5) * m.rng.Extent,
	}
}

// poll reads the pointer and publishes the resulting signal.
func (m *mouseHand) poll(pub gesture.Publisher) {
	pos := rl.GetMousePosition()
	s := m.signal(
		pos.X, pos.Y,
		float32(rl.GetScreenWidth()), float32(rl.GetScreenHeight()),
		rl.IsMouseButtonDown(rl.MouseButtonRight),
		rl.GetMouseWheelMove(),
	)
	pub.Publish(s)
}
