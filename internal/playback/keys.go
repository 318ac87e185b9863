package playback

// Key names as reported by the terminal key stream.
const (
	KeyNext       = "right"
	KeyPrev       = "left"
	KeyFullscreen = "f"
	KeyPlay       = "space"
	KeyEscape     = "esc"
)

// HandleKey dispatches a released key to its transition and reports whether the key was bound.
// Unbound keys change nothing.
func (c *Controller) HandleKey(key string) bool {
	switch key {
	case KeyNext:
		c.Next()
	case KeyPrev:
		c.Prev()
	case KeyFullscreen:
		c.ToggleFullscreen()
	case KeyPlay, " ":
		c.TogglePlay()
	case KeyEscape:
		c.Escape()
	default:
		return false
	}
	return true
}
