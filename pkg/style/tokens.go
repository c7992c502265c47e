package style

// Color is a CSS colour literal.
type Color string

// String returns the colour literal.
func (c Color) String() string {
	return string(c)
}

// Palette used by the landing page. Names follow the gray/blue scale the
// hex values were taken from.
const (
	White   Color = "white"
	Gray200 Color = "#E2E8F0"
	Gray600 Color = "#4A5568"
	Gray800 Color = "#2D3748"
	Gray900 Color = "#1A202C"
	Blue600 Color = "#3182CE"

	// Purple is the shell header colour.
	Purple Color = "rebeccapurple"
)

// SystemFontStack is the button font stack; it loads nothing over the network.
const SystemFontStack = `-apple-system,'BlinkMacSystemFont','Segoe UI','Roboto','Oxygen','Ubuntu','Cantarell','Fira Sans','Droid Sans','Helvetica Neue',sans-serif`

// Font sizes shared by the hero text.
var (
	TitleSize    = Fluid(16, 2)
	SubtitleSize = Fluid(16, 1)
	TokenSize    = Fluid(16, 1.5)
)
