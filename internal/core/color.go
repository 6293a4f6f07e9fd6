package core

// Color represents a foreground color for a screen cell.
// Uses ANSI 256-color codes for terminal compatibility.
type Color uint8

// Predefined colors for game elements.
const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
	ColorBrightRed
	ColorBrightGreen
	ColorBrightYellow
	ColorBrightWhite
	ColorGray
	ColorDarkGray
	ColorDarkGreen
	ColorGold
	ColorCrimson
	ColorRosyBrown
)

// FoodShades orders the food colors from fully visible to almost faded.
// The painter picks a shade from the blink alpha.
var FoodShades = []Color{
	ColorBrightRed,
	ColorCrimson,
	ColorRed,
	ColorRosyBrown,
	ColorDarkGray,
}

// ShadeForAlpha maps an alpha value in [0, 255] onto FoodShades.
func ShadeForAlpha(alpha int) Color {
	alpha = Clamp(alpha, 0, 255)
	idx := (255 - alpha) * len(FoodShades) / 256
	return FoodShades[idx]
}
