package core

// Color represents a foreground color for a screen cell.
// The platform maps these to ANSI 256-color codes.
type Color uint8

// Palette entries.
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
	ColorBrightCyan
	ColorGold
	ColorSlate
	ColorGray
)

// Board element colours, named after what they draw.
const (
	ColorSnakeHead   = ColorBrightGreen
	ColorSnakeBody   = ColorGreen
	ColorFood        = ColorBrightRed
	ColorObstacle    = ColorSlate
	ColorPowerUp     = ColorGold
	ColorBorder      = ColorBrightCyan
	ColorBorderBoost = ColorMagenta
)
