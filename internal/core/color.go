package core

// Color represents a foreground color for a screen cell.
// Values map to ANSI 256-color codes in the platform renderer.
type Color uint8

// Base palette.
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
	ColorBrightBlue
	ColorBrightMagenta
	ColorBrightCyan
	ColorBrightWhite
	ColorOrange
	ColorGray
	ColorCoral
)

// Semantic aliases shared by the games, so a palette change touches one place.
const (
	ColorHarmful    = ColorBrightRed
	ColorBeneficial = ColorBrightGreen
	ColorPowerUp    = ColorBrightYellow
	ColorPlayer     = ColorCoral
	ColorHUD        = ColorGray
	ColorAnnounce   = ColorBrightMagenta
)
