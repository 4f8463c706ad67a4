package ui

// Colour accessors for the active theme. They return "" under NoColorTheme.

func ColorRed() string       { return GetCurrentTheme().Error }
func ColorGreen() string     { return GetCurrentTheme().Success }
func ColorYellow() string    { return GetCurrentTheme().Warning }
func ColorBlue() string      { return GetCurrentTheme().Primary }
func ColorMagenta() string   { return GetCurrentTheme().Info }
func ColorCyan() string      { return GetCurrentTheme().Primary }
func ColorDim() string       { return GetCurrentTheme().Secondary }
func ColorBold() string      { return GetCurrentTheme().Bold }
func ColorUnderline() string { return GetCurrentTheme().Underline }
func ColorReset() string     { return GetCurrentTheme().Reset }

// ErrorColors adapts the active theme to apperrors.ColorProvider.
type ErrorColors struct{}

func (ErrorColors) Red() string    { return ColorRed() }
func (ErrorColors) Yellow() string { return ColorYellow() }
func (ErrorColors) Reset() string  { return ColorReset() }
