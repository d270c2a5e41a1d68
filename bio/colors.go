package bio

import (
	"image/color"
	"strings"
)

// Color is an index into the colour table.
type Color int

const (
	White Color = iota
	Black
	LightGray
	DarkGray
	Red
	Green
	Blue
	Yellow
	Cyan
	Magenta
	LightRed
	LightGreen
	LightBlue
	DarkRed
	DarkGreen
	DarkBlue
	PaleRed
	PaleGreen
	PaleBlue
	PaleYellow
	PaleCyan
	PaleMagenta
	Brown
	Orange
	PaleOrange
	Purple
	Violet
	PaleViolet
	Gray
	PaleGray
	Cerise
	MidBlue
	// NColors is the number of colours in the table.
	NColors
)

type colorEntry struct {
	name    string
	r, g, b uint8
}

var colorTable = [NColors]colorEntry{
	{"WHITE", 255, 255, 255},
	{"BLACK", 0, 0, 0},
	{"LIGHTGRAY", 200, 200, 200},
	{"DARKGRAY", 100, 100, 100},
	{"RED", 255, 0, 0},
	{"GREEN", 0, 255, 0},
	{"BLUE", 0, 0, 255},
	{"YELLOW", 255, 255, 0},
	{"CYAN", 0, 255, 255},
	{"MAGENTA", 255, 0, 255},
	{"LIGHTRED", 255, 160, 160},
	{"LIGHTGREEN", 160, 255, 160},
	{"LIGHTBLUE", 160, 200, 255},
	{"DARKRED", 175, 0, 0},
	{"DARKGREEN", 0, 175, 0},
	{"DARKBLUE", 0, 0, 175},
	{"PALERED", 255, 220, 220},
	{"PALEGREEN", 220, 255, 220},
	{"PALEBLUE", 220, 220, 255},
	{"PALEYELLOW", 255, 255, 200},
	{"PALECYAN", 200, 255, 255},
	{"PALEMAGENTA", 255, 200, 255},
	{"BROWN", 160, 80, 0},
	{"ORANGE", 255, 128, 0},
	{"PALEORANGE", 255, 220, 110},
	{"PURPLE", 192, 0, 255},
	{"VIOLET", 200, 170, 255},
	{"PALEVIOLET", 235, 215, 255},
	{"GRAY", 150, 150, 150},
	{"PALEGRAY", 235, 235, 235},
	{"CERISE", 255, 0, 128},
	{"MIDBLUE", 86, 178, 222},
}

// String returns the colour name as used in colour scheme files.
func (c Color) String() string {
	if c < 0 || c >= NColors {
		return "UNKNOWN"
	}
	return colorTable[c].name
}

// RGBA returns the colour for drawing.
func (c Color) RGBA() color.RGBA {
	if c < 0 || c >= NColors {
		c = Black
	}
	e := colorTable[c]
	return color.RGBA{R: e.r, G: e.g, B: e.b, A: 255}
}

// ParseColor looks up a colour by its (case insensitive) name.
func ParseColor(name string) (Color, bool) {
	name = strings.ToUpper(strings.TrimSpace(name))
	for i, e := range colorTable {
		if e.name == name {
			return Color(i), true
		}
	}
	return Black, false
}
