// Package palette defines the closed color token set and the story-driven
// assignment of tokens to chart elements.
//
// The palette is closed: every color the engine emits is one of the tokens
// below. The default state is neutral grey; color appears only where the
// story mode asks for it.
package palette

// Token is a named color from the closed palette.
type Token string

// The closed token set. No color outside this set may be emitted.
const (
	PrimaryGreen Token = "primary_green"
	AccentBlue   Token = "accent_blue"
	AccentYellow Token = "accent_yellow"
	NegativeRed  Token = "negative_red"

	BodyText  Token = "body_text"
	AxisGrey  Token = "axis_grey"
	LightGrey Token = "light_grey"
	Gridline  Token = "gridline_light"
	White     Token = "white"
	LightBG   Token = "light_gray_bg"

	SeqShade1 Token = "seq_shade_1"
	SeqShade2 Token = "seq_shade_2"
	SeqShade3 Token = "seq_shade_3"
	SeqShade4 Token = "seq_shade_4"
)

// hexValues maps each token to its fixed hex value.
var hexValues = map[Token]string{
	PrimaryGreen: "#147B58",
	AccentBlue:   "#005EB8",
	AccentYellow: "#F3C13A",
	NegativeRed:  "#E65166",

	BodyText:  "#4A4A4A",
	AxisGrey:  "#A9A9A9",
	LightGrey: "#D3D3D3",
	Gridline:  "#E0E0E0",
	White:     "#FFFFFF",
	LightBG:   "#F5F5F5",

	SeqShade1: "#025645",
	SeqShade2: "#517B70",
	SeqShade3: "#51A3A3",
	SeqShade4: "#A2DAD9",
}

// Sequential is the ordered 4-shade ramp used for comparisons and waterfall
// increases, darkest first.
var Sequential = [4]Token{SeqShade1, SeqShade2, SeqShade3, SeqShade4}

// Hex returns the token's hex value, or empty string for unknown tokens.
func (t Token) Hex() string {
	return hexValues[t]
}

// Valid reports whether t belongs to the closed palette.
func (t Token) Valid() bool {
	_, ok := hexValues[t]
	return ok
}

// All returns every token in the closed palette. The slice is a copy; the
// palette itself cannot be extended at runtime.
func All() []Token {
	out := make([]Token, 0, len(hexValues))
	for t := range hexValues {
		out = append(out, t)
	}
	return out
}
