// Package catalog holds the deck chrome color schemes.
//
// A scheme styles the chrome of a deck (title backgrounds, divider fills,
// footer text). Chart elements never draw from a scheme; their colors come
// from the closed palette in pkg/palette.
package catalog

import (
	"math"
	"strconv"
	"strings"

	"github.com/deckgrid/deckgrid/pkg/errors"
)

// DefaultScheme is used when a deck names no scheme or names an unknown one
// in a context that allows falling back.
const DefaultScheme = "corporate_blue"

// Scheme is a named set of chrome colors, each a "#RRGGBB" hex string.
type Scheme struct {
	Name       string `bson:"_id"        json:"name"`
	Primary    string `bson:"primary"    json:"primary"`
	Secondary  string `bson:"secondary"  json:"secondary"`
	Background string `bson:"background" json:"background"`
	Text       string `bson:"text"       json:"text"`
	Accent     string `bson:"accent"     json:"accent"`
}

// Builtin returns the eight stock schemes in a stable order.
func Builtin() []Scheme {
	return []Scheme{
		{Name: "corporate_blue", Primary: "#1F4788", Secondary: "#2E7D32", Background: "#FFFFFF", Text: "#333333", Accent: "#FF6B35"},
		{Name: "modern_tech", Primary: "#2C3E50", Secondary: "#3498DB", Background: "#FFFFFF", Text: "#2C3E50", Accent: "#E74C3C"},
		{Name: "vibrant_creative", Primary: "#9B59B6", Secondary: "#F39C12", Background: "#FFFFFF", Text: "#34495E", Accent: "#1ABC9C"},
		{Name: "minimalist_gray", Primary: "#455A64", Secondary: "#78909C", Background: "#FAFAFA", Text: "#263238", Accent: "#FF7043"},
		{Name: "earth_tones", Primary: "#5D4037", Secondary: "#8D6E63", Background: "#FFF8E1", Text: "#3E2723", Accent: "#43A047"},
		{Name: "ocean_blue", Primary: "#006064", Secondary: "#0097A7", Background: "#E0F7FA", Text: "#004D40", Accent: "#FF6F00"},
		{Name: "sunset", Primary: "#BF360C", Secondary: "#F4511E", Background: "#FFF3E0", Text: "#3E2723", Accent: "#FFB300"},
		{Name: "professional_green", Primary: "#1B5E20", Secondary: "#388E3C", Background: "#FFFFFF", Text: "#263238", Accent: "#FBC02D"},
	}
}

// topicKeywords maps topic vocabulary to a scheme name. Checked in order so
// the first matching group wins.
var topicKeywords = []struct {
	scheme string
	words  []string
}{
	{"modern_tech", []string{"tech", "ai", "digital", "software", "innovation"}},
	{"corporate_blue", []string{"business", "finance", "corporate", "strategy"}},
	{"professional_green", []string{"environment", "sustainability", "green", "eco", "nature"}},
	{"vibrant_creative", []string{"creative", "design", "art", "marketing"}},
	{"minimalist_gray", []string{"education", "research", "academic", "science"}},
}

// Suggest picks a scheme name for a deck topic. Unknown topics get the
// default scheme.
func Suggest(topic string) string {
	lower := strings.ToLower(topic)
	for _, group := range topicKeywords {
		for _, word := range group.words {
			if strings.Contains(lower, word) {
				return group.scheme
			}
		}
	}
	return DefaultScheme
}

// minContrastRatio is the WCAG AA threshold for normal text.
const minContrastRatio = 4.5

// EnsureContrast checks a background/text pair against the WCAG AA ratio.
// When the pair falls short, the text color is replaced with black or white,
// whichever contrasts with the background. The background is never changed.
func EnsureContrast(background, text string) (string, string, error) {
	bgLum, err := Luminance(background)
	if err != nil {
		return "", "", err
	}
	textLum, err := Luminance(text)
	if err != nil {
		return "", "", err
	}
	if ContrastRatio(bgLum, textLum) >= minContrastRatio {
		return background, text, nil
	}
	if bgLum > 0.5 {
		return background, "#000000", nil
	}
	return background, "#FFFFFF", nil
}

// Luminance returns the WCAG relative luminance of a "#RRGGBB" color.
func Luminance(hexColor string) (float64, error) {
	r, g, b, err := parseHex(hexColor)
	if err != nil {
		return 0, err
	}
	return 0.2126*linearize(r) + 0.7152*linearize(g) + 0.0722*linearize(b), nil
}

// ContrastRatio returns the WCAG contrast ratio between two luminances.
func ContrastRatio(lum1, lum2 float64) float64 {
	lighter := math.Max(lum1, lum2)
	darker := math.Min(lum1, lum2)
	return (lighter + 0.05) / (darker + 0.05)
}

func linearize(channel float64) float64 {
	if channel <= 0.03928 {
		return channel / 12.92
	}
	return math.Pow((channel+0.055)/1.055, 2.4)
}

func parseHex(hexColor string) (r, g, b float64, err error) {
	s := strings.TrimPrefix(hexColor, "#")
	if len(s) != 6 {
		return 0, 0, 0, errors.New(errors.ErrCodeInvalidInput,
			"color %q is not a #RRGGBB hex string", hexColor)
	}
	var channels [3]float64
	for i := 0; i < 3; i++ {
		v, perr := strconv.ParseUint(s[2*i:2*i+2], 16, 8)
		if perr != nil {
			return 0, 0, 0, errors.Wrap(errors.ErrCodeInvalidInput, perr,
				"color %q is not a #RRGGBB hex string", hexColor)
		}
		channels[i] = float64(v) / 255.0
	}
	return channels[0], channels[1], channels[2], nil
}
