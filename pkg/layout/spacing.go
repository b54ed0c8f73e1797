package layout

// Bullet spacing constants. Sparse lists (3 bullets or fewer) are spread to
// fill a share of the zone; dense lists get fixed spacing.
const (
	spacingDenseBullets = 3
	spacingDensePt      = 12.0
	spacingFillRatio    = 0.55
	spacingMinPt        = 24.0
	spacingMaxPt        = 48.0
)

// SpaceAfter returns the vertical space in points to insert after each bullet.
// For up to 3 bullets the list is spread toward 55% of the zone height,
// clamped to [24, 48]. A single bullet gets the clamp floor. More than 3
// bullets always get 12pt.
func SpaceAfter(bulletCount int, lineHeightPt, zoneHeightPt float64) float64 {
	if bulletCount > spacingDenseBullets {
		return spacingDensePt
	}
	if bulletCount <= 1 {
		return spacingMinPt
	}
	space := (zoneHeightPt*spacingFillRatio - float64(bulletCount)*lineHeightPt) / float64(bulletCount-1)
	if space < spacingMinPt {
		return spacingMinPt
	}
	if space > spacingMaxPt {
		return spacingMaxPt
	}
	return space
}
