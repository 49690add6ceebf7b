package render

import (
	"golang.org/x/text/unicode/bidi"

	"github.com/markdave123-py/VisionOCR/internal/models"
)

// DetectDirection picks rtl when strong right-to-left characters (Arabic,
// Hebrew) outnumber strong left-to-right ones, and ltr otherwise.
func DetectDirection(s string) models.Direction {
	var rtl, ltr int
	for _, r := range s {
		p, _ := bidi.LookupRune(r)
		switch p.Class() {
		case bidi.R, bidi.AL:
			rtl++
		case bidi.L:
			ltr++
		}
	}
	if rtl > ltr {
		return models.DirectionRTL
	}
	return models.DirectionLTR
}
