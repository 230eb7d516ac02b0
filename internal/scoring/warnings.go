package scoring

import "strings"

// FormattingWarnings flags ATS-unfriendly artifacts in extracted resume
// text: box-drawing or geometric-shape characters left behind by table and
// graphic layouts, and raw HTML image/table markup. It runs over the raw
// text, before normalization strips the evidence.
func FormattingWarnings(text string) []string {
	var warnings []string
	for _, r := range text {
		if r >= 0x2500 && r <= 0x25FF {
			warnings = append(warnings, "Avoid tables or graphics: Detected special/box characters.")
			break
		}
	}
	if strings.Contains(text, "<img") || strings.Contains(text, "<table") {
		warnings = append(warnings, "Images/table HTML tags detected.")
	}
	return warnings
}
