package transcript

import "strings"

// Patterns and replacements operate on the JSON-escaped payload text as it
// appears in the raw line, so every backslash below is literal.
const (
	promptMarkerConstant              = "$ "
	trailingPromptPatternConstant     = `$ "]`
	bareLineBreakEventPatternConstant = `"\r\n"]`
	commentEventPatternConstant       = `"#"`
	escapedLineBreakConstant          = `\r\n`
	dimIntensitySequenceConstant      = `\u001b[39;2m`
	resetSequenceConstant             = `\u001b[0m`
	coloredPromptConstant             = `\u001b[34m$` + resetSequenceConstant + ` `
)

// PromptStatistics counts the rewrites performed by RecolorPrompts.
type PromptStatistics struct {
	StrippedPrompts     int
	DimmedPrompts       int
	ColoredPrompts      int
	AnnotatedLineBreaks int
}

// RecolorPrompts rewrites prompt markers and annotates line breaks. It takes
// ownership of the recording's lines and returns them rewritten.
//
// The first scan strips or dims a trailing prompt depending on the event that
// follows it and appends a reset after every escaped line break. The second
// scan colors whatever prompt markers the first scan left behind, so it must
// only start once the first scan has visited every line.
func RecolorPrompts(recording Recording) (Recording, PromptStatistics) {
	statistics := PromptStatistics{}
	lines := recording.Lines

	for lineIndex := range lines {
		if strings.Contains(lines[lineIndex], trailingPromptPatternConstant) && lineIndex+1 < len(lines) {
			nextLine := lines[lineIndex+1]
			if strings.Contains(nextLine, bareLineBreakEventPatternConstant) {
				statistics.StrippedPrompts += strings.Count(lines[lineIndex], promptMarkerConstant)
				lines[lineIndex] = strings.ReplaceAll(lines[lineIndex], promptMarkerConstant, "")
			}
			if strings.Contains(nextLine, commentEventPatternConstant) {
				statistics.DimmedPrompts += strings.Count(lines[lineIndex], promptMarkerConstant)
				lines[lineIndex] = strings.ReplaceAll(lines[lineIndex], promptMarkerConstant, dimIntensitySequenceConstant)
			}
		}

		statistics.AnnotatedLineBreaks += strings.Count(lines[lineIndex], escapedLineBreakConstant)
		lines[lineIndex] = strings.ReplaceAll(lines[lineIndex], escapedLineBreakConstant, escapedLineBreakConstant+resetSequenceConstant)
	}

	for lineIndex := range lines {
		statistics.ColoredPrompts += strings.Count(lines[lineIndex], promptMarkerConstant)
		lines[lineIndex] = strings.ReplaceAll(lines[lineIndex], promptMarkerConstant, coloredPromptConstant)
	}

	return Recording{Lines: lines}, statistics
}
