package transcript

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strings"
)

const (
	packageAdditionMarkerConstant        = "go: added github.com/"
	packageEntrySeparatorConstant        = "\r\n"
	packageEllipsisEntryConstant         = "..."
	eventPayloadIndexConstant            = 2
	minimumEventElementCountConstant     = eventPayloadIndexConstant + 1
	eventElementSeparatorConstant        = ", "
	eventArrayOpenConstant               = "["
	eventArrayCloseConstant              = "]"
	recordLineTerminatorConstant         = "\n"
	formatViolationMessageConstant       = "package addition record is not a valid event"
	formatViolationTemplateConstant      = "line %d: %w: %w"
	shortEventTemplateConstant           = "line %d: %w: expected at least %d elements, found %d"
	payloadEncodingErrorTemplateConstant = "failed to encode package summary: %w"
	negativeSummaryCountsMessageConstant = "summary entry counts must not be negative"
)

// ErrFormatViolation indicates a package addition line could not be decoded as an event record.
var ErrFormatViolation = errors.New(formatViolationMessageConstant)

// ErrNegativeSummaryCounts indicates SummaryOptions requested a negative head or tail.
var ErrNegativeSummaryCounts = errors.New(negativeSummaryCountsMessageConstant)

// SummaryOptions controls how many package entries survive on each side of the ellipsis.
type SummaryOptions struct {
	HeadEntries int
	TailEntries int
}

// PackageStatistics counts the work performed by CollapsePackageLists.
type PackageStatistics struct {
	MatchedRecords   int
	CollectedEntries int
	SummaryEntries   int
}

// CollapsePackageLists merges every package addition record into the first one,
// replaces its payload with an ellipsized summary, and deletes the rest.
//
// The summary is always head + "..." + tail, even when the collected list is
// shorter than head + tail, so short lists repeat entries on both sides.
func CollapsePackageLists(recording Recording, options SummaryOptions) (Recording, PackageStatistics, error) {
	if options.HeadEntries < 0 || options.TailEntries < 0 {
		return Recording{}, PackageStatistics{}, ErrNegativeSummaryCounts
	}

	lines := recording.Lines
	var collectedEntries []string
	var templateElements []json.RawMessage
	var matchedIndices []int

	for lineIndex, line := range lines {
		if !strings.Contains(line, packageAdditionMarkerConstant) {
			continue
		}

		elements, payload, decodeError := decodeEventRecord(line, lineIndex+1)
		if decodeError != nil {
			return Recording{}, PackageStatistics{}, decodeError
		}

		collectedEntries = append(collectedEntries, strings.Split(payload, packageEntrySeparatorConstant)...)
		if templateElements == nil {
			templateElements = elements
		}
		matchedIndices = append(matchedIndices, lineIndex)
	}

	statistics := PackageStatistics{
		MatchedRecords:   len(matchedIndices),
		CollectedEntries: len(collectedEntries),
	}
	if len(matchedIndices) == 0 {
		return Recording{Lines: lines}, statistics, nil
	}

	summaryEntries := ellipsizeEntries(collectedEntries, options.HeadEntries, options.TailEntries)
	statistics.SummaryEntries = len(summaryEntries)

	summaryLine, encodeError := encodeEventRecord(templateElements, strings.Join(summaryEntries, packageEntrySeparatorConstant))
	if encodeError != nil {
		return Recording{}, PackageStatistics{}, encodeError
	}
	lines[matchedIndices[0]] = summaryLine + recordLineTerminatorConstant

	redundantIndices := matchedIndices[1:]
	for position := len(redundantIndices) - 1; position >= 0; position-- {
		redundantIndex := redundantIndices[position]
		lines = slices.Delete(lines, redundantIndex, redundantIndex+1)
	}

	return Recording{Lines: lines}, statistics, nil
}

// ellipsizeEntries keeps up to headCount leading and tailCount trailing entries
// around a single ellipsis entry. The two windows are taken independently and
// may overlap.
func ellipsizeEntries(entries []string, headCount int, tailCount int) []string {
	headEnd := min(headCount, len(entries))
	tailStart := max(len(entries)-tailCount, 0)

	summary := make([]string, 0, headEnd+1+len(entries)-tailStart)
	summary = append(summary, entries[:headEnd]...)
	summary = append(summary, packageEllipsisEntryConstant)
	summary = append(summary, entries[tailStart:]...)
	return summary
}

func decodeEventRecord(line string, lineNumber int) ([]json.RawMessage, string, error) {
	var elements []json.RawMessage
	if unmarshalError := json.Unmarshal([]byte(line), &elements); unmarshalError != nil {
		return nil, "", fmt.Errorf(formatViolationTemplateConstant, lineNumber, ErrFormatViolation, unmarshalError)
	}
	if len(elements) < minimumEventElementCountConstant {
		return nil, "", fmt.Errorf(shortEventTemplateConstant, lineNumber, ErrFormatViolation, minimumEventElementCountConstant, len(elements))
	}

	var payload string
	if unmarshalError := json.Unmarshal(elements[eventPayloadIndexConstant], &payload); unmarshalError != nil {
		return nil, "", fmt.Errorf(formatViolationTemplateConstant, lineNumber, ErrFormatViolation, unmarshalError)
	}

	return elements, payload, nil
}

// encodeEventRecord re-encodes the record with a new payload. Elements other
// than the payload are written back exactly as they were read.
func encodeEventRecord(elements []json.RawMessage, payload string) (string, error) {
	var payloadBuffer bytes.Buffer
	encoder := json.NewEncoder(&payloadBuffer)
	encoder.SetEscapeHTML(false)
	if encodeError := encoder.Encode(payload); encodeError != nil {
		return "", fmt.Errorf(payloadEncodingErrorTemplateConstant, encodeError)
	}

	encodedElements := make([]string, len(elements))
	for elementIndex, element := range elements {
		encodedElements[elementIndex] = string(element)
	}
	encodedElements[eventPayloadIndexConstant] = strings.TrimSuffix(payloadBuffer.String(), recordLineTerminatorConstant)

	return eventArrayOpenConstant + strings.Join(encodedElements, eventElementSeparatorConstant) + eventArrayCloseConstant, nil
}
