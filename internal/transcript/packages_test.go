package transcript_test

import (
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/temirov/castfix/internal/transcript"
)

const (
	packageEntryTemplateConstant = "go: added github.com/example/module%02d v1.0.0"
	packageLineTemplateConstant  = "[%s, \"o\", %s]\n"
	packageSeparatorConstant     = "\r\n"
	ellipsisEntryConstant        = "..."
)

func packageEntries(firstIndex int, count int) []string {
	entries := make([]string, 0, count)
	for offset := 0; offset < count; offset++ {
		entries = append(entries, fmt.Sprintf(packageEntryTemplateConstant, firstIndex+offset))
	}
	return entries
}

func packageLine(testInstance *testing.T, timestamp string, entries []string) string {
	testInstance.Helper()
	encodedPayload, encodeError := json.Marshal(strings.Join(entries, packageSeparatorConstant))
	require.NoError(testInstance, encodeError)
	return fmt.Sprintf(packageLineTemplateConstant, timestamp, encodedPayload)
}

func decodeSummaryEntries(testInstance *testing.T, line string) []string {
	testInstance.Helper()
	var elements []any
	require.NoError(testInstance, json.Unmarshal([]byte(line), &elements))
	require.Len(testInstance, elements, 3)
	payload, isString := elements[2].(string)
	require.True(testInstance, isString)
	return strings.Split(payload, packageSeparatorConstant)
}

func TestCollapsePackageListsSummaryShapes(testInstance *testing.T) {
	defaultSummary := transcript.DefaultOptions().Summary

	testCases := []struct {
		name            string
		entryCounts     []int
		expectedSummary func(entries []string) []string
	}{
		{
			name:        "single_entry_repeats_on_both_sides",
			entryCounts: []int{1},
			expectedSummary: func(entries []string) []string {
				return []string{entries[0], ellipsisEntryConstant, entries[0]}
			},
		},
		{
			name:        "two_entries_repeat_on_both_sides",
			entryCounts: []int{2},
			expectedSummary: func(entries []string) []string {
				return []string{entries[0], entries[1], ellipsisEntryConstant, entries[0], entries[1]}
			},
		},
		{
			name:        "five_entries_overlap_in_the_middle",
			entryCounts: []int{2, 3},
			expectedSummary: func(entries []string) []string {
				return []string{entries[0], entries[1], entries[2], ellipsisEntryConstant, entries[2], entries[3], entries[4]}
			},
		},
		{
			name:        "six_entries_split_evenly",
			entryCounts: []int{3, 3},
			expectedSummary: func(entries []string) []string {
				return []string{entries[0], entries[1], entries[2], ellipsisEntryConstant, entries[3], entries[4], entries[5]}
			},
		},
		{
			name:        "many_entries_keep_head_and_tail",
			entryCounts: []int{4, 1, 7},
			expectedSummary: func(entries []string) []string {
				return []string{entries[0], entries[1], entries[2], ellipsisEntryConstant, entries[9], entries[10], entries[11]}
			},
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(subTest *testing.T) {
			lines := []string{"{\"version\": 2}\n"}
			var allEntries []string
			for recordIndex, entryCount := range testCase.entryCounts {
				entries := packageEntries(len(allEntries), entryCount)
				allEntries = append(allEntries, entries...)
				lines = append(lines, packageLine(subTest, fmt.Sprintf("%d.5", recordIndex), entries))
				lines = append(lines, "[9.0, \"o\", \"between\"]\n")
			}

			recording, statistics, collapseError := transcript.CollapsePackageLists(transcript.Recording{Lines: lines}, defaultSummary)
			require.NoError(subTest, collapseError)

			expectedSummary := testCase.expectedSummary(allEntries)
			require.Equal(subTest, len(testCase.entryCounts), statistics.MatchedRecords)
			require.Equal(subTest, len(allEntries), statistics.CollectedEntries)
			require.Equal(subTest, len(expectedSummary), statistics.SummaryEntries)

			require.Len(subTest, recording.Lines, 1+2*len(testCase.entryCounts)-(len(testCase.entryCounts)-1))
			require.True(subTest, strings.HasPrefix(recording.Lines[1], "[0.5, \"o\", "))
			require.True(subTest, strings.HasSuffix(recording.Lines[1], "]\n"))
			if diff := cmp.Diff(expectedSummary, decodeSummaryEntries(subTest, recording.Lines[1])); diff != "" {
				subTest.Fatalf("unexpected summary (-want +got):\n%s", diff)
			}
			for _, line := range recording.Lines[2:] {
				require.NotContains(subTest, line, "go: added github.com/")
			}
		})
	}
}

func TestCollapsePackageListsSpecExample(testInstance *testing.T) {
	line := `["o","","go: added github.com/a\r\ngo: added github.com/b"]` + "\n"

	recording, _, collapseError := transcript.CollapsePackageLists(
		transcript.Recording{Lines: []string{line}},
		transcript.DefaultOptions().Summary,
	)

	require.NoError(testInstance, collapseError)
	require.Equal(
		testInstance,
		[]string{`["o", "", "go: added github.com/a\r\ngo: added github.com/b\r\n...\r\ngo: added github.com/a\r\ngo: added github.com/b"]` + "\n"},
		recording.Lines,
	)
}

func TestCollapsePackageListsPreservesOtherElements(testInstance *testing.T) {
	line := `[1.50000, {"channel": "o"}, "go: added github.com/a <x> & y", "extra"]` + "\n"

	recording, _, collapseError := transcript.CollapsePackageLists(
		transcript.Recording{Lines: []string{line}},
		transcript.DefaultOptions().Summary,
	)

	require.NoError(testInstance, collapseError)
	require.Equal(
		testInstance,
		`[1.50000, {"channel": "o"}, "go: added github.com/a <x> & y\r\n...\r\ngo: added github.com/a <x> & y", "extra"]`+"\n",
		recording.Lines[0],
	)
}

func TestCollapsePackageListsWithoutMatchesIsNoop(testInstance *testing.T) {
	lines := []string{"[0.1, \"o\", \"go: downloading golang.org/x/text\"]\n", "[0.2, \"o\", \"done\"]\n"}

	recording, statistics, collapseError := transcript.CollapsePackageLists(
		transcript.Recording{Lines: append([]string{}, lines...)},
		transcript.DefaultOptions().Summary,
	)

	require.NoError(testInstance, collapseError)
	require.Equal(testInstance, lines, recording.Lines)
	require.Equal(testInstance, transcript.PackageStatistics{}, statistics)
}

func TestCollapsePackageListsHonorsSummaryOptions(testInstance *testing.T) {
	entries := packageEntries(0, 8)
	lines := []string{packageLine(testInstance, "0.1", entries)}

	recording, statistics, collapseError := transcript.CollapsePackageLists(
		transcript.Recording{Lines: lines},
		transcript.SummaryOptions{HeadEntries: 1, TailEntries: 0},
	)

	require.NoError(testInstance, collapseError)
	require.Equal(testInstance, 2, statistics.SummaryEntries)
	require.Equal(testInstance, []string{entries[0], ellipsisEntryConstant}, decodeSummaryEntries(testInstance, recording.Lines[0]))
}

func TestCollapsePackageListsRejectsInvalidInput(testInstance *testing.T) {
	testCases := []struct {
		name          string
		lines         []string
		options       transcript.SummaryOptions
		expectedError error
		expectedText  string
	}{
		{
			name:          "malformed_json",
			lines:         []string{"{\"version\": 2}\n", "go: added github.com/broken\n"},
			options:       transcript.DefaultOptions().Summary,
			expectedError: transcript.ErrFormatViolation,
			expectedText:  "line 2",
		},
		{
			name:          "object_instead_of_array",
			lines:         []string{"{\"text\": \"go: added github.com/a\"}\n"},
			options:       transcript.DefaultOptions().Summary,
			expectedError: transcript.ErrFormatViolation,
			expectedText:  "line 1",
		},
		{
			name:          "too_few_elements",
			lines:         []string{"[\"o\", \"go: added github.com/a\"]\n"},
			options:       transcript.DefaultOptions().Summary,
			expectedError: transcript.ErrFormatViolation,
			expectedText:  "expected at least 3 elements, found 2",
		},
		{
			name:          "non_string_payload",
			lines:         []string{"[\"o\", \"go: added github.com/a\", 42]\n"},
			options:       transcript.DefaultOptions().Summary,
			expectedError: transcript.ErrFormatViolation,
			expectedText:  "line 1",
		},
		{
			name:          "negative_summary_counts",
			lines:         []string{},
			options:       transcript.SummaryOptions{HeadEntries: -1, TailEntries: 3},
			expectedError: transcript.ErrNegativeSummaryCounts,
			expectedText:  "negative",
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(subTest *testing.T) {
			_, _, collapseError := transcript.CollapsePackageLists(transcript.Recording{Lines: testCase.lines}, testCase.options)
			require.Error(subTest, collapseError)
			require.ErrorIs(subTest, collapseError, testCase.expectedError)
			require.Contains(subTest, collapseError.Error(), testCase.expectedText)
		})
	}
}
