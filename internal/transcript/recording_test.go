package transcript_test

import (
	"errors"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/temirov/castfix/internal/transcript"
)

func TestLoadRecordingSplitsLines(testInstance *testing.T) {
	testCases := []struct {
		name          string
		input         string
		expectedLines []string
	}{
		{
			name:          "empty_input",
			input:         "",
			expectedLines: []string{},
		},
		{
			name:          "terminated_lines",
			input:         "[\"o\", \"\", \"a\"]\n[\"o\", \"\", \"b\"]\n",
			expectedLines: []string{"[\"o\", \"\", \"a\"]\n", "[\"o\", \"\", \"b\"]\n"},
		},
		{
			name:          "unterminated_final_line",
			input:         "first\nsecond",
			expectedLines: []string{"first\n", "second"},
		},
		{
			name:          "blank_lines_are_kept",
			input:         "first\n\nthird\n",
			expectedLines: []string{"first\n", "\n", "third\n"},
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(subTest *testing.T) {
			recording, loadError := transcript.LoadRecording(strings.NewReader(testCase.input))
			require.NoError(subTest, loadError)
			if diff := cmp.Diff(testCase.expectedLines, recording.Lines); diff != "" {
				subTest.Fatalf("unexpected lines (-want +got):\n%s", diff)
			}
			require.Equal(subTest, len(testCase.expectedLines), recording.LineCount())
		})
	}
}

func TestLoadRecordingPropagatesReadErrors(testInstance *testing.T) {
	readFailure := errors.New("disk unavailable")

	_, loadError := transcript.LoadRecording(iotest.ErrReader(readFailure))

	require.Error(testInstance, loadError)
	require.ErrorIs(testInstance, loadError, readFailure)
}
