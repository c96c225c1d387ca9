package recording_test

import (
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/temirov/castfix/internal/recording"
)

func TestParseScript(testInstance *testing.T) {
	testCases := []struct {
		name             string
		content          string
		expectedCommands []recording.Command
	}{
		{
			name:             "empty_script",
			content:          "",
			expectedCommands: []recording.Command{},
		},
		{
			name:    "shell_lines_gain_terminators",
			content: "go mod init example\ngo run .\n",
			expectedCommands: []recording.Command{
				recording.ShellInput{Text: "go mod init example\n"},
				recording.ShellInput{Text: "go run .\n"},
			},
		},
		{
			name:    "unterminated_final_line",
			content: "ls",
			expectedCommands: []recording.Command{
				recording.ShellInput{Text: "ls\n"},
			},
		},
		{
			name:    "controls_and_blank_lines",
			content: "#$ delay 10\n#$ wait 250\n\nclear\n#$   wait   5  \n",
			expectedCommands: []recording.Command{
				recording.DelayControl{Interval: 10 * time.Millisecond},
				recording.WaitControl{Duration: 250 * time.Millisecond},
				recording.ShellInput{Text: "\n"},
				recording.ShellInput{Text: "clear\n"},
				recording.WaitControl{Duration: 5 * time.Millisecond},
			},
		},
		{
			name:    "comment_without_control_prefix_is_typed",
			content: "# configure the module\n",
			expectedCommands: []recording.Command{
				recording.ShellInput{Text: "# configure the module\n"},
			},
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(subTest *testing.T) {
			script, parseError := recording.ParseScript(strings.NewReader(testCase.content))
			require.NoError(subTest, parseError)
			if diff := cmp.Diff(testCase.expectedCommands, script.Commands); diff != "" {
				subTest.Fatalf("unexpected commands (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParseScriptRejectsInvalidControls(testInstance *testing.T) {
	testCases := []struct {
		name          string
		content       string
		expectedError error
		expectedLine  string
	}{
		{
			name:          "unknown_control",
			content:       "echo one\n#$ speed 10\n",
			expectedError: recording.ErrUnknownControl,
			expectedLine:  "(line 2)",
		},
		{
			name:          "bare_control_prefix",
			content:       "#$\n",
			expectedError: recording.ErrUnknownControl,
			expectedLine:  "(line 1)",
		},
		{
			name:          "missing_argument",
			content:       "#$ delay\n",
			expectedError: recording.ErrMissingControlArgument,
			expectedLine:  "(line 1)",
		},
		{
			name:          "non_numeric_argument",
			content:       "a\nb\n#$ wait soon\n",
			expectedError: recording.ErrInvalidControlArgument,
			expectedLine:  "(line 3)",
		},
		{
			name:          "negative_argument",
			content:       "#$ delay -5\n",
			expectedError: recording.ErrInvalidControlArgument,
			expectedLine:  "(line 1)",
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(subTest *testing.T) {
			_, parseError := recording.ParseScript(strings.NewReader(testCase.content))
			require.ErrorIs(subTest, parseError, testCase.expectedError)
			require.Contains(subTest, parseError.Error(), testCase.expectedLine)
		})
	}
}
