package transcript

import (
	"bufio"
	"errors"
	"fmt"
	"io"
)

const (
	lineTerminatorConstant             = '\n'
	recordingReadErrorTemplateConstant = "failed to read recording: %w"
)

// Recording holds the ordered raw lines of a terminal session. Each line keeps
// its trailing newline when the source had one.
type Recording struct {
	Lines []string
}

// LoadRecording reads the entire reader into a Recording.
func LoadRecording(reader io.Reader) (Recording, error) {
	bufferedReader := bufio.NewReader(reader)
	lines := make([]string, 0)

	for {
		line, readError := bufferedReader.ReadString(lineTerminatorConstant)
		if len(line) > 0 {
			lines = append(lines, line)
		}
		if readError == nil {
			continue
		}
		if errors.Is(readError, io.EOF) {
			break
		}
		return Recording{}, fmt.Errorf(recordingReadErrorTemplateConstant, readError)
	}

	return Recording{Lines: lines}, nil
}

// LineCount reports the number of lines in the recording.
func (recording Recording) LineCount() int {
	return len(recording.Lines)
}
