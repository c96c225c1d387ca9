package transcript

import (
	"errors"
	"fmt"
	"io"
	"strings"
)

const (
	emittedBlockTerminatorConstant       = "\n"
	truncationUnderflowMessageConstant   = "recording is shorter than its trailing records"
	truncationUnderflowTemplateConstant  = "%w: %d lines, %d trailing records"
	negativeTrailingCountMessageConstant = "trailing record count must not be negative"
	emitErrorTemplateConstant            = "failed to write recording: %w"
)

// ErrTruncationUnderflow indicates the recording has fewer lines than the trailing trim removes.
var ErrTruncationUnderflow = errors.New(truncationUnderflowMessageConstant)

// ErrNegativeTrailingCount indicates a negative trailing record count was requested.
var ErrNegativeTrailingCount = errors.New(negativeTrailingCountMessageConstant)

// EmitRecording writes every line except the final trailingRecords lines as one
// block followed by a newline, and reports how many lines were written.
func EmitRecording(writer io.Writer, recording Recording, trailingRecords int) (int, error) {
	if trailingRecords < 0 {
		return 0, ErrNegativeTrailingCount
	}

	lineCount := recording.LineCount()
	if lineCount < trailingRecords {
		return 0, fmt.Errorf(truncationUnderflowTemplateConstant, ErrTruncationUnderflow, lineCount, trailingRecords)
	}

	emittedLines := recording.Lines[:lineCount-trailingRecords]
	if _, writeError := io.WriteString(writer, strings.Join(emittedLines, "")+emittedBlockTerminatorConstant); writeError != nil {
		return 0, fmt.Errorf(emitErrorTemplateConstant, writeError)
	}

	return len(emittedLines), nil
}
