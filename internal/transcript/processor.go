package transcript

import (
	"errors"
	"io"

	"go.uber.org/zap"
)

const (
	defaultSummaryHeadEntriesConstant = 3
	defaultSummaryTailEntriesConstant = 3
	defaultTrailingRecordsConstant    = 2
	loggerMissingMessageConstant      = "transcript logger not configured"
	processCompletedMessageConstant   = "recording processed"
	logFieldInputLinesConstant        = "input_lines"
	logFieldOutputLinesConstant       = "output_lines"
	logFieldStrippedPromptsConstant   = "stripped_prompts"
	logFieldDimmedPromptsConstant     = "dimmed_prompts"
	logFieldColoredPromptsConstant    = "colored_prompts"
	logFieldLineBreaksConstant        = "annotated_line_breaks"
	logFieldPackageRecordsConstant    = "package_records"
	logFieldPackageEntriesConstant    = "package_entries"
	logFieldSummaryEntriesConstant    = "summary_entries"
)

// ErrLoggerNotConfigured indicates the processor was constructed without a logger.
var ErrLoggerNotConfigured = errors.New(loggerMissingMessageConstant)

// Options configures the package summary and trailing trim applied by a Processor.
type Options struct {
	Summary         SummaryOptions
	TrailingRecords int
}

// DefaultOptions returns the options used when nothing is configured.
func DefaultOptions() Options {
	return Options{
		Summary: SummaryOptions{
			HeadEntries: defaultSummaryHeadEntriesConstant,
			TailEntries: defaultSummaryTailEntriesConstant,
		},
		TrailingRecords: defaultTrailingRecordsConstant,
	}
}

// Report summarizes a completed Process run.
type Report struct {
	InputLines  int
	OutputLines int
	Prompts     PromptStatistics
	Packages    PackageStatistics
}

// Processor runs the full transcript pipeline.
type Processor struct {
	logger  *zap.Logger
	options Options
}

// NewProcessor constructs a Processor. Option values are validated when a recording is processed.
func NewProcessor(logger *zap.Logger, options Options) (*Processor, error) {
	if logger == nil {
		return nil, ErrLoggerNotConfigured
	}
	return &Processor{logger: logger, options: options}, nil
}

// Process loads a recording from reader, rewrites it, and writes the result to
// writer. Nothing is written when any stage fails before emission.
func (processor *Processor) Process(reader io.Reader, writer io.Writer) (Report, error) {
	recording, loadError := LoadRecording(reader)
	if loadError != nil {
		return Report{}, loadError
	}

	report := Report{InputLines: recording.LineCount()}

	recording, report.Prompts = RecolorPrompts(recording)

	collapsedRecording, packageStatistics, collapseError := CollapsePackageLists(recording, processor.options.Summary)
	if collapseError != nil {
		return Report{}, collapseError
	}
	report.Packages = packageStatistics

	emittedLines, emitError := EmitRecording(writer, collapsedRecording, processor.options.TrailingRecords)
	if emitError != nil {
		return Report{}, emitError
	}
	report.OutputLines = emittedLines

	processor.logger.Debug(
		processCompletedMessageConstant,
		zap.Int(logFieldInputLinesConstant, report.InputLines),
		zap.Int(logFieldOutputLinesConstant, report.OutputLines),
		zap.Int(logFieldStrippedPromptsConstant, report.Prompts.StrippedPrompts),
		zap.Int(logFieldDimmedPromptsConstant, report.Prompts.DimmedPrompts),
		zap.Int(logFieldColoredPromptsConstant, report.Prompts.ColoredPrompts),
		zap.Int(logFieldLineBreaksConstant, report.Prompts.AnnotatedLineBreaks),
		zap.Int(logFieldPackageRecordsConstant, report.Packages.MatchedRecords),
		zap.Int(logFieldPackageEntriesConstant, report.Packages.CollectedEntries),
		zap.Int(logFieldSummaryEntriesConstant, report.Packages.SummaryEntries),
	)

	return report, nil
}
