package transcript

const (
	summaryHeadConfigurationKey     = "summary_head"
	summaryTailConfigurationKey     = "summary_tail"
	trailingRecordsConfigurationKey = "trailing_records"
	configurationKeySeparator       = "."
)

// Configuration stores the persisted settings for transcript processing.
type Configuration struct {
	SummaryHead     int `mapstructure:"summary_head"`
	SummaryTail     int `mapstructure:"summary_tail"`
	TrailingRecords int `mapstructure:"trailing_records"`
}

// DefaultConfiguration mirrors DefaultOptions.
func DefaultConfiguration() Configuration {
	defaults := DefaultOptions()
	return Configuration{
		SummaryHead:     defaults.Summary.HeadEntries,
		SummaryTail:     defaults.Summary.TailEntries,
		TrailingRecords: defaults.TrailingRecords,
	}
}

// DefaultConfigurationValues returns the defaults keyed for the configuration loader under prefix.
func DefaultConfigurationValues(prefix string) map[string]any {
	defaults := DefaultConfiguration()
	return map[string]any{
		prefix + configurationKeySeparator + summaryHeadConfigurationKey:     defaults.SummaryHead,
		prefix + configurationKeySeparator + summaryTailConfigurationKey:     defaults.SummaryTail,
		prefix + configurationKeySeparator + trailingRecordsConfigurationKey: defaults.TrailingRecords,
	}
}

// Options converts the configuration into processor options.
func (configuration Configuration) Options() Options {
	return Options{
		Summary: SummaryOptions{
			HeadEntries: configuration.SummaryHead,
			TailEntries: configuration.SummaryTail,
		},
		TrailingRecords: configuration.TrailingRecords,
	}
}
