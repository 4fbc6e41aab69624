package domain

import "go.trai.ch/zerr"

var (
	// ErrInvalidMode is returned when a mode value is neither development nor production.
	ErrInvalidMode = zerr.New("invalid mode, expected 'development' or 'production'")

	// ErrUnknownAssetClass is returned when a pipeline is requested for an unknown asset class.
	ErrUnknownAssetClass = zerr.New("unknown asset class")

	// ErrOutputPathOutsideRoot is returned when the output directory is outside the project root.
	ErrOutputPathOutsideRoot = zerr.New("output path is outside project root")

	// ErrAssetOutputOutsideOutput is returned when a per-class output directory
	// is not inside the output directory, where clean would miss it.
	ErrAssetOutputOutsideOutput = zerr.New("asset output path is outside the output directory")

	// ErrCleanFailed is returned when the output directory cannot be removed.
	ErrCleanFailed = zerr.New("failed to clean output directory")

	// ErrSourceReadFailed is returned when a pipeline source cannot be listed or read.
	ErrSourceReadFailed = zerr.New("failed to read source")

	// ErrSourceSyntax is returned when a source file cannot be parsed by a transform.
	ErrSourceSyntax = zerr.New("source syntax error")

	// ErrTransformFailed is returned when a pipeline stage fails.
	ErrTransformFailed = zerr.New("transform failed")

	// ErrOutputWriteFailed is returned when a pipeline cannot write its output.
	ErrOutputWriteFailed = zerr.New("failed to write output")

	// ErrPipelineFailed is returned when a pipeline run fails.
	ErrPipelineFailed = zerr.New("pipeline failed")

	// ErrBuildExecutionFailed is returned when the build execution fails.
	ErrBuildExecutionFailed = zerr.New("build execution failed")

	// ErrStoreCreateFailed is returned when the build info store directory cannot be created.
	ErrStoreCreateFailed = zerr.New("failed to create build info store directory")

	// ErrStoreReadFailed is returned when the build info cannot be read.
	ErrStoreReadFailed = zerr.New("failed to read build info")

	// ErrStoreUnmarshalFailed is returned when the build info cannot be unmarshaled.
	ErrStoreUnmarshalFailed = zerr.New("failed to unmarshal build info")

	// ErrStoreMarshalFailed is returned when the build info cannot be marshaled.
	ErrStoreMarshalFailed = zerr.New("failed to marshal build info")

	// ErrStoreWriteFailed is returned when the build info cannot be written.
	ErrStoreWriteFailed = zerr.New("failed to write build info")

	// ErrConfigReadFailed is returned when the config file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read config file")

	// ErrConfigParseFailed is returned when the config file cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse config file")

	// ErrInvalidPort is returned when the dev server port is out of range.
	ErrInvalidPort = zerr.New("invalid port")

	// ErrFailedToGetRoot is returned when the project root path cannot be determined.
	ErrFailedToGetRoot = zerr.New("failed to get absolute path of project root")

	// ErrFileOpenFailed is returned when a file cannot be opened.
	ErrFileOpenFailed = zerr.New("failed to open file")

	// ErrFileHashFailed is returned when hashing a file fails.
	ErrFileHashFailed = zerr.New("failed to hash file content")

	// ErrServerStartFailed is returned when the development server cannot bind its address.
	ErrServerStartFailed = zerr.New("failed to start development server")

	// ErrWatcherStartFailed is returned when the file watcher cannot be started.
	ErrWatcherStartFailed = zerr.New("failed to start file watcher")
)
