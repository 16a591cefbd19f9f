package domain

import "go.trai.ch/zerr"

var (
	// ErrInvalidConfig is returned when the requested flag combination is rejected.
	ErrInvalidConfig = zerr.New("invalid build configuration")

	// ErrUnknownArgument is returned when the command line contains an unrecognized flag.
	ErrUnknownArgument = zerr.New("unexpected argument")

	// ErrEnvironment is returned when the settings file cannot be parsed or names an unknown key.
	ErrEnvironment = zerr.New("invalid environment settings")

	// ErrExternalTool is returned when an invoked process exits non-zero or cannot be started.
	ErrExternalTool = zerr.New("external tool failed")

	// ErrMissingCredential is returned when a signing identity or provisioning profile is absent.
	ErrMissingCredential = zerr.New("missing signing credential")

	// ErrMissingSDK is returned when an SDK, NDK or JDK location is unset or incomplete.
	ErrMissingSDK = zerr.New("missing SDK")

	// ErrStageFailed is returned when a pipeline stage fails.
	ErrStageFailed = zerr.New("stage failed")

	// ErrBuildFailed is returned when a build invocation fails.
	ErrBuildFailed = zerr.New("build failed")

	// ErrStoreReadFailed is returned when the persisted configuration cannot be read.
	ErrStoreReadFailed = zerr.New("failed to read persisted configuration")

	// ErrStoreWriteFailed is returned when the persisted configuration cannot be written.
	ErrStoreWriteFailed = zerr.New("failed to write persisted configuration")

	// ErrProjectReadFailed is returned when the project manifest cannot be read.
	ErrProjectReadFailed = zerr.New("failed to read project manifest")

	// ErrProjectParseFailed is returned when the project manifest cannot be parsed.
	ErrProjectParseFailed = zerr.New("failed to parse project manifest")

	// ErrPathStatFailed is returned when stating a path fails.
	ErrPathStatFailed = zerr.New("failed to stat path")

	// ErrWalkFailed is returned when a directory walk fails.
	ErrWalkFailed = zerr.New("failed to walk directory")

	// ErrCopyFailed is returned when copying a file fails.
	ErrCopyFailed = zerr.New("failed to copy file")

	// ErrFailedToGetRoot is returned when the project root path cannot be determined.
	ErrFailedToGetRoot = zerr.New("failed to get absolute path of project root")
)
