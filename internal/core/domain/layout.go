package domain

const (
	// ConfigFileName is the default name of the settings file.
	ConfigFileName = "wikipath.yaml"

	// ArtifactSuffix is appended to the corpus path to name its cache artifact.
	ArtifactSuffix = ".cache"

	// DefaultProgressInterval is the number of pages between progress notifications.
	DefaultProgressInterval = 10000

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644
)
