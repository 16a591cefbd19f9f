package domain

const (
	// ManifestFileName is the optional project manifest.
	ManifestFileName = "kiln.yaml"

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644

	// ExecPerm is the permission for copied executables (rwxr-xr-x).
	ExecPerm = 0o755
)

// OrchestratorSource is the project-relative package of a vendored kiln.
const OrchestratorSource = "cmd/kiln"

// SelfBootstrap returns the command that rebuilds a vendored kiln in the project root.
func SelfBootstrap() []string {
	return []string{"go", "build", "-o", "kiln", "./" + OrchestratorSource}
}
