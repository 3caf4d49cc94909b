package backends

import (
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/temirov/untracked/internal/repos/shared"
)

// Kind names a registrable backend in configuration.
type Kind string

// Registrable backends.
const (
	KindGit     Kind = workingTreeBackendNameConstant
	KindGitBare Kind = bareBackendNameConstant
)

// DefaultKinds lists the backends enabled when configuration does not narrow them.
func DefaultKinds() []Kind {
	return []Kind{KindGit, KindGitBare}
}

const unknownBackendKindTemplateConstant = "unknown repository backend %q"

// ParseKinds converts configured backend names into kinds, defaulting to DefaultKinds when none are given.
func ParseKinds(names []string) ([]Kind, error) {
	kinds := make([]Kind, 0, len(names))
	for _, name := range names {
		trimmedName := strings.ToLower(strings.TrimSpace(name))
		if len(trimmedName) == 0 {
			continue
		}
		switch Kind(trimmedName) {
		case KindGit, KindGitBare:
			kinds = append(kinds, Kind(trimmedName))
		default:
			return nil, fmt.Errorf(unknownBackendKindTemplateConstant, name)
		}
	}
	if len(kinds) == 0 {
		return DefaultKinds(), nil
	}
	return kinds, nil
}

// Build constructs the backends named by kinds, in order, skipping unknown and repeated names.
func Build(kinds []Kind, fileSystem shared.FileSystem, gitExecutor shared.GitExecutor, logger *zap.Logger) []shared.RepositoryBackend {
	registered := make([]shared.RepositoryBackend, 0, len(kinds))
	seen := make(map[Kind]struct{}, len(kinds))
	for _, kind := range kinds {
		if _, duplicate := seen[kind]; duplicate {
			continue
		}
		seen[kind] = struct{}{}

		switch kind {
		case KindGit:
			registered = append(registered, NewWorkingTreeBackend(fileSystem, gitExecutor, logger).WithLinkedWorktrees(os.ReadFile))
		case KindGitBare:
			registered = append(registered, NewBareBackend(fileSystem))
		}
	}
	return registered
}
