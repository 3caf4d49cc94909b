package pathutils

// RootArgumentSanitizer normalizes scan root arguments before they are resolved on disk.
type RootArgumentSanitizer struct {
	homeExpander *HomeExpander
}

// NewRootArgumentSanitizer constructs a sanitizer. A nil expander uses the operating system home directory.
func NewRootArgumentSanitizer(homeExpander *HomeExpander) *RootArgumentSanitizer {
	if homeExpander == nil {
		homeExpander = NewHomeExpander()
	}
	return &RootArgumentSanitizer{homeExpander: homeExpander}
}

// Sanitize expands home shortcuts and otherwise keeps every argument verbatim.
// Whitespace is significant in directory names, and a blank argument must still reach
// resolution so it can be reported. Order and duplicates are preserved.
func (sanitizer *RootArgumentSanitizer) Sanitize(candidateRoots []string) []string {
	if sanitizer == nil {
		sanitizer = NewRootArgumentSanitizer(nil)
	}

	sanitizedRoots := make([]string, 0, len(candidateRoots))
	for _, candidateRoot := range candidateRoots {
		sanitizedRoots = append(sanitizedRoots, sanitizer.homeExpander.Expand(candidateRoot))
	}
	return sanitizedRoots
}
