// Package dependencies supplies production defaults for the collaborators a scan needs
// when callers leave them unset.
package dependencies
