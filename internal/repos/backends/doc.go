// Package backends implements the repository kinds the scanner recognizes.
//
// Each backend answers two questions about a directory: whether it is the root of
// a repository of that kind, and whether such a repository holds uncommitted work.
// The scanner consults backends in registration order and the first match wins.
package backends
