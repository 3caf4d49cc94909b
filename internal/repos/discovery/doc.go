// Package discovery classifies directory trees by the version-control state of
// the repositories they contain.
//
// TreeClassifier walks a tree depth-first, stops at repository roots, and folds
// child verdicts into a single Status per directory. Problem paths are reported
// at the shallowest directory whose subtree contains at least one repository.
package discovery
