// Package types defines the data structures shared by the globber, the
// writers and the command line: the filesystem listing contract, result
// entries and the enumerations configuring a run.
package types
