// Package scaffold turns resolved Options into files on disk.
//
// It resolves the project and workflow directories, infers the project name,
// plans which artifacts are enabled, and writes each one with
// github.com/moby/sys/atomicwriter so an interrupted run never leaves a
// truncated workflow behind. Existing files are replaced unconditionally.
package scaffold
