// Package storage defines the repository file-system abstraction.
package storage

import "io/fs"

// Provider is the interface for repository file operations. All paths are
// relative to the repository root.
type Provider interface {
	// Exists reports whether a file or directory exists at path.
	Exists(path string) bool
	// IsDir reports whether path exists and is a directory.
	IsDir(path string) bool
	// Read returns the raw bytes of the file at path.
	Read(path string) ([]byte, error)
	// ReadText returns the file content as a string, or fallback when the
	// file does not exist. Other read errors also yield the fallback.
	ReadText(path, fallback string) string
	// Stat returns file info for path.
	Stat(path string) (fs.FileInfo, error)
	// Write atomically writes content to path, creating parent directories.
	Write(path string, content []byte) error
	// WriteIfAbsent writes content only when no file exists at path.
	// It reports whether a write happened.
	WriteIfAbsent(path string, content []byte) (bool, error)
	// Append appends a line of text to the file at path, creating it if needed.
	Append(path string, line []byte) error
	// EnsureDir creates the directory at path (and parents) if absent.
	EnsureDir(path string) error
	// RemoveTree deletes path and everything under it. Absent paths are a no-op.
	RemoveTree(path string) error
	// CopyFile copies src to dst preserving the source's mode and mtime.
	CopyFile(src, dst string) error
	// ListDirs returns the names of immediate subdirectories of dir, sorted.
	ListDirs(dir string) ([]string, error)
	// WalkFiles calls fn with the path (relative to dir) of every regular
	// file under dir, in lexical order.
	WalkFiles(dir string, fn func(rel string) error) error
	// Abs resolves a repo-relative path to an absolute one, rejecting escapes.
	Abs(path string) (string, error)
}
