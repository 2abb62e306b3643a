// Package fileutils holds the file handling shared by the conversion commands.
package fileutils

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"fjacquet/csv2qif/internal/parsererror"
)

// QIFExtension is appended to derived output paths.
const QIFExtension = ".qif"

// FileExists checks if a file exists and is not a directory
func FileExists(filePath string) bool {
	info, err := os.Stat(filePath)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

// DirectoryExists checks if a directory exists
func DirectoryExists(dirPath string) bool {
	info, err := os.Stat(dirPath)
	if err != nil {
		return false
	}
	return info.IsDir()
}

// EnsureDirectoryExists creates a directory if it doesn't exist
func EnsureDirectoryExists(dirPath string) error {
	if DirectoryExists(dirPath) {
		return nil
	}
	if err := os.MkdirAll(dirPath, 0o755); err != nil {
		return &parsererror.IOError{Op: "mkdir", Path: dirPath, Err: err}
	}
	return nil
}

// OpenFile opens a file for reading.
func OpenFile(filePath string) (*os.File, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, &parsererror.IOError{Op: "open", Path: filePath, Err: err}
	}
	return file, nil
}

// CreateFile creates or truncates a file for writing, creating parent
// directories as needed.
func CreateFile(filePath string) (*os.File, error) {
	if err := EnsureDirectoryExists(filepath.Dir(filePath)); err != nil {
		return nil, err
	}
	file, err := os.Create(filePath)
	if err != nil {
		return nil, &parsererror.IOError{Op: "create", Path: filePath, Err: err}
	}
	return file, nil
}

// DefaultOutputPath derives the QIF path for input: the absolute input path
// with its extension replaced by ".qif". Leading dots of the base name do not
// start an extension, so ".statement" becomes ".statement.qif".
func DefaultOutputPath(input string) (string, error) {
	abs, err := filepath.Abs(input)
	if err != nil {
		return "", fmt.Errorf("failed to resolve %s: %w", input, err)
	}
	dir, base := filepath.Split(abs)
	stem := strings.TrimLeft(base, ".")
	if i := strings.LastIndexByte(stem, '.'); i >= 0 {
		base = base[:len(base)-len(stem)+i]
	}
	return dir + base + QIFExtension, nil
}

// ListFilesWithExtension returns the regular files directly inside dirPath
// whose extension matches extension, ignoring case, sorted by name.
func ListFilesWithExtension(dirPath, extension string) ([]string, error) {
	entries, err := os.ReadDir(dirPath)
	if err != nil {
		return nil, &parsererror.IOError{Op: "list", Path: dirPath, Err: err}
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), extension) {
			continue
		}
		files = append(files, filepath.Join(dirPath, e.Name()))
	}
	sort.Strings(files)
	return files, nil
}
