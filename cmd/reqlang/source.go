package main

import (
	"fmt"
	"io"
	"os"
)

// readSource reads the requirement source text from path, or from stdin
// when path is "" or "-", so input can come from either a file or a pipe.
func readSource(path string) (string, error) {
	if path == "" || path == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return string(data), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("cannot open source file %s: %w", path, err)
	}
	return string(data), nil
}
