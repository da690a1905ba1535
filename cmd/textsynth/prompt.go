package main

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// promptCount asks for the number of images. A blank, invalid or negative
// answer falls back to def.
func promptCount(in *bufio.Reader, out io.Writer, def int) int {
	fmt.Fprintf(out, "How many images to generate? [%d]: ", def)
	line, err := in.ReadString('\n')
	line = strings.TrimSpace(line)
	if line == "" {
		if err != nil && err != io.EOF {
			fmt.Fprintf(out, "Could not read input, using %d\n", def)
		}
		return def
	}
	n, convErr := strconv.Atoi(line)
	if convErr != nil || n < 0 {
		fmt.Fprintf(out, "Invalid number %q, using %d\n", line, def)
		return def
	}
	return n
}

// confirm asks a y/n question; anything but y or yes declines.
func confirm(in *bufio.Reader, out io.Writer, count int, outputDir string) bool {
	fmt.Fprintf(out, "Generate %d images into %s? [y/N]: ", count, outputDir)
	line, _ := in.ReadString('\n')
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	}
	return false
}
