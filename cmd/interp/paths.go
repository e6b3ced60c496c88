package main

import (
	"path/filepath"
	"strings"
)

const doubledSuffix = "_doubled"

// outputPath returns where the doubled version of input goes.
func (c *config) outputPath(input string) string {
	switch {
	case c.output == "":
		return c.withExt(strings.TrimSuffix(input, ".wav") + doubledSuffix)
	case c.outputDir:
		base := filepath.Base(input)
		if c.aiff {
			base = strings.TrimSuffix(base, filepath.Ext(base))
			return filepath.Join(c.output, base+".aif")
		}

		return filepath.Join(c.output, base)
	default:
		return c.output
	}
}

func (c *config) withExt(base string) string {
	if c.aiff {
		return base + ".aif"
	}

	return base + ".wav"
}
