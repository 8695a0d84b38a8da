package main

import (
	"strconv"
	"strings"

	"github.com/wayneeseguin/loggen/pkg/generator"
)

// parseArgs turns positional arguments into an output directory override
// and the target sizes. A leading argument that looks like a path and is not
// a number overrides the output directory.
func parseArgs(args []string) (dir string, spec generator.TargetSpec, err error) {
	if len(args) > 0 && looksLikePath(args[0]) {
		if _, numErr := strconv.ParseFloat(args[0], 64); numErr != nil {
			dir, args = args[0], args[1:]
		}
	}

	if len(args) == 0 {
		return "", generator.TargetSpec{}, generator.ErrArgument("not enough arguments")
	}

	sizes := make([]float64, 0, len(args))
	for _, arg := range args {
		size, err := strconv.ParseFloat(strings.TrimSpace(arg), 64)
		if err != nil {
			return "", generator.TargetSpec{}, generator.ErrArgument("argument `%s` cannot be parsed, cannot be converted to float", arg)
		}
		if size <= 0 {
			return "", generator.TargetSpec{}, generator.ErrArgument("argument `%s` cannot be parsed, it must be greater than 0", arg)
		}
		sizes = append(sizes, size)
	}

	spec, err = generator.NewTargetSpec(sizes...)
	if err != nil {
		return "", generator.TargetSpec{}, err
	}
	return dir, spec, nil
}

func looksLikePath(arg string) bool {
	return strings.ContainsRune(arg, '/') || strings.HasPrefix(arg, ".") || strings.HasPrefix(arg, "~")
}
