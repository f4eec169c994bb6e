// Package flagx provides helpers for parsing a subset of command-line flags
// without disturbing flags owned by other components.
package flagx

import (
	"flag"
	"os"
	"strings"
)

// FilterArgs returns a slice of command-line arguments that only contains
// the allowed flags (and their values) specified in allowedFlags.
//
// Two forms are understood:
//  1. Flag and value as separate arguments:  -d data
//  2. Flag and value combined with '=':      --data-dir=data
//
// One and two leading dashes are equivalent on both sides, the same way
// flag.Parse treats them, so "-env-file" in allowedFlags also admits
// "--env-file=path".
func FilterArgs(args []string, allowedFlags []string) []string {
	allowed := make(map[string]struct{}, len(allowedFlags))
	for _, f := range allowedFlags {
		allowed[strings.TrimLeft(f, "-")] = struct{}{}
	}

	// Result starts empty (not nil) so it is always safe to hand to a FlagSet.
	filtered := make([]string, 0, len(args))

	for i := 0; i < len(args); i++ {
		arg := args[i]

		if !strings.HasPrefix(arg, "-") {
			continue
		}

		// "--flag=value" form: keep the whole argument.
		if strings.Contains(arg, "=") {
			name := strings.SplitN(arg, "=", 2)[0]
			if _, ok := allowed[strings.TrimLeft(name, "-")]; ok {
				filtered = append(filtered, arg)
			}
			continue
		}

		// "-flag value" form: keep the flag, and its value when the next
		// argument does not look like another flag.
		if _, ok := allowed[strings.TrimLeft(arg, "-")]; ok {
			filtered = append(filtered, arg)
			if i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
				filtered = append(filtered, args[i+1])
				i++
			}
		}
	}

	return filtered
}

// EnvFileFlag inspects command-line arguments and extracts the .env file
// path provided via the -e or -env-file flags.
//
// Only these flags are parsed; other arguments are ignored. This allows the
// config layer to resolve the env file before the main flag set is built.
//
// If neither -e nor -env-file is present, an empty string is returned.
func EnvFileFlag() string {
	var envFile string

	args := FilterArgs(os.Args[1:], []string{"-e", "-env-file"})

	fs := flag.NewFlagSet("envfile", flag.ContinueOnError)
	fs.StringVar(&envFile, "env-file", "", "path to .env file")
	fs.StringVar(&envFile, "e", "", "path to .env file (short)")
	_ = fs.Parse(args)

	return envFile
}
