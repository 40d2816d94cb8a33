package config

import (
	"os"
	"strings"
)

// ArgsFileEnv names the environment variable holding the path of an
// arguments file.
const ArgsFileEnv = "MDHTML_CONFIG_PATH"

// ExpandArgs returns args preceded by the arguments listed in the file named
// by ArgsFileEnv. Each non-empty line not starting with '#' is one argument,
// trimmed of surrounding whitespace. A missing variable or unreadable file
// leaves args unchanged; the second result is the file that was used.
func ExpandArgs(lookupEnv func(string) (string, bool), args []string) ([]string, string) {
	path, ok := lookupEnv(ArgsFileEnv)
	if !ok || path == "" {
		return args, ""
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return args, ""
	}

	out := make([]string, 0, len(args)+8)
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		out = append(out, line)
	}
	return append(out, args...), path
}
