package config

import (
	"errors"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
)

// EnvFiles are the dotenv files consulted, in order, before arguments are read.
var EnvFiles = []string{".env", ".env.local"}

// LoadEnvFile loads environment variables from the first readable file in
// paths (EnvFiles when empty) and returns its name. Variables already set in
// the process environment are never overwritten. It returns "" and no error
// when none of the files exist.
func LoadEnvFile(paths ...string) (string, error) {
	if len(paths) == 0 {
		paths = EnvFiles
	}
	for _, p := range paths {
		if _, err := os.Stat(p); errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err := godotenv.Load(p); err != nil {
			return "", err
		}
		return p, nil
	}
	return "", nil
}
