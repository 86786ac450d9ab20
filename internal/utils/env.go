package utils

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/baalimago/go_away_boilerplate/pkg/ancli"
	"github.com/baalimago/go_away_boilerplate/pkg/misc"
	"github.com/joho/godotenv"
)

const DotEnvFile = ".env"

// LoadDotEnv exports the variables of the .env file in configDirPath. Variables
// already present in the environment are left as they are. A missing file is
// not an error. Returns the keys which were set.
func LoadDotEnv(configDirPath string) ([]string, error) {
	envPath := filepath.Join(configDirPath, DotEnvFile)
	if _, err := os.Stat(envPath); errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	vars, err := godotenv.Read(envPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read '%v': %w", envPath, err)
	}
	set := make([]string, 0, len(vars))
	for k, v := range vars {
		if _, exists := os.LookupEnv(k); exists {
			continue
		}
		if err := os.Setenv(k, v); err != nil {
			return set, fmt.Errorf("failed to set env var '%v': %w", k, err)
		}
		set = append(set, k)
	}
	if misc.Truthy(os.Getenv("DEBUG")) {
		ancli.PrintOK(fmt.Sprintf("loaded %v variables from: '%v'\n", len(set), envPath))
	}
	return set, nil
}
