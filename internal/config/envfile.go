package config

import (
	"os"

	"github.com/joho/godotenv"

	berrors "github.com/zhubert/banter/internal/errors"
)

// ReadEnvFile returns the variables in path. A missing file yields an empty map.
func ReadEnvFile(path string) (map[string]string, error) {
	values, err := godotenv.Read(path)
	if os.IsNotExist(err) {
		return map[string]string{}, nil
	}
	if err != nil {
		return nil, berrors.ConfigLoadFailed(path, err)
	}
	return values, nil
}

// UpdateEnvFile merges updates into path, keeping every other variable.
// Empty values remove the variable.
func UpdateEnvFile(path string, updates map[string]string) error {
	values, err := ReadEnvFile(path)
	if err != nil {
		return err
	}
	for k, v := range updates {
		if v == "" {
			delete(values, k)
			continue
		}
		values[k] = v
	}
	if err := godotenv.Write(values, path); err != nil {
		return berrors.E(berrors.Op("config.UpdateEnvFile"), berrors.KindIO, "failed to write "+path, err)
	}
	// godotenv.Write creates the file 0644; it holds a secret.
	if err := os.Chmod(path, 0600); err != nil {
		return berrors.E(berrors.Op("config.UpdateEnvFile"), berrors.KindIO, "failed to restrict "+path, err)
	}
	return nil
}
