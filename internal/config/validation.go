package config

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gobwas/glob"
)

var sizeRe = regexp.MustCompile(`^\d+(B|KB|MB|GB|TB|PB)$`)

// validateSize validates the size format (e.g., "10MB", "1GB")
func validateSize(fl validator.FieldLevel) bool {
	return sizeRe.MatchString(strings.ToUpper(fl.Field().String()))
}

func validateRegexp(fl validator.FieldLevel) bool {
	_, err := regexp.Compile(fl.Field().String())
	return err == nil
}

func validateGlob(fl validator.FieldLevel) bool {
	_, err := glob.Compile(fl.Field().String())
	return err == nil
}

// expandPath expands environment variables and "~" in paths
func expandPath(path string) (string, error) {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		path = filepath.Join(home, strings.TrimPrefix(path[1:], "/"))
	}

	path = os.ExpandEnv(path)

	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}

	return abs, nil
}

// validateDirPath is a validation function for directory paths that works on any OS.
// The standard "dirpath" validator rejects some valid paths, particularly on
// Windows (e.g. "C:\Users\name\.dir\").
//
// Empty strings are considered invalid. A path that exists must be a directory.
func validateDirPath(fl validator.FieldLevel) bool {
	path := strings.TrimSpace(fl.Field().String())
	if path == "" {
		return false
	}

	expanded, err := expandPath(path)
	if err != nil {
		return false
	}

	fi, err := os.Stat(expanded)
	if err == nil {
		return fi.IsDir()
	}
	return os.IsNotExist(err)
}
