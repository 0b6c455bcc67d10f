package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

var ErrUnset = errors.New("env variable is not set")

func mustLookup(key string) (string, error) {
	v, ok := os.LookupEnv(key)
	if !ok {
		return "", fmt.Errorf("%s %w", key, ErrUnset)
	}
	return v, nil
}

func lookupEnv(key string) (string, bool) {
	v, ok := os.LookupEnv(key)
	return v, ok && v != ""
}

func lookupOr(key, fallback string) string {
	if v, ok := lookupEnv(key); ok {
		return v
	}
	return fallback
}

func lookupInt(key string, fallback int) (int, error) {
	v, ok := os.LookupEnv(key)
	if !ok {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("unable to convert %s to int: %w", key, err)
	}
	return n, nil
}

func lookupDuration(key string, fallback time.Duration) (time.Duration, error) {
	v, ok := os.LookupEnv(key)
	if !ok {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("unable to parse %s: %w", key, err)
	}
	return d, nil
}

// lookupSecret reads key, falling back to the contents of the file named
// by key_FILE.
func lookupSecret(key string) (string, error) {
	if v, ok := os.LookupEnv(key); ok {
		return v, nil
	}
	path, ok := os.LookupEnv(key + "_FILE")
	if !ok {
		return "", fmt.Errorf("no %s or %s_FILE env variable set", key, key)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("unable to read %s_FILE: %w", key, err)
	}
	return strings.TrimSpace(string(data)), nil
}
