package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

var (
	ErrConfigNotFound = errors.New(".env file not found")
	ErrInvalidConfig  = errors.New("invalid configuration")
)

// EnvFileVar names the environment variable that can point at the .env file
const EnvFileVar = "OSS_ENV_FILE"

// ResolvePath returns the .env file to load. An explicit path wins, then
// OSS_ENV_FILE, then a .env file next to the running executable.
func ResolvePath(explicit string) (string, error) {
	if explicit != "" {
		return explicit, nil
	}
	if p := os.Getenv(EnvFileVar); p != "" {
		return p, nil
	}

	exe, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("failed to locate executable: %w", err)
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}

	return filepath.Join(filepath.Dir(exe), ".env"), nil
}

// ParseConfig reads the .env file at path and layers it under the process
// environment and any bound flags. The process environment is not modified.
// flags may be nil.
func ParseConfig(path string, flags *pflag.FlagSet) (*Config, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, path)
		}
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%w: %s is a directory", ErrConfigNotFound, path)
	}

	fileValues, err := godotenv.Read(path)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to parse %s: %v", ErrInvalidConfig, path, err)
	}

	v := viper.New()

	merged := make(map[string]interface{}, len(fileValues))
	for k, val := range fileValues {
		merged[strings.TrimSpace(k)] = strings.TrimSpace(val)
	}
	if err := v.MergeConfigMap(merged); err != nil {
		return nil, fmt.Errorf("failed to merge config file: %w", err)
	}

	for _, key := range Keys {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("failed to bind %s: %w", key, err)
		}
	}

	if flags != nil {
		if f := flags.Lookup("log-level"); f != nil {
			if err := v.BindPFlag(KeyLogLevel, f); err != nil {
				return nil, fmt.Errorf("failed to bind log-level flag: %w", err)
			}
		}
	}

	values := make(map[string]interface{}, len(Keys))
	for _, key := range Keys {
		if v.IsSet(key) {
			values[key] = v.GetString(key)
		}
	}

	if err := Validate(values); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return &Config{
		Path:            path,
		AccessKeyID:     v.GetString(KeyAccessKeyID),
		AccessKeySecret: v.GetString(KeyAccessKeySecret),
		Endpoint:        v.GetString(KeyEndpoint),
		BucketName:      v.GetString(KeyBucketName),
		SignExpires:     v.GetInt(KeySignExpires),
		Provider:        v.GetString(KeyProvider),
		Region:          v.GetString(KeyRegion),
		KeyPrefix:       v.GetString(KeyKeyPrefix),
		KeyPrefixSet:    v.IsSet(KeyKeyPrefix),
		ForcePathStyle:  v.GetBool(KeyForcePathStyle),
		LogLevel:        v.GetString(KeyLogLevel),
		LogFormat:       v.GetString(KeyLogFormat),
	}, nil
}
