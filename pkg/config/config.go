package config

import (
	"net/url"
	"strings"
	"time"

	"github.com/williamokano/oss_cli/pkg/storage"
)

// Recognized configuration keys
const (
	KeyAccessKeyID     = "OSS_ACCESS_KEY_ID"
	KeyAccessKeySecret = "OSS_ACCESS_KEY_SECRET"
	KeyEndpoint        = "OSS_ENDPOINT"
	KeyBucketName      = "OSS_BUCKET_NAME"
	KeySignExpires     = "OSS_SIGN_EXPIRES"
	KeyProvider        = "OSS_PROVIDER"
	KeyRegion          = "OSS_REGION"
	KeyKeyPrefix       = "OSS_KEY_PREFIX"
	KeyForcePathStyle  = "OSS_FORCE_PATH_STYLE"
	KeyLogLevel        = "OSS_LOG_LEVEL"
	KeyLogFormat       = "OSS_LOG_FORMAT"
)

// Defaults
const (
	DefaultSignExpires = 86400
	DefaultProvider    = "s3"
	DefaultKeyPrefix   = "shirai-kuroko/"
	DefaultRegion      = "us-east-1"
)

// Keys lists every key the loader understands, in documentation order
var Keys = []string{
	KeyAccessKeyID,
	KeyAccessKeySecret,
	KeyEndpoint,
	KeyBucketName,
	KeySignExpires,
	KeyProvider,
	KeyRegion,
	KeyKeyPrefix,
	KeyForcePathStyle,
	KeyLogLevel,
	KeyLogFormat,
}

// Config is the immutable configuration of one process invocation
type Config struct {
	Path string // file the values were read from

	AccessKeyID     string
	AccessKeySecret string
	Endpoint        string
	BucketName      string
	SignExpires     int    // seconds, 0 = default
	Provider        string // s3, minio, backblaze, local
	Region          string
	KeyPrefix       string
	KeyPrefixSet    bool // an explicitly empty prefix is honored
	ForcePathStyle  bool
	LogLevel        string
	LogFormat       string
}

// GetSignExpires returns the default signed URL lifetime
func (c *Config) GetSignExpires() time.Duration {
	if c.SignExpires > 0 {
		return time.Duration(c.SignExpires) * time.Second
	}
	return DefaultSignExpires * time.Second
}

// GetProvider returns the storage backend type (defaults to s3)
func (c *Config) GetProvider() string {
	if c.Provider != "" {
		return c.Provider
	}
	return DefaultProvider
}

// GetKeyPrefix returns the prefix used to build default object keys
func (c *Config) GetKeyPrefix() string {
	if c.KeyPrefixSet {
		return c.KeyPrefix
	}
	return DefaultKeyPrefix
}

// GetRegion returns the signing region. Aliyun endpoints such as
// oss-cn-hangzhou.aliyuncs.com carry the region in their first label.
func (c *Config) GetRegion() string {
	if c.Region != "" {
		return c.Region
	}

	host := c.Endpoint
	if u, err := url.Parse(c.Endpoint); err == nil && u.Host != "" {
		host = u.Host
	}
	label, _, _ := strings.Cut(host, ".")
	if strings.HasPrefix(label, "oss-") {
		return label
	}
	return DefaultRegion
}

// GetLogLevel returns the log level (defaults to info)
func (c *Config) GetLogLevel() string {
	if c.LogLevel != "" {
		return c.LogLevel
	}
	return "info"
}

// GetLogFormat returns the log format (defaults to console)
func (c *Config) GetLogFormat() string {
	if c.LogFormat != "" {
		return c.LogFormat
	}
	return "console"
}

// StorageConfig builds the factory input for the configured backend
func (c *Config) StorageConfig() storage.Config {
	return storage.Config{
		Name: c.BucketName,
		Type: c.GetProvider(),
		Options: map[string]interface{}{
			"endpoint":          c.Endpoint,
			"region":            c.GetRegion(),
			"bucket":            c.BucketName,
			"access_key_id":     c.AccessKeyID,
			"secret_access_key": c.AccessKeySecret,
			"force_path_style":  c.ForcePathStyle,
		},
	}
}
