package s3

import (
	"fmt"
	"strings"

	"github.com/williamokano/oss_cli/pkg/storage"
)

// Config holds the options of an S3-compatible bucket (Aliyun OSS, AWS, MinIO...)
type Config struct {
	Endpoint        string `json:"endpoint"`         // empty means AWS
	Region          string `json:"region"`           // signing region
	Bucket          string `json:"bucket"`           // bucket name
	AccessKeyID     string `json:"access_key_id"`    // credentials
	SecretAccessKey string `json:"secret_access_key"`
	ForcePathStyle  bool   `json:"force_path_style"` // for MinIO and LocalStack
}

func parseConfig(options map[string]interface{}) (*Config, error) {
	cfg := &Config{Region: "us-east-1"}

	var err error
	if cfg.Bucket, err = storage.RequireString(options, "bucket"); err != nil {
		return nil, err
	}
	if cfg.AccessKeyID, err = storage.RequireString(options, "access_key_id"); err != nil {
		return nil, err
	}
	if cfg.SecretAccessKey, err = storage.RequireString(options, "secret_access_key"); err != nil {
		return nil, err
	}
	if v, ok := options["region"].(string); ok && v != "" {
		cfg.Region = v
	}
	if v, ok := options["endpoint"].(string); ok {
		cfg.Endpoint = normalizeEndpoint(v)
	}
	if v, ok := options["force_path_style"].(bool); ok {
		cfg.ForcePathStyle = v
	}

	return cfg, nil
}

// normalizeEndpoint adds https:// to bare hosts such as oss-cn-hangzhou.aliyuncs.com
func normalizeEndpoint(endpoint string) string {
	endpoint = strings.TrimSpace(endpoint)
	if endpoint == "" {
		return ""
	}
	if strings.HasPrefix(endpoint, "http://") || strings.HasPrefix(endpoint, "https://") {
		return strings.TrimSuffix(endpoint, "/")
	}
	return fmt.Sprintf("https://%s", strings.TrimSuffix(strings.TrimPrefix(endpoint, "//"), "/"))
}
