package storage

// Config holds configuration for the object storage (e.g., S3, Minio).
type Config struct {
	// Endpoint is the storage endpoint, without scheme.
	Endpoint string `mapstructure:"endpoint" default:"localhost:9000"`
	// AccessKey is the storage access key.
	AccessKey string `mapstructure:"access_key" default:""`
	// SecretKey is the storage secret key.
	SecretKey string `mapstructure:"secret_key" default:""`
	// Bucket is the bucket holding the public media files.
	Bucket string `mapstructure:"bucket" default:"media"`
	// MediaPrefix is the object key prefix under which media files live.
	MediaPrefix string `mapstructure:"media_prefix" default:""`
	// Region is the storage region.
	Region string `mapstructure:"region" default:""`
	// UseSSL enables TLS for the storage connection.
	UseSSL bool `mapstructure:"use_ssl" default:"false"`
	// TimeoutSeconds bounds connection setup and response headers.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
}
