// Package config loads runtime settings from an optional YAML file and
// SEQUIN_* environment variables. Environment values override the file.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"sequincore/internal/blob"
	"sequincore/internal/core"
)

// Config is the resolved runtime configuration.
type Config struct {
	StorageDriver string
	SQLitePath    string
	PostgresDSN   string

	BlobDriver string
	BlobFSRoot string
	S3         S3

	LogLevel    string
	MetricsAddr string
}

// S3 holds the archive bucket settings.
type S3 struct {
	Bucket          string
	Region          string
	Endpoint        string
	PathStyle       bool
	AccessKeyID     string
	SecretAccessKey string
}

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("config: invalid")

type setting struct {
	key string
	env string
	def any
}

var settings = []setting{
	{"storage.driver", "SEQUIN_STORAGE_DRIVER", string(core.StorageSQLite)},
	{"storage.sqlite_path", "SEQUIN_SQLITE_PATH", "sequin.db"},
	{"storage.postgres_dsn", "SEQUIN_POSTGRES_DSN", ""},
	{"blob.driver", "SEQUIN_BLOB_DRIVER", string(blob.DriverFilesystem)},
	{"blob.fs_root", "SEQUIN_BLOB_FS_ROOT", "./blobdata"},
	{"blob.s3.bucket", "SEQUIN_BLOB_S3_BUCKET", ""},
	{"blob.s3.region", "SEQUIN_BLOB_S3_REGION", "us-east-1"},
	{"blob.s3.endpoint", "SEQUIN_BLOB_S3_ENDPOINT", ""},
	{"blob.s3.path_style", "SEQUIN_BLOB_S3_PATH_STYLE", false},
	{"blob.s3.access_key_id", "SEQUIN_BLOB_S3_ACCESS_KEY_ID", ""},
	{"blob.s3.secret_access_key", "SEQUIN_BLOB_S3_SECRET_ACCESS_KEY", ""},
	{"log.level", "SEQUIN_LOG_LEVEL", "info"},
	{"metrics.addr", "SEQUIN_METRICS_ADDR", ":9090"},
}

// New returns a viper instance with defaults and environment bindings applied.
func New() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")
	for _, s := range settings {
		v.SetDefault(s.key, s.def)
		_ = v.BindEnv(s.key, s.env)
	}
	return v
}

// Load reads path when it is non-empty and resolves the configuration.
func Load(path string) (Config, error) {
	v := New()
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("config: read %s: %w", path, err)
		}
	}
	return FromViper(v)
}

// FromViper resolves and validates the configuration held by v.
func FromViper(v *viper.Viper) (Config, error) {
	cfg := Config{
		StorageDriver: strings.ToLower(v.GetString("storage.driver")),
		SQLitePath:    v.GetString("storage.sqlite_path"),
		PostgresDSN:   v.GetString("storage.postgres_dsn"),
		BlobDriver:    strings.ToLower(v.GetString("blob.driver")),
		BlobFSRoot:    v.GetString("blob.fs_root"),
		S3: S3{
			Bucket:          v.GetString("blob.s3.bucket"),
			Region:          v.GetString("blob.s3.region"),
			Endpoint:        v.GetString("blob.s3.endpoint"),
			PathStyle:       v.GetBool("blob.s3.path_style"),
			AccessKeyID:     v.GetString("blob.s3.access_key_id"),
			SecretAccessKey: v.GetString("blob.s3.secret_access_key"),
		},
		LogLevel:    strings.ToLower(v.GetString("log.level")),
		MetricsAddr: v.GetString("metrics.addr"),
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports the first inconsistent setting.
func (c Config) Validate() error {
	switch core.StorageDriver(c.StorageDriver) {
	case core.StorageMemory, core.StorageSQLite:
	case core.StoragePostgres:
		if c.PostgresDSN == "" {
			return fmt.Errorf("%w: postgres storage needs SEQUIN_POSTGRES_DSN", ErrInvalid)
		}
	default:
		return fmt.Errorf("%w: unknown storage driver %q", ErrInvalid, c.StorageDriver)
	}
	switch blob.Driver(c.BlobDriver) {
	case blob.DriverFilesystem, blob.DriverMemory:
	case blob.DriverS3:
		if c.S3.Bucket == "" {
			return fmt.Errorf("%w: s3 blob driver needs SEQUIN_BLOB_S3_BUCKET", ErrInvalid)
		}
	default:
		return fmt.Errorf("%w: unknown blob driver %q", ErrInvalid, c.BlobDriver)
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: unknown log level %q", ErrInvalid, c.LogLevel)
	}
	return nil
}

// Storage returns the record store settings.
func (c Config) Storage() core.StorageConfig {
	return core.StorageConfig{
		Driver:      core.StorageDriver(c.StorageDriver),
		SQLitePath:  c.SQLitePath,
		PostgresDSN: c.PostgresDSN,
	}
}

// Blob returns the archive settings.
func (c Config) Blob() blob.Config {
	return blob.Config{
		Driver: blob.Driver(c.BlobDriver),
		FSRoot: c.BlobFSRoot,
		S3: blob.S3Config{
			Bucket:          c.S3.Bucket,
			Region:          c.S3.Region,
			Endpoint:        c.S3.Endpoint,
			PathStyle:       c.S3.PathStyle,
			AccessKeyID:     c.S3.AccessKeyID,
			SecretAccessKey: c.S3.SecretAccessKey,
		},
	}
}
