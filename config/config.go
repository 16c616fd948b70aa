// Package config contains code to set the default values and read
// config files to be used throughout the whole application
package config

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/spf13/pflag"
	v "github.com/spf13/viper"
)

var (
	validLogLevels = []string{"debug", "info", "warn", "error", "fatal"}
	validDBDrivers = []string{"sqlite", "postgres"}
)

// Setup prepares everything config-related so that the app can
// start working. Function will return an error if something
// is critically wrong and the application can't run because of
// that.
func Setup() error {
	pflag.Parse()
	v.BindPFlags(pflag.CommandLine)

	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(".")

	v.AutomaticEnv()

	//
	// ENVS
	//
	v.BindEnv("app.log_level", "app_log_level")
	v.BindEnv("app.site_name", "app_site_name")

	v.BindEnv("host.port", "host_port")

	v.BindEnv("db.driver", "db_driver")
	v.BindEnv("db.dsn", "db_dsn")

	v.BindEnv("cis.url", "cis_url")
	v.BindEnv("cis.timeout", "cis_timeout")
	v.BindEnv("cis.thumbs_count", "cis_thumbs_count")

	v.BindEnv("ingest.secret_key", "ingest_secret_key")

	v.BindEnv("storage.type", "storage_type")
	v.BindEnv("storage.local_path", "storage_local_path")

	v.BindEnv("upload.max_size", "upload_max_size")

	v.BindEnv("aws.access_key", "aws_access_key")
	v.BindEnv("aws.secret_access_key", "aws_secret_access_key")
	v.BindEnv("aws.bucket", "aws_bucket")
	v.BindEnv("aws.region", "aws_region")

	v.BindEnv("mail.host", "mail_host")
	v.BindEnv("mail.port", "mail_port")
	v.BindEnv("mail.user", "mail_user")
	v.BindEnv("mail.password", "mail_password")
	v.BindEnv("mail.noreply_address", "mail_noreply_address")

	v.BindEnv("jobs.auto_publish", "jobs_auto_publish")
	v.BindEnv("votes.retention_days", "votes_retention_days")

	//
	// Defaults
	//
	v.SetDefault("app.log_level", "info")
	v.SetDefault("app.site_name", "catalog")

	v.SetDefault("host.port", 8080)

	v.SetDefault("db.driver", "sqlite")

	v.SetDefault("cis.timeout", 30*time.Second)
	v.SetDefault("cis.thumbs_count", 4)

	v.SetDefault("storage.type", "local")
	v.SetDefault("storage.local_path", "data/upload")

	v.SetDefault("upload.max_size", 500)

	v.SetDefault("jobs.auto_publish", "@every 10m")
	v.SetDefault("votes.retention_days", 7)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(v.ConfigFileNotFoundError); ok {
			return errors.New("config.toml file is missing")
		}

		return fmt.Errorf("failed to read config file, %w", err)
	}

	if !slices.Contains(validLogLevels, v.GetString("app.log_level")) {
		return errors.New("invalid log level provided")
	}

	if !slices.Contains(validDBDrivers, v.GetString("db.driver")) {
		return errors.New("invalid db driver provided")
	}

	if v.GetString("db.driver") == "postgres" && v.GetString("db.dsn") == "" {
		return errors.New("db.dsn is required for the postgres driver")
	}

	if v.GetInt("host.port") <= 0 {
		return errors.New("invalid port provided")
	}

	if v.GetString("cis.url") == "" {
		return errors.New("cis.url can't be empty")
	}

	if v.GetString("ingest.secret_key") == "" {
		return errors.New("ingest.secret_key can't be empty")
	}

	if v.GetInt("cis.thumbs_count") <= 0 {
		return errors.New("cis.thumbs_count must be bigger than 0")
	}

	if v.GetInt("upload.max_size") <= 0 {
		return errors.New("upload.max_size must be bigger than 0")
	}

	switch v.GetString("storage.type") {
	case "s3":
		if v.GetString("aws.access_key") == "" {
			return errors.New("aws access key can't be empty")
		}
		if v.GetString("aws.secret_access_key") == "" {
			return errors.New("aws secret access key can't be empty")
		}
		if v.GetString("aws.bucket") == "" {
			return errors.New("bucket can't be empty")
		}
	case "local":
	default:
		return errors.New("invalid storage type provided")
	}

	if v.GetString("mail.host") == "" {
		return errors.New("mail.host can't be empty, failed ingestions must reach the uploader")
	}

	if v.GetString("mail.noreply_address") == "" {
		return errors.New("mail.noreply_address can't be empty")
	}

	v.Set("upload.max_size", v.GetInt64("upload.max_size")<<20)
	return nil
}
