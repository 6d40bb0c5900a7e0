// Package config provides configuration management for the sync tool.
//
// It utilizes Viper for loading configuration from environment variables and
// an optional .env file next to the working directory.
//
// # Configuration Structure
//
// The Config struct is the central repository for all application settings,
// divided into subsections:
//   - Storage: S3/MinIO credentials and bucket settings
//   - Log: Logging level and format
//   - Sync: defaults applied to sync runs (object key prefix)
//
// Note that this is the tool's own configuration; the project configuration
// describing which files to sync lives in assetsync.toml files and is handled
// by feature/project.
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Storage.Bucket)
package config
