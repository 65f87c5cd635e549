// Package config provides configuration management for the content sync service.
//
// It utilizes Viper for loading configuration from environment variables and
// a local .env file.
//
// # Configuration Structure
//
// The Config struct is the central repository for all application settings, divided into subsections:
//   - Server: HTTP server settings (port, API key)
//   - Database: MySQL content store connection details
//   - Storage: S3/MinIO credentials and bucket settings for content images
//   - Log: Logging level and format
//   - Content: Content pipeline settings (authoring directory, batching mode)
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Server.Port)
package config
