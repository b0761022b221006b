// Package config loads the client configuration from defaults, an
// optional darshan.yaml, dotenv files and DARSHAN_* environment variables.
package config
