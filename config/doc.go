// Package config loads client settings with viper.
//
// Precedence, lowest to highest: built-in defaults, an optional YAML file, environment variables.
// The API base URL is read from API_URL and defaults to "http://localhost:8090".
package config
