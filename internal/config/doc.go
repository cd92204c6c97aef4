// Package config loads settings for the people CLI.
//
// Values are layered: Default(), then a YAML file, then PEOPLE_*
// environment variables, then command-line flags (applied by the caller).
//
// # File Format
//
//	base_url: http://localhost:3000/people/
//	token: 0b5a0c2f...
//	timeout: 30s
//	rate_limit: 10
//	log_level: info
package config
