// Package config loads runtime configuration for the Evently CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional config file selected with -c or -config. The extension picks
//     the decoder: .json or .yaml/.yml.
//  3. A .env file in the working directory plus EVENTLY_* environment
//     variables. Real environment variables win over .env entries.
//  4. Command-line flags, which override everything else.
//
// Supported flags
//
//	-a string   backend base URL (default http://localhost:5000)
//	-d string   local store path (default evently.db)
//	-t int      request timeout in seconds (default 10)
//	-l string   log level (default info)
//
// # File schema
//
// Durations use timex.Duration, so "10s" and integer nanoseconds both work:
//
//	api_url: http://localhost:5000
//	db_path: evently.db
//	request_timeout: 10s
//	log_level: info
//	locale: en
//	image_bucket: evently-images
//	image_region: us-east-1
package config
