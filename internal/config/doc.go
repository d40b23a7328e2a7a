// Package config provides configuration management for promptly using Viper.
//
// Configuration is read from config.yaml in the current directory or in
// promptly's XDG config directory, with PROMPTLY_* environment variables
// taking precedence. A missing config file is not an error; defaults apply.
//
// The config records the local library root, the platforms promptly
// targets by default, and the remote libraries registered with
// "promptly repo add".
package config
