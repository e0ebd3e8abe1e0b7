// Package cli provides command-line interface setup and configuration
// for the kanjideck application. It handles flag parsing, command
// creation, .env loading and configuration management using cobra and
// viper.
package cli
