// Package config loads and validates glint.json project configuration.
package config
