package config

import "github.com/m-mizutani/goerr/v2"

var (
	ErrInvalidConfig  = goerr.New("invalid configuration")
	ErrMissingAPIKey  = goerr.New("API key is required for the selected provider")
	ErrInvalidProfile = goerr.New("invalid companion profile")
)
