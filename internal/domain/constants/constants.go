// Package constants defines shared constant values used across layers.
package constants

// Environment names
const (
	EnvDevelop    = "develop"
	EnvProduction = "production"
)

// Pub/Sub provider names
const (
	PubSubProviderLocal  = "local"
	PubSubProviderGoogle = "google"
)
