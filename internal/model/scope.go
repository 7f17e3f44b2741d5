package model

// Environment names used by config.environment.name.
type Environment string

const (
	EnvironmentDevelopment Environment = "development"
	EnvironmentProduction  Environment = "production"
)

// Scope identifies the caller of a use case.
type Scope struct {
	ClientID string // API client identity, "cli" for local runs
}
