// Package config builds the application configuration from the environment.
//
// Configuration is read once at startup into an explicit Config value that is
// passed into the collaborators; no other package reads the environment. A
// .env file in the working directory is honored when present.
package config
