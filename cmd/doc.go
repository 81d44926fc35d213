// Package cmd implements the command-line interface for zoomreport.
//
// This package provides the following commands:
//   - report: Generate an attendance report, prompting for missing inputs
//   - cron: Generate and email a report non-interactively for scheduled runs
//   - email-test: Send a test email to verify the SMTP configuration
//   - config: Show which configuration values are present
//   - init: Write a .env template to fill in
//   - version: Display version information
//   - generate-docs: Generate markdown documentation for all commands
//
// The report command is the default command when no subcommand is specified.
package cmd
