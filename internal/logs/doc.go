// Package logs reads the workflow log file for the CLI's logs command,
// including incremental follow-style reads that survive rotation.
package logs
