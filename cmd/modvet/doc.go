// SPDX-License-Identifier: MPL-2.0

// Package cmd contains all CLI commands for modvet.
//
// This package implements the Cobra command hierarchy for the modvet
// CLI: the root command, mod inspection, flag documentation, save-game
// extraction, and configuration management.
package cmd
