// Package cli implements the tegratop command-line interface.
//
// Commands are Cobra commands registered on rootCmd from init functions.
// Every command that samples the board goes through loadSession, which
// resolves configuration in this order:
//
//  1. Env file (--env-file, default /etc/default/tegratop if present)
//  2. Config file (--config, ./tegratop.yaml, ~/.config/tegratop/config.yaml,
//     /etc/tegratop/config.yaml) with TEGRATOP_* environment overrides
//  3. Global flags (--log-file, --debug)
//  4. Command flags (--interval)
//
// The result is validated, then the log file is opened. The dashboard owns
// the terminal, so nothing is logged to stderr.
//
// # Command Structure
//
//	tegratop            - Live dashboard (same as "monitor")
//	tegratop monitor    - Live dashboard
//	tegratop snapshot   - One sample as text, --json or --yaml
//	tegratop sources    - Discovery report
//	tegratop init       - Create tegratop.yaml
//	tegratop version    - Build information
package cli
