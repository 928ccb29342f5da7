// Package cmd implements the cobra command tree for the gwctl CLI, covering
// configuration, token inspection, SMS, USSD, payment operations, and shell
// completion.
package cmd
