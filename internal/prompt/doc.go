// Package prompt fills form models interactively on a terminal.
package prompt
