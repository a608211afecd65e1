// Package utils holds small helpers for talking to the terminal and the
// operating system.
package utils
