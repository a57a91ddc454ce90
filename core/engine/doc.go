// Package engine scores calibration documents. It is domain-only: no file
// access, no flags, no output formatting. Callers hand in the whole document
// as a string and get back an integer.
package engine
