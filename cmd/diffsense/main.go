// Package main provides the entry point for the diffsense CLI.
//
// diffsense compares two texts at a chosen granularity and reports a
// structured change list, optional semantic annotations, and change
// insights. It can also run as an HTTP API.
//
// Usage:
//
//	diffsense diff <original-file> <modified-file>
//	diffsense merge <original-file> <modified-file>
//	diffsense batch <manifest-file>
//	diffsense serve
//	diffsense history
//
// See --help for all available options.
package main

// main is the entry point for diffsense.
func main() {
	Execute()
}
