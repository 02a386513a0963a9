// Package main provides the CLI entrypoint for memberlink.
//
// memberlink runs scripted sessions against the member-linking core:
//   - run    executes a scenario file and prints a step report
//   - config prints the effective configuration
package main

func main() {
	Execute()
}
