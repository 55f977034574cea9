// Package main provides the glyphc CLI, which compiles clock face
// configurations into ordered instruction streams.
package main

func main() {
	Execute()
}
