// Command `duplex` is a single-peer chat over raw TCP.
//
// It listens on all IPv4 interfaces (port 5000 by default), accepts exactly one
// peer and then prints whatever the peer sends with "> " prefix, while every
// line typed at the "input:$ " prompt is sent to the peer as is, without delimiter.
//
//	duplex --port 5000
//	duplex connect 127.0.0.1:5000
//
// To compile locally, run from package directory:
//
//	go install .
package main
