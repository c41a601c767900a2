//go:build !linux

package duplex

import "net"

// listenTCP4 - the net package does not expose backlog, system default is used.
func listenTCP4(addr *net.TCPAddr, _ int) (net.Listener, error) {
	return net.ListenTCP("tcp4", addr)
}
