//go:build linux

package duplex

import (
	"fmt"
	"net"
	"os"

	"golang.org/x/sys/unix"
)

// listenTCP4 - creates listening socket by hand, since net package always uses system max backlog.
func listenTCP4(addr *net.TCPAddr, backlog int) (net.Listener, error) {
	sa := &unix.SockaddrInet4{Port: addr.Port}
	if addr.IP != nil {
		ip := addr.IP.To4()
		if ip == nil {
			return nil, fmt.Errorf("not an IPv4 address: %s", addr.IP)
		}
		copy(sa.Addr[:], ip)
	}

	fd, err := unix.Socket(unix.AF_INET, unix.SOCK_STREAM|unix.SOCK_CLOEXEC|unix.SOCK_NONBLOCK, unix.IPPROTO_TCP)
	if err != nil {
		return nil, os.NewSyscallError("socket", err)
	}
	if err := unix.SetsockoptInt(fd, unix.SOL_SOCKET, unix.SO_REUSEADDR, 1); err != nil {
		unix.Close(fd)
		return nil, os.NewSyscallError("setsockopt", err)
	}
	if err := unix.Bind(fd, sa); err != nil {
		unix.Close(fd)
		return nil, os.NewSyscallError("bind", err)
	}
	if err := unix.Listen(fd, backlog); err != nil {
		unix.Close(fd)
		return nil, os.NewSyscallError("listen", err)
	}

	// net.FileListener dups descriptor, so the file is closed anyway
	f := os.NewFile(uintptr(fd), "tcp4 "+addr.String())
	defer f.Close()
	return net.FileListener(f)
}
