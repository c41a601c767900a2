package duplex

import (
	"context"
	"fmt"
	"net"
)

// Dial - connects to a listening peer over IPv4 TCP, there is no retry.
func Dial(ctx context.Context, address string) (net.Conn, error) {
	d := net.Dialer{}
	conn, err := d.DialContext(ctx, "tcp4", address)
	if err != nil {
		return nil, fmt.Errorf("duplex.Dial: %w", err)
	}
	return conn, nil
}
