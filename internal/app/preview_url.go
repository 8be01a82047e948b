package app

import (
	"net"
)

// PreviewURL turns a bound listen address into a URL a phone on the same
// network can open. Wildcard hosts are replaced by the first usable address.
func PreviewURL(listenAddr string, candidates []net.IP) string {
	host, port, err := net.SplitHostPort(listenAddr)
	if err != nil {
		return "http://" + listenAddr + "/"
	}
	ip := net.ParseIP(host)
	if host == "" || (ip != nil && ip.IsUnspecified()) {
		host = "localhost"
		for _, c := range candidates {
			if c.IsLoopback() || c.IsLinkLocalUnicast() {
				continue
			}
			host = c.String()
			if c.To4() != nil {
				break
			}
		}
	}
	return "http://" + net.JoinHostPort(host, port) + "/"
}

func hostAddrs() []net.IP {
	addrs, err := net.InterfaceAddrs()
	if err != nil {
		return nil
	}
	var ips []net.IP
	for _, a := range addrs {
		if n, ok := a.(*net.IPNet); ok {
			ips = append(ips, n.IP)
		}
	}
	return ips
}
