package middleware

import (
	"net"

	"github.com/labstack/echo/v4"
)

// ClientIPExtractor resolves the ip returned by c.RealIP(), which keys the
// rate limiter and the request logs.
//
// X-Forwarded-For is only read when the peer falls in one of trusted.
func ClientIPExtractor(trusted []string) echo.IPExtractor {
	if len(trusted) == 0 {
		return echo.ExtractIPDirect()
	}

	options := []echo.TrustOption{
		echo.TrustLoopback(false),
		echo.TrustLinkLocal(false),
		echo.TrustPrivateNet(false),
	}
	for _, cidr := range trusted {
		if _, ipNet, err := net.ParseCIDR(cidr); err == nil {
			options = append(options, echo.TrustIPRange(ipNet))
		}
	}

	return echo.ExtractIPFromXFFHeader(options...)
}
