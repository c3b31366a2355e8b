// Command tcp-h2-describe runs the transparent TCP reverse proxy and
// HTTP/2 framing describer.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/domsolutions/tcp-h2-describe/internal/proxy"
	"github.com/domsolutions/tcp-h2-describe/internal/sink"
)

func main() {
	proxyPort := flag.Int("proxy-port", proxy.DefaultProxyPort, "port the proxy listens on")
	serverHost := flag.String("server-host", proxy.DefaultServerHost, "backend host to forward to")
	serverPort := flag.Int("server-port", proxy.DefaultServerPort, "backend port to forward to")
	flag.Parse()

	cfg := proxy.Config{
		ProxyPort:  *proxyPort,
		ServerHost: *serverHost,
		ServerPort: *serverPort,
		Sink:       sink.New(os.Stdout),
	}
	p := proxy.New(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := p.ListenAndServe(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
