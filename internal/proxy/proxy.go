// Package proxy implements the accept loop and per-connection pumps that
// sit around the describer core.
package proxy

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"strconv"
	"sync"
	"time"

	"github.com/valyala/fastrand"

	"github.com/domsolutions/tcp-h2-describe/internal/describe"
	"github.com/domsolutions/tcp-h2-describe/internal/proxylog"
	"github.com/domsolutions/tcp-h2-describe/internal/proxyproto"
)

// readBufferSize is the chunk size each pump reads into per iteration.
const readBufferSize = 0x10000

// Proxy is a running (or not-yet-started) instance of the TCP reverse
// proxy.
type Proxy struct {
	cfg Config
	wg  sync.WaitGroup
}

// New builds a Proxy from cfg, filling unset fields with their defaults.
// It does not lock cfg.Registry; ListenAndServe does that once the
// listener is bound, just before it starts accepting connections.
func New(cfg Config) *Proxy {
	cfg = cfg.withDefaults()
	if cfg.Logger == nil {
		cfg.Logger = proxylog.Std(defaultStdLogger())
	}
	return &Proxy{cfg: cfg}
}

// ListenAndServe binds the proxy port and accepts connections until ctx
// is cancelled. On cancellation it stops accepting new connections,
// waits for every in-flight worker to finish draining its pumps, and
// returns nil. A bind failure or unrecoverable accept error returns a
// non-nil error immediately.
func (p *Proxy) ListenAndServe(ctx context.Context) error {
	addr := net.JoinHostPort(p.cfg.ProxyHost, strconv.Itoa(p.cfg.ProxyPort))
	lc := net.ListenConfig{}
	ln, err := lc.Listen(ctx, "tcp", addr)
	if err != nil {
		return fmt.Errorf("proxy: listen %s: %w", addr, err)
	}

	// Registrations are undefined after the first accepted connection;
	// lock here, just before Accept is first called.
	p.cfg.Registry.Lock()

	if p.cfg.Ready != nil {
		p.cfg.Ready(ln.Addr())
	}

	go func() {
		<-ctx.Done()
		ln.Close()
	}()

	var tempDelay time.Duration
	for {
		conn, err := ln.Accept()
		if err != nil {
			if ctx.Err() != nil {
				break
			}
			var ne net.Error
			if errors.As(err, &ne) && ne.Timeout() {
				tempDelay = nextDelay(tempDelay)
				p.cfg.Logger.Printf("proxy: transient accept error: %v; retrying in %s", err, tempDelay)
				time.Sleep(tempDelay)
				continue
			}
			return fmt.Errorf("proxy: accept: %w", err)
		}
		tempDelay = 0

		p.wg.Add(1)
		go p.handleConn(conn)
	}

	p.wg.Wait()
	return nil
}

// nextDelay grows a backoff delay with a little jitter, capped at one
// second.
func nextDelay(prev time.Duration) time.Duration {
	const max = time.Second
	d := prev * 2
	if d == 0 {
		d = 5 * time.Millisecond
	}
	if d > max {
		d = max
	}
	jitter := time.Duration(fastrand.Uint32n(uint32(d/4 + 1)))
	return d + jitter
}

func (p *Proxy) handleConn(client net.Conn) {
	defer p.wg.Done()

	clientAddr := client.RemoteAddr().String()

	if err := enableKeepalive(client, p.cfg.KeepaliveThreshold); err != nil {
		p.cfg.Logger.Printf("proxy: keepalive tuning failed for %s: %v", clientAddr, err)
	}

	// Sized to readBufferSize so the peek buffer never splits a single
	// TCP read into smaller chunks than the pump would have read itself.
	br := bufio.NewReaderSize(client, readBufferSize)
	var proxyLine []byte
	if hasLine, err := proxyproto.Detect(br); err != nil {
		p.cfg.Logger.Printf("proxy: proxy-protocol detect failed for %s: %v", clientAddr, err)
		client.Close()
		return
	} else if hasLine {
		line, err := proxyproto.ReadLine(br)
		if err != nil {
			p.cfg.Logger.Printf("proxy: proxy-protocol line invalid for %s: %v", clientAddr, err)
			client.Close()
			return
		}
		proxyLine = line
	}

	serverAddr := net.JoinHostPort(p.cfg.ServerHost, strconv.Itoa(p.cfg.ServerPort))
	backend, err := net.Dial("tcp", serverAddr)
	if err != nil {
		p.cfg.Logger.Printf("proxy: dial backend %s failed for %s: %v", serverAddr, clientAddr, err)
		client.Close()
		return
	}
	backendAddr := backend.RemoteAddr().String()

	var closeOnce sync.Once
	closeBoth := func() {
		closeOnce.Do(func() {
			client.Close()
			backend.Close()
		})
	}

	clientToServerLabel := fmt.Sprintf("client(%s)->proxy->server(%s)", clientAddr, backendAddr)
	serverToClientLabel := fmt.Sprintf("server(%s)->proxy->client(%s)", backendAddr, clientAddr)

	p.wg.Add(2)
	go func() {
		defer p.wg.Done()
		p.pump(br, backend, clientToServerLabel, true, proxyLine, closeBoth)
	}()
	go func() {
		defer p.wg.Done()
		p.pump(backend, client, serverToClientLabel, false, nil, closeBoth)
	}()
}

// pump shuttles bytes from src to dst, describing every chunk read before
// forwarding it. expectPrefaceEver is true only for the client->server
// direction, where the preface gate applies to the very first read.
// proxyLine, if set, is attached to the first rendered block only.
func (p *Proxy) pump(src io.Reader, dst io.Writer, label string, expectPrefaceEver bool, proxyLine []byte, closeBoth func()) {
	defer closeBoth()

	d := describe.New(p.cfg.Registry)
	buf := make([]byte, readBufferSize)
	first := true

	for {
		n, readErr := src.Read(buf)
		if n > 0 {
			chunk := buf[:n]
			expectPreface := first && expectPrefaceEver

			var line []byte
			if first {
				line = proxyLine
			}

			block, descErr := d.Describe(chunk, label, expectPreface, line)
			if descErr != nil {
				p.cfg.Sink.Emit(fmt.Sprintf("%s\n%s\ndescribe error: %v\n%s", describe.HeaderRule, label, descErr, describe.FooterRule))
				return
			}
			if emitErr := p.cfg.Sink.Emit(block); emitErr != nil {
				p.cfg.Logger.Printf("proxy: sink write failed for %s: %v", label, emitErr)
				return
			}

			written, writeErr := dst.Write(chunk)
			if writeErr == nil && written != len(chunk) {
				writeErr = fmt.Errorf("short-send: wrote %d of %d bytes", written, len(chunk))
			}
			if writeErr != nil {
				p.cfg.Logger.Printf("proxy: forward failed for %s: %v", label, writeErr)
				return
			}

			first = false
		}

		if readErr != nil {
			if !errors.Is(readErr, io.EOF) {
				p.cfg.Logger.Printf("proxy: read failed for %s: %v", label, readErr)
			}
			return
		}
	}
}
