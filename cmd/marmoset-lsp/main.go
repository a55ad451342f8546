package main

import (
	"context"
	"flag"
	"fmt"
	"net"
	"os"
	"time"

	"github.com/jdbaldry/go-language-server-protocol/jsonrpc2"
	"github.com/jdbaldry/go-language-server-protocol/lsp/protocol"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const (
	serverName = "marmoset-lsp"
)

var version = "dev"

// stdio bridges the jsonrpc2 stream onto stdin and stdout. Stdout carries
// the protocol, so all logging goes elsewhere.
type stdio struct{}

func (stdio) Read(p []byte) (int, error)  { return os.Stdin.Read(p) }
func (stdio) Write(p []byte) (int, error) { return os.Stdout.Write(p) }

func (stdio) Close() error {
	if err := os.Stdin.Close(); err != nil {
		return err
	}
	return os.Stdout.Close()
}

func (stdio) LocalAddr() net.Addr                { return stdioAddr{} }
func (stdio) RemoteAddr() net.Addr               { return stdioAddr{} }
func (stdio) SetDeadline(t time.Time) error      { return nil }
func (stdio) SetReadDeadline(t time.Time) error  { return nil }
func (stdio) SetWriteDeadline(t time.Time) error { return nil }

type stdioAddr struct{}

func (stdioAddr) Network() string { return "stdio" }
func (stdioAddr) String() string  { return "stdio" }

func main() {
	logFile := flag.String("log", "", "Write logs to this file instead of stderr")
	debug := flag.Bool("debug", false, "Enable debug logging")
	showVersion := flag.Bool("version", false, "Print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println(version)
		return
	}

	logWriter := os.Stderr
	if *logFile != "" {
		f, err := os.OpenFile(*logFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to open log file: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		logWriter = f
	}
	level := zerolog.InfoLevel
	if *debug {
		level = zerolog.DebugLevel
	}
	log.Logger = zerolog.New(logWriter).Level(level).With().Timestamp().Logger()

	ctx := context.Background()
	stream := jsonrpc2.NewHeaderStream(stdio{})
	conn := jsonrpc2.NewConn(stream)
	client := protocol.ClientDispatcher(conn)
	server := newServer(client)

	conn.Go(ctx, protocol.Handlers(
		protocol.ServerHandler(server, jsonrpc2.MethodNotFound),
	))
	log.Info().Str("version", version).Msg("language server started")
	<-conn.Done()
	if err := conn.Err(); err != nil {
		log.Error().Err(err).Msg("connection closed with error")
		os.Exit(1)
	}
}
