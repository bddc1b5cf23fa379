package whois_tools

import (
	"bytes"
	"fmt"
	"io"
	"log"
	"net"
	"strings"
	"time"
	"unicode/utf8"
)

// QueryFunc is the signature of a raw WHOIS query. It exists so that callers
// (the server finder, the checker) can swap the real transport for a fake one
// in tests.
type QueryFunc func(server, query string, timeout time.Duration) (string, error)

// whoisPort is the WHOIS service port; tests point it at a mock listener.
var whoisPort = "43"

// Query function is used to send a single WHOIS query to the given server on
// port 43 and return the raw response text.
//
// Every call opens a fresh TCP connection; WHOIS is a one-shot protocol and
// servers close the connection after answering. After writing the query the
// write side is half-closed, since some registries wait for EOF before they
// respond. The response is read until the server closes the connection or the
// deadline expires, and is decoded best-effort: undecodable bytes become
// replacement characters rather than errors, because registries routinely
// emit non-UTF-8 text.
func Query(server, query string, timeout time.Duration) (string, error) {
	log.Printf("Querying WHOIS server: %s with query: %q\n", server, query)

	conn, err := net.DialTimeout("tcp", net.JoinHostPort(server, whoisPort), timeout)
	if err != nil {
		return "", fmt.Errorf("connect to %s: %w", server, err)
	}
	defer conn.Close()

	conn.SetDeadline(time.Now().Add(timeout))

	if _, err := conn.Write([]byte(query + "\r\n")); err != nil {
		return "", fmt.Errorf("send query to %s: %w", server, err)
	}
	if tcpConn, ok := conn.(*net.TCPConn); ok {
		tcpConn.CloseWrite()
	}

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, conn); err != nil {
		return "", fmt.Errorf("read from %s: %w", server, err)
	}

	return decodeLossy(buf.Bytes()), nil
}

// decodeLossy converts raw response bytes to a string, substituting the
// Unicode replacement character for invalid sequences.
func decodeLossy(b []byte) string {
	if utf8.Valid(b) {
		return string(b)
	}
	return strings.ToValidUTF8(string(b), string(utf8.RuneError))
}
