package unsubscribe

import (
	"bytes"
	"fmt"
	"io"
	"net/mail"
	"os"
	"regexp"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/text/encoding"
	"golang.org/x/text/transform"
)

// FallbackLines bounds how many lines of an undecodable message are scanned
// for the List-Unsubscribe header.
const FallbackLines = 100

var (
	webPattern    = regexp.MustCompile(`<((?:https?://).*?)>`)
	mailtoPattern = regexp.MustCompile(`<((?:https?://|mailto:).*?)>`)
)

// Extractor resolves the unsubscribe URL of a message.
// The zero value accepts http:// and https:// entries only.
type Extractor struct {
	// AcceptMailto makes <mailto:...> entries count as URLs.
	AcceptMailto bool

	// Stdin is read when ReadFile is given "-". Defaults to os.Stdin.
	Stdin io.Reader

	Logger *zap.Logger
}

func (e *Extractor) logger() *zap.Logger {
	if e.Logger == nil {
		return zap.NewNop()
	}
	return e.Logger
}

// Parse searches a raw header value for the first bracketed entry with an
// accepted scheme.
func (e *Extractor) Parse(raw string) Result {
	if raw == "" {
		return Result{Status: StatusAbsent}
	}

	pattern := webPattern
	if e.AcceptMailto {
		pattern = mailtoPattern
	}

	m := pattern.FindStringSubmatch(raw)
	if m == nil {
		return Result{Status: StatusNoURL, Raw: raw}
	}
	return Result{Status: StatusFound, Raw: raw, URL: strings.TrimSpace(m[1])}
}

// FromHeader looks up List-Unsubscribe in h and parses its first value.
func (e *Extractor) FromHeader(h mail.Header) Result {
	return e.Parse(h.Get(HeaderName))
}

// Read consumes a whole message from r and extracts its unsubscribe URL.
// Messages that are not valid UTF-8, or that net/mail cannot parse, are
// retried through ScanRaw. Only read errors are returned.
func (e *Extractor) Read(r io.Reader) (Result, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return Result{}, fmt.Errorf("read message: %w", err)
	}

	if _, err := decodeUTF8(b); err != nil {
		e.logger().Debug("message is not valid UTF-8, scanning raw header lines", zap.Error(err))
		return e.Parse(ScanRaw(b, FallbackLines)), nil
	}

	msg, err := mail.ReadMessage(bytes.NewReader(b))
	if err != nil {
		e.logger().Debug("failed to parse message, scanning raw header lines", zap.Error(err))
		return e.Parse(ScanRaw(b, FallbackLines)), nil
	}

	return e.FromHeader(msg.Header), nil
}

// ReadFile extracts the unsubscribe URL from the message stored at path.
// A path of "-" reads standard input.
func (e *Extractor) ReadFile(path string) (Result, error) {
	if path == "-" {
		stdin := e.Stdin
		if stdin == nil {
			stdin = os.Stdin
		}
		return e.Read(stdin)
	}

	f, err := os.Open(path)
	if err != nil {
		return Result{}, fmt.Errorf("open message: %w", err)
	}
	defer f.Close()

	e.logger().Debug("reading message", zap.String("path", path))
	return e.Read(f)
}

// ScanRaw looks for a line starting with "List-Unsubscribe:" within the first
// maxLines lines of b and returns its unfolded value. Only that field is
// decoded; an empty string means no decodable field was found.
func ScanRaw(b []byte, maxLines int) string {
	value, ok := scanFields(b, maxLines).value(HeaderName)
	if !ok {
		return ""
	}
	decoded, err := decodeUTF8([]byte(value))
	if err != nil {
		return ""
	}
	return decoded
}

func decodeUTF8(b []byte) (string, error) {
	out, _, err := transform.Bytes(encoding.UTF8Validator, b)
	if err != nil {
		return "", err
	}
	return string(out), nil
}
