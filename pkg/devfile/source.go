// SPDX-License-Identifier: MPL-2.0

package devfile

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/devinstaller/devinstaller/pkg/cueutil"
)

const (
	// MethodFile reads the devfile from disk.
	MethodFile Method = "file"
	// MethodURL downloads the devfile over HTTP(S).
	MethodURL Method = "url"
	// MethodData takes the devfile contents inline.
	MethodData Method = "data"

	// DefaultSource is used when no source is given on the command line.
	DefaultSource = "file: devfile.toml"
)

var (
	sourcePattern = regexp.MustCompile(`^(url|file|data): (.*)$`)
	// methodLike matches anything that looks like "<word>: ..." so that typos such
	// as "flie: x" are reported instead of being read as a path.
	methodLike = regexp.MustCompile(`^([A-Za-z]+):(\s|$)`)
)

type (
	// Method selects how a devfile source is fetched.
	Method string

	// Source is a parsed "<method>: <location>" string.
	Source struct {
		Method   Method
		Location string
		Format   Format
	}

	// File is a loaded, validated devfile together with where it came from.
	File struct {
		Source   Source
		Digest   string
		Document *Document
	}

	// loadOptions configures Load.
	loadOptions struct {
		client  *http.Client
		format  Format
		maxSize int64
	}

	// LoadOption configures Load.
	LoadOption func(*loadOptions)
)

// WithHTTPClient sets the client used for url: sources.
func WithHTTPClient(c *http.Client) LoadOption {
	return func(o *loadOptions) { o.client = c }
}

// WithFormat forces the devfile format instead of detecting it from the location.
func WithFormat(f Format) LoadOption {
	return func(o *loadOptions) { o.format = f }
}

// WithMaxSize bounds the number of bytes read from any source.
func WithMaxSize(n int64) LoadOption {
	return func(o *loadOptions) { o.maxSize = n }
}

// ParseSource splits a source string into its method and location.
// A string without a method prefix is read as a file path.
func ParseSource(s string) (Source, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Source{}, NewSpecificationError(CodeInvalidSource, s, "empty devfile source")
	}

	if m := sourcePattern.FindStringSubmatch(s); m != nil {
		src := Source{Method: Method(m[1]), Location: m[2]}
		if src.Method == MethodData {
			src.Format = FormatTOML
		} else {
			src.Format = FormatFor(src.Location)
		}
		if src.Method != MethodData && strings.TrimSpace(src.Location) == "" {
			return Source{}, NewSpecificationError(CodeInvalidSource, s, "devfile source has no location")
		}
		return src, nil
	}

	if methodLike.MatchString(s) {
		return Source{}, NewSpecificationError(CodeInvalidSource, s,
			"devfile source must start with one of file:, url: or data:")
	}

	return Source{Method: MethodFile, Location: s, Format: FormatFor(s)}, nil
}

// String renders the source back into its "<method>: <location>" form.
// Inline data is elided.
func (s Source) String() string {
	if s.Method == MethodData {
		return "data: <inline>"
	}
	return string(s.Method) + ": " + s.Location
}

// Digest returns the hex SHA-256 digest of data.
func Digest(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// Load resolves source, reads it, and returns the validated devfile.
func Load(ctx context.Context, source string, opts ...LoadOption) (*File, error) {
	options := loadOptions{client: http.DefaultClient, maxSize: cueutil.DefaultMaxFileSize}
	for _, opt := range opts {
		opt(&options)
	}

	src, err := ParseSource(source)
	if err != nil {
		return nil, err
	}
	if options.format != "" {
		src.Format = options.format
	}

	data, err := read(ctx, src, options)
	if err != nil {
		return nil, err
	}
	if err := cueutil.CheckFileSize(data, options.maxSize, src.String()); err != nil {
		return nil, err
	}

	doc, err := Parse(data, src.Format, displayName(src))
	if err != nil {
		return nil, err
	}

	return &File{Source: src, Digest: Digest(data), Document: doc}, nil
}

func read(ctx context.Context, src Source, options loadOptions) ([]byte, error) {
	switch src.Method {
	case MethodData:
		return []byte(src.Location), nil
	case MethodURL:
		return download(ctx, options.client, src.Location, options.maxSize)
	default:
		path, err := expandHome(src.Location)
		if err != nil {
			return nil, err
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read devfile: %w", err)
		}
		return data, nil
	}
}

func download(ctx context.Context, client *http.Client, url string, maxSize int64) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("download devfile: %w", err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("download devfile: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("download devfile %s: unexpected status %s", url, resp.Status)
	}

	// Read one byte past the limit so oversize bodies are detected by CheckFileSize.
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxSize+1))
	if err != nil {
		return nil, fmt.Errorf("download devfile: %w", err)
	}
	return data, nil
}

// expandHome replaces a leading "~" with the user's home directory.
func expandHome(p string) (string, error) {
	if p != "~" && !strings.HasPrefix(p, "~/") {
		return p, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, strings.TrimPrefix(p, "~")), nil
}

func displayName(src Source) string {
	if src.Method == MethodData {
		return "<inline devfile>"
	}
	return src.Location
}
