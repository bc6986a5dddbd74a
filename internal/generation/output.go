package generation

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
	"time"
	"unicode"

	"github.com/spf13/afero"
)

// Format selects the encoding of a persisted artifact.
type Format string

const (
	FormatMarkdown Format = "markdown"
	FormatJSON     Format = "json"
)

// ParseFormat maps "json" to FormatJSON and anything else to markdown.
func ParseFormat(s string) Format {
	if strings.EqualFold(strings.TrimSpace(s), string(FormatJSON)) {
		return FormatJSON
	}
	return FormatMarkdown
}

// Ext returns the file extension for the format, without the dot.
func (f Format) Ext() string {
	if f == FormatJSON {
		return "json"
	}
	return "md"
}

// TimestampLayout is the second-precision stamp in artifact names.
const TimestampLayout = "20060102150405"

// MarkdownFormatter renders a result into w. Absent optional fields are skipped.
type MarkdownFormatter func(r *Result, w io.Writer) error

// SafeIdentifier lower-cases s, turns spaces into underscores, drops
// characters that are unsafe in file names and truncates to max runes.
func SafeIdentifier(s string, max int) string {
	var b strings.Builder
	for _, r := range strings.ToLower(strings.TrimSpace(s)) {
		switch {
		case r == ' ' || r == '\t':
			b.WriteRune('_')
		case r == '_' || r == '-':
			b.WriteRune(r)
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
		}
	}
	out := []rune(b.String())
	if max > 0 && len(out) > max {
		out = out[:max]
	}
	return string(out)
}

// Artifact describes a persisted file.
type Artifact struct {
	Name     string    `json:"name"`
	Size     int64     `json:"size"`
	Modified time.Time `json:"modified"`
	Type     string    `json:"type"`
}

// ErrInvalidArtifact is returned for names that do not address a file
// directly inside the output directory.
var ErrInvalidArtifact = errors.New("invalid artifact name")

// Store writes and reads artifacts in a single flat directory.
type Store struct {
	Fs  afero.Fs
	Dir string
	Now func() time.Time
}

// NewStore returns a Store on the OS filesystem rooted at dir.
func NewStore(dir string) *Store {
	return &Store{Fs: afero.NewOsFs(), Dir: dir, Now: time.Now}
}

func (s *Store) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// Filename builds "{prefix}_{YYYYMMDDHHMMSS}.{ext}" from the current clock.
func (s *Store) Filename(prefix string, format Format) string {
	return fmt.Sprintf("%s_%s.%s", prefix, s.now().Format(TimestampLayout), format.Ext())
}

// Save writes result in the requested format and returns the artifact path.
// A same-second save with the same prefix overwrites the earlier file.
func (s *Store) Save(result *Result, prefix string, formatter MarkdownFormatter, format Format) (string, error) {
	if result == nil {
		return "", errors.New("nil result")
	}
	if err := s.Fs.MkdirAll(s.Dir, 0o755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}

	path := filepath.Join(s.Dir, s.Filename(prefix, format))

	var buf bytes.Buffer
	switch format {
	case FormatJSON:
		if err := EncodeJSON(&buf, result); err != nil {
			return "", err
		}
	default:
		if formatter == nil {
			return "", errors.New("no markdown formatter")
		}
		if err := formatter(result, &buf); err != nil {
			return "", fmt.Errorf("format markdown: %w", err)
		}
	}

	if err := afero.WriteFile(s.Fs, path, buf.Bytes(), 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	return path, nil
}

// EncodeJSON writes v with two-space indentation. Non-ASCII text and
// &, < and > are written literally.
func EncodeJSON(w io.Writer, v any) error {
	data, err := IndentLiteral(v)
	if err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	_, err = w.Write(append(data, '\n'))
	return err
}

// List scans the output directory for artifacts, newest first.
func (s *Store) List() ([]Artifact, error) {
	infos, err := afero.ReadDir(s.Fs, s.Dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []Artifact{}, nil
		}
		return nil, err
	}

	out := make([]Artifact, 0, len(infos))
	for _, info := range infos {
		if info.IsDir() {
			continue
		}
		ext := strings.TrimPrefix(filepath.Ext(info.Name()), ".")
		if ext != "md" && ext != "json" {
			continue
		}
		out = append(out, Artifact{
			Name:     info.Name(),
			Size:     info.Size(),
			Modified: info.ModTime(),
			Type:     ext,
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Modified.After(out[j].Modified)
	})
	return out, nil
}

// Open reads a single artifact by bare file name.
func (s *Store) Open(name string) ([]byte, error) {
	if name == "" || name != filepath.Base(name) || strings.HasPrefix(name, ".") {
		return nil, ErrInvalidArtifact
	}
	data, err := afero.ReadFile(s.Fs, filepath.Join(s.Dir, name))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", fs.ErrNotExist, name)
		}
		return nil, err
	}
	return data, nil
}

// StoredRecord is a decoded JSON artifact and the file it came from.
type StoredRecord struct {
	Name   string
	Record *Record
}

// ReadRecords decodes every stored JSON artifact whose name matches pattern
// (a filepath.Match glob such as "writing_styles_*.json"). Files that fail to
// decode are skipped.
func (s *Store) ReadRecords(pattern string) ([]StoredRecord, error) {
	matches, err := afero.Glob(s.Fs, filepath.Join(s.Dir, pattern))
	if err != nil {
		return nil, err
	}
	sort.Strings(matches)

	var out []StoredRecord
	for _, path := range matches {
		data, err := afero.ReadFile(s.Fs, path)
		if err != nil {
			continue
		}
		rec, err := DecodeRecord(data)
		if err != nil {
			continue
		}
		out = append(out, StoredRecord{Name: filepath.Base(path), Record: rec})
	}
	return out, nil
}
