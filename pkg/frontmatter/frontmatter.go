package frontmatter

import (
	"bufio"
	"bytes"
	"errors"
	"io"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrMissingFrontmatter is returned by MustParse when the content has no
// frontmatter block.
var ErrMissingFrontmatter = errors.New("missing frontmatter")

// ErrUnterminatedFrontmatter is returned when an opening delimiter is present
// but no closing delimiter follows.
var ErrUnterminatedFrontmatter = errors.New("missing closing frontmatter delimiter")

// Parse extracts the YAML header and body from r into matter.
// The header is optional: content without an opening delimiter is returned
// whole as the body and matter is left untouched.
func Parse[T any](r io.Reader, matter *T) (body []byte, err error) {
	return parse(r, matter, false)
}

// MustParse is like Parse but fails with ErrMissingFrontmatter when the
// content has no header. Skills require frontmatter; agents and commands
// do not.
func MustParse[T any](r io.Reader, matter *T) (body []byte, err error) {
	return parse(r, matter, true)
}

func parse[T any](r io.Reader, matter *T, required bool) ([]byte, error) {
	content, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	rest, ok := cutOpenDelimiter(content)
	if !ok {
		if required {
			return nil, ErrMissingFrontmatter
		}
		return content, nil
	}

	header, body, ok := cutCloseDelimiter(rest)
	if !ok {
		if required {
			return nil, ErrUnterminatedFrontmatter
		}
		return content, nil
	}

	if err := yaml.Unmarshal(header, matter); err != nil {
		return nil, err
	}
	return body, nil
}

// cutOpenDelimiter strips a leading "---" line. Returns the remaining
// content and whether a delimiter was found.
func cutOpenDelimiter(content []byte) ([]byte, bool) {
	switch {
	case bytes.HasPrefix(content, []byte("---\n")):
		return content[4:], true
	case bytes.HasPrefix(content, []byte("---\r\n")):
		return content[5:], true
	}
	return content, false
}

// cutCloseDelimiter splits content at the first "---" appearing on its own
// line. The newline that the split consumed from the body is trimmed.
func cutCloseDelimiter(content []byte) (header, body []byte, ok bool) {
	header, body, ok = bytes.Cut(content, []byte("\n---"))
	if !ok {
		header, body, ok = bytes.Cut(content, []byte("\r\n---"))
	}
	if !ok {
		return nil, nil, false
	}

	body = bytes.TrimPrefix(body, []byte("\r"))
	body = bytes.TrimPrefix(body, []byte("\n"))
	return header, body, true
}

// ParseHeader unmarshals only the frontmatter block into matter, stopping at
// the closing delimiter without reading the body. A reader with no opening
// delimiter is not an error; matter is simply left at its zero value.
func ParseHeader(r io.Reader, matter any) error {
	scanner := bufio.NewScanner(r)

	if !scanner.Scan() {
		return scanner.Err()
	}
	if strings.TrimSpace(scanner.Text()) != "---" {
		return nil
	}

	var header bytes.Buffer
	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "---" {
			return yaml.Unmarshal(header.Bytes(), matter)
		}
		header.WriteString(line)
		header.WriteByte('\n')
	}

	return scanner.Err()
}

// Format renders matter and body as a document with a YAML header.
// The body is separated from the closing delimiter by a blank line and is
// guaranteed to end with a newline.
func Format(matter any, body string) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString("---\n")

	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(matter); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}

	buf.WriteString("---\n")
	if body != "" {
		buf.WriteByte('\n')
		buf.WriteString(body)
		if !strings.HasSuffix(body, "\n") {
			buf.WriteByte('\n')
		}
	}

	return buf.Bytes(), nil
}
