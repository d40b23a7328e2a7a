// Package frontmatter implements the YAML metadata header used by promptly
// documents.
//
// A document may begin with a header block delimited by lines containing
// only "---". The block between the delimiters is YAML and is unmarshaled
// into the caller's struct; everything after the closing delimiter is the
// document body. Both LF and CRLF line endings are accepted.
//
// # Usage
//
//	type Meta struct {
//		Name        string `yaml:"name"`
//		Description string `yaml:"description"`
//	}
//
//	var meta Meta
//	body, err := frontmatter.Parse(r, &meta)
//
// [Parse] treats the header as optional: a file with no opening delimiter
// yields a zero-value struct and the full content as body. [MustParse]
// requires the header and returns [ErrMissingFrontmatter] when absent, which
// callers can test with [errors.Is]. [ParseHeader] reads only through the
// closing delimiter, which keeps directory listings cheap. [Format] is the
// inverse operation and is used when writing documents back to disk.
package frontmatter
