package frontmatter

import (
	"bytes"

	"gopkg.in/yaml.v3"
)

// Marshal renders meta as a complete front matter block, delimiters included.
// Parsing the result yields an equivalent Metadata.
func Marshal(meta Metadata) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(delimiter + "\n")

	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(meta); err != nil {
		_ = enc.Close()
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}

	buf.WriteString(delimiter + "\n")
	return buf.Bytes(), nil
}
