package xsd

import (
	"bytes"
	"encoding/xml"
	"os"

	"github.com/schemavis/schemavis/pkg/errors"
)

// Parse decodes an XSD document into its schema object tree.
func Parse(data []byte) (*Schema, error) {
	var s Schema
	dec := xml.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(&s); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidSchema, err, "decode schema")
	}
	return &s, nil
}

// Load reads and decodes an XSD document from disk.
func Load(path string) (*Schema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "read %s", path)
	}
	s, err := Parse(data)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidSchema, err, "parse %s", path)
	}
	return s, nil
}
