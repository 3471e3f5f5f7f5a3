// Package catalogfile reads and writes law catalog documents.
//
// A document lists laws under a top-level "laws" key:
//
//	laws:
//	  - name: Ohm's Law
//	    formula: V = I*R
//	    section: Electricity
//
// YAML (.yaml, .yml) and CUE (.cue) inputs are accepted; output is YAML.
package catalogfile

import (
	"bytes"
	_ "embed"
	"io"
	"os"
	"path/filepath"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"gopkg.in/yaml.v3"

	"github.com/roach88/lawbook/internal/errors"
	"github.com/roach88/lawbook/internal/store"
)

//go:embed schema.cue
var schemaCUE string

// ErrInvalidDocument marks documents that cannot be decoded or that break
// the catalog rules (every law needs a name).
var ErrInvalidDocument = errors.Mark(errors.New("invalid catalog document"), errors.ErrInvalidRequest)

// ErrUnsupportedFormat is returned for unknown file extensions.
var ErrUnsupportedFormat = errors.New("unsupported catalog format")

// Document is the on-disk catalog shape.
type Document struct {
	Entries []Entry `yaml:"laws" json:"laws"`
}

// Entry is one law in a document.
type Entry struct {
	Name    string `yaml:"name" json:"name"`
	Formula string `yaml:"formula" json:"formula"`
	Section string `yaml:"section" json:"section"`
}

// FromLaws builds a document from stored laws, dropping surrogate ids.
func FromLaws(laws []store.Law) Document {
	doc := Document{Entries: make([]Entry, 0, len(laws))}
	for _, law := range laws {
		doc.Entries = append(doc.Entries, Entry{
			Name:    law.Name,
			Formula: law.Formula,
			Section: law.Section,
		})
	}
	return doc
}

// Laws converts the document entries to store laws.
func (d Document) Laws() []store.Law {
	laws := make([]store.Law, 0, len(d.Entries))
	for _, e := range d.Entries {
		laws = append(laws, store.Law{Name: e.Name, Formula: e.Formula, Section: e.Section})
	}
	return laws
}

// Validate checks that every entry has a non-blank name.
func (d Document) Validate() error {
	for i, e := range d.Entries {
		if strings.TrimSpace(e.Name) == "" {
			return errors.Wrapf(ErrInvalidDocument, "laws[%d]: name is empty", i)
		}
	}
	return nil
}

// ReadFile reads and decodes the catalog at path.
func ReadFile(path string) (Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Document{}, errors.Wrapf(err, "read catalog %s", path)
	}
	return Decode(path, data)
}

// Decode parses data according to the extension of path.
func Decode(path string, data []byte) (Document, error) {
	var (
		doc Document
		err error
	)

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		doc, err = decodeYAML(data)
	case ".cue":
		doc, err = decodeCUE(path, data)
	default:
		return Document{}, errors.Wrapf(ErrUnsupportedFormat, "%q (want .yaml, .yml or .cue)", ext)
	}
	if err != nil {
		return Document{}, errors.Wrapf(err, "decode %s", path)
	}

	if err := doc.Validate(); err != nil {
		return Document{}, errors.Wrapf(err, "validate %s", path)
	}
	return doc, nil
}

func decodeYAML(data []byte) (Document, error) {
	var doc Document
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			// Empty file: empty catalog.
			return Document{}, nil
		}
		return Document{}, errors.Mark(err, ErrInvalidDocument)
	}
	return doc, nil
}

func decodeCUE(path string, data []byte) (Document, error) {
	ctx := cuecontext.New()

	schema := ctx.CompileString(schemaCUE, cue.Filename("schema.cue")).
		LookupPath(cue.ParsePath("#Catalog"))
	if err := schema.Err(); err != nil {
		return Document{}, errors.Wrap(err, "compile catalog schema")
	}

	value := ctx.CompileBytes(data, cue.Filename(path))
	if err := value.Err(); err != nil {
		return Document{}, errors.Mark(err, ErrInvalidDocument)
	}
	unified := schema.Unify(value)
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		return Document{}, errors.Mark(err, ErrInvalidDocument)
	}

	var doc Document
	if err := unified.Decode(&doc); err != nil {
		return Document{}, errors.Mark(err, ErrInvalidDocument)
	}
	return doc, nil
}

// EncodeYAML writes doc as YAML with two-space indentation.
func EncodeYAML(w io.Writer, doc Document) error {
	if doc.Entries == nil {
		doc.Entries = []Entry{}
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return errors.Wrap(err, "encode catalog")
	}
	return enc.Close()
}
