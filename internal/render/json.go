// =============================================================================
// passwd2json - JSON Renderer
// =============================================================================
//
// Serializes a record set into the output document:
//
//   {
//   	"root": {
//   		"uid": "0",
//   		"full_name": "root",
//   		"groups": [
//   			"daemon"
//   		]
//   	}
//   }
//
// Escaping and indentation are left to encoding/json. This package only
// decides key order, which encoding/json cannot express for a map.
//
// KEY ORDER:
//   - insertion (default): first occurrence in the account table
//   - sorted: lexical byte order
//
// =============================================================================

package render

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/ginjaninja78/passwd2json/internal/types"
)

// =============================================================================
// RENDER OPTIONS
// =============================================================================

// Options controls the layout of the rendered document.
type Options struct {
	// Indent is the string used for one level of indentation.
	// Default: "\t"
	Indent string

	// SortKeys orders usernames lexically instead of by first occurrence.
	// Default: false
	SortKeys bool
}

// DefaultOptions returns the default render options.
func DefaultOptions() Options {
	return Options{
		Indent:   "\t",
		SortKeys: false,
	}
}

// =============================================================================
// DOCUMENT MODEL
// =============================================================================

// Account is the JSON shape of one record.
type Account struct {
	UID      string   `json:"uid"`
	FullName string   `json:"full_name"`
	Groups   []string `json:"groups"`
}

// Document is an ordered JSON object of username -> Account.
type Document struct {
	keys     []string
	accounts map[string]Account
}

// NewDocument builds the document for records.
func NewDocument(records *types.RecordSet, sortKeys bool) *Document {
	doc := &Document{
		keys:     records.Usernames(),
		accounts: make(map[string]Account, records.Len()),
	}

	for _, record := range records.Records() {
		groups := record.Groups
		if groups == nil {
			groups = []string{}
		}
		doc.accounts[record.Username] = Account{
			UID:      record.UID,
			FullName: record.FullName,
			Groups:   groups,
		}
	}

	if sortKeys {
		sort.Strings(doc.keys)
	}

	return doc
}

// MarshalJSON writes the members in key order. The output is compact;
// indentation is applied by the encoder in Render.
func (d *Document) MarshalJSON() ([]byte, error) {
	var buffer bytes.Buffer
	buffer.WriteByte('{')

	for i, key := range d.keys {
		if i > 0 {
			buffer.WriteByte(',')
		}

		name, err := encode(key)
		if err != nil {
			return nil, fmt.Errorf("encode key %q: %w", key, err)
		}
		value, err := encode(d.accounts[key])
		if err != nil {
			return nil, fmt.Errorf("encode account %q: %w", key, err)
		}

		buffer.Write(name)
		buffer.WriteByte(':')
		buffer.Write(value)
	}

	buffer.WriteByte('}')
	return buffer.Bytes(), nil
}

// =============================================================================
// RENDERING
// =============================================================================

// Render serializes records using opts.
//
// RETURNS:
//   - The indented JSON document, without a trailing newline. An empty
//     record set renders as {}.
//   - An error if encoding fails.
func Render(records *types.RecordSet, opts Options) ([]byte, error) {
	return RenderDocument(NewDocument(records, opts.SortKeys), opts)
}

// RenderDocument serializes an already-built document.
func RenderDocument(doc *Document, opts Options) ([]byte, error) {
	var buffer bytes.Buffer

	encoder := json.NewEncoder(&buffer)
	encoder.SetEscapeHTML(false)
	encoder.SetIndent("", opts.Indent)

	if err := encoder.Encode(doc); err != nil {
		return nil, fmt.Errorf("failed to encode document: %w", err)
	}

	return bytes.TrimRight(buffer.Bytes(), "\n"), nil
}

// encode marshals v compactly without HTML escaping, so names such as
// "R&D <ops>" come out as written.
func encode(v any) ([]byte, error) {
	var buffer bytes.Buffer

	encoder := json.NewEncoder(&buffer)
	encoder.SetEscapeHTML(false)
	if err := encoder.Encode(v); err != nil {
		return nil, err
	}

	return bytes.TrimRight(buffer.Bytes(), "\n"), nil
}
