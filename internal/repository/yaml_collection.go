package repository

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrCollectionNotFound is returned when a data file has no top-level key
// for the requested collection.
var ErrCollectionNotFound = errors.New("collection declaration not found")

// span is the 1-based line range of a top-level "key:" block.
// next is the line of the following top-level key, 0 when the block runs to EOF.
type span struct {
	value *yaml.Node
	start int
	next  int
}

// DecodeCollection finds the top-level key in a YAML document and decodes the
// sequence under it. A null value decodes to an empty collection.
func DecodeCollection[T any](content []byte, key string) ([]T, error) {
	loc, err := locate(content, key)
	if err != nil {
		return nil, err
	}

	items := []T{}
	switch {
	case loc.value.Kind == yaml.ScalarNode && loc.value.Tag == "!!null":
		return items, nil
	case loc.value.Kind != yaml.SequenceNode:
		return nil, fmt.Errorf("%s: expected a sequence at line %d", key, loc.value.Line)
	}

	if err := loc.value.Decode(&items); err != nil {
		return nil, fmt.Errorf("decode %s: %w", key, err)
	}
	return items, nil
}

// SpliceCollection re-serializes items under key and replaces only the lines
// of the existing key block. Everything before the key line and from the next
// top-level key (or trailing top-level comments) onward is kept byte-for-byte.
func SpliceCollection[T any](content []byte, key string, items []T) ([]byte, error) {
	loc, err := locate(content, key)
	if err != nil {
		return nil, err
	}

	block, err := encodeCollection(key, items)
	if err != nil {
		return nil, err
	}

	lines := strings.SplitAfter(string(content), "\n")
	start := loc.start - 1
	end := len(lines)
	if loc.next > 0 {
		end = loc.next - 1
	}
	for end > start+1 && isTrailer(lines[end-1]) {
		end--
	}

	var out bytes.Buffer
	out.Grow(len(content) + len(block))
	for _, l := range lines[:start] {
		out.WriteString(l)
	}
	out.Write(block)
	for _, l := range lines[end:] {
		out.WriteString(l)
	}
	return out.Bytes(), nil
}

func locate(content []byte, key string) (*span, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(content, &doc); err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrCollectionNotFound, key)
	}

	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("%w: %s", ErrCollectionNotFound, key)
	}

	for i := 0; i+1 < len(root.Content); i += 2 {
		k := root.Content[i]
		if k.Value != key {
			continue
		}
		if k.Column != 1 {
			return nil, fmt.Errorf("%s: collection key must start a line (block style mapping)", key)
		}
		loc := &span{value: root.Content[i+1], start: k.Line}
		if i+2 < len(root.Content) {
			loc.next = root.Content[i+2].Line
		}
		return loc, nil
	}

	return nil, fmt.Errorf("%w: %s", ErrCollectionNotFound, key)
}

func encodeCollection[T any](key string, items []T) ([]byte, error) {
	if items == nil {
		items = []T{}
	}

	var value yaml.Node
	if err := value.Encode(items); err != nil {
		return nil, fmt.Errorf("encode %s: %w", key, err)
	}

	block := &yaml.Node{
		Kind: yaml.MappingNode,
		Content: []*yaml.Node{
			{Kind: yaml.ScalarNode, Tag: "!!str", Value: key},
			&value,
		},
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(block); err != nil {
		return nil, fmt.Errorf("encode %s: %w", key, err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encode %s: %w", key, err)
	}
	return buf.Bytes(), nil
}

// isTrailer reports lines that belong to the surrounding document rather than
// the collection: blank lines and top-level comments.
func isTrailer(line string) bool {
	l := strings.TrimRight(line, "\r\n")
	return strings.TrimSpace(l) == "" || strings.HasPrefix(l, "#")
}
