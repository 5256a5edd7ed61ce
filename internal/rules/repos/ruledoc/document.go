// Package ruledoc parses the default game-rule document and reads it from the
// configuration directory.
//
// The document is a JSON object. Ordinary keys map to {"value": <scalar>,
// "forced": <bool>}; WORLD_BORDER_SIZE maps to a scalar; and
// MODE_OR_WORLD_TYPE_SPECIFIC maps selector strings to nested objects of
// ordinary entries. Key order is significant and is preserved end to end.
package ruledoc

import (
	"errors"

	"github.com/tidwall/gjson"
	"github.com/tidwall/jsonc"
	"github.com/tidwall/pretty"

	"github.com/haukened/rr-gamerules/internal/rules/domain"
)

var (
	ErrInvalidJSON = errors.New("rule document is not valid JSON")
	ErrNotObject   = errors.New("rule document must be a JSON object")
)

// NodeKind tells a plain entry apart from a selector bucket.
type NodeKind uint8

const (
	NodeEntry NodeKind = iota
	NodeBucket
)

// Section is one selector of the specific bucket with the entries declared
// under it, in document order.
type Section struct {
	Selector string
	Entries  []domain.DefaultRuleEntry
}

// Node is one top-level key of the document that produced something.
// Entry is set for NodeEntry, Sections for NodeBucket.
type Node struct {
	Kind     NodeKind
	Entry    domain.DefaultRuleEntry
	Sections []Section
}

// Document is the parsed rule document.
type Document struct {
	Nodes []Node
}

// Len returns the number of top-level nodes.
func (d Document) Len() int { return len(d.Nodes) }

// Parse walks raw in key order and builds a Document. Malformed entries are
// dropped silently; only a document that is not a JSON object is an error.
func Parse(raw []byte) (Document, error) {
	raw = jsonc.ToJSON(raw)
	if !gjson.ValidBytes(raw) {
		return Document{}, ErrInvalidJSON
	}
	root := gjson.ParseBytes(raw)
	if !root.IsObject() {
		return Document{}, ErrNotObject
	}

	var doc Document
	for _, m := range members(root) {
		switch {
		case m.key == domain.WorldBorderSize:
			doc.Nodes = append(doc.Nodes, Node{Kind: NodeEntry, Entry: borderEntry(m.value)})
		case m.key == domain.ModeOrWorldTypeSpecific && m.value.IsObject():
			doc.Nodes = append(doc.Nodes, Node{Kind: NodeBucket, Sections: parseSections(m.value)})
		default:
			if e, ok := parseEntry(m.key, m.value); ok {
				doc.Nodes = append(doc.Nodes, Node{Kind: NodeEntry, Entry: e})
			}
		}
	}
	return doc, nil
}

// member is one key of a JSON object after duplicates collapse.
type member struct {
	key   string
	value gjson.Result
}

// members lists the keys of obj in first-seen order. A repeated key stays at
// its first position and carries its last value.
func members(obj gjson.Result) []member {
	var out []member
	index := make(map[string]int)
	obj.ForEach(func(key, value gjson.Result) bool {
		name := key.String()
		if i, dup := index[name]; dup {
			out[i].value = value
			return true
		}
		index[name] = len(out)
		out = append(out, member{key: name, value: value})
		return true
	})
	return out
}

// parseSections collects the selector sections of the specific bucket.
// Sections whose value is not an object contribute nothing and are skipped.
func parseSections(bucket gjson.Result) []Section {
	var sections []Section
	for _, m := range members(bucket) {
		if !m.value.IsObject() {
			continue
		}
		sections = append(sections, Section{
			Selector: m.key,
			Entries:  parseEntries(m.value),
		})
	}
	return sections
}

// parseEntries applies the ordinary entry rules to every key of obj. The
// border sentinel is honoured here too; the bucket sentinel is not.
func parseEntries(obj gjson.Result) []domain.DefaultRuleEntry {
	var entries []domain.DefaultRuleEntry
	for _, m := range members(obj) {
		if m.key == domain.WorldBorderSize {
			entries = append(entries, borderEntry(m.value))
			continue
		}
		if e, ok := parseEntry(m.key, m.value); ok {
			entries = append(entries, e)
		}
	}
	return entries
}

// parseEntry builds an entry from {"value": ..., "forced": <bool>}. Anything
// else yields ok=false.
func parseEntry(key string, value gjson.Result) (domain.DefaultRuleEntry, bool) {
	if !value.IsObject() {
		return domain.DefaultRuleEntry{}, false
	}
	var v, forced gjson.Result
	for _, m := range members(value) {
		switch m.key {
		case "value":
			v = m.value
		case "forced":
			forced = m.value
		}
	}
	if !v.Exists() || !forced.Exists() || !forced.IsBool() {
		return domain.DefaultRuleEntry{}, false
	}
	return domain.NewDefaultRuleEntry(key, valueText(v), forced.Bool()), true
}

// borderEntry keeps the border value as raw JSON text whatever its shape.
// Parsing into an integer happens when the border is applied.
func borderEntry(value gjson.Result) domain.DefaultRuleEntry {
	return domain.NewDefaultRuleEntry(domain.WorldBorderSize, rawText(value), false)
}

// valueText is the text handed to the rule store: string contents for JSON
// strings, literal JSON text for everything else.
func valueText(v gjson.Result) string {
	if v.Type == gjson.String {
		return v.String()
	}
	return rawText(v)
}

// rawText returns the compact JSON text of v.
func rawText(v gjson.Result) string {
	switch v.Type {
	case gjson.JSON:
		return string(pretty.Ugly([]byte(v.Raw)))
	default:
		return v.Raw
	}
}
