// SPDX-FileCopyrightText:  Copyright 2024 The scribecore Authors
// SPDX-License-Identifier: MIT
//
// Project:  scribecore
// File:     syntaxdef/set.go
//
// =============================================================================

package syntaxdef

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/pkg/errors"
)

// ErrUnknownReference is returned by NewParser when asked to build a parser
// for a Reference the Set does not recognize.
var ErrUnknownReference = errors.New("syntaxdef: unknown syntax reference")

// Reference names a loaded syntax definition, independent of the extensions
// that map to it.
type Reference struct {
	Name string
}

// Parser incrementally tokenizes a buffer's lines into scope events. A
// Parser is stateful: ParseLine is expected to be called once per line, in
// order, since definitions such as multi-line comments may carry a pending
// scope across lines. The toy definitions in this package are line-local and
// don't need that carry, but the interface is shaped to allow it.
type Parser interface {
	// ParseLine returns the scope events produced by line, a single line of
	// text without its trailing newline.
	ParseLine(line string) []Event
}

// Set resolves file extensions and a "plain text" fallback to syntax
// References, and builds Parsers for those references.
type Set interface {
	// FindByExtension returns the Reference registered for ext (without a
	// leading dot), if any.
	FindByExtension(ext string) (Reference, bool)

	// PlainText returns the Reference used when no syntax definition applies.
	PlainText() Reference

	// NewParser returns a fresh Parser for ref.
	NewParser(ref Reference) (Parser, error)
}

// definition is a loaded (possibly user-supplied) syntax definition: a base
// scope pushed for the whole file, and a set of bare-word keywords that get
// their own scope while being tokenized.
type definition struct {
	name      string
	baseScope string
	keywords  map[string]struct{}
}

// extensionFile is the on-disk shape of a syntax definition loaded via
// LoadExtensionDir.
type extensionFile struct {
	Name       string   `json:"name"`
	BaseScope  string   `json:"base_scope"`
	Extensions []string `json:"extensions"`
	Keywords   []string `json:"keywords"`
}

// DefaultSet is a small, explicitly non-exhaustive syntax definition set. It
// ships a plain-text definition and a generic "text with keywords and
// numbers" definition, and can load further definitions from JSON files via
// LoadExtensionDir. It exists to give scribecore's tokenizer something real
// to drive; it is not a stand-in for a production syntax-highlighting
// engine.
type DefaultSet struct {
	plainText   Reference
	definitions map[string]definition
	byExtension map[string]Reference
}

// NewDefaultSet returns a DefaultSet seeded with a plain-text definition and
// a generic definition registered under the "txt" and "generic" extensions.
func NewDefaultSet() *DefaultSet {
	set := &DefaultSet{
		plainText:   Reference{Name: "text.plain"},
		definitions: map[string]definition{},
		byExtension: map[string]Reference{},
	}

	set.definitions[set.plainText.Name] = definition{
		name:      set.plainText.Name,
		baseScope: "text.plain",
	}

	generic := Reference{Name: "source.generic"}
	set.definitions[generic.Name] = definition{
		name:      generic.Name,
		baseScope: "source.generic",
		keywords:  defaultKeywords(),
	}
	set.byExtension["generic"] = generic
	set.byExtension["txt"] = generic

	return set
}

func defaultKeywords() map[string]struct{} {
	words := []string{"func", "return", "if", "else", "for", "var", "const", "package", "import"}
	set := make(map[string]struct{}, len(words))

	for _, w := range words {
		set[w] = struct{}{}
	}

	return set
}

// FindByExtension implements Set.
func (s *DefaultSet) FindByExtension(ext string) (Reference, bool) {
	ref, ok := s.byExtension[strings.ToLower(strings.TrimPrefix(ext, "."))]

	return ref, ok
}

// PlainText implements Set.
func (s *DefaultSet) PlainText() Reference {
	return s.plainText
}

// NewParser implements Set.
func (s *DefaultSet) NewParser(ref Reference) (Parser, error) {
	def, ok := s.definitions[ref.Name]
	if !ok {
		return nil, errors.Wrapf(ErrUnknownReference, "%q", ref.Name)
	}

	return &definitionParser{def: def}, nil
}

// LoadExtensionDir scans dir for syntax definition files matching
// **/*.syntax.json and registers each one. A malformed file aborts the scan
// and returns an error; definitions registered before the failing file are
// kept.
func (s *DefaultSet) LoadExtensionDir(dir string) error {
	matches, err := doublestar.Glob(os.DirFS(dir), "**/*.syntax.json")
	if err != nil {
		return errors.Wrap(err, "syntaxdef: globbing extension directory")
	}

	for _, match := range matches {
		path := filepath.Join(dir, match)

		raw, err := os.ReadFile(path)
		if err != nil {
			return errors.Wrapf(err, "syntaxdef: reading %s", path)
		}

		var file extensionFile
		if err := json.Unmarshal(raw, &file); err != nil {
			return errors.Wrapf(err, "syntaxdef: parsing %s", path)
		}

		s.register(file)
	}

	return nil
}

func (s *DefaultSet) register(file extensionFile) {
	keywords := make(map[string]struct{}, len(file.Keywords))
	for _, kw := range file.Keywords {
		keywords[kw] = struct{}{}
	}

	ref := Reference{Name: file.Name}
	s.definitions[ref.Name] = definition{
		name:      file.Name,
		baseScope: file.BaseScope,
		keywords:  keywords,
	}

	for _, ext := range file.Extensions {
		s.byExtension[strings.ToLower(strings.TrimPrefix(ext, "."))] = ref
	}
}

// extensionSyntaxNames is a small, explicitly non-exhaustive stand-in for a
// real syntax-extension table, grounded on the original's
// type_detection.rs. It exists so callers have a concrete
// extension-to-syntax-name lookup to reach for before falling back to a
// Set's own FindByExtension/PlainText.
var extensionSyntaxNames = map[string]string{
	"json": "source.json",
	"xml":  "text.xml",
	"rb":   "source.ruby",
	"go":   "source.go",
	"rs":   "source.rust",
	"md":   "text.markdown",
}

// ExtensionSyntaxName looks up the syntax name conventionally associated
// with a file extension (without a leading dot). It returns false for
// extensions outside its small built-in table.
func ExtensionSyntaxName(ext string) (string, bool) {
	name, ok := extensionSyntaxNames[strings.ToLower(strings.TrimPrefix(ext, "."))]

	return name, ok
}

// definitionParser tokenizes a line by splitting it into runs of digits,
// runs of word characters (checked against the definition's keyword set),
// and everything else, emitting a push/pop pair of Events around each
// recognized run. The definition's base scope is pushed once, ahead of the
// first line, and lives for the parser's whole lifetime. Beyond that, the
// parser carries no state across lines.
type definitionParser struct {
	def        definition
	pushedBase bool
}

// ParseLine implements Parser.
func (p *definitionParser) ParseLine(line string) []Event {
	var events []Event

	if !p.pushedBase {
		p.pushedBase = true

		if p.def.baseScope != "" {
			events = append(events, Event{ByteOffset: 0, Change: Change{Op: Push, Scope: p.def.baseScope}})
		}
	}

	runes := []rune(line)
	byteOffset := 0
	i := 0

	for i < len(runes) {
		r := runes[i]

		switch {
		case unicode.IsDigit(r):
			j := i
			for j < len(runes) && unicode.IsDigit(runes[j]) {
				j++
			}

			events = append(events, p.wrap(byteOffset, runesByteLen(runes[i:j]), "constant.numeric")...)
			byteOffset += runesByteLen(runes[i:j])
			i = j

		case unicode.IsLetter(r) || r == '_':
			j := i
			for j < len(runes) && (unicode.IsLetter(runes[j]) || unicode.IsDigit(runes[j]) || runes[j] == '_') {
				j++
			}

			word := string(runes[i:j])
			if _, isKeyword := p.def.keywords[word]; isKeyword {
				events = append(events, p.wrap(byteOffset, runesByteLen(runes[i:j]), "keyword.control")...)
			}

			byteOffset += runesByteLen(runes[i:j])
			i = j

		default:
			byteOffset += len(string(r))
			i++
		}
	}

	return events
}

// wrap returns a push event for scope at byteOffset, and a pop event
// runLength bytes later.
func (p *definitionParser) wrap(byteOffset, runLength int, scope string) []Event {
	return []Event{
		{ByteOffset: byteOffset, Change: Change{Op: Push, Scope: scope}},
		{ByteOffset: byteOffset + runLength, Change: Change{Op: Pop}},
	}
}

func runesByteLen(rs []rune) int {
	return len(string(rs))
}
