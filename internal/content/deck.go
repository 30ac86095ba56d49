package content

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"golang.org/x/mod/semver"
	"gopkg.in/yaml.v3"
)

// SupportedFormatMajor is the deck format major version this build reads.
const SupportedFormatMajor = "v1"

// ErrInvalidDeck is wrapped by every deck validation failure.
var ErrInvalidDeck = errors.New("invalid deck")

// Encoding is the on-disk encoding of a deck file.
type Encoding string

const (
	EncodingJSON Encoding = "json"
	EncodingYAML Encoding = "yaml"
)

// Deck is an ordered question bank loaded from a file.
type Deck struct {
	Format    string     `json:"format" yaml:"format"`
	ID        string     `json:"id" yaml:"id"`
	Title     string     `json:"title,omitempty" yaml:"title,omitempty"`
	Questions []Question `json:"questions" yaml:"questions"`
}

// EncodingFor picks the deck encoding from a file extension.
func EncodingFor(path string) (Encoding, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return EncodingJSON, nil
	case ".yaml", ".yml":
		return EncodingYAML, nil
	default:
		return "", fmt.Errorf("unsupported deck extension %q", filepath.Ext(path))
	}
}

// LoadDeck reads, schema-checks and validates a deck file.
func LoadDeck(path string) (*Deck, error) {
	enc, err := EncodingFor(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read deck: %w", err)
	}
	deck, err := ParseDeck(data, enc)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return deck, nil
}

// ParseDeck decodes a deck in the given encoding. YAML decks are normalized
// to JSON first so both encodings go through the same schema check.
func ParseDeck(data []byte, enc Encoding) (*Deck, error) {
	raw := data
	if enc == EncodingYAML {
		var doc any
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("%w: parse yaml: %v", ErrInvalidDeck, err)
		}
		b, err := json.Marshal(doc)
		if err != nil {
			return nil, fmt.Errorf("%w: normalize yaml: %v", ErrInvalidDeck, err)
		}
		raw = b
	}

	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("%w: parse json: %v", ErrInvalidDeck, err)
	}
	compiled, err := deckSchema()
	if err != nil {
		return nil, err
	}
	if err := compiled.Validate(inst); err != nil {
		return nil, fmt.Errorf("%w: schema validation failed: %v", ErrInvalidDeck, err)
	}

	var deck Deck
	if err := json.Unmarshal(raw, &deck); err != nil {
		return nil, fmt.Errorf("%w: decode: %v", ErrInvalidDeck, err)
	}
	if err := deck.Validate(); err != nil {
		return nil, err
	}
	return &deck, nil
}

// Validate runs the checks a schema cannot express: a supported format
// version, unique ids and a correct option that exists.
func (d *Deck) Validate() error {
	if !semver.IsValid(d.Format) {
		return fmt.Errorf("%w: format %q is not a semantic version", ErrInvalidDeck, d.Format)
	}
	if major := semver.Major(d.Format); major != SupportedFormatMajor {
		return fmt.Errorf("%w: format %s unsupported (want %s.x)", ErrInvalidDeck, d.Format, SupportedFormatMajor)
	}
	if len(d.Questions) == 0 {
		return fmt.Errorf("%w: no questions", ErrInvalidDeck)
	}

	seen := make(map[string]bool, len(d.Questions))
	for i, q := range d.Questions {
		if q.ID == "" {
			return fmt.Errorf("%w: question %d has no id", ErrInvalidDeck, i)
		}
		if seen[q.ID] {
			return fmt.Errorf("%w: duplicate question id %q", ErrInvalidDeck, q.ID)
		}
		seen[q.ID] = true

		optIDs := make(map[string]bool, len(q.Options))
		for _, o := range q.Options {
			if optIDs[o.ID] {
				return fmt.Errorf("%w: question %q repeats option id %q", ErrInvalidDeck, q.ID, o.ID)
			}
			optIDs[o.ID] = true
		}
		if !optIDs[q.CorrectOptionID] {
			return fmt.Errorf("%w: question %q correct option %q is not among its options", ErrInvalidDeck, q.ID, q.CorrectOptionID)
		}
	}
	return nil
}

var (
	schemaOnce     sync.Once
	compiledSchema *jsonschema.Schema
	schemaErr      error
)

func deckSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		compiledSchema, schemaErr = compileSchema(deckSchemaName, DeckSchema)
	})
	return compiledSchema, schemaErr
}

func compileSchema(name string, def map[string]any) (*jsonschema.Schema, error) {
	// The compiler wants a parsed JSON value, so round-trip the Go literal.
	defBytes, err := json.Marshal(def)
	if err != nil {
		return nil, fmt.Errorf("marshal schema definition: %w", err)
	}
	defParsed, err := jsonschema.UnmarshalJSON(bytes.NewReader(defBytes))
	if err != nil {
		return nil, fmt.Errorf("parse schema definition: %w", err)
	}

	c := jsonschema.NewCompiler()
	schemaURL := fmt.Sprintf("schema://%s.json", name)
	if err := c.AddResource(schemaURL, defParsed); err != nil {
		return nil, fmt.Errorf("add resource: %w", err)
	}
	compiled, err := c.Compile(schemaURL)
	if err != nil {
		return nil, fmt.Errorf("compile: %w", err)
	}
	return compiled, nil
}

// QuestionIDs returns the deck's question ids in deck order.
func (d *Deck) QuestionIDs() []string {
	ids := make([]string, len(d.Questions))
	for i, q := range d.Questions {
		ids[i] = q.ID
	}
	return ids
}

// Shuffled returns the deck's questions in an order determined by seed.
// The deck itself is left untouched.
func (d *Deck) Shuffled(seed uint64) []Question {
	out := make([]Question, len(d.Questions))
	copy(out, d.Questions)
	r := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	r.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	return out
}
