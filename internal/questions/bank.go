package questions

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strings"
	"unicode"
	"unicode/utf8"

	"gopkg.in/yaml.v3"
)

//go:embed data/sichere_arbeitsmethoden.json
var defaultQuiz []byte

// DefaultTitle is the title of the embedded quiz.
const DefaultTitle = "Sichere Arbeitsmethoden"

// Format identifies the encoding of a question document.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// Bank is the ordered, read-only question sequence for one quiz.
type Bank struct {
	title     string
	questions []Question
}

// Option adjusts a bank while it is being built.
type Option func(*bankOptions)

type bankOptions struct {
	title string
	rng   *rand.Rand
	limit int
}

// WithTitle overrides the title derived from the source.
func WithTitle(title string) Option {
	return func(o *bankOptions) { o.title = title }
}

// WithShuffle reorders the questions once, using rng.
func WithShuffle(rng *rand.Rand) Option {
	return func(o *bankOptions) { o.rng = rng }
}

// WithLimit keeps only the first n questions (after shuffling). n <= 0 keeps all.
func WithLimit(n int) Option {
	return func(o *bankOptions) { o.limit = n }
}

// Title returns the quiz title.
func (b *Bank) Title() string {
	return b.title
}

// Len returns the number of questions.
func (b *Bank) Len() int {
	return len(b.questions)
}

// Questions returns a copy of the question sequence.
func (b *Bank) Questions() []Question {
	out := make([]Question, len(b.questions))
	copy(out, b.questions)
	return out
}

// MaxScore returns the highest score reachable in the quiz.
func (b *Bank) MaxScore() int {
	total := 0
	for _, q := range b.questions {
		total += q.MaxPoints()
	}
	return total
}

// Load reads, validates and decodes a question file. The format is chosen by
// file extension; anything other than .yaml/.yml is treated as JSON.
func Load(path string, opts ...Option) (*Bank, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read question file: %w", err)
	}

	base := filepath.Base(path)
	title := strings.TrimSuffix(base, filepath.Ext(base))
	opts = append([]Option{WithTitle(titleFromFilename(title))}, opts...)

	return parse(base, data, FormatFromPath(path), opts...)
}

// Default returns the embedded quiz.
func Default(opts ...Option) (*Bank, error) {
	opts = append([]Option{WithTitle(DefaultTitle)}, opts...)
	return parse("embedded quiz", defaultQuiz, FormatJSON, opts...)
}

// Parse validates and decodes a question document held in memory.
func Parse(data []byte, format Format, opts ...Option) (*Bank, error) {
	return parse("document", data, format, opts...)
}

// FormatFromPath picks the document format for a file name.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

func parse(source string, data []byte, format Format, opts ...Option) (*Bank, error) {
	jsonData, err := toJSON(data, format)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", source, err)
	}

	var doc any
	if err := json.Unmarshal(jsonData, &doc); err != nil {
		return nil, fmt.Errorf("decode %s: %w", source, err)
	}
	if err := validateDocument(source, doc); err != nil {
		return nil, err
	}

	var qs []Question
	dec := json.NewDecoder(bytes.NewReader(jsonData))
	if err := dec.Decode(&qs); err != nil {
		return nil, fmt.Errorf("decode %s: %w", source, err)
	}

	var o bankOptions
	for _, opt := range opts {
		opt(&o)
	}

	if o.rng != nil {
		shuffle(qs, o.rng)
	}
	if o.limit > 0 && o.limit < len(qs) {
		qs = qs[:o.limit]
	}

	return &Bank{title: o.title, questions: qs}, nil
}

// toJSON normalizes a YAML document to JSON so both formats go through the
// same schema check and decoder.
func toJSON(data []byte, format Format) ([]byte, error) {
	if format != FormatYAML {
		return data, nil
	}
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}
	out, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("convert yaml: %w", err)
	}
	return out, nil
}

// shuffle reorders qs in place (Fisher-Yates).
func shuffle(qs []Question, rng *rand.Rand) {
	for i := len(qs) - 1; i > 0; i-- {
		j := rng.IntN(i + 1)
		qs[i], qs[j] = qs[j], qs[i]
	}
}

// titleFromFilename turns "sichere_arbeitsmethoden" into "Sichere arbeitsmethoden".
func titleFromFilename(name string) string {
	name = strings.NewReplacer("_", " ", "-", " ").Replace(name)
	name = strings.TrimSpace(name)
	if name == "" {
		return "Quiz"
	}
	r, size := utf8.DecodeRuneInString(name)
	return string(unicode.ToUpper(r)) + name[size:]
}
