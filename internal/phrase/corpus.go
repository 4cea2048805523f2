package phrase

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed data/phrases.json
var embeddedCorpus []byte

// corpusEntry decodes one category leniently; a malformed phrases field is kept as a raw node.
type corpusEntry struct {
	Category string    `yaml:"category"`
	Phrases  yaml.Node `yaml:"phrases"`
}

// LoadCorpus reads the static phrase corpus from path, or the bundled corpus when path is empty.
func LoadCorpus(path string) ([]Category, error) {
	if path == "" {
		return ParseCorpus(embeddedCorpus)
	}
	contents, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("os.ReadFile(%s) > %w", path, err)
	}
	categories, err := ParseCorpus(contents)
	if err != nil {
		return nil, fmt.Errorf("ParseCorpus(%s) > %w", path, err)
	}
	return categories, nil
}

// ParseCorpus decodes a JSON or YAML corpus. It accepts either a list of categories or
// an object whose categories field holds that list.
func ParseCorpus(contents []byte) ([]Category, error) {
	if len(bytes.TrimSpace(contents)) == 0 {
		return []Category{}, nil
	}

	var document yaml.Node
	if err := yaml.Unmarshal(contents, &document); err != nil {
		return nil, fmt.Errorf("yaml.Unmarshal() > %w", err)
	}
	root := &document
	if root.Kind == yaml.DocumentNode && len(root.Content) > 0 {
		root = root.Content[0]
	}

	switch root.Kind {
	case yaml.SequenceNode:
	case yaml.MappingNode:
		root = mappingValue(root, "categories")
		if root == nil || root.Kind != yaml.SequenceNode {
			return []Category{}, nil
		}
	default:
		return nil, fmt.Errorf("corpus must be a list of categories or an object with categories, got %s", kindName(root.Kind))
	}

	var categories []Category
	for _, item := range root.Content {
		if item.Kind != yaml.MappingNode {
			continue
		}
		var entry corpusEntry
		if err := item.Decode(&entry); err != nil {
			continue
		}
		categories = append(categories, Category{
			Category: entry.Category,
			Phrases:  decodePhrases(entry.Phrases),
		})
	}
	return NormalizeCorpus(categories), nil
}

func decodePhrases(node yaml.Node) []Phrase {
	phrases := []Phrase{}
	if node.Kind != yaml.SequenceNode {
		return phrases
	}
	for _, item := range node.Content {
		var p Phrase
		if item.Kind != yaml.MappingNode || item.Decode(&p) != nil {
			continue
		}
		phrases = append(phrases, p)
	}
	return phrases
}

func mappingValue(node *yaml.Node, key string) *yaml.Node {
	for i := 0; i+1 < len(node.Content); i += 2 {
		if node.Content[i].Value == key {
			return node.Content[i+1]
		}
	}
	return nil
}

func kindName(kind yaml.Kind) string {
	switch kind {
	case yaml.ScalarNode:
		return "a scalar"
	case yaml.AliasNode:
		return "an alias"
	case 0:
		return "an empty document"
	default:
		return fmt.Sprintf("node kind %d", kind)
	}
}
