package notifications

import (
	"encoding/json"
	"strings"

	"github.com/pkg/errors"
	"sigs.k8s.io/yaml"
)

// Document is the generic form of a card, used to apply overrides
type Document map[string]interface{}

// ParseOverride parses a caller supplied override document.
// YAML and JSON are both accepted, so are JavaScript style object literals like {title: "Deploy"}.
// Returns nil when there is nothing to override.
func ParseOverride(override string) (Document, error) {
	if strings.TrimSpace(override) == "" {
		return nil, nil
	}

	var parsed interface{}
	err := yaml.Unmarshal([]byte(override), &parsed)
	if err != nil {
		return nil, errors.Wrap(err, "cannot parse override")
	}

	switch doc := parsed.(type) {
	case nil:
		return nil, nil
	case map[string]interface{}:
		return Document(doc), nil
	default:
		return nil, errors.Errorf("override must be a mapping, got %T", parsed)
	}
}

// AsDocument renders the card as a Document with the override merged on top, then validates it
func (c *MessageCard) AsDocument(override Document) (Document, error) {
	b, err := json.Marshal(c)
	if err != nil {
		return nil, errors.Wrap(err, "cannot serialize card")
	}
	var doc Document
	err = json.Unmarshal(b, &doc)
	if err != nil {
		return nil, errors.Wrap(err, "cannot serialize card")
	}

	if override != nil {
		doc = MergeDocuments(doc, override)
	}

	err = ValidateDocument(doc)
	if err != nil {
		return nil, err
	}

	return doc, nil
}

// MergeDocuments merges src on top of dst and returns the result, neither input is modified.
// Mappings are merged key by key and lists index by index, everything else in src replaces dst.
func MergeDocuments(dst, src Document) Document {
	merged := mergeValues(map[string]interface{}(dst), map[string]interface{}(src))
	if m, ok := merged.(map[string]interface{}); ok {
		return Document(m)
	}
	return nil
}

func mergeValues(dst, src interface{}) interface{} {
	switch srcValue := src.(type) {
	case map[string]interface{}:
		dstMap, ok := dst.(map[string]interface{})
		if !ok {
			return copyValue(srcValue)
		}
		merged := make(map[string]interface{}, len(dstMap)+len(srcValue))
		for k, v := range dstMap {
			merged[k] = copyValue(v)
		}
		for k, v := range srcValue {
			if existing, ok := merged[k]; ok {
				merged[k] = mergeValues(existing, v)
			} else {
				merged[k] = copyValue(v)
			}
		}
		return merged
	case []interface{}:
		dstList, ok := dst.([]interface{})
		if !ok {
			return copyValue(srcValue)
		}
		length := len(dstList)
		if len(srcValue) > length {
			length = len(srcValue)
		}
		merged := make([]interface{}, length)
		for i := range merged {
			switch {
			case i >= len(srcValue):
				merged[i] = copyValue(dstList[i])
			case i >= len(dstList):
				merged[i] = copyValue(srcValue[i])
			default:
				merged[i] = mergeValues(dstList[i], srcValue[i])
			}
		}
		return merged
	default:
		return src
	}
}

func copyValue(v interface{}) interface{} {
	switch value := v.(type) {
	case map[string]interface{}:
		c := make(map[string]interface{}, len(value))
		for k, item := range value {
			c[k] = copyValue(item)
		}
		return c
	case []interface{}:
		c := make([]interface{}, len(value))
		for i, item := range value {
			c[i] = copyValue(item)
		}
		return c
	default:
		return v
	}
}
