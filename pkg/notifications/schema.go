package notifications

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"github.com/xeipuuv/gojsonschema"
)

// messageCardSchema covers the parts of the card that Teams rejects or renders wrong when malformed
const messageCardSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["@type", "@context", "title", "sections", "potentialAction"],
  "properties": {
    "@type": {"type": "string"},
    "@context": {"type": "string"},
    "correlationId": {"type": "string"},
    "themeColor": {"type": "string"},
    "title": {"type": "string"},
    "summary": {"type": "string"},
    "text": {"type": "string"},
    "sections": {
      "type": "array",
      "items": {
        "type": "object",
        "properties": {
          "activityTitle": {"type": "string"},
          "activitySubtitle": {"type": "string"},
          "activityImage": {"type": "string"},
          "text": {"type": "string"},
          "startGroup": {"type": "boolean"},
          "facts": {
            "type": "array",
            "items": {
              "type": "object",
              "required": ["name", "value"],
              "properties": {
                "name": {"type": "string"},
                "value": {"type": "string"}
              }
            }
          }
        }
      }
    },
    "potentialAction": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["@type", "name", "targets"],
        "properties": {
          "@type": {"type": "string"},
          "name": {"type": "string"},
          "targets": {
            "type": "array",
            "items": {
              "type": "object",
              "required": ["os"],
              "properties": {
                "os": {"type": "string"},
                "uri": {"type": "string"}
              }
            }
          }
        }
      }
    }
  }
}`

var messageCardSchemaLoader = gojsonschema.NewStringLoader(messageCardSchema)

// ValidateDocument checks that the document is still a well formed message card
func ValidateDocument(doc Document) error {
	documentLoader := gojsonschema.NewGoLoader(doc)

	result, err := gojsonschema.Validate(messageCardSchemaLoader, documentLoader)
	if err != nil {
		return errors.Wrap(err, "cannot validate message card")
	}

	if !result.Valid() {
		errs := strings.Builder{}
		for _, desc := range result.Errors() {
			errs.WriteString(fmt.Sprintf("- %s\n", desc))
		}
		return fmt.Errorf("message card validation failed: \n%s", errs.String())
	}

	return nil
}
