package insights

import (
	"fmt"
	"sync"

	"github.com/xeipuuv/gojsonschema"
)

const stringArray = `{"type": "array", "items": {"type": "string"}}`

func stagesSchema(stage string) string {
	return `{
		"type": "object",
		"required": ["summary"],
		"properties": {
			"summary": {"type": "string"},
			"stages": {"type": "object", "additionalProperties": ` + stage + `}
		}
	}`
}

var schemaSources = map[Type]string{
	TypeMarketing: stagesSchema(`{
		"type": "object",
		"properties": {
			"characteristics": {"type": "string"},
			"customerNeeds": {"type": "string"},
			"messageStrategy": {"type": "string"},
			"contentStrategy": {"type": "string"},
			"keywords": ` + stringArray + `
		}
	}`),
	TypeBudget: `{
		"type": "object",
		"required": ["overallAllocation", "summary"],
		"properties": {
			"summary": {"type": "string"},
			"overallAllocation": {
				"type": "object",
				"additionalProperties": {
					"type": "object",
					"required": ["percentage"],
					"properties": {
						"percentage": {"type": "number", "minimum": 0, "maximum": 100},
						"description": {"type": "string"}
					}
				}
			},
			"stageAllocation": {
				"type": "object",
				"additionalProperties": {
					"type": "object",
					"properties": {
						"primaryChannels": ` + stringArray + `,
						"allocation": {"type": "object", "additionalProperties": {"type": "number"}},
						"strategy": {"type": "string"}
					}
				}
			},
			"channelDetails": {"type": "object"}
		}
	}`,
	TypeLanding: stagesSchema(`{
		"type": "object",
		"properties": {
			"mainMessage": ` + stringArray + `,
			"essentialComponents": ` + stringArray + `,
			"ctaStrategy": ` + stringArray + `,
			"contentStructure": ` + stringArray + `,
			"conversionPoints": ` + stringArray + `,
			"keywords": ` + stringArray + `
		}
	}`),
	TypeDA: stagesSchema(`{
		"type": "object",
		"properties": {
			"targeting": ` + stringArray + `,
			"messageDirection": {"type": "string"},
			"visualConcept": ` + stringArray + `,
			"creatives": {
				"type": "object",
				"properties": {
					"headlines": ` + stringArray + `,
					"descriptions": ` + stringArray + `
				}
			},
			"remarketing": {"type": "string"},
			"keywords": ` + stringArray + `
		}
	}`),
	TypeSA: stagesSchema(`{
		"type": "object",
		"properties": {
			"keywordStrategy": ` + stringArray + `,
			"adCopy": {
				"type": "object",
				"properties": {
					"headlines": ` + stringArray + `,
					"descriptions": ` + stringArray + `
				}
			},
			"extensions": ` + stringArray + `,
			"biddingStrategy": {"type": "string"},
			"negativeKeywords": ` + stringArray + `,
			"keywords": ` + stringArray + `
		}
	}`),
}

var (
	schemas     map[Type]*gojsonschema.Schema
	schemasOnce sync.Once
	schemasErr  error
)

func loadSchemas() (map[Type]*gojsonschema.Schema, error) {
	schemasOnce.Do(func() {
		schemas = make(map[Type]*gojsonschema.Schema, len(schemaSources))
		for t, src := range schemaSources {
			s, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(src))
			if err != nil {
				schemasErr = fmt.Errorf("invalid %s schema: %w", t, err)
				return
			}
			schemas[t] = s
		}
	})
	return schemas, schemasErr
}

// Validate checks a decoded insight against the schema for t and returns
// one message per violation.
func Validate(t Type, insight interface{}) ([]string, error) {
	all, err := loadSchemas()
	if err != nil {
		return nil, err
	}
	schema, ok := all[t]
	if !ok {
		return nil, fmt.Errorf("no schema for insight type %q", t)
	}

	result, err := schema.Validate(gojsonschema.NewGoLoader(insight))
	if err != nil {
		return nil, fmt.Errorf("validation error: %w", err)
	}
	if result.Valid() {
		return nil, nil
	}

	errs := make([]string, len(result.Errors()))
	for i, desc := range result.Errors() {
		errs[i] = desc.String()
	}
	return errs, nil
}
