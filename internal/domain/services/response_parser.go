package services

import (
	"encoding/json"
	"fmt"
	"strings"

	"style-outfits/internal/domain/entities"
	"style-outfits/internal/domain/errs"
)

type OutcomeKind int

const (
	OutcomeOK OutcomeKind = iota
	OutcomeParseFailure
	OutcomeSchemaFailure
)

func (k OutcomeKind) String() string {
	switch k {
	case OutcomeOK:
		return "ok"
	case OutcomeParseFailure:
		return "parse_failure"
	case OutcomeSchemaFailure:
		return "schema_failure"
	default:
		return "unknown"
	}
}

// ParseOutcome is Ok(value) | ParseFailure(reason) | SchemaFailure(missingFields).
// Callers switch on Kind; Value is only meaningful for OutcomeOK.
type ParseOutcome[T any] struct {
	kind          OutcomeKind
	value         T
	reason        string
	cause         error
	missingFields []string
}

func parsed[T any](value T) ParseOutcome[T] {
	return ParseOutcome[T]{kind: OutcomeOK, value: value}
}

func parseFailure[T any](err *errs.ParseError) ParseOutcome[T] {
	return ParseOutcome[T]{kind: OutcomeParseFailure, reason: err.Reason, cause: err.Err}
}

func schemaFailure[T any](missing []string) ParseOutcome[T] {
	return ParseOutcome[T]{kind: OutcomeSchemaFailure, missingFields: missing}
}

func (o ParseOutcome[T]) Kind() OutcomeKind {
	return o.kind
}

func (o ParseOutcome[T]) Value() T {
	return o.value
}

func (o ParseOutcome[T]) Reason() string {
	return o.reason
}

func (o ParseOutcome[T]) MissingFields() []string {
	return o.missingFields
}

// Err converts a failed outcome into *errs.ParseError or *errs.SchemaError, nil for OK.
func (o ParseOutcome[T]) Err() error {
	switch o.kind {
	case OutcomeParseFailure:
		return &errs.ParseError{Reason: o.reason, Err: o.cause}
	case OutcomeSchemaFailure:
		return &errs.SchemaError{MissingFields: o.missingFields}
	default:
		return nil
	}
}

// ExtractJSONObject returns the first balanced {...} span of text that is valid JSON.
// Braces inside JSON strings are ignored while matching. Candidates are tried in order of
// their opening brace, so prose such as "{note}" ahead of the payload is skipped.
func ExtractJSONObject(text string) (string, error) {
	start := strings.IndexByte(text, '{')
	if start < 0 {
		return "", &errs.ParseError{Reason: "no JSON object found"}
	}

	var firstErr error
	balanced := false
	for start >= 0 {
		if end, ok := matchBrace(text, start); ok {
			balanced = true
			candidate := text[start : end+1]
			var probe map[string]json.RawMessage
			err := json.Unmarshal([]byte(candidate), &probe)
			if err == nil {
				return candidate, nil
			}
			if firstErr == nil {
				firstErr = err
			}
		}

		next := strings.IndexByte(text[start+1:], '{')
		if next < 0 {
			break
		}
		start += next + 1
	}

	if !balanced {
		return "", &errs.ParseError{Reason: "unbalanced braces"}
	}
	return "", &errs.ParseError{Reason: "invalid JSON", Err: firstErr}
}

// matchBrace returns the index of the '}' closing the '{' at start.
func matchBrace(text string, start int) (int, bool) {
	depth := 0
	inString := false
	escaped := false

	for i := start; i < len(text); i++ {
		c := text[i]

		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}

		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i, true
			}
		}
	}

	return 0, false
}

// ParseOutfitSuggestion extracts and validates the outfit payload. It does not check that
// the returned image references belong to the request; see UnknownImageReferences.
func ParseOutfitSuggestion(text string) ParseOutcome[*entities.OutfitSuggestion] {
	payload, perr := decodeObject(text)
	if perr != nil {
		return parseFailure[*entities.OutfitSuggestion](perr)
	}

	var missing []string

	var rawItems []map[string]json.RawMessage
	if raw, ok := payload["outfitSuggestion"]; !ok || json.Unmarshal(raw, &rawItems) != nil || len(rawItems) == 0 {
		missing = append(missing, "outfitSuggestion")
	}

	reasoning, ok := stringField(payload, "reasoning")
	if !ok {
		missing = append(missing, "reasoning")
	}

	items := make([]entities.SelectedItem, 0, len(rawItems))
	for i, raw := range rawItems {
		ref, refOK := stringField(raw, "photoDataUri")
		if !refOK || ref == "" {
			missing = append(missing, fmt.Sprintf("outfitSuggestion[%d].photoDataUri", i))
		}
		itemType, typeOK := stringField(raw, "type")
		if !typeOK || itemType == "" {
			missing = append(missing, fmt.Sprintf("outfitSuggestion[%d].type", i))
		}
		description, descOK := stringField(raw, "description")
		if _, present := raw["description"]; present && !descOK && !isNull(raw["description"]) {
			missing = append(missing, fmt.Sprintf("outfitSuggestion[%d].description", i))
		}
		items = append(items, entities.NewSelectedItem(ref, itemType, description))
	}

	if len(missing) > 0 {
		return schemaFailure[*entities.OutfitSuggestion](missing)
	}

	return parsed(entities.NewOutfitSuggestion(items, reasoning))
}

// ParseClothingAttributes extracts and validates a single-item analysis payload.
// type, color, season and occasion are required; tags is optional.
func ParseClothingAttributes(text string) ParseOutcome[*entities.ClothingAttributes] {
	payload, perr := decodeObject(text)
	if perr != nil {
		return parseFailure[*entities.ClothingAttributes](perr)
	}

	var missing []string
	required := func(key string) string {
		v, ok := stringField(payload, key)
		if !ok || strings.TrimSpace(v) == "" {
			missing = append(missing, key)
		}
		return v
	}

	category := required("type")
	color := required("color")
	season := required("season")
	occasion := required("occasion")

	var tags []string
	if raw, ok := payload["tags"]; ok && !isNull(raw) {
		if err := json.Unmarshal(raw, &tags); err != nil {
			missing = append(missing, "tags")
		}
	}

	if len(missing) > 0 {
		return schemaFailure[*entities.ClothingAttributes](missing)
	}

	return parsed(entities.NewClothingAttributes(category, color, season, occasion, tags))
}

// UnknownImageReferences lists suggestion image references that were not part of the
// request. The parser accepts such references; callers decide what to do with them.
func UnknownImageReferences(request *entities.OutfitRequest, suggestion *entities.OutfitSuggestion) []string {
	known := request.ImageReferences()

	var unknown []string
	for _, item := range suggestion.SelectedItems() {
		if _, ok := known[item.ImageReference()]; !ok {
			unknown = append(unknown, item.ImageReference())
		}
	}
	return unknown
}

func decodeObject(text string) (map[string]json.RawMessage, *errs.ParseError) {
	raw, err := ExtractJSONObject(text)
	if err != nil {
		return nil, err.(*errs.ParseError)
	}

	var payload map[string]json.RawMessage
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		return nil, &errs.ParseError{Reason: "invalid JSON", Err: err}
	}
	return payload, nil
}

func stringField(obj map[string]json.RawMessage, key string) (string, bool) {
	raw, ok := obj[key]
	if !ok || isNull(raw) {
		return "", false
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", false
	}
	return s, true
}

func isNull(raw json.RawMessage) bool {
	return strings.TrimSpace(string(raw)) == "null"
}
