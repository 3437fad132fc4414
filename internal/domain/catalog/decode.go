package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"slices"
)

var ErrInvalidBody = errors.New("request body must be a JSON object")

type fieldKind int

const (
	kindString fieldKind = iota
	kindArray
	kindBool
)

func (k fieldKind) String() string {
	switch k {
	case kindArray:
		return "an array"
	case kindBool:
		return "a boolean"
	default:
		return "a string"
	}
}

type fieldRule struct {
	name     string
	kind     fieldKind
	required bool
}

// Fields of the wrong kind are dropped. Required ones are then reported by
// the struct validator as missing; optional ones are reported here.
var equipmentRules = []fieldRule{
	{name: "id", kind: kindString, required: true},
	{name: "name", kind: kindString, required: true},
	{name: "slug", kind: kindString, required: true},
	{name: "category", kind: kindString, required: true},
	{name: "description", kind: kindString, required: true},
	{name: "images", kind: kindArray, required: true},
	{name: "specifications", kind: kindArray},
	{name: "available", kind: kindBool},
	{name: "featured", kind: kindBool},
	{name: "relatedIds", kind: kindArray},
}

var categoryRules = []fieldRule{
	{name: "id", kind: kindString, required: true},
	{name: "name", kind: kindString, required: true},
	{name: "slug", kind: kindString, required: true},
	{name: "description", kind: kindString},
}

func matchesKind(v any, k fieldKind) bool {
	switch k {
	case kindArray:
		_, ok := v.([]any)
		return ok
	case kindBool:
		_, ok := v.(bool)
		return ok
	default:
		_, ok := v.(string)
		return ok
	}
}

// sanitize removes fields whose JSON kind does not match the rules. It
// returns the messages for the optional ones and the names of the required
// ones, which the struct validator then reports as missing.
func sanitize(raw map[string]any, rules []fieldRule) (msgs, rejected []string) {
	for _, rule := range rules {
		v, ok := raw[rule.name]
		if !ok {
			continue
		}
		if v == nil {
			delete(raw, rule.name)
			continue
		}
		if matchesKind(v, rule.kind) {
			continue
		}
		delete(raw, rule.name)
		if rule.required {
			rejected = append(rejected, rule.name)
		} else {
			msgs = append(msgs, fmt.Sprintf("%s must be %s", rule.name, rule.kind))
		}
	}
	return msgs, rejected
}

// fieldIssues collects what the raw pass found wrong with a payload.
type fieldIssues struct {
	kindErrors []string
	rejected   []string
}

// wasRejected reports whether name was present with the wrong JSON kind.
// Such fields must not be filled in from the name.
func (f *fieldIssues) wasRejected(name string) bool {
	return slices.Contains(f.rejected, name)
}

func decodeObject(body []byte, rules []fieldRule, dst any) (fieldIssues, error) {
	var raw map[string]any
	if err := json.Unmarshal(body, &raw); err != nil || raw == nil {
		return fieldIssues{}, ErrInvalidBody
	}

	msgs, rejected := sanitize(raw, rules)

	clean, err := json.Marshal(raw)
	if err != nil {
		return fieldIssues{}, fmt.Errorf("re-encode body: %w", err)
	}
	if err := json.Unmarshal(clean, dst); err != nil {
		// nested values of the wrong shape, e.g. a specification that is not an object
		return fieldIssues{}, fmt.Errorf("%w: %v", ErrInvalidBody, err)
	}
	return fieldIssues{kindErrors: msgs, rejected: rejected}, nil
}

// DecodeEquipment parses an admin payload. Fields of the wrong JSON kind
// surface later as validation messages instead of decode failures.
func DecodeEquipment(body []byte) (*EquipmentRequest, error) {
	var req EquipmentRequest
	issues, err := decodeObject(body, equipmentRules, &req)
	if err != nil {
		return nil, err
	}
	req.issues = issues
	return &req, nil
}

func DecodeCategory(body []byte) (*CategoryRequest, error) {
	var req CategoryRequest
	issues, err := decodeObject(body, categoryRules, &req)
	if err != nil {
		return nil, err
	}
	req.issues = issues
	return &req, nil
}
