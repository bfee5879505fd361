// Package utils holds small shared helpers: tolerant JSON decoding for
// scraped provider payloads and markdown handling for rendered reports.
package utils

import (
	"encoding/json"
	"fmt"

	jsonrepair "github.com/RealAlexandreAI/json-repair"
	hjson "github.com/hjson/hjson-go/v4"
)

// RepairJSON fixes common defects in scraped JSON payloads: single quotes,
// unquoted keys, trailing commas, unclosed brackets, embedded comments.
func RepairJSON(raw string) (string, error) {
	repaired, err := jsonrepair.RepairJSON(raw)
	if err != nil {
		return "", fmt.Errorf("JSON_REPAIR_FAILED: %v", err)
	}
	return repaired, nil
}

// ParseHJSON parses Human JSON (unquoted keys and strings, optional commas,
// comments) and returns standard JSON.
func ParseHJSON(raw string) (string, error) {
	var result interface{}
	if err := hjson.Unmarshal([]byte(raw), &result); err != nil {
		return "", fmt.Errorf("HJSON_PARSE_ERROR: %v", err)
	}
	out, err := json.Marshal(result)
	if err != nil {
		return "", fmt.Errorf("JSON_MARSHAL_ERROR: %v", err)
	}
	return string(out), nil
}

// DecodeTolerant unmarshals a provider payload into target, trying
// progressively more lenient strategies:
//
//  1. Standard JSON parse
//  2. JSON repair
//  3. Hjson parse (most lenient)
//
// Quote and search endpoints occasionally return payloads with loose quoting
// or trailing garbage; this keeps one bad response from aborting a fetch.
func DecodeTolerant(raw []byte, target interface{}) error {
	if err := json.Unmarshal(raw, target); err == nil {
		return nil
	}

	if repaired, err := RepairJSON(string(raw)); err == nil {
		if err := json.Unmarshal([]byte(repaired), target); err == nil {
			return nil
		}
	}

	if standard, err := ParseHJSON(string(raw)); err == nil {
		if err := json.Unmarshal([]byte(standard), target); err == nil {
			return nil
		}
	}

	return fmt.Errorf("TOLERANT_DECODE_FAILED: payload is not recoverable JSON")
}
