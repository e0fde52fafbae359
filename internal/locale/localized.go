package locale

import (
	"bytes"
	"encoding/json"
	"strings"
)

// Entry is one per-locale variant of a localized field. The content store
// persists localized fields as ordered arrays of these, not as scalars.
type Entry[T any] struct {
	Key   string `json:"_key"`
	Value T      `json:"value"`
}

// Values is a localized field: a sparse, insertion-ordered mapping from
// locale code to value. Duplicate keys are not expected, but when present the
// first match wins.
type Values[T any] []Entry[T]

// Resolve applies the three-tier fallback: the exact target entry, then the
// default locale's entry, then the first present entry. Entries whose value
// fails the present predicate are skipped at every tier, so a present-but-empty
// key never short-circuits the chain. Returns false only when no tier yields a
// present value.
func (v Values[T]) Resolve(target Code, present func(T) bool) (T, bool) {
	if value, ok := v.lookup(string(target), present); ok {
		return value, true
	}
	if target != Default {
		if value, ok := v.lookup(string(Default), present); ok {
			return value, true
		}
	}
	for _, entry := range v {
		if present(entry.Value) {
			return entry.Value, true
		}
	}
	var zero T
	return zero, false
}

func (v Values[T]) lookup(key string, present func(T) bool) (T, bool) {
	for _, entry := range v {
		if strings.EqualFold(strings.TrimSpace(entry.Key), key) && present(entry.Value) {
			return entry.Value, true
		}
	}
	var zero T
	return zero, false
}

// ResolveString resolves a localized string field, treating blank variants as
// absent.
func ResolveString(v Values[string], target Code) string {
	value, _ := v.Resolve(target, StringPresent)
	return value
}

// ResolveRaw resolves a localized JSON field (for example portable-text block
// content), treating empty and null payloads as absent.
func ResolveRaw(v Values[json.RawMessage], target Code) json.RawMessage {
	value, _ := v.Resolve(target, RawPresent)
	return value
}

// StringPresent reports whether a string variant counts as present.
func StringPresent(s string) bool {
	return strings.TrimSpace(s) != ""
}

// RawPresent reports whether a raw JSON variant counts as present.
func RawPresent(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return false
	}
	switch string(trimmed) {
	case "null", `""`, "[]", "{}":
		return false
	}
	return true
}
