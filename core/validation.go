// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package core

import (
	"encoding/json"
	"fmt"
	"math"
	"reflect"
	"slices"
)

// DefaultEntityWeight is the boost used for entity types absent from EntityWeights.
const DefaultEntityWeight = 1.0

// EntityWeights maps an entity type to the boost assigned when an entity of
// that type is fused into the results.
type EntityWeights map[EntityType]float64

// Weight returns the configured weight for t, or DefaultEntityWeight.
func (w EntityWeights) Weight(t EntityType) float64 {
	if v, ok := w[t]; ok {
		return v
	}
	return DefaultEntityWeight
}

// ValidateEntityWeights validates weights and returns a copy of them.
//
// Validation rules:
//   - Every key must be one of ValidEntityTypes
//   - Every value must be a finite number greater than zero
//
// All offending keys are reported, not just the first one. The input map is
// never modified. A nil map yields an empty, non-nil result.
func ValidateEntityWeights(weights map[EntityType]float64) (EntityWeights, error) {
	var invalidTypes, invalidWeights []string
	for t, v := range weights {
		if !IsValidEntityType(t) {
			invalidTypes = append(invalidTypes, string(t))
			continue
		}
		if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
			invalidWeights = append(invalidWeights, fmt.Sprintf("%s=%v", t, v))
		}
	}

	if len(invalidTypes) > 0 {
		slices.Sort(invalidTypes)
		return nil, fmt.Errorf("%w: %w: %q. valid options are: %q",
			ErrInvalidEntityWeights, ErrInvalidEntityTypes, invalidTypes, sortedValidTypes())
	}
	if len(invalidWeights) > 0 {
		slices.Sort(invalidWeights)
		return nil, fmt.Errorf("%w: %w: %v", ErrInvalidEntityWeights, ErrInvalidEntityWeight, invalidWeights)
	}

	out := make(EntityWeights, len(weights))
	for t, v := range weights {
		out[t] = v
	}
	return out, nil
}

// ParseEntityWeights converts loosely typed input, such as a decoded YAML or
// JSON document, into validated EntityWeights.
//
// Accepted inputs are nil, EntityWeights, map[EntityType]float64,
// map[any]any with string keys, and any map with string-kinded keys and
// numeric values. Any other input fails with ErrEntityWeightsType naming the
// received type.
func ParseEntityWeights(v any) (EntityWeights, error) {
	raw := make(map[EntityType]float64)

	switch m := v.(type) {
	case nil:
	case EntityWeights:
		return ValidateEntityWeights(m)
	case map[EntityType]float64:
		return ValidateEntityWeights(m)
	case map[string]float64:
		for k, w := range m {
			raw[EntityType(k)] = w
		}
	case map[string]int:
		for k, w := range m {
			raw[EntityType(k)] = float64(w)
		}
	case map[string]any:
		for k, w := range m {
			f, ok := toFloat(w)
			if !ok {
				return nil, fmt.Errorf("%w, key %q has value of type %T", ErrEntityWeightsType, k, w)
			}
			raw[EntityType(k)] = f
		}
	case map[any]any:
		for k, w := range m {
			key, ok := k.(string)
			if !ok {
				return nil, fmt.Errorf("%w, key %v has type %T", ErrEntityWeightsType, k, k)
			}
			f, ok := toFloat(w)
			if !ok {
				return nil, fmt.Errorf("%w, key %q has value of type %T", ErrEntityWeightsType, key, w)
			}
			raw[EntityType(key)] = f
		}
	default:
		rv := reflect.ValueOf(v)
		if rv.Kind() != reflect.Map || rv.Type().Key().Kind() != reflect.String {
			return nil, fmt.Errorf("%w, got %T", ErrEntityWeightsType, v)
		}
		iter := rv.MapRange()
		for iter.Next() {
			key := iter.Key().String()
			f, ok := reflectFloat(iter.Value())
			if !ok {
				return nil, fmt.Errorf("%w, key %q has value of type %s", ErrEntityWeightsType, key, iter.Value().Type())
			}
			raw[EntityType(key)] = f
		}
	}

	return ValidateEntityWeights(raw)
}

// ValidateDocument validates a Document before it is persisted.
//
// Validation rules:
//   - Text must not be empty
//   - Id must match IDFromContent(Text)
func ValidateDocument(doc *Document) error {
	if doc == nil {
		return fmt.Errorf("%w: document is nil", ErrInvalidDocument)
	}
	if doc.Text == "" {
		return fmt.Errorf("%w: %w", ErrInvalidDocument, ErrEmptyText)
	}
	if doc.Id != IDFromContent(doc.Text) {
		return fmt.Errorf("%w: id %d does not match content", ErrInvalidDocument, doc.Id)
	}
	return nil
}

func sortedValidTypes() []string {
	out := make([]string, len(validEntityTypes))
	for i, t := range validEntityTypes {
		out[i] = string(t)
	}
	slices.Sort(out)
	return out
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case int32:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint64:
		return float64(n), true
	case uint32:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	default:
		return 0, false
	}
}

// reflectFloat reads a numeric value held directly or behind an interface.
func reflectFloat(v reflect.Value) (float64, bool) {
	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(v.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(v.Uint()), true
	case reflect.Float32, reflect.Float64:
		return v.Float(), true
	case reflect.Interface:
		if v.IsNil() {
			return 0, false
		}
		return toFloat(v.Elem().Interface())
	default:
		return 0, false
	}
}
