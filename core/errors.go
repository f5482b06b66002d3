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

import "errors"

// Entity weight validation errors
var (
	// ErrEntityWeightsType indicates entity weights were not supplied as a mapping
	// from entity type to a number.
	ErrEntityWeightsType = errors.New("entity_weights must be a mapping of entity type to number")

	// ErrInvalidEntityWeights is the parent of all entity weight validation errors.
	ErrInvalidEntityWeights = errors.New("invalid entity weights")

	// ErrInvalidEntityTypes indicates one or more keys are not valid entity types.
	ErrInvalidEntityTypes = errors.New("invalid entity types in entity_weights")

	// ErrInvalidEntityWeight indicates one or more weights are not finite positive numbers.
	ErrInvalidEntityWeight = errors.New("entity weights must be finite positive numbers")

	// ErrInvalidDocument indicates a Document failed validation.
	ErrInvalidDocument = errors.New("invalid document")

	// ErrEmptyText indicates the Text field is empty.
	ErrEmptyText = errors.New("text cannot be empty")
)
