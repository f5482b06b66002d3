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


// Package extraction matches keywords to phrases of a text and fuses the
// result with recognized entities.
//
// The Extractor runs a single synchronous pipeline per call:
//   - Chunk the text into candidate phrases
//   - Embed and whiten the candidates, embed the keywords and a baseline phrase
//   - Score every candidate per keyword and keep the best one above a threshold
//   - Deduplicate to one match per keyword
//   - Recognize entities in the full text
//   - Fuse: entities whose domain keyword was requested replace that match
//
// Entity-derived matches always win over semantic ones for the same keyword,
// and their score is the configured entity weight capped at MaxBoost. The
// score field therefore mixes two scales; use Match.Source to tell them apart.
package extraction
