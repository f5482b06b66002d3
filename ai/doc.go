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


// Package ai defines the collaborators the keyword extraction pipeline
// depends on.
//
// The extraction core never looks inside these services. It only relies on
// the contracts stated here:
//
//   - Chunker: splits text into candidate phrases
//   - Embedder: turns text into fixed-dimension vectors
//   - Whitener: normalizes candidate vectors before scoring
//   - Scorer: scores candidates against one keyword
//   - EntityRecognizer: detects dates, times, money, places and numbers
//   - AIProvider: aggregates the model-backed services
//
// # Implementation Packages
//
//   - ai/openai: embeddings and LLM entity recognition over OpenAI-compatible APIs
//   - ai/mock: test doubles for unit testing without external dependencies
//   - text: default chunkers
//   - vector: default whitener and scorer
//   - ner: rule-based entity recognizer
//
// # Constructor Return Type Pattern
//
// Public constructors (openai.NewProvider, openai.NewEmbedder, etc.) return
// INTERFACE types. Test utility constructors (mock.NewMockEmbedder,
// mock.NewMockRecognizer) return CONCRETE types so tests can inject behavior
// and read call counts.
//
// # Usage Example
//
//	provider, err := openai.NewProvider(ai.DefaultConfig())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer provider.Close()
//
//	vectors, err := provider.Embedder().EmbedTexts(ctx, []string{"work meeting", "time"})
//	entities, err := provider.EntityRecognizer().Recognize(ctx, "Lunch at noon in Paris")
package ai
