// Package text provides chunkers that turn input text into candidate
// phrases for keyword matching.
//
// PhraseChunker is the default. It emits short word n-grams so that a
// keyword such as "meeting" can match "work meeting" rather than a whole
// sentence. SplitterChunker wraps the langchaingo recursive character
// splitter and suits long documents where passages, not phrases, are the
// unit of retrieval.
package text
