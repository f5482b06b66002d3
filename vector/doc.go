// Package vector implements the default whitening and scoring collaborators
// over dense embeddings.
//
// MeanCenterWhitener removes the component every candidate shares, which for
// most sentence encoders is a large common direction that inflates cosine
// similarity between unrelated phrases. CosineScorer then compares each
// whitened candidate against a keyword and discounts candidates that look
// like generic filler text.
package vector
