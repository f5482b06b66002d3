package ai

import "github.com/poiesic/keywordx/core"

// RecognizableEntityTypes returns the labels model-backed recognizers are
// asked to produce. It extends core.ValidEntityTypes with common labels that
// are reported but never fused. Each call returns a fresh slice.
func RecognizableEntityTypes() []core.EntityType {
	return append(core.ValidEntityTypes(), reportedOnlyTypes...)
}

var reportedOnlyTypes = []core.EntityType{
	"PERSON",
	"ORG",
	"EVENT",
	"PRODUCT",
}
