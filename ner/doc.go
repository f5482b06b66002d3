// Package ner implements a rule-based entity recognizer that needs no model
// server.
//
// RuleRecognizer detects DATE, TIME, MONEY, CARDINAL, GPE and LOC entities
// with regular expressions and a small place gazetteer. Matches never
// overlap: earlier rules claim text first, so "$1500" is MONEY and not
// CARDINAL, and "5pm" is TIME. Relative dates such as "tomorrow" or
// "next Friday" are resolved against a reference time with
// github.com/olebedev/when and attached as ISO values.
//
//	r := ner.NewRuleRecognizer(ner.WithReferenceTime(time.Now()))
//	entities, err := r.Recognize(ctx, "Lunch tomorrow at noon in Paris")
package ner
