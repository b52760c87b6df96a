// Package casekey derives the deterministic reuse key identifying a
// clinically-equivalent explainer video.
package casekey

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// Sentinel tokens substituted for missing case attributes so that two
// requests with the same gaps still hash to the same key.
const (
	unknownDiagnosis = "unknown_diagnosis"
	unknownProcedure = "unknown_procedure"
	noMilestone      = "no_milestone"
	generalSpecialty = "general"
)

// Compute returns the SHA-256 hex digest of the canonical case tuple.
// The key is attribute-based: it covers the diagnosis code, procedure code,
// recovery milestone and doctor specialty, but never the generated script
// text, so reuse hits survive model wording drift.
func Compute(diagnosisCode, procedureCode, milestone, specialty string) string {
	summary := strings.Join([]string{
		orSentinel(diagnosisCode, unknownDiagnosis),
		orSentinel(procedureCode, unknownProcedure),
		orSentinel(milestone, noMilestone),
		orSentinel(specialty, generalSpecialty),
	}, ":")

	digest := sha256.Sum256([]byte(strings.ToLower(summary)))
	return hex.EncodeToString(digest[:])
}

func orSentinel(value, sentinel string) string {
	if v := strings.TrimSpace(value); v != "" {
		return v
	}
	return sentinel
}
