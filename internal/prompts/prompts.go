// Package prompts holds the instruction text sent to the model. Domain
// judgement calls (university tiers, military service rules) live here,
// in prose, not in code.
package prompts

import (
	_ "embed"
	"strconv"
	"strings"
)

//go:embed ocr.md
var ocrPrompt string

//go:embed structure.md
var structureTemplate string

//go:embed scoring.md
var scoringTemplate string

//go:embed router.md
var routerPrompt string

//go:embed hiring.md
var hiringPrompt string

//go:embed jd_gather.md
var jdGatherPrompt string

//go:embed jd_writer.md
var jdWriterTemplate string

//go:embed rank.md
var rankTemplate string

//go:embed qa_system.md
var qaSystemTemplate string

//go:embed compare.md
var compareTemplate string

//go:embed compare_qa.md
var compareQATemplate string

// OCR is the fixed per-page transcription instruction.
func OCR() string { return ocrPrompt }

// Router is the intent routing agent's system instruction.
func Router() string { return routerPrompt }

// HiringInterview is the requirements interview agent's system instruction.
func HiringInterview() string { return hiringPrompt }

// JDInterview is the job-description interview agent's system instruction.
func JDInterview() string { return jdGatherPrompt }

// Structure builds the extraction prompt for one document's raw text.
func Structure(rawText string) string {
	return strings.ReplaceAll(structureTemplate, "{{RAW_TEXT}}", rawText)
}

// Scoring builds the rubric prompt embedding requirements and candidate.
func Scoring(requirementsJSON, resumeJSON string) string {
	out := strings.ReplaceAll(scoringTemplate, "{{REQUIREMENTS_JSON}}", requirementsJSON)
	return strings.ReplaceAll(out, "{{RESUME_JSON}}", resumeJSON)
}

// JDWriter builds the one-shot job description writing prompt.
func JDWriter(requestJSON string) string {
	return strings.ReplaceAll(jdWriterTemplate, "{{REQUEST_JSON}}", requestJSON)
}

// RankSummary builds the top-candidates narrative prompt.
func RankSummary(candidateDigest string) string {
	return strings.ReplaceAll(rankTemplate, "{{CANDIDATES}}", candidateDigest)
}

// QASystem builds the retrieval agent's system instruction around the
// collection's schema sketch.
func QASystem(structureJSON string) string {
	return strings.ReplaceAll(qaSystemTemplate, "{{STRUCTURE}}", structureJSON)
}

// Comparison builds the multi-résumé comparison prompt.
func Comparison(count int, resumesText string) string {
	out := strings.ReplaceAll(compareTemplate, "{{COUNT}}", strconv.Itoa(count))
	return strings.ReplaceAll(out, "{{RESUMES_TEXT}}", resumesText)
}

// CompareQA builds a question prompt grounded in the comparison report.
func CompareQA(context, question string) string {
	out := strings.ReplaceAll(compareQATemplate, "{{CONTEXT}}", context)
	return strings.ReplaceAll(out, "{{QUESTION}}", question)
}
