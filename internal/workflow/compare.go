package workflow

import (
	"context"
	"fmt"
	"strings"

	"github.com/hiresift/hiresift/internal/llm"
	"github.com/hiresift/hiresift/internal/prompts"
	"github.com/hiresift/hiresift/pkg/logger"
)

const (
	// maxCompareFiles caps a side-by-side comparison; more than this and
	// the report stops being readable.
	maxCompareFiles = 3

	// compareTemperature keeps the report factual but not robotic.
	compareTemperature = 0.2
)

// handleCompareUpload transcribes the selected files and writes one
// comparison report. The resumed input names the freshly uploaded keys;
// when it names none, every document in the compare bucket is compared.
func (m *Machine) handleCompareUpload(ctx context.Context, st *State, input string) (*Turn, error) {
	keys := parseKeyList(input)
	if len(keys) == 0 {
		var err error
		if keys, err = m.objects.List(ctx, m.compareBucket); err != nil {
			return nil, err
		}
	}
	if len(keys) == 0 {
		susp := *st.Awaiting
		susp.Prompt = fmt.Sprintf("I don't see any PDFs in %q. Upload the files to compare and tell me when they're in.", m.compareBucket)
		return m.suspend(ctx, st, &susp, nil)
	}

	var replies []string
	if len(keys) > maxCompareFiles {
		replies = append(replies, fmt.Sprintf("Found %d files; comparing the first %d.", len(keys), maxCompareFiles))
		keys = keys[:maxCompareFiles]
	}

	var sections []string
	for _, key := range keys {
		text, err := m.ocr.Process(ctx, m.compareBucket, key, "compare_ocr")
		if err != nil {
			m.logger.Error("Comparison file skipped",
				logger.String("key", key),
				logger.Error(err),
			)
			continue
		}
		sections = append(sections, fmt.Sprintf("## File: %s\n%s", key, text))
	}
	if len(sections) == 0 {
		susp := *st.Awaiting
		susp.Prompt = "None of the files could be read. Replace them and tell me when to retry."
		return m.suspend(ctx, st, &susp, nil)
	}

	report, err := m.gen.GenerateText(ctx,
		prompts.Comparison(len(sections), strings.Join(sections, "\n\n")),
		llm.WithTemperature(compareTemperature), llm.WithNode("compare_report"))
	if err != nil {
		return nil, err
	}

	st.CompareReport = report
	return m.suspend(ctx, st, &Suspension{
		Kind:   SuspendText,
		Phase:  PhaseCompareQA,
		Prompt: "Any questions about the comparison?",
	}, append(replies, report))
}

// parseKeyList pulls document keys out of an upload confirmation. Plain
// confirmations ("done") name no keys, which selects the whole bucket.
func parseKeyList(input string) []string {
	var keys []string
	for _, tok := range strings.FieldsFunc(input, func(r rune) bool {
		return r == ',' || r == '\n' || r == '\t' || r == ' '
	}) {
		if strings.HasSuffix(strings.ToLower(tok), ".pdf") {
			keys = append(keys, tok)
		}
	}
	return keys
}

// handleCompareQA answers follow-ups grounded strictly in the report.
func (m *Machine) handleCompareQA(ctx context.Context, st *State, input string) (*Turn, error) {
	answer, err := m.gen.GenerateText(ctx,
		prompts.CompareQA(st.CompareReport, input), llm.WithNode("compare_qa"))
	if err != nil {
		return nil, err
	}

	return m.suspend(ctx, st, &Suspension{
		Kind:   SuspendText,
		Phase:  PhaseCompareQA,
		Prompt: "Anything else about these candidates?",
	}, []string{answer})
}
