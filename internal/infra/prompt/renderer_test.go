package prompt

import (
	"testing"

	"interview-coach/internal/domain/apperr"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRenderer(t *testing.T) *Renderer {
	t.Helper()
	r, err := NewRenderer()
	require.NoError(t, err)
	return r
}

func TestCatalogueHasTheThreeInterviewPrompts(t *testing.T) {
	r := newRenderer(t)
	assert.Equal(t, []string{TemplateContinue, TemplateStart, TemplateSummary}, r.Names())
}

func TestRenderStart(t *testing.T) {
	out, err := newRenderer(t).Render(TemplateStart, map[string]string{VarTopic: "backend engineering"})
	require.NoError(t, err)

	assert.Contains(t, out, "conducting a backend engineering interview")
	assert.Contains(t, out, "Is not too complex for an opening question")
	assert.Contains(t, out, "Generate only the question")
	assert.NotContains(t, out, "{{")
}

func TestRenderContinue(t *testing.T) {
	history := "Interviewer: Q1\nCandidate: I used caching.\n"
	out, err := newRenderer(t).Render(TemplateContinue, map[string]string{
		VarTopic:       "backend engineering",
		VarChatHistory: history,
		VarAnswer:      "I used caching.",
	})
	require.NoError(t, err)

	assert.Contains(t, out, history)
	assert.Contains(t, out, `The candidate just answered: "I used caching."`)
	assert.Contains(t, out, "Builds upon their previous answer")
	assert.Contains(t, out, "Generate only the next question")
}

func TestRenderSummaryCoversEvaluationChecklist(t *testing.T) {
	out, err := newRenderer(t).Render(TemplateSummary, map[string]string{
		VarTopic:       "go",
		VarChatHistory: "Interviewer: Q1\n",
	})
	require.NoError(t, err)

	for _, want := range []string{
		"Overall performance assessment",
		"Key strengths demonstrated",
		"Areas for improvement",
		"Communication effectiveness",
		"Technical/domain knowledge evaluation",
		"Problem-solving approach",
		"Clarity of responses",
		"Professional demeanor",
		"Study suggestions or resources",
		"Next steps for career development",
		"SCORE: X/10",
	} {
		assert.Contains(t, out, want)
	}
}

func TestRenderDoesNotEscapeText(t *testing.T) {
	out, err := newRenderer(t).Render(TemplateStart, map[string]string{VarTopic: "C++ & <templates>"})
	require.NoError(t, err)
	assert.Contains(t, out, "C++ & <templates>")
}

func TestRenderMissingVariable(t *testing.T) {
	_, err := newRenderer(t).Render(TemplateContinue, map[string]string{VarTopic: "go", VarAnswer: "yes"})
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.KindMissingVariable))
	assert.Contains(t, err.Error(), VarChatHistory)
}

func TestRenderEmptyValueIsAllowed(t *testing.T) {
	_, err := newRenderer(t).Render(TemplateSummary, map[string]string{VarTopic: "go", VarChatHistory: ""})
	assert.NoError(t, err)
}

func TestRenderUnknownTemplate(t *testing.T) {
	_, err := newRenderer(t).Render("farewell", nil)
	assert.True(t, apperr.Is(err, apperr.KindInvalidInput))
}

func TestUndeclaredPlaceholderStillFails(t *testing.T) {
	r, err := NewRendererFromYAML([]byte("greet:\n  variables: []\n  text: \"hi {{.name}}\"\n"))
	require.NoError(t, err)

	_, err = r.Render("greet", map[string]string{})
	assert.True(t, apperr.Is(err, apperr.KindMissingVariable))
}

func TestNewRendererFromYAMLRejectsBadInput(t *testing.T) {
	_, err := NewRendererFromYAML([]byte(""))
	assert.Error(t, err)

	_, err = NewRendererFromYAML([]byte("broken:\n  text: \"{{.x\"\n"))
	assert.Error(t, err)
}
