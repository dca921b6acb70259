package entities

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderMemoryPreservesAlternation(t *testing.T) {
	ts := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	var tr Transcript
	tr.Append(EntryQuestion, "Q1", ts)
	tr.Append(EntryAnswer, "I used caching.", ts)
	tr.Append(EntryQuestion, "Q2", ts)

	assert.Equal(t, "Interviewer: Q1\nCandidate: I used caching.\nInterviewer: Q2\n", tr.Memory())
	assert.Equal(t, tr.Memory(), RenderMemory(tr))
}

func TestRenderMemorySkipsSummary(t *testing.T) {
	ts := time.Now()

	var tr Transcript
	tr.Append(EntryQuestion, "Q1", ts)
	tr.Append(EntryAnswer, "A1", ts)
	tr.Append(EntrySummary, "SCORE: 7/10", ts)

	assert.Equal(t, "Interviewer: Q1\nCandidate: A1\n", RenderMemory(tr))
}

func TestRenderMemoryEmpty(t *testing.T) {
	assert.Equal(t, "", RenderMemory(nil))
}

func TestTranscriptAppendKeepsInsertionOrder(t *testing.T) {
	base := time.Now()

	var tr Transcript
	kinds := []EntryKind{EntryQuestion, EntryAnswer, EntryQuestion, EntryAnswer, EntrySummary}
	for i, k := range kinds {
		tr.Append(k, string(rune('a'+i)), base.Add(time.Duration(i)*time.Second))
	}

	require.Len(t, tr, len(kinds))
	for i, e := range tr {
		assert.Equal(t, kinds[i], e.Kind)
		assert.Equal(t, string(rune('a'+i)), e.Content)
	}
}

func TestSessionCloneIsIndependent(t *testing.T) {
	s := InterviewSession{SessionID: "s1"}
	s.Transcript.Append(EntryQuestion, "Q1", time.Now())

	c := s.Clone()
	c.Transcript.Append(EntryAnswer, "A1", time.Now())
	c.Transcript[0].Content = "changed"

	assert.Len(t, s.Transcript, 1)
	assert.Equal(t, "Q1", s.Transcript[0].Content)
}
