package entities

import (
	"strings"
	"time"
)

type EntryKind string

const (
	EntryQuestion EntryKind = "question"
	EntryAnswer   EntryKind = "answer"
	EntrySummary  EntryKind = "summary"
)

type SessionState string

const (
	StateCreated    SessionState = "created"
	StateInProgress SessionState = "in_progress"
	StateEnded      SessionState = "ended"
)

// InterviewSession is one interview attempt, keyed by a caller supplied id.
type InterviewSession struct {
	SessionID     string       `json:"session_id"`
	Topic         string       `json:"topic"`
	CreatedAt     time.Time    `json:"created_at"`
	LastActivity  time.Time    `json:"last_activity"`
	QuestionCount int          `json:"question_count"`
	State         SessionState `json:"state"`
	Transcript    Transcript   `json:"transcript"`
}

// Clone returns a copy that shares no mutable state with s.
func (s InterviewSession) Clone() InterviewSession {
	s.Transcript = s.Transcript.Clone()
	return s
}

type TranscriptEntry struct {
	Kind      EntryKind `json:"type" bson:"type"`
	Content   string    `json:"content" bson:"content"`
	Timestamp time.Time `json:"timestamp" bson:"timestamp"`
}

// Transcript is the append-only, insertion-ordered log of a session's turns.
type Transcript []TranscriptEntry

func (t *Transcript) Append(kind EntryKind, content string, ts time.Time) {
	*t = append(*t, TranscriptEntry{Kind: kind, Content: content, Timestamp: ts})
}

func (t Transcript) Clone() Transcript {
	if t == nil {
		return nil
	}
	out := make(Transcript, len(t))
	copy(out, t)
	return out
}

// Memory renders the conversation view used to condition prompts.
func (t Transcript) Memory() string {
	return RenderMemory(t)
}

// RenderMemory projects questions and answers into alternating
// "Interviewer: ..." / "Candidate: ..." lines, in insertion order.
// Summary entries are not part of the conversation and are skipped.
func RenderMemory(entries []TranscriptEntry) string {
	var b strings.Builder
	for _, e := range entries {
		switch e.Kind {
		case EntryQuestion:
			b.WriteString("Interviewer: ")
		case EntryAnswer:
			b.WriteString("Candidate: ")
		default:
			continue
		}
		b.WriteString(e.Content)
		b.WriteString("\n")
	}
	return b.String()
}
