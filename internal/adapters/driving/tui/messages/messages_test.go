package messages

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/citewise-labs/citewise-cli/internal/core/domain"
)

// TestFileIngested tests the FileIngested message type
func TestFileIngested(t *testing.T) {
	t.Run("with successful report", func(t *testing.T) {
		msg := FileIngested{Report: domain.FileReport{FileName: "notes.txt", Chunks: 3}}

		assert.Equal(t, "notes.txt", msg.Report.FileName)
		assert.Equal(t, 3, msg.Report.Chunks)
		assert.False(t, msg.Report.Failed())
	})

	t.Run("with failed report", func(t *testing.T) {
		msg := FileIngested{Report: domain.FileReport{
			FileName: "broken.pdf",
			Err:      errors.New("parse pdf: unexpected EOF"),
		}}

		assert.Equal(t, "broken.pdf", msg.Report.FileName)
		assert.Equal(t, 0, msg.Report.Chunks)
		assert.True(t, msg.Report.Failed())
	})
}

// TestIngestCompleted tests the IngestCompleted message type
func TestIngestCompleted_WithResult(t *testing.T) {
	result := &domain.IngestResult{
		Succeeded:      2,
		RecordsWritten: 7,
		Reports: []domain.FileReport{
			{FileName: "alphabet.txt", Chunks: 3},
			{FileName: "notes.txt", Chunks: 4},
		},
	}
	msg := IngestCompleted{Result: result, Err: nil}

	require.NotNil(t, msg.Result)
	assert.Equal(t, 2, msg.Result.Succeeded)
	assert.Equal(t, 7, msg.Result.RecordsWritten)
	assert.Len(t, msg.Result.Reports, 2)
	assert.NoError(t, msg.Err)
}

func TestIngestCompleted_WithError(t *testing.T) {
	err := errors.New("batch rejected")
	msg := IngestCompleted{Result: nil, Err: err}

	assert.Nil(t, msg.Result)
	assert.Error(t, msg.Err)
	assert.Equal(t, "batch rejected", msg.Err.Error())
}

func TestIngestCompleted_PartialFailure(t *testing.T) {
	result := &domain.IngestResult{
		Succeeded:      1,
		Failed:         1,
		RecordsWritten: 3,
		Reports: []domain.FileReport{
			{FileName: "good.txt", Chunks: 3},
			{FileName: "bad.pdf", Err: errors.New("parse pdf: truncated")},
		},
	}
	msg := IngestCompleted{Result: result}

	assert.Equal(t, 1, msg.Result.Succeeded)
	assert.Equal(t, 1, msg.Result.Failed)
	assert.NoError(t, msg.Err)
}

// TestAnswerReceived tests the AnswerReceived message type
func TestAnswerReceived_WithAnswer(t *testing.T) {
	answer := &domain.StructuredAnswer{
		Answer:         "Alpha comes first.",
		SourceExcerpt:  "alpha is the first letter",
		SourceFileName: "alphabet.txt",
	}
	msg := AnswerReceived{Answer: answer, Err: nil}

	require.NotNil(t, msg.Answer)
	assert.Equal(t, "Alpha comes first.", msg.Answer.Answer)
	assert.Equal(t, "alphabet.txt", msg.Answer.SourceFileName)
	assert.True(t, msg.Answer.HasSource())
	assert.NoError(t, msg.Err)
}

func TestAnswerReceived_NoSource(t *testing.T) {
	answer := &domain.StructuredAnswer{
		Answer:         "That is not covered by the provided documents.",
		SourceExcerpt:  domain.NoSourceExcerpt,
		SourceFileName: domain.NoSourceFileName,
	}
	msg := AnswerReceived{Answer: answer}

	require.NotNil(t, msg.Answer)
	assert.False(t, msg.Answer.HasSource())
}

func TestAnswerReceived_WithError(t *testing.T) {
	err := errors.New("answer failed")
	msg := AnswerReceived{Answer: nil, Err: err}

	assert.Nil(t, msg.Answer)
	assert.Error(t, msg.Err)
	assert.Equal(t, "answer failed", msg.Err.Error())
}
