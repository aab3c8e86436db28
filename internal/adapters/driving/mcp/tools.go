package mcp

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/citewise-labs/citewise-cli/internal/core/domain"
	"github.com/citewise-labs/citewise-cli/internal/core/services"
	"github.com/citewise-labs/citewise-cli/internal/loaders"
)

// IngestInput is the input schema for the ingest_documents tool.
type IngestInput struct {
	Files      []string `json:"files" jsonschema:"absolute paths of the files to ingest (pdf, docx, txt, md), at most 3 per call"`
	Collection string   `json:"collection,omitempty" jsonschema:"target collection name, defaults to the shared default collection"`
}

// IngestOutput is the output schema for the ingest_documents tool.
type IngestOutput struct {
	Succeeded      int                `json:"succeeded"`
	Failed         int                `json:"failed"`
	RecordsWritten int                `json:"records_written"`
	Files          []FileReportOutput `json:"files"`
	Summary        string             `json:"summary"`
}

// FileReportOutput is the per-file outcome of an ingest call.
type FileReportOutput struct {
	FileName string `json:"file_name"`
	Chunks   int    `json:"chunks"`
	Error    string `json:"error,omitempty"`
}

// AskInput is the input schema for the ask_question tool.
type AskInput struct {
	Question   string `json:"question" jsonschema:"the question to answer from the ingested documents"`
	Collection string `json:"collection,omitempty" jsonschema:"collection to answer from, defaults to the shared default collection"`
}

// AskOutput is the output schema for the ask_question tool.
type AskOutput struct {
	Answer         string `json:"answer"`
	SourceExcerpt  string `json:"source_excerpt"`
	SourceFileName string `json:"source_file_name"`
	Citation       string `json:"citation,omitempty"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "ingest_documents",
		Description: "Ingest local documents into the Citewise index so questions can be answered from them",
	}, s.handleIngestDocuments)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "ask_question",
		Description: "Answer a question using only previously ingested documents, with a source citation",
	}, s.handleAskQuestion)
}

// handleIngestDocuments handles the ingest_documents tool invocation.
func (s *Server) handleIngestDocuments(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input IngestInput,
) (*mcp.CallToolResult, IngestOutput, error) {
	docs, err := loaders.ReadFiles(input.Files)
	if err != nil {
		return nil, IngestOutput{}, err
	}

	result, err := s.ports.Ingest.Ingest(ctx, collectionOrDefault(input.Collection), docs)
	if err != nil {
		return nil, IngestOutput{}, err
	}

	output := IngestOutput{
		Succeeded:      result.Succeeded,
		Failed:         result.Failed,
		RecordsWritten: result.RecordsWritten,
		Files:          make([]FileReportOutput, len(result.Reports)),
		Summary: fmt.Sprintf("Indexed %d of %d files, %d records written",
			result.Succeeded, len(result.Reports), result.RecordsWritten),
	}
	for i, report := range result.Reports {
		output.Files[i] = FileReportOutput{
			FileName: report.FileName,
			Chunks:   report.Chunks,
		}
		if report.Err != nil {
			output.Files[i].Error = report.Err.Error()
		}
	}
	return nil, output, nil
}

// handleAskQuestion handles the ask_question tool invocation.
func (s *Server) handleAskQuestion(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input AskInput,
) (*mcp.CallToolResult, AskOutput, error) {
	answer, err := s.ports.Answer.Answer(ctx, collectionOrDefault(input.Collection), input.Question)
	if err != nil {
		return nil, AskOutput{}, err
	}

	return nil, AskOutput{
		Answer:         answer.Answer,
		SourceExcerpt:  answer.SourceExcerpt,
		SourceFileName: answer.SourceFileName,
		Citation:       services.RenderCitation(answer),
	}, nil
}

func collectionOrDefault(collection string) string {
	if collection == "" {
		return domain.DefaultCollection
	}
	return collection
}
