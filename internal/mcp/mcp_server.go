// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/huangsam/elimu/internal/contract"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

var curriculumEnum = mcp.Enum("844", "cbc", "british", "american")

// NewMCPServer initializes and configures the Elimu MCP server without starting it.
// This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config, r contract.Roster) *server.MCPServer {
	s := server.NewMCPServer(
		"Elimu Grading Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg: baseCfg,
		roster:  r,
	}

	// --- 1. Tool: calculate_grade ---
	s.AddTool(mcp.NewTool("calculate_grade",
		mcp.WithDescription("Grade a 0-100 score under a curriculum (844, cbc, british, american)."),
		mcp.WithNumber("score", mcp.Description("The score to grade. Values outside 0-100 are clamped."), mcp.Required()),
		mcp.WithString("curriculum", mcp.Description("Curriculum code. Defaults to the server configuration."), curriculumEnum),
		mcp.WithString("subject", mcp.Description("Optional subject name.")),
		mcp.WithString("level", mcp.Description("Optional level, e.g. 'Form 4', 'Grade 6', 'Year 13', 'Grade 11'.")),
	), h.handleCalculateGrade)

	// --- 2. Tool: mean_grade ---
	s.AddTool(mcp.NewTool("mean_grade",
		mcp.WithDescription("Compute a KCSE-style 8-4-4 mean grade over several subject scores."),
		mcp.WithString("scores", mcp.Description("JSON array of numbers, e.g. '[78, 64, 55]'."), mcp.Required()),
	), h.handleMeanGrade)

	// --- 3. Tool: calculate_gpa ---
	s.AddTool(mcp.NewTool("calculate_gpa",
		mcp.WithDescription("Compute credit-weighted unweighted and weighted GPA for American courses."),
		mcp.WithString("courses", mcp.Description(`JSON array of courses, e.g. '[{"subject":"AP Biology","score":91,"level":"Grade 11","is_ap":true}]'.`), mcp.Required()),
	), h.handleCalculateGPA)

	// --- 4. Tool: predict ---
	s.AddTool(mcp.NewTool("predict",
		mcp.WithDescription("Predict short- and long-term performance with risk factors and recommendations."),
		mcp.WithString("scores", mcp.Description("JSON array of chronological scores. Ignored when student_id is set.")),
		mcp.WithString("student_id", mcp.Description("ELIMUID of a stored student whose history should be used.")),
		mcp.WithString("curriculum", mcp.Description("Curriculum code for predicted grades."), curriculumEnum),
	), h.handlePredict)

	// --- 5. Tool: report_card ---
	s.AddTool(mcp.NewTool("report_card",
		mcp.WithDescription("Build a curriculum report card for a student."),
		mcp.WithString("student_name", mcp.Description("Display name printed on the card."), mcp.Required()),
		mcp.WithString("student_id", mcp.Description("ELIMUID of a stored student whose history should be used.")),
		mcp.WithString("records", mcp.Description(`JSON array of records, e.g. '[{"subject":"Math","score":72,"date":"2024-03-10T00:00:00Z"}]'. Ignored when student_id is set.`)),
		mcp.WithString("level", mcp.Description("The student's level, e.g. 'Grade 6'.")),
		mcp.WithString("curriculum", mcp.Description("Curriculum code for the card."), curriculumEnum),
	), h.handleReportCard)

	return s
}

// StartMCPServer starts the Elimu MCP server.
func StartMCPServer(_ context.Context, baseCfg *contract.Config, r contract.Roster) error {
	s := NewMCPServer(baseCfg, r)
	return server.ServeStdio(s)
}
