package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/huangsam/elimu/core/curriculum"
	"github.com/huangsam/elimu/internal/contract"
	"github.com/huangsam/elimu/schema"
	"github.com/mark3labs/mcp-go/mcp"
)

// historySubject labels histories built from bare score lists.
const historySubject = "General"

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
	roster  contract.Roster
}

// courseInput is one entry of the calculate_gpa courses argument.
type courseInput struct {
	Subject string  `json:"subject"`
	Score   float64 `json:"score"`
	Level   string  `json:"level"`
	IsAP    bool    `json:"is_ap"`
}

// engine builds a grading engine for the requested curriculum, falling back
// to the configured one.
func (h *toolHandler) engine(request mcp.CallToolRequest) *curriculum.Engine {
	code := h.baseCfg.Curriculum
	if c := request.GetString("curriculum", ""); c != "" {
		code = schema.CurriculumCode(c)
	}
	return curriculum.NewEngine(code, curriculum.WithClock(h.baseCfg.Now))
}

// history loads a student's stored assessments from the roster. The id is
// an ELIMUID or, failing that, an internal roster ID.
func (h *toolHandler) history(ctx context.Context, id string) ([]schema.AssessmentRecord, error) {
	if h.roster == nil {
		return nil, errors.New("no roster is configured")
	}
	st, found, err := h.roster.FindStudentByELIMUID(ctx, id)
	if err != nil {
		return nil, err
	}
	if found {
		id = st.ID
	}
	return h.roster.StudentHistory(ctx, id)
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	jsonData, _ := json.MarshalIndent(v, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func parseScores(raw string) ([]float64, error) {
	var scores []float64
	if err := json.Unmarshal([]byte(raw), &scores); err != nil {
		return nil, fmt.Errorf("scores must be a JSON array of numbers: %w", err)
	}
	return scores, nil
}

func (h *toolHandler) handleCalculateGrade(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	score, err := request.RequireFloat("score")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid grade parameters: %v", err)), nil
	}
	e := h.engine(request)
	result := e.CalculateGrade(score, request.GetString("subject", ""), request.GetString("level", ""))
	return jsonResult(result)
}

func (h *toolHandler) handleMeanGrade(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	scores, err := parseScores(request.GetString("scores", ""))
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid mean grade parameters: %v", err)), nil
	}

	e := curriculum.NewEngine(schema.System844, curriculum.WithClock(h.baseCfg.Now))
	grades := make([]schema.GradeResult, 0, len(scores))
	for _, s := range scores {
		grades = append(grades, e.CalculateGrade(s, "", ""))
	}
	return jsonResult(map[string]any{
		"mean":   e.CalculateMeanGrade(grades),
		"grades": grades,
	})
}

func (h *toolHandler) handleCalculateGPA(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var courses []courseInput
	if err := json.Unmarshal([]byte(request.GetString("courses", "")), &courses); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid GPA parameters: courses must be a JSON array: %v", err)), nil
	}

	records := make([]schema.AssessmentRecord, len(courses))
	for i, c := range courses {
		records[i] = schema.AssessmentRecord{Subject: c.Subject, Score: c.Score, Level: c.Level, IsAP: c.IsAP}
	}
	e := curriculum.NewEngine(schema.AmericanSystem, curriculum.WithClock(h.baseCfg.Now))
	grades := e.GradeRecords(records)
	return jsonResult(map[string]any{
		"gpa":    e.CalculateGPA(grades),
		"grades": grades,
	})
}

func (h *toolHandler) handlePredict(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var history []schema.AssessmentRecord
	switch studentID, raw := request.GetString("student_id", ""), request.GetString("scores", ""); {
	case studentID != "":
		var err error
		if history, err = h.history(ctx, studentID); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("history lookup failed: %v", err)), nil
		}
	case raw != "":
		scores, err := parseScores(raw)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid predict parameters: %v", err)), nil
		}
		history = curriculum.ScoresToHistory("", historySubject, scores, h.baseCfg.Now())
	default:
		return mcp.NewToolResultError("invalid predict parameters: scores or student_id is required"), nil
	}

	return jsonResult(h.engine(request).GeneratePredictions(history))
}

func (h *toolHandler) handleReportCard(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	student := schema.StudentRef{
		ID:     request.GetString("student_id", ""),
		Name:   request.GetString("student_name", ""),
		Level:  request.GetString("level", ""),
		School: h.baseCfg.School,
	}
	if student.Name == "" {
		return mcp.NewToolResultError("invalid report card parameters: student_name is required"), nil
	}

	var records []schema.AssessmentRecord
	if student.ID != "" {
		var err error
		if records, err = h.history(ctx, student.ID); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("history lookup failed: %v", err)), nil
		}
	} else if raw := request.GetString("records", ""); raw != "" {
		if err := json.Unmarshal([]byte(raw), &records); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid report card parameters: records must be a JSON array: %v", err)), nil
		}
	}
	for i := range records {
		if records[i].Level == "" {
			records[i].Level = student.Level
		}
	}

	return jsonResult(h.engine(request).GenerateReportCard(student, records, ""))
}
