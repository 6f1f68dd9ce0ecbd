package handlers

import (
	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/resume-ats-checker/internal/models"
	"alfredoptarigan/resume-ats-checker/internal/services"
)

type AnalyzeHandler struct {
	matcher services.MatcherService
}

func NewAnalyzeHandler(matcher services.MatcherService) *AnalyzeHandler {
	return &AnalyzeHandler{matcher: matcher}
}

// HandleAnalyze handles POST /analyze and returns the report inline.
func (h *AnalyzeHandler) HandleAnalyze(c *fiber.Ctx) error {
	var req models.AnalyzeRequest
	if ok, err := parseAndValidate(c, &req); !ok {
		return err
	}

	report, err := h.matcher.Compare(c.UserContext(), req.ResumeText, req.JobDescriptionText, req.IncludeSemantic)
	if err != nil {
		return errorJSON(c, statusForError(err), err.Error())
	}

	return c.JSON(report)
}

// HandleSections handles POST /sections.
func (h *AnalyzeHandler) HandleSections(c *fiber.Ctx) error {
	var req models.SectionsRequest
	if ok, err := parseAndValidate(c, &req); !ok {
		return err
	}

	splitter := h.matcher.Analyzer().Splitter()
	response := models.SectionsResponse{Sections: splitter.Split(req.Text)}

	if skills, ok := splitter.ExtractSkills(req.Text); ok {
		response.Skills = &skills
	}
	if education, ok := splitter.ExtractEducation(req.Text); ok {
		response.Education = &education
	}
	if experience, ok := splitter.ExtractExperience(req.Text); ok {
		response.Experience = &experience
	}

	return c.JSON(response)
}
