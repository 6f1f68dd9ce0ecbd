package models

import "alfredoptarigan/resume-ats-checker/internal/analysis"

type UploadResponse struct {
	ID           string `json:"id"`
	OriginalName string `json:"original_name"`
	FileType     string `json:"file_type"`
	Characters   int    `json:"characters"`
}

type TextDocumentRequest struct {
	FileType string `json:"file_type" validate:"required,oneof=resume job_description"`
	Source   string `json:"source" validate:"omitempty,oneof=clipboard manual"`
	Text     string `json:"text" validate:"required"`
}

type CompareRequest struct {
	ResumeDocumentID         string `json:"resume_document_id" validate:"required,uuid"`
	JobDescriptionDocumentID string `json:"job_description_document_id" validate:"required,uuid"`
	IncludeSemantic          bool   `json:"include_semantic"`
}

type CompareResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

type ResultResponse struct {
	ID           string           `json:"id"`
	Status       string           `json:"status"`
	Result       *analysis.Report `json:"result,omitempty"`
	ErrorMessage *string          `json:"error_message,omitempty"`
}

// AnalyzeRequest allows an empty resume; an empty job description scores 0.
type AnalyzeRequest struct {
	ResumeText         string `json:"resume_text" validate:"required_without=JobDescriptionText"`
	JobDescriptionText string `json:"job_description_text" validate:"required_without=ResumeText"`
	IncludeSemantic    bool   `json:"include_semantic"`
}

type SectionsRequest struct {
	Text string `json:"text" validate:"required"`
}

type SectionsResponse struct {
	Sections   map[string]string `json:"sections"`
	Skills     *string           `json:"skills,omitempty"`
	Education  *string           `json:"education,omitempty"`
	Experience *string           `json:"experience,omitempty"`
}

type SimilarPosting struct {
	Title   string  `json:"title"`
	Source  string  `json:"source"`
	Section string  `json:"section"`
	Snippet string  `json:"snippet"`
	Score   float32 `json:"score"`
}

type SimilarPostingsResponse struct {
	DocumentID string           `json:"document_id"`
	Postings   []SimilarPosting `json:"postings"`
}
