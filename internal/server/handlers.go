package server

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/jonathan/resume-builder/internal/filter"
	"github.com/jonathan/resume-builder/internal/rendering"
	"github.com/jonathan/resume-builder/internal/selection"
	"github.com/jonathan/resume-builder/internal/types"
)

// PointResponse is one tag-visible point with its selection flag
type PointResponse struct {
	ID      string              `json:"id"`
	Text    string              `json:"text"`
	Tags    []string            `json:"tags"`
	Checked bool                `json:"checked"`
	Skills  []filter.SkillToken `json:"skills,omitempty"`
}

// SectionResponse is one section of the editor view
type SectionResponse struct {
	ID          string          `json:"id"`
	Category    types.Category  `json:"category"`
	Title       string          `json:"title"`
	Subtitle    string          `json:"subtitle,omitempty"`
	Metadata    types.Metadata  `json:"metadata"`
	TotalPoints int             `json:"total_points"`
	Points      []PointResponse `json:"points"`
}

// ViewResponse represents the response for GET /api/view
type ViewResponse struct {
	Sections    []SectionResponse `json:"sections"`
	ActiveTags  []string          `json:"active_tags"`
	ActiveCount int               `json:"active_count"`
}

// TagsResponse represents the response for the tag endpoints
type TagsResponse struct {
	Tags   []string `json:"tags,omitempty"`
	Active []string `json:"active"`
}

// AddPointRequest represents the request body for POST /api/sections/{id}/points
type AddPointRequest struct {
	Text string `json:"text"`
	// Tags is a comma separated list
	Tags string `json:"tags"`
}

// AddPointResponse represents the response for POST /api/sections/{id}/points
type AddPointResponse struct {
	Added bool         `json:"added"`
	Point *types.Point `json:"point,omitempty"`
}

// ResetRequest represents the request body for POST /api/reset
type ResetRequest struct {
	Confirm bool `json:"confirm"`
}

func buildViewResponse(view filter.View, sel selection.State) ViewResponse {
	resp := ViewResponse{
		Sections:    make([]SectionResponse, 0, len(view.Sections)),
		ActiveTags:  view.Tags,
		ActiveCount: view.ActiveCount(),
	}
	for _, sv := range view.Sections {
		section := sv.Section
		out := SectionResponse{
			ID:          section.ID,
			Category:    section.Category,
			Title:       section.Title(),
			Subtitle:    section.Subtitle(),
			Metadata:    section.Metadata,
			TotalPoints: sv.TotalPoints,
			Points:      make([]PointResponse, 0, len(section.Points)),
		}
		for _, p := range section.Points {
			point := PointResponse{ID: p.ID, Text: p.Text, Tags: p.Tags, Checked: sel.Included(p.ID)}
			if section.Category == types.CategorySkills {
				point.Skills = filter.Tokens(p, sel)
			}
			out.Points = append(out.Points, point)
		}
		resp.Sections = append(resp.Sections, out)
	}
	return resp
}

func (s *Server) validationError(w http.ResponseWriter, err *ErrValidation) {
	s.errorResponse(w, HTTPStatus(err), err.Error())
}

// handleView returns the filtered sections with selection flags
func (s *Server) handleView(w http.ResponseWriter, _ *http.Request) {
	view, sel := s.editor.ViewState()
	s.jsonResponse(w, http.StatusOK, buildViewResponse(view, sel))
}

// handleTags returns every tag and the active filter
func (s *Server) handleTags(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, TagsResponse{Tags: s.editor.Tags(), Active: s.editor.ActiveTags().Sorted()})
}

// handleToggleTag flips one tag filter
func (s *Server) handleToggleTag(w http.ResponseWriter, r *http.Request) {
	tag := r.PathValue("tag")
	if tag == "" {
		s.validationError(w, &ErrValidation{Field: "tag", Message: "is required"})
		return
	}
	active := s.editor.ToggleTag(tag)
	s.jsonResponse(w, http.StatusOK, TagsResponse{Active: active.Sorted()})
}

// handleClearTags removes every tag filter
func (s *Server) handleClearTags(w http.ResponseWriter, _ *http.Request) {
	s.editor.ClearTags()
	s.jsonResponse(w, http.StatusOK, TagsResponse{Active: []string{}})
}

// handleTogglePoint flips a point or skill token
func (s *Server) handleTogglePoint(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		s.validationError(w, &ErrValidation{Field: "id", Message: "is required"})
		return
	}
	checked := s.editor.TogglePoint(r.Context(), id)
	s.jsonResponse(w, http.StatusOK, map[string]any{"id": id, "checked": checked})
}

// handleAddPoint appends a user-written point to a section
func (s *Server) handleAddPoint(w http.ResponseWriter, r *http.Request) {
	var req AddPointRequest
	if err := decodeBody(w, r, &req); err != nil {
		s.validationError(w, &ErrValidation{Field: "body", Message: err.Error()})
		return
	}

	point, added, err := s.editor.AddPoint(r.Context(), r.PathValue("id"), req.Text, req.Tags)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	if !added {
		s.jsonResponse(w, http.StatusOK, AddPointResponse{Added: false})
		return
	}
	s.jsonResponse(w, http.StatusCreated, AddPointResponse{Added: true, Point: &point})
}

// handleGetLayout returns the layout settings
func (s *Server) handleGetLayout(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, s.editor.Layout())
}

// handlePutLayout merges a partial layout object into the current settings
func (s *Server) handlePutLayout(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	settings, err := s.editor.PatchLayout(r.Context(), body)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	s.jsonResponse(w, http.StatusOK, settings)
}

// handleDocument returns the render projection
func (s *Server) handleDocument(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, s.editor.Document())
}

// handlePreview returns the printable HTML page
func (s *Server) handlePreview(w http.ResponseWriter, _ *http.Request) {
	html, err := rendering.RenderHTML(s.editor.Document())
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = io.WriteString(w, html)
}

// handleExport renders the current document to PDF
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	pdf, err := s.editor.Export(r.Context(), s.exporter)
	if err != nil {
		s.logger.Warn().Err(err).Msg("export failed")
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="resume.pdf"`)
	w.Header().Set("Content-Length", strconv.Itoa(len(pdf)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(pdf)
}

// handleReset clears every edit after explicit confirmation
func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	var req ResetRequest
	if err := decodeBody(w, r, &req); err != nil && !errors.Is(err, io.EOF) {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	if err := s.editor.Reset(r.Context(), req.Confirm); err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "reset"})
}
