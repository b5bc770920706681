package api

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/chatprobe/backend/internal/dataset"
	"github.com/chatprobe/backend/internal/domain/suite"
	"github.com/chatprobe/backend/internal/domain/testcase"
)

// ── Request / Response types ────────────────────────────────────────────────

type CreateSuiteRequest struct {
	Name  string              `json:"name" example:"smoke"`
	Cases []testcase.TestCase `json:"cases"`
}

func (r *CreateSuiteRequest) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return errors.New("name is required")
	}
	return nil
}

type AddCaseRequest struct {
	testcase.TestCase
}

func (r *AddCaseRequest) Validate() error {
	if strings.TrimSpace(r.Question) == "" {
		return errors.New("question is required")
	}
	return nil
}

// ── Handlers ────────────────────────────────────────────────────────────────

// createSuite stores a new suite with its cases.
// @Summary      Create a suite
// @Tags         Suites
// @Accept       json
// @Produce      json
// @Param        body  body      CreateSuiteRequest  true  "Suite to create"
// @Success      201   {object}  suite.Suite
// @Failure      400   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /api/suites [post]
func (h *Handler) createSuite(w http.ResponseWriter, r *http.Request) {
	var req CreateSuiteRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	st, err := suite.FromTestCases(strings.TrimSpace(req.Name), req.Cases)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.store.SaveSuite(r.Context(), st); err != nil {
		h.logger.Error("failed to save suite", "error", err)
		respondError(w, http.StatusInternalServerError, "failed to save suite")
		return
	}

	respondJSON(w, http.StatusCreated, st)
}

// importSuite creates a suite from a raw JSON or YAML dataset.
// @Summary      Import a dataset
// @Description  Body is a JSON array of cases or a YAML document. Format comes from ?format or Content-Type.
// @Tags         Suites
// @Accept       json
// @Accept       x-yaml
// @Produce      json
// @Param        name    query     string  false  "Suite name"
// @Param        format  query     string  false  "json or yaml"
// @Success      201     {object}  suite.Suite
// @Failure      400     {object}  map[string]string
// @Router       /api/suites/import [post]
func (h *Handler) importSuite(w http.ResponseWriter, r *http.Request) {
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		respondError(w, http.StatusBadRequest, "failed to read body")
		return
	}

	format := r.URL.Query().Get("format")
	if format == "" {
		format = dataset.FormatJSON
		if strings.Contains(r.Header.Get("Content-Type"), "yaml") {
			format = dataset.FormatYAML
		}
	}

	set, err := dataset.Parse(data, format)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	name := r.URL.Query().Get("name")
	if name == "" {
		name = set.Name
	}
	if name == "" {
		name = "imported"
	}

	st, err := suite.FromTestCases(name, set.Cases)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.store.SaveSuite(r.Context(), st); err != nil {
		h.logger.Error("failed to save imported suite", "error", err)
		respondError(w, http.StatusInternalServerError, "failed to save suite")
		return
	}

	h.logger.Info("suite imported", "suite_id", st.ID, "cases", len(st.Cases))
	respondJSON(w, http.StatusCreated, st)
}

// listSuites lists suites with their case counts.
// @Summary      List suites
// @Tags         Suites
// @Produce      json
// @Success      200  {array}   store.SuiteSummary
// @Failure      500  {object}  map[string]string
// @Router       /api/suites [get]
func (h *Handler) listSuites(w http.ResponseWriter, r *http.Request) {
	suites, err := h.store.ListSuites(r.Context())
	if err != nil {
		h.logger.Error("failed to list suites", "error", err)
		respondError(w, http.StatusInternalServerError, "failed to load suites")
		return
	}
	respondJSON(w, http.StatusOK, suites)
}

// getSuite returns a suite with its cases in run order.
// @Summary      Get a suite
// @Tags         Suites
// @Produce      json
// @Param        suiteID  path      string  true  "Suite ID"
// @Success      200      {object}  suite.Suite
// @Failure      404      {object}  map[string]string
// @Router       /api/suites/{suiteID} [get]
func (h *Handler) getSuite(w http.ResponseWriter, r *http.Request) {
	st, err := h.store.GetSuite(r.Context(), r.PathValue("suiteID"))
	if h.handleStoreError(w, err, "suite") {
		return
	}
	respondJSON(w, http.StatusOK, st)
}

// DELETE /api/suites/{suiteID}
func (h *Handler) deleteSuite(w http.ResponseWriter, r *http.Request) {
	err := h.store.DeleteSuite(r.Context(), r.PathValue("suiteID"))
	if h.handleStoreError(w, err, "suite") {
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// POST /api/suites/{suiteID}/cases
func (h *Handler) addCase(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	suiteID := r.PathValue("suiteID")

	st, err := h.store.GetSuite(ctx, suiteID)
	if h.handleStoreError(w, err, "suite") {
		return
	}

	var req AddCaseRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	if err := st.AddCase(req.TestCase); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	newCase := st.Cases[len(st.Cases)-1]
	if err := h.store.AddCase(ctx, suiteID, newCase); h.handleStoreError(w, err, "suite") {
		return
	}

	respondJSON(w, http.StatusCreated, newCase)
}

// DELETE /api/suites/{suiteID}/cases/{caseID}
func (h *Handler) deleteCase(w http.ResponseWriter, r *http.Request) {
	err := h.store.DeleteCase(r.Context(), r.PathValue("suiteID"), r.PathValue("caseID"))
	if h.handleStoreError(w, err, "case") {
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
