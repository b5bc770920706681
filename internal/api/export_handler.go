package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"regexp"

	"gopkg.in/yaml.v3"

	"github.com/chatprobe/backend/internal/dataset"
)

var unsafeFilename = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// exportSuite downloads a suite as a dataset file that import and the CLI accept.
// @Summary      Export a suite
// @Tags         Suites
// @Produce      json
// @Produce      x-yaml
// @Param        suiteID  path      string  true   "Suite ID"
// @Param        format   query     string  false  "json (default) or yaml"
// @Success      200      {object}  dataset.Set
// @Failure      404      {object}  map[string]string
// @Router       /api/suites/{suiteID}/export [get]
func (h *Handler) exportSuite(w http.ResponseWriter, r *http.Request) {
	st, err := h.store.GetSuite(r.Context(), r.PathValue("suiteID"))
	if h.handleStoreError(w, err, "suite") {
		return
	}

	set := dataset.Set{Name: st.Name, Cases: st.TestCases()}
	filename := unsafeFilename.ReplaceAllString(st.Name, "_")
	if filename == "" {
		filename = st.ID
	}

	if r.URL.Query().Get("format") == dataset.FormatYAML {
		data, err := yaml.Marshal(set)
		if err != nil {
			h.logger.Error("failed to encode suite", "error", err)
			respondError(w, http.StatusInternalServerError, "failed to export suite")
			return
		}
		w.Header().Set("Content-Type", "application/x-yaml")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s.yaml", filename))
		w.Write(data)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s.json", filename))
	json.NewEncoder(w).Encode(set)
}
