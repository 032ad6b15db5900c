package api

import "net/http"

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	archive, err := s.backups.Export(r.Context(), GetUserID(r))
	if err != nil {
		s.logger.Error("backup export failed", "error", err)
		internalError(w)
		return
	}
	writeJSON(w, http.StatusOK, archive)
}

func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	var req importRequest
	if err := readJSON(r, &req); err != nil {
		badRequest(w, "invalid request body")
		return
	}

	imported, err := s.backups.Import(r.Context(), GetUserID(r), req.Notes)
	if err != nil {
		s.logger.Error("backup import failed", "error", err, "imported", imported)
		internalError(w)
		return
	}

	writeJSON(w, http.StatusOK, importResponse{Imported: imported})
}
