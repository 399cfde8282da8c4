package server

import (
	"net/http"
	"strconv"
	"time"

	"github.com/seedvault/seedvault/audit"
)

// AuditLogsHandler queries the admin audit log with filters. The page size
// is clamped server-side regardless of what the client asks for.
func (s *Server) AuditLogsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()

		filters := audit.Filters{
			AdminID:     query.Get("adminId"),
			TargetID:    query.Get("targetId"),
			TargetEmail: query.Get("targetEmail"),
			Action:      audit.Action(query.Get("action")),
		}
		if v := query.Get("from"); v != "" {
			if t, err := time.Parse(time.RFC3339, v); err == nil {
				filters.From = t
			}
		}
		if v := query.Get("to"); v != "" {
			if t, err := time.Parse(time.RFC3339, v); err == nil {
				filters.To = t
			}
		}
		if v := query.Get("limit"); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				filters.Limit = n
			}
		}
		if v := query.Get("offset"); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				filters.Offset = n
			}
		}

		result, err := s.auditLog.Query(r.Context(), filters)
		if err != nil {
			writeErrorFromErr(w, err)
			return
		}

		logs := result.Entries
		if logs == nil {
			logs = []*audit.Entry{}
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"logs":    logs,
			"total":   result.Total,
			"hasMore": result.HasMore,
		})
	}
}
