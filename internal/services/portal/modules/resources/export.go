package resources

import (
	"bytes"
	"encoding/csv"
	"net/http"

	"github.com/louisbranch/crmportal/internal/services/portal/integration/crmapi"
	"github.com/louisbranch/crmportal/internal/services/portal/platform/pagerender"
)

const exportPageSize = 100

func (h handlers) handleExport(w http.ResponseWriter, r *http.Request) {
	p, can := h.viewer(r)
	if !h.area.CanExport(can) {
		h.forbidden(w, r)
		return
	}
	query := crmapi.ListQueryFromValues(r.URL.Query())
	if err := h.checkFilter(query); err != nil {
		pagerender.WriteError(w, r, err)
		return
	}
	query.Page = 1
	query.PageSize = exportPageSize

	var records []crmapi.Record
	for range h.cfg.ExportPageLimit {
		page, err := h.cfg.Lister.List(r.Context(), p.Token, h.area.Resource, query)
		if err != nil {
			h.writeError(w, r, "export", err)
			return
		}
		records = append(records, page.Items...)
		if !page.HasNext() {
			break
		}
		query.Page++
	}

	payload, err := h.encodeCSV(records)
	if err != nil {
		h.writeError(w, r, "export", err)
		return
	}
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+string(h.area.Resource)+`.csv"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(payload)
}

func (h handlers) encodeCSV(records []crmapi.Record) ([]byte, error) {
	var buf bytes.Buffer
	cw := csv.NewWriter(&buf)
	header := append([]string{"id"}, h.area.Columns...)
	if err := cw.Write(header); err != nil {
		return nil, err
	}
	for _, record := range records {
		row := make([]string, 0, len(header))
		row = append(row, record.ID())
		for _, column := range h.area.Columns {
			row = append(row, record.Field(column))
		}
		if err := cw.Write(row); err != nil {
			return nil, err
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
