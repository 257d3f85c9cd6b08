package resources

import (
	"net/http"

	"github.com/louisbranch/crmportal/internal/services/portal/area"
)

func registerRoutes(mux *http.ServeMux, a area.Area, h handlers) {
	if mux == nil {
		return
	}
	base := a.Path
	mux.HandleFunc(http.MethodGet+" "+base, h.handleList)
	mux.HandleFunc(http.MethodGet+" "+base+"/{$}", h.handleList)
	mux.HandleFunc(http.MethodGet+" "+base+"/export", h.handleExport)
	mux.HandleFunc(http.MethodGet+" "+base+"/new", h.handleNewForm)
	mux.HandleFunc(http.MethodPost+" "+base+"/new", h.handleCreate)
	mux.HandleFunc(http.MethodGet+" "+base+"/{id}/edit", h.handleEditForm)
	mux.HandleFunc(http.MethodPost+" "+base+"/{id}/edit", h.handleUpdate)
	mux.HandleFunc(http.MethodPost+" "+base+"/{id}/delete", h.handleDelete)
	if a.Executable {
		mux.HandleFunc(http.MethodPost+" "+base+"/{id}/execute", h.handleExecute)
	}
	mux.HandleFunc(base+"/", h.handleNotFound)
}
