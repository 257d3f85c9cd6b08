package dashboard

import (
	"net/http"

	"github.com/louisbranch/crmportal/internal/services/portal/routepath"
)

func registerRoutes(mux *http.ServeMux, h handlers) {
	if mux == nil {
		return
	}
	mux.HandleFunc(http.MethodGet+" "+routepath.Portal, h.handleIndex)
	mux.HandleFunc(http.MethodGet+" "+routepath.PortalPrefix+"{$}", h.handleIndex)
	mux.HandleFunc(routepath.PortalPrefix, h.handleNotFound)
}
