package insights

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/IsaacDSC/miracle/pkg/ctxlogger"
	"github.com/IsaacDSC/miracle/pkg/httpadapter"
)

type Reader interface {
	GetAll(ctx context.Context) ([]TaskMetric, error)
}

func GetInsightsHandler(store Reader) httpadapter.HttpHandle {
	return httpadapter.HttpHandle{
		Path: "GET /api/v1/insights",
		Handler: func(w http.ResponseWriter, r *http.Request) {
			filter, err := ParseFilter(r.URL.Query())
			if err != nil {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}

			metrics, err := store.GetAll(r.Context())
			if err != nil {
				ctxlogger.GetLogger(r.Context()).Error("could not load insights", "error", err)
				http.Error(w, err.Error(), http.StatusInternalServerError)
				return
			}

			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			json.NewEncoder(w).Encode(map[string]any{"tasks": filter.Apply(metrics)})
		},
	}
}
