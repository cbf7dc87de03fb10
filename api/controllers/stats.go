package controllers

import (
	"net/http"

	"github.com/angelmondragon/stockroom/api/responses"
	"github.com/angelmondragon/stockroom/api/validators"
	"github.com/angelmondragon/stockroom/internal/stats"
	pkgerrors "github.com/angelmondragon/stockroom/pkg/errors"
)

func TotalValue(svc stats.Service, rw *responses.Writer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		total, err := svc.TotalValue(r.Context())
		if err != nil {
			rw.Error(r.Context(), w, err)
			return
		}
		rw.Success(w, total)
	}
}

// GroupTotalValue sums the stock value of one group. The group does not
// have to exist; an unknown id totals zero.
func GroupTotalValue(svc stats.Service, rw *responses.Writer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParsePathID(r, "id", pkgerrors.MetadataFor(pkgerrors.CodeNotFound).PublicMessage)
		if err != nil {
			rw.Error(r.Context(), w, err)
			return
		}
		total, err := svc.TotalValueByGroup(r.Context(), id)
		if err != nil {
			rw.Error(r.Context(), w, err)
			return
		}
		rw.Success(w, total)
	}
}
