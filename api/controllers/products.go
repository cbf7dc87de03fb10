package controllers

import (
	"context"
	"net/http"

	"github.com/angelmondragon/stockroom/api/responses"
	"github.com/angelmondragon/stockroom/api/validators"
	"github.com/angelmondragon/stockroom/internal/products"
)

const maxSearchLength = 256

// ListProducts returns every product, or only those of one group when the
// groupId query parameter is present.
func ListProducts(svc products.Service, rw *responses.Writer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		groupID, filtered, err := validators.ParseQueryInt64(r, "groupId")
		if err != nil {
			rw.Error(r.Context(), w, err)
			return
		}

		var list []products.ProductDTO
		if filtered {
			list, err = svc.ListByGroup(r.Context(), groupID)
		} else {
			list, err = svc.List(r.Context())
		}
		if err != nil {
			rw.Error(r.Context(), w, err)
			return
		}
		rw.Success(w, list)
	}
}

// SearchProducts matches q case-insensitively against name, description and
// manufacturer. A missing q matches everything.
func SearchProducts(svc products.Service, rw *responses.Writer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := validators.SanitizeString(r.URL.Query().Get("q"), maxSearchLength)
		list, err := svc.Search(r.Context(), q)
		if err != nil {
			rw.Error(r.Context(), w, err)
			return
		}
		rw.Success(w, list)
	}
}

func CreateProduct(svc products.Service, rw *responses.Writer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var input products.ProductInput
		if err := validators.DecodeBody(r, rw.Codec(), &input); err != nil {
			rw.Error(r.Context(), w, err)
			return
		}
		created, err := svc.Create(r.Context(), input)
		if err != nil {
			rw.Error(r.Context(), w, err)
			return
		}
		rw.Created(w, created)
	}
}

func GetProduct(svc products.Service, rw *responses.Writer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParsePathID(r, "id", products.Messages.NotFound)
		if err != nil {
			rw.Error(r.Context(), w, err)
			return
		}
		product, err := svc.Get(r.Context(), id)
		if err != nil {
			rw.Error(r.Context(), w, err)
			return
		}
		rw.Success(w, product)
	}
}

func UpdateProduct(svc products.Service, rw *responses.Writer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParsePathID(r, "id", products.Messages.NotFound)
		if err != nil {
			rw.Error(r.Context(), w, err)
			return
		}
		var input products.ProductInput
		if err := validators.DecodeBody(r, rw.Codec(), &input); err != nil {
			rw.Error(r.Context(), w, err)
			return
		}
		msg, err := svc.Update(r.Context(), id, input)
		if err != nil {
			rw.Error(r.Context(), w, err)
			return
		}
		rw.Message(w, msg)
	}
}

func DeleteProduct(svc products.Service, rw *responses.Writer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParsePathID(r, "id", products.Messages.NotFound)
		if err != nil {
			rw.Error(r.Context(), w, err)
			return
		}
		msg, err := svc.Delete(r.Context(), id)
		if err != nil {
			rw.Error(r.Context(), w, err)
			return
		}
		rw.Message(w, msg)
	}
}

// AddStock increases the quantity of a product by the body's amount.
func AddStock(svc products.Service, rw *responses.Writer) http.HandlerFunc {
	return stockHandler(svc, rw, svc.AddStock)
}

// SellStock decreases the quantity of a product, refusing to go below zero.
func SellStock(svc products.Service, rw *responses.Writer) http.HandlerFunc {
	return stockHandler(svc, rw, svc.SellStock)
}

// stockHandler resolves the product before reading the body, so a missing
// product is a 404 whatever the payload.
func stockHandler(svc products.Service, rw *responses.Writer, apply func(ctx context.Context, id int64, amount int) (string, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParsePathID(r, "id", products.Messages.NotFound)
		if err != nil {
			rw.Error(r.Context(), w, err)
			return
		}
		if _, err := svc.Get(r.Context(), id); err != nil {
			rw.Error(r.Context(), w, err)
			return
		}
		var input products.AmountInput
		if err := validators.DecodeBody(r, rw.Codec(), &input); err != nil {
			rw.Error(r.Context(), w, err)
			return
		}
		msg, err := apply(r.Context(), id, input.Amount)
		if err != nil {
			rw.Error(r.Context(), w, err)
			return
		}
		rw.Message(w, msg)
	}
}
