package controllers

import (
	"net/http"

	"github.com/angelmondragon/stockroom/api/responses"
	"github.com/angelmondragon/stockroom/api/validators"
	"github.com/angelmondragon/stockroom/internal/groups"
)

func ListGroups(svc groups.Service, rw *responses.Writer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := svc.List(r.Context())
		if err != nil {
			rw.Error(r.Context(), w, err)
			return
		}
		rw.Success(w, list)
	}
}

// CreateGroup answers 201 with the stored group, id assigned.
func CreateGroup(svc groups.Service, rw *responses.Writer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var input groups.GroupInput
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

func GetGroup(svc groups.Service, rw *responses.Writer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParsePathID(r, "id", groups.Messages.NotFound)
		if err != nil {
			rw.Error(r.Context(), w, err)
			return
		}
		group, err := svc.Get(r.Context(), id)
		if err != nil {
			rw.Error(r.Context(), w, err)
			return
		}
		rw.Success(w, group)
	}
}

// UpdateGroup overwrites name and description of an existing group and
// answers with a confirmation message.
func UpdateGroup(svc groups.Service, rw *responses.Writer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParsePathID(r, "id", groups.Messages.NotFound)
		if err != nil {
			rw.Error(r.Context(), w, err)
			return
		}
		var input groups.GroupInput
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

func DeleteGroup(svc groups.Service, rw *responses.Writer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParsePathID(r, "id", groups.Messages.NotFound)
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
