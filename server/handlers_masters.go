package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/carebridge/go-hospital-admin/masters"
)

// The master-data handlers are free functions because Go methods
// cannot carry type parameters; registerCRUD binds them per
// collection.

func listMasterHandler[T any](s *Server, col *masters.Collection[T]) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		records, err := col.List(r.Context())
		if err != nil {
			s.writeDomainError(w, r, err)
			return
		}
		s.writeJSON(w, http.StatusOK, records)
	}
}

func getMasterHandler[T any](s *Server, col *masters.Collection[T]) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		record, err := col.Get(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			s.writeDomainError(w, r, err)
			return
		}
		s.writeJSON(w, http.StatusOK, record)
	}
}

func createMasterHandler[T any](s *Server, col *masters.Collection[T]) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var record T
		if err := s.decodeAndValidate(r, &record); err != nil {
			s.writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		created, err := col.Create(r.Context(), record)
		if err != nil {
			s.writeDomainError(w, r, err)
			return
		}
		s.writeJSON(w, http.StatusCreated, created)
	}
}

func updateMasterHandler[T any](s *Server, col *masters.Collection[T]) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var record T
		if err := s.decodeAndValidate(r, &record); err != nil {
			s.writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		updated, err := col.Update(r.Context(), chi.URLParam(r, "id"), record)
		if err != nil {
			s.writeDomainError(w, r, err)
			return
		}
		s.writeJSON(w, http.StatusOK, updated)
	}
}

func deleteMasterHandler[T any](s *Server, col *masters.Collection[T]) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := col.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
			s.writeDomainError(w, r, err)
			return
		}
		s.writeJSON(w, http.StatusNoContent, nil)
	}
}
