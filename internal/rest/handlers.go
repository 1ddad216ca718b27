package rest

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/spf13/cast"

	"github.com/brennanma/restrack/internal/rep"
	"github.com/brennanma/restrack/pkg/types"
)

// Endpoint permission names. Hyperlink refs reuse the same vocabulary
// so a link's presence always mirrors the endpoint's own check.
const (
	permShow   = "show"
	permModify = "modify"
)

// handleGet serves one record with its concurrency token, honoring
// If-None-Match / If-Modified-Since.
func (s *Server) handleGet(schema types.Schema) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p := actor(r)
		if !p.Perm(permShow) {
			s.writeError(w, http.StatusForbidden, "permission denied")
			return
		}
		rec, err := s.store.Record(schema.Type, chi.URLParam(r, "id"))
		if err != nil {
			s.writeStoreError(w, err)
			return
		}
		cfs, err := s.store.CustomFieldsFor(schema.Type)
		if err != nil {
			s.writeError(w, http.StatusInternalServerError, "loading custom fields")
			return
		}

		token := rep.NewToken(rec, schema, cfs)
		w.Header().Set("ETag", token.ETag)
		w.Header().Set("Last-Modified", token.LastModified.Format(http.TimeFormat))

		if token.NotModified(r.Header.Get("If-None-Match"), r.Header.Get("If-Modified-Since")) {
			w.WriteHeader(http.StatusNotModified)
			return
		}
		s.writeJSON(w, http.StatusOK, s.ser.Serialize(rec, schema, cfs, p.Perm))
	}
}

// handleUpdate applies a conditional update: the If-Match /
// If-Unmodified-Since check runs against the stored record inside the
// store's critical section, so a failed precondition applies nothing.
func (s *Server) handleUpdate(schema types.Schema) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p := actor(r)
		if !p.Perm(permModify) {
			s.writeError(w, http.StatusForbidden, "permission denied")
			return
		}

		var payload map[string]any
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil || payload == nil {
			s.writeError(w, http.StatusBadRequest, "expected a JSON object")
			return
		}

		cfs, err := s.store.CustomFieldsFor(schema.Type)
		if err != nil {
			s.writeError(w, http.StatusInternalServerError, "loading custom fields")
			return
		}

		updates, diags := s.deser.Deserialize(schema, payload)
		updates = writableOnly(schema, updates)

		var cfUpdates map[string][]types.CustomFieldValue
		if raw, ok := payload[types.KeyCustomFields]; ok {
			cfUpdates, err = s.ser.CustomFieldCodec().Decode(raw, cfs)
			if err != nil {
				s.writeError(w, http.StatusBadRequest, err.Error())
				return
			}
		}

		ifMatch := r.Header.Get("If-Match")
		ifUnmodified := r.Header.Get("If-Unmodified-Since")
		check := func(cur types.Record) error {
			return rep.NewToken(cur, schema, cfs).CheckWrite(ifMatch, ifUnmodified)
		}

		id := chi.URLParam(r, "id")
		if err := s.store.Apply(schema.Type, id, updates, cfUpdates, "User-"+p.UserID, check); err != nil {
			s.writeStoreError(w, err)
			return
		}
		for _, d := range diags {
			s.log.Info("update diagnostic", "type", schema.Type, "id", id, "message", d)
		}

		rec, err := s.store.Record(schema.Type, id)
		if err != nil {
			s.writeStoreError(w, err)
			return
		}
		token := rep.NewToken(rec, schema, cfs)
		w.Header().Set("ETag", token.ETag)
		w.Header().Set("Last-Modified", token.LastModified.Format(http.TimeFormat))
		s.writeJSON(w, http.StatusOK, s.ser.Serialize(rec, schema, cfs, p.Perm))
	}
}

// handleCreate makes a new record and answers 201 with a Location
// header and the new record's reference.
func (s *Server) handleCreate(schema types.Schema) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p := actor(r)
		if !p.Perm(rep.ActionCreate(schema.Type)) {
			s.writeError(w, http.StatusForbidden, "permission denied")
			return
		}

		var payload map[string]any
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil || payload == nil {
			s.writeError(w, http.StatusBadRequest, "expected a JSON object")
			return
		}

		cfs, err := s.store.CustomFieldsFor(schema.Type)
		if err != nil {
			s.writeError(w, http.StatusInternalServerError, "loading custom fields")
			return
		}

		updates, diags := s.deser.Deserialize(schema, payload)
		updates = writableOnly(schema, updates)

		var cfValues map[string][]types.CustomFieldValue
		if raw, ok := payload[types.KeyCustomFields]; ok {
			cfValues, err = s.ser.CustomFieldCodec().Decode(raw, cfs)
			if err != nil {
				s.writeError(w, http.StatusBadRequest, err.Error())
				return
			}
		}

		id, err := s.store.Create(schema.Type, updates, cfValues, "User-"+p.UserID)
		if err != nil {
			s.writeStoreError(w, err)
			return
		}
		for _, d := range diags {
			s.log.Info("create diagnostic", "type", schema.Type, "id", id, "message", d)
		}

		url := s.codec.RecordURL(schema.Type, id)
		w.Header().Set("Location", url)
		s.writeJSON(w, http.StatusCreated, types.Ref{Type: schema.Type, ID: id, URL: url})
	}
}

// handleSearch compiles the JSON predicate body, runs the query, and
// pages the result into a collection envelope of abbreviated
// references. An empty body matches every record of the type.
func (s *Server) handleSearch(schema types.Schema) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p := actor(r)
		if !p.Perm(permShow) {
			s.writeError(w, http.StatusForbidden, "permission denied")
			return
		}

		body, err := io.ReadAll(r.Body)
		if err != nil {
			s.writeError(w, http.StatusBadRequest, "reading request body")
			return
		}

		var criteria types.Criteria
		if len(bytes.TrimSpace(body)) > 0 {
			criteria, _, err = rep.CompileSearch(schema, body)
			if err != nil {
				s.writeError(w, http.StatusBadRequest, err.Error())
				return
			}
		}

		params := rep.ParsePageParams(r.URL.Query().Get("page"), r.URL.Query().Get("per_page"))
		offset, limit := params.Window()
		recs, total, err := s.store.Query(schema.Type, criteria, offset, limit)
		if err != nil {
			s.writeStoreError(w, err)
			return
		}

		items := make([]any, 0, len(recs))
		for _, rec := range recs {
			items = append(items, s.ser.Abbreviate(rec))
		}
		s.writeJSON(w, http.StatusOK, params.Envelope(total, items))
	}
}

// handleHistory pages a record's transaction log.
func (s *Server) handleHistory(schema types.Schema) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p := actor(r)
		if !p.Perm(rep.LinkHistory) {
			s.writeError(w, http.StatusForbidden, "permission denied")
			return
		}
		id := chi.URLParam(r, "id")
		if _, err := s.store.Record(schema.Type, id); err != nil {
			s.writeStoreError(w, err)
			return
		}

		params := rep.ParsePageParams(r.URL.Query().Get("page"), r.URL.Query().Get("per_page"))
		offset, limit := params.Window()
		txns, total, err := s.store.History(schema.Type, id, offset, limit)
		if err != nil {
			s.writeStoreError(w, err)
			return
		}

		items := make([]any, 0, len(txns))
		for _, txn := range txns {
			items = append(items, map[string]any{
				"id":      txn.ID,
				"type":    txn.Type,
				"field":   txn.Field,
				"creator": txn.Creator,
				"created": txn.CreatedAt.UTC().Format(time.RFC3339),
			})
		}
		s.writeJSON(w, http.StatusOK, params.Envelope(total, items))
	}
}

// handleAction records a lifecycle action (correspond, comment) as a
// history transaction.
func (s *Server) handleAction(schema types.Schema) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		action := chi.URLParam(r, "action")
		known := false
		for _, a := range schema.Actions {
			if a == action {
				known = true
				break
			}
		}
		if !known {
			s.writeError(w, http.StatusNotFound, "unknown action")
			return
		}

		p := actor(r)
		if !p.Perm(action) {
			s.writeError(w, http.StatusForbidden, "permission denied")
			return
		}

		id := chi.URLParam(r, "id")
		if _, err := s.store.Record(schema.Type, id); err != nil {
			s.writeStoreError(w, err)
			return
		}

		var payload map[string]any
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil || payload == nil {
			s.writeError(w, http.StatusBadRequest, "expected a JSON object")
			return
		}

		err := s.store.AppendTransaction(types.Transaction{
			RecordType: schema.Type,
			RecordID:   id,
			Type:       action,
			NewValue:   cast.ToString(payload["content"]),
			Creator:    "User-" + p.UserID,
		})
		if err != nil {
			s.writeStoreError(w, err)
			return
		}
		s.writeJSON(w, http.StatusCreated, map[string]string{"message": action + " recorded"})
	}
}

// handleDownload serves the stored content of one binary custom field
// value.
func (s *Server) handleDownload(w http.ResponseWriter, r *http.Request) {
	p := actor(r)
	if !p.Perm(permShow) {
		s.writeError(w, http.StatusForbidden, "permission denied")
		return
	}
	v, err := s.store.CustomFieldValue(chi.URLParam(r, "valueID"))
	if err != nil {
		s.writeStoreError(w, err)
		return
	}
	contentType := v.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	w.Header().Set("Content-Type", contentType)
	if v.Filename != "" {
		w.Header().Set("Content-Disposition", `attachment; filename="`+v.Filename+`"`)
	}
	w.WriteHeader(http.StatusOK)
	io.WriteString(w, v.Content)
}

// writeStoreError maps store and engine errors to status codes.
func (s *Server) writeStoreError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, types.ErrNotFound), errors.Is(err, types.ErrUnknownType), errors.Is(err, types.ErrInvalidID):
		s.writeError(w, http.StatusNotFound, "record not found")
	case errors.Is(err, types.ErrPreconditionFailed):
		s.writeError(w, http.StatusPreconditionFailed, "precondition failed")
	case errors.Is(err, types.ErrInvalidData), errors.Is(err, types.ErrUnknownField), errors.Is(err, types.ErrBadOperator), errors.Is(err, types.ErrMalformedSearch):
		s.writeError(w, http.StatusBadRequest, err.Error())
	default:
		s.log.Error("request failed", "error", err)
		s.writeError(w, http.StatusInternalServerError, "internal error")
	}
}

// writableOnly keeps update entries whose field is writable or denotes
// a role; everything else is dropped before reaching the store.
func writableOnly(schema types.Schema, updates map[string]any) map[string]any {
	out := make(map[string]any, len(updates))
	for name, v := range updates {
		if schema.IsRole(name) {
			out[name] = v
			continue
		}
		if f, ok := schema.Field(name); ok && f.Writable {
			out[name] = v
		}
	}
	return out
}
