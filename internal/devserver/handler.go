package devserver

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"net/url"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/naveenspark/roster/pkg/domain"
)

// NewRouter builds the activities API on top of store.
func NewRouter(store *Store) http.Handler {
	h := &handler{store: store}

	r := chi.NewRouter()
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RequestID)
	r.Use(accessLog)

	r.Get("/", h.root)
	r.Get(IndexPath, h.index)
	r.Get("/health", h.health)
	r.Route("/activities", func(r chi.Router) {
		r.Get("/", h.listActivities)
		r.Post("/{name}/signup", h.signup)
		r.Delete("/{name}/cancel", h.cancel)
		r.Get("/{name}/participants", h.participants)
	})
	return r
}

type handler struct {
	store *Store
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeDetail(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, domain.DetailResponse{Detail: detail})
}

// writeStoreError maps store sentinels onto the API's status codes.
func writeStoreError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrActivityNotFound):
		writeDetail(w, http.StatusNotFound, err.Error())
	case errors.Is(err, ErrAlreadySignedUp),
		errors.Is(err, ErrActivityFull),
		errors.Is(err, ErrNotSignedUp),
		errors.Is(err, ErrForeignEmail):
		writeDetail(w, http.StatusBadRequest, err.Error())
	default:
		writeDetail(w, http.StatusInternalServerError, "Internal server error")
	}
}

// activityName returns the {name} segment unescaped. chi matches on RawPath
// when the request path needed it (e.g. an escaped "/"), leaving the
// parameter escaped.
func activityName(r *http.Request) string {
	name := chi.URLParam(r, "name")
	if r.URL.RawPath == "" {
		return name
	}
	if unescaped, err := url.PathUnescape(name); err == nil {
		return unescaped
	}
	return name
}

// listActivities handles GET /activities
func (h *handler) listActivities(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, h.store.Roster())
}

// signup handles POST /activities/{name}/signup?email=
func (h *handler) signup(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")
	if email == "" {
		writeDetail(w, http.StatusUnprocessableEntity, "email is required")
		return
	}
	msg, err := h.store.Signup(activityName(r), email)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, domain.MessageResponse{Message: msg})
}

// cancel handles DELETE /activities/{name}/cancel?email=
func (h *handler) cancel(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")
	if email == "" {
		writeDetail(w, http.StatusUnprocessableEntity, "email is required")
		return
	}
	msg, err := h.store.Cancel(activityName(r), email)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, domain.MessageResponse{Message: msg})
}

// participants handles GET /activities/{name}/participants
func (h *handler) participants(w http.ResponseWriter, r *http.Request) {
	list, err := h.store.Participants(activityName(r))
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

// health handles GET /health
func (h *handler) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// accessLog writes one line per request with the chi request id.
func accessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		log.Printf("%s %s %d %s req=%s",
			r.Method, r.URL.Path, ww.Status(), time.Since(start).Round(time.Microsecond),
			chimiddleware.GetReqID(r.Context()))
	})
}
