package routes

import (
	"encoding/json"
	"net/http"

	"interview-coach/internal/infra/handlers"

	"github.com/gorilla/mux"
)

type Routes struct {
	Mux               *mux.Router
	InterviewHandlers *handlers.InterviewHandlers
	AuthHandlers      *handlers.AuthHandlers
	// AuthLimiter wraps /signup and /login. Nil leaves them unlimited.
	AuthLimiter func(http.Handler) http.Handler
}

func NewRoutes(mux *mux.Router, interviewHandlers *handlers.InterviewHandlers, authHandlers *handlers.AuthHandlers, authLimiter func(http.Handler) http.Handler) *Routes {
	return &Routes{mux, interviewHandlers, authHandlers, authLimiter}
}

func (r *Routes) Init() {
	r.Mux.HandleFunc("/start-interview", r.InterviewHandlers.StartInterview).Methods(http.MethodPost)
	r.Mux.HandleFunc("/continue-interview", r.InterviewHandlers.ContinueInterview).Methods(http.MethodPost)
	r.Mux.HandleFunc("/end-interview", r.InterviewHandlers.EndInterview).Methods(http.MethodPost)

	r.Mux.HandleFunc("/session/{session_id}", r.InterviewHandlers.GetSession).Methods(http.MethodGet)
	r.Mux.HandleFunc("/session/{session_id}", r.InterviewHandlers.DeleteSession).Methods(http.MethodDelete)
	r.Mux.HandleFunc("/sessions", r.InterviewHandlers.ListSessions).Methods(http.MethodGet)
	r.Mux.HandleFunc("/getallinterviews", r.InterviewHandlers.GetAllInterviews).Methods(http.MethodGet)

	r.Mux.Handle("/signup", r.limitAuth(http.HandlerFunc(r.AuthHandlers.Signup))).Methods(http.MethodPost)
	r.Mux.Handle("/login", r.limitAuth(http.HandlerFunc(r.AuthHandlers.Login))).Methods(http.MethodPost)

	r.Mux.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeDetail(w, http.StatusNotFound, "Not Found")
	})
	r.Mux.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeDetail(w, http.StatusMethodNotAllowed, "Method Not Allowed")
	})

	r.Mux.HandleFunc("/healthCheck", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		response := map[string]string{"status": "healthy"}
		json.NewEncoder(w).Encode(response)
	}).Methods(http.MethodGet)
}

func (r *Routes) limitAuth(h http.Handler) http.Handler {
	if r.AuthLimiter == nil {
		return h
	}
	return r.AuthLimiter(h)
}

func writeDetail(w http.ResponseWriter, status int, detail string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"detail": detail})
}
