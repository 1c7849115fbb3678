// Package remotetest provides an in-process fake of the remote identity
// service for tests.
package remotetest

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"

	"github.com/gorilla/mux"

	"github.com/vtt-tools/discordlink/internal/model"
)

// Server is a programmable identity service double. Fixtures and call
// counters are safe for concurrent use since reconciliation issues
// overlapping requests.
type Server struct {
	httpServer *httptest.Server

	mu          sync.Mutex
	token       string
	guildName   string
	guildStatus int // non-zero forces this status from the guild endpoint
	failStatus  int // non-zero forces this status from every endpoint
	names       map[string]model.DiscordID
	invalid     map[model.DiscordID]bool

	lookupCalls   int
	validateCalls int
	guildCalls    int
	syncCalls     int
}

// New starts a fake identity service accepting the given bearer token
func New(token string) *Server {
	s := &Server{
		token:   token,
		names:   make(map[string]model.DiscordID),
		invalid: make(map[model.DiscordID]bool),
	}

	r := mux.NewRouter()
	r.HandleFunc("/discord_id", s.handleLookup).Methods(http.MethodGet)
	r.HandleFunc("/validate_discord_ids", s.handleValidate).Methods(http.MethodGet)
	r.HandleFunc("/guild", s.handleGuild).Methods(http.MethodGet)
	r.HandleFunc("/sync_all", s.handleSync).Methods(http.MethodPost)

	s.httpServer = httptest.NewServer(s.requireAuth(r))
	return s
}

// URL returns the base URL of the fake service
func (s *Server) URL() string {
	return s.httpServer.URL
}

// Close shuts the fake service down
func (s *Server) Close() {
	s.httpServer.Close()
}

// SetToken changes the bearer token the fake accepts, simulating a
// credential rotation on the service side
func (s *Server) SetToken(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
}

// SetGuild sets the guild name returned by the guild endpoint; an empty
// name makes the endpoint report no linked guild
func (s *Server) SetGuild(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.guildName = name
}

// SetGuildStatus forces the guild endpoint to respond with the given
// status; zero restores normal behavior
func (s *Server) SetGuildStatus(status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.guildStatus = status
}

// FailWith forces every endpoint to respond with the given status; zero
// restores normal behavior
func (s *Server) FailWith(status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failStatus = status
}

// AddName registers a display-name to discord-id resolution
func (s *Server) AddName(name string, id model.DiscordID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.names[name] = id
}

// MarkInvalid makes validation reject the given id
func (s *Server) MarkInvalid(id model.DiscordID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.invalid[id] = true
}

// LookupCalls returns how many lookup requests were served
func (s *Server) LookupCalls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lookupCalls
}

// ValidateCalls returns how many validation requests were served
func (s *Server) ValidateCalls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.validateCalls
}

// GuildCalls returns how many guild requests were served
func (s *Server) GuildCalls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.guildCalls
}

// SyncCalls returns how many full-sync requests were served
func (s *Server) SyncCalls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.syncCalls
}

func (s *Server) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		token := s.token
		s.mu.Unlock()

		if r.Header.Get("Authorization") != "Bearer "+token {
			http.Error(w, "invalid auth", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) handleLookup(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lookupCalls++

	if s.failStatus != 0 {
		http.Error(w, "forced failure", s.failStatus)
		return
	}

	result := map[string]model.DiscordID{}
	for _, name := range r.URL.Query()["p"] {
		if id, ok := s.names[name]; ok {
			result[name] = id
		}
	}
	writeJSON(w, result)
}

func (s *Server) handleValidate(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.validateCalls++

	if s.failStatus != 0 {
		http.Error(w, "forced failure", s.failStatus)
		return
	}

	invalid := []model.DiscordID{}
	for _, raw := range r.URL.Query()["i"] {
		id := model.DiscordID(raw)
		if s.invalid[id] {
			invalid = append(invalid, id)
		}
	}
	writeJSON(w, invalid)
}

func (s *Server) handleGuild(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.guildCalls++

	if s.failStatus != 0 {
		http.Error(w, "forced failure", s.failStatus)
		return
	}
	if s.guildStatus != 0 {
		http.Error(w, "forced guild failure", s.guildStatus)
		return
	}
	if s.guildName == "" {
		http.Error(w, "no guild linked", http.StatusNotFound)
		return
	}
	writeJSON(w, map[string]string{"name": s.guildName})
}

func (s *Server) handleSync(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.syncCalls++

	if s.failStatus != 0 {
		http.Error(w, "forced failure", s.failStatus)
		return
	}
	w.WriteHeader(http.StatusAccepted)
}

func writeJSON(w http.ResponseWriter, data any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(data)
}
