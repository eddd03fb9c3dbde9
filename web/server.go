package web

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/rs/cors"

	"tennis-score-service/config"
	"tennis-score-service/logger"
	"tennis-score-service/scoreboard"
	"tennis-score-service/services"
	"tennis-score-service/tennisapi"
)

const defaultPageSize = 10

type Server struct {
	config      *config.Config
	feed        *services.FeedManager
	preferences *services.PreferenceStore
	api         *tennisapi.Client
	wsHub       *Hub
	httpServer  *http.Server
	upgrader    websocket.Upgrader
}

func NewServer(cfg *config.Config, feed *services.FeedManager, prefs *services.PreferenceStore, api *tennisapi.Client, hub *Hub) *Server {
	return &Server{
		config:      cfg,
		feed:        feed,
		preferences: prefs,
		api:         api,
		wsHub:       hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true // restrict in production
			},
		},
	}
}

func (s *Server) Start() error {
	router := mux.NewRouter()

	api := router.PathPrefix("/api").Subrouter()
	api.HandleFunc("/health", s.handleHealth).Methods("GET")
	api.HandleFunc("/matches/", s.handleGetMatches).Methods("GET")
	api.HandleFunc("/matches/{match_id}", s.handleGetMatch).Methods("GET")
	api.HandleFunc("/players/", s.handleGetPlayers).Methods("GET")
	api.HandleFunc("/players/{player_id}", s.handleGetPlayer).Methods("GET")
	api.HandleFunc("/preferences/theme", s.handleGetTheme).Methods("GET")
	api.HandleFunc("/preferences/theme", s.handleSetTheme).Methods("PUT")

	router.HandleFunc("/ws", s.handleWebSocket)

	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	})

	handler := c.Handler(router)

	s.httpServer = &http.Server{
		Addr:         ":" + s.config.Port,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s.httpServer.ListenAndServe()
}

func (s *Server) Stop() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		logger.Errorf("Server shutdown error: %v", err)
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]interface{}{
		"status":  "ok",
		"matches": s.feed.Collection().Len(),
		"time":    time.Now().Unix(),
	})
}

// handleGetMatches serves the reconciled matches, optionally bucketed by the
// filter query parameter (LIVE, FINISHED, UPCOMING, ALL).
func (s *Server) handleGetMatches(w http.ResponseWriter, r *http.Request) {
	tag := scoreboard.FilterAll
	if f := r.URL.Query().Get("filter"); f != "" {
		tag = scoreboard.FilterTag(f)
	}

	matches := s.feed.Collection().Bucket(tag)
	writeJSON(w, matches)
}

func (s *Server) handleGetMatch(w http.ResponseWriter, r *http.Request) {
	matchID := mux.Vars(r)["match_id"]

	match, err := s.feed.Collection().ByID(matchID)
	if errors.Is(err, scoreboard.ErrMatchNotFound) {
		writeError(w, http.StatusNotFound, "match not found")
		return
	}
	writeJSON(w, match)
}

// handleGetPlayers serves the ranking table. Query parameters: sort (column
// key), dir (asc/desc, optional — omitted applies the column's first-click
// default), page, pageSize.
func (s *Server) handleGetPlayers(w http.ResponseWriter, r *http.Request) {
	players, err := s.api.Players()
	if err != nil {
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}

	query := r.URL.Query()

	pageSize, _ := strconv.Atoi(query.Get("pageSize"))
	if pageSize <= 0 || pageSize > 100 {
		pageSize = defaultPageSize
	}

	table := scoreboard.NewRankingTable(players, pageSize)
	if key := query.Get("sort"); key != "" {
		if dir := query.Get("dir"); dir != "" {
			table.Sort(scoreboard.SortKey(key), scoreboard.Direction(dir))
		} else {
			table.Click(scoreboard.SortKey(key))
		}
	}
	if page, err := strconv.Atoi(query.Get("page")); err == nil {
		table.SetPage(page)
	}

	writeJSON(w, map[string]interface{}{
		"players":    table.Page(),
		"page":       table.PageNumber(),
		"totalPages": table.TotalPages(),
		"sort":       table.Key(),
		"dir":        table.Dir(),
	})
}

func (s *Server) handleGetPlayer(w http.ResponseWriter, r *http.Request) {
	playerID := mux.Vars(r)["player_id"]

	profile, err := s.api.Player(playerID)
	if errors.Is(err, tennisapi.ErrNotFound) {
		writeError(w, http.StatusNotFound, "player not found")
		return
	}
	if err != nil {
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}
	writeJSON(w, profile)
}

func (s *Server) handleGetTheme(w http.ResponseWriter, r *http.Request) {
	theme, err := s.preferences.Theme(clientID(r))
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, map[string]string{"theme": theme})
}

func (s *Server) handleSetTheme(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Theme string `json:"theme"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid body")
		return
	}

	if err := s.preferences.SetTheme(clientID(r), body.Theme); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, map[string]string{"theme": body.Theme})
}

// handleWebSocket upgrades a downstream client connection and attaches it to
// the hub.
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Errorf("WebSocket upgrade error: %v", err)
		return
	}

	client := &Client{
		hub:      s.wsHub,
		conn:     conn,
		send:     make(chan []byte, 256),
		matchIDs: make(map[string]bool),
	}

	client.hub.register <- client

	welcome := &tennisapi.PushMessage{Event: "connected"}
	if data, err := json.Marshal(welcome); err == nil {
		client.send <- data
	}

	go client.writePump()
	go client.readPump()
}

// clientID identifies the calling client for preference storage. Falls back
// to the remote address when no explicit id is supplied.
func clientID(r *http.Request) string {
	if id := r.Header.Get("X-Client-ID"); id != "" {
		return id
	}
	if id := r.URL.Query().Get("clientId"); id != "" {
		return id
	}
	return r.RemoteAddr
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"message": message})
}
