package mockapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"

	"github.com/marmota/failboard/internal/client/models"
	"github.com/marmota/failboard/internal/common"
	"github.com/marmota/failboard/internal/logging"
)

type Option func(*Server)

func WithClock(now func() time.Time) Option {
	return func(s *Server) { s.now = now }
}

func WithLogger(l logging.Logger) Option {
	return func(s *Server) { s.log = l }
}

// Server answers the failures API from memory.
type Server struct {
	store    *store
	secret   []byte
	validity time.Duration
	log      logging.Logger
	now      func() time.Time
	validate *validator.Validate
}

// New builds a server and creates the seed user from cfg. With
// cfg.SeedFailures a handful of sample failures are added too.
func New(cfg Config, opts ...Option) (*Server, error) {
	s := &Server{
		secret:   []byte(cfg.SecretKey),
		validity: cfg.TokenValidity,
		log:      logging.Discard(),
		now:      time.Now,
		validate: validator.New(),
	}
	for _, o := range opts {
		o(s)
	}
	s.store = newStore(s.now)

	if cfg.SeedUsername != "" {
		if _, err := s.store.addUser(cfg.SeedUsername, cfg.SeedPassword, cfg.SeedName, "", "admin", true); err != nil {
			return nil, err
		}
	}
	if cfg.SeedFailures {
		s.seedFailures()
	}
	return s, nil
}

func (s *Server) seedFailures() {
	day := 24 * time.Hour
	now := s.now()
	seed := []struct {
		cat  models.Category
		desc string
		age  time.Duration
		st   models.Status
	}{
		{models.CategoryMechanical, "Freio traseiro com ruído", 6 * day, models.StatusResolved},
		{models.CategoryElectrical, "Bateria não segura carga", 3 * day, models.StatusInProgress},
		{models.CategoryStructural, "Trinca no quadro próximo ao guidão", 2 * day, models.StatusPending},
		{models.CategorySoftware, "Aplicativo não desbloqueia o veículo", 5 * time.Hour, models.StatusPending},
	}
	for _, f := range seed {
		created := s.store.addFailure(f.cat, f.desc, now.Add(-f.age))
		_ = s.store.setStatus(created.ID, f.st)
	}
}

// Router returns the HTTP handler with every route mounted.
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()
	r.Use(s.logRequests)

	r.HandleFunc(common.LoginPath, s.handleLogin).Methods(http.MethodPost)

	api := r.NewRoute().Subrouter()
	api.Use(s.requireToken)
	api.HandleFunc(common.UsersPath, s.handleListUsers).Methods(http.MethodGet)
	api.HandleFunc(common.UsersPath, s.handleCreateUser).Methods(http.MethodPost)
	api.HandleFunc(common.UsersPath+"/{id:[0-9]+}", s.handleGetUser).Methods(http.MethodGet)
	api.HandleFunc(common.UsersPath+"/{id:[0-9]+}", s.handleUpdateUser).Methods(http.MethodPut)
	api.HandleFunc(common.UsersPath+"/{id:[0-9]+}", s.handleDeleteUser).Methods(http.MethodDelete)
	api.HandleFunc(common.FailuresPath, s.handleListFailures).Methods(http.MethodGet)
	api.HandleFunc(common.FailuresPath, s.handleCreateFailure).Methods(http.MethodPost)
	api.HandleFunc(common.FailuresPath+"/{id}/status", s.handleSetStatus).Methods(http.MethodPut)

	return r
}

type ctxKey struct{}

func (s *Server) requireToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := r.Header.Get(common.DefaultTokenHeader)
		token, ok := strings.CutPrefix(raw, common.DefaultTokenPrefix+" ")
		if !ok || token == "" {
			writeError(w, http.StatusUnauthorized, "Token não informado")
			return
		}

		uid, err := UserIDFromToken(token, s.secret, s.now())
		if err != nil {
			writeError(w, http.StatusUnauthorized, "Token inválido ou expirado")
			return
		}
		if _, err := s.store.user(uid); err != nil {
			writeError(w, http.StatusUnauthorized, "Usuário não encontrado")
			return
		}

		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ctxKey{}, uid)))
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := s.now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.log.Info(r.Context(), "request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"request_id", r.Header.Get(common.RequestIDHeader),
			"duration", s.now().Sub(start),
		)
	})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username" validate:"required"`
		Password string `json:"password" validate:"required"`
	}
	if !s.decode(w, r, &req) {
		return
	}

	u, ok := s.store.authenticate(req.Username, req.Password)
	if !ok {
		writeError(w, http.StatusUnauthorized, "Usuário ou senha inválidos")
		return
	}

	token, err := GenerateToken(u.ID, s.secret, s.validity, s.now())
	if err != nil {
		s.log.Error(r.Context(), "sign token failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Erro ao gerar token")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"token": token, "user": u})
}

func (s *Server) handleListUsers(w http.ResponseWriter, r *http.Request) {
	filter := make(map[string]string)
	for k, v := range r.URL.Query() {
		if len(v) > 0 {
			filter[k] = v[0]
		}
	}
	writeJSON(w, http.StatusOK, s.store.listUsers(filter))
}

func (s *Server) handleGetUser(w http.ResponseWriter, r *http.Request) {
	u, err := s.store.user(pathID(r))
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, u)
}

func (s *Server) handleCreateUser(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username" validate:"required"`
		Password string `json:"password" validate:"required,min=4"`
		Name     string `json:"nome"`
		Email    string `json:"email" validate:"omitempty,email"`
		Role     string `json:"role"`
		Active   *bool  `json:"active"`
	}
	if !s.decode(w, r, &req) {
		return
	}
	active := req.Active == nil || *req.Active
	role := req.Role
	if role == "" {
		role = "tecnico"
	}

	u, err := s.store.addUser(req.Username, req.Password, req.Name, req.Email, role, active)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, u)
}

func (s *Server) handleUpdateUser(w http.ResponseWriter, r *http.Request) {
	var p userPatch
	if !s.decode(w, r, &p) {
		return
	}
	u, err := s.store.updateUser(pathID(r), p)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, u)
}

func (s *Server) handleDeleteUser(w http.ResponseWriter, r *http.Request) {
	if err := s.store.deleteUser(pathID(r)); err != nil {
		writeStoreError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleListFailures(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.store.listFailures())
}

func (s *Server) handleCreateFailure(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Category    string `json:"tipo" validate:"required"`
		Description string `json:"descricao" validate:"required"`
	}
	if !s.decode(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Description) == "" {
		writeError(w, http.StatusBadRequest, "Descrição é obrigatória")
		return
	}
	cat, ok := models.LookupCategory(req.Category)
	if !ok {
		writeError(w, http.StatusBadRequest, "Tipo de falha inválido")
		return
	}

	f := s.store.addFailure(cat, req.Description, s.now())
	writeJSON(w, http.StatusCreated, f)
}

func (s *Server) handleSetStatus(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Status string `json:"status" validate:"required"`
	}
	if !s.decode(w, r, &req) {
		return
	}
	st, err := models.ParseStatus(req.Status)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Status inválido")
		return
	}
	if err := s.store.setStatus(mux.Vars(r)["id"], st); err != nil {
		writeStoreError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// decode reads and validates a JSON body, answering 400 on failure.
func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "JSON inválido")
		return false
	}
	if err := s.validate.Struct(v); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			writeError(w, http.StatusBadRequest, "Campo inválido: "+verrs[0].Field())
			return false
		}
	}
	return true
}

func pathID(r *http.Request) int64 {
	id, _ := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	return id
}

func writeStoreError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, common.ErrNotFound):
		writeError(w, http.StatusNotFound, "Registro não encontrado")
	case errors.Is(err, ErrDuplicateUsername):
		writeError(w, http.StatusConflict, "Usuário já existe")
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"message": message})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", common.ContentTypeJSON)
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
