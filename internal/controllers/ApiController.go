package controllers

import (
	"net/http"

	json "github.com/goccy/go-json"

	"crewops/internal/analytics"
	"crewops/internal/models"
	"crewops/internal/providers"
	"crewops/internal/services"
)

const maxRequestBodySize = 1 << 20 // 1 MB

const tokenHeader = "X-Session-Token"

type ApiController struct {
	logger  providers.Logger
	service services.SessionServiceInterface
	cache   providers.CacheProviderInterface
	metrics providers.MetricsProviderInterface
}

func NewApiController(logger providers.Logger, service services.SessionServiceInterface, cache providers.CacheProviderInterface, metrics providers.MetricsProviderInterface) *ApiController {
	return &ApiController{
		logger:  logger,
		service: service,
		cache:   cache,
		metrics: metrics,
	}
}

func getToken(r *http.Request) string {
	return r.Header.Get(tokenHeader)
}

// requireSession resolves the session token or writes a 401.
func (ac *ApiController) requireSession(w http.ResponseWriter, r *http.Request) (string, models.User, bool) {
	token := getToken(r)
	user, ok := ac.service.CurrentUser(token)
	if !ok {
		ac.logger.Debugf(providers.GetLogTypeByRequestType(r.Method), "rejected %s without a live session", r.URL.Path)
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return "", models.User{}, false
	}
	return token, user, true
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	gson, err := json.Marshal(v)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(gson)
}

func (ac *ApiController) serveFromCacheOrCompute(w http.ResponseWriter, cacheKey string, compute func() (interface{}, error)) {
	if data, ok := ac.cache.Get(cacheKey); ok {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(data)
		return
	}

	result, err := compute()
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	gson, err := json.Marshal(result)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	ac.cache.Set(cacheKey, gson)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(gson)
}

type loginRequest struct {
	Name string `json:"name"`
	Role string `json:"role"`
}

type loginResponse struct {
	Token string      `json:"token"`
	User  models.User `json:"user"`
}

func (ac *ApiController) Login(w http.ResponseWriter, r *http.Request) {
	var payload loginRequest
	if !decodeBody(w, r, &payload) {
		return
	}
	role, ok := models.ParseRole(payload.Role)
	if !ok || payload.Name == "" {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	token := ac.service.Login(payload.Name, role)
	if token == "" {
		http.Error(w, "Service Unavailable", http.StatusServiceUnavailable)
		return
	}
	ac.metrics.IncLogins()
	ac.logger.Infof(providers.TypePost, "session opened for %s (%s)", payload.Name, role)
	writeJSON(w, http.StatusCreated, loginResponse{
		Token: token,
		User:  models.User{Name: payload.Name, Role: role},
	})
}

func (ac *ApiController) Logout(w http.ResponseWriter, r *http.Request) {
	ac.service.Logout(getToken(r))
	w.WriteHeader(http.StatusNoContent)
}

type roleRequest struct {
	Role string `json:"role"`
}

func (ac *ApiController) CheckIn(w http.ResponseWriter, r *http.Request) {
	token, _, ok := ac.requireSession(w, r)
	if !ok {
		return
	}
	var payload roleRequest
	if !decodeBody(w, r, &payload) {
		return
	}
	ac.service.CheckIn(token, models.Role(payload.Role))
	ac.metrics.IncCheckins()
	w.WriteHeader(http.StatusNoContent)
}

func (ac *ApiController) CheckOut(w http.ResponseWriter, r *http.Request) {
	token, _, ok := ac.requireSession(w, r)
	if !ok {
		return
	}
	var payload roleRequest
	if !decodeBody(w, r, &payload) {
		return
	}
	ac.service.CheckOut(token, models.Role(payload.Role))
	w.WriteHeader(http.StatusNoContent)
}

func (ac *ApiController) GetAttendance(w http.ResponseWriter, r *http.Request) {
	token, _, ok := ac.requireSession(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, ac.service.AttendanceBoard(token))
}

type addTaskRequest struct {
	Title  string `json:"title"`
	Role   string `json:"role"`
	DueKey string `json:"due_key"`
	Status string `json:"status"`
}

func (ac *ApiController) AddTask(w http.ResponseWriter, r *http.Request) {
	token, _, ok := ac.requireSession(w, r)
	if !ok {
		return
	}
	var payload addTaskRequest
	if !decodeBody(w, r, &payload) {
		return
	}
	role, ok := models.ParseRole(payload.Role)
	if !ok || role == models.RoleAdmin || payload.Title == "" {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	status := models.TaskTodo
	if payload.Status != "" {
		status, ok = models.ParseTaskStatus(payload.Status)
		if !ok {
			http.Error(w, "Bad Request", http.StatusBadRequest)
			return
		}
	}
	ac.service.AddTask(token, payload.Title, role, payload.DueKey, status)
	w.WriteHeader(http.StatusCreated)
}

type toggleTaskRequest struct {
	ID string `json:"id"`
}

func (ac *ApiController) ToggleTask(w http.ResponseWriter, r *http.Request) {
	token, _, ok := ac.requireSession(w, r)
	if !ok {
		return
	}
	var payload toggleTaskRequest
	if !decodeBody(w, r, &payload) {
		return
	}
	ac.service.ToggleTask(token, payload.ID)
	w.WriteHeader(http.StatusNoContent)
}

type taskListResponse struct {
	Tasks     []*models.Task `json:"tasks"`
	OpenCount int            `json:"open_count"`
}

func (ac *ApiController) GetTasks(w http.ResponseWriter, r *http.Request) {
	token, _, ok := ac.requireSession(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, taskListResponse{
		Tasks:     ac.service.MyTasks(token),
		OpenCount: ac.service.OpenTaskCount(token),
	})
}

type addLogRequest struct {
	Role      string      `json:"role"`
	DateKey   string      `json:"date_key"`
	Client    string      `json:"client"`
	VideoType string      `json:"video_type"`
	Quantity  interface{} `json:"quantity"`
}

// AddLog records an activity log. Quantity is taken as-is and clamped by
// the engine, so malformed numerics are never rejected.
func (ac *ApiController) AddLog(w http.ResponseWriter, r *http.Request) {
	token, user, ok := ac.requireSession(w, r)
	if !ok {
		return
	}
	var payload addLogRequest
	if !decodeBody(w, r, &payload) {
		return
	}
	role := models.Role(payload.Role)
	if payload.Role == "" {
		role = user.Role
	}
	if ac.service.AddLog(token, role, payload.DateKey, payload.Client, payload.VideoType, payload.Quantity) {
		ac.metrics.IncLogsRecorded(string(role))
	}
	w.WriteHeader(http.StatusCreated)
}

type addItemRequest struct {
	DateKey string `json:"date_key"`
	Title   string `json:"title"`
	Client  string `json:"client"`
}

func (ac *ApiController) AddItem(w http.ResponseWriter, r *http.Request) {
	token, _, ok := ac.requireSession(w, r)
	if !ok {
		return
	}
	var payload addItemRequest
	if !decodeBody(w, r, &payload) {
		return
	}
	ac.service.AddWriterItem(token, payload.DateKey, payload.Title, payload.Client)
	w.WriteHeader(http.StatusCreated)
}

func (ac *ApiController) GetItems(w http.ResponseWriter, r *http.Request) {
	token, _, ok := ac.requireSession(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, ac.service.WriterItems(token))
}

type transitionItemRequest struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

func (ac *ApiController) TransitionItem(w http.ResponseWriter, r *http.Request) {
	token, _, ok := ac.requireSession(w, r)
	if !ok {
		return
	}
	var payload transitionItemRequest
	if !decodeBody(w, r, &payload) {
		return
	}
	status, ok := models.ParseItemStatus(payload.Status)
	if !ok {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	ac.service.TransitionWriterItem(token, payload.ID, status)
	w.WriteHeader(http.StatusNoContent)
}

type setWeekRequest struct {
	Anchor string `json:"anchor"`
}

// SetWeek moves the anchor week. Stored logs keep their absolute dates.
func (ac *ApiController) SetWeek(w http.ResponseWriter, r *http.Request) {
	token, _, ok := ac.requireSession(w, r)
	if !ok {
		return
	}
	var payload setWeekRequest
	if !decodeBody(w, r, &payload) {
		return
	}
	anchor, ok := analytics.ParseDayKey(payload.Anchor)
	if !ok {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	ac.service.SetAnchor(token, anchor)
	w.WriteHeader(http.StatusNoContent)
}

func (ac *ApiController) GetWeekly(w http.ResponseWriter, r *http.Request) {
	token, user, ok := ac.requireSession(w, r)
	if !ok {
		return
	}
	role := user.Role
	if q := r.URL.Query().Get("role"); q != "" {
		parsed, ok := models.ParseRole(q)
		if !ok {
			http.Error(w, "Bad Request", http.StatusBadRequest)
			return
		}
		role = parsed
	}
	// Anchor-keyed so a moved week can never serve the old week's series.
	cacheKey := "weekly:" + token + ":" + string(role) + ":" + ac.service.AnchorKey(token)
	ac.serveFromCacheOrCompute(w, cacheKey, func() (interface{}, error) {
		return ac.service.WeeklySeries(token, role), nil
	})
}

func (ac *ApiController) GetSummary(w http.ResponseWriter, r *http.Request) {
	token, _, ok := ac.requireSession(w, r)
	if !ok {
		return
	}
	cacheKey := "summary:" + token + ":" + ac.service.AnchorKey(token)
	ac.serveFromCacheOrCompute(w, cacheKey, func() (interface{}, error) {
		summary, _ := ac.service.Summary(token)
		return summary, nil
	})
}
