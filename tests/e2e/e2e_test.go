package e2e

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"lablend/internal/database"
	"lablend/internal/middleware"
	"lablend/internal/modules/auth"
	"lablend/internal/modules/history"
	"lablend/internal/modules/registry"
	jwtsvc "lablend/internal/pkg/jwt"
	"lablend/internal/repository"
)

type suite struct {
	router *gin.Engine
	db     *gorm.DB
	jwt    *jwtsvc.Service
}

type toolJSON struct {
	ID           string  `json:"_id"`
	Name         string  `json:"name"`
	Category     string  `json:"category"`
	IsAvailable  bool    `json:"isAvailable"`
	BorrowerName string  `json:"borrowerName"`
	DueDate      *string `json:"dueDate"`
}

type logJSON struct {
	ID           string    `json:"_id"`
	ToolName     string    `json:"toolName"`
	BorrowerName string    `json:"borrowerName"`
	Action       string    `json:"action"`
	Date         time.Time `json:"date"`
}

func setupSuite(t *testing.T) *suite {
	t.Helper()

	db, err := database.Connect(":memory:")
	require.NoError(t, err, "Failed to connect to test database")

	// each in-memory sqlite connection gets its own database
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.Migrate(db))

	userRepo := repository.NewUserRepository(db)
	toolRepo := repository.NewToolRepository(db)
	logRepo := repository.NewLogRepository(db)

	jwtService := jwtsvc.New("test_secret_key_32_characters_min", time.Hour)

	authHandler := auth.NewHandler(auth.NewService(userRepo, jwtService))
	registryHandler := registry.NewHandler(registry.NewService(toolRepo, logRepo))
	historyHandler := history.NewHandler(history.NewService(logRepo))

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(gin.Recovery())

	authHandler.RegisterRoutes(r)
	registryHandler.RegisterPublicRoutes(r)

	protected := r.Group("/")
	protected.Use(middleware.JWTAuth(jwtService))
	{
		registryHandler.RegisterProtectedRoutes(protected)
		historyHandler.RegisterRoutes(protected)
	}

	return &suite{router: r, db: db, jwt: jwtService}
}

func (s *suite) request(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *suite) registerAndLogin(t *testing.T) string {
	t.Helper()

	w := s.request(t, "POST", "/register", "", gin.H{"username": "admin", "password": "pw"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = s.request(t, "POST", "/login", "", gin.H{"username": "admin", "password": "pw"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Token    string `json:"token"`
		Username string `json:"username"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	assert.Equal(t, "admin", resp.Username)
	return resp.Token
}

func (s *suite) addTool(t *testing.T, token, name, category string) toolJSON {
	t.Helper()

	w := s.request(t, "POST", "/add-tool", token, gin.H{"name": name, "category": category})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var tool toolJSON
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &tool))
	require.NotEmpty(t, tool.ID)
	return tool
}

func (s *suite) listTools(t *testing.T) []toolJSON {
	t.Helper()

	w := s.request(t, "GET", "/tools", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var tools []toolJSON
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &tools))
	return tools
}

func TestRegisterLoginFlow(t *testing.T) {
	s := setupSuite(t)

	w := s.request(t, "POST", "/register", "", gin.H{"username": "admin", "password": "pw"})
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), "registered successfully")

	// second registration with the same username conflicts
	w = s.request(t, "POST", "/register", "", gin.H{"username": "admin", "password": "other"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "already exists")

	// wrong password
	w = s.request(t, "POST", "/login", "", gin.H{"username": "admin", "password": "wrong"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// unknown user and wrong password are indistinguishable
	w = s.request(t, "POST", "/login", "", gin.H{"username": "ghost", "password": "pw"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// correct credentials yield a token that verifies to the same identity
	w = s.request(t, "POST", "/login", "", gin.H{"username": "admin", "password": "pw"})
	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	claims, err := s.jwt.ValidateToken(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, "admin", claims.Username)
}

func TestAddAndListTools(t *testing.T) {
	s := setupSuite(t)
	token := s.registerAndLogin(t)

	created := s.addTool(t, token, "Digital Multimeter", "Electronics")
	assert.True(t, created.IsAvailable)
	assert.Equal(t, "Electronics", created.Category)

	tools := s.listTools(t)
	require.Len(t, tools, 1)
	assert.Equal(t, "Digital Multimeter", tools[0].Name)
	assert.True(t, tools[0].IsAvailable)

	// missing name is a validation error
	w := s.request(t, "POST", "/add-tool", token, gin.H{"category": "Electronics"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "name is required")
}

func TestBorrowAndReturn(t *testing.T) {
	s := setupSuite(t)
	token := s.registerAndLogin(t)
	tool := s.addTool(t, token, "Oscilloscope", "Electronics")

	w := s.request(t, "PATCH", "/borrow/"+tool.ID, token, gin.H{"borrowerName": "Alice"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "Success! Oscilloscope is now borrowed by Alice", w.Body.String())

	tools := s.listTools(t)
	require.Len(t, tools, 1)
	assert.False(t, tools[0].IsAvailable)
	assert.Equal(t, "Alice", tools[0].BorrowerName)
	require.NotNil(t, tools[0].DueDate)

	due, err := time.Parse(time.RFC3339, *tools[0].DueDate)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(7*24*time.Hour), due, time.Minute)

	w = s.request(t, "PATCH", "/return/"+tool.ID, token, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "Returned successfully", w.Body.String())

	tools = s.listTools(t)
	require.Len(t, tools, 1)
	assert.True(t, tools[0].IsAvailable)
	assert.Empty(t, tools[0].BorrowerName)
	assert.Nil(t, tools[0].DueDate)

	// borrow/return on an unknown id is 404
	w = s.request(t, "PATCH", "/borrow/no-such-id", token, gin.H{"borrowerName": "Bob"})
	assert.Equal(t, http.StatusNotFound, w.Code)
	w = s.request(t, "PATCH", "/return/no-such-id", token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSearch(t *testing.T) {
	s := setupSuite(t)
	token := s.registerAndLogin(t)
	s.addTool(t, token, "3D Printer", "Fabrication")
	s.addTool(t, token, "printer station", "General")
	s.addTool(t, token, "Oscilloscope", "Electronics")

	w := s.request(t, "GET", "/search?name=printer", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var tools []toolJSON
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &tools))
	names := make([]string, 0, len(tools))
	for _, tl := range tools {
		names = append(names, tl.Name)
	}
	assert.ElementsMatch(t, []string{"3D Printer", "printer station"}, names)

	w = s.request(t, "GET", "/search?category=Electronics", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	tools = nil
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &tools))
	require.Len(t, tools, 1)
	assert.Equal(t, "Oscilloscope", tools[0].Name)

	// no filters returns all tools
	w = s.request(t, "GET", "/search", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	tools = nil
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &tools))
	assert.Len(t, tools, 3)
}

func TestDeleteTool(t *testing.T) {
	s := setupSuite(t)
	token := s.registerAndLogin(t)
	tool := s.addTool(t, token, "Heat Gun", "General")

	w := s.request(t, "DELETE", "/delete-tool/no-such-id", token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = s.request(t, "DELETE", "/delete-tool/"+tool.ID, token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	assert.Empty(t, s.listTools(t))
}

func TestAuthGuard(t *testing.T) {
	s := setupSuite(t)

	// no token → 401 on every guarded route
	for _, route := range []struct{ method, path string }{
		{"POST", "/add-tool"},
		{"PATCH", "/borrow/x"},
		{"PATCH", "/return/x"},
		{"DELETE", "/delete-tool/x"},
		{"GET", "/history"},
	} {
		w := s.request(t, route.method, route.path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code, "%s %s", route.method, route.path)
	}

	// expired token → 403
	expiredIssuer := jwtsvc.New("test_secret_key_32_characters_min", -time.Minute)
	expired, err := expiredIssuer.GenerateToken("admin")
	require.NoError(t, err)

	w := s.request(t, "GET", "/history", expired, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	// garbage token → 403
	w = s.request(t, "GET", "/history", "garbage-token", nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestHistoryOrdering(t *testing.T) {
	s := setupSuite(t)
	token := s.registerAndLogin(t)

	tool := s.addTool(t, token, "Oscilloscope", "Electronics")
	time.Sleep(2 * time.Millisecond)

	w := s.request(t, "PATCH", "/borrow/"+tool.ID, token, gin.H{"borrowerName": "Alice"})
	require.Equal(t, http.StatusOK, w.Code)
	time.Sleep(2 * time.Millisecond)

	w = s.request(t, "PATCH", "/return/"+tool.ID, token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = s.request(t, "GET", "/history", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var entries []logJSON
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &entries))
	require.Len(t, entries, 3)

	// newest first
	assert.Equal(t, "Returned", entries[0].Action)
	assert.Equal(t, "Lab Admin", entries[0].BorrowerName)
	assert.Equal(t, "Borrowed", entries[1].Action)
	assert.Equal(t, "Alice", entries[1].BorrowerName)
	assert.Equal(t, "Added", entries[2].Action)

	// every entry keeps the denormalized tool name
	for _, e := range entries {
		assert.Equal(t, "Oscilloscope", e.ToolName)
	}
}

func TestHistorySurvivesToolDeletion(t *testing.T) {
	s := setupSuite(t)
	token := s.registerAndLogin(t)

	tool := s.addTool(t, token, "Torque Wrench", "Mechanics")
	w := s.request(t, "DELETE", "/delete-tool/"+tool.ID, token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = s.request(t, "GET", "/history", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var entries []logJSON
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &entries))
	require.Len(t, entries, 2)
	assert.Equal(t, "Removed", entries[0].Action)
	assert.Equal(t, "Torque Wrench", entries[0].ToolName)
}

func TestReborrowReassigns(t *testing.T) {
	s := setupSuite(t)
	token := s.registerAndLogin(t)
	tool := s.addTool(t, token, "Soldering Station", "Electronics")

	w := s.request(t, "PATCH", "/borrow/"+tool.ID, token, gin.H{"borrowerName": "Alice"})
	require.Equal(t, http.StatusOK, w.Code)

	// second borrow on a lent tool silently reassigns it
	w = s.request(t, "PATCH", "/borrow/"+tool.ID, token, gin.H{"borrowerName": "Bob"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "borrowed by Bob")

	tools := s.listTools(t)
	require.Len(t, tools, 1)
	assert.Equal(t, "Bob", tools[0].BorrowerName)
	assert.False(t, tools[0].IsAvailable)
}
