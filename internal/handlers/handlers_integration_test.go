package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"flock/internal/handlers"
	"flock/internal/models"
	"flock/internal/repositories"
	"flock/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupApp builds a Fiber app over an in-memory SQLite database with all
// three entity services wired, and no mail publisher (registration logs
// the skipped publication, which is the fire-and-forget contract).
func setupApp(t *testing.T) *fiber.App {
	t.Helper()

	viper.SetDefault("JWT_SECRET", "test_jwt_secret")
	viper.AutomaticEnv()
	jwtSecret := viper.GetString("JWT_SECRET")

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect to in-memory database: %v", err)
	}

	err = db.AutoMigrate(&models.User{}, &models.Sheep{}, &models.Necklace{}, &models.Reading{})
	if err != nil {
		t.Fatalf("failed to auto-migrate database: %v", err)
	}

	userService := services.NewUserService(repositories.NewGORMUserRepository(db), nil, jwtSecret)
	sheepService := services.NewSheepService(repositories.NewGORMSheepRepository(db))
	necklaceService := services.NewNecklaceService(repositories.NewGORMNecklaceRepository(db))

	app := fiber.New()
	api := app.Group("/api")
	handlers.NewUserHandler(userService).RegisterRoutes(api)
	handlers.NewSheepHandler(sheepService).RegisterRoutes(api)
	handlers.NewNecklaceHandler(necklaceService).RegisterRoutes(api)

	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body interface{}) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		assert.NoError(t, err)
		reader = bytes.NewReader(jsonBody)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req, -1)
	assert.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, out interface{}) {
	t.Helper()
	defer resp.Body.Close()
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

func TestMain(m *testing.M) {
	log.SetOutput(io.Discard)
	code := m.Run()
	os.Exit(code)
}

func TestUserRegisterLoginAndCRUD(t *testing.T) {
	app := setupApp(t)

	// Register
	resp := doJSON(t, app, http.MethodPost, "/api/users", map[string]string{
		"name":     "Jean",
		"lastName": "Dupont",
		"email":    "jean@example.com",
		"password": "password123",
		"role":     "farmer",
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	var registerResp map[string]interface{}
	decodeBody(t, resp, &registerResp)
	assert.Equal(t, "User registered successfully", registerResp["message"])

	// Listing returns stored documents, bcrypt hash included.
	resp = doJSON(t, app, http.MethodGet, "/api/users", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var users []models.User
	decodeBody(t, resp, &users)
	assert.Len(t, users, 1)
	userID := users[0].ID
	assert.NotEmpty(t, userID)
	assert.NotEqual(t, "password123", users[0].Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(users[0].Password), []byte("password123")))

	// Login
	resp = doJSON(t, app, http.MethodPost, "/api/users/login", map[string]string{
		"email":    "jean@example.com",
		"password": "password123",
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var loginResp map[string]string
	decodeBody(t, resp, &loginResp)
	assert.Equal(t, userID, loginResp["id"])
	assert.Equal(t, "farmer", loginResp["role"])
	assert.NotEmpty(t, loginResp["token"])

	// Get by id
	resp = doJSON(t, app, http.MethodGet, "/api/users/"+userID, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var fetched models.User
	decodeBody(t, resp, &fetched)
	assert.Equal(t, "Jean", fetched.Name)
	storedHash := fetched.Password

	// Partial update: only the email changes, everything else stays.
	resp = doJSON(t, app, http.MethodPut, "/api/users/"+userID, map[string]string{
		"email": "x@y.com",
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, app, http.MethodGet, "/api/users/"+userID, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	decodeBody(t, resp, &fetched)
	assert.Equal(t, "x@y.com", fetched.Email)
	assert.Equal(t, "Jean", fetched.Name)
	assert.Equal(t, "Dupont", fetched.LastName)
	assert.Equal(t, "farmer", fetched.Role)
	assert.Equal(t, storedHash, fetched.Password)

	// Delete
	resp = doJSON(t, app, http.MethodDelete, "/api/users/"+userID, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var deleteResp map[string]string
	decodeBody(t, resp, &deleteResp)
	assert.Equal(t, "User deleted successfully", deleteResp["message"])

	// Deleting again is a 404, never a 500.
	resp = doJSON(t, app, http.MethodDelete, "/api/users/"+userID, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, app, http.MethodGet, "/api/users/"+userID, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}

func TestRegisterMissingFields(t *testing.T) {
	app := setupApp(t)

	resp := doJSON(t, app, http.MethodPost, "/api/users", map[string]string{
		"email": "incomplete@example.com",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	app := setupApp(t)

	resp := doJSON(t, app, http.MethodPost, "/api/users", map[string]string{
		"name":     "Jean",
		"lastName": "Dupont",
		"email":    "jean@example.com",
		"password": "password123",
		"role":     "farmer",
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	// Wrong password for a known email.
	resp = doJSON(t, app, http.MethodPost, "/api/users/login", map[string]string{
		"email":    "jean@example.com",
		"password": "wrongpassword",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	wrongPasswordBody, err := io.ReadAll(resp.Body)
	assert.NoError(t, err)
	resp.Body.Close()

	// Unknown email entirely.
	resp = doJSON(t, app, http.MethodPost, "/api/users/login", map[string]string{
		"email":    "nobody@example.com",
		"password": "password123",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	unknownEmailBody, err := io.ReadAll(resp.Body)
	assert.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, wrongPasswordBody, unknownEmailBody)
}

func TestSheepCRUD(t *testing.T) {
	app := setupApp(t)

	// Create with the required attributes; vaccinated defaults to false.
	resp := doJSON(t, app, http.MethodPost, "/api/sheep", map[string]string{
		"necklaceID":   "N1",
		"age":          "2",
		"race":         "merino",
		"healthStatus": "ok",
		"weight":       "40",
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	var createResp struct {
		Message string       `json:"message"`
		Sheep   models.Sheep `json:"sheep"`
	}
	decodeBody(t, resp, &createResp)
	assert.Equal(t, "Sheep added successfully!", createResp.Message)
	assert.NotEmpty(t, createResp.Sheep.ID)
	assert.False(t, createResp.Sheep.Vaccinated)
	assert.False(t, createResp.Sheep.CreatedAt.IsZero())

	// Read back equals what went in, plus id and timestamps.
	resp = doJSON(t, app, http.MethodGet, "/api/sheep/"+createResp.Sheep.ID, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var fetched models.Sheep
	decodeBody(t, resp, &fetched)
	assert.Equal(t, createResp.Sheep.ID, fetched.ID)
	assert.Equal(t, "N1", fetched.NecklaceID)
	assert.Equal(t, "2", fetched.Age)
	assert.Equal(t, "merino", fetched.Race)
	assert.Equal(t, "ok", fetched.HealthStatus)
	assert.Equal(t, "40", fetched.Weight)
	assert.False(t, fetched.Vaccinated)
	assert.False(t, fetched.CreatedAt.IsZero())
	assert.False(t, fetched.UpdatedAt.IsZero())

	// List
	resp = doJSON(t, app, http.MethodGet, "/api/sheep", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var sheepList []models.Sheep
	decodeBody(t, resp, &sheepList)
	assert.Len(t, sheepList, 1)

	// Update returns the post-update state.
	resp = doJSON(t, app, http.MethodPut, "/api/sheep/"+createResp.Sheep.ID, map[string]interface{}{
		"necklaceID":   "N2",
		"age":          "3",
		"race":         "suffolk",
		"healthStatus": "sick",
		"weight":       "45",
		"vaccinated":   true,
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var updateResp struct {
		Message string       `json:"message"`
		Sheep   models.Sheep `json:"sheep"`
	}
	decodeBody(t, resp, &updateResp)
	assert.Equal(t, "Sheep updated successfully!", updateResp.Message)
	assert.Equal(t, "N2", updateResp.Sheep.NecklaceID)
	assert.Equal(t, "3", updateResp.Sheep.Age)
	assert.True(t, updateResp.Sheep.Vaccinated)

	// Delete
	resp = doJSON(t, app, http.MethodDelete, "/api/sheep/"+createResp.Sheep.ID, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	// Gone now, and deleting a nonexistent id is a 404, never a 500.
	resp = doJSON(t, app, http.MethodGet, "/api/sheep/"+createResp.Sheep.ID, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, app, http.MethodDelete, "/api/sheep/nonexistent-id", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}

func TestSheepCreateMissingField(t *testing.T) {
	app := setupApp(t)

	resp := doJSON(t, app, http.MethodPost, "/api/sheep", map[string]string{
		"necklaceID": "N1",
		"age":        "2",
		// race, healthStatus, weight missing
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	var body map[string]string
	decodeBody(t, resp, &body)
	assert.Equal(t, "Please provide all required fields", body["message"])
}

func TestNecklaceAppendAndGet(t *testing.T) {
	app := setupApp(t)

	r1 := map[string]float64{"time": 1, "acc": 0.1, "gyr": 0.2, "temp": 38.5, "pulse": 70}
	r2 := map[string]float64{"time": 2, "acc": 0.3, "gyr": 0.4, "temp": 38.7, "pulse": 72}

	// First append creates the document.
	resp := doJSON(t, app, http.MethodPost, "/api/necklace", map[string]interface{}{
		"idNecklace": "N1",
		"data":       []interface{}{r1},
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var addResp map[string]string
	decodeBody(t, resp, &addResp)
	assert.Equal(t, "Data added successfully", addResp["message"])

	// Second append accumulates behind the first.
	resp = doJSON(t, app, http.MethodPost, "/api/necklace", map[string]interface{}{
		"idNecklace": "N1",
		"data":       []interface{}{r2},
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, app, http.MethodGet, "/api/necklace/N1", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var necklace models.Necklace
	decodeBody(t, resp, &necklace)
	assert.Equal(t, "N1", necklace.DeviceID)
	assert.Len(t, necklace.Data, 2)
	assert.Equal(t, float64(1), necklace.Data[0].Time)
	assert.Equal(t, float64(70), necklace.Data[0].Pulse)
	assert.Equal(t, float64(2), necklace.Data[1].Time)
	assert.Equal(t, float64(72), necklace.Data[1].Pulse)

	// Unknown device id.
	resp = doJSON(t, app, http.MethodGet, "/api/necklace/unknown", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}

func TestNecklaceAppendValidation(t *testing.T) {
	app := setupApp(t)

	// Missing device id.
	resp := doJSON(t, app, http.MethodPost, "/api/necklace", map[string]interface{}{
		"data": []interface{}{map[string]float64{"time": 1, "acc": 1, "gyr": 1, "temp": 38, "pulse": 60}},
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	// Missing data.
	resp = doJSON(t, app, http.MethodPost, "/api/necklace", map[string]interface{}{
		"idNecklace": "N1",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	// Empty data array.
	resp = doJSON(t, app, http.MethodPost, "/api/necklace", map[string]interface{}{
		"idNecklace": "N1",
		"data":       []interface{}{},
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
}

func TestNecklaceAppendRejectsPartialReading(t *testing.T) {
	app := setupApp(t)

	// A reading missing acc/gyr/temp/pulse is rejected, nothing stored.
	resp := doJSON(t, app, http.MethodPost, "/api/necklace", map[string]interface{}{
		"idNecklace": "NP1",
		"data":       []interface{}{map[string]float64{"time": 1}},
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, app, http.MethodGet, "/api/necklace/NP1", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()

	// One bad reading in a batch rejects the whole batch.
	good := map[string]float64{"time": 1, "acc": 0.1, "gyr": 0.2, "temp": 38.5, "pulse": 70}
	bad := map[string]float64{"time": 2, "acc": 0.3, "gyr": 0.4, "temp": 38.7}
	resp = doJSON(t, app, http.MethodPost, "/api/necklace", map[string]interface{}{
		"idNecklace": "NP1",
		"data":       []interface{}{good, bad},
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, app, http.MethodGet, "/api/necklace/NP1", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()

	// A zero value is a legitimate sample, not a missing field.
	zero := map[string]float64{"time": 0, "acc": 0, "gyr": 0, "temp": 0, "pulse": 0}
	resp = doJSON(t, app, http.MethodPost, "/api/necklace", map[string]interface{}{
		"idNecklace": "NP1",
		"data":       []interface{}{zero},
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()
}
