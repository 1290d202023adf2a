package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mhafidz976/penjadwalan2/config"
	"github.com/mhafidz976/penjadwalan2/internal/handlers"
	"github.com/mhafidz976/penjadwalan2/internal/routes"
	"github.com/mhafidz976/penjadwalan2/internal/scheduling"
	"github.com/mhafidz976/penjadwalan2/models"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type testEnv struct {
	router *gin.Engine
	db     *gorm.DB
	lab    models.Lab
	course models.Course
	// пароли у всех одинаковые: "rahasia"
	admin    models.User
	staff    models.User
	lecturer models.User
	other    models.User
}

func setupEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Lab{}, &models.Course{}, &models.Schedule{}))

	config.DB = db
	config.RDB = nil
	config.JwtKey = []byte("test-secret")
	handlers.Scheduler = scheduling.New(db, scheduling.ScopeNone)

	hash, err := bcrypt.GenerateFromPassword([]byte("rahasia"), bcrypt.MinCost)
	require.NoError(t, err)

	env := &testEnv{db: db}
	env.admin = models.User{Username: "admin", Password: string(hash), Role: models.RoleAdmin, FullName: "Administrator"}
	env.staff = models.User{Username: "staff", Password: string(hash), Role: models.RoleStaff, FullName: "Staff Lab"}
	env.lecturer = models.User{Username: "dosen-a", Password: string(hash), Role: models.RoleLecturer, FullName: "Dosen A"}
	env.other = models.User{Username: "dosen-b", Password: string(hash), Role: models.RoleLecturer, FullName: "Dosen B"}
	for _, u := range []*models.User{&env.admin, &env.staff, &env.lecturer, &env.other} {
		require.NoError(t, db.Create(u).Error)
	}

	env.lab = models.Lab{LabName: "Lab Komputer 1", Capacity: 30}
	require.NoError(t, db.Create(&env.lab).Error)
	env.course = models.Course{Code: "BD01", CourseName: "Praktikum Sistem Basis Data", Semester: 3, SKS: 3}
	require.NoError(t, db.Create(&env.course).Error)

	env.router = gin.New()
	routes.SetupRoutes(env.router)
	return env
}

func (env *testEnv) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
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
	env.router.ServeHTTP(w, req)
	return w
}

func (env *testEnv) login(t *testing.T, username string) string {
	t.Helper()
	w := env.do(t, http.MethodPost, "/login", "", gin.H{"username": username, "password": "rahasia"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

func (env *testEnv) scheduleInput() gin.H {
	return gin.H{
		"course_id":   env.course.ID,
		"lecturer_id": env.lecturer.ID,
		"lab_id":      env.lab.ID,
		"day":         "Senin",
		"time_slot":   "08:00-10:00",
		"class_name":  "A",
	}
}

func TestLogin(t *testing.T) {
	env := setupEnv(t)

	env.login(t, "admin")

	w := env.do(t, http.MethodPost, "/login", "", gin.H{"username": "admin", "password": "salah"})
	require.Equal(t, http.StatusUnauthorized, w.Code)

	w = env.do(t, http.MethodPost, "/login", "", gin.H{"username": "ghost", "password": "rahasia"})
	require.Equal(t, http.StatusUnauthorized, w.Code)

	w = env.do(t, http.MethodPost, "/login", "", gin.H{"username": "admin"})
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAuthAndRoleGates(t *testing.T) {
	env := setupEnv(t)

	// Без токена и с мусорным токеном API закрыт.
	w := env.do(t, http.MethodGet, "/api/schedules", "", nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)

	w = env.do(t, http.MethodGet, "/api/schedules", "not-a-jwt", nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)

	lecturerToken := env.login(t, "dosen-a")
	staffToken := env.login(t, "staff")

	// Преподаватель читает расписание, но не справочник пользователей.
	w = env.do(t, http.MethodGet, "/api/schedules", lecturerToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = env.do(t, http.MethodGet, "/api/users", lecturerToken, nil)
	require.Equal(t, http.StatusForbidden, w.Code)

	// Запись расписания преподавателю запрещена на границе маршрута.
	w = env.do(t, http.MethodPost, "/api/schedules", lecturerToken, env.scheduleInput())
	require.Equal(t, http.StatusForbidden, w.Code)

	// Сотрудник видит пользователей, но управлять ими может только админ.
	w = env.do(t, http.MethodGet, "/api/users", staffToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = env.do(t, http.MethodPost, "/api/users", staffToken, gin.H{
		"username": "new", "password": "x", "role": "staff", "full_name": "New",
	})
	require.Equal(t, http.StatusForbidden, w.Code)
}

func TestScheduleCRUDOverHTTP(t *testing.T) {
	env := setupEnv(t)
	staffToken := env.login(t, "staff")

	// Создание.
	w := env.do(t, http.MethodPost, "/api/schedules", staffToken, env.scheduleInput())
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var created models.Schedule
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	require.NotZero(t, created.ID)

	// Конфликт по лаборатории: 409 со ссылкой на мешающее занятие.
	conflicting := env.scheduleInput()
	conflicting["lecturer_id"] = env.other.ID
	w = env.do(t, http.MethodPost, "/api/schedules", staffToken, conflicting)
	require.Equal(t, http.StatusConflict, w.Code)

	var conflictResp struct {
		Conflict struct {
			Kind   string `json:"kind"`
			WithID uint   `json:"with_id"`
		} `json:"conflict"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &conflictResp))
	require.Equal(t, "lab_booked", conflictResp.Conflict.Kind)
	require.Equal(t, created.ID, conflictResp.Conflict.WithID)

	// Валидация: неизвестный день.
	bad := env.scheduleInput()
	bad["day"] = "Minggu"
	w = env.do(t, http.MethodPost, "/api/schedules", staffToken, bad)
	require.Equal(t, http.StatusBadRequest, w.Code)

	// Обновление на свободный интервал.
	moved := env.scheduleInput()
	moved["time_slot"] = "10:00-12:00"
	w = env.do(t, http.MethodPut, fmt.Sprintf("/api/schedules/%d", created.ID), staffToken, moved)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	// Старый интервал освободился.
	w = env.do(t, http.MethodPost, "/api/schedules", staffToken, conflicting)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	// Удаление, повторное удаление того же id дает 404.
	w = env.do(t, http.MethodDelete, fmt.Sprintf("/api/schedules/%d", created.ID), staffToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = env.do(t, http.MethodDelete, fmt.Sprintf("/api/schedules/%d", created.ID), staffToken, nil)
	require.Equal(t, http.StatusNotFound, w.Code)

	w = env.do(t, http.MethodDelete, "/api/schedules/abc", staffToken, nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestScheduleVisibilityOverHTTP(t *testing.T) {
	env := setupEnv(t)
	staffToken := env.login(t, "staff")

	w := env.do(t, http.MethodPost, "/api/schedules", staffToken, env.scheduleInput())
	require.Equal(t, http.StatusCreated, w.Code)

	otherInput := env.scheduleInput()
	otherInput["lecturer_id"] = env.other.ID
	otherInput["time_slot"] = "10:00-12:00"
	w = env.do(t, http.MethodPost, "/api/schedules", staffToken, otherInput)
	require.Equal(t, http.StatusCreated, w.Code)

	listLen := func(w *httptest.ResponseRecorder) int {
		var resp struct {
			Data []models.Schedule `json:"data"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		return len(resp.Data)
	}

	// Сотрудник видит оба занятия, преподаватель - только свое.
	w = env.do(t, http.MethodGet, "/api/schedules", staffToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, 2, listLen(w))

	lecturerToken := env.login(t, "dosen-a")
	w = env.do(t, http.MethodGet, "/api/schedules", lecturerToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, 1, listLen(w))

	// Фильтры не расширяют видимость: чужой интервал для преподавателя пуст.
	w = env.do(t, http.MethodGet, "/api/schedules?time_slot=10:00-12:00", lecturerToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, 0, listLen(w))

	// Для сотрудника тот же фильтр находит занятие.
	w = env.do(t, http.MethodGet, "/api/schedules?time_slot=10:00-12:00", staffToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, 1, listLen(w))
}

func TestScheduleExport(t *testing.T) {
	env := setupEnv(t)
	staffToken := env.login(t, "staff")

	w := env.do(t, http.MethodPost, "/api/schedules", staffToken, env.scheduleInput())
	require.Equal(t, http.StatusCreated, w.Code)

	w = env.do(t, http.MethodGet, "/api/schedules/export", staffToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		w.Header().Get("Content-Type"))
	require.NotZero(t, w.Body.Len())
}
