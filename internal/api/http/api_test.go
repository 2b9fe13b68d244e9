package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/spec-kit/diabetes-care-service/internal/api/http/handlers"
	"github.com/spec-kit/diabetes-care-service/internal/auth"
	"github.com/spec-kit/diabetes-care-service/internal/config"
	"github.com/spec-kit/diabetes-care-service/internal/domain"
	"github.com/spec-kit/diabetes-care-service/internal/events"
	"github.com/spec-kit/diabetes-care-service/internal/observability"
	"github.com/spec-kit/diabetes-care-service/internal/repository"
	"github.com/spec-kit/diabetes-care-service/internal/service"
)

type testServer struct {
	app         *fiber.App
	authService *service.AuthService
	patients    *fakePatientRepo
	endos       *fakeEndoRepo
	readings    *fakeReadingRepo
}

// Interface conformance for the fakes.
var (
	_ repository.PatientRepository         = (*fakePatientRepo)(nil)
	_ repository.EndocrinologistRepository = (*fakeEndoRepo)(nil)
	_ repository.ReadingRepository         = (*fakeReadingRepo)(nil)
	_ repository.EquipmentRepository       = (*fakeEquipmentRepo)(nil)
	_ repository.ConsumableRepository      = (*fakeConsumableRepo)(nil)
)

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	patients := newFakePatientRepo()
	endos := newFakeEndoRepo()
	readings := &fakeReadingRepo{}

	authCfg := config.AuthConfig{
		JWTSecret:             "test-secret",
		AccessTokenTTLMinutes: 60,
		BcryptCost:            bcrypt.MinCost,
	}
	authService := service.NewAuthService(authCfg, service.AuthDependencies{
		PatientRepo:         patients,
		EndocrinologistRepo: endos,
	})
	patientService := service.NewPatientService(patients, bcrypt.MinCost)
	recordService := service.NewRecordService(service.RecordDependencies{
		ReadingRepo:    readings,
		EquipmentRepo:  &fakeEquipmentRepo{},
		ConsumableRepo: &fakeConsumableRepo{},
		PatientRepo:    patients,
		Dispatcher:     events.NewInMemoryDispatcher(),
	})

	app := fiber.New()
	RegisterMiddlewares(app, zap.NewNop(), observability.NewMetrics(), 5*time.Second)
	RegisterRoutes(app, RouteConfig{
		Auth:           handlers.NewAuthHandler(authService),
		Patients:       handlers.NewPatientsHandler(patientService, recordService),
		Me:             handlers.NewMeHandler(patientService, recordService),
		Records:        handlers.NewRecordsHandler(recordService),
		AuthMiddleware: auth.NewAuthMiddleware(authService.TokenManager()),
	})

	return &testServer{
		app:         app,
		authService: authService,
		patients:    patients,
		endos:       endos,
		readings:    readings,
	}
}

func (ts *testServer) seedPatient(t *testing.T, username, password, fullName string) *domain.Patient {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	patient := &domain.Patient{
		Username:     username,
		PasswordHash: string(hash),
		FullName:     fullName,
		DiabetesType: "type 1",
	}
	require.NoError(t, ts.patients.Create(context.Background(), patient))
	return patient
}

func (ts *testServer) seedEndo(t *testing.T, username, password, fullName string) *domain.Endocrinologist {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	endo := &domain.Endocrinologist{
		Username:     username,
		PasswordHash: string(hash),
		FullName:     fullName,
	}
	require.NoError(t, ts.endos.Create(context.Background(), endo))
	return endo
}

func (ts *testServer) tokenFor(t *testing.T, identity domain.Identity) string {
	t.Helper()
	token, _, err := ts.authService.TokenManager().Issue(identity)
	require.NoError(t, err)
	return token
}

func (ts *testServer) request(t *testing.T, method, path, token string, body any) *http.Response {
	t.Helper()
	var buf io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		require.NoError(t, err)
		buf = bytes.NewReader(encoded)
	}
	req, err := http.NewRequest(method, path, buf)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := ts.app.Test(req, 5000)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	defer resp.Body.Close()
	var out map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func TestLoginFlow(t *testing.T) {
	ts := newTestServer(t)
	alice := ts.seedPatient(t, "alice", "hunter2", "Alice Smith")

	t.Run("correct credentials return decodable token", func(t *testing.T) {
		resp := ts.request(t, http.MethodPost, "/api/login", "", map[string]string{
			"username": "alice", "password": "hunter2", "role": "patient",
		})
		require.Equal(t, http.StatusOK, resp.StatusCode)

		body := decodeBody(t, resp)
		assert.Equal(t, "patient", body["role"])

		identity, err := ts.authService.TokenManager().Verify(body["token"].(string))
		require.NoError(t, err)
		assert.Equal(t, alice.ID, identity.SubjectID)
		assert.Equal(t, domain.RolePatient, identity.Role)
	})

	t.Run("wrong password and unknown username are indistinguishable", func(t *testing.T) {
		wrongPW := ts.request(t, http.MethodPost, "/api/login", "", map[string]string{
			"username": "alice", "password": "wrong", "role": "patient",
		})
		require.Equal(t, http.StatusUnauthorized, wrongPW.StatusCode)
		wrongPWBody := decodeBody(t, wrongPW)

		unknown := ts.request(t, http.MethodPost, "/api/login", "", map[string]string{
			"username": "nobody", "password": "whatever", "role": "patient",
		})
		require.Equal(t, http.StatusUnauthorized, unknown.StatusCode)
		unknownBody := decodeBody(t, unknown)

		assert.Equal(t, wrongPWBody, unknownBody)
	})

	t.Run("bad role is a validation error", func(t *testing.T) {
		resp := ts.request(t, http.MethodPost, "/api/login", "", map[string]string{
			"username": "alice", "password": "hunter2", "role": "admin",
		})
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("usernames are unique per role table only", func(t *testing.T) {
		ts.seedEndo(t, "alice", "different-pw", "Dr. Alice Jones")

		resp := ts.request(t, http.MethodPost, "/api/login", "", map[string]string{
			"username": "alice", "password": "different-pw", "role": "endocrinologist",
		})
		require.Equal(t, http.StatusOK, resp.StatusCode)
		body := decodeBody(t, resp)
		assert.Equal(t, "endocrinologist", body["role"])
	})
}

func TestAccessControlGate(t *testing.T) {
	ts := newTestServer(t)
	patient := ts.seedPatient(t, "bob", "pw", "Bob Jones")
	endo := ts.seedEndo(t, "dr-lee", "pw", "Dr. Lee")

	t.Run("no authorization header", func(t *testing.T) {
		resp := ts.request(t, http.MethodGet, "/api/patients", "", nil)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("garbage header", func(t *testing.T) {
		req, err := http.NewRequest(http.MethodGet, "/api/patients", nil)
		require.NoError(t, err)
		req.Header.Set("Authorization", "Basic abc123")
		resp, err := ts.app.Test(req, 5000)
		require.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("invalid token", func(t *testing.T) {
		resp := ts.request(t, http.MethodGet, "/api/patients", "not.a.token", nil)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("patient token on clinician route", func(t *testing.T) {
		token := ts.tokenFor(t, domain.Identity{SubjectID: patient.ID, Role: domain.RolePatient})
		resp := ts.request(t, http.MethodGet, "/api/patients", token, nil)
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	})

	t.Run("clinician token on patient route", func(t *testing.T) {
		token := ts.tokenFor(t, domain.Identity{SubjectID: endo.ID, Role: domain.RoleEndocrinologist})
		resp := ts.request(t, http.MethodGet, "/api/me", token, nil)
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	})

	t.Run("clinician token passes through", func(t *testing.T) {
		token := ts.tokenFor(t, domain.Identity{SubjectID: endo.ID, Role: domain.RoleEndocrinologist})
		resp := ts.request(t, http.MethodGet, "/api/patients", token, nil)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})
}

func TestOwnershipRule(t *testing.T) {
	ts := newTestServer(t)
	alice := ts.seedPatient(t, "alice", "pw", "Alice Smith")
	bob := ts.seedPatient(t, "bob", "pw", "Bob Jones")
	endo := ts.seedEndo(t, "dr-lee", "pw", "Dr. Lee")

	aliceToken := ts.tokenFor(t, domain.Identity{SubjectID: alice.ID, Role: domain.RolePatient})
	endoToken := ts.tokenFor(t, domain.Identity{SubjectID: endo.ID, Role: domain.RoleEndocrinologist})

	reading := func(patientID int64) map[string]any {
		return map[string]any{
			"patient_id":    patientID,
			"glucose_level": 6.2,
			"reading_time":  time.Now().Format(time.RFC3339),
		}
	}

	t.Run("patient posting for another patient", func(t *testing.T) {
		resp := ts.request(t, http.MethodPost, "/api/readings", aliceToken, reading(bob.ID))
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	})

	t.Run("patient posting for self", func(t *testing.T) {
		resp := ts.request(t, http.MethodPost, "/api/readings", aliceToken, reading(alice.ID))
		assert.Equal(t, http.StatusCreated, resp.StatusCode)
	})

	t.Run("clinician posting for any patient", func(t *testing.T) {
		resp := ts.request(t, http.MethodPost, "/api/readings", endoToken, reading(bob.ID))
		assert.Equal(t, http.StatusCreated, resp.StatusCode)
	})

	t.Run("ownership applies to equipment and consumables", func(t *testing.T) {
		equipment := ts.request(t, http.MethodPost, "/api/equipment", aliceToken, map[string]any{
			"patient_id": bob.ID, "name": "glucometer",
		})
		assert.Equal(t, http.StatusForbidden, equipment.StatusCode)

		consumable := ts.request(t, http.MethodPost, "/api/consumables", aliceToken, map[string]any{
			"patient_id": bob.ID, "name": "test strips",
		})
		assert.Equal(t, http.StatusForbidden, consumable.StatusCode)
	})
}

func TestReadingValidation(t *testing.T) {
	ts := newTestServer(t)
	alice := ts.seedPatient(t, "alice", "pw", "Alice Smith")
	token := ts.tokenFor(t, domain.Identity{SubjectID: alice.ID, Role: domain.RolePatient})

	t.Run("non-positive glucose", func(t *testing.T) {
		resp := ts.request(t, http.MethodPost, "/api/readings", token, map[string]any{
			"patient_id":    alice.ID,
			"glucose_level": -1.0,
			"reading_time":  time.Now().Format(time.RFC3339),
		})
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("missing reading time", func(t *testing.T) {
		resp := ts.request(t, http.MethodPost, "/api/readings", token, map[string]any{
			"patient_id":    alice.ID,
			"glucose_level": 6.0,
		})
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestPatientManagement(t *testing.T) {
	ts := newTestServer(t)
	endo := ts.seedEndo(t, "dr-lee", "pw", "Dr. Lee")
	token := ts.tokenFor(t, domain.Identity{SubjectID: endo.ID, Role: domain.RoleEndocrinologist})

	t.Run("create requires mandatory fields", func(t *testing.T) {
		resp := ts.request(t, http.MethodPost, "/api/patients", token, map[string]any{
			"username": "carol", "password": "pw",
		})
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("create and list", func(t *testing.T) {
		created := ts.request(t, http.MethodPost, "/api/patients", token, map[string]any{
			"username": "carol", "password": "pw", "full_name": "Carol White",
			"diabetes_type": "type 2", "date_of_birth": "1980-04-12",
		})
		require.Equal(t, http.StatusCreated, created.StatusCode)

		list := ts.request(t, http.MethodGet, "/api/patients", token, nil)
		require.Equal(t, http.StatusOK, list.StatusCode)
		body := decodeBody(t, list)
		assert.Len(t, body["data"], 1)
	})

	t.Run("update missing patient is 404", func(t *testing.T) {
		resp := ts.request(t, http.MethodPut, "/api/patients/999", token, map[string]any{
			"full_name": "Nobody", "diabetes_type": "type 1",
		})
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("delete missing patient is 404", func(t *testing.T) {
		resp := ts.request(t, http.MethodDelete, "/api/patients/999", token, nil)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}

func TestPerPatientListings(t *testing.T) {
	ts := newTestServer(t)
	alice := ts.seedPatient(t, "alice", "pw", "Alice Smith")
	endo := ts.seedEndo(t, "dr-lee", "pw", "Dr. Lee")
	token := ts.tokenFor(t, domain.Identity{SubjectID: endo.ID, Role: domain.RoleEndocrinologist})

	t.Run("missing patient is 404", func(t *testing.T) {
		resp := ts.request(t, http.MethodGet, "/api/patients/999/readings", token, nil)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("existing patient with no rows is an empty list", func(t *testing.T) {
		for _, path := range []string{"/readings", "/equipment", "/consumables"} {
			resp := ts.request(t, http.MethodGet, "/api/patients/1"+path, token, nil)
			require.Equal(t, http.StatusOK, resp.StatusCode, path)
			body := decodeBody(t, resp)
			assert.Empty(t, body["data"], path)
		}
	})

	t.Run("recorded readings show up", func(t *testing.T) {
		reading := &domain.Reading{PatientID: alice.ID, GlucoseLevel: 7.5, ReadingTime: time.Now()}
		require.NoError(t, ts.readings.Create(context.Background(), reading))

		resp := ts.request(t, http.MethodGet, "/api/patients/1/readings", token, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		body := decodeBody(t, resp)
		assert.Len(t, body["data"], 1)
	})
}

func TestMeRoutes(t *testing.T) {
	ts := newTestServer(t)
	alice := ts.seedPatient(t, "alice", "pw", "Alice Smith")
	token := ts.tokenFor(t, domain.Identity{SubjectID: alice.ID, Role: domain.RolePatient})

	t.Run("profile is scoped to the caller", func(t *testing.T) {
		resp := ts.request(t, http.MethodGet, "/api/me", token, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		body := decodeBody(t, resp)
		data := body["data"].(map[string]any)
		assert.Equal(t, "alice", data["username"])
		assert.NotContains(t, data, "password_hash")
	})

	t.Run("readings are scoped to the caller", func(t *testing.T) {
		bob := ts.seedPatient(t, "bob", "pw", "Bob Jones")
		require.NoError(t, ts.readings.Create(context.Background(),
			&domain.Reading{PatientID: alice.ID, GlucoseLevel: 5.5, ReadingTime: time.Now()}))
		require.NoError(t, ts.readings.Create(context.Background(),
			&domain.Reading{PatientID: bob.ID, GlucoseLevel: 9.9, ReadingTime: time.Now()}))

		resp := ts.request(t, http.MethodGet, "/api/me/readings", token, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		body := decodeBody(t, resp)
		assert.Len(t, body["data"], 1)
	})
}

func TestRegisterEndocrinologist(t *testing.T) {
	ts := newTestServer(t)

	resp := ts.request(t, http.MethodPost, "/api/register-endocrinologist", "", map[string]string{
		"username": "dr-lee", "password": "pw", "full_name": "Dr. Lee",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	login := ts.request(t, http.MethodPost, "/api/login", "", map[string]string{
		"username": "dr-lee", "password": "pw", "role": "endocrinologist",
	})
	assert.Equal(t, http.StatusOK, login.StatusCode)
}
