package submitter

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"carrier-portal/internal/common/logger"
	"carrier-portal/internal/models"
)

// ==========================
// Test Helpers
// ==========================

func newTestClient(t *testing.T, baseURL string) *Client {
	t.Helper()
	return NewClient(baseURL, 2*time.Second, 5*time.Second, logger.NewTestLogger(t))
}

func jsonResponse(t *testing.T, w http.ResponseWriter, status int, body map[string]interface{}) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	require.NoError(t, json.NewEncoder(w).Encode(body))
}

func sampleForm() *models.ApplicationForm {
	return &models.ApplicationForm{
		FullName:          "John Carter",
		CompanyAddress:    "100 Main St",
		BusinessEIN:       "12-3456789",
		Phone:             "5551234567",
		Email:             "john@example.com",
		BusinessStructure: "LLC",
		Vins:              []string{"VIN1", "VIN2"},
		MaterialsHauled:   []string{"Sand", "Gravel"},
		HasTarp:           "Yes",
		HasBackupPlan:     "No",
	}
}

// ==========================
// Identifier Extraction
// ==========================

func TestSubmit_ApplicationIDExtraction(t *testing.T) {
	tests := []struct {
		name   string
		body   map[string]interface{}
		wantID string
	}{
		{
			name:   "top-level application_id",
			body:   map[string]interface{}{"application_id": "app-1"},
			wantID: "app-1",
		},
		{
			name:   "nested under data",
			body:   map[string]interface{}{"data": map[string]interface{}{"application_id": "app-2"}},
			wantID: "app-2",
		},
		{
			name:   "fallback to id",
			body:   map[string]interface{}{"id": "app-3"},
			wantID: "app-3",
		},
		{
			name:   "fallback to applicationId",
			body:   map[string]interface{}{"applicationId": "app-4"},
			wantID: "app-4",
		},
		{
			name: "application_id wins over id",
			body: map[string]interface{}{
				"id":             "loser",
				"application_id": "winner",
			},
			wantID: "winner",
		},
		{
			name: "nested application_id wins over top-level id",
			body: map[string]interface{}{
				"id":   "loser",
				"data": map[string]interface{}{"application_id": "winner"},
			},
			wantID: "winner",
		},
		{
			name:   "numeric identifier normalized to string",
			body:   map[string]interface{}{"application_id": float64(12345)},
			wantID: "12345",
		},
		{
			name:   "no identifier keys",
			body:   map[string]interface{}{"message": "created"},
			wantID: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				jsonResponse(t, w, http.StatusOK, tt.body)
			}))
			defer srv.Close()

			outcome, err := newTestClient(t, srv.URL).Submit(context.Background(), 1, sampleForm(), "", "token")

			require.NoError(t, err)
			assert.Equal(t, Accepted, outcome.Kind)
			assert.Equal(t, tt.wantID, outcome.ApplicationID)
		})
	}
}

// ==========================
// URL Formation & Payloads
// ==========================

func TestSubmit_URLFormation(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		jsonResponse(t, w, http.StatusOK, map[string]interface{}{"application_id": "app-1"})
	}))
	defer srv.Close()

	client := newTestClient(t, srv.URL+"/") // trailing slash must not double up

	_, err := client.Submit(context.Background(), 1, sampleForm(), "", "token")
	require.NoError(t, err)
	assert.Equal(t, "/api/application/step1", gotPath)

	_, err = client.Submit(context.Background(), 4, sampleForm(), "app-1", "token")
	require.NoError(t, err)
	assert.Equal(t, "/api/application/app-1/step4", gotPath)
}

func TestSubmit_MissingIdentifierPrecondition(t *testing.T) {
	client := newTestClient(t, "http://localhost:1")

	for step := 2; step <= 7; step++ {
		_, err := client.Submit(context.Background(), step, sampleForm(), "", "token")
		assert.ErrorIs(t, err, ErrMissingApplicationID)
	}
}

func TestSubmit_Step2Payload(t *testing.T) {
	var got map[string]interface{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		jsonResponse(t, w, http.StatusOK, map[string]interface{}{})
	}))
	defer srv.Close()

	_, err := newTestClient(t, srv.URL).Submit(context.Background(), 2, sampleForm(), "app-1", "token")
	require.NoError(t, err)

	// VIN entries are comma-joined into one field; answers become booleans.
	assert.Equal(t, "VIN1,VIN2", got["truck_vin"])
	assert.Equal(t, true, got["has_tarp"])
	assert.Equal(t, false, got["has_backup_plan"])
	assert.Equal(t, false, got["has_dot_certificate"]) // unanswered reads as No

	wantKeys := []string{
		"ownership_status", "equipment_type", "truck_year", "truck_make_model",
		"truck_vin", "gvwr", "has_tarp", "has_additional_trucks",
		"has_dot_certificate", "has_backup_plan",
	}
	assert.Len(t, got, len(wantKeys))
	for _, key := range wantKeys {
		assert.Contains(t, got, key)
	}
}

func TestSubmit_Step3Payload(t *testing.T) {
	var got map[string]interface{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		jsonResponse(t, w, http.StatusOK, map[string]interface{}{})
	}))
	defer srv.Close()

	_, err := newTestClient(t, srv.URL).Submit(context.Background(), 3, sampleForm(), "app-1", "token")
	require.NoError(t, err)

	assert.Equal(t, "Sand,Gravel", got["materials_hauled"])
	assert.Contains(t, got, "experience_years")
	assert.Contains(t, got, "cdl_class")
}

func TestSubmit_BearerHeader(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		jsonResponse(t, w, http.StatusOK, map[string]interface{}{})
	}))
	defer srv.Close()

	_, err := newTestClient(t, srv.URL).Submit(context.Background(), 1, sampleForm(), "", "tok-123")
	require.NoError(t, err)
	assert.Equal(t, "Bearer tok-123", gotAuth)
}

// ==========================
// Outcome Taxonomy
// ==========================

func TestSubmit_FieldErrorsRejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		jsonResponse(t, w, http.StatusUnprocessableEntity, map[string]interface{}{
			"message": "validation failed",
			"errors": map[string]interface{}{
				"phone": []interface{}{"too short", "invalid format"},
				"ein":   "malformed",
			},
		})
	}))
	defer srv.Close()

	outcome, err := newTestClient(t, srv.URL).Submit(context.Background(), 1, sampleForm(), "", "token")

	require.NoError(t, err)
	assert.Equal(t, Rejected, outcome.Kind)
	assert.Equal(t, "validation failed", outcome.Reason)
	assert.Equal(t, []string{"too short", "invalid format"}, outcome.FieldErrors["phone"])
	assert.Equal(t, []string{"malformed"}, outcome.FieldErrors["ein"])
}

func TestSubmit_ExplicitStatusFalseRejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		jsonResponse(t, w, http.StatusOK, map[string]interface{}{
			"status":  false,
			"message": "duplicate application",
		})
	}))
	defer srv.Close()

	outcome, err := newTestClient(t, srv.URL).Submit(context.Background(), 1, sampleForm(), "", "token")

	require.NoError(t, err)
	assert.Equal(t, Rejected, outcome.Kind)
	assert.Equal(t, "duplicate application", outcome.Reason)
}

func TestSubmit_HTMLErrorPage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("<html><body>502 Bad Gateway</body></html>"))
	}))
	defer srv.Close()

	outcome, err := newTestClient(t, srv.URL).Submit(context.Background(), 1, sampleForm(), "", "token")

	require.NoError(t, err)
	assert.Equal(t, TransportFailure, outcome.Kind)
	assert.Equal(t, "server error, please try again later", outcome.Reason)
	assert.Equal(t, http.StatusInternalServerError, outcome.StatusCode)
}

func TestSubmit_Unauthorized(t *testing.T) {
	tests := []struct {
		name        string
		contentType string
		body        string
	}{
		{name: "json body", contentType: "application/json", body: `{"message":"token expired"}`},
		{name: "plain body", contentType: "text/plain", body: "unauthorized"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", tt.contentType)
				w.WriteHeader(http.StatusUnauthorized)
				w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			outcome, err := newTestClient(t, srv.URL).Submit(context.Background(), 1, sampleForm(), "", "token")

			require.NoError(t, err)
			assert.Equal(t, TransportFailure, outcome.Kind)
			assert.True(t, outcome.AuthExpired)
			assert.Equal(t, "session expired, please sign in again", outcome.Reason)
		})
	}
}

func TestSubmit_Forbidden(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	outcome, err := newTestClient(t, srv.URL).Submit(context.Background(), 1, sampleForm(), "", "token")

	require.NoError(t, err)
	assert.Equal(t, TransportFailure, outcome.Kind)
	assert.False(t, outcome.AuthExpired)
	assert.Equal(t, "you do not have permission to perform this action", outcome.Reason)
}

func TestSubmit_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(300 * time.Millisecond)
		jsonResponse(t, w, http.StatusOK, map[string]interface{}{})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, 50*time.Millisecond, 50*time.Millisecond, logger.NewTestLogger(t))

	outcome, err := client.Submit(context.Background(), 1, sampleForm(), "", "token")

	require.NoError(t, err)
	assert.Equal(t, TransportFailure, outcome.Kind)
	assert.Equal(t, "timeout", outcome.Reason)
}

func TestSubmit_ConnectionRefused(t *testing.T) {
	client := newTestClient(t, "http://localhost:1")

	outcome, err := client.Submit(context.Background(), 1, sampleForm(), "", "token")

	require.NoError(t, err)
	assert.Equal(t, TransportFailure, outcome.Kind)
	assert.Equal(t, "connection problem, please check your network and try again", outcome.Reason)
}

func TestSubmit_MalformedJSONBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("{truncated"))
	}))
	defer srv.Close()

	outcome, err := newTestClient(t, srv.URL).Submit(context.Background(), 1, sampleForm(), "", "token")

	require.NoError(t, err)
	assert.Equal(t, TransportFailure, outcome.Kind)
	assert.Equal(t, "unexpected response from the server, please try again", outcome.Reason)
}

// ==========================
// Finalization
// ==========================

func TestFinalize(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		body        map[string]interface{}
		wantSuccess bool
		wantMsg     string
	}{
		{
			name:        "accepted",
			status:      http.StatusOK,
			body:        map[string]interface{}{"message": "application complete"},
			wantSuccess: true,
			wantMsg:     "application complete",
		},
		{
			name:        "explicit failure",
			status:      http.StatusOK,
			body:        map[string]interface{}{"success": false, "message": "missing documents"},
			wantSuccess: false,
			wantMsg:     "missing documents",
		},
		{
			name:        "server error without message",
			status:      http.StatusBadRequest,
			body:        map[string]interface{}{},
			wantSuccess: false,
			wantMsg:     "unexpected response from the server, please try again",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotPath string
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotPath = r.URL.Path
				jsonResponse(t, w, tt.status, tt.body)
			}))
			defer srv.Close()

			result, err := newTestClient(t, srv.URL).Finalize(context.Background(), "app-9", "token")

			require.NoError(t, err)
			assert.Equal(t, "/api/application/app-9/finalize", gotPath)
			assert.Equal(t, tt.wantSuccess, result.Success)
			assert.Equal(t, tt.wantMsg, result.Message)
		})
	}
}

func TestFinalize_RequiresIdentifier(t *testing.T) {
	_, err := newTestClient(t, "http://localhost:1").Finalize(context.Background(), "", "token")
	assert.ErrorIs(t, err, ErrMissingApplicationID)
}

// ==========================
// Upload Timeout Selection
// ==========================

func TestStepCarriesFiles(t *testing.T) {
	form := &models.ApplicationForm{}
	assert.False(t, stepCarriesFiles(2, form))

	form.TruckPhotos = []models.Attachment{{ID: "a1"}}
	assert.True(t, stepCarriesFiles(2, form))

	form.CDLUpload = &models.Attachment{ID: "a2"}
	assert.True(t, stepCarriesFiles(3, form))
	assert.False(t, stepCarriesFiles(5, form))

	form.COIUpload = &models.Attachment{ID: "a3"}
	assert.True(t, stepCarriesFiles(5, form))

	assert.False(t, stepCarriesFiles(1, form))
	assert.False(t, stepCarriesFiles(4, form))
}
