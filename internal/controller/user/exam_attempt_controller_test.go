package user

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/kotoba-lab/mogi/internal/apperr"
	"github.com/kotoba-lab/mogi/internal/dto"
	"github.com/kotoba-lab/mogi/internal/model"
)

// stubAttemptService returns canned values so the tests exercise only the
// HTTP layer: binding, path parsing and error-to-status mapping.
type stubAttemptService struct {
	startResp    *dto.StartAttemptResponse
	completeResp *dto.CompleteAttemptResponse
	resultsResp  *dto.AttemptResultsResponse
	summaries    []dto.AttemptSummaryDTO
	err          error
}

func (s *stubAttemptService) Start(userID uint, level model.Level) (*dto.StartAttemptResponse, error) {
	return s.startResp, s.err
}

func (s *stubAttemptService) RecordAnswer(attemptID, userID, questionID uint, selectedChoice string) error {
	return s.err
}

func (s *stubAttemptService) SubmitSection(attemptID, userID uint, section model.SectionType, elapsedSeconds int) error {
	return s.err
}

func (s *stubAttemptService) Complete(attemptID, userID uint) (*dto.CompleteAttemptResponse, error) {
	return s.completeResp, s.err
}

func (s *stubAttemptService) GetResults(attemptID, userID uint) (*dto.AttemptResultsResponse, error) {
	return s.resultsResp, s.err
}

func (s *stubAttemptService) ListAttempts(userID uint, level *model.Level) ([]dto.AttemptSummaryDTO, error) {
	return s.summaries, s.err
}

func newTestRouter(svc *stubAttemptService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	ctrl := NewExamAttemptController(svc)
	r := gin.New()
	r.POST("/api/v1/levels/:level/attempts", ctrl.StartAttempt)
	r.POST("/api/v1/attempts/:attempt_id/answers", ctrl.RecordAnswer)
	r.POST("/api/v1/attempts/:attempt_id/sections/:section/submit", ctrl.SubmitSection)
	r.POST("/api/v1/attempts/:attempt_id/complete", ctrl.CompleteAttempt)
	r.GET("/api/v1/attempts/:attempt_id/results", ctrl.GetResults)
	r.GET("/api/v1/attempts", ctrl.ListAttempts)
	return r
}

func doRequest(t *testing.T, r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestStartAttemptOK(t *testing.T) {
	svc := &stubAttemptService{startResp: &dto.StartAttemptResponse{
		AttemptID: 7, UserID: 1, Level: model.LevelN5, ShuffleSeed: "seed",
	}}
	r := newTestRouter(svc)

	w := doRequest(t, r, http.MethodPost, "/api/v1/levels/N5/attempts", `{"user_id":1}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body: %s)", w.Code, w.Body.String())
	}
	var resp dto.StartAttemptResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if resp.AttemptID != 7 {
		t.Errorf("attempt_id = %d, want 7", resp.AttemptID)
	}
}

func TestStartAttemptBadLevel(t *testing.T) {
	r := newTestRouter(&stubAttemptService{})

	w := doRequest(t, r, http.MethodPost, "/api/v1/levels/N9/attempts", `{"user_id":1}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	var resp dto.ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if resp.Code != string(apperr.CodeInvalidLevel) {
		t.Errorf("error code = %s, want invalid_level", resp.Code)
	}
}

func TestStartAttemptMissingBody(t *testing.T) {
	r := newTestRouter(&stubAttemptService{})

	w := doRequest(t, r, http.MethodPost, "/api/v1/levels/N5/attempts", "")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}

func TestErrorStatusMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"insufficient pool", apperr.InsufficientPool(model.SectionListening, 15, 3), http.StatusUnprocessableEntity, "insufficient_content_pool"},
		{"not found", apperr.NotFound("attempt", 9), http.StatusNotFound, "not_found"},
		{"not owner masked as not found", apperr.NotOwner(9), http.StatusNotFound, "not_found"},
		{"already completed", apperr.AlreadyCompleted(9), http.StatusConflict, "already_completed"},
		{"section locked", apperr.SectionLocked(model.SectionVocabulary), http.StatusConflict, "section_locked"},
		{"missing section", apperr.MissingSections([]model.SectionType{model.SectionListening}), http.StatusConflict, "missing_section"},
		{"infrastructure failure", errors.New("connection refused"), http.StatusInternalServerError, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newTestRouter(&stubAttemptService{err: tt.err})

			w := doRequest(t, r, http.MethodPost, "/api/v1/attempts/9/answers",
				`{"user_id":1,"question_id":3,"selected_choice":"A"}`)
			if w.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d (body: %s)", w.Code, tt.wantStatus, w.Body.String())
			}
			var resp dto.ErrorResponse
			if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
				t.Fatalf("unmarshal response: %v", err)
			}
			if resp.Code != tt.wantCode {
				t.Errorf("error code = %q, want %q", resp.Code, tt.wantCode)
			}
		})
	}
}

func TestNotOwnerBodyMatchesNotFound(t *testing.T) {
	// The two bodies must be indistinguishable so probing for someone
	// else's attempt ids learns nothing.
	owner := newTestRouter(&stubAttemptService{err: apperr.NotOwner(9)})
	missing := newTestRouter(&stubAttemptService{err: apperr.NotFound("attempt", 9)})
	body := `{"user_id":2,"question_id":3,"selected_choice":"A"}`

	a := doRequest(t, owner, http.MethodPost, "/api/v1/attempts/9/answers", body)
	b := doRequest(t, missing, http.MethodPost, "/api/v1/attempts/9/answers", body)

	if a.Code != b.Code {
		t.Errorf("status differs: %d vs %d", a.Code, b.Code)
	}
	if a.Body.String() != b.Body.String() {
		t.Errorf("bodies differ: %s vs %s", a.Body.String(), b.Body.String())
	}
}

func TestSubmitSectionBadSection(t *testing.T) {
	r := newTestRouter(&stubAttemptService{})

	w := doRequest(t, r, http.MethodPost, "/api/v1/attempts/1/sections/essay/submit",
		`{"user_id":1,"elapsed_seconds":100}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	var resp dto.ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if resp.Code != string(apperr.CodeInvalidSection) {
		t.Errorf("error code = %s, want invalid_section", resp.Code)
	}
}

func TestBadAttemptIDParam(t *testing.T) {
	r := newTestRouter(&stubAttemptService{})

	w := doRequest(t, r, http.MethodPost, "/api/v1/attempts/abc/complete", `{"user_id":1}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}

func TestGetResultsRequiresUserID(t *testing.T) {
	r := newTestRouter(&stubAttemptService{resultsResp: &dto.AttemptResultsResponse{}})

	w := doRequest(t, r, http.MethodGet, "/api/v1/attempts/1/results", "")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}

	w = doRequest(t, r, http.MethodGet, "/api/v1/attempts/1/results?user_id=1", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body: %s)", w.Code, w.Body.String())
	}
}

func TestListAttemptsLevelFilter(t *testing.T) {
	svc := &stubAttemptService{summaries: []dto.AttemptSummaryDTO{{ID: 1}, {ID: 2}}}
	r := newTestRouter(svc)

	w := doRequest(t, r, http.MethodGet, "/api/v1/attempts?user_id=1&level=N3", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body: %s)", w.Code, w.Body.String())
	}

	w = doRequest(t, r, http.MethodGet, "/api/v1/attempts?user_id=1&level=bogus", "")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}
