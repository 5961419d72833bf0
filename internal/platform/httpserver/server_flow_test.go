package httpserver

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	ratinghttp "themis/contexts/judging/rating-engine/transport/http"
	submissionhttp "themis/contexts/judging/submission-service/transport/http"
)

func TestJudgingEndToEnd(t *testing.T) {
	server := newTestServer()
	adminToken := loginAs(t, server, "Chair", testAdminCode)

	created := provisionExpert(t, server, adminToken, "Ivan")
	expertToken := loginAs(t, server, "Ivan", created.AccessCode)

	body, _ := json.Marshal(submissionhttp.CreateSubmissionRequest{
		ParticipantName: "Anna",
		Type:            "essay",
		Title:           "Why we automate",
		Content:         "An essay on automating the school paper.",
	})
	req := httptest.NewRequest(http.MethodPost, "/api/submissions", bytes.NewReader(body))
	req.Header.Set("Authorization", "Bearer "+adminToken)
	rr := httptest.NewRecorder()
	server.mux.ServeHTTP(rr, req)
	if rr.Code != http.StatusCreated {
		t.Fatalf("create submission failed: %d body=%s", rr.Code, rr.Body.String())
	}
	var submission submissionhttp.SubmissionResponse
	if err := json.NewDecoder(rr.Body).Decode(&submission); err != nil {
		t.Fatalf("decode submission: %v", err)
	}

	body, _ = json.Marshal(ratinghttp.SubmitRatingRequest{
		SubmissionID: submission.ID,
		Scores:       []int{6, 5, 4, 4},
		Comment:      "solid work",
	})
	req = httptest.NewRequest(http.MethodPost, "/api/ratings", bytes.NewReader(body))
	req.Header.Set("Authorization", "Bearer "+expertToken)
	rr = httptest.NewRecorder()
	server.mux.ServeHTTP(rr, req)
	if rr.Code != http.StatusCreated {
		t.Fatalf("submit rating failed: %d body=%s", rr.Code, rr.Body.String())
	}
	var rating ratinghttp.RatingResponse
	if err := json.NewDecoder(rr.Body).Decode(&rating); err != nil {
		t.Fatalf("decode rating: %v", err)
	}
	if rating.TotalScore != 19 {
		t.Fatalf("expected total 19, got %d", rating.TotalScore)
	}

	body, _ = json.Marshal(ratinghttp.SubmitRatingRequest{
		SubmissionID: submission.ID,
		Scores:       []int{7, 6, 5, 5},
		Comment:      "better on a second read",
	})
	req = httptest.NewRequest(http.MethodPost, "/api/ratings", bytes.NewReader(body))
	req.Header.Set("Authorization", "Bearer "+expertToken)
	rr = httptest.NewRecorder()
	server.mux.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("revise rating failed: %d body=%s", rr.Code, rr.Body.String())
	}
	var revised ratinghttp.RatingResponse
	if err := json.NewDecoder(rr.Body).Decode(&revised); err != nil {
		t.Fatalf("decode revised rating: %v", err)
	}
	if !revised.WasUpdate || revised.TotalScore != 23 {
		t.Fatalf("expected overwritten rating with total 23, got %+v", revised)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/submissions", nil)
	rr = httptest.NewRecorder()
	server.mux.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("list submissions failed: %d", rr.Code)
	}
	var list submissionhttp.SubmissionListResponse
	if err := json.NewDecoder(rr.Body).Decode(&list); err != nil {
		t.Fatalf("decode submission list: %v", err)
	}
	if len(list.Items) != 1 {
		t.Fatalf("expected 1 submission, got %d", len(list.Items))
	}
	if list.Items[0].Status != "reviewed" || list.Items[0].AvgScore != 23 {
		t.Fatalf("submission must reflect the fresh rating, got %+v", list.Items[0])
	}

	req = httptest.NewRequest(http.MethodGet, "/api/ratings?submission_id="+submission.ID, nil)
	req.Header.Set("Authorization", "Bearer "+expertToken)
	rr = httptest.NewRecorder()
	server.mux.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("list ratings failed: %d body=%s", rr.Code, rr.Body.String())
	}
	var ratings ratinghttp.RatingListResponse
	if err := json.NewDecoder(rr.Body).Decode(&ratings); err != nil {
		t.Fatalf("decode rating list: %v", err)
	}
	if len(ratings.Items) != 1 || ratings.Items[0].ExpertName != "Ivan" {
		t.Fatalf("expected one rating with joined expert name, got %+v", ratings.Items)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/leaderboard", nil)
	rr = httptest.NewRecorder()
	server.mux.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("leaderboard failed: %d", rr.Code)
	}
	var board ratinghttp.LeaderboardResponse
	if err := json.NewDecoder(rr.Body).Decode(&board); err != nil {
		t.Fatalf("decode leaderboard: %v", err)
	}
	if len(board.Items) != 1 {
		t.Fatalf("expected 1 leaderboard entry, got %d", len(board.Items))
	}
	entry := board.Items[0]
	if entry.Rank != 1 || entry.SubmissionID != submission.ID || entry.AvgScore != 23 {
		t.Fatalf("unexpected leaderboard entry: %+v", entry)
	}
}
