package http

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type SubmitRatingRequest struct {
	SubmissionID string `json:"submission_id"`
	Scores       []int  `json:"scores"`
	Comment      string `json:"comment,omitempty"`
}

type RatingResponse struct {
	RatingID     string `json:"rating_id"`
	SubmissionID string `json:"submission_id"`
	ExpertID     string `json:"expert_id"`
	ExpertName   string `json:"expert_name,omitempty"`
	Scores       []int  `json:"scores"`
	TotalScore   int    `json:"total_score"`
	Comment      string `json:"comment,omitempty"`
	WasUpdate    bool   `json:"was_update,omitempty"`
	CreatedAt    string `json:"created_at"`
	UpdatedAt    string `json:"updated_at"`
}

type RatingListResponse struct {
	Items []RatingResponse `json:"items"`
}

type AggregateResponse struct {
	SubmissionID string  `json:"submission_id"`
	Status       string  `json:"status"`
	AvgScore     float64 `json:"avg_score"`
	RatingCount  int     `json:"rating_count"`
}

type LeaderboardItem struct {
	Rank            int     `json:"rank"`
	SubmissionID    string  `json:"submission_id"`
	Title           string  `json:"title"`
	ParticipantName string  `json:"participant"`
	Type            string  `json:"type"`
	AvgScore        float64 `json:"avg_score"`
	RatingCount     int     `json:"rating_count"`
}

type LeaderboardResponse struct {
	Items []LeaderboardItem `json:"items"`
}
