package http

// CreateSubmissionRequest registers a new competition entry.
type CreateSubmissionRequest struct {
	ParticipantName string `json:"participant_name"`
	TeamName        string `json:"team_name,omitempty"`
	Category        string `json:"category,omitempty"`
	Type            string `json:"type"`
	Title           string `json:"title"`
	Content         string `json:"content"`
	VideoURL        string `json:"video_url,omitempty"`
}

// SubmissionResponse is one entry with its derived review state.
type SubmissionResponse struct {
	ID              string  `json:"id"`
	ParticipantName string  `json:"participant_name"`
	TeamName        string  `json:"team_name,omitempty"`
	Category        string  `json:"category,omitempty"`
	Type            string  `json:"type"`
	Title           string  `json:"title"`
	Content         string  `json:"content"`
	VideoURL        string  `json:"video_url,omitempty"`
	Status          string  `json:"status"`
	AvgScore        float64 `json:"avg_score"`
	RatingCount     int     `json:"rating_count"`
	CreatedAt       string  `json:"created_at"`
}

// SubmissionListResponse wraps the catalog listing.
type SubmissionListResponse struct {
	Items []SubmissionResponse `json:"items"`
}

// ErrorResponse is the transport error contract.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
