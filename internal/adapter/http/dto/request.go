package dto

// QuizRewardRequest represents a quiz completion reward request.
type QuizRewardRequest struct {
	UserID string `json:"user_id"`
	Score  int    `json:"score"`
	Total  int    `json:"total"`
}

// PredictionRewardRequest represents a correct-prediction reward request.
type PredictionRewardRequest struct {
	UserID string `json:"user_id"`
	Match  string `json:"match"`
}

// UserRewardRequest represents a reward request keyed only by user.
type UserRewardRequest struct {
	UserID string `json:"user_id"`
}

// ExchangeRequest represents a request to exchange coins for the external
// asset.
type ExchangeRequest struct {
	UserID             string `json:"user_id"`
	Amount             int64  `json:"amount"`
	DestinationAddress string `json:"destination_address"`
}
