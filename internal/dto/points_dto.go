package dto

// PointsStatus mirrors the customer's gamification progress.
type PointsStatus struct {
	TotalPoints  int     `json:"total_points"`
	CurrentLevel string  `json:"current_level"`
	NextLevel    string  `json:"next_level"`
	TargetPoints int     `json:"target_points"`
	Progress     float64 `json:"progress"` // percentage toward the next level
}
