package types

import "github.com/google/uuid"

// RegisterRequest represents the request body for creating an account
type RegisterRequest struct {
	Name     string `json:"name" binding:"required,max=100"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

// LoginRequest represents the request body for logging in
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// AuthResponse is returned by register and login
type AuthResponse struct {
	Token  string    `json:"token"`
	UserID uuid.UUID `json:"user_id"`
	Name   string    `json:"name"`
}

// UpdateProfileRequest represents the request body for profile edits
type UpdateProfileRequest struct {
	Name string `json:"name" binding:"required,max=100"`
}

// UpdateGoalsRequest carries a partial goals update; nil fields are kept.
type UpdateGoalsRequest struct {
	Calories *float64 `json:"calories" binding:"omitempty,gt=0"`
	Protein  *float64 `json:"protein" binding:"omitempty,gte=0"`
	Carbs    *float64 `json:"carbs" binding:"omitempty,gte=0"`
	Fat      *float64 `json:"fat" binding:"omitempty,gte=0"`
	Water    *float64 `json:"water" binding:"omitempty,gte=0"`
}

// FoodInput is one food item sent by a client
type FoodInput struct {
	Name           string             `json:"name" binding:"required,max=200"`
	Calories       float64            `json:"calories" binding:"gte=0"`
	Protein        float64            `json:"protein" binding:"gte=0"`
	Carbs          float64            `json:"carbs" binding:"gte=0"`
	Fat            float64            `json:"fat" binding:"gte=0"`
	ServingSize    string             `json:"serving_size"`
	Micronutrients map[string]float64 `json:"micronutrients,omitempty"`
}

// AddFoodsRequest adds items to one meal of a day
type AddFoodsRequest struct {
	Meal  string      `json:"meal" binding:"required,max=50"`
	Foods []FoodInput `json:"foods" binding:"required,min=1,dive"`
}

// AddWaterRequest changes a day's water intake by Amount ml
type AddWaterRequest struct {
	Amount float64 `json:"amount"`
}

// StartFastRequest starts a fast of Hours hours
type StartFastRequest struct {
	Hours float64 `json:"hours"`
}

// UpdateFastRequest moves the boundaries of the running fast (epoch ms)
type UpdateFastRequest struct {
	StartTime *int64 `json:"startTime"`
	EndTime   *int64 `json:"endTime"`
}

// SelectChallengeRequest activates a challenge
type SelectChallengeRequest struct {
	ChallengeID string `json:"challengeId" binding:"required"`
}

// EstimateRequest asks for a nutrition estimate of a free-text meal
type EstimateRequest struct {
	Description string `json:"description" binding:"required,max=2000"`
}
