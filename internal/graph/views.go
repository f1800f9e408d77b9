package graph

import (
	"github.com/seanacker/souberUp/internal/models"
	"github.com/seanacker/souberUp/internal/service"
)

// View structs expose only API-visible fields; password hashes and flags
// never reach the wire. The default resolver matches on json tags.

type userView struct {
	ID               string `json:"id"`
	Name             string `json:"name"`
	PhoneNumber      string `json:"phoneNumber"`
	UsageGoalMinutes int    `json:"usageGoalMinutes"`
}

func newUserView(user models.User) userView {
	return userView{
		ID:               user.ID,
		Name:             user.Name,
		PhoneNumber:      user.PhoneNumber,
		UsageGoalMinutes: user.UsageGoalMinutes,
	}
}

type meView struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	PhoneNumber string `json:"phoneNumber"`
}

type weeklyProgressView struct {
	GoalMinutes int     `json:"goalMinutes"`
	TotalMS     int64   `json:"totalMs"`
	Percent     float64 `json:"percent"`
}

type authPayloadView struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	TokenType    string `json:"tokenType"`
}

func newAuthPayloadView(pair service.TokenPair) authPayloadView {
	return authPayloadView{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		TokenType:    pair.TokenType,
	}
}
