package session

import (
	"justicemango/internal/social"
)

const (
	msgCaptureFailed = "capture failed"
	msgFalseReport   = "False report! Flame risk rising"
	msgSuspended     = "Account suspended"
	msgTimeUp        = "Game over"
)

// Popup is the capture result card.
type Popup struct {
	Success         bool   `json:"success"`
	Message         string `json:"message"`
	LikesGained     int    `json:"likes_gained"`
	FollowersGained int    `json:"followers_gained"`
	Backlash        bool   `json:"backlash"`
}

type GameOver struct {
	Suspended      bool   `json:"suspended"`
	Message        string `json:"message"`
	FinalScore     int    `json:"final_score"`
	FinalFollowers int    `json:"final_followers"`
}

// HUD is everything the UI shows. It is a value snapshot; mutating it has
// no effect on the session.
type HUD struct {
	Score               int               `json:"score"`
	Followers           int               `json:"followers"`
	FlameGauge          float64           `json:"flame_gauge"`
	TimeRemaining       float64           `json:"time_remaining"`
	Popup               Popup             `json:"popup"`
	PopupVisible        bool              `json:"popup_visible"`
	Notification        string            `json:"notification,omitempty"`
	NotificationVisible bool              `json:"notification_visible"`
	GameOver            *GameOver         `json:"game_over,omitempty"`
	PostAnimating       bool              `json:"post_animating"`
	LastPost            *social.Post      `json:"last_post,omitempty"`
	LastReactions       *social.Reactions `json:"last_reactions,omitempty"`
}

func (s *Session) refreshHUD() {
	s.hud.Score = s.score
	s.hud.Followers = s.followers
	s.hud.FlameGauge = s.flame
	s.hud.TimeRemaining = s.timeRemaining
}

// showPopup displays p and restarts its hide timer.
func (s *Session) showPopup(p Popup) {
	s.hud.Popup = p
	s.hud.PopupVisible = true
	s.popupHide.Cancel()
	s.popupHide = s.fx.After(s.opts.PopupSeconds, func() {
		s.hud.PopupVisible = false
	})
}

func (s *Session) notify(msg string) {
	s.hud.Notification = msg
	s.hud.NotificationVisible = true
	s.noticeHide.Cancel()
	s.noticeHide = s.fx.After(s.opts.NotificationSeconds, func() {
		s.hud.NotificationVisible = false
	})
}

func (s *Session) showGameOver(suspended bool) {
	msg := msgTimeUp
	if suspended {
		msg = msgSuspended
	}
	s.hud.GameOver = &GameOver{
		Suspended:      suspended,
		Message:        msg,
		FinalScore:     s.score,
		FinalFollowers: s.followers,
	}
}

// HUD returns the current UI state.
func (s *Session) HUD() HUD {
	h := s.hud
	h.PostAnimating = s.social.IsAnimating()
	if h.GameOver != nil {
		g := *h.GameOver
		h.GameOver = &g
	}
	if h.LastPost != nil {
		p := *h.LastPost
		p.Tags = append([]string(nil), p.Tags...)
		h.LastPost = &p
	}
	if h.LastReactions != nil {
		r := *h.LastReactions
		r.Comments = append([]social.Comment(nil), r.Comments...)
		h.LastReactions = &r
	}
	return h
}
