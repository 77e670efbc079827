package types

import "time"

type WordInfo struct {
	Word       string   `json:"word"`
	Characters []string `json:"characters"`
	CharIndex  int      `json:"char_index"`
}

type GameState struct {
	Score          int       `json:"score"`
	Lives          int       `json:"lives"`
	DeductedPoints int       `json:"deducted_points"`
	WordInfo       *WordInfo `json:"word_info,omitempty"`
	TargetScore    int       `json:"target_score"`
	TotalLives     int       `json:"total_lives"`
}

type AnswerRequest struct {
	Pinyin string `json:"pinyin" binding:"required"`
}

type AnswerResponse struct {
	Status    string     `json:"status"`
	GameState *GameState `json:"game_state,omitempty"`
	Message   string     `json:"message,omitempty"`
}

type MistakeView struct {
	Character string   `json:"character"`
	Correct   string   `json:"correct"`
	Attempts  []string `json:"attempts"`
}

type ResultView struct {
	PlayerName  string        `json:"playerName"`
	Score       int           `json:"score"`
	TargetScore int           `json:"targetScore"`
	Lives       int           `json:"lives"`
	Won         bool          `json:"won"`
	Finished    bool          `json:"finished"`
	Mistakes    []MistakeView `json:"mistakes"`
	EndedAt     time.Time     `json:"endedAt"`
}
