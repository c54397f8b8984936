package riot

// Account is the response from /riot/account/v1/accounts/by-riot-id.
type Account struct {
	PUUID    string `json:"puuid"`
	GameName string `json:"gameName"`
	TagLine  string `json:"tagLine"`
}

// Match is the response from /lol/match/v5/matches/{matchId}.
type Match struct {
	Metadata Metadata  `json:"metadata"`
	Info     MatchInfo `json:"info"`
}

// Metadata is shared by the match and timeline payloads.
type Metadata struct {
	MatchID      string   `json:"matchId"`
	Participants []string `json:"participants"` // PUUIDs
}

// MatchInfo holds the fields lolstats reads from a match.
type MatchInfo struct {
	GameCreation     int64         `json:"gameCreation"`
	GameDuration     int           `json:"gameDuration"`
	GameEndTimestamp int64         `json:"gameEndTimestamp"`
	GameVersion      string        `json:"gameVersion"`
	QueueID          int           `json:"queueId"`
	Participants     []Participant `json:"participants"`
	Teams            []Team        `json:"teams"`
}

// DurationSeconds returns the game length in seconds. Matches played before
// patch 11.20 carry no gameEndTimestamp and report gameDuration in milliseconds.
func (m MatchInfo) DurationSeconds() int {
	if m.GameEndTimestamp == 0 {
		return m.GameDuration / 1000
	}
	return m.GameDuration
}

// Participant is one player's entry in a match.
type Participant struct {
	ParticipantID  int    `json:"participantId"`
	PUUID          string `json:"puuid"`
	RiotIDGameName string `json:"riotIdGameName"`
	RiotIDTagline  string `json:"riotIdTagline"`
	ChampionID     int    `json:"championId"`
	ChampionName   string `json:"championName"`
	TeamID         int    `json:"teamId"`
	Win            bool   `json:"win"`
}

// Team is a side's outcome in a match.
type Team struct {
	TeamID int  `json:"teamId"`
	Win    bool `json:"win"`
}

// Timeline is the response from /lol/match/v5/matches/{matchId}/timeline.
type Timeline struct {
	Metadata Metadata     `json:"metadata"`
	Info     TimelineInfo `json:"info"`
}

// TimelineInfo holds the frame list.
type TimelineInfo struct {
	FrameInterval int64   `json:"frameInterval"`
	Frames        []Frame `json:"frames"`
}

// Frame is one FrameInterval slice of the timeline.
type Frame struct {
	Timestamp int64   `json:"timestamp"`
	Events    []Event `json:"events"`
}

// Event is a single timeline event. Only the fields used for structure kills are decoded.
type Event struct {
	Type         string    `json:"type"`
	Timestamp    int64     `json:"timestamp"`
	KillerID     int       `json:"killerId,omitempty"`
	TeamID       int       `json:"teamId,omitempty"`
	BuildingType string    `json:"buildingType,omitempty"`
	LaneType     string    `json:"laneType,omitempty"`
	TowerType    string    `json:"towerType,omitempty"`
	Position     *Position `json:"position,omitempty"`
}

// Position is a map coordinate.
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}
