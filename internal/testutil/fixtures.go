package testutil

import (
	"fmt"

	"github.com/pable/go-lol-stats/internal/riot"
)

// DefaultChampions are ten valid champion ids (Annie, Olaf, Galio, Twisted Fate, Xin Zhao,
// Urgot, LeBlanc, Vladimir, Fiddlesticks, Kayle).
var DefaultChampions = [10]int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}

// PlayerID returns the PUUID used for participant slot i (0-4 blue, 5-9 red).
func PlayerID(i int) string { return fmt.Sprintf("puuid-%d", i) }

// Match builds a ten-player match payload. Slots 0-4 are blue (100) and 5-9 red (200).
func Match(id string, queue, durationSec int, blueWins bool, champs [10]int) *riot.Match {
	m := &riot.Match{
		Metadata: riot.Metadata{MatchID: id},
		Info: riot.MatchInfo{
			GameCreation:     1_700_000_000_000,
			GameDuration:     durationSec,
			GameEndTimestamp: 1_700_000_000_000 + int64(durationSec)*1000,
			QueueID:          queue,
			Teams: []riot.Team{
				{TeamID: 100, Win: blueWins},
				{TeamID: 200, Win: !blueWins},
			},
		},
	}
	for i := 0; i < 10; i++ {
		team, win := 100, blueWins
		if i >= 5 {
			team, win = 200, !blueWins
		}
		m.Metadata.Participants = append(m.Metadata.Participants, PlayerID(i))
		m.Info.Participants = append(m.Info.Participants, riot.Participant{
			ParticipantID: i + 1,
			PUUID:         PlayerID(i),
			ChampionID:    champs[i],
			TeamID:        team,
			Win:           win,
		})
	}
	return m
}

// Nexus turret coordinates on Summoner's Rift.
var (
	BlueNexusTurretsX = [2]int{1748, 2177}
	RedNexusTurretsX  = [2]int{12611, 13052}
)

// NexusTurretKill returns a BUILDING_KILL event for the nexus turret at x.
func NexusTurretKill(x int) riot.Event {
	return riot.Event{
		Type:         "BUILDING_KILL",
		BuildingType: "TOWER_BUILDING",
		LaneType:     "MID_LANE",
		TowerType:    "NEXUS_TURRET",
		Position:     &riot.Position{X: x, Y: x},
	}
}

// Timeline wraps events in a two-frame timeline.
func Timeline(id string, events ...riot.Event) *riot.Timeline {
	return &riot.Timeline{
		Metadata: riot.Metadata{MatchID: id},
		Info: riot.TimelineInfo{
			FrameInterval: 60000,
			Frames: []riot.Frame{
				{Timestamp: 0},
				{Timestamp: 60000, Events: events},
			},
		},
	}
}
