package model

import (
	"fmt"
	"sort"
	"strings"
)

// Side identifies one of the two teams on Summoner's Rift.
type Side int

const (
	SideUnknown Side = 0
	SideBlue    Side = 100
	SideRed     Side = 200
)

// SideFromCode converts a provider team code (100/200) into a Side.
// It is the only place numeric team codes are interpreted.
func SideFromCode(code int) (Side, error) {
	switch Side(code) {
	case SideBlue:
		return SideBlue, nil
	case SideRed:
		return SideRed, nil
	default:
		return SideUnknown, &LookupError{Kind: "side", Key: fmt.Sprint(code)}
	}
}

// Other returns the opposing side. SideUnknown maps to itself.
func (s Side) Other() Side {
	switch s {
	case SideBlue:
		return SideRed
	case SideRed:
		return SideBlue
	default:
		return SideUnknown
	}
}

// Code returns the provider's numeric team code.
func (s Side) Code() int { return int(s) }

func (s Side) String() string {
	switch s {
	case SideBlue:
		return "blue"
	case SideRed:
		return "red"
	default:
		return "?"
	}
}

// Queue is a provider queue id (e.g. 420 = ranked solo/duo).
type Queue int

// QueueNames labels the 5v5 Summoner's Rift queues lolstats ingests.
var QueueNames = map[Queue]string{
	400: "normal draft",
	420: "ranked solo",
	430: "normal blind",
	440: "ranked flex",
	700: "clash",
}

func (q Queue) String() string {
	if n, ok := QueueNames[q]; ok {
		return n
	}
	return fmt.Sprintf("queue %d", int(q))
}

// QueueFilter is the set of queues eligible for ingestion.
type QueueFilter map[Queue]struct{}

// queueFilters are the named filters accepted on the command line.
var queueFilters = map[string][]Queue{
	"sr":      {400, 420, 430, 440, 700},
	"ranked":  {420, 440},
	"soloq":   {420},
	"flex":    {440},
	"clash":   {700},
	"normals": {400, 430},
}

// DefaultQueueFilter is every standard 5v5 Summoner's Rift queue.
func DefaultQueueFilter() QueueFilter {
	f, _ := ParseQueueFilter("sr")
	return f
}

// ParseQueueFilter resolves a named filter ("sr", "ranked", ...).
func ParseQueueFilter(name string) (QueueFilter, error) {
	queues, ok := queueFilters[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, &LookupError{Kind: "queue filter", Key: name}
	}
	f := make(QueueFilter, len(queues))
	for _, q := range queues {
		f[q] = struct{}{}
	}
	return f, nil
}

// Contains reports whether q is in the filter.
func (f QueueFilter) Contains(q Queue) bool {
	_, ok := f[q]
	return ok
}

// Queues returns the filter's queues in ascending order.
func (f QueueFilter) Queues() []Queue {
	out := make([]Queue, 0, len(f))
	for q := range f {
		out = append(out, q)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// RemakeMaxDuration is the longest duration, in seconds, still treated as a remake.
const RemakeMaxDuration = 300

// IsRemake reports whether a game of the given duration (seconds) was remade.
func IsRemake(durationSec int) bool {
	return durationSec <= RemakeMaxDuration
}

// Game is one stored, non-remake match.
type Game struct {
	ID       string
	Queue    Queue
	Duration int // seconds
	Winner   Side
	Forfeit  bool
	Creation int64 // epoch milliseconds
}

// PlayerGame is one participant's row in a stored game.
type PlayerGame struct {
	GameID     string
	PlayerID   string
	ChampionID int
	Win        bool
}

// Remake is a match recorded only so it is never fetched again.
type Remake struct {
	ID       string
	Queue    Queue
	Duration int
	Creation int64
}

// Partition is the dedup split of a candidate set against the store.
// Present holds ids already stored as games or remakes; Missing holds ids that need a fetch.
// Games and Players carry the stored rows for the present ids.
type Partition struct {
	Present []string
	Missing []string
	Games   []Game
	Players []PlayerGame
}

// Batch is the set of rows written atomically by one ingestion run.
type Batch struct {
	Games   []Game
	Players []PlayerGame
	Remakes []Remake
}

// Empty reports whether the batch has nothing to write.
func (b Batch) Empty() bool {
	return len(b.Games) == 0 && len(b.Players) == 0 && len(b.Remakes) == 0
}

// Snapshot is a joined view of games and all their participant rows.
type Snapshot struct {
	Games   []Game
	Players []PlayerGame
}

// GameIndex maps game ids to games.
func (s Snapshot) GameIndex() map[string]Game {
	idx := make(map[string]Game, len(s.Games))
	for _, g := range s.Games {
		idx[g.ID] = g
	}
	return idx
}
