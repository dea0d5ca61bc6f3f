package model

// Pitch dimensions in StatsBomb units. (0,0) is the top-left corner.
const (
	PitchLength = 120.0
	PitchWidth  = 80.0
)

// Point is a location on the pitch.
type Point struct{ X, Y float64 }

// ---- Raw events loaded from the flat event table ----

// Event is one row of the flattened event table.
type Event struct {
	Index          int
	MatchID        string
	Period         int
	Timestamp      string // "HH:MM:SS.mmm" from the start of the period
	Minute, Second int
	Possession     int
	PossessionTeam string
	Team           string
	Player         string
	Position       string // player_position_name
	Type           string // event_type_name, e.g. "Pass", "Shot", "Pressure"
	SubType        string // type_name, e.g. duel "Tackle"
	PlayPattern    string

	Location    Point
	EndLocation Point
	HasLocation bool

	Recipient string // pass_recipient_name, "" if none
	Outcome   string // outcome_name, "" means success for passes
	XG        float64

	UnderPressure bool
	Counterpress  bool
	AerialWon     bool
	PassCross     bool
	PassHeight    string
}

// LineupEntry is one player of a team's formation.
type LineupEntry struct {
	Team     string
	Player   string
	Position string
	Jersey   int
}

// Lineup is an ordered list of formation players.
type Lineup []LineupEntry

// Players returns the unique player names in order of first appearance.
func (l Lineup) Players() []string {
	seen := make(map[string]struct{}, len(l))
	var out []string
	for _, e := range l {
		if e.Player == "" {
			continue
		}
		if _, ok := seen[e.Player]; ok {
			continue
		}
		seen[e.Player] = struct{}{}
		out = append(out, e.Player)
	}
	return out
}

// ForTeam returns the entries belonging to team. An empty team returns l.
func (l Lineup) ForTeam(team string) Lineup {
	if team == "" {
		return l
	}
	var out Lineup
	for _, e := range l {
		if e.Team == team || e.Team == "" {
			out = append(out, e)
		}
	}
	return out
}

// MatchSummary describes one ingested events file.
type MatchSummary struct {
	Hash       string
	Name       string
	MatchID    string
	Teams      []string
	EventCount int
	Duplicates int
	IngestedAt string
}

// ---- Colours ----

// RGBA is a colour with components in [0,1], as produced by a colour map.
type RGBA struct{ R, G, B, A float64 }

// ---- Pass network ----

// Pair is an unordered pair of lineup players; Player1 precedes Player2 in
// the lineup.
type Pair struct{ Player1, Player2 string }

// PairCount is the number of completed passes exchanged by a pair in either direction.
type PairCount struct {
	Pair
	Count int
}

// DirectedXGC is the xG contribution of passes from Passer to Recipient.
type DirectedXGC struct {
	Passer    string
	Recipient string
	XGC       float64
}

// PairXGC is the xG contribution of passes between a pair in either direction.
type PairXGC struct {
	Pair
	XGC float64
}

// PlayerLocation is a player's average touch location.
type PlayerLocation struct {
	Player     string
	Location   Point
	TouchCount int
	XG         float64
	XGColor    RGBA
}

// NetworkEdge is one pair-level record of the pass network.
type NetworkEdge struct {
	Pair
	PassCount int
	XGC       float64
	Loc1      Point
	Loc2      Point
	XGCColor  RGBA
}

// Network is an assembled pass network for one team.
type Network struct {
	Team   string
	Period int // 0 = whole match
	Nodes  []PlayerLocation
	Edges  []NetworkEdge
}

// DirectedLink is one passer→recipient link of the directed pass network.
type DirectedLink struct {
	Passer      string
	Recipient   string
	Passes      int
	StartAvg    Point // passer's average completed-pass location
	HasStart    bool  // false when none of the passer's passes has a location
	EndAvg      Point // recipient's average completed-pass location
	HasEnd      bool  // false when the recipient made no completed pass
	TouchAvg    Point // passer's average touch location
	HasTouchAvg bool
}

// ---- KPIs ----

// ForwardKPIs are the per-player KPIs for forwards.
type ForwardKPIs struct {
	Player       string
	Goals        int
	XG           float64
	Shots        int
	XGPerShot    float64
	ShotTouchPct float64
	BoxTouches   int
	Pressures    int
	Dribbles     int
	AerialsWon   int
}

// WingBackKPIs are the per-player KPIs for wing-backs and full-backs.
type WingBackKPIs struct {
	Player     string
	Tackles    int
	Pressures  int
	Crosses    int
	DeepProg   int
	PassPct    float64
	Dribbles   int
	AerialsWon int
	FoulsWon   int
}

// MidfieldKPIs are the per-player KPIs for central midfielders.
type MidfieldKPIs struct {
	Player    string
	PassPct   float64
	DeepProg  int
	Dribbles  int
	FoulsWon  int
	Pressures int
	Tackles   int
}

// CentreBackKPIs are the per-player KPIs for centre-backs.
type CentreBackKPIs struct {
	Player        string
	PassPct       float64
	Pressures     int
	FoulsWon      int
	Tackles       int
	Interceptions int
	AerialsWon    int
	Clearances    int
}

// TeamKPIs are whole-match KPIs for one team.
type TeamKPIs struct {
	Team         string
	XG           float64
	Shots        int
	XGPerShot    float64
	BoxTouches   int
	ShotTouchPct float64
	DeepProg     int
	Crosses      int
	Pressures    int
	PassPct      float64
}

// PlayerMatchLine is one player's headline numbers for one match, used for
// cross-match trends.
type PlayerMatchLine struct {
	MatchHash  string
	MatchName  string
	IngestedAt string
	Player     string
	Team       string
	Position   string
	Events     int
	Goals      int
	XG         float64
	Shots      int
	BoxTouches int
	PassPct    float64
	DeepProg   int
	Pressures  int
	Tackles    int
}
