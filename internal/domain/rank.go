package domain

// Rank is a letter tier derived from cumulative XP.
type Rank string

const (
	RankE Rank = "E"
	RankD Rank = "D"
	RankC Rank = "C"
	RankB Rank = "B"
	RankA Rank = "A"
	RankS Rank = "S"
)

// RankTier pairs a rank letter with the cumulative XP needed to hold it.
type RankTier struct {
	Rank  Rank `json:"rank"`
	MinXP int  `json:"min_xp"`
}

// rankTable is ordered ascending by threshold. The zero-XP entry
// guarantees RankForXP is total.
var rankTable = []RankTier{
	{RankE, 0},
	{RankD, 500},
	{RankC, 1500},
	{RankB, 3000},
	{RankA, 5000},
	{RankS, 7500},
}

// RankTiers returns a copy of the full rank table.
func RankTiers() []RankTier {
	out := make([]RankTier, len(rankTable))
	copy(out, rankTable)
	return out
}

// RankForXP returns the highest rank whose threshold is ≤ xp.
// XP below every threshold (including negative input) maps to the
// lowest rank.
func RankForXP(xp int) Rank {
	current := RankE
	for _, t := range rankTable {
		if xp >= t.MinXP {
			current = t.Rank
		}
	}
	return current
}

// NextRank returns the tier following current, or ok=false at the top.
func NextRank(current Rank) (RankTier, bool) {
	for i, t := range rankTable {
		if t.Rank == current {
			if i == len(rankTable)-1 {
				return RankTier{}, false
			}
			return rankTable[i+1], true
		}
	}
	return RankTier{}, false
}
