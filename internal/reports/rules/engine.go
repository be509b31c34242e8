package rules

// Match returns all rules applicable to the given month and species, in table
// order. An empty species matches every rule for the month; otherwise a rule
// applies when its species list is empty or contains the species exactly.
// An unmatched query returns an empty list.
func Match(month int, species string) []Rule {
	out := make([]Rule, 0, 8)
	for _, r := range Table {
		if !r.AppliesToMonth(month) {
			continue
		}
		if species != "" && !r.AppliesToSpecies(species) {
			continue
		}
		out = append(out, r)
	}
	return out
}

// NextMonth returns the rules for the month after the given one, wrapping
// December into January. Used for forward-looking recommendations.
func NextMonth(month int, species string) []Rule {
	next := month + 1
	if month == 12 {
		next = 1
	}
	return Match(next, species)
}
