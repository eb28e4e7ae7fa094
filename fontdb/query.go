package fontdb

import "strings"

// Query describes a wanted face. Families are tried in order; the generic
// CSS families (serif, sans-serif, monospace, cursive, fantasy, system-ui)
// match any loaded face.
type Query struct {
	Families []string
	Weight   int // 0 means regular
	Italic   bool
}

var genericFamilies = map[string]bool{
	"serif":      true,
	"sans-serif": true,
	"monospace":  true,
	"cursive":    true,
	"fantasy":    true,
	"system-ui":  true,
}

// Query returns the best face for q, or false when no family matches.
func (db *DB) Query(q Query) (*Face, bool) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	weight := q.Weight
	if weight == 0 {
		weight = WeightRegular
	}
	for _, fam := range q.Families {
		fam = strings.Trim(strings.TrimSpace(fam), `"'`)
		if fam == "" {
			continue
		}
		generic := genericFamilies[strings.ToLower(fam)]
		var best *Face
		bestScore := 0
		for _, f := range db.faces {
			if !generic && !strings.EqualFold(f.Family, fam) {
				continue
			}
			s := score(f, weight, q.Italic)
			if best == nil || s < bestScore {
				best, bestScore = f, s
			}
		}
		if best != nil {
			return best, true
		}
	}
	return nil, false
}

// score ranks a face; lower is better. A style mismatch outweighs any
// weight difference.
func score(f *Face, weight int, italic bool) int {
	d := f.Weight - weight
	if d < 0 {
		d = -d
	}
	if f.Italic != italic {
		d += 1000
	}
	return d
}
