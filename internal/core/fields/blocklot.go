package fields

// BlockLot is the tax block/lot pair chosen for a document.
type BlockLot struct {
	Block string
	Lot   string
	// Candidates lists every distinct pair found, in first-seen order.
	Candidates [][2]string
}

// Ambiguous reports whether more than one distinct pair was found.
func (b BlockLot) Ambiguous() bool { return len(b.Candidates) > 1 }

var blockLotChain = chain(
	"labeled_separated", `(?i)Block\s*[:#]?\s*(\d{3,6})\s*(?:,|and| )+\s*Lot\s*[:#]?\s*(\d{1,4})`,
	"labeled", `(?i)Block\s*[:#]?\s*(\d{3,6})\s*Lot\s*[:#]?\s*(\d{1,4})`,
	"tax_map", `(?i)tax\s*map\s*(?:identification|id)[:\s#-]*?(\d{3,6})[-–](\d{1,4})`,
	"bare", `(\d{3,6})[-–](\d{1,4})`,
)

// ExtractBlockLot collects all block/lot matches from every pattern in chain
// order, dedupes them and selects the first.
func ExtractBlockLot(text string) (BlockLot, bool) {
	var out BlockLot
	seen := make(map[[2]string]struct{})
	for _, p := range blockLotChain {
		for _, m := range p.re.FindAllStringSubmatch(text, -1) {
			pair := [2]string{m[1], m[2]}
			if _, dup := seen[pair]; dup {
				continue
			}
			seen[pair] = struct{}{}
			out.Candidates = append(out.Candidates, pair)
		}
	}
	if len(out.Candidates) == 0 {
		return out, false
	}
	out.Block, out.Lot = out.Candidates[0][0], out.Candidates[0][1]
	return out, true
}
