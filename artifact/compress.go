package artifact

import (
	"github.com/llgen/llgen/compressor"
	"github.com/llgen/llgen/grammar"
)

// CompressionReport summarizes how much a table's LL(1) parse table would
// shrink under row-deduplication: most nonterminals only have entries for a
// handful of lookaheads, so many rows of the dense (nonterminal x lookahead)
// matrix are identical once the ones with no entry for a given lookahead are
// counted together. This never touches the wire format written by Write; it
// exists for `llgen compile`'s diagnostics, the way a compile step reports on
// its own output without changing it.
type CompressionReport struct {
	OriginalRows    int
	OriginalCols    int
	OriginalCells   int
	UniqueRows      int
	CompressedCells int
}

const noEntry = -1

// Compress builds a dense (nonterminal x lookahead) matrix from table,
// entries are indices into a per-report production list (or noEntry), and
// runs it through compressor.UniqueEntriesTable.
func Compress(table *grammar.ParseTable) (*CompressionReport, error) {
	maxTerm := -1
	for _, c := range table.Cells() {
		if c.Look.IsTerminal() && c.Look.Term > maxTerm {
			maxTerm = c.Look.Term
		}
	}
	cols := maxTerm + 2 // terminal ids 0..maxTerm, plus one column for End
	rows := len(table.NonTerminals)
	if rows == 0 || cols <= 0 {
		return &CompressionReport{}, nil
	}

	rowIndex := make(map[string]int, rows)
	for i, name := range table.NonTerminals {
		rowIndex[name] = i
	}

	prodID := map[*grammar.Production]int{}
	entries := make([]int, rows*cols)
	for i := range entries {
		entries[i] = noEntry
	}
	for _, c := range table.Cells() {
		row := rowIndex[c.NonTerm]
		col := maxTerm + 1
		if c.Look.IsTerminal() {
			col = c.Look.Term
		}
		id, ok := prodID[c.Prod]
		if !ok {
			id = len(prodID)
			prodID[c.Prod] = id
		}
		entries[row*cols+col] = id
	}

	orig, err := compressor.NewOriginalTable(entries, cols)
	if err != nil {
		return nil, err
	}
	tab := compressor.NewUniqueEntriesTable()
	if err := tab.Compress(orig); err != nil {
		return nil, err
	}

	return &CompressionReport{
		OriginalRows:    rows,
		OriginalCols:    cols,
		OriginalCells:   rows * cols,
		UniqueRows:      len(tab.UniqueEntries) / cols,
		CompressedCells: len(tab.UniqueEntries),
	}, nil
}
