package engine

import (
	"fmt"
	"io"
)

// CutStatistics collects counts for each node kind and cutoff mechanism of
// one search.
type CutStatistics struct {
	Nodes            uint64
	QNodes           uint64
	TTHits           uint64
	TTStores         uint64
	BetaCutoffs      uint64
	AlphaCutoffs     uint64
	QStandPatCutoffs uint64
	QBetaCutoffs     uint64
	QAlphaCutoffs    uint64
}

// Dump writes the counters as UCI "info string" lines.
func (cs CutStatistics) Dump(w io.Writer) {
	fmt.Fprintln(w, "info string Cut statistics:")
	fmt.Fprintf(w, "info string   Nodes: %d\n", cs.Nodes)
	fmt.Fprintf(w, "info string   Quiescence nodes: %d\n", cs.QNodes)
	fmt.Fprintf(w, "info string   TT hits: %d\n", cs.TTHits)
	fmt.Fprintf(w, "info string   TT stores: %d\n", cs.TTStores)
	fmt.Fprintf(w, "info string   Beta cutoffs: %d\n", cs.BetaCutoffs)
	fmt.Fprintf(w, "info string   Alpha cutoffs: %d\n", cs.AlphaCutoffs)
	fmt.Fprintf(w, "info string   QStandPat cutoffs: %d\n", cs.QStandPatCutoffs)
	fmt.Fprintf(w, "info string   QBeta cutoffs: %d\n", cs.QBetaCutoffs)
	fmt.Fprintf(w, "info string   QAlpha cutoffs: %d\n", cs.QAlphaCutoffs)
}
