// Package protfeat computes intramolecular interaction features of protein
// structures: disulfide bonds, salt bridges, hydrophobic contacts with their
// clusters, and hydrogen bonds.
//
// # Quick Start
//
//	p, _ := protonate.NewPDB2PQR(protonate.DefaultConfig())
//	a, _ := protfeat.New(protfeat.WithProtonator(p))
//	defer a.Close()
//
//	report, _ := a.Analyze(ctx, s)
//	for _, f := range report.Features(protfeat.ModeFrequency) {
//	    fmt.Println(f.Kind, f.State, f.Frequency)
//	}
//
// # Detectors
//
// Each interaction kind is computed by an independent package that can also be
// used on its own:
//
//   - disulfide: CYS SG-SG bonds by distance and CB-SG-SG-CB dihedral
//   - saltbridge: charged donor/acceptor atoms closer than 4 A
//   - hydrophobic: ILE/LEU/VAL side-chain contacts, clustered into connected
//     components with a reference buried area
//   - hbond: hydrogen bonds after adding hydrogens through an external tool
//
// Analyze runs the selected detectors concurrently. A failing detector marks
// only its own kind as failed in Report.Status; the other kinds keep their
// results.
//
// # Batch Scans
//
// Scan analyzes many structures on a bounded worker pool and returns one
// ScanResult per input in input order:
//
//	results, err := a.Scan(ctx, structures)
//
// # Hydrogen Bonds
//
// Hydrogen bonds need hydrogens. The analyzer calls an hbond.Protonator
// (typically protonate.PDB2PQR, optionally wrapped by protonate.NewCache and
// protonate.NewLimited) under WithProtonationTimeout. Without a protonator the
// hydrogen-bond kind is reported as skipped.
//
// # Observability
//
// Logging uses log/slog through Logger (WithLogger, WithLogLevel). Metrics are
// reported to a MetricsCollector (WithMetricsCollector); BasicMetricsCollector
// keeps in-memory counters.
package protfeat
