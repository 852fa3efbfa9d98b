package protfeat_test

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/hupe1980/protfeat"
	"github.com/hupe1980/protfeat/blobstore"
	"github.com/hupe1980/protfeat/hbond"
	"github.com/hupe1980/protfeat/protonate"
	"github.com/hupe1980/protfeat/resource"
	"github.com/hupe1980/protfeat/structure"
	"github.com/hupe1980/protfeat/testutil"
)

func exampleProtein() *structure.Structure {
	return testutil.NewBuilder("1abc").
		Residue("A", 3, "CYS").Atom("CA", -1, 2.5, 0).Atom("CB", 0, 1.8, 0).Atom("SG", 0, 0, 0).
		Residue("A", 40, "CYS").Atom("CA", 3.05, 0, 2.5).Atom("CB", 2.05, 0, 1.8).Atom("SG", 2.05, 0, 0).
		Residue("A", 10, "LYS").Atom("NZ", 50, 0, 0).
		Residue("A", 20, "ASP").Atom("OD1", 53, 0, 0).
		Build()
}

// Example_analyze computes per-residue frequencies without hydrogen bonds.
func Example_analyze() {
	a, err := protfeat.New()
	if err != nil {
		log.Fatal(err)
	}
	defer a.Close()

	report, err := a.Analyze(context.Background(), exampleProtein())
	if err != nil {
		log.Fatal(err)
	}

	for _, f := range report.Features(protfeat.ModeFrequency) {
		fmt.Printf("%s %s %d %.2f\n", f.Kind, f.State, f.Count, f.Frequency)
	}
	// Output:
	// disulfide ok 1 0.25
	// salt_bridge ok 1 0.25
	// hydrophobic ok 0 0.00
	// hydrogen_bond skipped 0 0.00
}

// Example_pairs prints the canonical atom pairs of the disulfide bonds.
func Example_pairs() {
	a, _ := protfeat.New(protfeat.WithKinds(protfeat.KindDisulfide))
	defer a.Close()

	report, _ := a.Analyze(context.Background(), exampleProtein())
	for _, p := range report.Disulfide.Pairs() {
		fmt.Println(p)
	}
	// Output: (2/3, 5/40)
}

// Example_protonationFailure shows that a failing hydrogen-bond boundary
// leaves the other kinds intact.
func Example_protonationFailure() {
	broken := hbond.ProtonatorFunc(func(context.Context, *structure.Structure) (*structure.Structure, error) {
		return nil, fmt.Errorf("tool not installed")
	})

	a, _ := protfeat.New(protfeat.WithProtonator(broken))
	defer a.Close()

	report, _ := a.Analyze(context.Background(), exampleProtein())
	fmt.Println(report.Status[protfeat.KindSaltBridge].State)
	fmt.Println(report.Status[protfeat.KindHydrogenBond].State)
	// Output:
	// ok
	// failed
}

// Example_pipeline wires pdb2pqr behind a process limiter and a result cache.
func Example_pipeline() {
	tool, err := protonate.NewPDB2PQR(protonate.DefaultConfig())
	if err != nil {
		log.Fatal(err)
	}

	limiter := resource.NewController(resource.Config{MaxProcesses: 4, SpawnsPerSecond: 2})
	store := blobstore.NewCachingStore(blobstore.NewLocalStore(filepath.Join(os.TempDir(), "protfeat-cache")), 64<<20)
	cache := protonate.NewCache(protonate.NewLimited(tool, limiter), store)

	metrics := &protfeat.BasicMetricsCollector{}
	a, err := protfeat.New(
		protfeat.WithProtonator(cache),
		protfeat.WithLogLevel(slog.LevelWarn),
		protfeat.WithMetricsCollector(metrics),
		protfeat.WithWorkers(8),
	)
	if err != nil {
		log.Fatal(err)
	}
	defer a.Close()

	fmt.Println(a.Kinds())
	// Output: [disulfide salt_bridge hydrophobic hydrogen_bond]
}
