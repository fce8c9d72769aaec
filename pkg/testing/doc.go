// Package testing provides a component testing harness for hostbridge.
//
// # Quick Start
//
// Create a tester, mount a component, and make assertions:
//
//	func TestCounter(t *testing.T) {
//	    tester := bridgetest.NewTesterWithT(t)
//	    bridgetest.MountComponent(tester, Counter{Initial: 3})
//
//	    // Find nodes
//	    count := tester.Find(bridgetest.ByID("count")).Text()
//
//	    // Simulate events
//	    tester.Click(bridgetest.ByID("increment"))
//	    tester.Pump()
//
//	    // Assert state
//	    if !tester.Find(bridgetest.ByText("4")).Exists() {
//	        t.Error("expected count of 4")
//	    }
//	}
//
// The tester mounts into the in-process runtime from package memory, so
// component state, update batching and keyed reconciliation behave as they
// do in the CLI preview.
//
// # Snapshot Testing
//
// Capture and compare document snapshots:
//
//	snapshot := tester.CaptureSnapshot()
//	snapshot.MatchesFile(t, "testdata/counter.snapshot.yaml")
//
// Update snapshots with:
//
//	HOSTBRIDGE_UPDATE_SNAPSHOTS=1 go test ./...
//
// # Import Alias
//
// Since this package has the same name as the standard library testing
// package, import it with an alias:
//
//	import bridgetest "github.com/go-drift/hostbridge/pkg/testing"
package testing
