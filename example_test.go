package statmerge_test

import (
	"context"
	"fmt"
	"os"
	"testing"

	"go.uber.org/zap"

	"github.com/Schera-ole/statmerge/internal/host"
	models "github.com/Schera-ole/statmerge/internal/model"
	"github.com/Schera-ole/statmerge/internal/output"
	"github.com/Schera-ole/statmerge/internal/service"
)

type staticSource string

func (s staticSource) Run(context.Context) ([]byte, error) {
	return []byte(s), nil
}

type staticProvider struct{}

func (staticProvider) CPUTimes(context.Context) ([]host.Field, error) {
	return []host.Field{{Name: "user", Value: "1.5"}}, nil
}

func (staticProvider) VirtualMemory(context.Context) ([]host.Field, error) {
	return []host.Field{{Name: "percent", Value: "42.9"}}, nil
}

func (staticProvider) SwapMemory(context.Context) ([]host.Field, error) {
	return []host.Field{{Name: "sin", Value: "0"}}, nil
}

func (staticProvider) NetIOCounters(context.Context) ([]host.Interface, error) {
	return []host.Interface{{Name: "lo", Fields: []host.Field{{Name: "bytes_sent", Value: "512"}}}}, nil
}

const varnishstatOutput = `{
  "LCK.foo": {"description": "Created locks", "flag": "c", "format": "i", "value": 1},
  "MAIN.sess_conn": {"description": "d", "flag": "c", "format": "i", "value": 5}
}`

// Example of merging varnishstat output with host metrics
func Example_mergeService() {
	mergeService := service.NewMergeService(staticSource(varnishstatOutput), staticProvider{}, zap.NewNop().Sugar())

	snapshot, err := mergeService.Collect(context.Background())
	if err != nil {
		fmt.Printf("Error collecting metrics: %v\n", err)
		return
	}

	snapshot.Each(func(name string, record models.Record) {
		fmt.Printf("%s flag=%s format=%s value=%s\n", name, record.Flag, record.Format, record.Value)
	})
	// Output:
	// MAIN.sess_conn flag=c format=i value=5
	// CPU.time.user flag=c format=i value=1500
	// MEMORY.percent flag=g format=i value=42
	// SWAP.sin flag=c format=B value=0
	// NET.lo.bytes_sent flag=c format=B value=512
}

// Example of writing a snapshot as JSON
func Example_jsonEncoder() {
	snapshot := models.NewSnapshot()
	snapshot.Set("MAIN.sess_conn", models.Record{Description: "d", Flag: models.FlagCounter, Format: models.FormatInteger, Value: "5"})

	if err := (&output.JSONEncoder{}).Encode(os.Stdout, snapshot); err != nil {
		fmt.Printf("Error encoding snapshot: %v\n", err)
	}
	// Output: {"MAIN.sess_conn":{"description":"d","flag":"c","format":"i","value":5}}
}

// Simple test to demonstrate blacklisting
func TestExampleBlacklist(t *testing.T) {
	mergeService := service.NewMergeService(staticSource(varnishstatOutput), staticProvider{}, zap.NewNop().Sugar())

	snapshot, err := mergeService.Collect(context.Background())
	if err != nil {
		t.Fatalf("Failed to collect metrics: %v", err)
	}

	if _, ok := snapshot.Get("LCK.foo"); ok {
		t.Errorf("Expected LCK.foo to be dropped")
	}
	if _, ok := snapshot.Get("MAIN.sess_conn"); !ok {
		t.Errorf("Expected MAIN.sess_conn to be kept")
	}
}
