package experiments

import (
	"fmt"
	"os"

	"github.com/JeremiahGelb/A-PLUS-Q/sim"
	"gopkg.in/yaml.v3"
)

// Manifest describes a batch of experiment runs loaded from a YAML file —
// a convenience this expansion adds on top of the original tool's
// one-invocation-per-study CLI, so a whole sweep of configurations can be
// replayed from one checked-in file.
type Manifest struct {
	Proj1 []ManifestProj1Run `yaml:"proj1"`
	Proj2 []ManifestProj2Run `yaml:"proj2"`
	Proj3 []ManifestProj3Run `yaml:"proj3"`
}

// ManifestProj1Run is one project-1 entry in a Manifest.
type ManifestProj1Run struct {
	Name             string  `yaml:"name"`
	Lambda           float64 `yaml:"lambda"`
	QueueCapacity    int     `yaml:"queue_capacity"`
	CustomersToServe int     `yaml:"customers_to_serve"`
	SnapshotBase     uint32  `yaml:"snapshot_base"`
	Runs             int     `yaml:"runs"`
	SeedStride       int64   `yaml:"seed_stride"`
}

// ManifestProj2Run is one project-2 entry in a Manifest.
type ManifestProj2Run struct {
	Name             string  `yaml:"name"`
	Lambda           float64 `yaml:"lambda"`
	CpuQueueCapacity int     `yaml:"cpu_queue_capacity"`
	IoQueueCapacity  int     `yaml:"io_queue_capacity"`
	CustomersToServe int     `yaml:"customers_to_serve"`
	Mode             string  `yaml:"mode"`       // "mm1" or "cpu"
	Discipline       string  `yaml:"discipline"` // "fcfs", "lcfs_np", "sjf_np", "prio_np", "prio_p"
	Runs             int     `yaml:"runs"`
	SeedStride       int64   `yaml:"seed_stride"`
}

// ManifestProj3Run is one project-3 entry in a Manifest.
type ManifestProj3Run struct {
	Name             string  `yaml:"name"`
	Lambda           float64 `yaml:"lambda"`
	CustomersToServe int     `yaml:"customers_to_serve"`
	Discipline       string  `yaml:"discipline"` // "fcfs" or "sjf_np"
	Mode             string  `yaml:"mode"`       // "mm3", "mg3", or "mg1"
	Runs             int     `yaml:"runs"`
	SeedStride       int64   `yaml:"seed_stride"`
}

// LoadManifest reads and parses a batch manifest from path.
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading manifest %q: %w", path, err)
	}
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing manifest %q: %w", path, err)
	}
	return &m, nil
}

func parseProj2Discipline(s string) (sim.Discipline, error) {
	switch s {
	case "fcfs":
		return sim.FCFS, nil
	case "lcfs_np":
		return sim.LCFSNP, nil
	case "sjf_np":
		return sim.SJFNP, nil
	case "prio_np":
		return sim.PrioNP, nil
	case "prio_p":
		return sim.PrioP, nil
	default:
		return 0, fmt.Errorf("unknown discipline %q", s)
	}
}

func parseProj3Discipline(s string) (sim.Discipline, error) {
	switch s {
	case "fcfs":
		return sim.FCFS, nil
	case "sjf_np":
		return sim.SJFNP, nil
	default:
		return 0, fmt.Errorf("unknown project-3 discipline %q", s)
	}
}

// RunAll executes every run in the manifest, returning each run's
// aggregate keyed by its manifest entry name.
func (m *Manifest) RunAll() (map[string]*Aggregate, error) {
	results := make(map[string]*Aggregate)

	for _, run := range m.Proj1 {
		cfg := Proj1Config{
			Lambda:           run.Lambda,
			QueueCapacity:    run.QueueCapacity,
			CustomersToServe: run.CustomersToServe,
			SnapshotBase:     run.SnapshotBase,
		}
		results[run.Name] = RunReplicates(run.Runs, run.SeedStride, func(seed int64) RunResult {
			return RunProj1(cfg, seed)
		})
	}

	for _, run := range m.Proj2 {
		discipline, err := parseProj2Discipline(run.Discipline)
		if err != nil {
			return nil, fmt.Errorf("manifest run %q: %w", run.Name, err)
		}
		mode := Proj2MM1
		if run.Mode == "cpu" {
			mode = Proj2CPU
		}
		cfg := Proj2Config{
			Lambda:           run.Lambda,
			CpuQueueCapacity: run.CpuQueueCapacity,
			IoQueueCapacity:  run.IoQueueCapacity,
			CustomersToServe: run.CustomersToServe,
			Mode:             mode,
			Discipline:       discipline,
		}
		results[run.Name] = RunReplicates(run.Runs, run.SeedStride, func(seed int64) RunResult {
			return RunProj2(cfg, seed)
		})
	}

	for _, run := range m.Proj3 {
		discipline, err := parseProj3Discipline(run.Discipline)
		if err != nil {
			return nil, fmt.Errorf("manifest run %q: %w", run.Name, err)
		}
		var mode Proj3Mode
		switch run.Mode {
		case "mg3":
			mode = Proj3MG3
		case "mg1":
			mode = Proj3MG1
		default:
			mode = Proj3MM3
		}
		cfg := Proj3Config{
			Lambda:           run.Lambda,
			CustomersToServe: run.CustomersToServe,
			Discipline:       discipline,
			Mode:             mode,
		}
		results[run.Name] = RunReplicates(run.Runs, run.SeedStride, func(seed int64) RunResult {
			return RunProj3(cfg, seed)
		})
	}

	return results, nil
}
